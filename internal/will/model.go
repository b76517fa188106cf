package will

import "time"

// MaritalStatus enumerates the testator's marital status options used in the
// generated document.
type MaritalStatus string

const (
	Single           MaritalStatus = "Single"
	Married          MaritalStatus = "Married"
	CivilPartnership MaritalStatus = "Civil Partnership"
	Divorced         MaritalStatus = "Divorced"
	Widowed          MaritalStatus = "Widowed"
)

// Person is a named party with a postal address.
type Person struct {
	FullName string `json:"fullName" bson:"fullName"`
	Address  string `json:"address" bson:"address"`
}

// Witness is a person plus their occupation. A valid will expects exactly two
// witnesses; that rule belongs to the witness step, not this package.
type Witness struct {
	Person     `bson:",inline"`
	Occupation string `json:"occupation" bson:"occupation"`
}

// Child carries the child's name and date of birth.
type Child struct {
	FullName string `json:"fullName" bson:"fullName"`
	DOB      string `json:"dob" bson:"dob"`
}

// Beneficiary is a person receiving a percentage share of the estate. Shares
// summing to 100 is a step-local concern.
type Beneficiary struct {
	Person     `bson:",inline"`
	Percentage float64 `json:"percentage" bson:"percentage"`
}

// Testator identifies the person making the will.
type Testator struct {
	FullName      string        `json:"fullName" bson:"fullName"`
	Address       string        `json:"address" bson:"address"`
	DOB           string        `json:"dob" bson:"dob"`
	MaritalStatus MaritalStatus `json:"maritalStatus" bson:"maritalStatus"`
}

// PremiumConfig holds rendering preferences available to premium sessions.
type PremiumConfig struct {
	FontFamily       string `json:"fontFamily" bson:"fontFamily"` // times|courier|helvetica
	IncludeWatermark bool   `json:"includeWatermark" bson:"includeWatermark"`
}

// WillData is the complete in-progress will aggregate. One instance is owned
// by a wizard session for its lifetime; it is mutated incrementally through
// ApplyUpdate and replaced wholesale only when a payment-return snapshot is
// rehydrated.
type WillData struct {
	Testator             Testator       `json:"testator"`
	Spouse               *Person        `json:"spouse,omitempty"`
	Executors            []Person       `json:"executors"`
	HasChildren          bool           `json:"hasChildren"`
	Children             []Child        `json:"children"`
	Guardians            []Person       `json:"guardians"`
	Beneficiaries        []Beneficiary  `json:"beneficiaries"`
	ResiduaryBeneficiary string         `json:"residuaryBeneficiary"`
	Witnesses            []Witness      `json:"witnesses"`
	DonationAmount       float64        `json:"donationAmount"`
	IsPremium            bool           `json:"isPremium"`
	PremiumConfig        *PremiumConfig `json:"premiumConfig,omitempty"`
	SignatureData        string         `json:"signatureData,omitempty"`
	AcceptedTerms        bool           `json:"acceptedTerms"`
	GenerationDate       string         `json:"generationDate"`
	StripeAccountID      string         `json:"stripeAccountId,omitempty"`
}

// New returns a WillData with all-empty defaults. GenerationDate is fixed
// here and never changes for the rest of the session.
func New(now time.Time) *WillData {
	return &WillData{
		Testator:      Testator{MaritalStatus: Single},
		Executors:     []Person{},
		Children:      []Child{},
		Guardians:     []Person{},
		Beneficiaries: []Beneficiary{},
		Witnesses:     []Witness{},
		// en-GB day-first date, matching the rendered document
		GenerationDate: now.Format("02/01/2006"),
	}
}
