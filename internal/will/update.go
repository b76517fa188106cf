package will

// Update is a partial update of WillData. Every field is optional; a field
// that is present replaces the prior value wholesale (sequences included,
// there is no element-wise merge). Absent fields leave the current value
// untouched, so repeated application of the same update is idempotent.
type Update struct {
	Testator             *Testator      `json:"testator,omitempty"`
	Spouse               *Person        `json:"spouse,omitempty"`
	Executors            *[]Person      `json:"executors,omitempty"`
	HasChildren          *bool          `json:"hasChildren,omitempty"`
	Children             *[]Child       `json:"children,omitempty"`
	Guardians            *[]Person      `json:"guardians,omitempty"`
	Beneficiaries        *[]Beneficiary `json:"beneficiaries,omitempty"`
	ResiduaryBeneficiary *string        `json:"residuaryBeneficiary,omitempty"`
	Witnesses            *[]Witness     `json:"witnesses,omitempty"`
	DonationAmount       *float64       `json:"donationAmount,omitempty"`
	IsPremium            *bool          `json:"isPremium,omitempty"`
	PremiumConfig        *PremiumConfig `json:"premiumConfig,omitempty"`
	SignatureData        *string        `json:"signatureData,omitempty"`
	AcceptedTerms        *bool          `json:"acceptedTerms,omitempty"`
	StripeAccountID      *string        `json:"stripeAccountId,omitempty"`
}

// Apply shallow-merges u into d. No validation happens here: each step is
// responsible for its own business rules before it advances. GenerationDate
// is deliberately not updatable.
func (d *WillData) Apply(u *Update) {
	if u == nil {
		return
	}
	if u.Testator != nil {
		d.Testator = *u.Testator
	}
	if u.Spouse != nil {
		d.Spouse = u.Spouse
	}
	if u.Executors != nil {
		d.Executors = *u.Executors
	}
	if u.HasChildren != nil {
		d.HasChildren = *u.HasChildren
	}
	if u.Children != nil {
		d.Children = *u.Children
	}
	if u.Guardians != nil {
		d.Guardians = *u.Guardians
	}
	if u.Beneficiaries != nil {
		d.Beneficiaries = *u.Beneficiaries
	}
	if u.ResiduaryBeneficiary != nil {
		d.ResiduaryBeneficiary = *u.ResiduaryBeneficiary
	}
	if u.Witnesses != nil {
		d.Witnesses = *u.Witnesses
	}
	if u.DonationAmount != nil {
		d.DonationAmount = *u.DonationAmount
	}
	if u.IsPremium != nil {
		d.IsPremium = *u.IsPremium
	}
	if u.PremiumConfig != nil {
		d.PremiumConfig = u.PremiumConfig
	}
	if u.SignatureData != nil {
		d.SignatureData = *u.SignatureData
	}
	if u.AcceptedTerms != nil {
		d.AcceptedTerms = *u.AcceptedTerms
	}
	if u.StripeAccountID != nil {
		d.StripeAccountID = *u.StripeAccountID
	}
}
