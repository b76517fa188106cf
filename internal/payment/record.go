package payment

import "time"

// DonationRecord is one audited supporter transaction, shown on the admin
// dashboard.
type DonationRecord struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Amount    float64   `json:"amount" bson:"amount"`
	PayerName string    `json:"payerName" bson:"payerName"`
	Status    string    `json:"status" bson:"status"` // succeeded|pending|failed
	Email     string    `json:"email,omitempty" bson:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
