package payment

import (
	"context"
	"time"

	"github.com/ukfreewill/will-service/pkg/logger"
)

// Recorder is the payment-record collaborator boundary: it accepts an amount
// and a payer name and records an audited transaction. Callers treat it as
// fire-and-forget; no return value is consumed.
type Recorder interface {
	Record(ctx context.Context, amount float64, payerName string)
}

// Ledger implements Recorder on top of a donation Repository. Failures are
// logged and swallowed: a lost audit record must not break session resume.
type Ledger struct {
	repo Repository
}

func NewLedger(repo Repository) *Ledger {
	return &Ledger{repo: repo}
}

func (l *Ledger) Record(ctx context.Context, amount float64, payerName string) {
	rec := &DonationRecord{
		Amount:    amount,
		PayerName: payerName,
		Status:    "succeeded",
		CreatedAt: time.Now().UTC(),
	}
	if err := l.repo.Insert(ctx, rec); err != nil {
		logger.Errorf("failed to record donation (amount=%.2f): %v", amount, err)
	}
}

// List exposes the ledger for the admin dashboard.
func (l *Ledger) List(ctx context.Context) ([]*DonationRecord, error) {
	return l.repo.List(ctx)
}
