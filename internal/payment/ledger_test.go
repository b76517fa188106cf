package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLedger_RecordAndList(t *testing.T) {
	ledger := NewLedger(NewMemoryRepository())
	ctx := context.Background()

	ledger.Record(ctx, 10, "Payer One")
	ledger.Record(ctx, 25.5, "Payer Two")

	recs, err := ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "Payer One", recs[0].PayerName)
	require.Equal(t, "succeeded", recs[0].Status)
	require.NotEmpty(t, recs[0].ID)
	require.False(t, recs[0].CreatedAt.IsZero())
	require.Equal(t, 25.5, recs[1].Amount)
}

func TestMemoryRepository_ListReturnsCopy(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, &DonationRecord{Amount: 1, PayerName: "a"}))

	recs, err := repo.List(ctx)
	require.NoError(t, err)
	recs[0] = nil

	again, err := repo.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, again[0])
}
