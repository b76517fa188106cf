package payment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ukfreewill/will-service/internal/snapshot"
	"github.com/ukfreewill/will-service/internal/will"
	"github.com/ukfreewill/will-service/internal/wizard"
)

type captureRecorder struct {
	mu     sync.Mutex
	amount float64
	payer  string
	calls  int
}

func (r *captureRecorder) Record(ctx context.Context, amount float64, payerName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.amount = amount
	r.payer = payerName
	r.calls++
}

func (r *captureRecorder) snapshot() (float64, string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.amount, r.payer, r.calls
}

func waitResolved(t *testing.T, sess *wizard.Session) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !sess.Verifying() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("gate did not resolve in time")
}

func TestGate_RestoresSnapshotAndResumesAtWitness(t *testing.T) {
	repo := snapshot.NewMemoryRepository()
	rec := &captureRecorder{}
	gate := NewGate(repo, rec, 10*time.Millisecond)

	sess := wizard.NewSession("s1", time.Now())

	saved := will.New(time.Now())
	saved.Testator.FullName = "Ada Lovelace"
	saved.DonationAmount = 25
	require.NoError(t, repo.Save(context.Background(), "s1", saved))

	gate.Begin(context.Background(), sess, "s1")
	require.True(t, sess.Verifying())

	waitResolved(t, sess)

	require.Equal(t, wizard.StepWitness, sess.Step())
	data := sess.Data()
	require.True(t, data.IsPremium)
	require.Equal(t, "Ada Lovelace", data.Testator.FullName)
	require.False(t, sess.PaymentPending())

	amount, payer, calls := rec.snapshot()
	require.Equal(t, 25.0, amount)
	require.Equal(t, "Ada Lovelace", payer)
	require.Equal(t, 1, calls)

	// the slot was consumed: nothing left to replay
	left, err := repo.Consume(context.Background(), "s1")
	require.NoError(t, err)
	require.Nil(t, left)
}

func TestGate_NoSnapshotIsANoOp(t *testing.T) {
	repo := snapshot.NewMemoryRepository()
	rec := &captureRecorder{}
	gate := NewGate(repo, rec, 10*time.Millisecond)

	sess := wizard.NewSession("s1", time.Now())
	sess.JumpTo(wizard.StepPersonalInfo)

	gate.Begin(context.Background(), sess, "s1")
	waitResolved(t, sess)

	require.Equal(t, wizard.StepPersonalInfo, sess.Step())
	require.False(t, sess.Data().IsPremium)
	_, _, calls := rec.snapshot()
	require.Zero(t, calls)
}

func TestGate_TeardownReleasesTimer(t *testing.T) {
	repo := snapshot.NewMemoryRepository()
	rec := &captureRecorder{}
	gate := NewGate(repo, rec, 50*time.Millisecond)

	sess := wizard.NewSession("s1", time.Now())
	require.NoError(t, repo.Save(context.Background(), "s1", will.New(time.Now())))

	ctx, cancel := context.WithCancel(context.Background())
	gate.Begin(ctx, sess, "s1")
	cancel()

	time.Sleep(100 * time.Millisecond)

	// a cancelled gate never touches the session or the slot
	require.True(t, sess.Verifying())
	left, err := repo.Consume(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, left)
	_, _, calls := rec.snapshot()
	require.Zero(t, calls)
}

func TestGate_DefaultDelay(t *testing.T) {
	gate := NewGate(snapshot.NewMemoryRepository(), &captureRecorder{}, 0)
	require.Equal(t, 2*time.Second, gate.delay)
}
