package payment

import (
	"context"
	"time"

	"github.com/ukfreewill/will-service/internal/snapshot"
	"github.com/ukfreewill/will-service/internal/wizard"
	"github.com/ukfreewill/will-service/pkg/logger"
	"github.com/ukfreewill/will-service/pkg/metrics"
)

// Gate is the payment verification state machine. A session that arrives
// with a success indicator moves Idle -> AwaitingConfirmation: a fixed
// settle delay stands in for a processor status poll (the state machine is
// shaped so that swapping the timer for a real status check does not change
// anything else). On elapse the gate resolves: it consumes the pending
// snapshot and, when one was recovered, restores it as the session's
// Document Model with premium set, records the audited transaction and
// resumes the sequencer at the witness step. With no snapshot the gate
// resolves as a no-op and normal routing takes over.
//
// The timer is bound to the session's lifetime context, so tearing the
// session down releases it; a cancelled gate never touches session state.
type Gate struct {
	snapshots snapshot.Repository
	recorder  Recorder
	delay     time.Duration
}

// NewGate creates a gate with the given settle delay. delay <= 0 falls back
// to 2s, the delay the product has always shipped with.
func NewGate(snapshots snapshot.Repository, recorder Recorder, delay time.Duration) *Gate {
	if delay <= 0 {
		delay = 2 * time.Second
	}
	return &Gate{snapshots: snapshots, recorder: recorder, delay: delay}
}

// Begin puts the session into the verifying state and starts the settle
// timer. ctx must be the session's lifetime context. slot names the snapshot
// slot to consume; the return redirect echoes the originating session id, so
// this is usually not the id of sess itself (a return is a fresh load).
func (g *Gate) Begin(ctx context.Context, sess *wizard.Session, slot string) {
	if slot == "" {
		slot = sess.ID
	}
	sess.BeginVerification()
	go g.run(ctx, sess, slot)
}

func (g *Gate) run(ctx context.Context, sess *wizard.Session, slot string) {
	timer := time.NewTimer(g.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}
	g.resolve(ctx, sess, slot)
}

func (g *Gate) resolve(ctx context.Context, sess *wizard.Session, slot string) {
	data, err := g.snapshots.Consume(ctx, slot)
	if err != nil {
		// treat a failed read like a missing snapshot; the session simply
		// stays where it was
		logger.Warnf("session %s: snapshot consume failed (slot %s): %v", sess.ID, slot, err)
		data = nil
	}
	if data == nil {
		sess.ResolveVerification(nil)
		metrics.PaymentsResolved.WithLabelValues("no_snapshot").Inc()
		return
	}
	amount := data.DonationAmount
	payer := data.Testator.FullName
	sess.ResolveVerification(data)
	g.recorder.Record(ctx, amount, payer)
	metrics.PaymentsResolved.WithLabelValues("restored").Inc()
	logger.Infof("session %s: payment verified, resumed at %s", sess.ID, wizard.ResumptionStep)
}
