package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	StepTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "willwizard", Name: "step_transitions_total", Help: "Number of sequencer transitions by direction."},
		[]string{"direction"},
	)
	SnapshotsWritten = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "willwizard", Name: "snapshots_written_total", Help: "Number of pending snapshots written before payment redirects."},
	)
	SnapshotsConsumed = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "willwizard", Name: "snapshots_consumed_total", Help: "Number of snapshots consumed on payment return."},
	)
	SnapshotsCorrupt = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "willwizard", Name: "snapshots_corrupt_total", Help: "Number of snapshots discarded because they failed to deserialize."},
	)
	PaymentsResolved = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "willwizard", Name: "payments_resolved_total", Help: "Number of payment verifications resolved, by outcome (restored|no_snapshot)."},
		[]string{"outcome"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "willwizard", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "willwizard", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(StepTransitions)
	reg.MustRegister(SnapshotsWritten)
	reg.MustRegister(SnapshotsConsumed)
	reg.MustRegister(SnapshotsCorrupt)
	reg.MustRegister(PaymentsResolved)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
