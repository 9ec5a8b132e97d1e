package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EscrowMetrics holds the service metric vectors.
type EscrowMetrics struct {
	TransitionsTotal         prometheus.CounterVec
	TransitionsRejectedTotal prometheus.CounterVec

	RemindersSentTotal prometheus.CounterVec
	AutoCompletedTotal prometheus.Counter
	SweepErrorsTotal   prometheus.CounterVec
	SweepDuration      prometheus.HistogramVec

	DisputesOpenedTotal   prometheus.Counter
	DisputesResolvedTotal prometheus.CounterVec

	DeletionsProcessedTotal prometheus.CounterVec
}

func NewEscrowMetrics() *EscrowMetrics {
	return &EscrowMetrics{
		TransitionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_transitions_total",
				Help: "Applied status transitions by source, target and actor role",
			},
			[]string{"from", "to", "actor_role"},
		),

		TransitionsRejectedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_transitions_rejected_total",
				Help: "Transition requests rejected by the adjacency guard",
			},
			[]string{"from", "to"},
		),

		RemindersSentTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_reminders_sent_total",
				Help: "Deadline reminders emitted by kind and threshold",
			},
			[]string{"kind", "threshold"},
		),

		AutoCompletedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "escrow_auto_completed_total",
				Help: "Transactions auto-completed on inspection deadline expiry",
			},
		),

		SweepErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_sweep_errors_total",
				Help: "Per-entity failures during batch sweeps",
			},
			[]string{"sweep"},
		),

		SweepDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "escrow_sweep_duration_seconds",
				Help:    "Duration of one full sweep run",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
			},
			[]string{"sweep"},
		),

		DisputesOpenedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "escrow_disputes_opened_total",
				Help: "Disputes opened",
			},
		),

		DisputesResolvedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_disputes_resolved_total",
				Help: "Disputes resolved by outcome",
			},
			[]string{"resolution"},
		),

		DeletionsProcessedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_deletions_processed_total",
				Help: "Scheduled account deletions by outcome",
			},
			[]string{"outcome"},
		),
	}
}
