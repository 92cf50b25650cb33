package moderation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes operational counters for the moderation workflow.
type Metrics struct {
	activityUpdates prometheus.Counter
	proposalsTotal  *prometheus.CounterVec
	removalsTotal   *prometheus.CounterVec
	purgeDuration   prometheus.Histogram
}

// InitMetrics creates and registers the moderation metrics. A nil registerer
// falls back to the default registry.
func InitMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		activityUpdates: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "activity_updates_total",
				Help:      "Total number of recorded activity updates",
			},
		),
		proposalsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "removal_proposals_total",
				Help:      "Total number of removal proposals by outcome",
			},
			[]string{"outcome"},
		),
		removalsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "removals_total",
				Help:      "Total number of processed removal candidates by result",
			},
			[]string{"result"},
		),
		purgeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "purge_duration_seconds",
				Help:      "Duration of removal batches",
				Buckets:   []float64{.5, 1, 5, 15, 60, 300, 900},
			},
		),
	}

	reg.MustRegister(m.activityUpdates, m.proposalsTotal, m.removalsTotal, m.purgeDuration)

	return m
}

// ActivityUpdate counts one recorded activity upsert.
func (m *Metrics) ActivityUpdate() {
	if m == nil {
		return
	}
	m.activityUpdates.Inc()
}

// Proposal counts a proposal outcome: proposed, confirmed, cancelled.
func (m *Metrics) Proposal(outcome string) {
	if m == nil {
		return
	}
	m.proposalsTotal.WithLabelValues(outcome).Inc()
}

// Removals adds n candidates processed with the given result: removed,
// skipped, failed.
func (m *Metrics) Removals(result string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.removalsTotal.WithLabelValues(result).Add(float64(n))
}

// ObservePurge records the wall time of one removal batch.
func (m *Metrics) ObservePurge(d time.Duration) {
	if m == nil {
		return
	}
	m.purgeDuration.Observe(d.Seconds())
}
