// Package metrics exposes Prometheus collectors for admission decisions.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records admission outcomes and check latency.
type Metrics struct {
	decisions     *prometheus.CounterVec
	checkDuration prometheus.Histogram
}

// New registers the collectors with the default Prometheus registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the collectors with reg. Tests pass a private registry.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		decisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ratelimiter_decisions_total",
				Help: "Total number of admission decisions by outcome",
			},
			[]string{"result"},
		),
		checkDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ratelimiter_check_duration_seconds",
				Help:    "Duration of limiter checks in seconds",
				Buckets: prometheus.ExponentialBuckets(0.000001, 2, 15), // 1µs to 16ms
			},
		),
	}
}

// RecordDecision counts one admission decision and its check latency.
func (m *Metrics) RecordDecision(allowed bool, elapsed time.Duration) {
	result := "allowed"
	if !allowed {
		result = "denied"
	}
	m.decisions.WithLabelValues(result).Inc()
	m.checkDuration.Observe(elapsed.Seconds())
}
