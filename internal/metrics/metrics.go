// Package metrics exposes prometheus collectors for the identity API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics aggregates the service's prometheus collectors. A nil *Metrics is
// safe to use so tests can skip observability wiring.
type Metrics struct {
	// Resolution outcomes by record type and the key that matched.
	ResolutionOutcome *prometheus.CounterVec

	// HTTP request latency by method, route and status.
	RequestDuration *prometheus.HistogramVec
}

// New registers and returns all collectors on the default registry.
func New() *Metrics {
	return &Metrics{
		ResolutionOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "identity_resolutions_total",
			Help: "Upsert resolutions by record type and matched key (or \"new\")",
		}, []string{"record_type", "resolved_by"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "identity_http_request_duration_seconds",
			Help:    "HTTP request duration by method, route and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),
	}
}

// ObserveResolution records one upsert resolution outcome.
func (m *Metrics) ObserveResolution(recordType, resolvedBy string) {
	if m != nil {
		m.ResolutionOutcome.WithLabelValues(recordType, resolvedBy).Inc()
	}
}

// ObserveRequest records one HTTP request observation.
func (m *Metrics) ObserveRequest(method, route, status string, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
	}
}
