// Package metric provides Prometheus metrics for SyncBridge.
//
// It exposes counters and histograms for synchronous call outcomes,
// in-flight waits and marker cleanup behavior.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Call outcome label values.
const (
	OutcomeCompleted = "completed"
	OutcomeStopped   = "stopped"
	OutcomeError     = "error"
)

// Registry holds all application metrics.
type Registry struct {
	// CallsTotal counts synchronous calls by outcome.
	CallsTotal *prometheus.CounterVec

	// WaitsInFlight tracks the number of callers currently blocked
	// in the wait loop. The system deliberately does not bound this.
	WaitsInFlight prometheus.Gauge

	// WaitDuration samples how long callers stayed blocked.
	WaitDuration prometheus.Histogram

	// MarkerRemoveRetries counts retried marker file deletions.
	MarkerRemoveRetries prometheus.Counter

	reg *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		CallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "syncbridge",
			Name:      "calls_total",
			Help:      "Synchronous calls by outcome.",
		}, []string{"outcome"}),
		WaitsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "syncbridge",
			Name:      "waits_in_flight",
			Help:      "Callers currently blocked in the wait loop.",
		}),
		WaitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "syncbridge",
			Name:      "wait_duration_seconds",
			Help:      "Time callers spent blocked waiting for completion.",
			Buckets:   prometheus.DefBuckets,
		}),
		MarkerRemoveRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "syncbridge",
			Name:      "marker_remove_retries_total",
			Help:      "Retried marker file deletions.",
		}),
		reg: reg,
	}

	reg.MustRegister(
		r.CallsTotal,
		r.WaitsInFlight,
		r.WaitDuration,
		r.MarkerRemoveRetries,
	)

	return r
}

// Handler returns an HTTP handler exposing the registry in Prometheus format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
