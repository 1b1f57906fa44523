// Package observability exposes Prometheus collectors for strata's edit
// operations.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics aggregates the collectors for one editing session.
type Metrics struct {
	registry *prometheus.Registry

	// Operations counts edit operations by kind and outcome.
	Operations *prometheus.CounterVec
}

// New creates a metrics set on a private registry, pre-populated with the
// standard Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "strata_edit_operations_total",
			Help: "Edit operations applied to the stage, by operation and result.",
		}, []string{"op", "result"}),
	}
	reg.MustRegister(
		m.Operations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveOp records one operation outcome.
func (m *Metrics) ObserveOp(op string, ok bool) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.Operations.WithLabelValues(op, result).Inc()
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
