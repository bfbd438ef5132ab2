// Package metrics exposes the dashboard's Prometheus counters.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "heartbi"

// Metrics groups the counters. All methods are safe on a nil receiver so
// components can run without instrumentation.
type Metrics struct {
	registry    *prometheus.Registry
	loads       *prometheus.CounterVec
	predictions *prometheus.CounterVec
	exports     *prometheus.CounterVec
	sessions    prometheus.Gauge
}

// New registers the counters plus Go/process collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_loads_total",
			Help:      "Dataset loads by resulting source (upload, remote, fallback).",
		}, []string{"source"}),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Risk score computations by model and label.",
		}, []string{"model", "label"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Result exports by format.",
		}, []string{"format"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Sessions currently held in memory.",
		}),
	}
	reg.MustRegister(
		m.loads, m.predictions, m.exports, m.sessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) DatasetLoaded(source string) {
	if m != nil {
		m.loads.WithLabelValues(source).Inc()
	}
}

func (m *Metrics) Predicted(model, label string) {
	if m != nil {
		m.predictions.WithLabelValues(model, label).Inc()
	}
}

func (m *Metrics) Exported(format string) {
	if m != nil {
		m.exports.WithLabelValues(format).Inc()
	}
}

func (m *Metrics) SetSessions(n int) {
	if m != nil {
		m.sessions.Set(float64(n))
	}
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
