package http

import (
	"net/http"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts editor activity across every session served by a handler.
type Metrics struct {
	registry *prometheus.Registry

	mutations *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	missing   *prometheus.CounterVec
	requests  *prometheus.CounterVec
}

// NewMetrics creates the collectors on a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "easel_mutations_total",
				Help: "Accepted collection mutations",
			},
			[]string{"op"},
		),
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "easel_rejected_writes_total",
				Help: "Writes dropped because their path did not fit the tree",
			},
			[]string{"op"},
		),
		missing: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "easel_missing_renderers_total",
				Help: "Nodes rendered without a registered renderer",
			},
			[]string{"type"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "easel_http_requests_total",
				Help: "HTTP requests by route and status",
			},
			[]string{"route", "status"},
		),
	}
	m.registry.MustRegister(m.mutations, m.rejected, m.missing, m.requests)
	return m
}

// Hooks returns editor hooks that feed the counters.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnChange: func(c domain.Change) {
			m.mutations.WithLabelValues(string(c.Op)).Inc()
		},
		OnRejected: func(op domain.Op, _ domain.Path) {
			m.rejected.WithLabelValues(string(op)).Inc()
		},
		OnMissingRenderer: func(typeName string) {
			m.missing.WithLabelValues(typeName).Inc()
		},
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
