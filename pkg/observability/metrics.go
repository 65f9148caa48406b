package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors fed by lookup events.
type Metrics struct {
	Lookups  *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
	Reports  *prometheus.CounterVec
	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them on reg.
// When reg is also a Gatherer (a *prometheus.Registry, or the default
// registerer) Handler serves it.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wayfinder_lookups_total",
				Help: "Total number of step lookups by match kind",
			},
			[]string{"flow", "match"},
		),
		Latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wayfinder_lookup_duration_seconds",
				Help:    "Duration of step lookups, normalization included",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"flow"},
		),
		Reports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wayfinder_reports_total",
				Help: "Total number of flow reports",
			},
			[]string{"flow"},
		),
	}
	reg.MustRegister(m.Lookups, m.Latency, m.Reports)

	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	} else {
		m.gatherer = prometheus.DefaultGatherer
	}
	return m
}

// Hooks returns lookup hooks that record into m.
func (m *Metrics) Hooks() domain.LookupHooks {
	return domain.LookupHooks{
		OnResolve: func(_ context.Context, e *domain.ResolveEvent) {
			m.Lookups.WithLabelValues(e.Flow, string(e.Kind)).Inc()
			m.Latency.WithLabelValues(e.Flow).Observe(e.Duration.Seconds())
		},
		OnReport: func(_ context.Context, e *domain.ReportEvent) {
			m.Reports.WithLabelValues(e.Flow).Inc()
		},
	}
}

// Handler serves the registry m was registered on.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
