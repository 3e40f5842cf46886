// Package metrics exports summarization and history metrics in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Summary outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeFallback    = "fallback"
	OutcomeRateLimited = "rate_limited"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	registry *prometheus.Registry

	summaries       *prometheus.CounterVec
	summaryLatency  *prometheus.HistogramVec
	persistFailures prometheus.Counter
	sessions        prometheus.Gauge
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		summaries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "boildown",
				Subsystem: "gateway",
				Name:      "summaries_total",
				Help:      "Summaries returned by the gateway, by mode and outcome",
			},
			[]string{"mode", "outcome"},
		),
		summaryLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "boildown",
				Subsystem: "gateway",
				Name:      "summary_latency_seconds",
				Help:      "Upstream summarization latency in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"provider"},
		),
		persistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "boildown",
			Subsystem: "history",
			Name:      "persist_failures_total",
			Help:      "History writes that failed and were reported to the user",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "boildown",
			Subsystem: "history",
			Name:      "sessions",
			Help:      "Client controllers currently held in memory",
		}),
	}

	registry.MustRegister(
		m.summaries,
		m.summaryLatency,
		m.persistFailures,
		m.sessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveSummary(mode, outcome, provider string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.summaries.WithLabelValues(mode, outcome).Inc()
	if provider != "" {
		m.summaryLatency.WithLabelValues(provider).Observe(elapsed.Seconds())
	}
}

func (m *Metrics) IncPersistFailure() {
	if m == nil {
		return
	}
	m.persistFailures.Inc()
}

func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
