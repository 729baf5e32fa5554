// Package metrics holds the Prometheus collectors of the application.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	analyses         *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec
	usageLog         *prometheus.CounterVec
	investorMatches  prometheus.Counter
	httpRequests     *prometheus.CounterVec
}

// New creates the collectors on a fresh registry so that parallel test servers don't collide.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}), //nolint:exhaustruct // defaults
	)
	factory := promauto.With(registry)
	return &Metrics{
		registry: registry,
		analyses: factory.NewCounterVec(prometheus.CounterOpts{ //nolint:exhaustruct // defaults
			Name: "existyet_analyses_total",
			Help: "Number of analysis requests by mode and result.",
		}, []string{"mode", "result"}),
		analysisDuration: factory.NewHistogramVec(prometheus.HistogramOpts{ //nolint:exhaustruct // defaults
			Name:    "existyet_analysis_duration_seconds",
			Help:    "Duration of analyses including the model completion.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 45, 60},
		}, []string{"mode"}),
		usageLog: factory.NewCounterVec(prometheus.CounterOpts{ //nolint:exhaustruct // defaults
			Name: "existyet_usage_log_appends_total",
			Help: "Number of usage log appends by outcome.",
		}, []string{"outcome"}),
		investorMatches: factory.NewCounter(prometheus.CounterOpts{ //nolint:exhaustruct // defaults
			Name: "existyet_investor_matches_total",
			Help: "Number of investor match searches.",
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{ //nolint:exhaustruct // defaults
			Name: "existyet_http_requests_total",
			Help: "Number of HTTP requests by method and status code.",
		}, []string{"method", "code"}),
	}
}

// ObserveAnalysis records a finished analysis. result is a short outcome such as "ok" or "contract_violation".
func (m *Metrics) ObserveAnalysis(mode, result string, duration time.Duration) {
	m.analyses.WithLabelValues(mode, result).Inc()
	m.analysisDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

func (m *Metrics) ObserveUsageLog(outcome string) {
	m.usageLog.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveInvestorMatch() {
	m.investorMatches.Inc()
}

// InstrumentHandler counts requests served by next.
func (m *Metrics) InstrumentHandler(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerCounter(m.httpRequests, next)
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}) //nolint:exhaustruct // defaults
}
