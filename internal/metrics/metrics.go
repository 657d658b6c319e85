package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for analysis runs.
type Metrics struct {
	AnalysesTotal    *prometheus.CounterVec   // labels: result=ok|partial|failed
	FetchDuration    *prometheus.HistogramVec // labels: provider, lookback
	FetchErrors      *prometheus.CounterVec   // labels: provider
	UnavailableTotal *prometheus.CounterVec   // labels: indicator
	Stage2           *prometheus.GaugeVec     // labels: symbol; 1=stage 2, 0=not

	registry *prometheus.Registry
}

// NewMetrics creates the collectors and registers them on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trendscope_analyses_total",
			Help: "Symbol analyses by outcome",
		}, []string{"result"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trendscope_fetch_duration_seconds",
			Help:    "Daily bar retrieval latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider", "lookback"}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trendscope_fetch_errors_total",
			Help: "Failed daily bar retrievals",
		}, []string{"provider"}),
		UnavailableTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trendscope_indicator_unavailable_total",
			Help: "Indicators left out of a report",
		}, []string{"indicator"}),
		Stage2: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "trendscope_stage2",
			Help: "Latest Stage-2 classification per symbol",
		}, []string{"symbol"}),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(
		m.AnalysesTotal,
		m.FetchDuration,
		m.FetchErrors,
		m.UnavailableTotal,
		m.Stage2,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
