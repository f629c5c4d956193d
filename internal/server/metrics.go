package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "dopingplot"

// Metrics holds the Prometheus collectors for report generation. Each
// instance owns its registry so servers built in tests do not collide.
type Metrics struct {
	registry *prometheus.Registry

	ReportsGenerated   prometheus.Counter
	GenerationFailures *prometheus.CounterVec // labels: stage={fetch,geometry,render,store}
	RecordsPlotted     prometheus.Gauge
	GenerationDuration prometheus.Histogram
	GenerateConflicts  prometheus.Counter
}

// NewMetrics creates and registers all service metrics
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ReportsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "reports_generated_total",
			Help:      "Total reports generated and stored.",
		}),
		GenerationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "generation_failures_total",
			Help:      "Failed report generations by pipeline stage.",
		}, []string{"stage"}),
		RecordsPlotted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "records_plotted",
			Help:      "Number of records in the latest generated report.",
		}),
		GenerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "generation_duration_seconds",
			Help:      "Duration of a complete fetch, render and store cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		GenerateConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "generate_conflicts_total",
			Help:      "Generate requests rejected while another run was in progress.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ReportsGenerated,
		m.GenerationFailures,
		m.RecordsPlotted,
		m.GenerationDuration,
		m.GenerateConflicts,
	)

	return m
}

// ReportGenerated records a successful run
func (m *Metrics) ReportGenerated(duration time.Duration, records int) {
	m.ReportsGenerated.Inc()
	m.RecordsPlotted.Set(float64(records))
	m.GenerationDuration.Observe(duration.Seconds())
}

// GenerationFailed records a failed run
func (m *Metrics) GenerationFailed(stage string) {
	m.GenerationFailures.WithLabelValues(stage).Inc()
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
