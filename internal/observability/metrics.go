package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the Prometheus instruments for the dashboard. Construct
// one per process with a fresh registry; a nil *Metrics is safe to call.
type Metrics struct {
	Registry *prometheus.Registry

	computationsTotal   *prometheus.CounterVec
	computationDuration *prometheus.HistogramVec
	datasetRecords      *prometheus.GaugeVec
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	factory := promauto.With(registry)
	return &Metrics{
		Registry: registry,
		computationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_computations_total",
				Help: "Total number of analytics computations by view",
			},
			[]string{"view"},
		),
		computationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dashboard_computation_duration_seconds",
				Help:    "Analytics computation duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
			},
			[]string{"view"},
		),
		datasetRecords: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dashboard_dataset_records",
				Help: "Number of records in the loaded dataset by table",
			},
			[]string{"table"},
		),
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

func (m *Metrics) ObserveComputation(view string, start time.Time) {
	if m == nil {
		return
	}
	m.computationsTotal.WithLabelValues(view).Inc()
	m.computationDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
}

func (m *Metrics) SetDatasetSize(table string, records int) {
	if m == nil {
		return
	}
	m.datasetRecords.WithLabelValues(table).Set(float64(records))
}

func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
