// Package metrics exposes Prometheus instrumentation for the dataset load,
// aggregation requests and the HTTP layer.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	DatasetRows     prometheus.Gauge
	DatasetLoads    *prometheus.CounterVec
	DatasetLoadTime prometheus.Histogram
	Aggregations    *prometheus.CounterVec
	SearchCache     *prometheus.CounterVec
	Selections      prometheus.Gauge
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gradeview_dataset_rows",
			Help: "Grade distribution rows in the loaded dataset.",
		}),
		DatasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gradeview_dataset_loads_total",
			Help: "Dataset load attempts by result.",
		}, []string{"result"}),
		DatasetLoadTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gradeview_dataset_load_seconds",
			Help:    "Time to fetch and parse the dataset.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		Aggregations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gradeview_aggregations_total",
			Help: "Course aggregations served by view.",
		}, []string{"view"}),
		SearchCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gradeview_search_cache_total",
			Help: "Search option cache lookups by result.",
		}, []string{"result"}),
		Selections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gradeview_selected_courses",
			Help: "Courses in the selected list.",
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gradeview_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gradeview_http_request_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	reg.MustRegister(
		m.DatasetRows,
		m.DatasetLoads,
		m.DatasetLoadTime,
		m.Aggregations,
		m.SearchCache,
		m.Selections,
		m.Requests,
		m.RequestDuration,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveLoad records a dataset load attempt.
func (m *Metrics) ObserveLoad(rows int, elapsed time.Duration, err error) {
	m.DatasetLoadTime.Observe(elapsed.Seconds())
	if err != nil {
		m.DatasetLoads.WithLabelValues("error").Inc()
		return
	}
	m.DatasetLoads.WithLabelValues("ok").Inc()
	m.DatasetRows.Set(float64(rows))
}

// Handler serves this registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
