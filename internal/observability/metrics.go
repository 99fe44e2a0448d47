package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_http_requests_total",
		Help: "HTTP requests by method, route and status code",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	PipelineDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_pipeline_duration_seconds",
		Help:    "Duration of one filter and aggregate pass",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"view"})

	ViewCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_view_cache_lookups_total",
		Help: "View result cache lookups by outcome",
	}, []string{"result"})

	TableRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dashboard_table_rows",
		Help: "Rows in the loaded sales table",
	})
)
