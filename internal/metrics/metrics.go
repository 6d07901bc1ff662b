package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mgnrega_api_http_requests_total",
			Help: "Total HTTP requests served",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mgnrega_api_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ComparisonsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mgnrega_api_district_comparisons_total",
			Help: "Total district-pair comparisons computed",
		},
	)

	NearestLookupsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mgnrega_api_nearest_district_lookups_total",
			Help: "Total coordinate-to-district resolutions",
		},
	)

	MetricSyncsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mgnrega_api_metric_syncs_total",
			Help: "Total metric upserts from the external sync job",
		},
		[]string{"status"},
	)
)
