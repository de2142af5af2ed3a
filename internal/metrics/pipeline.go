package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pipeline Prometheus metrics.
var (
	ExtractionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "peoplefinder",
			Name:      "extraction_requests_total",
			Help:      "Total number of filter extraction requests",
		},
		[]string{"status"},
	)

	ExtractionRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "peoplefinder",
			Name:      "extraction_request_duration_seconds",
			Help:      "Filter extraction request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	FilterCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "peoplefinder",
			Name:      "filter_cache_total",
			Help:      "Filter cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "peoplefinder",
			Name:      "search_requests_total",
			Help:      "Total number of people-search backend requests",
		},
		[]string{"status"},
	)

	SearchRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "peoplefinder",
			Name:      "search_request_duration_seconds",
			Help:      "People-search backend request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers Prometheus pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(ExtractionRequestsTotal)
	prometheus.MustRegister(ExtractionRequestDuration)
	prometheus.MustRegister(FilterCacheTotal)
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchRequestDuration)
	pipelineMetricsRegistered = true
}
