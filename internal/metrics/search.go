package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Search engine Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stash",
			Name:      "searches_total",
			Help:      "Total number of search calls by outcome",
		},
		[]string{"outcome"}, // results / empty / idle / superseded / canceled
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stash",
			Name:      "search_duration_seconds",
			Help:      "Search resolution time in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"outcome"},
	)

	SearchCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "stash",
			Name:      "search_candidates",
			Help:      "Items left after structured filtering, per search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	ContentItems = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "stash",
			Name:      "content_items",
			Help:      "Items in the search engine working set",
		},
	)

	ItemStoreOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stash",
			Name:      "item_store_operations_total",
			Help:      "Item store operations by type and status",
		},
		[]string{"op", "status"}, // status: ok / error
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchCandidates)
	prometheus.MustRegister(ContentItems)
	prometheus.MustRegister(ItemStoreOperationsTotal)
	searchMetricsRegistered = true
}

// SearchRecorder reports search telemetry to Prometheus.
type SearchRecorder struct{}

// NewSearchRecorder creates a SearchRecorder.
func NewSearchRecorder() *SearchRecorder {
	return &SearchRecorder{}
}

// ObserveSearch records one search call.
func (*SearchRecorder) ObserveSearch(outcome string, duration time.Duration, candidates int) {
	SearchesTotal.WithLabelValues(outcome).Inc()
	SearchDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	if candidates > 0 {
		SearchCandidates.Observe(float64(candidates))
	}
}

// SetContentSize records the working set size.
func (*SearchRecorder) SetContentSize(n int) {
	ContentItems.Set(float64(n))
}
