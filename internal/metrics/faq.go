package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search outcomes.
const (
	SearchShort = "short"
	SearchHit   = "hit"
	SearchMiss  = "miss"
)

// FAQ Prometheus metrics.
var (
	SearchQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_queries_total",
			Help:      "Ranked search queries by outcome",
		},
		[]string{"outcome"}, // "short" / "hit" / "miss"
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of items returned by ranked search",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	SeededItemsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seeded_items_total",
			Help:      "FAQ items inserted by the startup seeder",
		},
	)
)

var faqMetricsRegistered bool

// RegisterFAQMetrics registers the search and seeding metrics. Must be called once from main.
func RegisterFAQMetrics() {
	if faqMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchQueriesTotal)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(SeededItemsTotal)
	faqMetricsRegistered = true
}

// ObserveSearch records one ranked search call.
func ObserveSearch(outcome string, results int) {
	SearchQueriesTotal.WithLabelValues(outcome).Inc()
	if outcome != SearchShort {
		SearchResults.Observe(float64(results))
	}
}
