package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus instruments for the search core.
type Metrics struct {
	AuthAttempts         *prometheus.CounterVec
	ProviderFallbacks    *prometheus.CounterVec
	DroppedOffers        *prometheus.CounterVec
	SearchesByDataSource *prometheus.CounterVec
	SearchDuration       prometheus.Histogram
}

// NewMetrics registers and returns the service metrics on the given registerer.
// Tests pass a fresh prometheus.NewRegistry to avoid duplicate registration.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AuthAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Authentication attempts against upstream providers",
		}, []string{"provider", "outcome"}),
		ProviderFallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_fallbacks_total",
			Help:      "Transitions to the next provider in the fallback chain",
		}, []string{"provider", "reason"}),
		DroppedOffers: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_offers_total",
			Help:      "Offers dropped during normalization",
		}, []string{"provider", "reason"}),
		SearchesByDataSource: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Completed searches by data source",
		}, []string{"data_source"}),
		SearchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "End-to-end search latency",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
