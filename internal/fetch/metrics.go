package fetch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK        = "ok"
	outcomeRetryable = "retryable"
	outcomePermanent = "permanent"
	outcomeMalformed = "malformed"
)

var (
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "weekendly",
			Name:      "upstream_requests_total",
			Help:      "Upstream HTTP attempts by adapter and outcome.",
		},
		[]string{"adapter", "outcome"},
	)

	cacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "weekendly",
			Name:      "upstream_cache_hits_total",
			Help:      "Upstream requests served from the response cache.",
		},
		[]string{"adapter"},
	)

	fallbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "weekendly",
			Name:      "fallback_total",
			Help:      "Searches answered from the static catalog.",
		},
		[]string{"adapter"},
	)
)

// RecordFallback counts a search that was answered from fallback data
func RecordFallback(adapter string) {
	fallbackTotal.WithLabelValues(adapter).Inc()
}
