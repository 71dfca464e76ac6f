package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	DocumentsSaved = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "docstore", Name: "documents_saved_total", Help: "Number of successful document saves."},
	)
	SearchRequests = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "docstore", Name: "search_requests_total", Help: "Number of search requests served."},
	)
	SearchMatches = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "docstore", Name: "search_matches_total", Help: "Total documents returned across all searches."},
	)
	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "docstore", Name: "cache_hits_total", Help: "Document lookups answered from the Redis cache."},
	)
	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "docstore", Name: "cache_misses_total", Help: "Document lookups that fell through to the repository."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docstore", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docstore", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(
		DocumentsSaved,
		SearchRequests,
		SearchMatches,
		CacheHits,
		CacheMisses,
		RateLimitAllowed,
		RateLimitRejected,
	)
}
