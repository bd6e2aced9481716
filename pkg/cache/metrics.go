package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks read-through hits
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Total number of read-through cache hits",
		},
	)

	// CacheMisses tracks read-through misses (compute invoked)
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_misses_total",
			Help: "Total number of read-through cache misses",
		},
	)

	// CacheInvalidations tracks tag invalidations by tag
	CacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_invalidations_total",
			Help: "Total number of cache tag invalidations",
		},
		[]string{"tag"},
	)

	// CacheStaleWrites tracks refills dropped because a tag moved on during compute
	CacheStaleWrites = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_stale_writes_total",
			Help: "Total number of cache writes rejected by a tag generation check",
		},
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "versions", "set", "invalidate", "decode"
	)
)
