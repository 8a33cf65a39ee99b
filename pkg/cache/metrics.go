package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits, split by freshness ("fresh", "stale").
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refyne_cache_hits_total",
			Help: "Total number of response cache hits",
		},
		[]string{"freshness"},
	)

	// CacheMisses tracks cache misses, including fully expired entries.
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "refyne_cache_misses_total",
			Help: "Total number of response cache misses",
		},
	)

	// CacheEvictions tracks FIFO evictions under capacity pressure.
	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "refyne_cache_evictions_total",
			Help: "Total number of entries evicted under capacity pressure",
		},
	)

	// CacheEntries tracks the current entry count by backend.
	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "refyne_cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"backend"}, // "memory"
	)

	// CacheErrors tracks backend operation errors.
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refyne_cache_errors_total",
			Help: "Total number of cache backend errors",
		},
		[]string{"operation"}, // "get", "set", "delete", "size", "clear"
	)
)
