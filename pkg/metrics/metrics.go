// Package metrics provides the centralized Prometheus metrics registry for
// the Refyne client. All metrics are defined in their respective packages
// (client, cache) to maintain modularity and avoid circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the Refyne client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Cache Metrics (pkg/cache):
//   - refyne_cache_hits_total{freshness} (Counter): Cache hits by freshness (fresh, stale)
//   - refyne_cache_misses_total (Counter): Cache misses
//   - refyne_cache_evictions_total (Counter): Entries evicted to make room
//   - refyne_cache_entries{backend} (Gauge): Current entry count by backend
//   - refyne_cache_errors_total{operation} (Counter): Cache backend operation errors
//
// Request Metrics (pkg/client):
//   - refyne_requests_total{method, status} (Counter): Total requests by method and outcome
//
// Retry Metrics (pkg/client):
//   - refyne_retries_total{reason} (Counter): Retry attempts by reason (network, rate_limit, server)
//   - refyne_retry_backoff_seconds{reason} (Histogram): Backoff duration by reason
//   - refyne_retries_exhausted_total{reason} (Counter): Requests that exhausted max retries
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(refyne_cache_hits_total[5m])) /
//   (sum(rate(refyne_cache_hits_total[5m])) + sum(rate(refyne_cache_misses_total[5m])))
//
//   # Rate Limit Pressure
//   rate(refyne_retries_total{reason="rate_limit"}[5m])
//
//   # Retry Exhaustion Rate
//   rate(refyne_retries_exhausted_total[5m])
//
//   # P95 Backoff Duration
//   histogram_quantile(0.95, rate(refyne_retry_backoff_seconds_bucket[5m]))
