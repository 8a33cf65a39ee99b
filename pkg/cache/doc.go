// Package cache provides HTTP-semantics-aware response caching for the
// Refyne client.
//
// The cache stores complete JSON response bodies keyed by request method,
// URL and a fingerprint of the caller's credential. Storage decisions follow
// the Cache-Control header of the response:
//
//   - no-store responses are never cached
//   - responses without an explicit max-age are never cached
//   - max-age determines the freshness lifetime
//   - stale-while-revalidate extends the window in which an expired entry
//     may still be served
//
// # Backends
//
// Two Store implementations ship with the package:
//
//	// In-memory, capacity-bounded, FIFO eviction
//	store := cache.NewMemoryStore(500)
//
//	// Redis-backed, shared across processes
//	store := cache.NewRedisStore(redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	}))
//
// Both are safe for concurrent use. The cache is a best-effort optimization:
// backend failures degrade to cache misses and are never surfaced to callers.
//
// # Keys
//
//	hash := cache.HashCredential(apiKey)
//	key := cache.Key("GET", "https://api.refyne.uk/api/v1/schemas", hash)
//
// Two requests with the same method, URL and credential share a key; callers
// with different credentials never see each other's cached data.
//
// # Metrics
//
// The package exports Prometheus metrics:
//
//   - refyne_cache_hits_total{freshness} - hits, split fresh/stale
//   - refyne_cache_misses_total - misses
//   - refyne_cache_evictions_total - FIFO evictions under capacity pressure
//   - refyne_cache_entries{backend} - current entry count
//   - refyne_cache_errors_total{operation} - backend operation errors
package cache
