package cache

import "context"

// Store is the cache backend contract used by the client. Implementations
// must be safe for concurrent use, and reads must not block other reads.
//
// The cache is best-effort: backend failures are handled inside the
// implementation (logged, reported as misses) and never surfaced, so
// correctness of callers cannot depend on cache coherence.
type Store interface {
	// Get returns a usable entry for the key: fresh, or expired but within
	// its stale-while-revalidate window. Returns nil on a miss. Fully
	// expired entries count as misses; physically removing them is left to
	// writers so the read path stays lock-light.
	Get(ctx context.Context, key string) *Entry

	// Set stores an entry, evicting oldest-inserted entries while the store
	// is at capacity. Entries marked no-store are silently discarded.
	Set(ctx context.Context, key string, entry *Entry)

	// Delete removes the entry for the key, if present.
	Delete(ctx context.Context, key string)

	// Size returns the current number of stored entries.
	Size(ctx context.Context) int

	// Clear removes all entries.
	Clear(ctx context.Context)
}
