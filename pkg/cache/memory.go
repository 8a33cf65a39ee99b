package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultMaxEntries is the capacity used when none is configured.
const DefaultMaxEntries = 100

// MemoryStore is an in-memory Store with FIFO eviction: under capacity
// pressure the oldest-inserted entry goes first. Insertion order, not access
// order, decides eviction; refreshing a value does not reset its priority.
//
// The entry map and the order queue are guarded together by one RWMutex.
// Every mutation that touches both happens in a single exclusive section, so
// a concurrent reader never observes a key in one structure but not the
// other.
type MemoryStore struct {
	mu         sync.RWMutex
	entries    map[string]*Entry
	order      []string // insertion order, oldest first
	maxEntries int
}

// NewMemoryStore creates a MemoryStore holding at most maxEntries entries.
// Non-positive values fall back to DefaultMaxEntries.
func NewMemoryStore(maxEntries int) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryStore{
		entries:    make(map[string]*Entry, maxEntries),
		order:      make([]string, 0, maxEntries),
		maxEntries: maxEntries,
	}
}

// Get returns the entry for key if it is fresh or within its
// stale-while-revalidate window, nil otherwise. Fully expired entries are
// left in place; removing them here would need the write lock on every read.
func (s *MemoryStore) Get(_ context.Context, key string) *Entry {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		CacheMisses.Inc()
		return nil
	}

	now := time.Now().Unix()
	switch {
	case entry.FreshAt(now):
		CacheHits.WithLabelValues("fresh").Inc()
		return entry
	case entry.UsableAt(now):
		CacheHits.WithLabelValues("stale").Inc()
		return entry
	default:
		CacheMisses.Inc()
		return nil
	}
}

// Set inserts or replaces the entry for key. Inserting a new key while at
// capacity evicts from the FIFO head in amortized O(1); replacing an
// existing key keeps its position in the eviction order.
func (s *MemoryStore) Set(_ context.Context, key string, entry *Entry) {
	if entry == nil || entry.CacheControl.NoStore {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists {
		for len(s.entries) >= s.maxEntries && len(s.order) > 0 {
			oldest := s.order[0]
			s.order = s.order[1:]
			delete(s.entries, oldest)
			CacheEvictions.Inc()
		}
		s.order = append(s.order, key)
	}

	s.entries[key] = entry
	CacheEntries.WithLabelValues("memory").Set(float64(len(s.entries)))
}

// Delete removes the entry for key from both structures. The order scan is
// O(n); deletes are rare and the two structures must stay in sync.
func (s *MemoryStore) Delete(_ context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return
	}
	delete(s.entries, key)

	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	CacheEntries.WithLabelValues("memory").Set(float64(len(s.entries)))
}

// Size returns the current number of entries.
func (s *MemoryStore) Size(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear removes all entries.
func (s *MemoryStore) Clear(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*Entry, s.maxEntries)
	s.order = s.order[:0]
	CacheEntries.WithLabelValues("memory").Set(0)
}
