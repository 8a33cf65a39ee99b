package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

func freshEntry(body string) *Entry {
	return NewEntry([]byte(body), "max-age=300")
}

func TestMemoryStore_SetAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10)

	store.Set(ctx, "GET:/a", freshEntry(`{"a":1}`))

	entry := store.Get(ctx, "GET:/a")
	if entry == nil {
		t.Fatal("Get() = nil, want entry")
	}
	if string(entry.Value) != `{"a":1}` {
		t.Errorf("Value = %s, want {\"a\":1}", entry.Value)
	}

	if store.Get(ctx, "GET:/missing") != nil {
		t.Error("Get() on missing key should return nil")
	}
}

func TestMemoryStore_NilAndNoStoreIgnored(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10)

	store.Set(ctx, "GET:/nil", nil)
	store.Set(ctx, "GET:/nostore", &Entry{
		Value:        []byte(`{}`),
		ExpiresAt:    1 << 40,
		CacheControl: Directives{NoStore: true},
	})

	if store.Size(ctx) != 0 {
		t.Errorf("Size() = %d, want 0", store.Size(ctx))
	}
}

func TestMemoryStore_ExpiredEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10)

	store.Set(ctx, "GET:/old", &Entry{
		Value:     []byte(`{}`),
		ExpiresAt: 1000, // long past
	})

	if store.Get(ctx, "GET:/old") != nil {
		t.Error("expired entry should be a miss")
	}
	// Lazy expiry: the entry stays in the store until overwritten or evicted.
	if store.Size(ctx) != 1 {
		t.Errorf("Size() = %d, want 1", store.Size(ctx))
	}
}

func TestMemoryStore_StaleWhileRevalidateHit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10)
	swr := uint64(1 << 40)

	store.Set(ctx, "GET:/stale", &Entry{
		Value:        []byte(`{"stale":true}`),
		ExpiresAt:    1000,
		CacheControl: Directives{StaleWhileRevalidate: &swr},
	})

	entry := store.Get(ctx, "GET:/stale")
	if entry == nil {
		t.Fatal("stale entry inside its window should be served")
	}
	if string(entry.Value) != `{"stale":true}` {
		t.Errorf("Value = %s, want {\"stale\":true}", entry.Value)
	}
}

func TestMemoryStore_FIFOEviction(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(3)

	for i := 1; i <= 4; i++ {
		store.Set(ctx, fmt.Sprintf("GET:/%d", i), freshEntry(`{}`))
	}

	if store.Size(ctx) != 3 {
		t.Errorf("Size() = %d, want 3", store.Size(ctx))
	}
	if store.Get(ctx, "GET:/1") != nil {
		t.Error("oldest entry should have been evicted")
	}
	for i := 2; i <= 4; i++ {
		if store.Get(ctx, fmt.Sprintf("GET:/%d", i)) == nil {
			t.Errorf("entry %d should still be present", i)
		}
	}
}

func TestMemoryStore_ReinsertKeepsEvictionPosition(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(3)

	store.Set(ctx, "GET:/1", freshEntry(`{"v":1}`))
	store.Set(ctx, "GET:/2", freshEntry(`{}`))
	store.Set(ctx, "GET:/3", freshEntry(`{}`))

	// Refresh the oldest key at capacity. It must not evict anything and
	// must not move to the back of the queue.
	store.Set(ctx, "GET:/1", freshEntry(`{"v":2}`))

	if store.Size(ctx) != 3 {
		t.Errorf("Size() after refresh = %d, want 3", store.Size(ctx))
	}
	if entry := store.Get(ctx, "GET:/1"); entry == nil || string(entry.Value) != `{"v":2}` {
		t.Error("refresh should replace the stored value")
	}

	// The next new key still evicts /1 first.
	store.Set(ctx, "GET:/4", freshEntry(`{}`))
	if store.Get(ctx, "GET:/1") != nil {
		t.Error("refreshed key should keep its original eviction position")
	}
	if store.Get(ctx, "GET:/2") == nil {
		t.Error("second-oldest entry should survive")
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10)

	store.Set(ctx, "GET:/a", freshEntry(`{}`))
	store.Set(ctx, "GET:/b", freshEntry(`{}`))

	store.Delete(ctx, "GET:/a")
	store.Delete(ctx, "GET:/missing") // no-op

	if store.Get(ctx, "GET:/a") != nil {
		t.Error("deleted entry should be gone")
	}
	if store.Size(ctx) != 1 {
		t.Errorf("Size() = %d, want 1", store.Size(ctx))
	}
}

func TestMemoryStore_Clear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10)

	for i := 0; i < 5; i++ {
		store.Set(ctx, fmt.Sprintf("GET:/%d", i), freshEntry(`{}`))
	}
	store.Clear(ctx)

	if store.Size(ctx) != 0 {
		t.Errorf("Size() after Clear = %d, want 0", store.Size(ctx))
	}

	// The store stays usable after clearing.
	store.Set(ctx, "GET:/again", freshEntry(`{}`))
	if store.Get(ctx, "GET:/again") == nil {
		t.Error("store should accept entries after Clear")
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(16)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				key := fmt.Sprintf("GET:/%d", (g*100+i)%32)
				store.Set(ctx, key, freshEntry(`{}`))
				store.Get(ctx, key)
				if i%10 == 0 {
					store.Delete(ctx, key)
				}
			}
		}(g)
	}
	wg.Wait()

	// Map and eviction queue must agree after the dust settles.
	store.mu.RLock()
	defer store.mu.RUnlock()
	if len(store.entries) != len(store.order) {
		t.Errorf("entries = %d, order = %d, want equal", len(store.entries), len(store.order))
	}
	if len(store.entries) > store.maxEntries {
		t.Errorf("entries = %d exceeds capacity %d", len(store.entries), store.maxEntries)
	}
	for _, key := range store.order {
		if _, ok := store.entries[key]; !ok {
			t.Errorf("order references missing key %q", key)
		}
	}
}
