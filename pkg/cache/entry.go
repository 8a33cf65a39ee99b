package cache

import (
	"encoding/json"
	"time"
)

// Entry is a cached API response. Entries are immutable once stored: a
// refresh replaces the entry wholesale, it never mutates one in place.
type Entry struct {
	// Value is the raw JSON response body.
	Value json.RawMessage `json:"value"`

	// ExpiresAt is the unix timestamp (seconds) at which the entry stops
	// being fresh.
	ExpiresAt int64 `json:"expires_at"`

	// CacheControl carries the directives the entry was stored under.
	CacheControl Directives `json:"cache_control"`
}

// NewEntry builds an Entry from a response body and its Cache-Control
// header. Returns nil when the response must not be cached: no-store is
// present, or the header states no explicit max-age.
func NewEntry(value json.RawMessage, cacheControlHeader string) *Entry {
	cc := ParseCacheControl(cacheControlHeader)

	if cc.NoStore {
		return nil
	}
	if cc.MaxAge == nil {
		return nil
	}

	return &Entry{
		Value:        value,
		ExpiresAt:    time.Now().Unix() + int64(*cc.MaxAge),
		CacheControl: cc,
	}
}

// FreshAt reports whether the entry is still fresh at the given unix time.
func (e *Entry) FreshAt(now int64) bool {
	return now <= e.ExpiresAt
}

// UsableAt reports whether the entry may be served at the given unix time,
// counting the stale-while-revalidate window after expiry. A stale entry is
// usable but should prompt the caller to refresh.
func (e *Entry) UsableAt(now int64) bool {
	if e.FreshAt(now) {
		return true
	}
	if swr := e.CacheControl.StaleWhileRevalidate; swr != nil {
		return now < e.ExpiresAt+int64(*swr)
	}
	return false
}
