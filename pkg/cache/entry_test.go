package cache

import (
	"testing"
	"time"
)

func TestNewEntry(t *testing.T) {
	tests := []struct {
		name         string
		cacheControl string
		wantNil      bool
	}{
		{
			name:         "max-age produces entry",
			cacheControl: "max-age=300",
			wantNil:      false,
		},
		{
			name:         "no-store wins over max-age",
			cacheControl: "no-store, max-age=300",
			wantNil:      true,
		},
		{
			name:         "missing max-age is not cacheable",
			cacheControl: "no-cache",
			wantNil:      true,
		},
		{
			name:         "empty header is not cacheable",
			cacheControl: "",
			wantNil:      true,
		},
		{
			name:         "private with max-age is cacheable",
			cacheControl: "private, max-age=60",
			wantNil:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := NewEntry([]byte(`{"ok":true}`), tt.cacheControl)
			if (entry == nil) != tt.wantNil {
				t.Errorf("NewEntry() nil = %v, want %v", entry == nil, tt.wantNil)
			}
		})
	}
}

func TestNewEntry_ExpiresAt(t *testing.T) {
	before := time.Now().Unix()
	entry := NewEntry([]byte(`{}`), "max-age=300")
	after := time.Now().Unix()

	if entry == nil {
		t.Fatal("NewEntry() = nil, want entry")
	}
	if entry.ExpiresAt < before+300 || entry.ExpiresAt > after+300 {
		t.Errorf("ExpiresAt = %d, want around %d", entry.ExpiresAt, before+300)
	}
}

func TestEntry_FreshAt(t *testing.T) {
	entry := &Entry{ExpiresAt: 1000}

	tests := []struct {
		name string
		now  int64
		want bool
	}{
		{"well before expiry", 500, true},
		{"exactly at expiry", 1000, true},
		{"just after expiry", 1001, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entry.FreshAt(tt.now); got != tt.want {
				t.Errorf("FreshAt(%d) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestEntry_UsableAt(t *testing.T) {
	swr := uint64(120)

	tests := []struct {
		name  string
		entry *Entry
		now   int64
		want  bool
	}{
		{
			name:  "fresh entry without swr",
			entry: &Entry{ExpiresAt: 1000},
			now:   900,
			want:  true,
		},
		{
			name:  "expired entry without swr",
			entry: &Entry{ExpiresAt: 1000},
			now:   1001,
			want:  false,
		},
		{
			name:  "stale inside swr window",
			entry: &Entry{ExpiresAt: 1000, CacheControl: Directives{StaleWhileRevalidate: &swr}},
			now:   1100,
			want:  true,
		},
		{
			name:  "stale at swr boundary",
			entry: &Entry{ExpiresAt: 1000, CacheControl: Directives{StaleWhileRevalidate: &swr}},
			now:   1120,
			want:  false,
		},
		{
			name:  "stale past swr window",
			entry: &Entry{ExpiresAt: 1000, CacheControl: Directives{StaleWhileRevalidate: &swr}},
			now:   2000,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.UsableAt(tt.now); got != tt.want {
				t.Errorf("UsableAt(%d) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}
