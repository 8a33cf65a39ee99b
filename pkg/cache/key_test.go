package cache

import (
	"testing"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		url            string
		credentialHash string
		want           string
	}{
		{
			name:   "unauthenticated get",
			method: "GET",
			url:    "https://api.refyne.uk/api/v1/schemas",
			want:   "GET:https://api.refyne.uk/api/v1/schemas",
		},
		{
			name:   "method is uppercased",
			method: "get",
			url:    "https://api.refyne.uk/api/v1/schemas",
			want:   "GET:https://api.refyne.uk/api/v1/schemas",
		},
		{
			name:           "credential hash appended",
			method:         "GET",
			url:            "https://api.refyne.uk/api/v1/usage",
			credentialHash: "abcdef0123456789",
			want:           "GET:https://api.refyne.uk/api/v1/usage:abcdef0123456789",
		},
		{
			name:   "query string is significant",
			method: "GET",
			url:    "https://api.refyne.uk/api/v1/jobs?limit=10",
			want:   "GET:https://api.refyne.uk/api/v1/jobs?limit=10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.method, tt.url, tt.credentialHash); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKey_DistinctURLsProduceDistinctKeys(t *testing.T) {
	a := Key("GET", "https://api.refyne.uk/api/v1/jobs?limit=10&offset=0", "")
	b := Key("GET", "https://api.refyne.uk/api/v1/jobs?offset=0&limit=10", "")
	if a == b {
		t.Errorf("keys for textually different URLs should differ, both = %q", a)
	}
}

func TestHashCredential(t *testing.T) {
	hash := HashCredential("rfn_live_secret")

	if len(hash) != 16 {
		t.Errorf("hash length = %d, want 16", len(hash))
	}
	for _, r := range hash {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
			t.Errorf("hash contains non-hex character %q", r)
		}
	}

	if HashCredential("rfn_live_secret") != hash {
		t.Error("hash should be deterministic")
	}
	if HashCredential("rfn_live_other") == hash {
		t.Error("different credentials should produce different hashes")
	}
}
