package cache

import (
	"strconv"
	"strings"
)

// Directives holds the parsed directives of a Cache-Control response header.
type Directives struct {
	// NoStore forbids caching the response entirely.
	NoStore bool `json:"no_store"`

	// NoCache requires revalidation before serving. Recorded but not
	// enforced during storage; see the package documentation.
	NoCache bool `json:"no_cache"`

	// Private marks the response as intended for a single user.
	Private bool `json:"private"`

	// MaxAge is the freshness lifetime in seconds. Nil when the header
	// carries no max-age directive.
	MaxAge *uint64 `json:"max_age,omitempty"`

	// StaleWhileRevalidate is the number of seconds after expiry during
	// which the entry may still be served while a refresh is due.
	StaleWhileRevalidate *uint64 `json:"stale_while_revalidate,omitempty"`
}

// ParseCacheControl parses a Cache-Control header value into Directives.
// Matching is case-insensitive, tokens are comma-separated and trimmed.
// Unknown tokens and unparseable integers are ignored; parsing never fails.
// An empty header yields the zero value, which is not cacheable (no max-age).
func ParseCacheControl(header string) Directives {
	var d Directives
	if header == "" {
		return d
	}

	for _, part := range strings.Split(header, ",") {
		token := strings.ToLower(strings.TrimSpace(part))

		switch {
		case token == "no-store":
			d.NoStore = true
		case token == "no-cache":
			d.NoCache = true
		case token == "private":
			d.Private = true
		case strings.HasPrefix(token, "max-age="):
			if v, err := strconv.ParseUint(strings.TrimPrefix(token, "max-age="), 10, 64); err == nil {
				d.MaxAge = &v
			}
		case strings.HasPrefix(token, "stale-while-revalidate="):
			if v, err := strconv.ParseUint(strings.TrimPrefix(token, "stale-while-revalidate="), 10, 64); err == nil {
				d.StaleWhileRevalidate = &v
			}
		}
	}

	return d
}
