// Package client implements the Refyne API client: request execution with
// retry and backoff, rate limit handling, response caching keyed by
// method/URL/credential, and typed error translation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/refyne/refyne-go/pkg/cache"
	"github.com/refyne/refyne-go/pkg/logging"
	"github.com/refyne/refyne-go/pkg/version"
)

const (
	// DefaultBaseURL is the production Refyne API endpoint.
	DefaultBaseURL = "https://api.refyne.uk"

	// DefaultTimeout bounds a single request attempt.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the retry budget per logical request.
	DefaultMaxRetries = 3
)

// Config holds the client configuration.
type Config struct {
	// APIKey authenticates requests (required).
	APIKey string

	// BaseURL is the API endpoint. A trailing slash is stripped.
	BaseURL string

	// Timeout bounds each request attempt. Timeouts are never retried.
	Timeout time.Duration

	// MaxRetries is the number of re-attempts after a retryable failure.
	MaxRetries int

	// Cache is the response cache backend. Nil selects an in-memory FIFO
	// store with cache.DefaultMaxEntries capacity.
	Cache cache.Store

	// CacheEnabled toggles response caching for safe reads.
	CacheEnabled bool

	// UserAgentSuffix is appended to the SDK User-Agent header.
	UserAgentSuffix string
}

// DefaultConfig returns a configuration with production defaults.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:       apiKey,
		BaseURL:      DefaultBaseURL,
		Timeout:      DefaultTimeout,
		MaxRetries:   DefaultMaxRetries,
		CacheEnabled: true,
	}
}

// Client is the Refyne API client. It is safe for concurrent use; each
// logical request runs its own retry state machine, and the only state
// shared between concurrent requests is the cache store and the one-time
// API version check flag.
type Client struct {
	apiKey       string
	baseURL      string
	httpClient   *http.Client
	cache        cache.Store
	cacheEnabled bool
	userAgent    string
	maxRetries   int
	authHash     string
	logger       zerolog.Logger

	// versionChecked gates the one-time X-API-Version validation. Owned by
	// the client instance, never process-wide.
	versionChecked atomic.Bool
}

// New creates a Refyne client from cfg.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, &ConfigError{Reason: "API key is required"}
	}

	logger := logging.NewLogger("client")

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(baseURL, "https://") {
		logger.Warn().
			Str("base_url", baseURL).
			Msg("API base URL is not using HTTPS. This is insecure.")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	store := cfg.Cache
	if store == nil {
		store = cache.NewMemoryStore(cache.DefaultMaxEntries)
	}

	return &Client{
		apiKey:       cfg.APIKey,
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: timeout},
		cache:        store,
		cacheEnabled: cfg.CacheEnabled,
		userAgent:    version.BuildUserAgent(cfg.UserAgentSuffix),
		maxRetries:   cfg.MaxRetries,
		authHash:     cache.HashCredential(cfg.APIKey),
		logger:       logger,
	}, nil
}

// BaseURL returns the configured API endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Cache returns the response cache store.
func (c *Client) Cache() cache.Store {
	return c.cache
}

// SetHTTPClient replaces the underlying HTTP client (for testing).
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// get issues a cacheable GET and decodes the response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, false)
}

// getSkipCache issues a GET that neither consults nor populates the cache.
func (c *Client) getSkipCache(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, true)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, false)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out, false)
}

func (c *Client) del(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, false)
}

// do executes one logical request. Safe cacheable reads consult the cache
// before any network attempt; a hit (fresh or stale) short-circuits the
// retry state machine entirely. Only a fully successful final response is
// ever written back, so an abandoned request leaves no partial state in the
// store. State-changing methods never touch the cache.
func (c *Client) do(ctx context.Context, method, path string, body, out any, skipCache bool) error {
	url := c.baseURL + path
	cacheable := method == http.MethodGet && c.cacheEnabled && !skipCache
	key := cache.Key(method, url, c.authHash)

	if cacheable {
		if entry := c.cache.Get(ctx, key); entry != nil {
			c.logger.Debug().Str("key", key).Msg("Serving response from cache")
			if out == nil {
				return nil
			}
			if err := json.Unmarshal(entry.Value, out); err != nil {
				return &DecodeError{Err: err}
			}
			return nil
		}
	}

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = data
	}

	resp, err := c.executeWithRetry(ctx, method, url, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkAPIVersionOnce(resp); err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransport(fmt.Errorf("read response body: %w", err))
	}

	if cacheable {
		if entry := cache.NewEntry(data, resp.Header.Get("Cache-Control")); entry != nil {
			c.cache.Set(ctx, key, entry)
			c.logger.Debug().
				Str("key", key).
				Int64("expires_at", entry.ExpiresAt).
				Msg("Cached response")
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

// newRequest builds one attempt's request with the standard header set.
func (c *Client) newRequest(ctx context.Context, method, url string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// checkAPIVersionOnce validates the X-API-Version header of the first
// response this client sees. A single compare-and-swap guarantees at most
// one check across concurrent first requests.
func (c *Client) checkAPIVersionOnce(resp *http.Response) error {
	if !c.versionChecked.CompareAndSwap(false, true) {
		return nil
	}

	apiVersion := resp.Header.Get("X-API-Version")
	if apiVersion == "" {
		c.logger.Warn().Msg("API did not return X-API-Version header")
		return nil
	}

	return version.CheckCompatibility(apiVersion)
}
