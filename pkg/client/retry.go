package client

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for request execution and retries.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "refyne_requests_total",
		Help: "Total API requests by method and outcome",
	}, []string{"method", "status"})

	retriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "refyne_retries_total",
		Help: "Total retry attempts by reason",
	}, []string{"reason"})

	retryBackoffSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "refyne_retry_backoff_seconds",
		Help:    "Backoff duration before retries by reason",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"reason"})

	retriesExhaustedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "refyne_retries_exhausted_total",
		Help: "Total requests that ran out of retry attempts by reason",
	}, []string{"reason"})
)

// Retry reasons used in logs and metric labels.
const (
	reasonNetwork   = "network"
	reasonRateLimit = "rate_limit"
	reasonServer    = "server"
)

// defaultRetryAfter is the minimum wait after a 429, applied when the server
// sends no usable Retry-After header or a shorter one.
const defaultRetryAfter = 1 * time.Second

// maxBackoffBaseSeconds caps the exponential backoff base.
const maxBackoffBaseSeconds = 30

// backoffDuration returns the wait before re-issuing attempt n (1-based): an
// exponential base of min(2^(n-1), 30) seconds plus jitter drawn uniformly
// from [0, 0.25*base], so many concurrent callers do not retry in lockstep.
func backoffDuration(attempt int) time.Duration {
	var baseSecs int64 = maxBackoffBaseSeconds
	if attempt < 6 {
		baseSecs = 1 << uint(attempt-1)
	}
	base := time.Duration(baseSecs) * time.Second
	jitter := time.Duration(rand.Int63n(int64(base)/4 + 1))
	return base + jitter
}

// executeWithRetry runs the retry state machine for one logical request.
// Attempt outcomes are evaluated in order: timeouts are terminal, other
// transport errors and 5xx responses back off exponentially, 429 waits for
// the server's Retry-After hint, and everything else returns to the caller
// for status translation. Exhausted retries surface the last underlying
// cause, never a synthetic give-up error.
func (c *Client) executeWithRetry(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	for attempt := 1; ; attempt++ {
		req, err := c.newRequest(ctx, method, url, body)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			terr := classifyTransport(err)
			if terr.Timeout() {
				requestsTotal.WithLabelValues(method, "timeout").Inc()
				c.logger.Warn().
					Err(err).
					Str("method", method).
					Str("url", url).
					Msg("Request timed out, not retrying")
				return nil, terr
			}

			requestsTotal.WithLabelValues(method, "network_error").Inc()
			if attempt <= c.maxRetries {
				wait := backoffDuration(attempt)
				c.logger.Warn().
					Err(err).
					Int("attempt", attempt).
					Int("max_retries", c.maxRetries).
					Dur("backoff", wait).
					Msg("Network error, retrying")
				if err := c.waitRetry(ctx, wait, reasonNetwork); err != nil {
					return nil, err
				}
				continue
			}

			retriesExhaustedTotal.WithLabelValues(reasonNetwork).Inc()
			c.logger.Warn().
				Err(err).
				Int("max_retries", c.maxRetries).
				Msg("Retries exhausted after network errors")
			return nil, terr
		}

		status := resp.StatusCode
		requestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()

		if status == http.StatusTooManyRequests && attempt <= c.maxRetries {
			wait := retryAfterHeader(resp.Header, defaultRetryAfter)
			if wait < defaultRetryAfter {
				wait = defaultRetryAfter
			}
			resp.Body.Close()
			c.logger.Warn().
				Int("attempt", attempt).
				Int("max_retries", c.maxRetries).
				Dur("retry_after", wait).
				Msg("Rate limited, retrying")
			if err := c.waitRetry(ctx, wait, reasonRateLimit); err != nil {
				return nil, err
			}
			continue
		}

		if status >= 500 && attempt <= c.maxRetries {
			wait := backoffDuration(attempt)
			resp.Body.Close()
			c.logger.Warn().
				Int("status", status).
				Int("attempt", attempt).
				Int("max_retries", c.maxRetries).
				Dur("backoff", wait).
				Msg("Server error, retrying")
			if err := c.waitRetry(ctx, wait, reasonServer); err != nil {
				return nil, err
			}
			continue
		}

		// Terminal: success, a non-retryable status, or an exhausted 429/5xx
		// handed back for translation.
		if attempt > 1 && (status == http.StatusTooManyRequests || status >= 500) {
			reason := reasonServer
			if status == http.StatusTooManyRequests {
				reason = reasonRateLimit
			}
			retriesExhaustedTotal.WithLabelValues(reason).Inc()
			c.logger.Warn().
				Int("status", status).
				Int("max_retries", c.maxRetries).
				Msg("Retries exhausted")
		}
		return resp, nil
	}
}

// waitRetry sleeps for d or until ctx is done. No cache lock is held while
// waiting, and an abandoned request stops without blocking others.
func (c *Client) waitRetry(ctx context.Context, d time.Duration, reason string) error {
	retriesTotal.WithLabelValues(reason).Inc()
	retryBackoffSeconds.WithLabelValues(reason).Observe(d.Seconds())

	select {
	case <-ctx.Done():
		c.logger.Warn().
			Str("reason", reason).
			Msg("Context cancelled during retry backoff")
		return fmt.Errorf("%w: %v", ErrContextCancelled, ctx.Err())
	case <-time.After(d):
		return nil
	}
}

// classifyTransport wraps a transport failure, detecting timeouts from both
// the net layer and context deadlines.
func classifyTransport(err error) *TransportError {
	timeout := errors.Is(err, context.DeadlineExceeded)
	if !timeout {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			timeout = true
		}
	}
	return &TransportError{Err: err, IsTimeout: timeout}
}
