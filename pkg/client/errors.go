package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// ErrContextCancelled is returned when the context is cancelled while
// waiting between retry attempts.
var ErrContextCancelled = errors.New("context cancelled")

// ConfigError reports invalid client construction.
type ConfigError struct {
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}

// TransportError wraps a network-level failure. Timeouts are terminal and
// never retried; other transport failures are retried up to the configured
// limit and the last one is surfaced.
type TransportError struct {
	Err       error
	IsTimeout bool
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.IsTimeout {
		return fmt.Sprintf("request timed out: %v", e.Err)
	}
	return fmt.Sprintf("transport error: %v", e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a timeout.
func (e *TransportError) Timeout() bool {
	return e.IsTimeout
}

// RateLimitError is the translation of a 429 response once retries are
// exhausted. RetryAfter carries the server's hint.
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited: %s (retry after %s)", e.Message, e.RetryAfter)
}

// APIError is a non-success API response translated by status code.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string

	// Fields holds field-level validation errors on 400 responses.
	Fields map[string][]string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("API error (status %d): %s: %s", e.StatusCode, e.Message, e.Detail)
	}
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// IsValidation reports a 400 request validation failure.
func (e *APIError) IsValidation() bool { return e.StatusCode == http.StatusBadRequest }

// IsAuthentication reports a 401 authentication failure.
func (e *APIError) IsAuthentication() bool { return e.StatusCode == http.StatusUnauthorized }

// IsForbidden reports a 403 access denial.
func (e *APIError) IsForbidden() bool { return e.StatusCode == http.StatusForbidden }

// IsNotFound reports a 404 missing resource.
func (e *APIError) IsNotFound() bool { return e.StatusCode == http.StatusNotFound }

// IsServerError reports a 5xx server failure that survived the retry budget.
func (e *APIError) IsServerError() bool { return e.StatusCode >= 500 }

// DecodeError reports a response body that does not match the expected shape.
type DecodeError struct {
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// errorBody is the wire shape of API error responses.
type errorBody struct {
	Error  string              `json:"error"`
	Detail string              `json:"detail"`
	Errors map[string][]string `json:"errors"`
}

// errorFromResponse translates a non-success response into a typed error.
// The response body is consumed.
func errorFromResponse(resp *http.Response) error {
	var body errorBody
	data, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(data, &body)
	if body.Error == "" {
		body.Error = "unknown error"
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{
			RetryAfter: retryAfterHeader(resp.Header, 60*time.Second),
			Message:    body.Error,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    body.Error,
		Detail:     body.Detail,
		Fields:     body.Errors,
	}
}

// retryAfterHeader parses the Retry-After header as integer seconds,
// falling back when absent or unparseable.
func retryAfterHeader(h http.Header, fallback time.Duration) time.Duration {
	if v := h.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}
