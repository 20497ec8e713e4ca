package integrations

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a package or resource doesn't exist upstream.
	ErrNotFound = errors.New("resource not found")

	// ErrRateLimited is returned when the upstream API refuses the request
	// because the caller's quota is exhausted.
	ErrRateLimited = errors.New("rate limited")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors,
	// unexpected status codes).
	ErrNetwork = errors.New("network error")
)

// StatusError reports a non-200 response. It unwraps to one of
// [ErrNotFound], [ErrRateLimited] or [ErrNetwork].
type StatusError struct {
	StatusCode int
	Err        error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: status %d", e.Err, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return e.Err }

// NewHTTPClient creates an HTTP client with the given request timeout.
// A timeout <= 0 selects the default of 10s.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = httpTimeout
	}
	return &http.Client{Timeout: timeout}
}
