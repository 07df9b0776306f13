package solvedac

import (
	"fmt"
	"time"
)

// ErrNotFound indicates the handle does not exist on solved.ac (404).
// Surfaced verbatim to the caller; never retried.
type ErrNotFound struct {
	Handle string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("solved.ac user %q not found", e.Handle)
}

// ErrRateLimited indicates the API returned 429 or the client-side
// budget is exhausted. Carries the retry-after hint; the calling
// surface decides whether to wait.
type ErrRateLimited struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimited) Error() string {
	return fmt.Sprintf("solved.ac rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimited) Unwrap() error { return e.Err }

// ErrUnavailable indicates a network failure or 5xx response.
// Transient; the resilient client retries it with backoff.
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("solved.ac unavailable: %v", e.Err)
	}
	return "solved.ac unavailable"
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }
