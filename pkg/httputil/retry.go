package httputil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// RetryableError marks a failure that [Retry] should try again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx response.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

// checkStatus wraps 5xx and 429 responses as retryable.
func checkStatus(url string, status int) error {
	if status >= 200 && status < 300 {
		return nil
	}
	err := &StatusError{URL: url, Status: status}
	if status >= 500 || status == http.StatusTooManyRequests {
		return &RetryableError{Err: err}
	}
	return err
}

// Retry calls fn up to attempts times, doubling delay after each
// retryable failure. Other errors return at once.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error
	for i := 0; i < attempts; i++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		} else if !isRetryable(lastErr) {
			return lastErr
		}
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
