package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable marks a backend that could not be reached.
var ErrUnavailable = errors.New("cache unavailable")

// RetryableError marks an error worth another attempt.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err wraps a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff controls RetryWithBackoff.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// DefaultBackoff tries three times, starting at 50ms and doubling.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 50 * time.Millisecond}

// RetryWithBackoff calls fn until it succeeds, returns an error that is not
// retryable, or runs out of attempts. It stops early when ctx is done.
func RetryWithBackoff(ctx context.Context, b Backoff, fn func() error) error {
	if b.Attempts < 1 {
		b.Attempts = 1
	}
	delay := b.Delay
	var lastErr error
	for i := 0; i < b.Attempts; i++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		} else if !IsRetryable(lastErr) {
			return lastErr
		}
		if i < b.Attempts-1 {
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
