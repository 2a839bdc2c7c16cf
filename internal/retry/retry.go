// Package retry re-runs a failed call with exponential backoff.
//
// The triage core never retries; this package is the caller-side policy used by the
// CLI and HTTP surfaces.
package retry

import (
	"context"
	"log/slog"
	"math"
	"time"
)

// Config holds the configuration for retry logic
type Config struct {
	MaxRetries      int
	BaseDelay       time.Duration
	MaxDelay        time.Duration
	BackoffMultiple float64
}

// DefaultConfig returns the backoff used when the caller only picks a retry count
func DefaultConfig(maxRetries int) Config {
	return Config{
		MaxRetries:      maxRetries,
		BaseDelay:       500 * time.Millisecond,
		MaxDelay:        8 * time.Second,
		BackoffMultiple: 2.0,
	}
}

// ErrorChecker decides whether an error should trigger another attempt
type ErrorChecker func(err error) bool

// Options configures retry behavior
type Options struct {
	Config       Config
	ErrorChecker ErrorChecker
	Logger       *slog.Logger
	Name         string
}

// calculateDelay computes the delay for the given attempt using exponential backoff
func (c Config) calculateDelay(attempt int) time.Duration {
	multiple := c.BackoffMultiple
	if multiple < 1 {
		multiple = 1
	}
	delay := time.Duration(float64(c.BaseDelay) * math.Pow(multiple, float64(attempt)))
	if c.MaxDelay > 0 && delay > c.MaxDelay {
		delay = c.MaxDelay
	}
	return delay
}

// Do runs fn until it succeeds, returns a non-retryable error, or attempts run out.
// The last error is returned unchanged.
func Do[T any](ctx context.Context, opts Options, fn func(attempt int) (T, error)) (T, error) {
	var zero T
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxAttempts := max(opts.Config.MaxRetries, 0) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			delay := opts.Config.calculateDelay(attempt - 1)
			logger.Info("retrying", "name", opts.Name, "attempt", attempt+1, "max_attempts", maxAttempts, "delay", delay)

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}

		result, err := fn(attempt)
		if err == nil {
			if attempt > 0 {
				logger.Info("succeeded after retry", "name", opts.Name, "attempt", attempt+1)
			}
			return result, nil
		}
		lastErr = err

		if opts.ErrorChecker == nil || !opts.ErrorChecker(err) {
			return zero, err
		}
		logger.Warn("retryable error", "name", opts.Name, "attempt", attempt+1, "max_attempts", maxAttempts, "error", err)
	}

	return zero, lastErr
}
