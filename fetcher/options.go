package fetcher

import (
	"context"
	"time"
)

const (
	// DefaultMaxRetries is the number of retries after the first attempt
	DefaultMaxRetries = 5
	// DefaultRetryDelay is the wait before each retry
	DefaultRetryDelay = 5 * time.Second
)

// SleepFunc waits for d, returning early with an error when ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// Option configures a Controller.
type Option func(*Controller)

// WithMaxRetries sets the maximum number of retry attempts.
func WithMaxRetries(retries int) Option {
	return func(c *Controller) {
		if retries >= 0 {
			c.maxRetries = retries
		}
	}
}

// WithRetryDelay sets the delay between retry attempts.
func WithRetryDelay(delay time.Duration) Option {
	return func(c *Controller) {
		if delay >= 0 {
			c.retryDelay = delay
		}
	}
}

// WithSleepFunc replaces the wait used between retries.
func WithSleepFunc(sleep SleepFunc) Option {
	return func(c *Controller) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
