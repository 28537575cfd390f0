package fetcher

import (
	"errors"
	"fmt"
)

// RetryExhaustedMessage is shown to users when retries ran out or were cancelled
const RetryExhaustedMessage = "Something went wrong ....Retrying"

var (
	// ErrRetryExhausted indicates the upstream kept failing until the retry
	// budget ran out or retrying was cancelled
	ErrRetryExhausted = errors.New("retries exhausted")

	// ErrSuperseded is returned by a fetch chain whose result was discarded
	// because a newer chain started
	ErrSuperseded = errors.New("fetch superseded by a newer request")
)

// RetryError describes why a fetch chain gave up on a failing upstream
type RetryError struct {
	Attempts  int
	Cancelled bool
	Last      error
}

// Error returns the fixed user-facing message
func (e *RetryError) Error() string {
	return RetryExhaustedMessage
}

// Unwrap exposes both ErrRetryExhausted and the last upstream error
func (e *RetryError) Unwrap() []error {
	if e.Last == nil {
		return []error{ErrRetryExhausted}
	}
	return []error{ErrRetryExhausted, e.Last}
}

// Detail returns a log-friendly description including the cause
func (e *RetryError) Detail() string {
	reason := "retry budget exhausted"
	if e.Cancelled {
		reason = "retry cancelled"
	}
	return fmt.Sprintf("%s after %d attempt(s): %v", reason, e.Attempts, e.Last)
}
