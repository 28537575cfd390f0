package fetcher

import (
	"fmt"

	"github.com/s0up4200/filmreel/movies"
)

// Status is the lifecycle phase of the most recent fetch chain
type Status int

const (
	// StatusIdle means no fetch has run yet
	StatusIdle Status = iota
	// StatusLoading means an attempt or a retry wait is in progress
	StatusLoading
	// StatusSucceeded means the last chain replaced the collection
	StatusSucceeded
	// StatusFailed means the last chain ended with an error message
	StatusFailed
)

// String returns the string representation of a Status
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name
func (s *Status) UnmarshalText(text []byte) error {
	for _, candidate := range []Status{StatusIdle, StatusLoading, StatusSucceeded, StatusFailed} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// State is an immutable snapshot of the controller.
// ErrorMessage is only ever set together with StatusFailed, so a loading
// state never carries an error.
type State struct {
	Status       Status         `json:"status"`
	Movies       []movies.Movie `json:"movies"`
	ErrorMessage string         `json:"error,omitempty"`
	CancelRetry  bool           `json:"cancelRetry"`
	// Attempt is the zero-based attempt index of the latest chain
	Attempt int `json:"attempt"`
}

// IsLoading reports whether a fetch chain is in flight
func (s State) IsLoading() bool {
	return s.Status == StatusLoading
}

// HasError reports whether the last chain failed
func (s State) HasError() bool {
	return s.Status == StatusFailed && s.ErrorMessage != ""
}
