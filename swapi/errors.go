package swapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid swapi configuration")
	// ErrInvalidResponse indicates the body could not be decoded as a film listing
	ErrInvalidResponse = errors.New("invalid response from film listing")
)

// APIError represents a non-success response from the listing endpoint
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("swapi API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsServerError checks if the upstream failed on its side
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// IsStatusError reports whether err, or any error it wraps, is an *APIError
func IsStatusError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
