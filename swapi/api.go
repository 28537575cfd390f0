package swapi

import (
	"context"
)

// API defines the interface for film listing operations
type API interface {
	// TestConnection verifies the listing endpoint answers with success
	TestConnection(ctx context.Context) error

	// GetFilms retrieves the full film collection
	GetFilms(ctx context.Context) ([]Film, error)
}
