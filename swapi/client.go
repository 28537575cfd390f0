package swapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultFilmsURL is the public film listing endpoint
const DefaultFilmsURL = "https://swapi.dev/api/films/"

// Client represents a film listing API client
type Client struct {
	filmsURL   string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new film listing client. It does not contact the
// endpoint, so a process can start while the upstream is still unavailable.
func NewClient(filmsURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	filmsURL = strings.TrimSpace(filmsURL)
	if filmsURL == "" {
		return nil, fmt.Errorf("%w: films URL is required", ErrInvalidConfig)
	}

	u, err := url.Parse(filmsURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid films URL %q", ErrInvalidConfig, filmsURL)
	}

	client := &Client{
		filmsURL:   filmsURL,
		userAgent:  "filmreel",
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// doRequest performs a GET against the listing endpoint and returns the body
// of a successful response
func (c *Client) doRequest(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.filmsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().
		Str("url", c.filmsURL).
		Msg("Requesting film listing")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       string(body),
		}
	}

	return body, nil
}

// TestConnection tests that the listing endpoint answers with success
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.doRequest(ctx)
	return err
}

// GetFilms retrieves the film collection
func (c *Client) GetFilms(ctx context.Context) ([]Film, error) {
	body, err := c.doRequest(ctx)
	if err != nil {
		return nil, err
	}

	var response FilmsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if response.Results == nil {
		return nil, fmt.Errorf("%w: missing results", ErrInvalidResponse)
	}

	c.logger.Debug().
		Int("count", len(response.Results)).
		Msg("Retrieved films")

	return response.Results, nil
}
