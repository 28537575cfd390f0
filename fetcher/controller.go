package fetcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/filmreel/movies"
	"github.com/s0up4200/filmreel/swapi"
)

// Source provides the raw film listing
type Source interface {
	GetFilms(ctx context.Context) ([]swapi.Film, error)
}

// Controller owns the movie collection and the fetch/retry state machine.
//
// Every Fetch starts a new chain. Starting a chain cancels the previous one,
// and anything a superseded chain produces afterwards is discarded.
type Controller struct {
	source     Source
	logger     zerolog.Logger
	maxRetries int
	retryDelay time.Duration
	sleep      SleepFunc

	mu          sync.RWMutex
	status      Status
	errMsg      string
	cancelRetry bool
	attempt     int
	collection  *movies.Collection
	generation  uint64
	cancelChain context.CancelFunc

	subMu       sync.Mutex
	subscribers map[int]chan State
	nextSubID   int
}

// New creates a new Controller reading from source
func New(source Source, logger zerolog.Logger, opts ...Option) *Controller {
	c := &Controller{
		source:      source,
		logger:      logger,
		maxRetries:  DefaultMaxRetries,
		retryDelay:  DefaultRetryDelay,
		sleep:       sleepContext,
		collection:  movies.NewCollection(),
		subscribers: make(map[int]chan State),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Start runs Fetch in the background. The returned channel receives the
// chain's result once and is then closed.
func (c *Controller) Start(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- c.Fetch(ctx)
	}()
	return done
}

// Fetch loads the film listing, retrying non-success responses up to the
// configured bound unless retrying was cancelled. Transport and decode
// failures end the chain immediately.
func (c *Controller) Fetch(ctx context.Context) error {
	ctx, cancel, gen := c.beginChain(ctx)
	defer cancel()
	defer c.endChain(gen)

	for attempt := 0; ; attempt++ {
		if !c.startAttempt(gen, attempt) {
			return ErrSuperseded
		}

		films, err := c.source.GetFilms(ctx)
		if err == nil {
			return c.succeed(gen, swapi.ToMovies(films))
		}

		if !swapi.IsStatusError(err) {
			return c.fail(gen, err)
		}

		if attempt >= c.maxRetries || c.RetryCancelled() {
			return c.fail(gen, &RetryError{Attempts: attempt + 1, Cancelled: c.RetryCancelled(), Last: err})
		}

		c.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("delay", c.retryDelay).
			Msg("Film listing failed, retrying")

		if err := c.sleep(ctx, c.retryDelay); err != nil {
			return c.fail(gen, err)
		}

		// Cancelling does not cut the wait short, but no new attempt starts after it
		if c.RetryCancelled() {
			return c.fail(gen, &RetryError{Attempts: attempt + 1, Cancelled: true, Last: err})
		}
	}
}

// CancelRetry stops any further retries for the lifetime of the controller
func (c *Controller) CancelRetry() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancelRetry {
		return
	}
	c.cancelRetry = true
	c.logger.Info().Msg("Retrying cancelled")
	c.publishLocked()
}

// RetryCancelled reports whether CancelRetry was called
func (c *Controller) RetryCancelled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cancelRetry
}

// AddMovie appends a manually entered movie. No validation is performed.
func (c *Controller) AddMovie(title, openingText, releaseDate string) movies.Movie {
	c.mu.Lock()
	defer c.mu.Unlock()

	movie := c.collection.Add(title, openingText, releaseDate)
	c.logger.Info().
		Int("id", movie.ID).
		Str("title", movie.Title).
		Msg("Added movie")
	c.publishLocked()
	return movie
}

// Snapshot returns the current state
func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// Stop cancels the active chain, if any
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancelChain != nil {
		c.cancelChain()
		c.cancelChain = nil
	}
}

func (c *Controller) beginChain(parent context.Context) (context.Context, context.CancelFunc, uint64) {
	ctx, cancel := context.WithCancel(parent)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancelChain != nil {
		c.logger.Debug().Uint64("generation", c.generation).Msg("Superseding running fetch")
		c.cancelChain()
	}
	c.generation++
	c.cancelChain = cancel

	return ctx, cancel, c.generation
}

func (c *Controller) endChain(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen == c.generation {
		c.cancelChain = nil
	}
}

// startAttempt marks the chain as loading and clears any previous error
func (c *Controller) startAttempt(gen uint64, attempt int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return false
	}

	c.status = StatusLoading
	c.errMsg = ""
	c.attempt = attempt
	c.logger.Debug().Int("attempt", attempt).Msg("Fetching films")
	c.publishLocked()
	return true
}

func (c *Controller) succeed(gen uint64, list []movies.Movie) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return ErrSuperseded
	}

	c.collection.Replace(list)
	c.status = StatusSucceeded
	c.errMsg = ""
	c.logger.Info().Int("count", len(list)).Int("attempt", c.attempt).Msg("Loaded films")
	c.publishLocked()
	return nil
}

func (c *Controller) fail(gen uint64, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return ErrSuperseded
	}

	c.status = StatusFailed
	c.errMsg = err.Error()

	event := c.logger.Error().Int("attempt", c.attempt)
	var retryErr *RetryError
	if errors.As(err, &retryErr) {
		event = event.Str("detail", retryErr.Detail())
	} else {
		event = event.Err(err)
	}
	event.Msg("Fetching films failed")

	c.publishLocked()
	return err
}

func (c *Controller) snapshotLocked() State {
	return State{
		Status:       c.status,
		Movies:       c.collection.All(),
		ErrorMessage: c.errMsg,
		CancelRetry:  c.cancelRetry,
		Attempt:      c.attempt,
	}
}
