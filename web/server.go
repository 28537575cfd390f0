package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/s0up4200/filmreel/fetcher"
	"github.com/s0up4200/filmreel/filter"
	"github.com/s0up4200/filmreel/movies"
)

// Controller is the part of the fetch controller the web layer drives
type Controller interface {
	Snapshot() fetcher.State
	Start(ctx context.Context) <-chan error
	CancelRetry()
	AddMovie(title, openingText, releaseDate string) movies.Movie
	Subscribe() (<-chan fetcher.State, func())
}

// Config holds the HTTP server settings
type Config struct {
	Addr            string
	Version         string
	ShutdownTimeout time.Duration
	Limiter         LimiterConfig
}

// LimiterConfig configures the per-client rate limiter
type LimiterConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

// Server serves the UI for a single controller
type Server struct {
	cfg        Config
	controller Controller
	compiler   filter.Compiler
	logger     zerolog.Logger
	page       *template.Template
	upgrader   websocket.Upgrader

	// baseCtx parents fetch chains started from requests and ends
	// websocket streams on shutdown
	baseCtx context.Context
}

// NewServer creates a new Server
func NewServer(cfg Config, controller Controller, compiler filter.Compiler, logger zerolog.Logger) *Server {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	return &Server{
		cfg:        cfg,
		controller: controller,
		compiler:   compiler,
		logger:     logger.With().Str("component", "web").Logger(),
		page:       template.Must(template.New("page").Funcs(pageFuncs).Parse(pageTpl)),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		baseCtx: context.Background(),
	}
}

// ListenAndServe listens on the configured address and serves until ctx is done
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully within the configured timeout
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.baseCtx = ctx

	srv := &http.Server{
		Handler:      s.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("Starting server")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.logger.Info().Msg("Server stopped")
	return nil
}
