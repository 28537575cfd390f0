package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/filmreel/fetcher"
	"github.com/s0up4200/filmreel/web"
)

var listenAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser UI",
	Long: `Start the HTTP server and fetch the film listing right away.

The page shows a loading, list, empty or error state and a form to add
movies by hand. Open pages reload themselves on every state change.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := cfg.Server.Addr
	if listenAddr != "" {
		addr = listenAddr
	}

	controller := newController()
	defer controller.Stop()

	server := web.NewServer(web.Config{
		Addr:            addr,
		Version:         version,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Limiter: web.LimiterConfig{
			Enabled: cfg.Server.Limiter.Enabled,
			RPS:     cfg.Server.Limiter.RPS,
			Burst:   cfg.Server.Limiter.Burst,
		},
	}, controller, compiler, logger)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.ListenAndServe(ctx)
	})

	// Initial fetch, the same as a page mounting. Failures are shown in the UI.
	g.Go(func() error {
		err := <-controller.Start(ctx)
		switch {
		case err == nil:
		case errors.Is(err, fetcher.ErrSuperseded), errors.Is(err, context.Canceled):
			logger.Debug().Err(err).Msg("Initial fetch did not complete")
		default:
			logger.Warn().Err(err).Msg("Initial fetch failed")
		}
		return nil
	})

	return g.Wait()
}
