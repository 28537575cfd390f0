package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/filmreel/config"
	"github.com/s0up4200/filmreel/fetcher"
	"github.com/s0up4200/filmreel/filter"
	"github.com/s0up4200/filmreel/swapi"
)

var (
	cfgFile     string
	cfg         *config.Config
	logger      zerolog.Logger
	swapiClient *swapi.Client
	compiler    filter.CachingCompiler

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "filmreel",
	Short: "Browse the Star Wars film listing with bounded retries",
	Long: `filmreel fetches the Star Wars film listing, keeps it in memory and lets you
add entries by hand. Failed fetches are retried a bounded number of times
unless retrying is cancelled.

Run "filmreel serve" for the browser UI or "filmreel list" for a one-shot
console listing.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion records build information for --version and the healthcheck
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(testCmd)
}

// initializeApp loads configuration and creates the shared clients
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging, isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()))

	swapiClient, err = swapi.NewClient(cfg.Upstream.URL, logger,
		swapi.WithTimeout(cfg.Upstream.Timeout),
		swapi.WithUserAgent(cfg.Upstream.UserAgent),
	)
	if err != nil {
		return fmt.Errorf("failed to create upstream client: %w", err)
	}

	compiler = filter.NewExprCompiler(filter.WithCache(cfg.Filter.CacheSize))

	return nil
}

// newController builds a fetch controller from the loaded configuration
func newController(opts ...fetcher.Option) *fetcher.Controller {
	base := []fetcher.Option{
		fetcher.WithMaxRetries(cfg.Fetch.MaxRetries),
		fetcher.WithRetryDelay(cfg.Fetch.RetryDelay),
	}
	return fetcher.New(swapiClient, logger, append(base, opts...)...)
}

// setupLogger configures the zerolog logger. Colour is only used on a terminal.
func setupLogger(cfg config.LoggingConfig, terminal bool) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !terminal,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
