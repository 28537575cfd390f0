package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/filmreel/config"
	"github.com/s0up4200/filmreel/fetcher"
	"github.com/s0up4200/filmreel/filter"
	"github.com/s0up4200/filmreel/movies"
)

var (
	filterExpr string
	preset     string
	noRetry    bool
	crawlLines int
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Fetch and print the film listing",
	Long: `Fetch the film listing once, retrying as configured, and print it.

Filter expressions use the expr language, for example:
  filmreel list --filter 'Year < 1990'
  filmreel list --filter 'crawlMentions("rebel") and releasedAfter("1978-01-01")'`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	listCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	listCmd.Flags().BoolVar(&noRetry, "no-retry", false, "give up after the first failed request")
	listCmd.Flags().IntVar(&crawlLines, "crawl-lines", 3, "opening crawl lines to show per movie (0 hides them)")
}

func runList(cmd *cobra.Command, args []string) error {
	expr, err := getFilterExpression(cfg.Filter, filterExpr, preset)
	if err != nil {
		return err
	}

	// Compile before fetching so a typo does not cost a round of retries
	var f filter.CompiledFilter
	if expr != "" {
		if f, err = compiler.Compile(expr); err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	var opts []fetcher.Option
	if noRetry {
		opts = append(opts, fetcher.WithMaxRetries(0))
	}
	controller := newController(opts...)

	ctx := cmd.Context()

	logger.Info().Str("url", cfg.Upstream.URL).Msg("Fetching films")

	if err := controller.Fetch(ctx); err != nil {
		fmt.Fprintln(os.Stderr, controller.Snapshot().ErrorMessage)
		return fmt.Errorf("fetch failed: %w", err)
	}

	list := controller.Snapshot().Movies
	if f != nil {
		logger.Debug().Str("filter", expr).Msg("Applying filter")
		list = filter.Apply(f, list)
	}

	formatter := movies.NewConsoleFormatter()
	fmt.Print(formatter.FormatMovieList(list, movies.FormatOptions{
		ShowOpeningText: crawlLines > 0,
		MaxOpeningLines: crawlLines,
	}))

	return nil
}

// getFilterExpression picks the filter: flag, then preset, then the configured default
func getFilterExpression(fc config.FilterConfig, flagExpr, presetName string) (string, error) {
	if strings.TrimSpace(flagExpr) != "" {
		return flagExpr, nil
	}

	if presetName != "" {
		if p, ok := fc.Presets[presetName]; ok {
			return p.Expression, nil
		}
		return "", fmt.Errorf("preset '%s' not found in config", presetName)
	}

	return fc.DefaultExpression, nil
}
