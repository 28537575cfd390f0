package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to the film listing",
	Long:  `Request the film listing once, without retries, and report what came back.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	fmt.Printf("Testing connection to %s...\n", cfg.Upstream.URL)

	if err := swapiClient.TestConnection(ctx); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	fmt.Println("✓ Connection successful!")

	films, err := swapiClient.GetFilms(ctx)
	if err != nil {
		return fmt.Errorf("failed to get films: %w", err)
	}

	fmt.Printf("\nUpstream Statistics:\n")
	fmt.Printf("- Total films: %d\n", len(films))
	fmt.Printf("- Retry policy: %d retries, %s apart\n", cfg.Fetch.MaxRetries, cfg.Fetch.RetryDelay)

	return nil
}
