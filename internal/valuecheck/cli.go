package valuecheck

import (
	"fmt"
	"os"

	"github.com/okian/brokerlens/pkg/logger"
)

// SetupLogging initializes the global logger for the CLI.
func SetupLogging(format string, verbose bool) error {
	if err := logger.InitWithWriter(os.Stdout, format); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the value check tool.
func ShowHelp() {
	os.Stdout.WriteString(`brokerlens value check
======================

Verifies that a running brokerlens service serves value scores, ranks and
leaderboards that match a local rebuild from its own dataset.

Usage:
  go run ./cmd/value-check [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -top int
        Number of leaderboard rows to verify per ordering (default 50)
  -workers int
        Number of concurrent /rank requests (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -generate string
        Write a random dataset with uuid ids to this path and exit
  -navigators int
        Navigators in a generated dataset (default 200)
  -pilots int
        Pilots in a generated dataset (default 1000)
  -log-format string
        Log output format: text or json (default "text")
  -verbose
        Log every mismatch and progress
  -help
        Show this help message

Examples:
  # Generate a dataset and serve it
  go run ./cmd/value-check -generate data/random.yaml
  BROKERLENS_DATASET_PATH=data/random.yaml go run ./cmd

  # Verify the running service
  go run ./cmd/value-check -url http://localhost:9080 -workers 16
`)
}
