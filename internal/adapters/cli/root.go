// Package cli implements the haulplan command line client. It talks to a
// running haulplan server over HTTP.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	serverURL string
	timeout   time.Duration
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "haulplan",
		Short: "Haulplan CLI - Plan HOS-compliant truck trips",
		Long: `Haulplan CLI plans property-carrying truck trips against a running
haulplan server and prints the stops, daily log sheets and trip summary.

Examples:
  haulplan plan --current "Chicago, IL" --pickup "Denver, CO" --dropoff "Phoenix, AZ" --cycle-hours 12.5
  haulplan plan --current "Dallas, TX" --pickup "Atlanta, GA" --dropoff "Miami, FL" --cycle-hours 0 --json
  haulplan health`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", getDefaultServerURL(),
		"Base URL of the haulplan server")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 60*time.Second,
		"Timeout for server requests")

	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewHealthCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// getDefaultServerURL returns the default server base URL
func getDefaultServerURL() string {
	if url := os.Getenv("HAULPLAN_SERVER"); url != "" {
		return url
	}
	return "http://localhost:8080"
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
