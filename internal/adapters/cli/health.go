package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewHealthCommand creates the health command
func NewHealthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check server health status",
		Long:  `Verify that the haulplan server is running and responsive.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := NewAPIClient(serverURL, timeout)

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			status, err := client.Health(ctx)
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}

			fmt.Println("✓ Server is healthy")
			fmt.Printf("  Server: %s\n", serverURL)
			fmt.Printf("  Status: %s\n", status)

			return nil
		},
	}

	return cmd
}
