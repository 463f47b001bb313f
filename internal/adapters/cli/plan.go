package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/haulplan/internal/domain/trip"
)

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	var (
		currentLocation string
		pickupLocation  string
		dropoffLocation string
		cycleHours      float64
		jsonOutput      bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan an HOS-compliant trip",
		Long: `Plan a trip from the driver's current position through a pickup to a
dropoff, inserting the fuel stops, 30-minute breaks and overnight rests the
hours-of-service rules require.

Examples:
  haulplan plan --current "Chicago, IL" --pickup "Denver, CO" --dropoff "Phoenix, AZ" --cycle-hours 12.5
  haulplan plan --current "Dallas, TX" --pickup "Atlanta, GA" --dropoff "Miami, FL" --cycle-hours 0 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Validate flags
			if currentLocation == "" {
				return fmt.Errorf("--current flag is required")
			}
			if pickupLocation == "" {
				return fmt.Errorf("--pickup flag is required")
			}
			if dropoffLocation == "" {
				return fmt.Errorf("--dropoff flag is required")
			}

			client := NewAPIClient(serverURL, timeout)

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			result, err := client.PlanTrip(ctx, planTripRequest{
				CurrentLocation:   currentLocation,
				PickupLocation:    pickupLocation,
				DropoffLocation:   dropoffLocation,
				CurrentCycleHours: cycleHours,
			})
			if err != nil {
				return fmt.Errorf("planning failed: %w", err)
			}

			if jsonOutput {
				return printJSON(result)
			}
			renderTrip(result)
			return nil
		},
	}

	// Command-specific flags
	cmd.Flags().StringVar(&currentLocation, "current", "", "Driver's current location (required)")
	cmd.Flags().StringVar(&pickupLocation, "pickup", "", "Pickup location (required)")
	cmd.Flags().StringVar(&dropoffLocation, "dropoff", "", "Dropoff location (required)")
	cmd.Flags().Float64Var(&cycleHours, "cycle-hours", 0, "Hours already used in the 70-hour/8-day cycle")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the raw JSON response")

	return cmd
}

// renderTrip prints the planned trip as readable tables.
func renderTrip(result *trip.Trip) {
	summary := result.Summary

	fmt.Println("✓ Trip planned")
	fmt.Printf("  Distance:          %.1f miles\n", summary.TotalDistanceMiles)
	fmt.Printf("  Duration:          %.1f hours over %d day(s)\n", summary.TotalDurationHours, summary.TotalDays)
	fmt.Printf("  Fuel stops:        %d\n", summary.FuelStops)
	fmt.Printf("  30-minute breaks:  %d\n", summary.RestBreaks)
	fmt.Printf("  Overnight rests:   %d\n", summary.RestStops)
	fmt.Printf("  Cycle hours after: %.1f\n", summary.CycleHoursAfter)

	fmt.Println("\nStops:")
	fmt.Printf("  %-3s %-9s %-30s %-17s %-17s %10s\n",
		"#", "TYPE", "LOCATION", "ARRIVAL", "DEPARTURE", "MILES")
	for _, stop := range result.Stops {
		fmt.Printf("  %-3d %-9s %-30s %-17s %-17s %10.1f\n",
			stop.ID,
			stop.Type,
			truncate(stop.Location, 30),
			stop.ArrivalTime.Format("01/02 15:04"),
			stop.DepartureTime.Format("01/02 15:04"),
			stop.CumulativeMiles)
	}

	fmt.Println("\nDaily logs:")
	for _, sheet := range result.LogSheets {
		fmt.Printf("  Day %-2d %s  %8.1f mi  driving %5.1fh  on duty %5.1fh  off duty %5.1fh  sleeper %5.1fh\n",
			sheet.DayNumber,
			sheet.Date,
			sheet.TotalMiles,
			sheet.Totals.Driving,
			sheet.Totals.OnDuty,
			sheet.Totals.OffDuty,
			sheet.Totals.Sleeper)
	}
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
