package trip

import (
	"github.com/andrescamacho/haulplan/internal/domain/planning"
	"github.com/andrescamacho/haulplan/pkg/utils"
)

// Summary condenses a planned trip into headline numbers.
type Summary struct {
	TotalDistanceMiles float64 `json:"total_distance_miles"`
	TotalDurationHours float64 `json:"total_duration_hours"`
	TotalDays          int     `json:"total_days"`
	FuelStops          int     `json:"fuel_stops"`
	RestBreaks         int     `json:"rest_breaks"`
	RestStops          int     `json:"rest_stops"`
	CycleHoursAfter    float64 `json:"cycle_hours_after"`
}

// Summarize derives the trip summary from the planned stops. Duration runs
// from the first arrival to the last departure, days from the last stop's
// day number.
func Summarize(stops []*planning.Stop, totalDistanceMiles, cycleHoursAfter float64) Summary {
	var fuelStops, restBreaks, restStops int
	for _, stop := range stops {
		switch stop.Type {
		case planning.StopFuel:
			fuelStops++
		case planning.StopBreak:
			restBreaks++
		case planning.StopRest:
			restStops++
		}
	}

	totalHours := 0.0
	totalDays := 0
	if len(stops) > 0 {
		first := stops[0].ArrivalTime.Time
		last := stops[len(stops)-1].DepartureTime.Time
		totalHours = last.Sub(first).Hours()

		totalDays = stops[len(stops)-1].Day
		if totalDays < 1 {
			totalDays = 1
		}
	}

	return Summary{
		TotalDistanceMiles: utils.Round1(totalDistanceMiles),
		TotalDurationHours: utils.Round1(totalHours),
		TotalDays:          totalDays,
		FuelStops:          fuelStops,
		RestBreaks:         restBreaks,
		RestStops:          restStops,
		CycleHoursAfter:    utils.Round1(cycleHoursAfter),
	}
}
