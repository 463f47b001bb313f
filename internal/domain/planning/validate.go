package planning

import (
	"fmt"

	"github.com/andrescamacho/haulplan/internal/domain/shared"
)

// ValidateStops checks the structural guarantees the planner maintains by
// construction: the timeline and the odometer never run backwards. A
// violation is a bug, not a bad request.
func ValidateStops(stops []*Stop) error {
	for i := 1; i < len(stops); i++ {
		prev, cur := stops[i-1], stops[i]
		if cur.ArrivalTime.Before(prev.DepartureTime.Time) {
			return shared.NewInvariantViolationError(
				fmt.Sprintf("stop %d arrives %s, before stop %d departs %s",
					cur.ID, cur.ArrivalTime, prev.ID, prev.DepartureTime))
		}
		if cur.CumulativeMiles < prev.CumulativeMiles {
			return shared.NewInvariantViolationError(
				fmt.Sprintf("stop %d odometer %.1f runs behind stop %d odometer %.1f",
					cur.ID, cur.CumulativeMiles, prev.ID, prev.CumulativeMiles))
		}
	}
	return nil
}
