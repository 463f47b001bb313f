package planning

import (
	"context"

	"github.com/andrescamacho/haulplan/internal/domain/shared"
)

// PointLocator resolves a mile offset along the planned route to a
// coordinate. shared.Polyline satisfies this directly.
type PointLocator interface {
	PointAt(miles float64) shared.Coordinate
}

// LocationNamer resolves a coordinate to a short display label such as
// "Flagstaff, AZ". The boolean reports whether a name was found. Failures
// are tolerated: the planner falls back to a generic label.
type LocationNamer interface {
	Reverse(ctx context.Context, coord shared.Coordinate) (string, bool, error)
}
