// Package trip holds the trip aggregate: the routed path between the
// driver's locations, the planned stops, the daily logs and the summary
// returned to callers.
package trip

import (
	"github.com/andrescamacho/haulplan/internal/domain/shared"
)

// RouteLeg is one waypoint-to-waypoint section of the routed path.
type RouteLeg struct {
	DistanceMiles float64
	DurationHours float64
}

// Route is the road path current -> pickup -> dropoff. Leg distances drive
// all trip timing; the geometry only locates intermediate stops.
type Route struct {
	TotalDistanceMiles float64
	TotalDurationHours float64
	Legs               []RouteLeg
	Geometry           shared.Polyline
}

// NewRoute builds a route and rejects one that does not cover both legs of
// the trip.
func NewRoute(totalDistanceMiles, totalDurationHours float64, legs []RouteLeg, geometry shared.Polyline) (*Route, error) {
	if len(legs) < 2 {
		return nil, shared.NewRouteUnavailableError()
	}
	return &Route{
		TotalDistanceMiles: totalDistanceMiles,
		TotalDurationHours: totalDurationHours,
		Legs:               legs,
		Geometry:           geometry,
	}, nil
}
