package trip

import (
	"context"

	"github.com/andrescamacho/haulplan/internal/domain/shared"
)

// Geocoder resolves addresses to coordinates and coordinates back to
// readable place names.
type Geocoder interface {
	// Forward resolves a free-form address to a named coordinate.
	// Returns GeocodeNotFoundError when the address matches nothing.
	Forward(ctx context.Context, query string) (shared.NamedLocation, error)

	// Reverse names the place at a coordinate. ok is false when no name
	// could be resolved; the trip still plans with a placeholder name.
	Reverse(ctx context.Context, coord shared.Coordinate) (name string, ok bool, err error)
}

// Router computes the road route through an ordered waypoint list.
type Router interface {
	// Route returns the driving route through the waypoints in order.
	// Returns RouteUnavailableError when no road route connects them.
	Route(ctx context.Context, waypoints []shared.Coordinate) (*Route, error)
}
