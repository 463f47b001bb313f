package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/haulplan/internal/domain/shared"
	"github.com/andrescamacho/haulplan/internal/domain/trip"
)

// MockRouter simulates road routing for testing
type MockRouter struct {
	mu sync.RWMutex

	route     *trip.Route
	routeErr  error
	noRoute   bool
	waypoints [][]shared.Coordinate
}

// NewMockRouter creates a mock router. Without a configured route it
// builds straight-line routes from the requested waypoints.
func NewMockRouter() *MockRouter {
	return &MockRouter{}
}

// SetRoute configures a fixed route returned by every Route call
func (m *MockRouter) SetRoute(route *trip.Route) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.route = route
}

// SetError makes every Route call fail with err
func (m *MockRouter) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routeErr = err
}

// SetNoRoute makes every Route call fail with RouteUnavailableError
func (m *MockRouter) SetNoRoute(noRoute bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.noRoute = noRoute
}

// Route implements trip.Router with mock behavior
func (m *MockRouter) Route(ctx context.Context, waypoints []shared.Coordinate) (*trip.Route, error) {
	m.mu.Lock()
	m.waypoints = append(m.waypoints, waypoints)
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.routeErr != nil {
		return nil, m.routeErr
	}
	if m.noRoute {
		return nil, shared.NewRouteUnavailableError()
	}
	if m.route != nil {
		return m.route, nil
	}
	return StraightRoute(waypoints)
}

// RoutedWaypoints returns the waypoint lists Route received, in order
func (m *MockRouter) RoutedWaypoints() [][]shared.Coordinate {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([][]shared.Coordinate(nil), m.waypoints...)
}

// Reset clears all configured state
func (m *MockRouter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.route = nil
	m.routeErr = nil
	m.noRoute = false
	m.waypoints = nil
}

// StraightRoute builds a route that runs straight between the waypoints,
// with leg distances from great-circle math and durations at 55 mph.
func StraightRoute(waypoints []shared.Coordinate) (*trip.Route, error) {
	if len(waypoints) < 3 {
		return nil, shared.NewRouteUnavailableError()
	}

	legs := make([]trip.RouteLeg, 0, len(waypoints)-1)
	totalMiles := 0.0
	for i := 1; i < len(waypoints); i++ {
		miles := shared.Haversine(waypoints[i-1], waypoints[i])
		legs = append(legs, trip.RouteLeg{
			DistanceMiles: miles,
			DurationHours: miles / 55.0,
		})
		totalMiles += miles
	}

	return trip.NewRoute(totalMiles, totalMiles/55.0, legs, shared.Polyline(waypoints))
}

// FixedRoute builds a two-leg route with exact leg lengths and a synthetic
// three-point geometry, for scenarios that need precise mileage.
func FixedRoute(a, b, c shared.Coordinate, leg1Miles, leg2Miles float64) *trip.Route {
	route, _ := trip.NewRoute(
		leg1Miles+leg2Miles,
		(leg1Miles+leg2Miles)/55.0,
		[]trip.RouteLeg{
			{DistanceMiles: leg1Miles, DurationHours: leg1Miles / 55.0},
			{DistanceMiles: leg2Miles, DurationHours: leg2Miles / 55.0},
		},
		shared.Polyline{a, b, c},
	)
	return route
}
