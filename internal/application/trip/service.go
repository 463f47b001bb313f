// Package trip orchestrates trip planning: geocoding, routing, HOS stop
// planning and daily log generation.
package trip

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/haulplan/internal/domain/logbook"
	"github.com/andrescamacho/haulplan/internal/domain/planning"
	"github.com/andrescamacho/haulplan/internal/domain/shared"
	domaintrip "github.com/andrescamacho/haulplan/internal/domain/trip"
	"github.com/andrescamacho/haulplan/pkg/logger"
)

// PlanRequest is the validated trip planning input.
type PlanRequest struct {
	CurrentLocation   string
	PickupLocation    string
	DropoffLocation   string
	CurrentCycleHours float64
}

// Service wires the external ports to the planning domain.
type Service struct {
	geocoder  domaintrip.Geocoder
	router    domaintrip.Router
	clock     shared.Clock
	rules     planning.Rules
	startHour int
	log       *logger.Logger
}

// NewService creates the trip planning service. startHour is the local hour
// of day trips begin at.
func NewService(geocoder domaintrip.Geocoder, router domaintrip.Router, clock shared.Clock, startHour int, log *logger.Logger) *Service {
	return &Service{
		geocoder:  geocoder,
		router:    router,
		clock:     clock,
		rules:     planning.DefaultRules(),
		startHour: startHour,
		log:       log,
	}
}

// PlanTrip runs the full pipeline: geocode the three locations, route
// through them, plan the HOS-compliant stop sequence and render the daily
// logs.
func (s *Service) PlanTrip(ctx context.Context, req PlanRequest) (*domaintrip.Trip, error) {
	// 1. Geocode all locations
	current, err := s.geocoder.Forward(ctx, req.CurrentLocation)
	if err != nil {
		return nil, fmt.Errorf("geocoding current location: %w", err)
	}
	pickup, err := s.geocoder.Forward(ctx, req.PickupLocation)
	if err != nil {
		return nil, fmt.Errorf("geocoding pickup location: %w", err)
	}
	dropoff, err := s.geocoder.Forward(ctx, req.DropoffLocation)
	if err != nil {
		return nil, fmt.Errorf("geocoding dropoff location: %w", err)
	}

	// 2. Route through the waypoints in trip order
	route, err := s.router.Route(ctx, []shared.Coordinate{current.Coordinate, pickup.Coordinate, dropoff.Coordinate})
	if err != nil {
		return nil, fmt.Errorf("routing trip: %w", err)
	}

	s.log.Infow("route calculated",
		"total_miles", route.TotalDistanceMiles,
		"legs", len(route.Legs),
	)

	// 3. Plan the HOS-compliant stop sequence
	planner := planning.NewPlanner(s.rules, route.Geometry, s.geocoder)
	stops, err := planner.Plan(ctx, planning.Input{
		Current:        current,
		Pickup:         pickup,
		Dropoff:        dropoff,
		LegMiles:       [2]float64{route.Legs[0].DistanceMiles, route.Legs[1].DistanceMiles},
		CycleHoursUsed: req.CurrentCycleHours,
		StartTime:      s.tripStart(),
	})
	if err != nil {
		return nil, fmt.Errorf("planning stops: %w", err)
	}
	if err := planning.ValidateStops(stops); err != nil {
		return nil, err
	}

	// 4. Generate the daily log sheets
	sheets, err := logbook.NewGenerator().Generate(stops)
	if err != nil {
		return nil, err
	}

	// 5. Summarize
	summary := domaintrip.Summarize(stops, route.TotalDistanceMiles, planner.State().CycleHoursUsed)

	s.log.Infow("trip planned",
		"stops", len(stops),
		"days", summary.TotalDays,
		"duration_hours", summary.TotalDurationHours,
	)

	return domaintrip.NewTrip(route.Geometry, stops, sheets, summary), nil
}

// tripStart pins the trip to the configured start hour on today's date.
// Times stay naive wall clock; no zone offsets are carried anywhere.
func (s *Service) tripStart() time.Time {
	now := s.clock.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), s.startHour, 0, 0, 0, time.UTC)
}
