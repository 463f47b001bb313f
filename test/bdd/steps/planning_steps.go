package steps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cucumber/godog"

	apptrip "github.com/andrescamacho/haulplan/internal/application/trip"
	"github.com/andrescamacho/haulplan/internal/domain/planning"
	"github.com/andrescamacho/haulplan/internal/domain/shared"
	domaintrip "github.com/andrescamacho/haulplan/internal/domain/trip"
	"github.com/andrescamacho/haulplan/pkg/logger"
	"github.com/andrescamacho/haulplan/test/helpers"
)

// planningContext holds state for trip planning and daily log scenarios.
// Planning runs against mocked geocoding and routing, so every scenario
// controls its distances and the clock exactly.
type planningContext struct {
	geocoder *helpers.MockGeocoder
	router   *helpers.MockRouter
	clock    *shared.MockClock

	// locations in the order the background registered them:
	// current, pickup, dropoff
	locations  []shared.Coordinate
	cycleHours float64

	trip *domaintrip.Trip
	err  error
}

func (pc *planningContext) reset() {
	pc.geocoder = helpers.NewMockGeocoder()
	pc.router = helpers.NewMockRouter()
	pc.clock = shared.NewMockClock(time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))
	pc.locations = nil
	pc.cycleHours = 0
	pc.trip = nil
	pc.err = nil
}

func (pc *planningContext) stop(index int) (*planning.Stop, error) {
	if pc.trip == nil {
		return nil, fmt.Errorf("no trip was planned")
	}
	if index < 1 || index > len(pc.trip.Stops) {
		return nil, fmt.Errorf("stop %d out of range, trip has %d stops", index, len(pc.trip.Stops))
	}
	return pc.trip.Stops[index-1], nil
}

func (pc *planningContext) firstStopOfType(stopType planning.StopType) (*planning.Stop, error) {
	if pc.trip == nil {
		return nil, fmt.Errorf("no trip was planned")
	}
	for _, stop := range pc.trip.Stops {
		if stop.Type == stopType {
			return stop, nil
		}
	}
	return nil, fmt.Errorf("trip has no %q stop", stopType)
}

func closeTo(got, want, tolerance float64) bool {
	return math.Abs(got-want) <= tolerance
}

// Given steps

func (pc *planningContext) theClockReads(value string) error {
	t, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		return fmt.Errorf("invalid clock time %q: %w", value, err)
	}
	pc.clock.SetTime(t)
	return nil
}

func (pc *planningContext) aGeocodedLocationAt(name string, lat, lng float64) error {
	pc.geocoder.SetLocation(name, lat, lng, name)
	pc.locations = append(pc.locations, shared.Coordinate{Lat: lat, Lng: lng})
	return nil
}

func (pc *planningContext) intermediateStopsReverseGeocodeTo(name string) error {
	pc.geocoder.SetReverseName(name)
	return nil
}

func (pc *planningContext) theRoadLegsMeasure(leg1Miles, leg2Miles float64) error {
	if len(pc.locations) < 3 {
		return fmt.Errorf("need three geocoded locations, have %d", len(pc.locations))
	}
	pc.router.SetRoute(helpers.FixedRoute(pc.locations[0], pc.locations[1], pc.locations[2], leg1Miles, leg2Miles))
	return nil
}

func (pc *planningContext) theDriverHasAlreadyUsedCycleHours(hours float64) error {
	pc.cycleHours = hours
	return nil
}

// When steps

func (pc *planningContext) iPlanATrip(current, pickup, dropoff string) error {
	service := apptrip.NewService(pc.geocoder, pc.router, pc.clock, 6, logger.NewNop())
	pc.trip, pc.err = service.PlanTrip(context.Background(), apptrip.PlanRequest{
		CurrentLocation:   current,
		PickupLocation:    pickup,
		DropoffLocation:   dropoff,
		CurrentCycleHours: pc.cycleHours,
	})
	return nil
}

// Then steps

func (pc *planningContext) planningShouldSucceed() error {
	if pc.err != nil {
		return fmt.Errorf("planning failed: %w", pc.err)
	}
	if pc.trip == nil {
		return fmt.Errorf("planning returned no trip")
	}
	return nil
}

func (pc *planningContext) planningShouldFailWithALocationErrorFor(input string) error {
	if pc.err == nil {
		return fmt.Errorf("expected planning to fail, but it succeeded")
	}
	var notFound *shared.GeocodeNotFoundError
	if !errors.As(pc.err, &notFound) {
		return fmt.Errorf("expected a geocode not-found error, got %v", pc.err)
	}
	if notFound.Input != input {
		return fmt.Errorf("expected error for %q, got %q", input, notFound.Input)
	}
	return nil
}

func (pc *planningContext) theStopSequenceShouldBe(expected string) error {
	if err := pc.planningShouldSucceed(); err != nil {
		return err
	}
	types := make([]string, len(pc.trip.Stops))
	for i, stop := range pc.trip.Stops {
		types[i] = string(stop.Type)
	}
	got := strings.Join(types, ", ")
	if got != expected {
		return fmt.Errorf("expected stop sequence %q, got %q", expected, got)
	}
	return nil
}

func (pc *planningContext) stopShouldArriveAt(index int, hhmm string) error {
	stop, err := pc.stop(index)
	if err != nil {
		return err
	}
	got := stop.ArrivalTime.Time.Format("15:04")
	if got != hhmm {
		return fmt.Errorf("expected stop %d to arrive at %s, got %s", index, hhmm, got)
	}
	return nil
}

func (pc *planningContext) stopShouldBeATypeAtMiles(index int, stopType string, miles float64) error {
	stop, err := pc.stop(index)
	if err != nil {
		return err
	}
	if string(stop.Type) != stopType {
		return fmt.Errorf("expected stop %d to be %q, got %q", index, stopType, stop.Type)
	}
	if !closeTo(stop.CumulativeMiles, miles, 0.051) {
		return fmt.Errorf("expected stop %d at %.1f miles, got %.1f", index, miles, stop.CumulativeMiles)
	}
	return nil
}

func (pc *planningContext) theBreakStopShouldOccurAtDrivingHours(hours float64) error {
	stop, err := pc.firstStopOfType(planning.StopBreak)
	if err != nil {
		return err
	}
	if !closeTo(stop.CumulativeDrivingHours, hours, 0.051) {
		return fmt.Errorf("expected break at %.1f driving hours, got %.1f", hours, stop.CumulativeDrivingHours)
	}
	return nil
}

func (pc *planningContext) theRestStopShouldBeAt(name string) error {
	stop, err := pc.firstStopOfType(planning.StopRest)
	if err != nil {
		return err
	}
	if stop.Location != name {
		return fmt.Errorf("expected rest stop at %q, got %q", name, stop.Location)
	}
	return nil
}

func (pc *planningContext) theTotalDistanceShouldBe(miles float64) error {
	if err := pc.planningShouldSucceed(); err != nil {
		return err
	}
	if !closeTo(pc.trip.Summary.TotalDistanceMiles, miles, 0.051) {
		return fmt.Errorf("expected total distance %.1f, got %.1f", miles, pc.trip.Summary.TotalDistanceMiles)
	}
	return nil
}

func (pc *planningContext) theTripShouldSpanDays(days int) error {
	if err := pc.planningShouldSucceed(); err != nil {
		return err
	}
	if pc.trip.Summary.TotalDays != days {
		return fmt.Errorf("expected trip to span %d days, got %d", days, pc.trip.Summary.TotalDays)
	}
	return nil
}

func (pc *planningContext) theTripShouldHaveStops(count int) error {
	if err := pc.planningShouldSucceed(); err != nil {
		return err
	}
	if len(pc.trip.Stops) != count {
		return fmt.Errorf("expected %d stops, got %d", count, len(pc.trip.Stops))
	}
	return nil
}

func (pc *planningContext) theSummaryShouldReport(fuelStops, restBreaks, overnightRests int) error {
	if err := pc.planningShouldSucceed(); err != nil {
		return err
	}
	summary := pc.trip.Summary
	if summary.FuelStops != fuelStops {
		return fmt.Errorf("expected %d fuel stops, got %d", fuelStops, summary.FuelStops)
	}
	if summary.RestBreaks != restBreaks {
		return fmt.Errorf("expected %d rest breaks, got %d", restBreaks, summary.RestBreaks)
	}
	if summary.RestStops != overnightRests {
		return fmt.Errorf("expected %d overnight rests, got %d", overnightRests, summary.RestStops)
	}
	return nil
}

func (pc *planningContext) theCycleHoursAfterShouldBe(hours float64) error {
	if err := pc.planningShouldSucceed(); err != nil {
		return err
	}
	if !closeTo(pc.trip.Summary.CycleHoursAfter, hours, 0.051) {
		return fmt.Errorf("expected %.1f cycle hours after the trip, got %.1f", hours, pc.trip.Summary.CycleHoursAfter)
	}
	return nil
}

func (pc *planningContext) everyStopShouldCarryANote() error {
	if err := pc.planningShouldSucceed(); err != nil {
		return err
	}
	for _, stop := range pc.trip.Stops {
		if stop.Notes == "" {
			return fmt.Errorf("stop %d (%s) has no note", stop.ID, stop.Type)
		}
	}
	return nil
}

// InitializePlanningScenario registers trip planning and daily log steps
func InitializePlanningScenario(ctx *godog.ScenarioContext) {
	pc := &planningContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		pc.reset()
		return ctx, nil
	})

	// Given
	ctx.Step(`^the clock reads "([^"]*)"$`, pc.theClockReads)
	ctx.Step(`^a geocoded location "([^"]*)" at (-?\d+\.?\d*), (-?\d+\.?\d*)$`, pc.aGeocodedLocationAt)
	ctx.Step(`^intermediate stops reverse-geocode to "([^"]*)"$`, pc.intermediateStopsReverseGeocodeTo)
	ctx.Step(`^the road legs measure (\d+\.?\d*) and (\d+\.?\d*) miles$`, pc.theRoadLegsMeasure)
	ctx.Step(`^the driver has already used (\d+\.?\d*) cycle hours$`, pc.theDriverHasAlreadyUsedCycleHours)

	// When
	ctx.Step(`^I plan a trip from "([^"]*)" via "([^"]*)" to "([^"]*)"$`, pc.iPlanATrip)

	// Then
	ctx.Step(`^planning should succeed$`, pc.planningShouldSucceed)
	ctx.Step(`^planning should fail with a location error for "([^"]*)"$`, pc.planningShouldFailWithALocationErrorFor)
	ctx.Step(`^the stop sequence should be "([^"]*)"$`, pc.theStopSequenceShouldBe)
	ctx.Step(`^stop (\d+) should arrive at "([^"]*)"$`, pc.stopShouldArriveAt)
	ctx.Step(`^stop (\d+) should be a "([^"]*)" stop at (\d+\.?\d*) cumulative miles$`, pc.stopShouldBeATypeAtMiles)
	ctx.Step(`^the break stop should occur at (\d+\.?\d*) cumulative driving hours$`, pc.theBreakStopShouldOccurAtDrivingHours)
	ctx.Step(`^the rest stop should be at "([^"]*)"$`, pc.theRestStopShouldBeAt)
	ctx.Step(`^the total distance should be (\d+\.?\d*) miles$`, pc.theTotalDistanceShouldBe)
	ctx.Step(`^the trip should span (\d+) days?$`, pc.theTripShouldSpanDays)
	ctx.Step(`^the trip should have (\d+) stops$`, pc.theTripShouldHaveStops)
	ctx.Step(`^the summary should report (\d+) fuel stops?, (\d+) rest breaks? and (\d+) overnight rests?$`, pc.theSummaryShouldReport)
	ctx.Step(`^the cycle hours after the trip should be (\d+\.?\d*)$`, pc.theCycleHoursAfterShouldBe)
	ctx.Step(`^every stop should carry a note$`, pc.everyStopShouldCarryANote)

	registerLogSheetSteps(ctx, pc)
}
