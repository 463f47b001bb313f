package planning

import (
	"context"
	"math"
	"time"

	"github.com/andrescamacho/haulplan/internal/domain/shared"
	"github.com/andrescamacho/haulplan/pkg/utils"
)

// tolerance absorbs float drift when comparing accumulated miles and hours
// against the regulatory limits.
const tolerance = 1e-6

// Input is everything the planner needs to lay out one trip.
type Input struct {
	Current  shared.NamedLocation
	Pickup   shared.NamedLocation
	Dropoff  shared.NamedLocation
	LegMiles [2]float64 // router distances: current to pickup, pickup to dropoff

	CycleHoursUsed float64 // hours already consumed in the 70-hour/8-day cycle
	StartTime      time.Time
}

// Planner walks a routed trip and emits the HOS-mandated stop sequence:
// the fixed skeleton (start, pickup, dropoff, end) with breaks, rests and
// fuel stops interleaved inside the two drive legs at the earliest binding
// limit. A Planner is scoped to a single request and is not safe for
// concurrent use.
type Planner struct {
	rules   Rules
	locator PointLocator
	namer   LocationNamer

	state        DriverState
	stops        []*Stop
	nextID       int
	firstArrival time.Time
}

// NewPlanner creates a planner over the given route geometry and reverse
// geocoding capability.
func NewPlanner(rules Rules, locator PointLocator, namer LocationNamer) *Planner {
	return &Planner{
		rules:   rules,
		locator: locator,
		namer:   namer,
	}
}

// State returns a copy of the driver state after planning. The cycle counter
// in it feeds the trip summary.
func (p *Planner) State() DriverState {
	return p.state
}

// Plan lays out the full stop sequence for one trip. Identical inputs
// produce identical output; the only error paths are invalid leg distances
// and context cancellation during reverse geocoding.
func (p *Planner) Plan(ctx context.Context, in Input) ([]*Stop, error) {
	if in.LegMiles[0] < 0 || in.LegMiles[1] < 0 {
		return nil, shared.NewValidationError("leg_miles", "leg distances must be non-negative")
	}

	p.stops = nil
	p.nextID = 0
	p.state = DriverState{
		CycleHoursUsed: in.CycleHoursUsed,
		CurrentTime:    in.StartTime,
	}

	p.emit(StopStart, in.Current.DisplayName, in.Current.Coordinate, p.rules.Assumptions.PreTripMinutes, "Pre-trip inspection")

	if err := p.driveLeg(ctx, in.LegMiles[0], 0); err != nil {
		return nil, err
	}
	p.emit(StopPickup, in.Pickup.DisplayName, in.Pickup.Coordinate, p.rules.Assumptions.PickupMinutes, "Loading cargo")

	if err := p.driveLeg(ctx, in.LegMiles[1], in.LegMiles[0]); err != nil {
		return nil, err
	}
	p.emit(StopDropoff, in.Dropoff.DisplayName, in.Dropoff.Coordinate, p.rules.Assumptions.DropoffMinutes, "Unloading cargo")

	p.emit(StopEnd, in.Dropoff.DisplayName, in.Dropoff.Coordinate, p.rules.Assumptions.PostTripMinutes, "Post-trip inspection")

	return p.stops, nil
}

// driveLeg advances the driver through one leg, inserting stops at the
// earliest binding limit. startMiles is the leg's offset from the route
// origin, used to locate interleaved stops on the shared geometry.
func (p *Planner) driveLeg(ctx context.Context, legMiles, startMiles float64) error {
	remaining := legMiles

	for remaining > tolerance {
		if err := ctx.Err(); err != nil {
			return err
		}

		untilBreak := p.milesUntilBreak()
		untilRest := p.milesUntilRest()
		untilFuel := p.milesUntilFuel()

		drivable := math.Min(remaining, math.Min(untilBreak, math.Min(untilRest, untilFuel)))

		if drivable <= tolerance {
			// A limit binds before any driving. Rest subsumes break, so it
			// is checked first. Fuel can bind alone when the previous leg
			// ended on the interval boundary; emitting it resets the
			// cadence, so every pass through here makes progress.
			mile := startMiles + (legMiles - remaining)
			switch {
			case p.restDue():
				p.takeRest(ctx, mile)
			case p.breakDue():
				p.takeBreak(ctx, mile)
			default:
				p.takeFuel(ctx, mile)
			}
			continue
		}

		// Fuel binds when it cut this chunk short; the counter itself is
		// never re-tested against the interval after the drive.
		fuelCut := untilFuel-drivable < tolerance

		hours := drivable / p.rules.Assumptions.AverageSpeedMPH
		p.state.advanceDriving(hours, drivable)
		remaining -= drivable

		if remaining > tolerance {
			mile := startMiles + (legMiles - remaining)
			switch {
			case p.restDue():
				p.takeRest(ctx, mile)
			case p.breakDue():
				p.takeBreak(ctx, mile)
			case fuelCut:
				p.takeFuel(ctx, mile)
			}
		}
	}

	return nil
}

func (p *Planner) restDue() bool {
	return p.state.DrivingHoursToday >= p.rules.Limits.MaxDrivingHours-tolerance
}

func (p *Planner) breakDue() bool {
	return p.state.HoursSinceLastBreak >= p.rules.Limits.BreakAfterHours-tolerance
}

func (p *Planner) milesUntilBreak() float64 {
	hoursLeft := p.rules.Limits.BreakAfterHours - p.state.HoursSinceLastBreak
	return math.Max(0, hoursLeft*p.rules.Assumptions.AverageSpeedMPH)
}

func (p *Planner) milesUntilRest() float64 {
	hoursLeft := p.rules.Limits.MaxDrivingHours - p.state.DrivingHoursToday
	return math.Max(0, hoursLeft*p.rules.Assumptions.AverageSpeedMPH)
}

func (p *Planner) milesUntilFuel() float64 {
	return math.Max(0, p.rules.Assumptions.FuelIntervalMiles-p.state.MilesSinceFuel)
}

// takeBreak inserts the mandatory 30-minute off-duty break.
func (p *Planner) takeBreak(ctx context.Context, mile float64) {
	coord := p.locator.PointAt(mile)
	p.emit(StopBreak, p.nameCoordinate(ctx, coord), coord, p.rules.Limits.BreakMinutes, "30-minute break (8 hours driving)")
}

// takeRest inserts the 10-hour off-duty rest and the pre-trip inspection
// that begins the next duty day.
func (p *Planner) takeRest(ctx context.Context, mile float64) {
	coord := p.locator.PointAt(mile)
	location := p.nameCoordinate(ctx, coord)
	p.emit(StopRest, location, coord, int(p.rules.Limits.RestHours*60), "10-hour rest (11-hour driving limit)")
	p.emit(StopPreTrip, location, coord, p.rules.Assumptions.PreTripMinutes, "Pre-trip inspection")
}

// takeFuel inserts an on-duty fuel stop.
func (p *Planner) takeFuel(ctx context.Context, mile float64) {
	coord := p.locator.PointAt(mile)
	p.emit(StopFuel, p.nameCoordinate(ctx, coord), coord, p.rules.Assumptions.FuelStopMinutes, "Fuel stop (1,000 miles)")
}

// nameCoordinate reverse geocodes a stop position. Lookup failures degrade
// to a generic label rather than failing the plan.
func (p *Planner) nameCoordinate(ctx context.Context, coord shared.Coordinate) string {
	name, ok, err := p.namer.Reverse(ctx, coord)
	if err != nil || !ok || name == "" {
		return shared.UnknownLocation
	}
	return name
}

// emit records a stop at the current state, advances the clock to the
// stop's departure, and applies the stop type's counter effects.
func (p *Planner) emit(stopType StopType, location string, coord shared.Coordinate, durationMinutes int, notes string) {
	p.nextID++

	arrival := p.state.CurrentTime
	departure := arrival.Add(time.Duration(durationMinutes) * time.Minute)
	if len(p.stops) == 0 {
		p.firstArrival = arrival
	}

	effect := stopEffects[stopType]
	p.stops = append(p.stops, &Stop{
		ID:                     p.nextID,
		Type:                   stopType,
		Location:               shared.FormatLocation(location),
		Coordinates:            coord,
		ArrivalTime:            shared.NewLocalTime(arrival),
		DepartureTime:          shared.NewLocalTime(departure),
		DurationMinutes:        durationMinutes,
		CumulativeMiles:        utils.Round1(p.state.CurrentMiles),
		CumulativeDrivingHours: utils.Round2(p.state.DrivingHoursToday),
		Day:                    calendarDay(p.firstArrival, arrival),
		DutyStatus:             effect.status,
		Notes:                  notes,
	})

	if effect.countsOnDuty {
		p.state.OnDutyHoursToday += float64(durationMinutes) / 60
		p.state.CycleHoursUsed += float64(durationMinutes) / 60
	}
	p.state.CurrentTime = departure

	if effect.resetsDaily {
		p.state.DrivingHoursToday = 0
		p.state.OnDutyHoursToday = 0
		p.state.HoursSinceLastBreak = 0
	} else if effect.resetsBreak {
		p.state.HoursSinceLastBreak = 0
	}
	if effect.resetsFuel {
		p.state.MilesSinceFuel = 0
	}
}

// calendarDay numbers a stop's day relative to the calendar date of the
// first emitted stop, starting at 1.
func calendarDay(first, arrival time.Time) int {
	fy, fm, fd := first.Date()
	ay, am, ad := arrival.Date()
	start := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	current := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	return int(current.Sub(start).Hours()/24) + 1
}
