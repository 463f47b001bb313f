package planning

import "time"

// DriverState tracks the four HOS counters plus the trip clock and odometer.
// CycleHoursUsed is seeded from the caller's prior usage and only grows;
// the daily counters reset at every 10-hour rest.
type DriverState struct {
	DrivingHoursToday   float64
	OnDutyHoursToday    float64
	HoursSinceLastBreak float64
	CycleHoursUsed      float64
	CurrentTime         time.Time
	CurrentMiles        float64

	// MilesSinceFuel runs the fuel cadence. It is a counter reset at each
	// fuel stop rather than a modulo on the odometer, so float residue at
	// a leg boundary cannot strand the cadence a hair below its interval.
	MilesSinceFuel float64
}

// advanceDriving applies a driving chunk to every counter, the clock and
// the odometer.
func (s *DriverState) advanceDriving(hours, miles float64) {
	s.DrivingHoursToday += hours
	s.OnDutyHoursToday += hours
	s.HoursSinceLastBreak += hours
	s.CycleHoursUsed += hours
	s.CurrentTime = s.CurrentTime.Add(time.Duration(hours * float64(time.Hour)))
	s.CurrentMiles += miles
	s.MilesSinceFuel += miles
}
