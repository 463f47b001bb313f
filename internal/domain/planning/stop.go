package planning

import (
	"github.com/andrescamacho/haulplan/internal/domain/shared"
)

// StopType identifies why a planned stop exists.
type StopType string

const (
	StopStart   StopType = "start"
	StopPickup  StopType = "pickup"
	StopDropoff StopType = "dropoff"
	StopEnd     StopType = "end"
	StopBreak   StopType = "break"
	StopRest    StopType = "rest"
	StopPreTrip StopType = "pre_trip"
	StopFuel    StopType = "fuel"
)

// DutyStatus is an ELD duty-status line.
type DutyStatus string

const (
	StatusOffDuty DutyStatus = "off_duty"
	StatusSleeper DutyStatus = "sleeper"
	StatusDriving DutyStatus = "driving"
	StatusOnDuty  DutyStatus = "on_duty"
)

// Stop is one planned event on the trip timeline. Departure always equals
// arrival plus the stop duration.
type Stop struct {
	ID                     int               `json:"id"`
	Type                   StopType          `json:"type"`
	Location               string            `json:"location"`
	Coordinates            shared.Coordinate `json:"coordinates"`
	ArrivalTime            shared.LocalTime  `json:"arrival_time"`
	DepartureTime          shared.LocalTime  `json:"departure_time"`
	DurationMinutes        int               `json:"duration_minutes"`
	CumulativeMiles        float64           `json:"cumulative_miles"`
	CumulativeDrivingHours float64           `json:"cumulative_driving_hours"`
	Day                    int               `json:"day"`
	DutyStatus             DutyStatus        `json:"duty_status"`
	Notes                  string            `json:"notes"`
}

// stopEffect describes how a stop type acts on the duty counters. Effects
// apply after the stop is recorded, so the recorded snapshot reflects the
// state at arrival.
type stopEffect struct {
	status       DutyStatus
	countsOnDuty bool // duration feeds the on-duty and cycle counters
	resetsBreak  bool // hours since last break return to zero
	resetsDaily  bool // driving, on-duty and break counters return to zero
	resetsFuel   bool // miles since the last fuel stop return to zero
}

// stopEffects keys every stop type to its counter effects. Driving time is
// never represented as a stop; it advances the counters directly.
var stopEffects = map[StopType]stopEffect{
	StopStart:   {status: StatusOnDuty, countsOnDuty: true},
	StopPickup:  {status: StatusOnDuty, countsOnDuty: true},
	StopDropoff: {status: StatusOnDuty, countsOnDuty: true},
	StopEnd:     {status: StatusOnDuty, countsOnDuty: true},
	StopPreTrip: {status: StatusOnDuty, countsOnDuty: true},
	StopFuel:    {status: StatusOnDuty, countsOnDuty: true, resetsFuel: true},
	StopBreak:   {status: StatusOffDuty, resetsBreak: true},
	StopRest:    {status: StatusOffDuty, resetsDaily: true},
}
