package logbook

import (
	"github.com/andrescamacho/haulplan/internal/domain/planning"
)

// DutySegment is a half-open [StartHour, EndHour) span of one duty status
// within a single calendar day. Hours are decimal since midnight, 0 to 24.
type DutySegment struct {
	Status    planning.DutyStatus `json:"status"`
	StartHour float64             `json:"start_hour"`
	EndHour   float64             `json:"end_hour"`
	Location  string              `json:"location"`
	Notes     string              `json:"notes"`
}

// StatusTotals breaks a day's 24 hours down by duty status. The four
// buckets sum to 24 within rounding tolerance.
type StatusTotals struct {
	OffDuty float64 `json:"off_duty"`
	Sleeper float64 `json:"sleeper"`
	Driving float64 `json:"driving"`
	OnDuty  float64 `json:"on_duty"`
}

// Remark is a timestamped activity note on a day's log.
type Remark struct {
	Time     string `json:"time"` // HH:MM
	Location string `json:"location"`
	Activity string `json:"activity"`
}

// LogSheet is one calendar day of the trip rendered as an ELD daily log:
// a gap-free duty-status strip chart over [0, 24] plus totals, mileage and
// remarks.
type LogSheet struct {
	Date       string         `json:"date"` // MM/DD/YYYY
	DayNumber  int            `json:"day_number"`
	TotalMiles float64        `json:"total_miles"`
	Segments   []*DutySegment `json:"segments"`
	Totals     StatusTotals   `json:"totals"`
	Remarks    []Remark       `json:"remarks"`
}
