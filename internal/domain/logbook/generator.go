// Package logbook renders a planned stop sequence into FMCSA-style daily
// log sheets. Each sheet covers one calendar day, midnight to midnight,
// with a continuous duty status line across the full 24 hours.
package logbook

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/andrescamacho/haulplan/internal/domain/planning"
	"github.com/andrescamacho/haulplan/internal/domain/shared"
	"github.com/andrescamacho/haulplan/pkg/utils"
)

// hourTolerance absorbs float noise when comparing decimal hours.
const hourTolerance = 0.001

// event is one duty status change on the trip timeline.
type event struct {
	time     time.Time
	status   planning.DutyStatus
	location string
	notes    string
}

// Generator builds daily log sheets from a planned stop sequence.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate produces one log sheet per calendar day between the first stop's
// arrival and the last stop's departure, inclusive.
func (g *Generator) Generate(stops []*planning.Stop) ([]*LogSheet, error) {
	if len(stops) == 0 {
		return nil, nil
	}

	events := buildTimeline(stops)

	first := midnightOf(events[0].time)
	last := midnightOf(events[len(events)-1].time)

	var sheets []*LogSheet
	dayNum := 1
	for date := first; !date.After(last); date = date.AddDate(0, 0, 1) {
		sheet := g.buildDay(date, dayNum, events, stops)
		if err := checkCoverage(sheet); err != nil {
			return nil, err
		}
		sheets = append(sheets, sheet)
		dayNum++
	}

	return sheets, nil
}

// buildTimeline flattens stops into duty status change events. Every stop
// contributes an arrival event for the activity at the stop and a departure
// event for the drive toward the next stop. The last stop's departure ends
// the trip off duty.
func buildTimeline(stops []*planning.Stop) []event {
	events := make([]event, 0, len(stops)*2)

	for i, stop := range stops {
		status := planning.StatusOnDuty
		if stop.Type == planning.StopRest || stop.Type == planning.StopBreak || stop.DutyStatus == planning.StatusOffDuty {
			status = planning.StatusOffDuty
		}

		events = append(events, event{
			time:     stop.ArrivalTime.Time,
			status:   status,
			location: stop.Location,
			notes:    stop.Notes,
		})

		if i < len(stops)-1 {
			events = append(events, event{
				time:     stop.DepartureTime.Time,
				status:   planning.StatusDriving,
				location: "En route",
				notes:    "Driving to " + stops[i+1].Location,
			})
		} else {
			events = append(events, event{
				time:     stop.DepartureTime.Time,
				status:   planning.StatusOffDuty,
				location: stop.Location,
				notes:    "Trip complete",
			})
		}
	}

	sort.SliceStable(events, func(a, b int) bool {
		return events[a].time.Before(events[b].time)
	})

	return events
}

func (g *Generator) buildDay(date time.Time, dayNum int, events []event, stops []*planning.Stop) *LogSheet {
	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)

	segments := buildSegments(dayStart, dayEnd, events, dayNum)

	return &LogSheet{
		Date:       date.Format("01/02/2006"),
		DayNumber:  dayNum,
		TotalMiles: utils.Round1(dayMiles(dayStart, dayEnd, stops)),
		Segments:   segments,
		Totals:     calculateTotals(segments),
		Remarks:    dayRemarks(dayStart, dayEnd, stops),
	}
}

// buildSegments walks the day's events and cuts the 24-hour strip into
// duty status spans, then merges and normalizes them so the spans tile
// the day exactly.
func buildSegments(dayStart, dayEnd time.Time, events []event, dayNum int) []*DutySegment {
	status, location := statusAt(dayStart, events, dayNum)

	var segments []*DutySegment
	currentHour := 0.0

	for _, ev := range events {
		if ev.time.Before(dayStart) || !ev.time.Before(dayEnd) {
			continue
		}

		eventHour := hoursSinceMidnight(ev.time)
		if eventHour > currentHour+hourTolerance {
			segments = append(segments, &DutySegment{
				Status:    status,
				StartHour: utils.Round2(currentHour),
				EndHour:   utils.Round2(eventHour),
				Location:  location,
			})
		}

		currentHour = eventHour
		status = ev.status
		location = ev.location
	}

	if currentHour < 24.0 {
		segments = append(segments, &DutySegment{
			Status:    status,
			StartHour: utils.Round2(currentHour),
			EndHour:   24.0,
			Location:  location,
		})
	}

	return normalizeSegments(mergeSegments(segments))
}

// statusAt resolves the duty status in effect at a day's first midnight.
// Day one starts off duty. Later days carry whatever status the last event
// before midnight established.
func statusAt(target time.Time, events []event, dayNum int) (planning.DutyStatus, string) {
	if dayNum == 1 {
		return planning.StatusOffDuty, ""
	}

	var last *event
	for i := range events {
		if events[i].time.Before(target) {
			last = &events[i]
		} else {
			break
		}
	}
	if last != nil {
		return last.status, last.location
	}
	return planning.StatusOffDuty, ""
}

func hoursSinceMidnight(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60.0 + float64(t.Second())/3600.0
}

func midnightOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// mergeSegments joins consecutive spans that share a duty status. A merged
// span keeps the first non-empty location.
func mergeSegments(segments []*DutySegment) []*DutySegment {
	if len(segments) == 0 {
		return nil
	}

	merged := []*DutySegment{segments[0]}
	for _, seg := range segments[1:] {
		prev := merged[len(merged)-1]
		if seg.Status == prev.Status {
			prev.EndHour = seg.EndHour
			if seg.Location != "" && prev.Location == "" {
				prev.Location = seg.Location
			}
		} else {
			merged = append(merged, seg)
		}
	}
	return merged
}

// normalizeSegments closes any float gaps between spans and pins the strip
// to [0.0, 24.0]. An empty day becomes a single off-duty span.
func normalizeSegments(segments []*DutySegment) []*DutySegment {
	if len(segments) == 0 {
		return []*DutySegment{{Status: planning.StatusOffDuty, StartHour: 0.0, EndHour: 24.0}}
	}

	normalized := make([]*DutySegment, 0, len(segments))
	for _, seg := range segments {
		start := seg.StartHour
		if len(normalized) > 0 {
			prev := normalized[len(normalized)-1]
			if start > prev.EndHour+hourTolerance {
				prev.EndHour = start
			}
		}
		normalized = append(normalized, &DutySegment{
			Status:    seg.Status,
			StartHour: utils.Round1(start),
			EndHour:   utils.Round1(seg.EndHour),
			Location:  seg.Location,
			Notes:     seg.Notes,
		})
	}

	if normalized[0].StartHour > 0 {
		normalized[0].StartHour = 0.0
	}
	if normalized[len(normalized)-1].EndHour < 24.0 {
		normalized[len(normalized)-1].EndHour = 24.0
	}
	return normalized
}

// calculateTotals sums span lengths per duty status. If rounding drifted
// the sum away from 24 hours, the largest bucket absorbs the difference.
func calculateTotals(segments []*DutySegment) StatusTotals {
	var totals StatusTotals
	for _, seg := range segments {
		hours := seg.EndHour - seg.StartHour
		if hours <= 0 {
			continue
		}
		switch seg.Status {
		case planning.StatusOffDuty:
			totals.OffDuty += hours
		case planning.StatusSleeper:
			totals.Sleeper += hours
		case planning.StatusDriving:
			totals.Driving += hours
		case planning.StatusOnDuty:
			totals.OnDuty += hours
		}
	}

	totals.OffDuty = utils.Round1(totals.OffDuty)
	totals.Sleeper = utils.Round1(totals.Sleeper)
	totals.Driving = utils.Round1(totals.Driving)
	totals.OnDuty = utils.Round1(totals.OnDuty)

	sum := totals.OffDuty + totals.Sleeper + totals.Driving + totals.OnDuty
	if math.Abs(sum-24.0) > 0.5 {
		largest := &totals.OffDuty
		if totals.Sleeper > *largest {
			largest = &totals.Sleeper
		}
		if totals.Driving > *largest {
			largest = &totals.Driving
		}
		if totals.OnDuty > *largest {
			largest = &totals.OnDuty
		}
		*largest = utils.Round1(*largest + (24.0 - sum))
	}

	return totals
}

// dayMiles computes the distance driven within one calendar day from the
// odometer snapshots on its stops. The trip's first day counts from zero,
// later days from the last stop before their midnight.
func dayMiles(dayStart, dayEnd time.Time, stops []*planning.Stop) float64 {
	var dayStops []*planning.Stop
	for _, stop := range stops {
		if inDay(stop.ArrivalTime.Time, dayStart, dayEnd) {
			dayStops = append(dayStops, stop)
		}
	}
	if len(dayStops) == 0 {
		return 0
	}

	lastMiles := dayStops[len(dayStops)-1].CumulativeMiles

	if sameDate(stops[0].ArrivalTime.Time, dayStart) {
		return lastMiles
	}

	prevMiles := 0.0
	for _, stop := range stops {
		if stop.ArrivalTime.Time.Before(dayStart) {
			prevMiles = stop.CumulativeMiles
		} else {
			break
		}
	}
	return lastMiles - prevMiles
}

// dayRemarks lists the stops arriving within the day as timestamped
// activity notes.
func dayRemarks(dayStart, dayEnd time.Time, stops []*planning.Stop) []Remark {
	remarks := make([]Remark, 0)
	for _, stop := range stops {
		arrival := stop.ArrivalTime.Time
		if !inDay(arrival, dayStart, dayEnd) {
			continue
		}

		activity := stop.Notes
		if activity == "" {
			activity = string(stop.Type)
		}
		remarks = append(remarks, Remark{
			Time:     arrival.Format("15:04"),
			Location: stop.Location,
			Activity: activity,
		})
	}
	return remarks
}

func inDay(t, dayStart, dayEnd time.Time) bool {
	return !t.Before(dayStart) && t.Before(dayEnd)
}

func sameDate(t, midnight time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := midnight.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// checkCoverage verifies a sheet's spans run gap-free from midnight to
// midnight.
func checkCoverage(sheet *LogSheet) error {
	segs := sheet.Segments
	if len(segs) == 0 {
		return shared.NewInvariantViolationError(fmt.Sprintf("log sheet %s has no duty segments", sheet.Date))
	}
	if segs[0].StartHour != 0.0 || segs[len(segs)-1].EndHour != 24.0 {
		return shared.NewInvariantViolationError(fmt.Sprintf(
			"log sheet %s spans %.2f to %.2f instead of the full day",
			sheet.Date, segs[0].StartHour, segs[len(segs)-1].EndHour,
		))
	}
	for i := 1; i < len(segs); i++ {
		if segs[i].StartHour > segs[i-1].EndHour+hourTolerance {
			return shared.NewInvariantViolationError(fmt.Sprintf(
				"log sheet %s has a duty gap between %.2f and %.2f",
				sheet.Date, segs[i-1].EndHour, segs[i].StartHour,
			))
		}
	}
	return nil
}
