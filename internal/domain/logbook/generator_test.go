package logbook_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/haulplan/internal/domain/logbook"
	"github.com/andrescamacho/haulplan/internal/domain/planning"
	"github.com/andrescamacho/haulplan/internal/domain/shared"
)

func newStop(id int, stopType planning.StopType, location string, arrival, departure time.Time, miles float64, status planning.DutyStatus, notes string) *planning.Stop {
	return &planning.Stop{
		ID:              id,
		Type:            stopType,
		Location:        location,
		ArrivalTime:     shared.NewLocalTime(arrival),
		DepartureTime:   shared.NewLocalTime(departure),
		DurationMinutes: int(departure.Sub(arrival).Minutes()),
		CumulativeMiles: miles,
		DutyStatus:      status,
		Notes:           notes,
	}
}

func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.June, 9+day, hour, minute, 0, 0, time.UTC)
}

func TestGenerator_SingleDayTrip(t *testing.T) {
	// Arrange
	stops := []*planning.Stop{
		newStop(1, planning.StopStart, "Chicago, IL", at(1, 6, 0), at(1, 6, 30), 0, planning.StatusOnDuty, "Pre-trip inspection"),
		newStop(2, planning.StopPickup, "Davenport, IA", at(1, 8, 30), at(1, 9, 30), 110, planning.StatusOnDuty, "Loading cargo"),
		newStop(3, planning.StopDropoff, "Des Moines, IA", at(1, 11, 30), at(1, 12, 30), 220, planning.StatusOnDuty, "Unloading cargo"),
		newStop(4, planning.StopEnd, "Des Moines, IA", at(1, 12, 30), at(1, 12, 45), 220, planning.StatusOnDuty, "Post-trip inspection"),
	}

	// Act
	sheets, err := logbook.NewGenerator().Generate(stops)

	// Assert
	require.NoError(t, err)
	require.Len(t, sheets, 1)

	sheet := sheets[0]
	assert.Equal(t, "06/10/2025", sheet.Date)
	assert.Equal(t, 1, sheet.DayNumber)
	assert.Equal(t, 220.0, sheet.TotalMiles)

	require.Len(t, sheet.Segments, 7)

	first := sheet.Segments[0]
	assert.Equal(t, planning.StatusOffDuty, first.Status)
	assert.Equal(t, 0.0, first.StartHour)
	assert.Equal(t, 6.0, first.EndHour)

	driving := sheet.Segments[2]
	assert.Equal(t, planning.StatusDriving, driving.Status)
	assert.Equal(t, 6.5, driving.StartHour)
	assert.Equal(t, 8.5, driving.EndHour)
	assert.Equal(t, "En route", driving.Location)

	last := sheet.Segments[len(sheet.Segments)-1]
	assert.Equal(t, planning.StatusOffDuty, last.Status)
	assert.Equal(t, 24.0, last.EndHour)

	assert.Equal(t, 17.2, sheet.Totals.OffDuty)
	assert.Equal(t, 0.0, sheet.Totals.Sleeper)
	assert.Equal(t, 4.0, sheet.Totals.Driving)
	assert.Equal(t, 2.8, sheet.Totals.OnDuty)

	require.Len(t, sheet.Remarks, 4)
	assert.Equal(t, "06:00", sheet.Remarks[0].Time)
	assert.Equal(t, "Chicago, IL", sheet.Remarks[0].Location)
	assert.Equal(t, "Pre-trip inspection", sheet.Remarks[0].Activity)
}

func TestGenerator_SegmentsTileTheDay(t *testing.T) {
	// Arrange
	stops := []*planning.Stop{
		newStop(1, planning.StopStart, "Chicago, IL", at(1, 6, 0), at(1, 6, 30), 0, planning.StatusOnDuty, "Pre-trip inspection"),
		newStop(2, planning.StopPickup, "Davenport, IA", at(1, 8, 30), at(1, 9, 30), 110, planning.StatusOnDuty, "Loading cargo"),
		newStop(3, planning.StopDropoff, "Des Moines, IA", at(1, 11, 30), at(1, 12, 30), 220, planning.StatusOnDuty, "Unloading cargo"),
		newStop(4, planning.StopEnd, "Des Moines, IA", at(1, 12, 30), at(1, 12, 45), 220, planning.StatusOnDuty, "Post-trip inspection"),
	}

	// Act
	sheets, err := logbook.NewGenerator().Generate(stops)

	// Assert
	require.NoError(t, err)
	for _, sheet := range sheets {
		require.NotEmpty(t, sheet.Segments)
		assert.Equal(t, 0.0, sheet.Segments[0].StartHour)
		assert.Equal(t, 24.0, sheet.Segments[len(sheet.Segments)-1].EndHour)
		for i := 1; i < len(sheet.Segments); i++ {
			assert.LessOrEqual(t, sheet.Segments[i].StartHour, sheet.Segments[i-1].EndHour+0.001)
		}

		sum := sheet.Totals.OffDuty + sheet.Totals.Sleeper + sheet.Totals.Driving + sheet.Totals.OnDuty
		assert.InDelta(t, 24.0, sum, 0.5)
	}
}

func TestGenerator_MultiDayCarriesStatusAcrossMidnight(t *testing.T) {
	// Arrange
	stops := []*planning.Stop{
		newStop(1, planning.StopStart, "Chicago, IL", at(1, 6, 0), at(1, 6, 30), 0, planning.StatusOnDuty, "Pre-trip inspection"),
		newStop(2, planning.StopRest, "Lincoln, NE", at(1, 17, 30), at(2, 3, 30), 605, planning.StatusOffDuty, "10-hour rest (11-hour driving limit)"),
		newStop(3, planning.StopPreTrip, "Lincoln, NE", at(2, 3, 30), at(2, 4, 0), 605, planning.StatusOnDuty, "Pre-trip inspection"),
		newStop(4, planning.StopPickup, "York, NE", at(2, 5, 0), at(2, 6, 0), 660, planning.StatusOnDuty, "Loading cargo"),
		newStop(5, planning.StopDropoff, "Grand Island, NE", at(2, 7, 0), at(2, 8, 0), 715, planning.StatusOnDuty, "Unloading cargo"),
		newStop(6, planning.StopEnd, "Grand Island, NE", at(2, 8, 0), at(2, 8, 15), 715, planning.StatusOnDuty, "Post-trip inspection"),
	}

	// Act
	sheets, err := logbook.NewGenerator().Generate(stops)

	// Assert
	require.NoError(t, err)
	require.Len(t, sheets, 2)

	day1 := sheets[0]
	assert.Equal(t, "06/10/2025", day1.Date)
	assert.Equal(t, 1, day1.DayNumber)
	assert.Equal(t, 605.0, day1.TotalMiles)

	// The rest stop runs to midnight, so day one closes off duty.
	day1Last := day1.Segments[len(day1.Segments)-1]
	assert.Equal(t, planning.StatusOffDuty, day1Last.Status)
	assert.Equal(t, 17.5, day1Last.StartHour)
	assert.Equal(t, "Lincoln, NE", day1Last.Location)
	assert.Equal(t, 11.0, day1.Totals.Driving)

	day2 := sheets[1]
	assert.Equal(t, "06/11/2025", day2.Date)
	assert.Equal(t, 2, day2.DayNumber)
	assert.Equal(t, 110.0, day2.TotalMiles)

	// Day two opens in the rest stop's off-duty status.
	day2First := day2.Segments[0]
	assert.Equal(t, planning.StatusOffDuty, day2First.Status)
	assert.Equal(t, 0.0, day2First.StartHour)
	assert.Equal(t, 3.5, day2First.EndHour)
	assert.Equal(t, "Lincoln, NE", day2First.Location)

	require.Len(t, day2.Remarks, 4)
	assert.Equal(t, "03:30", day2.Remarks[0].Time)
	assert.Equal(t, "Pre-trip inspection", day2.Remarks[0].Activity)
}

func TestGenerator_BreakShowsAsOffDuty(t *testing.T) {
	// Arrange
	stops := []*planning.Stop{
		newStop(1, planning.StopStart, "Chicago, IL", at(1, 6, 0), at(1, 6, 30), 0, planning.StatusOnDuty, "Pre-trip inspection"),
		newStop(2, planning.StopBreak, "Iowa City, IA", at(1, 14, 30), at(1, 15, 0), 440, planning.StatusOffDuty, "30-minute break (8 hours driving)"),
		newStop(3, planning.StopDropoff, "Des Moines, IA", at(1, 17, 0), at(1, 18, 0), 550, planning.StatusOnDuty, "Unloading cargo"),
		newStop(4, planning.StopEnd, "Des Moines, IA", at(1, 18, 0), at(1, 18, 15), 550, planning.StatusOnDuty, "Post-trip inspection"),
	}

	// Act
	sheets, err := logbook.NewGenerator().Generate(stops)

	// Assert
	require.NoError(t, err)
	require.Len(t, sheets, 1)

	var breakSegment *logbook.DutySegment
	for _, seg := range sheets[0].Segments {
		if seg.Status == planning.StatusOffDuty && seg.StartHour == 14.5 {
			breakSegment = seg
		}
	}
	require.NotNil(t, breakSegment)
	assert.Equal(t, 15.0, breakSegment.EndHour)
	assert.Equal(t, "Iowa City, IA", breakSegment.Location)
}

func TestGenerator_NoStops(t *testing.T) {
	// Act
	sheets, err := logbook.NewGenerator().Generate(nil)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, sheets)
}
