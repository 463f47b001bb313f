package steps

import (
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/haulplan/internal/domain/logbook"
)

// Log sheet assertions run against the trip planned by the planning steps,
// so they live on the same context.

func (pc *planningContext) sheet(index int) (*logbook.LogSheet, error) {
	if pc.trip == nil {
		return nil, fmt.Errorf("no trip was planned")
	}
	if index < 1 || index > len(pc.trip.LogSheets) {
		return nil, fmt.Errorf("log sheet %d out of range, trip has %d sheets", index, len(pc.trip.LogSheets))
	}
	return pc.trip.LogSheets[index-1], nil
}

func (pc *planningContext) theTripShouldProduceSheets(count int) error {
	if err := pc.planningShouldSucceed(); err != nil {
		return err
	}
	if len(pc.trip.LogSheets) != count {
		return fmt.Errorf("expected %d log sheets, got %d", count, len(pc.trip.LogSheets))
	}
	return nil
}

func (pc *planningContext) logSheetShouldBeDated(index int, date string, dayNumber int) error {
	sheet, err := pc.sheet(index)
	if err != nil {
		return err
	}
	if sheet.Date != date {
		return fmt.Errorf("expected sheet %d dated %s, got %s", index, date, sheet.Date)
	}
	if sheet.DayNumber != dayNumber {
		return fmt.Errorf("expected sheet %d to be day %d, got %d", index, dayNumber, sheet.DayNumber)
	}
	return nil
}

func (pc *planningContext) logSheetShouldRecordMiles(index int, miles float64) error {
	sheet, err := pc.sheet(index)
	if err != nil {
		return err
	}
	if !closeTo(sheet.TotalMiles, miles, 0.051) {
		return fmt.Errorf("expected sheet %d to record %.1f miles, got %.1f", index, miles, sheet.TotalMiles)
	}
	return nil
}

func (pc *planningContext) logSheetShouldTotalDrivingHours(index int, hours float64) error {
	sheet, err := pc.sheet(index)
	if err != nil {
		return err
	}
	if !closeTo(sheet.Totals.Driving, hours, 0.051) {
		return fmt.Errorf("expected sheet %d to total %.1f driving hours, got %.1f", index, hours, sheet.Totals.Driving)
	}
	return nil
}

func (pc *planningContext) logSheetShouldOpenWith(index int, status string, endHour float64) error {
	sheet, err := pc.sheet(index)
	if err != nil {
		return err
	}
	if len(sheet.Segments) == 0 {
		return fmt.Errorf("sheet %d has no duty segments", index)
	}
	first := sheet.Segments[0]
	if string(first.Status) != status {
		return fmt.Errorf("expected sheet %d to open %s, got %s", index, status, first.Status)
	}
	if first.StartHour != 0 {
		return fmt.Errorf("expected sheet %d to open at hour 0, got %.2f", index, first.StartHour)
	}
	if !closeTo(first.EndHour, endHour, 0.011) {
		return fmt.Errorf("expected sheet %d opening segment to end at %.1f, got %.2f", index, endHour, first.EndHour)
	}
	return nil
}

func (pc *planningContext) dutySegmentsShouldTileTheDay() error {
	if err := pc.planningShouldSucceed(); err != nil {
		return err
	}
	for _, sheet := range pc.trip.LogSheets {
		segs := sheet.Segments
		if len(segs) == 0 {
			return fmt.Errorf("sheet %s has no duty segments", sheet.Date)
		}
		if segs[0].StartHour != 0 {
			return fmt.Errorf("sheet %s starts at %.2f, not midnight", sheet.Date, segs[0].StartHour)
		}
		if segs[len(segs)-1].EndHour != 24 {
			return fmt.Errorf("sheet %s ends at %.2f, not midnight", sheet.Date, segs[len(segs)-1].EndHour)
		}
		for i := 1; i < len(segs); i++ {
			if segs[i].StartHour > segs[i-1].EndHour+0.011 {
				return fmt.Errorf("sheet %s has a gap between %.2f and %.2f",
					sheet.Date, segs[i-1].EndHour, segs[i].StartHour)
			}
		}
	}
	return nil
}

func (pc *planningContext) statusTotalsShouldSumTo24() error {
	if err := pc.planningShouldSucceed(); err != nil {
		return err
	}
	for _, sheet := range pc.trip.LogSheets {
		sum := sheet.Totals.OffDuty + sheet.Totals.Sleeper + sheet.Totals.Driving + sheet.Totals.OnDuty
		if !closeTo(sum, 24.0, 0.5) {
			return fmt.Errorf("sheet %s totals sum to %.1f, not 24", sheet.Date, sum)
		}
	}
	return nil
}

func (pc *planningContext) everySheetShouldIncludeARemark() error {
	if err := pc.planningShouldSucceed(); err != nil {
		return err
	}
	for _, sheet := range pc.trip.LogSheets {
		if len(sheet.Remarks) == 0 {
			return fmt.Errorf("sheet %s has no remarks", sheet.Date)
		}
	}
	return nil
}

func registerLogSheetSteps(ctx *godog.ScenarioContext, pc *planningContext) {
	// Then
	ctx.Step(`^the trip should produce (\d+) daily log sheets?$`, pc.theTripShouldProduceSheets)
	ctx.Step(`^log sheet (\d+) should be dated "([^"]*)" with day number (\d+)$`, pc.logSheetShouldBeDated)
	ctx.Step(`^log sheet (\d+) should record (\d+\.?\d*) miles$`, pc.logSheetShouldRecordMiles)
	ctx.Step(`^log sheet (\d+) should total (\d+\.?\d*) driving hours$`, pc.logSheetShouldTotalDrivingHours)
	ctx.Step(`^log sheet (\d+) should open with an "([^"]*)" segment ending at (\d+\.?\d*)$`, pc.logSheetShouldOpenWith)
	ctx.Step(`^the duty segments of every sheet should tile the day$`, pc.dutySegmentsShouldTileTheDay)
	ctx.Step(`^the status totals of every sheet should sum to 24 hours$`, pc.statusTotalsShouldSumTo24)
	ctx.Step(`^every sheet should include at least one remark$`, pc.everySheetShouldIncludeARemark)
}
