package services

import (
	"math"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/domain"
)

// Fixed anchors of the single-day timeline: the driver rests until 06:00,
// runs a 1h pre-trip inspection until 07:00, and closes the driving day
// with a 0.5h post-trip inspection.
const (
	restEnd          = 6.0
	preTripEnd       = 7.0
	preTripHours     = 1.0
	postTripHours    = 0.5
	maxLegBeforeRest = 8.0
	dayEnd           = 24.0
)

// BuildDailyLog synthesizes an FMCSA-compliant 24-hour duty log for a
// single driving day. Pure: no I/O, no clocks, deterministic for a
// given (distance, cycle-used, limits) triple.
//
// All hour figures are rounded to 2 decimals at this boundary only;
// internal arithmetic keeps full precision.
func BuildDailyLog(distanceMiles, currentCycleUsed float64, limits config.HOSLimits) domain.LogSheet {
	drivingHours := distanceMiles / limits.AverageSpeedMPH
	if drivingHours > limits.DailyDriveLimit {
		drivingHours = limits.DailyDriveLimit
	}

	grid := make([]domain.DutySegment, 0, 7)
	grid = append(grid,
		domain.DutySegment{Status: domain.StatusOffDuty, Start: 0, End: restEnd},
		domain.DutySegment{Status: domain.StatusOnDuty, Start: restEnd, End: preTripEnd},
	)

	clock := preTripEnd
	onDuty := preTripHours

	// First leg runs at most 8h before the required 30-minute break.
	// Zero-length driving segments are elided, never emitted.
	firstLeg := math.Min(drivingHours, maxLegBeforeRest)
	if firstLeg > 0 {
		grid = append(grid, domain.DutySegment{Status: domain.StatusDriving, Start: clock, End: clock + firstLeg})
		clock += firstLeg
	}

	if drivingHours > maxLegBeforeRest {
		grid = append(grid, domain.DutySegment{Status: domain.StatusOffDuty, Start: clock, End: clock + limits.RequiredBreakHours})
		clock += limits.RequiredBreakHours

		remaining := drivingHours - maxLegBeforeRest
		grid = append(grid, domain.DutySegment{Status: domain.StatusDriving, Start: clock, End: clock + remaining})
		clock += remaining
	}

	grid = append(grid, domain.DutySegment{Status: domain.StatusOnDuty, Start: clock, End: clock + postTripHours})
	onDuty += postTripHours
	clock += postTripHours

	if clock < dayEnd {
		grid = append(grid, domain.DutySegment{Status: domain.StatusOffDuty, Start: clock, End: dayEnd})
	}

	// Totals derive from the grid itself so the four figures always
	// account for the full 24 hours (the mid-day break is off duty).
	totals := sumGrid(grid)

	todayOnDuty := drivingHours + onDuty
	totalWithToday := math.Min(limits.CycleLimit, currentCycleUsed+todayOnDuty)
	availableTomorrow := math.Max(0, limits.CycleLimit-totalWithToday)

	return domain.LogSheet{
		Grid:   grid,
		Totals: totals,
		Recap: domain.CycleRecap{
			HoursUsedLast7Days:     round2(currentCycleUsed),
			HoursAvailableTomorrow: round2(availableTomorrow),
		},
		DriverInfo: domain.DriverInfo{
			MilesDrivingToday: round2(distanceMiles),
			TotalMileageToday: round2(distanceMiles),
		},
	}
}

func sumGrid(grid []domain.DutySegment) domain.DailyTotals {
	var offDuty, sleeper, driving, onDuty float64
	for _, seg := range grid {
		span := seg.End - seg.Start
		switch seg.Status {
		case domain.StatusOffDuty:
			offDuty += span
		case domain.StatusSleeper:
			sleeper += span
		case domain.StatusDriving:
			driving += span
		case domain.StatusOnDuty:
			onDuty += span
		}
	}

	return domain.DailyTotals{
		OffDuty: round2(offDuty),
		Sleeper: round2(sleeper),
		Driving: round2(driving),
		OnDuty:  round2(onDuty),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
