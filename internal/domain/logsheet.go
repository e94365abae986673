package domain

// Duty status occupying a slice of the 24-hour log grid.
// The string values match the labels the log-sheet client renders.
type DutyStatus string

const (
	StatusOffDuty DutyStatus = "Off Duty"
	StatusSleeper DutyStatus = "Sleeper Berth"
	StatusDriving DutyStatus = "Driving"
	StatusOnDuty  DutyStatus = "On Duty"
)

// One contiguous span of a single duty status on the daily grid.
// Start and End are hours since midnight, Start < End, both in [0, 24].
type DutySegment struct {
	Status DutyStatus
	Start  float64
	End    float64
}

// Hours spent in each duty status over the day. The four fields sum to 24.
type DailyTotals struct {
	OffDuty float64
	Sleeper float64
	Driving float64
	OnDuty  float64
}

// Rolling-cycle recap figures for the 70-hour / 8-day rule.
type CycleRecap struct {
	HoursUsedLast7Days     float64
	HoursAvailableTomorrow float64
}

// Driver-facing mileage figures for the day.
type DriverInfo struct {
	MilesDrivingToday float64
	TotalMileageToday float64
}

// A full day's duty log: the grid plus its derived summary figures.
// Produced deterministically by the HOS engine; never mutated afterwards.
type LogSheet struct {
	Grid       []DutySegment
	Totals     DailyTotals
	Recap      CycleRecap
	DriverInfo DriverInfo
}
