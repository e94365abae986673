package dto

import "time"

// Field names follow the frontend contract (camelCase throughout).
type PlanTripRequest struct {
	CurrentLocation  string  `json:"currentLocation"`
	PickupLocation   string  `json:"pickupLocation"`
	DropoffLocation  string  `json:"dropoffLocation"`
	CurrentCycleUsed float64 `json:"currentCycleUsed"`
}

type DutySegmentResponse struct {
	Status string  `json:"status"`
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
}

type DailyTotalsResponse struct {
	OffDuty float64 `json:"offDuty"`
	Sleeper float64 `json:"sleeper"`
	Driving float64 `json:"driving"`
	OnDuty  float64 `json:"onDuty"`
}

type CycleRecapResponse struct {
	TotalHoursLast7Days         float64 `json:"totalHoursLast7Days"`
	TotalHoursAvailableTomorrow float64 `json:"totalHoursAvailableTomorrow"`
}

type DriverInfoResponse struct {
	TotalMilesDrivingToday float64 `json:"totalMilesDrivingToday"`
	TotalMileageToday      float64 `json:"totalMileageToday"`
}

type LogSheetResponse struct {
	Grid       []DutySegmentResponse `json:"grid"`
	Totals     DailyTotalsResponse   `json:"totals"`
	Recap      CycleRecapResponse    `json:"recap"`
	DriverInfo DriverInfoResponse    `json:"driverInfo"`
}

type StopResponse struct {
	// [lat, lon]
	Pos   []float64 `json:"pos"`
	Label string    `json:"label"`
}

type MapInfoResponse struct {
	// Ordered [lat, lon] pairs of the road polyline.
	Route     [][]float64    `json:"route"`
	Stops     []StopResponse `json:"stops"`
	MapCenter []float64      `json:"mapCenter"`
}

type PlanTripResponse struct {
	LogSheet LogSheetResponse `json:"logSheet"`
	MapInfo  MapInfoResponse  `json:"mapInfo"`
}

type TripResponse struct {
	TripID           int       `json:"tripId"`
	CurrentLocation  string    `json:"currentLocation"`
	PickupLocation   string    `json:"pickupLocation"`
	DropoffLocation  string    `json:"dropoffLocation"`
	CurrentCycleUsed float64   `json:"currentCycleUsed"`
	DistanceMiles    float64   `json:"distanceMiles"`
	DurationHours    float64   `json:"durationHours"`
	CreatedAt        time.Time `json:"createdAt"`
}

type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
}
