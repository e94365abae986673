package domain

import "time"

// A completed trip-planning request, persisted for history and analytics.
// Append-only; never read back by the planning engines themselves.
type Trip struct {
	TripID           int
	CurrentLocation  string
	PickupLocation   string
	DropoffLocation  string
	CurrentCycleUsed float64
	DistanceMiles    float64
	DurationHours    float64
	CreatedAt        time.Time
}
