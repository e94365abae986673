package services

import (
	"context"
	"fmt"
	"strings"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

type PlanTripRequest struct {
	CurrentLocation  string
	PickupLocation   string
	DropoffLocation  string
	CurrentCycleUsed float64
}

// TripPlan combines the two engine outputs for one request.
type TripPlan struct {
	LogSheet domain.LogSheet
	MapInfo  domain.MapInfo
}

// TripPlanner sequences route resolution, HOS log generation, and trip
// persistence. Persistence happens only after both engines succeed; a
// failed request leaves no trip record behind.
type TripPlanner struct {
	Resolver *RouteResolver
	Repo     ports.TripRepository
	Limits   config.HOSLimits
}

func (p *TripPlanner) PlanTrip(ctx context.Context, req PlanTripRequest) (_ *TripPlan, err error) {
	defer obs.Time(ctx, "trip.Plan")(&err)

	if strings.TrimSpace(req.CurrentLocation) == "" {
		return nil, &ports.ValidationError{Field: "currentLocation", Reason: "must be non-empty"}
	}
	// Negative cycle hours are rejected here; the HOS engine itself is
	// pure arithmetic and assumes validated inputs.
	if req.CurrentCycleUsed < 0 {
		return nil, &ports.ValidationError{Field: "currentCycleUsed", Reason: "must be >= 0"}
	}

	resolution, err := p.Resolver.ResolveRoute(ctx, req.PickupLocation, req.DropoffLocation)
	if err != nil {
		return nil, err
	}

	logSheet := BuildDailyLog(resolution.DistanceMiles, req.CurrentCycleUsed, p.Limits)

	trip := &domain.Trip{
		CurrentLocation:  strings.TrimSpace(req.CurrentLocation),
		PickupLocation:   strings.TrimSpace(req.PickupLocation),
		DropoffLocation:  strings.TrimSpace(req.DropoffLocation),
		CurrentCycleUsed: req.CurrentCycleUsed,
		DistanceMiles:    resolution.DistanceMiles,
		DurationHours:    resolution.DurationHours,
	}
	if err := p.Repo.Save(ctx, trip); err != nil {
		return nil, fmt.Errorf("plan trip: save trip history: %w", err)
	}

	return &TripPlan{LogSheet: logSheet, MapInfo: resolution.MapInfo}, nil
}
