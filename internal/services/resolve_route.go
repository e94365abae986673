package services

import (
	"context"
	"fmt"
	"strings"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// Result of resolving two free-text locations to a drivable route.
type RouteResolution struct {
	DistanceMiles float64
	DurationHours float64
	MapInfo       domain.MapInfo
}

// RouteResolver turns pickup/dropoff text into an assembled route by
// composing the geocoder chain and the routing provider.
type RouteResolver struct {
	Geocoder ports.Geocoder
	Router   ports.RouteProvider
}

// ResolveRoute geocodes both endpoints sequentially, routes between
// them, and assembles the map payload. Every underlying failure is
// wrapped in a single ResolutionError at this boundary; only malformed
// input surfaces as a bare ValidationError.
func (r *RouteResolver) ResolveRoute(ctx context.Context, pickup, dropoff string) (_ RouteResolution, err error) {
	defer obs.Time(ctx, "route.Resolve")(&err)

	pickup = strings.TrimSpace(pickup)
	dropoff = strings.TrimSpace(dropoff)
	if pickup == "" {
		return RouteResolution{}, &ports.ValidationError{Field: "pickupLocation", Reason: "must be non-empty"}
	}
	if dropoff == "" {
		return RouteResolution{}, &ports.ValidationError{Field: "dropoffLocation", Reason: "must be non-empty"}
	}

	start, err := r.Geocoder.Resolve(ctx, pickup)
	if err != nil {
		return RouteResolution{}, &ports.ResolutionError{Stage: "geocode pickup", Cause: err}
	}

	end, err := r.Geocoder.Resolve(ctx, dropoff)
	if err != nil {
		return RouteResolution{}, &ports.ResolutionError{Stage: "geocode dropoff", Cause: err}
	}

	route, err := r.Router.Route(ctx, start, end)
	if err != nil {
		return RouteResolution{}, &ports.ResolutionError{Stage: "routing", Cause: err}
	}

	mapInfo, err := assembleMapInfo(route.Path, pickup, dropoff)
	if err != nil {
		return RouteResolution{}, &ports.ResolutionError{Stage: "assembly", Cause: err}
	}

	return RouteResolution{
		DistanceMiles: round2(route.DistanceMiles),
		DurationHours: round2(route.DurationHours),
		MapInfo:       mapInfo,
	}, nil
}

// assembleMapInfo packages the polyline with its three labeled stops.
// Deterministic: the midpoint is the element at len(path)/2.
func assembleMapInfo(path []domain.Coordinate, pickupLabel, dropoffLabel string) (domain.MapInfo, error) {
	if len(path) == 0 {
		// Unreachable when the router honors its contract.
		return domain.MapInfo{}, &ports.AssemblyError{Reason: "route path is empty"}
	}

	center := path[len(path)/2]

	stops := []domain.Stop{
		{Position: path[0], Label: fmt.Sprintf("Pickup: %s", pickupLabel)},
		{Position: center, Label: "Midpoint"},
		{Position: path[len(path)-1], Label: fmt.Sprintf("Dropoff: %s", dropoffLabel)},
	}

	return domain.MapInfo{Route: path, Stops: stops, Center: center}, nil
}
