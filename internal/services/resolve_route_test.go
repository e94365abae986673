package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

type fakeGeocoder struct {
	coords map[string]domain.Coordinate
	calls  int
}

func (f *fakeGeocoder) Resolve(ctx context.Context, query string) (domain.Coordinate, error) {
	f.calls++
	c, ok := f.coords[query]
	if !ok {
		return domain.Coordinate{}, &ports.GeocodeError{Query: query}
	}
	return c, nil
}

type fakeRouter struct {
	result domain.RouteResult
	err    error
}

func (f *fakeRouter) Route(ctx context.Context, start, end domain.Coordinate) (domain.RouteResult, error) {
	if f.err != nil {
		return domain.RouteResult{}, f.err
	}
	return f.result, nil
}

func TestResolveRouteAssemblesMapInfo(t *testing.T) {
	path := []domain.Coordinate{
		{Lat: 23.81, Lon: 90.41},
		{Lat: 23.50, Lon: 90.80},
		{Lat: 23.00, Lon: 91.20},
		{Lat: 22.60, Lon: 91.60},
		{Lat: 22.36, Lon: 91.78},
	}

	geocoder := &fakeGeocoder{coords: map[string]domain.Coordinate{
		"Dhaka":      path[0],
		"Chittagong": path[4],
	}}
	router := &fakeRouter{result: domain.RouteResult{
		DistanceMiles: 245300 / 1609.34, // provider reported 245.3km
		DurationHours: 4.1,
		Path:          path,
	}}

	resolver := &RouteResolver{Geocoder: geocoder, Router: router}

	res, err := resolver.ResolveRoute(context.Background(), "Dhaka", "Chittagong")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantMiles := math.Round(245300/1609.34*100) / 100
	if res.DistanceMiles != wantMiles {
		t.Errorf("distance = %v, want %v", res.DistanceMiles, wantMiles)
	}
	if res.DurationHours != 4.1 {
		t.Errorf("duration = %v, want 4.1", res.DurationHours)
	}

	if len(res.MapInfo.Stops) != 3 {
		t.Fatalf("stops = %d, want 3", len(res.MapInfo.Stops))
	}
	if res.MapInfo.Stops[0].Label != "Pickup: Dhaka" {
		t.Errorf("stop 0 label = %q", res.MapInfo.Stops[0].Label)
	}
	if res.MapInfo.Stops[1].Label != "Midpoint" {
		t.Errorf("stop 1 label = %q", res.MapInfo.Stops[1].Label)
	}
	if res.MapInfo.Stops[2].Label != "Dropoff: Chittagong" {
		t.Errorf("stop 2 label = %q", res.MapInfo.Stops[2].Label)
	}

	if res.MapInfo.Stops[1].Position != path[2] {
		t.Errorf("midpoint = %+v, want %+v", res.MapInfo.Stops[1].Position, path[2])
	}
	if res.MapInfo.Center != path[2] {
		t.Errorf("center = %+v, want %+v", res.MapInfo.Center, path[2])
	}
	if geocoder.calls != 2 {
		t.Errorf("geocoder calls = %d, want 2", geocoder.calls)
	}
}

func TestResolveRouteValidatesInput(t *testing.T) {
	resolver := &RouteResolver{
		Geocoder: &fakeGeocoder{},
		Router:   &fakeRouter{},
	}

	for _, tc := range []struct{ pickup, dropoff string }{
		{"", "Chittagong"},
		{"   ", "Chittagong"},
		{"Dhaka", ""},
	} {
		_, err := resolver.ResolveRoute(context.Background(), tc.pickup, tc.dropoff)
		var ve *ports.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("pickup=%q dropoff=%q: err = %v, want ValidationError", tc.pickup, tc.dropoff, err)
		}
	}
}

func TestResolveRouteWrapsFailures(t *testing.T) {
	// Geocode misses surface as a ResolutionError wrapping GeocodeError.
	resolver := &RouteResolver{
		Geocoder: &fakeGeocoder{coords: map[string]domain.Coordinate{}},
		Router:   &fakeRouter{},
	}

	_, err := resolver.ResolveRoute(context.Background(), "Nowhere", "Dhaka")
	var re *ports.ResolutionError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want ResolutionError", err)
	}
	var ge *ports.GeocodeError
	if !errors.As(err, &ge) {
		t.Fatalf("err = %v, want wrapped GeocodeError", err)
	}
	if ge.Query != "Nowhere" {
		t.Errorf("geocode error query = %q, want Nowhere", ge.Query)
	}

	// Router failures wrap likewise.
	resolver = &RouteResolver{
		Geocoder: &fakeGeocoder{coords: map[string]domain.Coordinate{
			"A": {Lat: 1, Lon: 1},
			"B": {Lat: 2, Lon: 2},
		}},
		Router: &fakeRouter{err: &ports.RouteError{Reason: "provider returned no routes"}},
	}

	_, err = resolver.ResolveRoute(context.Background(), "A", "B")
	var routeErr *ports.RouteError
	if !errors.As(err, &routeErr) {
		t.Fatalf("err = %v, want wrapped RouteError", err)
	}
}

type memoryTripRepo struct {
	trips []*domain.Trip
}

func (m *memoryTripRepo) Save(ctx context.Context, trip *domain.Trip) error {
	trip.TripID = len(m.trips) + 1
	m.trips = append(m.trips, trip)
	return nil
}

func (m *memoryTripRepo) List(ctx context.Context, limit int) ([]*domain.Trip, error) {
	return m.trips, nil
}

func newTestPlanner(repo ports.TripRepository, router ports.RouteProvider) *TripPlanner {
	return &TripPlanner{
		Resolver: &RouteResolver{
			Geocoder: &fakeGeocoder{coords: map[string]domain.Coordinate{
				"Dhaka":      {Lat: 23.81, Lon: 90.41},
				"Chittagong": {Lat: 22.36, Lon: 91.78},
			}},
			Router: router,
		},
		Repo:   repo,
		Limits: config.DefaultHOSLimits(),
	}
}

func TestPlanTripPersistsAfterSuccess(t *testing.T) {
	repo := &memoryTripRepo{}
	router := &fakeRouter{result: domain.RouteResult{
		DistanceMiles: 152.42,
		DurationHours: 4.1,
		Path: []domain.Coordinate{
			{Lat: 23.81, Lon: 90.41},
			{Lat: 23.00, Lon: 91.20},
			{Lat: 22.36, Lon: 91.78},
		},
	}}

	planner := newTestPlanner(repo, router)

	plan, err := planner.PlanTrip(context.Background(), PlanTripRequest{
		CurrentLocation:  "Dhaka",
		PickupLocation:   "Dhaka",
		DropoffLocation:  "Chittagong",
		CurrentCycleUsed: 30,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.LogSheet.Grid) == 0 {
		t.Error("log sheet grid is empty")
	}
	if len(repo.trips) != 1 {
		t.Fatalf("persisted trips = %d, want 1", len(repo.trips))
	}

	saved := repo.trips[0]
	if saved.PickupLocation != "Dhaka" || saved.DropoffLocation != "Chittagong" {
		t.Errorf("saved locations = %q -> %q", saved.PickupLocation, saved.DropoffLocation)
	}
	if saved.DistanceMiles != 152.42 {
		t.Errorf("saved distance = %v, want 152.42", saved.DistanceMiles)
	}
	if saved.CurrentCycleUsed != 30 {
		t.Errorf("saved cycle used = %v, want 30", saved.CurrentCycleUsed)
	}
}

func TestPlanTripDoesNotPersistOnFailure(t *testing.T) {
	repo := &memoryTripRepo{}
	router := &fakeRouter{err: fmt.Errorf("routing down")}

	planner := newTestPlanner(repo, router)

	_, err := planner.PlanTrip(context.Background(), PlanTripRequest{
		CurrentLocation:  "Dhaka",
		PickupLocation:   "Dhaka",
		DropoffLocation:  "Chittagong",
		CurrentCycleUsed: 30,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(repo.trips) != 0 {
		t.Errorf("persisted trips = %d, want 0", len(repo.trips))
	}
}

func TestPlanTripRejectsNegativeCycle(t *testing.T) {
	repo := &memoryTripRepo{}
	planner := newTestPlanner(repo, &fakeRouter{})

	_, err := planner.PlanTrip(context.Background(), PlanTripRequest{
		CurrentLocation:  "Dhaka",
		PickupLocation:   "Dhaka",
		DropoffLocation:  "Chittagong",
		CurrentCycleUsed: -1,
	})

	var ve *ports.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if len(repo.trips) != 0 {
		t.Errorf("persisted trips = %d, want 0", len(repo.trips))
	}
}
