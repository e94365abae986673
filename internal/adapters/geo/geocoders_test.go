package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"trip-planner-service/internal/domain"
)

func TestNominatimParsesStringCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != nominatimUserAgent {
			t.Errorf("User-Agent = %q, want %q", r.Header.Get("User-Agent"), nominatimUserAgent)
		}
		q := r.URL.Query()
		if q.Get("format") != "json" || q.Get("limit") != "1" {
			t.Errorf("unexpected query params: %v", q)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat": "23.8103", "lon": "90.4125"}]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(NewClient(time.Second, SingleAttemptPolicy()), nil)
	g.baseURL = srv.URL

	coord, err := g.Resolve(context.Background(), "Dhaka")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := domain.Coordinate{Lat: 23.8103, Lon: 90.4125}
	if coord != want {
		t.Errorf("coord = %+v, want %+v", coord, want)
	}
}

func TestNominatimEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(NewClient(time.Second, SingleAttemptPolicy()), nil)
	g.baseURL = srv.URL

	if _, err := g.Resolve(context.Background(), "Nowhere"); err == nil {
		t.Fatal("expected error for empty result set")
	}
}

func TestPhotonParsesGeoJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// GeoJSON order is [lon, lat].
		w.Write([]byte(`{"features": [{"geometry": {"coordinates": [90.4125, 23.8103]}}]}`))
	}))
	defer srv.Close()

	g := NewPhotonGeocoder(NewClient(time.Second, SingleAttemptPolicy()))
	g.baseURL = srv.URL

	coord, err := g.Resolve(context.Background(), "Dhaka")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := domain.Coordinate{Lat: 23.8103, Lon: 90.4125}
	if coord != want {
		t.Errorf("coord = %+v, want %+v", coord, want)
	}
}

func TestProviderLimiterEnforcesInterval(t *testing.T) {
	const interval = 50 * time.Millisecond
	limiter := NewProviderLimiter(interval)

	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	start := time.Now()
	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("second wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < interval-5*time.Millisecond {
		t.Errorf("second call waited %v, want >= %v", elapsed, interval)
	}
}

func TestProviderLimiterHonorsCancellation(t *testing.T) {
	limiter := NewProviderLimiter(time.Minute)

	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx); err == nil {
		t.Fatal("expected context error while waiting out the interval")
	}
}
