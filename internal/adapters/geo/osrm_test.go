package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

func newTestRouter(srvURL string) *OSRMRouter {
	r := NewOSRMRouter(NewClient(time.Second, SingleAttemptPolicy()))
	r.baseURL = srvURL
	return r
}

func TestOSRMRouterConvertsUnits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("overview") != "full" || q.Get("geometries") != "geojson" || q.Get("alternatives") != "false" {
			t.Errorf("unexpected query params: %v", q)
		}

		w.Header().Set("Content-Type", "application/json")
		// 1609.34m -> exactly 1 mile, 3600s -> exactly 1 hour.
		w.Write([]byte(`{
			"code": "Ok",
			"routes": [{
				"distance": 1609.34,
				"duration": 3600,
				"geometry": {"coordinates": [[90.41, 23.81], [91.78, 22.36]]}
			}]
		}`))
	}))
	defer srv.Close()

	router := newTestRouter(srv.URL)

	res, err := router.Route(context.Background(),
		domain.Coordinate{Lat: 23.81, Lon: 90.41},
		domain.Coordinate{Lat: 22.36, Lon: 91.78},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.DistanceMiles != 1.0 {
		t.Errorf("distance = %v, want 1.0", res.DistanceMiles)
	}
	if res.DurationHours != 1.0 {
		t.Errorf("duration = %v, want 1.0", res.DurationHours)
	}

	// Provider coordinates arrive [lon, lat]; the path is (lat, lon).
	want := []domain.Coordinate{
		{Lat: 23.81, Lon: 90.41},
		{Lat: 22.36, Lon: 91.78},
	}
	if len(res.Path) != len(want) {
		t.Fatalf("path length = %d, want %d", len(res.Path), len(want))
	}
	for i := range want {
		if res.Path[i] != want[i] {
			t.Errorf("path[%d] = %+v, want %+v", i, res.Path[i], want[i])
		}
	}
}

func TestOSRMRouterNoRoutes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code": "Ok", "routes": []}`))
	}))
	defer srv.Close()

	router := newTestRouter(srv.URL)

	_, err := router.Route(context.Background(), domain.Coordinate{}, domain.Coordinate{})
	var re *ports.RouteError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want RouteError", err)
	}
}

func TestOSRMRouterEmptyGeometry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"code": "Ok",
			"routes": [{"distance": 100, "duration": 60, "geometry": {"coordinates": []}}]
		}`))
	}))
	defer srv.Close()

	router := newTestRouter(srv.URL)

	_, err := router.Route(context.Background(), domain.Coordinate{}, domain.Coordinate{})
	var re *ports.RouteError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want RouteError", err)
	}
}

func TestOSRMRouterErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	}))
	defer srv.Close()

	router := newTestRouter(srv.URL)

	_, err := router.Route(context.Background(), domain.Coordinate{}, domain.Coordinate{})
	var re *ports.RouteError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want RouteError", err)
	}
}
