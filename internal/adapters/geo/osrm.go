package geo

import (
	"context"
	"fmt"
	"net/url"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

const (
	metersPerMile  = 1609.34
	secondsPerHour = 3600.0
)

// OSRMRouter implements the RouteProvider port against an OSRM HTTP
// server (the public project-osrm.org router by default).
type OSRMRouter struct {
	client  *Client
	baseURL string
}

func NewOSRMRouter(client *Client) *OSRMRouter {
	return &OSRMRouter{
		client:  client,
		baseURL: "https://router.project-osrm.org",
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
		Geometry struct {
			// GeoJSON line: [lon, lat] pairs.
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// Route requests the single best driving route with full geometry and
// converts provider units (meters, seconds, lon/lat ordering) into
// domain units (miles, hours, lat/lon ordering).
func (o *OSRMRouter) Route(ctx context.Context, start, end domain.Coordinate) (domain.RouteResult, error) {
	// OSRM addresses coordinates as {lon},{lat} pairs in the path.
	endpoint := fmt.Sprintf(
		"%s/route/v1/driving/%f,%f;%f,%f",
		o.baseURL, start.Lon, start.Lat, end.Lon, end.Lat,
	)

	params := url.Values{}
	params.Set("overview", "full")
	params.Set("geometries", "geojson")
	params.Set("alternatives", "false")

	var decoded osrmResponse
	if err := o.client.GetJSON(ctx, endpoint, params, nil, &decoded); err != nil {
		return domain.RouteResult{}, &ports.RouteError{Reason: "provider request failed", Cause: err}
	}

	if decoded.Code != "" && decoded.Code != "Ok" {
		return domain.RouteResult{}, &ports.RouteError{
			Reason: fmt.Sprintf("provider returned code %q", decoded.Code),
		}
	}

	if len(decoded.Routes) == 0 {
		return domain.RouteResult{}, &ports.RouteError{Reason: "provider returned no routes"}
	}

	route := decoded.Routes[0]
	if len(route.Geometry.Coordinates) == 0 {
		return domain.RouteResult{}, &ports.RouteError{Reason: "route geometry is empty"}
	}

	path := make([]domain.Coordinate, 0, len(route.Geometry.Coordinates))
	for i, c := range route.Geometry.Coordinates {
		if len(c) != 2 {
			return domain.RouteResult{}, &ports.RouteError{
				Reason: fmt.Sprintf("invalid geometry point at index %d", i),
			}
		}
		path = append(path, domain.Coordinate{Lat: c[1], Lon: c[0]})
	}

	return domain.RouteResult{
		DistanceMiles: route.Distance / metersPerMile,
		DurationHours: route.Duration / secondsPerHour,
		Path:          path,
	}, nil
}
