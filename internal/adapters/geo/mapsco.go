package geo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"trip-planner-service/internal/domain"
)

// MapsCoGeocoder resolves free text against geocode.maps.co, the second
// keyless alternate in the chain. Attempted once per query.
type MapsCoGeocoder struct {
	client  *Client
	baseURL string
}

func NewMapsCoGeocoder(client *Client) *MapsCoGeocoder {
	return &MapsCoGeocoder{
		client:  client,
		baseURL: "https://geocode.maps.co",
	}
}

// Same wire shape as Nominatim: string lat/lon per match.
func (m *MapsCoGeocoder) Resolve(ctx context.Context, query string) (domain.Coordinate, error) {
	params := url.Values{}
	params.Set("q", query)

	var results []nominatimResult
	if err := m.client.GetJSON(ctx, m.baseURL+"/search", params, nil, &results); err != nil {
		return domain.Coordinate{}, fmt.Errorf("maps.co search: %w", err)
	}

	if len(results) == 0 {
		return domain.Coordinate{}, fmt.Errorf("maps.co: no result for %q", query)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("maps.co: parse lat %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("maps.co: parse lon %q: %w", results[0].Lon, err)
	}

	return domain.Coordinate{Lat: lat, Lon: lon}, nil
}
