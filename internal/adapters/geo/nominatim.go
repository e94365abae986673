package geo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"trip-planner-service/internal/domain"
)

// Nominatim requires an identifying User-Agent on every request.
const nominatimUserAgent = "trip-planner-service/1.0 (ops@trip-planner.example)"

// NominatimGeocoder resolves free text against the OpenStreetMap
// Nominatim search endpoint. It is the primary provider in the chain
// and calls through a politeness limiter.
type NominatimGeocoder struct {
	client  *Client
	baseURL string
	limiter *ProviderLimiter
}

func NewNominatimGeocoder(client *Client, limiter *ProviderLimiter) *NominatimGeocoder {
	return &NominatimGeocoder{
		client:  client,
		baseURL: "https://nominatim.openstreetmap.org",
		limiter: limiter,
	}
}

// Nominatim serialises coordinates as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (n *NominatimGeocoder) Resolve(ctx context.Context, query string) (domain.Coordinate, error) {
	if n.limiter != nil {
		if err := n.limiter.Wait(ctx); err != nil {
			return domain.Coordinate{}, err
		}
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	headers := http.Header{}
	headers.Set("User-Agent", nominatimUserAgent)

	var results []nominatimResult
	if err := n.client.GetJSON(ctx, n.baseURL+"/search", params, headers, &results); err != nil {
		return domain.Coordinate{}, fmt.Errorf("nominatim search: %w", err)
	}

	if len(results) == 0 {
		return domain.Coordinate{}, fmt.Errorf("nominatim: no result for %q", query)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("nominatim: parse lat %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("nominatim: parse lon %q: %w", results[0].Lon, err)
	}

	return domain.Coordinate{Lat: lat, Lon: lon}, nil
}
