package geo

import (
	"context"
	"fmt"
	"net/url"
	"trip-planner-service/internal/domain"
)

// PhotonGeocoder resolves free text against the Komoot Photon API, a
// keyless alternate when Nominatim is unavailable. Attempted once per
// query (no politeness delay required).
type PhotonGeocoder struct {
	client  *Client
	baseURL string
}

func NewPhotonGeocoder(client *Client) *PhotonGeocoder {
	return &PhotonGeocoder{
		client:  client,
		baseURL: "https://photon.komoot.io",
	}
}

type photonResponse struct {
	Features []struct {
		Geometry struct {
			// GeoJSON point: [lon, lat].
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

func (p *PhotonGeocoder) Resolve(ctx context.Context, query string) (domain.Coordinate, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", "1")

	var decoded photonResponse
	if err := p.client.GetJSON(ctx, p.baseURL+"/api", params, nil, &decoded); err != nil {
		return domain.Coordinate{}, fmt.Errorf("photon search: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinate{}, fmt.Errorf("photon: no result for %q", query)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinate{}, fmt.Errorf("photon: invalid coordinate format for %q", query)
	}

	return domain.Coordinate{Lat: coords[1], Lon: coords[0]}, nil
}
