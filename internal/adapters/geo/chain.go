package geo

import (
	"context"
	"log"
	"strings"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// GeocoderChain implements the Geocoder port over an ordered list of
// providers. It consults an optional persistent cache first, then tries
// each provider in priority order and returns the first success.
//
// When every provider fails or returns no match the chain fails loudly
// with a GeocodeError; it never substitutes a fabricated coordinate.
type GeocoderChain struct {
	providers []ports.Geocoder
	cache     ports.GeocodeCache
}

func NewGeocoderChain(cache ports.GeocodeCache, providers ...ports.Geocoder) *GeocoderChain {
	return &GeocoderChain{providers: providers, cache: cache}
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (g *GeocoderChain) Resolve(ctx context.Context, query string) (domain.Coordinate, error) {
	norm := normalize(query)
	if norm == "" {
		return domain.Coordinate{}, &ports.ValidationError{Field: "query", Reason: "must be non-empty"}
	}

	// Cache lookups are best effort: a failing cache degrades to
	// provider calls rather than failing the request.
	if g.cache != nil {
		coord, ok, err := g.cache.Get(ctx, norm)
		if err != nil {
			log.Printf("geocode cache read failed place=%q err=%v", norm, err)
		} else if ok {
			return coord, nil
		}
	}

	var lastErr error
	for _, provider := range g.providers {
		if err := ctx.Err(); err != nil {
			return domain.Coordinate{}, err
		}

		coord, err := provider.Resolve(ctx, norm)
		if err != nil {
			log.Printf("geocode provider %T failed query=%q err=%v", provider, norm, err)
			lastErr = err
			continue
		}

		if g.cache != nil {
			if err := g.cache.Put(ctx, norm, coord); err != nil {
				log.Printf("geocode cache write failed place=%q err=%v", norm, err)
			}
		}

		return coord, nil
	}

	return domain.Coordinate{}, &ports.GeocodeError{Query: norm, Last: lastErr}
}
