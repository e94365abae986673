package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Contract for resolving a free-text place description to coordinates.
type Geocoder interface {
	// Return the best-match coordinates for the query.
	Resolve(ctx context.Context, query string) (domain.Coordinate, error)
}

// Optional persistent cache consulted before any provider call.
type GeocodeCache interface {
	// Fetch cached coordinates; ok=false on a miss.
	Get(ctx context.Context, place string) (coord domain.Coordinate, ok bool, err error)
	// Store a place -> coordinate mapping.
	Put(ctx context.Context, place string, coord domain.Coordinate) error
}
