package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Contract for retrieving a driving route between two coordinate pairs.
type RouteProvider interface {
	// Return distance, duration and the road polyline from start to end.
	Route(ctx context.Context, start, end domain.Coordinate) (domain.RouteResult, error)
}
