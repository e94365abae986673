package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Port: a boundary for persisting and listing completed trips.
type TripRepository interface {
	// Append a completed trip to the history. Sets trip.TripID and CreatedAt.
	Save(ctx context.Context, trip *domain.Trip) error
	// Return up to limit trips, newest first.
	List(ctx context.Context, limit int) ([]*domain.Trip, error)
}
