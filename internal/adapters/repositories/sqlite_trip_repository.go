package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"trip-planner-service/internal/domain"
)

// SQLite-backed implementation of the TripRepository port.
type SqliteTripRepository struct{ DB *sql.DB }

func NewSqliteTripRepository(db *sql.DB) *SqliteTripRepository {
	return &SqliteTripRepository{DB: db}
}

// Append a completed trip to the history.
func (s *SqliteTripRepository) Save(ctx context.Context, trip *domain.Trip) error {
	if s.DB == nil {
		return errors.New("sqlite trip repository: DB is nil")
	}
	if trip == nil {
		return errors.New("sqlite trip repository: trip is nil")
	}

	trip.CreatedAt = time.Now().UTC()

	query := `
	INSERT INTO trips (
		current_location,
		pickup_location,
		dropoff_location,
		current_cycle_used,
		distance_miles,
		duration_hours,
		created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`

	res, err := s.DB.ExecContext(ctx, query,
		trip.CurrentLocation,
		trip.PickupLocation,
		trip.DropoffLocation,
		trip.CurrentCycleUsed,
		trip.DistanceMiles,
		trip.DurationHours,
		trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save trip: insert trips row: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("save trip: last insert id: %w", err)
	}
	trip.TripID = int(id)

	return nil
}

// Return up to limit trips, newest first.
func (s *SqliteTripRepository) List(ctx context.Context, limit int) ([]*domain.Trip, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip repository: DB is nil")
	}
	if limit <= 0 {
		return []*domain.Trip{}, nil
	}

	query := `
	SELECT
		trip_id,
		current_location,
		pickup_location,
		dropoff_location,
		current_cycle_used,
		distance_miles,
		duration_hours,
		created_at
	FROM trips
	ORDER BY trip_id DESC
	LIMIT ?;
	`

	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]*domain.Trip, 0, limit)
	for rows.Next() {
		var t domain.Trip
		err := rows.Scan(
			&t.TripID,
			&t.CurrentLocation,
			&t.PickupLocation,
			&t.DropoffLocation,
			&t.CurrentCycleUsed,
			&t.DistanceMiles,
			&t.DurationHours,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list trips: scan row: %w", err)
		}
		trips = append(trips, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	return trips, nil
}
