package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"trip-planner-service/internal/domain"
)

// Postgres-backed implementation of the TripRepository port.
type SQLTripRepository struct{ DB *sql.DB }

func NewSQLTripRepository(db *sql.DB) *SQLTripRepository {
	return &SQLTripRepository{DB: db}
}

// Initialize the Postgres schema (used by cmd/dbtool).
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
		CREATE TABLE IF NOT EXISTS trips (
			trip_id SERIAL PRIMARY KEY,
			current_location TEXT NOT NULL,
			pickup_location TEXT NOT NULL,
			dropoff_location TEXT NOT NULL,
			current_cycle_used DOUBLE PRECISION NOT NULL,
			distance_miles DOUBLE PRECISION NOT NULL,
			duration_hours DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_trips_created_at
		ON trips(created_at);
		`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Append a completed trip to the history.
func (s *SQLTripRepository) Save(ctx context.Context, trip *domain.Trip) error {
	if s.DB == nil {
		return errors.New("sql trip repository: DB is nil")
	}
	if trip == nil {
		return errors.New("sql trip repository: trip is nil")
	}

	query := `
	INSERT INTO trips (
		current_location,
		pickup_location,
		dropoff_location,
		current_cycle_used,
		distance_miles,
		duration_hours
	)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING trip_id, created_at;
	`

	err := s.DB.QueryRowContext(ctx, query,
		trip.CurrentLocation,
		trip.PickupLocation,
		trip.DropoffLocation,
		trip.CurrentCycleUsed,
		trip.DistanceMiles,
		trip.DurationHours,
	).Scan(&trip.TripID, &trip.CreatedAt)
	if err != nil {
		return fmt.Errorf("save trip: insert trips row: %w", err)
	}

	return nil
}

// Return up to limit trips, newest first.
func (s *SQLTripRepository) List(ctx context.Context, limit int) ([]*domain.Trip, error) {
	if s.DB == nil {
		return nil, errors.New("sql trip repository: DB is nil")
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
	LIMIT $1;
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
