package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"trip-planner-service/internal/domain"
)

// SQLite-backed cache mapping place strings to geographic coordinates.
// Place keys are expected to be consistent (e.g., normalized) by the
// caller.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Fetch cached coordinates for the given place.
func (s *SqliteGeocodeCache) Get(ctx context.Context, place string) (domain.Coordinate, bool, error) {
	if s.DB == nil {
		return domain.Coordinate{}, false, errors.New("geocode cache: db is nil")
	}

	place = strings.TrimSpace(place)
	if place == "" {
		return domain.Coordinate{}, false, nil
	}

	q := `
	SELECT lat, lon
	FROM geocode_cache
	WHERE place = ?;
	`

	var lat, lon float64
	err := s.DB.QueryRowContext(ctx, q, place).Scan(&lat, &lon)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinate{}, false, nil
	}
	if err != nil {
		return domain.Coordinate{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return domain.Coordinate{Lat: lat, Lon: lon}, true, nil
}

// Store a place -> coordinate mapping in the cache.
func (s *SqliteGeocodeCache) Put(ctx context.Context, place string, coord domain.Coordinate) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	place = strings.TrimSpace(place)
	if place == "" {
		return errors.New("insert geocode cache: empty place key")
	}

	q := `
	INSERT OR REPLACE INTO geocode_cache (place, lat, lon)
	VALUES (?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, place, coord.Lat, coord.Lon); err != nil {
		return fmt.Errorf("insert geocode cache place=%q: %w", place, err)
	}

	return nil
}
