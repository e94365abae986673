package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"trip-planner-service/internal/domain"

	"github.com/redis/go-redis/v9"
)

const geocodeKeyPrefix = "geocode:"

// Redis-backed geocode cache. Entries expire so stale provider answers
// age out; coordinates are stored as a small JSON document.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

type cachedCoordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Fetch cached coordinates for the given place.
func (r *RedisGeocodeCache) Get(ctx context.Context, place string) (domain.Coordinate, bool, error) {
	if r.Client == nil {
		return domain.Coordinate{}, false, errors.New("geocode cache: redis client is nil")
	}

	place = strings.TrimSpace(place)
	if place == "" {
		return domain.Coordinate{}, false, nil
	}

	raw, err := r.Client.Get(ctx, geocodeKeyPrefix+place).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Coordinate{}, false, nil
	}
	if err != nil {
		return domain.Coordinate{}, false, fmt.Errorf("get geocode cache: redis get: %w", err)
	}

	var c cachedCoordinate
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return domain.Coordinate{}, false, fmt.Errorf("get geocode cache: decode place=%q: %w", place, err)
	}

	return domain.Coordinate{Lat: c.Lat, Lon: c.Lon}, true, nil
}

// Store a place -> coordinate mapping in the cache.
func (r *RedisGeocodeCache) Put(ctx context.Context, place string, coord domain.Coordinate) error {
	if r.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	place = strings.TrimSpace(place)
	if place == "" {
		return errors.New("insert geocode cache: empty place key")
	}

	raw, err := json.Marshal(cachedCoordinate{Lat: coord.Lat, Lon: coord.Lon})
	if err != nil {
		return fmt.Errorf("insert geocode cache: encode place=%q: %w", place, err)
	}

	if err := r.Client.Set(ctx, geocodeKeyPrefix+place, raw, r.TTL).Err(); err != nil {
		return fmt.Errorf("insert geocode cache place=%q: %w", place, err)
	}

	return nil
}
