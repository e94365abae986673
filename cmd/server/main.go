package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
	"trip-planner-service/internal/adapters/cache"
	"trip-planner-service/internal/adapters/geo"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/api"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// Politeness interval required by the primary geocoding provider.
const nominatimMinInterval = 1100 * time.Millisecond

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres, Redis, Nominatim, OSRM)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")

	repo, closeStore, err := openTripStore()
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	geocodeCache := openGeocodeCache()

	// Primary geocoder retries with backoff; alternates get one shot each.
	primaryClient := geo.NewClient(15*time.Second, geo.DefaultRetryPolicy())
	alternateClient := geo.NewClient(15*time.Second, geo.SingleAttemptPolicy())
	routingClient := geo.NewClient(30*time.Second, geo.DefaultRetryPolicy())

	limiter := geo.NewProviderLimiter(nominatimMinInterval)
	chain := geo.NewGeocoderChain(
		geocodeCache,
		geo.NewNominatimGeocoder(primaryClient, limiter),
		geo.NewPhotonGeocoder(alternateClient),
		geo.NewMapsCoGeocoder(alternateClient),
	)

	planner := &services.TripPlanner{
		Resolver: &services.RouteResolver{
			Geocoder: chain,
			Router:   geo.NewOSRMRouter(routingClient),
		},
		Repo:   repo,
		Limits: config.LoadHOSLimits(),
	}

	router := api.NewRouter(planner, repo)

	// Timeouts are tuned for cold-cache trip planning (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openTripStore selects Postgres when DATABASE_URL is set, otherwise a
// local SQLite file (schema initialized on startup for local runs).
func openTripStore() (ports.TripRepository, func(), error) {
	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		log.Println("Trip history store: postgres")
		return repositories.NewSQLTripRepository(pg), func() { pg.Close() }, nil
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	sqlite, err := openSQLite(dbPath)
	if err != nil {
		return nil, nil, err
	}

	if err := repositories.InitSchema(sqlite); err != nil {
		sqlite.Close()
		return nil, nil, err
	}

	log.Printf("Trip history store: sqlite path=%s", dbPath)
	return repositories.NewSqliteTripRepository(sqlite), func() { sqlite.Close() }, nil
}

// openGeocodeCache prefers Redis when REDIS_ADDR is set, else the
// SQLite-backed cache sharing the local database file. A nil cache is
// valid: the chain then always calls providers.
func openGeocodeCache() ports.GeocodeCache {
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		log.Printf("Geocode cache: redis addr=%s", addr)
		return cache.NewRedisGeocodeCache(client, 0)
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	sqlite, err := openSQLite(dbPath)
	if err != nil {
		log.Printf("Geocode cache disabled: %v", err)
		return nil
	}
	if err := repositories.InitSchema(sqlite); err != nil {
		log.Printf("Geocode cache disabled: %v", err)
		sqlite.Close()
		return nil
	}

	log.Printf("Geocode cache: sqlite path=%s", dbPath)
	return cache.NewSqliteGeocodeCache(sqlite)
}

func openSQLite(dbPath string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return conn, nil
}
