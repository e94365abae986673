package api

import (
	"net/http"
	"trip-planner-service/internal/api/handlers"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(planner *services.TripPlanner, repo ports.TripRepository) http.Handler {
	mux := http.NewServeMux()

	tripHandler := &handlers.TripHandler{
		Planner: planner,
		Repo:    repo,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/trips/plan", tripHandler.Plan)
	mux.HandleFunc("/trips", tripHandler.History)

	return requestIDMiddleware(loggingMiddleware(mux))
}
