package api

import (
	"net/http"
	"time"

	"github.com/DannyMichaels/nyc-navigation-helper/internal/api/handlers"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/config"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/store"
)

// NewRouter creates and configures the HTTP router with all routes and middleware
func NewRouter(
	cfg *config.Config,
	st *store.Store,
	plannerSvc handlers.PlannerProvider,
	realtimeSvc handlers.RealtimeProvider,
	alertSvc handlers.AlertProvider,
) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	rootHandler := handlers.NewRootHandler()
	venueHandler := handlers.NewVenueHandler(st, plannerSvc)
	optionsHandler := handlers.NewOptionsHandler(st)
	plannerHandler := handlers.NewPlannerHandler(st, plannerSvc)
	transitHandler := handlers.NewTransitHandler(realtimeSvc, alertSvc)

	// Core routes
	mux.HandleFunc("GET /{$}", rootHandler.Index)
	mux.HandleFunc("GET /api", rootHandler.Index)
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Venue routes
	mux.HandleFunc("GET /venues", venueHandler.List)
	mux.HandleFunc("POST /venues", venueHandler.Create)
	mux.HandleFunc("PUT /venues/center", venueHandler.SetCenter)
	mux.HandleFunc("PATCH /venues/{id}", venueHandler.Update)
	mux.HandleFunc("DELETE /venues/{id}", venueHandler.Delete)

	// Transit option routes
	mux.HandleFunc("GET /options", optionsHandler.List)
	mux.HandleFunc("POST /options", optionsHandler.Create)
	mux.HandleFunc("DELETE /options/{id}", optionsHandler.Delete)

	// Model-backed planning routes
	mux.HandleFunc("POST /plan", plannerHandler.Plan)
	mux.HandleFunc("POST /suggest", plannerHandler.Suggest)
	mux.HandleFunc("POST /geocode", plannerHandler.Geocode)
	mux.HandleFunc("POST /compass", plannerHandler.Compass)
	mux.HandleFunc("POST /assist", plannerHandler.Assist)

	// Realtime transit routes
	mux.HandleFunc("GET /transit/realtime/{line}", transitHandler.GetRealtimeStatus)
	mux.HandleFunc("GET /transit/alerts/{line}", transitHandler.GetAlerts)

	mux.HandleFunc("/", rootHandler.NotFound)

	// The request timeout sits above the upstream client timeout so slow
	// model calls fail with their own error, not a blank handler timeout.
	handler := Chain(mux,
		Recovery,
		Logging,
		CORS,
		Timeout(cfg.HTTPTimeout+15*time.Second),
	)

	return handler
}
