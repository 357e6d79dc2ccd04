// Package main is the entry point for the nyc-navigation-helper server.
package main

import (
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/DannyMichaels/nyc-navigation-helper/internal/api"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/config"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/llm"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/logger"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/planner"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/store"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/transit"
)

func main() {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger.Init(logger.Options{
		Level:      cfg.LogLevel,
		Console:    true,
		FilePath:   cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSize,
		MaxBackups: 3,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}

	st, err := store.New(store.NewFilePersister(cfg.StorePath))
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.StorePath).Msg("loading venue store")
	}

	chatClient := llm.New(cfg.OllamaURL, cfg.OllamaModel, cfg.HTTPTimeout)

	realtimeSvc := transit.NewRealtimeService(cfg.HTTPTimeout, cfg.CacheTTL)
	defer realtimeSvc.Close()

	alertSvc := transit.NewAlertService(cfg.HTTPTimeout, cfg.CacheTTL)
	defer alertSvc.Close()

	plannerSvc := planner.New(chatClient, realtimeSvc)

	router := api.NewRouter(cfg, st, plannerSvc, realtimeSvc, alertSvc)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.HTTPTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Env).
		Str("model", cfg.OllamaModel).
		Str("store", cfg.StorePath).
		Msg("nyc-navigation-helper server starting")

	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
