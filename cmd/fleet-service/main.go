package main

import (
	"fmt"
	"os"

	"fleet-tracking-service/internal/auth"
	"fleet-tracking-service/internal/config"
	httphandler "fleet-tracking-service/internal/http"
	"fleet-tracking-service/internal/http/middleware"
	"fleet-tracking-service/internal/logger"
	"fleet-tracking-service/internal/repository"
	"fleet-tracking-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	tripRepo := repository.NewTripRepository(appLogger)
	if err := tripRepo.Load(cfg.Trips.DataDir); err != nil {
		appLogger.Fatal().Err(err).Str("dir", cfg.Trips.DataDir).Msg("failed to load trip data")
	}

	metricsService := service.NewMetricsService(tripRepo)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(metricsService, appLogger)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.CORS.AllowOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting fleet tracking service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
