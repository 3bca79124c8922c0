package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Nazarious-ucu/weather-dashboard/internal/app"
	"github.com/Nazarious-ucu/weather-dashboard/internal/config"
	"github.com/Nazarious-ucu/weather-dashboard/internal/services/metrics"
	"github.com/Nazarious-ucu/weather-dashboard/pkg/logger"
)

const serviceName = "weather_dashboard"

// @title Weather Dashboard API
// @version 1.0
// @description Current conditions and forecasts for coordinates, with per-client rate limiting and response caching.
// @BasePath /api
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Panicf("failed to load configuration: %v", err)
	}

	l, err := logger.NewLogger(cfg.LogsPath, serviceName)
	if err != nil {
		log.Panicf("failed to initialize logger: %v", err)
	}

	application := app.New(*cfg, l, metrics.NewMetrics(serviceName))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Start(ctx); err != nil {
		l.Fatal().Err(err).Msg("application failed to run")
	}
}
