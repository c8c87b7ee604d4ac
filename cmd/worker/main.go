// Package main provides the entrypoint for the AgriVision background worker.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/agrivision/agrivision/internal/alert"
	"github.com/agrivision/agrivision/internal/api/middleware"
	"github.com/agrivision/agrivision/internal/database"
	"github.com/agrivision/agrivision/internal/farm"
	"github.com/agrivision/agrivision/internal/weather"
	"github.com/agrivision/agrivision/internal/weather/openweathermap"
	"github.com/agrivision/agrivision/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "agrivision-worker"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting AgriVision worker")

	// Worker also exposes health endpoint for Cloud Run
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to database
	pool, err := database.Connect(ctx, database.ConfigFromEnv())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	// Initialize the weather gateway
	weatherAPIKey := os.Getenv("OPENWEATHER_API_KEY")
	if weatherAPIKey == "" {
		log.Warn().Msg("OPENWEATHER_API_KEY not set - every farm will be skipped on fallback snapshots")
	}

	providerMetrics, err := middleware.NewProviderMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize provider metrics")
		os.Exit(1)
	}
	weatherClient := openweathermap.NewClient(openweathermap.ClientConfig{
		APIKey:  weatherAPIKey,
		Metrics: providerMetrics,
		Logger:  log,
	})
	weatherGateway := weather.NewGateway(weather.GatewayConfig{
		Provider: weatherClient,
		Logger:   log,
	})

	// Initialize the alert refresh job
	farmRepo := farm.NewPostgresRepository(pool)
	alertService := alert.NewService(alert.NewPostgresRepository(pool))
	alertJob := worker.NewAlertJob(farmRepo, alertService, weatherGateway, log, worker.DefaultAlertConfig())

	// Create HTTP server for health checks
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":"%s"}`, Version)
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health check server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	// Consume Pub/Sub jobs when configured; otherwise run the alert job on a
	// fixed interval (local development and small deployments).
	projectID := os.Getenv("PUBSUB_PROJECT_ID")
	if projectID != "" {
		subscriptionName := os.Getenv("PUBSUB_SUBSCRIPTION")
		if subscriptionName == "" {
			subscriptionName = "agrivision-worker-jobs"
		}

		pubsubHandler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        projectID,
			SubscriptionName: subscriptionName,
			Logger:           log,
		}, alertJob)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize pubsub handler")
		}
		defer pubsubHandler.Close()

		go func() {
			if err := pubsubHandler.Listen(ctx); err != nil {
				log.Error().Err(err).Msg("pubsub listener stopped")
			}
		}()
	} else {
		interval := 30 * time.Minute
		if v := os.Getenv("ALERT_REFRESH_INTERVAL"); v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				log.Fatal().Err(err).Str("value", v).Msg("invalid ALERT_REFRESH_INTERVAL")
			}
			interval = parsed
		}

		log.Info().Dur("interval", interval).Msg("no pubsub project configured, running on a timer")

		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				if _, err := alertJob.Run(ctx); err != nil {
					log.Error().Err(err).Msg("alert refresh failed")
				}

				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
				}
			}
		}()
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
