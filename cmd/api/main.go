// Package main provides the entrypoint for the AgriVision API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/agrivision/agrivision/internal/advisory"
	"github.com/agrivision/agrivision/internal/alert"
	"github.com/agrivision/agrivision/internal/api"
	"github.com/agrivision/agrivision/internal/api/middleware"
	"github.com/agrivision/agrivision/internal/auth"
	"github.com/agrivision/agrivision/internal/dashboard"
	"github.com/agrivision/agrivision/internal/database"
	"github.com/agrivision/agrivision/internal/farm"
	"github.com/agrivision/agrivision/internal/feedback"
	"github.com/agrivision/agrivision/internal/season"
	"github.com/agrivision/agrivision/internal/telemetry"
	"github.com/agrivision/agrivision/internal/user"
	"github.com/agrivision/agrivision/internal/weather"
	"github.com/agrivision/agrivision/internal/weather/openweathermap"
	"github.com/agrivision/agrivision/internal/yield"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "agrivision-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting AgriVision API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Initialize JWT service (get signing key from environment)
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SigningKey: jwtSigningKey,
		Issuer:     "https://api.agrivision.app",
		Audience:   "agrivision-api",
	})

	// Initialize user repository and service
	userRepo := user.NewPostgresRepository(pool)
	userService := user.NewService(userRepo)
	log.Info().Msg("user service initialized")

	// Initialize farm repository and service
	farmRepo := farm.NewPostgresRepository(pool)
	farmService := farm.NewService(farmRepo)
	log.Info().Msg("farm service initialized")

	// Initialize alert repository and service
	alertRepo := alert.NewPostgresRepository(pool)
	alertService := alert.NewService(alertRepo)
	log.Info().Msg("alert service initialized")

	// Initialize feedback repository and service
	feedbackRepo := feedback.NewPostgresRepository(pool)
	feedbackService := feedback.NewService(feedbackRepo)
	log.Info().Msg("feedback service initialized")

	// Initialize the weather provider and gateway
	weatherAPIKey := os.Getenv("OPENWEATHER_API_KEY")
	if weatherAPIKey == "" {
		log.Warn().Msg("OPENWEATHER_API_KEY not set - weather endpoints will serve fallback data")
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
	log.Info().Msg("weather gateway initialized")

	// Initialize the advisory engine and service
	advisoryEngine := advisory.NewRuleBasedEngine(weatherGateway, log)
	advisoryService := advisory.NewService(advisoryEngine)

	// Initialize the yield predictor and season planner
	predictor := yield.NewPredictor(feedbackService, log)
	planner := season.NewPlanner(season.PlannerConfig{Logger: log})

	// Initialize the dashboard aggregator
	aggregator := dashboard.NewAggregator(weatherGateway, alertService, predictor, log)

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:         Version,
		BuildTime:       BuildTime,
		Logger:          log,
		ServiceName:     serviceName,
		Metrics:         metrics,
		DB:              pool,
		JWTService:      jwtService,
		UserService:     userService,
		FarmService:     farmService,
		AlertService:    alertService,
		AdvisoryService: advisoryService,
		FeedbackService: feedbackService,
		Predictor:       predictor,
		Planner:         planner,
		Aggregator:      aggregator,
		WeatherGateway:  weatherGateway,
		WeatherClient:   weatherClient,
		WeatherAPIKey:   weatherAPIKey,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
