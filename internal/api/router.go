// Package api provides the HTTP API for AgriVision.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/agrivision/agrivision/internal/advisory"
	"github.com/agrivision/agrivision/internal/alert"
	"github.com/agrivision/agrivision/internal/api/handler"
	"github.com/agrivision/agrivision/internal/api/middleware"
	"github.com/agrivision/agrivision/internal/auth"
	"github.com/agrivision/agrivision/internal/dashboard"
	"github.com/agrivision/agrivision/internal/farm"
	"github.com/agrivision/agrivision/internal/feedback"
	"github.com/agrivision/agrivision/internal/season"
	"github.com/agrivision/agrivision/internal/user"
	"github.com/agrivision/agrivision/internal/weather"
	"github.com/agrivision/agrivision/internal/weather/openweathermap"
	"github.com/agrivision/agrivision/internal/yield"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics

	DB              handler.Pinger
	JWTService      *auth.JWTService
	UserService     *user.Service
	FarmService     *farm.Service
	AlertService    *alert.Service
	AdvisoryService *advisory.Service
	FeedbackService *feedback.Service
	Predictor       *yield.Predictor
	Planner         *season.Planner
	Aggregator      *dashboard.Aggregator
	WeatherGateway  *weather.Gateway
	WeatherClient   *openweathermap.Client
	WeatherAPIKey   string
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "agrivision-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.DB, nil)
	meHandler := handler.NewMeHandler(cfg.UserService)
	farmHandler := handler.NewFarmHandler(cfg.FarmService)
	weatherHandler := handler.NewWeatherHandler(cfg.WeatherClient, cfg.WeatherAPIKey)
	dashboardHandler := handler.NewDashboardHandler(cfg.FarmService, cfg.Aggregator)
	alertHandler := handler.NewAlertHandler(cfg.FarmService, cfg.AlertService)
	advisoryHandler := handler.NewAdvisoryHandler(cfg.FarmService, cfg.AdvisoryService)
	yieldHandler := handler.NewYieldHandler(cfg.FarmService, cfg.WeatherGateway, cfg.Predictor)
	seasonHandler := handler.NewSeasonHandler(cfg.Planner)
	feedbackHandler := handler.NewFeedbackHandler(cfg.FarmService, cfg.FeedbackService)

	// Create auth middleware
	authMiddleware := middleware.Auth(cfg.JWTService)

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)  // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status endpoint requires authentication
			r.With(authMiddleware).Get("/status", opsHandler.SystemStatus)
		})

		// Weather proxy (public) - the browser dashboard calls this directly,
		// so it carries CORS and answers preflight
		r.Route("/weather", func(r chi.Router) {
			r.Use(middleware.CORS)
			r.Use(standardRateLimit)
			r.Get("/", weatherHandler.GetWeather)
			r.Options("/", weatherHandler.GetWeather)
		})

		// Season planning (public) - standard rate limiting
		r.With(standardRateLimit).Get("/planning", seasonHandler.GetPlanningAdvice)

		// Pest detection - image analysis, strict rate limiting
		r.With(expensiveRateLimit).Post("/advisory/pest", advisoryHandler.DetectPest)

		// Me endpoints (authenticated) - user-based rate limiting
		r.Route("/me", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit)) // 100 req/min per user
			r.Get("/", meHandler.GetMe)
			r.Put("/", meHandler.UpdateMe)

			// Farms
			r.Route("/farms", func(r chi.Router) {
				r.Get("/", farmHandler.ListFarms)
				r.Post("/", farmHandler.CreateFarm)
				r.Route("/{farmId}", func(r chi.Router) {
					r.Get("/", farmHandler.GetFarm)
					r.Put("/", farmHandler.UpdateFarm)
					r.Delete("/", farmHandler.DeleteFarm)
				})
			})
		})

		// Per-farm read models and advisories (authenticated)
		r.Route("/farms/{farmId}", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit))

			r.Get("/dashboard", dashboardHandler.GetDashboard)
			r.Get("/alerts", alertHandler.ListAlerts)
			r.Get("/yield", yieldHandler.PredictYield)

			r.Post("/advisory/irrigation", advisoryHandler.IrrigationAdvice)
			r.Post("/advisory/fertilizer", advisoryHandler.FertilizerAdvice)

			r.Route("/feedback", func(r chi.Router) {
				r.Get("/", feedbackHandler.ListFeedback)
				r.Post("/", feedbackHandler.SubmitFeedback)
			})
		})
	})

	return r
}
