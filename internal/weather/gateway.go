package weather

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Provider defines the interface for forecast data providers.
type Provider interface {
	// FetchForecast fetches the 3-hourly forecast series for a free-text location.
	FetchForecast(ctx context.Context, location string) (*Series, error)

	// Name returns the provider name for logging.
	Name() string
}

// GatewayConfig holds configuration for the weather gateway.
type GatewayConfig struct {
	// Provider is the forecast data provider.
	Provider Provider

	// Logger for gateway operations.
	Logger zerolog.Logger

	// FetchTimeout bounds the outbound provider call (default: 5 seconds).
	// On timeout the gateway serves the fallback snapshot like any other failure.
	FetchTimeout time.Duration
}

// Gateway fetches and normalizes forecasts. It never fails outward: any
// provider error, malformed payload, or timeout degrades to the fixed
// fallback snapshot so the dashboard always renders.
type Gateway struct {
	provider     Provider
	logger       zerolog.Logger
	fetchTimeout time.Duration
}

// NewGateway creates a new weather gateway.
func NewGateway(cfg GatewayConfig) *Gateway {
	fetchTimeout := cfg.FetchTimeout
	if fetchTimeout == 0 {
		fetchTimeout = 5 * time.Second
	}

	return &Gateway{
		provider:     cfg.Provider,
		logger:       cfg.Logger,
		fetchTimeout: fetchTimeout,
	}
}

// GetForecast returns the normalized snapshot for a location. The returned
// snapshot is never nil; check Source to tell live data from fallback.
func (g *Gateway) GetForecast(ctx context.Context, location string) *Snapshot {
	fetchCtx, cancel := context.WithTimeout(ctx, g.fetchTimeout)
	defer cancel()

	series, err := g.provider.FetchForecast(fetchCtx, location)
	if err != nil {
		g.logger.Warn().Err(err).
			Str("location", location).
			Str("provider", g.provider.Name()).
			Msg("forecast fetch failed, serving fallback snapshot")
		return FallbackSnapshot(location)
	}

	if series == nil || len(series.Steps) == 0 {
		g.logger.Warn().
			Str("location", location).
			Str("provider", g.provider.Name()).
			Msg("provider returned empty forecast, serving fallback snapshot")
		return FallbackSnapshot(location)
	}

	return Normalize(series)
}
