// Package dashboard composes the single-farm overview from its sub-sources.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agrivision/agrivision/internal/alert"
	"github.com/agrivision/agrivision/internal/farm"
	"github.com/agrivision/agrivision/internal/weather"
	"github.com/agrivision/agrivision/internal/yield"
)

// View is the read-only model for one farm's dashboard.
type View struct {
	Farm    *farm.Farm
	Weather *weather.Snapshot

	// Alerts is empty and AlertsUnavailable set when the alert store failed.
	Alerts            []*alert.Alert
	AlertsUnavailable bool

	// Yield is nil and YieldUnavailable set when the prediction failed.
	Yield            *yield.Prediction
	YieldUnavailable bool

	GeneratedAt time.Time
}

// Aggregator fans out the dashboard sub-fetches for a farm.
type Aggregator struct {
	weather   *weather.Gateway
	alerts    *alert.Service
	predictor *yield.Predictor
	logger    zerolog.Logger
}

// NewAggregator creates a new dashboard aggregator.
func NewAggregator(gateway *weather.Gateway, alerts *alert.Service, predictor *yield.Predictor, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		weather:   gateway,
		alerts:    alerts,
		predictor: predictor,
		logger:    logger.With().Str("component", "dashboard").Logger(),
	}
}

// View assembles the dashboard for a farm. The three sub-fetches run
// concurrently and all settle before assembly: a failing alert or yield
// source degrades its own block rather than failing the view, and the
// weather gateway never fails outward at all.
func (a *Aggregator) View(ctx context.Context, f *farm.Farm) *View {
	view := &View{Farm: f}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		view.Weather = a.weather.GetForecast(ctx, f.Location)
	}()

	go func() {
		defer wg.Done()
		alerts, err := a.alerts.List(ctx, f.ID)
		if err != nil {
			a.logger.Error().Err(err).Str("farm_id", f.ID).Msg("alert fetch failed, rendering without alerts")
			view.AlertsUnavailable = true
			return
		}
		view.Alerts = alerts
	}()

	go func() {
		defer wg.Done()
		// The predictor needs a snapshot; fetch independently of the weather
		// goroutine so neither blocks the other. The gateway degrades to the
		// fallback snapshot, so yield still resolves when the provider is down.
		snapshot := a.weather.GetForecast(ctx, f.Location)
		prediction, err := a.predictor.PredictYield(ctx, f, snapshot)
		if err != nil {
			a.logger.Error().Err(err).Str("farm_id", f.ID).Msg("yield prediction failed, rendering without yield")
			view.YieldUnavailable = true
			return
		}
		view.Yield = prediction
	}()

	wg.Wait()

	if view.Alerts == nil {
		view.Alerts = []*alert.Alert{}
	}
	view.GeneratedAt = time.Now()

	return view
}
