package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/agrivision/agrivision/internal/alert"
	"github.com/agrivision/agrivision/internal/farm"
	"github.com/agrivision/agrivision/internal/weather"
)

// AlertJob evaluates the forecast for every farm and raises weather alerts.
type AlertJob struct {
	farms   farm.Repository
	alerts  *alert.Service
	weather *weather.Gateway
	logger  zerolog.Logger
	config  AlertConfig
	metrics *AlertMetrics
}

// NewAlertJob creates a new alert refresh job.
func NewAlertJob(farms farm.Repository, alerts *alert.Service, gateway *weather.Gateway, logger zerolog.Logger, config AlertConfig) *AlertJob {
	return &AlertJob{
		farms:   farms,
		alerts:  alerts,
		weather: gateway,
		logger:  logger.With().Str("component", "alert_job").Logger(),
		config:  config.withDefaults(),
		metrics: &AlertMetrics{},
	}
}

// Result summarizes one alert refresh run.
type Result struct {
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	Farms        int
	Successful   int
	Failed       int
	Skipped      int
	AlertsRaised int
	Errors       []error
}

// farmOutcome is what one worker reports for one farm.
type farmOutcome struct {
	farmID  string
	raised  int
	skipped bool
	err     error
}

// Run evaluates every farm once. Farms are processed by a fixed pool of
// workers, each farm under its own timeout so one slow provider call cannot
// stall the whole run.
func (j *AlertJob) Run(ctx context.Context) (*Result, error) {
	result := &Result{StartTime: time.Now()}

	farms, err := j.farms.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing farms: %w", err)
	}
	result.Farms = len(farms)

	j.logger.Info().
		Int("farms", len(farms)).
		Int("concurrency", j.config.Concurrency).
		Msg("starting alert refresh")

	work := make(chan *farm.Farm, len(farms))
	outcomes := make(chan farmOutcome, len(farms))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go j.worker(ctx, &wg, work, outcomes)
	}

	for _, f := range farms {
		work <- f
	}
	close(work)

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	for out := range outcomes {
		switch {
		case out.err != nil:
			result.Failed++
			result.Errors = append(result.Errors, fmt.Errorf("farm %s: %w", out.farmID, out.err))
		case out.skipped:
			result.Skipped++
		default:
			result.Successful++
			result.AlertsRaised += out.raised
		}
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	j.metrics.record(result)

	j.logger.Info().
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Int("skipped", result.Skipped).
		Int("alerts_raised", result.AlertsRaised).
		Dur("duration", result.Duration).
		Msg("alert refresh complete")

	return result, nil
}

func (j *AlertJob) worker(ctx context.Context, wg *sync.WaitGroup, work <-chan *farm.Farm, outcomes chan<- farmOutcome) {
	defer wg.Done()

	for f := range work {
		farmCtx, cancel := context.WithTimeout(ctx, j.config.FarmTimeout)
		raised, skipped, err := j.evaluateFarm(farmCtx, f)
		cancel()

		if err != nil {
			j.logger.Error().Err(err).
				Str("farm_id", f.ID).
				Msg("farm evaluation failed")
		}

		outcomes <- farmOutcome{farmID: f.ID, raised: raised, skipped: skipped, err: err}
	}
}

// evaluateFarm fetches the farm's forecast and raises any alerts the forecast
// warrants. Fallback snapshots carry no real signal, so the farm is skipped
// rather than alerted on canned numbers.
func (j *AlertJob) evaluateFarm(ctx context.Context, f *farm.Farm) (raised int, skipped bool, err error) {
	snapshot := j.weather.GetForecast(ctx, f.Location)
	if snapshot.Source == weather.SourceFallback {
		j.logger.Debug().
			Str("farm_id", f.ID).
			Str("location", f.Location).
			Msg("fallback snapshot, skipping farm")
		return 0, true, nil
	}

	for _, day := range snapshot.Forecast {
		if day.Rainfall >= j.config.HeavyRainThresholdMM {
			n, err := j.raise(ctx, f, alert.CreateInput{
				FarmID:         f.ID,
				Category:       alert.CategoryWeather,
				Priority:       alert.PriorityHigh,
				Title:          "Heavy Rain Expected",
				Message:        fmt.Sprintf("%.0fmm of rainfall is forecast for %s. Postpone irrigation and check field drainage.", day.Rainfall, day.Date),
				ActionRequired: true,
			})
			if err != nil {
				return raised, false, err
			}
			raised += n
			break
		}
	}

	for _, day := range snapshot.Forecast {
		if day.MaxTemp >= j.config.HeatThresholdC {
			n, err := j.raise(ctx, f, alert.CreateInput{
				FarmID:         f.ID,
				Category:       alert.CategoryWeather,
				Priority:       alert.PriorityHigh,
				Title:          "Extreme Heat Expected",
				Message:        fmt.Sprintf("Temperatures up to %d°C are forecast for %s. Irrigate in the early morning and shade young plants.", day.MaxTemp, day.Date),
				ActionRequired: true,
			})
			if err != nil {
				return raised, false, err
			}
			raised += n
			break
		}
	}

	return raised, false, nil
}

// raise creates the alert unless a matching one was already issued inside the
// dedup window. Returns the number of alerts actually created (0 or 1).
func (j *AlertJob) raise(ctx context.Context, f *farm.Farm, input alert.CreateInput) (int, error) {
	since := time.Now().Add(-j.config.DedupWindow)
	exists, err := j.alerts.ExistsSimilar(ctx, f.ID, input.Category, input.Title, since)
	if err != nil {
		return 0, fmt.Errorf("checking for duplicate alert: %w", err)
	}
	if exists {
		return 0, nil
	}

	if _, err := j.alerts.Create(ctx, input); err != nil {
		return 0, fmt.Errorf("creating alert: %w", err)
	}

	j.logger.Info().
		Str("farm_id", f.ID).
		Str("title", input.Title).
		Msg("alert raised")

	return 1, nil
}

// Metrics returns the job's metrics collector.
func (j *AlertJob) Metrics() *AlertMetrics {
	return j.metrics
}

// AlertMetrics tracks alert refresh statistics across runs.
type AlertMetrics struct {
	mu           sync.RWMutex
	lastRun      time.Time
	lastDuration time.Duration
	lastFarms    int

	totalRuns    atomic.Int64
	totalRaised  atomic.Int64
	totalFailed  atomic.Int64
	totalSkipped atomic.Int64
}

func (m *AlertMetrics) record(result *Result) {
	m.mu.Lock()
	m.lastRun = result.EndTime
	m.lastDuration = result.Duration
	m.lastFarms = result.Farms
	m.mu.Unlock()

	m.totalRuns.Add(1)
	m.totalRaised.Add(int64(result.AlertsRaised))
	m.totalFailed.Add(int64(result.Failed))
	m.totalSkipped.Add(int64(result.Skipped))
}

// Snapshot returns the current metrics as a map for logging or health output.
func (m *AlertMetrics) Snapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"last_run":      m.lastRun,
		"last_duration": m.lastDuration.String(),
		"last_farms":    m.lastFarms,
		"total_runs":    m.totalRuns.Load(),
		"total_raised":  m.totalRaised.Load(),
		"total_failed":  m.totalFailed.Load(),
		"total_skipped": m.totalSkipped.Load(),
	}
}
