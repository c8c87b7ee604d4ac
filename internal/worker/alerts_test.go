package worker

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrivision/agrivision/internal/alert"
	"github.com/agrivision/agrivision/internal/farm"
	"github.com/agrivision/agrivision/internal/weather"
)

// scriptedProvider returns a canned series per location, or an error for
// locations it doesn't know.
type scriptedProvider struct {
	series map[string]*weather.Series
}

func (p *scriptedProvider) FetchForecast(_ context.Context, location string) (*weather.Series, error) {
	s, ok := p.series[location]
	if !ok {
		return nil, weather.ErrProviderUnavailable
	}
	return s, nil
}

func (p *scriptedProvider) Name() string { return "scripted" }

// calmSeries builds 5 forecast days of mild weather.
func calmSeries(location string) *weather.Series {
	s := &weather.Series{Location: location}
	base := time.Now()
	for i := 0; i < 40; i++ {
		s.Steps = append(s.Steps, weather.Step{
			Time:        base.Add(time.Duration(i) * 3 * time.Hour),
			Temp:        26,
			TempMin:     20,
			TempMax:     30,
			Humidity:    55,
			Pressure:    1012,
			Rainfall3h:  0,
			WindSpeedMS: 3,
			Condition:   "Clear",
		})
	}
	return s
}

func newTestJob(t *testing.T, provider weather.Provider) (*AlertJob, *farm.InMemoryRepository, *alert.Service) {
	t.Helper()

	logger := zerolog.Nop()
	gateway := weather.NewGateway(weather.GatewayConfig{
		Provider: provider,
		Logger:   logger,
	})

	farms := farm.NewInMemoryRepository()
	alerts := alert.NewService(alert.NewInMemoryRepository())

	job := NewAlertJob(farms, alerts, gateway, logger, AlertConfig{Concurrency: 2})
	return job, farms, alerts
}

func seedFarm(t *testing.T, farms *farm.InMemoryRepository, id, location string) *farm.Farm {
	t.Helper()

	f := &farm.Farm{
		ID:        id,
		UserID:    "usr_test",
		Name:      "Test Farm",
		Location:  location,
		SizeAcres: 3,
		CropType:  "tomato",
		CreatedAt: time.Now(),
	}
	require.NoError(t, farms.Create(context.Background(), f))
	return f
}

func TestAlertJob_HeavyRain(t *testing.T) {
	series := calmSeries("Pune")
	series.Steps[16].Rainfall3h = 14 // third forecast day

	job, farms, alerts := newTestJob(t, &scriptedProvider{
		series: map[string]*weather.Series{"Pune": series},
	})
	seedFarm(t, farms, "frm_rain", "Pune")

	result, err := job.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 1, result.AlertsRaised)
	assert.Equal(t, 0, result.Failed)

	raised, err := alerts.List(context.Background(), "frm_rain")
	require.NoError(t, err)
	require.Len(t, raised, 1)
	assert.Equal(t, alert.CategoryWeather, raised[0].Category)
	assert.Equal(t, alert.PriorityHigh, raised[0].Priority)
	assert.Equal(t, "Heavy Rain Expected", raised[0].Title)
	assert.True(t, raised[0].ActionRequired)
}

func TestAlertJob_NoDuplicateInsideWindow(t *testing.T) {
	series := calmSeries("Pune")
	series.Steps[0].Rainfall3h = 22

	job, farms, alerts := newTestJob(t, &scriptedProvider{
		series: map[string]*weather.Series{"Pune": series},
	})
	seedFarm(t, farms, "frm_rain", "Pune")

	_, err := job.Run(context.Background())
	require.NoError(t, err)

	result, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.AlertsRaised)

	raised, err := alerts.List(context.Background(), "frm_rain")
	require.NoError(t, err)
	assert.Len(t, raised, 1)
}

func TestAlertJob_ExtremeHeat(t *testing.T) {
	series := calmSeries("Nagpur")
	for i := range series.Steps {
		series.Steps[i].TempMax = 43
	}

	job, farms, alerts := newTestJob(t, &scriptedProvider{
		series: map[string]*weather.Series{"Nagpur": series},
	})
	seedFarm(t, farms, "frm_heat", "Nagpur")

	result, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.AlertsRaised)

	raised, err := alerts.List(context.Background(), "frm_heat")
	require.NoError(t, err)
	require.Len(t, raised, 1)
	assert.Equal(t, "Extreme Heat Expected", raised[0].Title)
}

func TestAlertJob_SkipsFallbackSnapshots(t *testing.T) {
	// Provider knows no locations, so every farm degrades to fallback.
	job, farms, alerts := newTestJob(t, &scriptedProvider{})
	seedFarm(t, farms, "frm_down", "Nowhere")

	result, err := job.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.AlertsRaised)
	assert.Equal(t, 0, result.Failed)

	raised, err := alerts.List(context.Background(), "frm_down")
	require.NoError(t, err)
	assert.Empty(t, raised)
}

func TestAlertJob_MetricsAccumulate(t *testing.T) {
	series := calmSeries("Pune")
	series.Steps[8].Rainfall3h = 18

	job, farms, _ := newTestJob(t, &scriptedProvider{
		series: map[string]*weather.Series{"Pune": series},
	})
	seedFarm(t, farms, "frm_a", "Pune")
	seedFarm(t, farms, "frm_b", "Pune")

	_, err := job.Run(context.Background())
	require.NoError(t, err)

	snap := job.Metrics().Snapshot()
	assert.Equal(t, int64(1), snap["total_runs"])
	assert.Equal(t, int64(2), snap["total_raised"])
	assert.Equal(t, int64(0), snap["total_failed"])
}
