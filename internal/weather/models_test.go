package weather_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrivision/agrivision/internal/weather"
)

func threeHourlySeries(steps int) *weather.Series {
	series := &weather.Series{Location: "Nashik, Maharashtra"}
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < steps; i++ {
		series.Steps = append(series.Steps, weather.Step{
			Time:        start.Add(time.Duration(i) * 3 * time.Hour),
			Temp:        28,
			TempMin:     22.4,
			TempMax:     32.6,
			Humidity:    65,
			Pressure:    1010,
			Rainfall3h:  float64(i % 3),
			WindSpeedMS: 10,
			Condition:   "Clouds",
		})
	}
	return series
}

func TestKmhFromMS(t *testing.T) {
	tests := []struct {
		ms   float64
		want int
	}{
		{10, 36},
		{0, 0},
		{3.2, 12},   // 11.52 rounds up
		{2.9, 10},   // 10.44 rounds down
		{5.55, 20},  // 19.98
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, weather.KmhFromMS(tt.ms), "%v m/s", tt.ms)
	}
}

func TestEvapotranspiration(t *testing.T) {
	assert.Equal(t, 4.2, weather.Evapotranspiration(28))
	assert.Equal(t, 0.0, weather.Evapotranspiration(0))
	assert.Equal(t, 4.7, weather.Evapotranspiration(31.1)) // 4.665 rounds to 4.7
}

func TestDayLabel(t *testing.T) {
	assert.Equal(t, "Today", weather.DayLabel(0))
	assert.Equal(t, "Tomorrow", weather.DayLabel(1))
	assert.Equal(t, "Day 3", weather.DayLabel(2))
	assert.Equal(t, "Day 5", weather.DayLabel(4))
}

func TestNormalize_Downsampling(t *testing.T) {
	// 40 three-hourly points normalize to one record per day, 8 steps apart.
	snap := weather.Normalize(threeHourlySeries(40))

	require.Len(t, snap.Forecast, 5)
	assert.Equal(t, weather.SourceLive, snap.Source)
	assert.Equal(t, "Today", snap.Forecast[0].Date)
	assert.Equal(t, "Tomorrow", snap.Forecast[1].Date)
	assert.Equal(t, "Day 5", snap.Forecast[4].Date)

	// Sampled steps are indices 0, 8, 16, 24, 32; rainfall is i%3 in the fixture.
	for day, idx := range []int{0, 8, 16, 24, 32} {
		assert.Equal(t, float64(idx%3), snap.Forecast[day].Rainfall, "day %d", day)
	}
}

func TestNormalize_TruncatesLongSeries(t *testing.T) {
	// A week of points still yields at most 5 forecast days.
	snap := weather.Normalize(threeHourlySeries(56))
	assert.Len(t, snap.Forecast, 5)
}

func TestNormalize_CurrentFromFirstStep(t *testing.T) {
	series := threeHourlySeries(16)
	series.Steps[0].Temp = 31.5
	series.Steps[0].Humidity = 72
	series.Steps[0].Rainfall3h = 0

	snap := weather.Normalize(series)

	assert.Equal(t, 31.5, snap.Current.Temperature)
	assert.Equal(t, 72.0, snap.Current.Humidity)
	assert.Equal(t, 0.0, snap.Current.Rainfall)
	assert.Equal(t, 36, snap.Current.WindSpeed)
	assert.Equal(t, 4.7, snap.Current.Evapotranspiration) // 31.5 × 0.15
	assert.Equal(t, weather.KmhFromMS(10), snap.Current.WindSpeed)

	// Rounded whole-degree forecast temperatures
	assert.Equal(t, 22, snap.Forecast[0].MinTemp)
	assert.Equal(t, 33, snap.Forecast[0].MaxTemp)
}

func TestFallbackSnapshot(t *testing.T) {
	snap := weather.FallbackSnapshot("Nashik, Maharashtra")

	assert.Equal(t, weather.SourceFallback, snap.Source)
	assert.Equal(t, "Nashik, Maharashtra", snap.Location)
	require.Len(t, snap.Forecast, weather.ForecastDays)

	assert.Equal(t, 28.0, snap.Current.Temperature)
	assert.Equal(t, 65.0, snap.Current.Humidity)
	assert.Equal(t, 0.0, snap.Current.Rainfall)
	assert.Equal(t, 12, snap.Current.WindSpeed)

	assert.Equal(t, "Today", snap.Forecast[0].Date)
}
