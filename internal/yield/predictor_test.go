package yield_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrivision/agrivision/internal/farm"
	"github.com/agrivision/agrivision/internal/feedback"
	"github.com/agrivision/agrivision/internal/weather"
	"github.com/agrivision/agrivision/internal/yield"
)

func testFarm() *farm.Farm {
	return &farm.Farm{
		ID:               "frm_1",
		UserID:           "user123",
		Name:             "Green Valley Farm",
		Location:         "Nashik, Maharashtra",
		CropType:         "tomato",
		IrrigationMethod: farm.IrrigationDrip,
		Soil: farm.SoilHealth{
			Nitrogen:   65,
			Phosphorus: 45,
			Potassium:  80,
			PH:         6.5,
		},
	}
}

func liveSnapshot() *weather.Snapshot {
	return &weather.Snapshot{
		Location: "Nashik, Maharashtra",
		Source:   weather.SourceLive,
		Current:  weather.Current{Temperature: 28, Humidity: 65},
		Forecast: []weather.ForecastDay{
			{Date: "Today", Rainfall: 2},
			{Date: "Tomorrow", Rainfall: 0},
		},
	}
}

func newPredictor() (*yield.Predictor, *feedback.Service) {
	feedbackSvc := feedback.NewService(feedback.NewInMemoryRepository())
	return yield.NewPredictor(feedbackSvc, zerolog.Nop()), feedbackSvc
}

func TestPredictor_ScoresWithinBounds(t *testing.T) {
	predictor, _ := newPredictor()

	prediction, err := predictor.PredictYield(context.Background(), testFarm(), liveSnapshot())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, prediction.PredictedYield, 0.0)

	for name, score := range map[string]int{
		"confidence": prediction.Confidence,
		"weather":    prediction.Factors.Weather,
		"soil":       prediction.Factors.Soil,
		"irrigation": prediction.Factors.Irrigation,
		"fertilizer": prediction.Factors.Fertilizer,
	} {
		assert.GreaterOrEqual(t, score, 0, "%s below range", name)
		assert.LessOrEqual(t, score, 100, "%s above range", name)
	}

	assert.Equal(t, "tomato", prediction.CropType)
	assert.Equal(t, 20.1, prediction.Comparison.DistrictAverage)
	assert.Equal(t, 19.5, prediction.Comparison.StateAverage)
}

func TestPredictor_IrrigationMethodOrdering(t *testing.T) {
	predictor, _ := newPredictor()

	f := testFarm()
	f.IrrigationMethod = farm.IrrigationDrip
	drip, err := predictor.PredictYield(context.Background(), f, liveSnapshot())
	require.NoError(t, err)

	f.IrrigationMethod = farm.IrrigationFlood
	flood, err := predictor.PredictYield(context.Background(), f, liveSnapshot())
	require.NoError(t, err)

	assert.Greater(t, drip.Factors.Irrigation, flood.Factors.Irrigation)
	assert.Greater(t, drip.PredictedYield, flood.PredictedYield)
}

func TestPredictor_FallbackWeatherLowersConfidence(t *testing.T) {
	predictor, _ := newPredictor()

	live, err := predictor.PredictYield(context.Background(), testFarm(), liveSnapshot())
	require.NoError(t, err)

	fallback := weather.FallbackSnapshot("Nashik, Maharashtra")
	degraded, err := predictor.PredictYield(context.Background(), testFarm(), fallback)
	require.NoError(t, err)

	assert.Less(t, degraded.Confidence, live.Confidence)
}

func TestPredictor_LastSeasonBaselineFromFeedback(t *testing.T) {
	predictor, feedbackSvc := newPredictor()

	// No feedback: zero baseline
	prediction, err := predictor.PredictYield(context.Background(), testFarm(), liveSnapshot())
	require.NoError(t, err)
	assert.Equal(t, 0.0, prediction.Comparison.LastSeason)

	_, ok := prediction.Comparison.RelativeChange(prediction.PredictedYield)
	assert.False(t, ok, "zero baseline must report no-baseline, not a ratio")

	_, err = feedbackSvc.Submit(context.Background(), "user123", "frm_1", feedback.SubmitInput{
		ActualYield: 18.2,
		Rating:      4,
	})
	require.NoError(t, err)

	prediction, err = predictor.PredictYield(context.Background(), testFarm(), liveSnapshot())
	require.NoError(t, err)
	assert.Equal(t, 18.2, prediction.Comparison.LastSeason)

	change, ok := prediction.Comparison.RelativeChange(20.02)
	require.True(t, ok)
	assert.InDelta(t, 0.1, change, 0.0001)
}

func TestComparison_RelativeChange(t *testing.T) {
	c := yield.Comparison{LastSeason: 20}

	change, ok := c.RelativeChange(22)
	require.True(t, ok)
	assert.InDelta(t, 0.1, change, 0.0001)

	c.LastSeason = 0
	_, ok = c.RelativeChange(22)
	assert.False(t, ok)
}
