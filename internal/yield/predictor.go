package yield

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/agrivision/agrivision/internal/farm"
	"github.com/agrivision/agrivision/internal/feedback"
	"github.com/agrivision/agrivision/internal/weather"
)

// cropBaseline holds district and state average yields in tonnes per acre.
type cropBaseline struct {
	district float64
	state    float64
}

var cropBaselines = map[string]cropBaseline{
	"tomato":    {district: 20.1, state: 19.5},
	"onion":     {district: 15.8, state: 14.9},
	"cabbage":   {district: 24.3, state: 22.7},
	"wheat":     {district: 1.8, state: 1.6},
	"sugarcane": {district: 32.0, state: 30.5},
}

// defaultBaseline is used for crops with no district data yet.
var defaultBaseline = cropBaseline{district: 12.0, state: 11.0}

var irrigationScores = map[farm.IrrigationMethod]int{
	farm.IrrigationDrip:      92,
	farm.IrrigationSprinkler: 80,
	farm.IrrigationFlood:     65,
	farm.IrrigationManual:    55,
}

// Predictor aggregates per-factor scores into a yield forecast.
type Predictor struct {
	feedback *feedback.Service
	logger   zerolog.Logger
}

// NewPredictor creates a new yield predictor.
func NewPredictor(feedbackSvc *feedback.Service, logger zerolog.Logger) *Predictor {
	return &Predictor{
		feedback: feedbackSvc,
		logger:   logger.With().Str("component", "yield_predictor").Logger(),
	}
}

// PredictYield forecasts the farm's harvest from the given weather snapshot.
// The last-season baseline comes from the farm's most recent feedback record;
// a farm with no feedback gets a zero baseline, which callers surface as
// "no baseline" through Comparison.RelativeChange.
func (p *Predictor) PredictYield(ctx context.Context, f *farm.Farm, snapshot *weather.Snapshot) (*Prediction, error) {
	lastSeason, err := p.feedback.LastSeasonYield(ctx, f.ID)
	if err != nil {
		return nil, err
	}

	factors := FactorScores{
		Weather:    weatherScore(snapshot),
		Soil:       soilScore(f.Soil),
		Irrigation: irrigationScore(f.IrrigationMethod),
		Fertilizer: fertilizerScore(f.Soil),
	}

	baseline, ok := cropBaselines[f.CropType]
	if !ok {
		baseline = defaultBaseline
	}

	avg := float64(factors.Weather+factors.Soil+factors.Irrigation+factors.Fertilizer) / 4

	// Scale the district average by the factor mean, anchored so a farm
	// scoring 80 across the board predicts slightly above district average.
	predicted := math.Round(baseline.district*(avg/75)*10) / 10
	if predicted < 0 {
		predicted = 0
	}

	confidence := 87
	if snapshot.Source == weather.SourceFallback {
		// Stale weather inputs lower trust in the number, not the factor
		// breakdown.
		confidence -= 10
	}

	p.logger.Debug().
		Str("farm_id", f.ID).
		Str("crop", f.CropType).
		Float64("predicted", predicted).
		Int("confidence", confidence).
		Msg("computed yield prediction")

	return &Prediction{
		CropType:       f.CropType,
		PredictedYield: predicted,
		Confidence:     clamp(confidence),
		Factors:        factors,
		Comparison: Comparison{
			LastSeason:      lastSeason,
			DistrictAverage: baseline.district,
			StateAverage:    baseline.state,
		},
	}, nil
}

// weatherScore rates the current forecast for growing conditions.
func weatherScore(snapshot *weather.Snapshot) int {
	score := 60.0

	t := snapshot.Current.Temperature
	switch {
	case t >= 18 && t <= 32:
		score += 25
	case t >= 12 && t <= 38:
		score += 12
	}

	h := snapshot.Current.Humidity
	if h >= 40 && h <= 80 {
		score += 10
	}

	// Heavy rain in the forecast window is a downside risk.
	for _, day := range snapshot.Forecast {
		if day.Rainfall >= 20 {
			score -= 10
			break
		}
	}

	return clamp(int(math.Round(score)))
}

// soilScore rates nutrient levels and pH against a ~6.5 optimum.
func soilScore(soil farm.SoilHealth) int {
	nutrients := (soil.Nitrogen + soil.Phosphorus + soil.Potassium) / 3

	phDistance := math.Abs(soil.PH - 6.5)
	if phDistance > 2 {
		phDistance = 2
	}
	phComponent := 20 * (1 - phDistance/2)

	return clamp(int(math.Round(nutrients*0.8 + phComponent)))
}

// irrigationScore rates water-delivery efficiency per method.
func irrigationScore(method farm.IrrigationMethod) int {
	if score, ok := irrigationScores[method]; ok {
		return score
	}
	return 50
}

// fertilizerScore rates how balanced the soil nutrient profile is; a wide
// spread between N, P, and K signals a skewed fertilizer program.
func fertilizerScore(soil farm.SoilHealth) int {
	lowest := math.Min(soil.Nitrogen, math.Min(soil.Phosphorus, soil.Potassium))
	highest := math.Max(soil.Nitrogen, math.Max(soil.Phosphorus, soil.Potassium))
	spread := highest - lowest

	return clamp(int(math.Round(100 - spread*0.8)))
}

// clamp bounds a score to [0, 100].
func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
