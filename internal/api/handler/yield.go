package handler

import (
	"math"
	"net/http"

	"github.com/agrivision/agrivision/internal/api/models"
	"github.com/agrivision/agrivision/internal/api/response"
	"github.com/agrivision/agrivision/internal/farm"
	"github.com/agrivision/agrivision/internal/weather"
	"github.com/agrivision/agrivision/internal/yield"
)

// yieldUnit labels predicted and baseline yields.
const yieldUnit = "tonnes/acre"

// YieldHandler handles yield prediction endpoints.
type YieldHandler struct {
	farms     *farm.Service
	weather   *weather.Gateway
	predictor *yield.Predictor
}

// NewYieldHandler creates a new YieldHandler.
func NewYieldHandler(farms *farm.Service, gateway *weather.Gateway, predictor *yield.Predictor) *YieldHandler {
	return &YieldHandler{farms: farms, weather: gateway, predictor: predictor}
}

// PredictYield handles GET /v1/farms/{farmId}/yield - a fresh prediction
// from the farm profile and current forecast. Predictions are computed per
// request and never stored.
func (h *YieldHandler) PredictYield(w http.ResponseWriter, r *http.Request) {
	f, err := resolveFarm(h.farms, w, r)
	if err != nil {
		return
	}

	snapshot := h.weather.GetForecast(r.Context(), f.Location)
	prediction, err := h.predictor.PredictYield(r.Context(), f, snapshot)
	if err != nil {
		response.InternalError(w, r, "failed to compute yield prediction")
		return
	}

	response.JSON(w, r, http.StatusOK, predictionToAPI(prediction))
}

// predictionToAPI converts a domain prediction to its API representation.
// RelativeChangePct is left out when the farm has no last-season baseline.
func predictionToAPI(p *yield.Prediction) models.YieldPrediction {
	comparison := models.YieldComparison{
		LastSeason:      p.Comparison.LastSeason,
		DistrictAverage: p.Comparison.DistrictAverage,
		StateAverage:    p.Comparison.StateAverage,
	}
	if change, ok := p.Comparison.RelativeChange(p.PredictedYield); ok {
		pct := math.Round(change*1000) / 10
		comparison.RelativeChangePct = &pct
	}

	return models.YieldPrediction{
		CropType:       p.CropType,
		PredictedYield: p.PredictedYield,
		Unit:           yieldUnit,
		Confidence:     p.Confidence,
		Factors: models.YieldFactors{
			Weather:    p.Factors.Weather,
			Soil:       p.Factors.Soil,
			Irrigation: p.Factors.Irrigation,
			Fertilizer: p.Factors.Fertilizer,
		},
		Comparison: comparison,
	}
}
