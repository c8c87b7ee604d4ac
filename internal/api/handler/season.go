package handler

import (
	"errors"
	"net/http"

	"github.com/agrivision/agrivision/internal/api/models"
	"github.com/agrivision/agrivision/internal/api/response"
	"github.com/agrivision/agrivision/internal/season"
)

// SeasonHandler handles season planning endpoints.
type SeasonHandler struct {
	planner *season.Planner
}

// NewSeasonHandler creates a new SeasonHandler.
func NewSeasonHandler(planner *season.Planner) *SeasonHandler {
	return &SeasonHandler{planner: planner}
}

// GetPlanningAdvice handles GET /v1/planning?location=... - crop
// recommendation for the location's current season.
func (h *SeasonHandler) GetPlanningAdvice(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")

	advice, err := h.planner.PlanningAdvice(r.Context(), location)
	if err != nil {
		var validationErr *season.ValidationError
		if errors.As(err, &validationErr) {
			response.BadRequest(w, r, "validation failed", validationErr.Errors)
			return
		}
		response.InternalError(w, r, "an unexpected error occurred")
		return
	}

	result := models.SeasonAdvice{
		Season:          string(advice.Season),
		RecommendedCrop: advice.RecommendedCrop,
		Profitability:   advice.Profitability,
		MarketDemand:    advice.MarketDemand,
		Reasoning:       advice.Reasoning,
		Alternatives:    make([]models.SeasonAlternative, 0, len(advice.Alternatives)),
	}
	for _, alt := range advice.Alternatives {
		result.Alternatives = append(result.Alternatives, models.SeasonAlternative{
			Crop:          alt.Crop,
			Profitability: alt.Profitability,
			MarketDemand:  alt.MarketDemand,
		})
	}

	response.JSON(w, r, http.StatusOK, result)
}
