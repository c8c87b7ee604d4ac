package handler

import (
	"net/http"

	"github.com/agrivision/agrivision/internal/api/models"
	"github.com/agrivision/agrivision/internal/api/response"
	"github.com/agrivision/agrivision/internal/dashboard"
	"github.com/agrivision/agrivision/internal/farm"
)

// DashboardHandler handles the composed farm overview.
type DashboardHandler struct {
	farms      *farm.Service
	aggregator *dashboard.Aggregator
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(farms *farm.Service, aggregator *dashboard.Aggregator) *DashboardHandler {
	return &DashboardHandler{farms: farms, aggregator: aggregator}
}

// GetDashboard handles GET /v1/farms/{farmId}/dashboard - the farm overview.
// Weather always renders; alert and yield failures degrade their own block.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	f, err := resolveFarm(h.farms, w, r)
	if err != nil {
		return
	}

	view := h.aggregator.View(r.Context(), f)

	result := models.Dashboard{
		Farm:              farmToAPI(view.Farm),
		Weather:           SnapshotToAPI(view.Weather),
		Alerts:            make([]models.Alert, 0, len(view.Alerts)),
		AlertsUnavailable: view.AlertsUnavailable,
		YieldUnavailable:  view.YieldUnavailable,
		GeneratedAt:       models.Timestamp(view.GeneratedAt),
	}
	for _, a := range view.Alerts {
		result.Alerts = append(result.Alerts, alertToAPI(a))
	}
	if view.Yield != nil {
		prediction := predictionToAPI(view.Yield)
		result.Yield = &prediction
	}

	response.JSON(w, r, http.StatusOK, result)
}

// farmToAPI converts a domain farm to its API representation.
func farmToAPI(f *farm.Farm) models.Farm {
	return models.Farm{
		ID:               f.ID,
		Name:             f.Name,
		Location:         f.Location,
		SizeAcres:        f.SizeAcres,
		CropType:         f.CropType,
		SowingDate:       f.SowingDate.Format(farm.SowingDateLayout),
		IrrigationMethod: string(f.IrrigationMethod),
		SoilHealth: models.SoilHealth{
			Nitrogen:   f.Soil.Nitrogen,
			Phosphorus: f.Soil.Phosphorus,
			Potassium:  f.Soil.Potassium,
			PH:         f.Soil.PH,
		},
		CreatedAt: models.Timestamp(f.CreatedAt),
		UpdatedAt: models.Timestamp(f.UpdatedAt),
	}
}
