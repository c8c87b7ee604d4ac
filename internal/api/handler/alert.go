package handler

import (
	"net/http"

	"github.com/agrivision/agrivision/internal/alert"
	"github.com/agrivision/agrivision/internal/api/models"
	"github.com/agrivision/agrivision/internal/api/response"
	"github.com/agrivision/agrivision/internal/farm"
)

// AlertHandler handles the farm alert feed.
type AlertHandler struct {
	farms  *farm.Service
	alerts *alert.Service
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(farms *farm.Service, alerts *alert.Service) *AlertHandler {
	return &AlertHandler{farms: farms, alerts: alerts}
}

// ListAlerts handles GET /v1/farms/{farmId}/alerts - the farm's alert feed,
// most recent first. ?category= filters the items; counts always cover the
// full feed.
func (h *AlertHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	f, err := resolveFarm(h.farms, w, r)
	if err != nil {
		return
	}

	all, err := h.alerts.List(r.Context(), f.ID)
	if err != nil {
		response.InternalError(w, r, "failed to list alerts")
		return
	}

	items := all
	if v := r.URL.Query().Get("category"); v != "" {
		category, ok := alert.ParseCategory(v)
		if !ok {
			response.BadRequest(w, r, "category must be one of irrigation, fertilizer, pest, weather", nil)
			return
		}
		items = alert.FilterByCategory(all, category)
	}

	counts := make(map[string]int)
	for category, n := range alert.CountByCategory(all) {
		counts[string(category)] = n
	}

	list := models.AlertList{
		Items:  make([]models.Alert, 0, len(items)),
		Counts: counts,
		Total:  len(all),
	}
	for _, a := range items {
		list.Items = append(list.Items, alertToAPI(a))
	}

	response.JSON(w, r, http.StatusOK, list)
}

// alertToAPI converts a domain alert to its API representation.
func alertToAPI(a *alert.Alert) models.Alert {
	return models.Alert{
		ID:             a.ID,
		Category:       string(a.Category),
		Priority:       string(a.Priority),
		Title:          a.Title,
		Message:        a.Message,
		ActionRequired: a.ActionRequired,
		CreatedAt:      models.Timestamp(a.CreatedAt),
	}
}
