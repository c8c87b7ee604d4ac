package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/agrivision/agrivision/internal/api/models"
	"github.com/agrivision/agrivision/internal/api/response"
	"github.com/agrivision/agrivision/internal/farm"
)

// FarmHandler handles farm profile endpoints.
type FarmHandler struct {
	farms *farm.Service
}

// NewFarmHandler creates a new FarmHandler.
func NewFarmHandler(farms *farm.Service) *FarmHandler {
	return &FarmHandler{farms: farms}
}

// ListFarms handles GET /v1/me/farms - list the user's farms.
func (h *FarmHandler) ListFarms(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 100 {
			response.BadRequest(w, r, "limit must be an integer between 1 and 100", nil)
			return
		}
		limit = parsed
	}

	farms, err := h.farms.List(r.Context(), userID, limit)
	if err != nil {
		response.InternalError(w, r, "failed to list farms")
		return
	}

	response.JSON(w, r, http.StatusOK, farms)
}

// CreateFarm handles POST /v1/me/farms - create a farm.
func (h *FarmHandler) CreateFarm(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	var input models.FarmCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	created, err := h.farms.Create(r.Context(), userID, &input)
	if err != nil {
		writeFarmError(w, r, err)
		return
	}

	location := fmt.Sprintf("/v1/me/farms/%s", created.ID)
	response.Created(w, r, location, created)
}

// GetFarm handles GET /v1/me/farms/{farmId} - get one farm.
func (h *FarmHandler) GetFarm(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	farmID := chi.URLParam(r, "farmId")

	result, err := h.farms.Get(r.Context(), userID, farmID)
	if err != nil {
		writeFarmError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// UpdateFarm handles PUT /v1/me/farms/{farmId} - update a farm.
func (h *FarmHandler) UpdateFarm(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	farmID := chi.URLParam(r, "farmId")

	var input models.FarmUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	updated, err := h.farms.Update(r.Context(), userID, farmID, &input)
	if err != nil {
		writeFarmError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, updated)
}

// DeleteFarm handles DELETE /v1/me/farms/{farmId} - delete a farm.
func (h *FarmHandler) DeleteFarm(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	farmID := chi.URLParam(r, "farmId")

	if err := h.farms.Delete(r.Context(), userID, farmID); err != nil {
		writeFarmError(w, r, err)
		return
	}

	response.NoContent(w, r)
}

// writeFarmError maps farm service errors to problem responses.
func writeFarmError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *farm.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.BadRequest(w, r, "validation failed", validationErr.Errors)
	case errors.Is(err, farm.ErrNoActiveUser):
		response.Unauthorized(w, r, "authentication required")
	case errors.Is(err, farm.ErrFarmNotFound):
		response.NotFound(w, r, "farm not found")
	default:
		response.InternalError(w, r, "an unexpected error occurred")
	}
}
