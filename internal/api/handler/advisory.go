package handler

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agrivision/agrivision/internal/advisory"
	"github.com/agrivision/agrivision/internal/api/models"
	"github.com/agrivision/agrivision/internal/api/response"
	"github.com/agrivision/agrivision/internal/farm"
)

// maxPestImageBytes bounds the decoded pest image payload (5 MiB).
const maxPestImageBytes = 5 << 20

// AdvisoryHandler handles irrigation, fertilizer, and pest advisory
// endpoints.
type AdvisoryHandler struct {
	farms    *farm.Service
	advisory *advisory.Service
}

// NewAdvisoryHandler creates a new AdvisoryHandler.
func NewAdvisoryHandler(farms *farm.Service, advisoryService *advisory.Service) *AdvisoryHandler {
	return &AdvisoryHandler{farms: farms, advisory: advisoryService}
}

// IrrigationAdvice handles POST /v1/farms/{farmId}/advisory/irrigation.
func (h *AdvisoryHandler) IrrigationAdvice(w http.ResponseWriter, r *http.Request) {
	f, ok := h.resolveFarm(w, r)
	if !ok {
		return
	}

	var input models.IrrigationAdviceRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	advice, err := h.advisory.IrrigationAdvice(r.Context(), f, input.LastIrrigationDate)
	if err != nil {
		writeAdvisoryError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.IrrigationAdvice{
		Recommendation:    advice.Recommendation,
		NextIrrigation:    advice.NextIrrigation.Format(advisory.DateLayout),
		IntervalDays:      advice.IntervalDays,
		WaterAmountLiters: advice.WaterAmountLiters,
		Reasoning:         advice.Reasoning,
	})
}

// FertilizerAdvice handles POST /v1/farms/{farmId}/advisory/fertilizer.
func (h *AdvisoryHandler) FertilizerAdvice(w http.ResponseWriter, r *http.Request) {
	f, ok := h.resolveFarm(w, r)
	if !ok {
		return
	}

	var input models.FertilizerAdviceRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	advice, err := h.advisory.FertilizerAdvice(r.Context(), f, input.CropStage)
	if err != nil {
		writeAdvisoryError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.FertilizerAdvice{
		Fertilizer:        advice.Fertilizer,
		QuantityKgPerAcre: advice.QuantityKgPerAcre,
		Timing:            advice.Timing,
		Method:            advice.Method,
		Reasoning:         advice.Reasoning,
	})
}

// DetectPest handles POST /v1/advisory/pest - analyze a crop image.
// The image is processed in memory and never stored.
func (h *AdvisoryHandler) DetectPest(w http.ResponseWriter, r *http.Request) {
	var input models.PestDetectionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPestImageBytes)).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	image, err := base64.StdEncoding.DecodeString(input.Image)
	if err != nil {
		response.BadRequest(w, r, "image must be base64-encoded", []models.FieldError{
			{Field: "image", Message: "must be base64-encoded"},
		})
		return
	}

	detection, err := h.advisory.DetectPest(r.Context(), image)
	if err != nil {
		writeAdvisoryError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.PestDetection{
		Detected:   detection.Detected,
		PestName:   detection.PestName,
		Confidence: detection.Confidence,
		Severity:   string(detection.Severity),
		Badge:      detection.Severity.Badge(),
		Treatment:  detection.Treatment,
	})
}

// resolveFarm loads the authenticated user's farm from the route parameter,
// writing the error response itself when that fails.
func (h *AdvisoryHandler) resolveFarm(w http.ResponseWriter, r *http.Request) (*farm.Farm, bool) {
	f, err := resolveFarm(h.farms, w, r)
	if err != nil {
		return nil, false
	}
	return f, true
}

// writeAdvisoryError maps advisory service errors to problem responses.
func writeAdvisoryError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *advisory.ValidationError
	if errors.As(err, &validationErr) {
		response.BadRequest(w, r, "validation failed", validationErr.Errors)
		return
	}
	response.InternalError(w, r, "an unexpected error occurred")
}
