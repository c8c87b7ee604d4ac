package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/agrivision/agrivision/internal/api/models"
	"github.com/agrivision/agrivision/internal/api/response"
	"github.com/agrivision/agrivision/internal/farm"
	"github.com/agrivision/agrivision/internal/feedback"
)

// FeedbackHandler handles post-harvest feedback endpoints.
type FeedbackHandler struct {
	farms    *farm.Service
	feedback *feedback.Service
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(farms *farm.Service, feedbackService *feedback.Service) *FeedbackHandler {
	return &FeedbackHandler{farms: farms, feedback: feedbackService}
}

// SubmitFeedback handles POST /v1/farms/{farmId}/feedback - record a season
// outcome.
func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	f, err := resolveFarm(h.farms, w, r)
	if err != nil {
		return
	}

	var input models.FeedbackSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	created, err := h.feedback.Submit(r.Context(), GetUserID(r.Context()), f.ID, feedback.SubmitInput{
		ActualYield: input.ActualYield,
		Issues:      input.Issues,
		Rating:      input.Rating,
		Comments:    input.Comments,
	})
	if err != nil {
		writeFeedbackError(w, r, err)
		return
	}

	location := fmt.Sprintf("/v1/farms/%s/feedback/%s", f.ID, created.ID)
	response.Created(w, r, location, feedbackToAPI(created))
}

// ListFeedback handles GET /v1/farms/{farmId}/feedback - the farm's feedback
// history, most recent first.
func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	f, err := resolveFarm(h.farms, w, r)
	if err != nil {
		return
	}

	items, err := h.feedback.ListByFarm(r.Context(), f.ID)
	if err != nil {
		response.InternalError(w, r, "failed to list feedback")
		return
	}

	list := models.FeedbackList{Items: make([]models.Feedback, 0, len(items))}
	for _, fb := range items {
		list.Items = append(list.Items, feedbackToAPI(fb))
	}

	response.JSON(w, r, http.StatusOK, list)
}

// feedbackToAPI converts a domain feedback entry to its API representation.
func feedbackToAPI(fb *feedback.Feedback) models.Feedback {
	issues := fb.Issues
	if issues == nil {
		issues = []string{}
	}
	return models.Feedback{
		ID:          fb.ID,
		ActualYield: fb.ActualYield,
		Issues:      issues,
		Rating:      fb.Rating,
		Comments:    fb.Comments,
		CreatedAt:   models.Timestamp(fb.CreatedAt),
	}
}

// writeFeedbackError maps feedback service errors to problem responses.
func writeFeedbackError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *feedback.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.BadRequest(w, r, "validation failed", validationErr.Errors)
	case errors.Is(err, feedback.ErrNoActiveUser):
		response.Unauthorized(w, r, "authentication required")
	default:
		response.InternalError(w, r, "an unexpected error occurred")
	}
}
