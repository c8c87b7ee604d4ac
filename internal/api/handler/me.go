package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agrivision/agrivision/internal/api/models"
	"github.com/agrivision/agrivision/internal/api/response"
	"github.com/agrivision/agrivision/internal/user"
)

// MeHandler handles the authenticated user's profile endpoints.
type MeHandler struct {
	users *user.Service
}

// NewMeHandler creates a new MeHandler.
func NewMeHandler(users *user.Service) *MeHandler {
	return &MeHandler{users: users}
}

// GetMe handles GET /v1/me - the authenticated user's profile.
func (h *MeHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), GetUserID(r.Context()))
	if err != nil {
		writeUserError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, userToAPI(u))
}

// UpdateMe handles PUT /v1/me - update the profile.
func (h *MeHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var input models.MeUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	u, err := h.users.UpdateProfile(r.Context(), GetUserID(r.Context()), user.UpdateProfileInput{
		Name:     input.Name,
		Language: input.Language,
		Location: input.Location,
	})
	if err != nil {
		writeUserError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, userToAPI(u))
}

// userToAPI converts a domain user to its API representation.
func userToAPI(u *user.User) models.Me {
	return models.Me{
		ID:        u.ID,
		Name:      u.Name,
		Phone:     u.Phone,
		Language:  u.Language,
		Location:  u.Location,
		CreatedAt: models.Timestamp(u.CreatedAt),
		UpdatedAt: models.Timestamp(u.UpdatedAt),
	}
}

// writeUserError maps user service errors to problem responses.
func writeUserError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *user.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.BadRequest(w, r, "validation failed", validationErr.Errors)
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(w, r, "user not found")
	default:
		response.InternalError(w, r, "an unexpected error occurred")
	}
}
