package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agrivision/agrivision/internal/api/middleware"
	"github.com/agrivision/agrivision/internal/api/response"
	"github.com/agrivision/agrivision/internal/farm"
)

// GetUserID retrieves the authenticated user ID from the context.
// This is a convenience wrapper around middleware.GetUserID.
func GetUserID(ctx context.Context) string {
	return middleware.GetUserID(ctx)
}

// resolveFarm loads the farm named by the {farmId} route parameter for the
// authenticated user. On failure it writes the problem response and returns
// the error so handlers can simply bail out.
func resolveFarm(farms *farm.Service, w http.ResponseWriter, r *http.Request) (*farm.Farm, error) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return nil, farm.ErrNoActiveUser
	}

	farmID := chi.URLParam(r, "farmId")
	if farmID == "" {
		response.BadRequest(w, r, "farmId is required", nil)
		return nil, farm.ErrFarmNotFound
	}

	f, err := farms.Resolve(r.Context(), userID, farmID)
	if err != nil {
		if errors.Is(err, farm.ErrFarmNotFound) {
			response.NotFound(w, r, "farm not found")
		} else {
			response.InternalError(w, r, "an unexpected error occurred")
		}
		return nil, err
	}

	return f, nil
}
