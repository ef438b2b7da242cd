package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/eslamalii/user-management-api/internal/logger"
	"github.com/go-chi/chi/v5"
)

// UserUpdater defines the interface for updating a user profile.
type UserUpdater interface {
	Update(ctx context.Context, id int64, name, email *string) error
}

// UpdateUserRequest represents the JSON body for updating a profile.
// Omitted fields are left untouched.
// swagger:model UpdateUserRequest
type UpdateUserRequest struct {
	// New display name
	// example: John Doe
	Name *string `json:"name"`

	// New email, must stay globally unique
	// example: john@example.com
	Email *string `json:"email"`
}

// NewUpdateUserHandler returns an HTTP handler that updates a user profile.
// @Summary Update a user
// @Description Changes the name and/or email of a user.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Param updateRequest body handlers.UpdateUserRequest true "Fields to update"
// @Success 200 {object} handlers.MessageResponse "User updated"
// @Failure 400 {object} handlers.ErrorResponse "Invalid id or request body"
// @Security BearerAuth
// @Router /users/{id} [put]
func NewUpdateUserHandler(svc UserUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid user id",
			})
			return
		}

		var req UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		if err := svc.Update(r.Context(), id, req.Name, req.Email); err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(MessageResponse{
			Message: "User updated successfully",
		})
	}
}
