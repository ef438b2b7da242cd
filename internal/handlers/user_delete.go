package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/eslamalii/user-management-api/internal/logger"
	"github.com/go-chi/chi/v5"
)

// UserDeleter defines the interface for deleting a user.
type UserDeleter interface {
	Delete(ctx context.Context, id int64) error
}

// NewDeleteUserHandler returns an HTTP handler that deletes a user.
// @Summary Delete a user
// @Description Hard-deletes the user record by id.
// @Tags users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} handlers.MessageResponse "User deleted"
// @Failure 400 {object} handlers.ErrorResponse "Invalid id"
// @Security BearerAuth
// @Router /users/{id} [delete]
func NewDeleteUserHandler(svc UserDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid user id",
			})
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(MessageResponse{
			Message: "User deleted successfully",
		})
	}
}
