package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eslamalii/user-management-api/internal/logger"
	"github.com/eslamalii/user-management-api/internal/services"
)

// ResetRequester defines the interface for issuing password reset tokens.
type ResetRequester interface {
	Request(ctx context.Context, email string) (string, error)
}

// ResetRequestRequest represents the JSON body for requesting a reset token
// swagger:model ResetRequestRequest
type ResetRequestRequest struct {
	// Email of the account
	// required: true
	// example: john@example.com
	Email string `json:"email"`
}

// ResetRequestResponse carries the issued reset token
// swagger:model ResetRequestResponse
type ResetRequestResponse struct {
	// Success message
	// example: Password reset token generated
	Message string `json:"message"`

	// Signed reset token
	// example: RESET_TOKEN
	Token string `json:"token"`
}

// NewResetRequestHandler returns an HTTP handler that issues reset tokens.
// @Summary Request a password reset token
// @Description Issues a short-lived signed token for the account with the given email. Previously issued tokens stay valid until their own expiry.
// @Tags password-reset
// @Accept json
// @Produce json
// @Param resetRequest body handlers.ResetRequestRequest true "Reset token request"
// @Success 200 {object} handlers.ResetRequestResponse "Reset token issued"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /password-reset/request [post]
func NewResetRequestHandler(svc ResetRequester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetRequestRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		token, err := svc.Request(r.Context(), req.Email)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserDoesNotExist):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "User not found",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ResetRequestResponse{
			Message: "Password reset token generated",
			Token:   token,
		})
	}
}
