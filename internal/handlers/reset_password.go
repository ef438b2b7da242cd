package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eslamalii/user-management-api/internal/logger"
	"github.com/eslamalii/user-management-api/internal/services"
)

// Resetter defines the interface for replacing a password via a reset token.
type Resetter interface {
	Reset(ctx context.Context, token, newPassword string) error
}

// ResetPasswordRequest represents the JSON body for resetting a password
// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	// Signed reset token issued by /password-reset/request
	// required: true
	// example: RESET_TOKEN
	Token string `json:"token"`

	// New password
	// required: true
	// example: newsecret123
	NewPassword string `json:"newPassword"`
}

// NewResetPasswordHandler returns an HTTP handler that replaces the password.
// @Summary Reset a password
// @Description Verifies the reset token and overwrites the stored password hash. Previously issued login tokens remain valid until their own expiry.
// @Tags password-reset
// @Accept json
// @Produce json
// @Param resetPassword body handlers.ResetPasswordRequest true "Password reset request"
// @Success 200 {object} handlers.MessageResponse "Password replaced"
// @Failure 400 {object} handlers.ErrorResponse "Invalid or expired token"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /password-reset/reset [post]
func NewResetPasswordHandler(svc Resetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetPasswordRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		err := svc.Reset(r.Context(), req.Token, req.NewPassword)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidResetToken):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "Invalid or expired token",
				})
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
		json.NewEncoder(w).Encode(MessageResponse{
			Message: "Password has been reset successfully",
		})
	}
}
