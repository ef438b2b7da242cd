package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eslamalii/user-management-api/internal/logger"
	"github.com/eslamalii/user-management-api/internal/services"
)

// Verifier defines the interface that the verification service must implement.
type Verifier interface {
	Verify(ctx context.Context, email string) (bool, error)
}

// VerifyResponse reports the verification flag as it was before the update
// swagger:model VerifyResponse
type VerifyResponse struct {
	// Verification status prior to this call
	// example: false
	IsVerified bool `json:"isVerified"`
}

// NewVerifyHandler returns an HTTP handler for the verification flow.
// @Summary Verify a user account
// @Description Marks the account with the given email as verified. Idempotent. The response carries the verification flag read before the update.
// @Tags auth
// @Produce json
// @Param email query string true "Email of the account to verify"
// @Success 200 {object} handlers.VerifyResponse "Verification status"
// @Failure 400 {object} handlers.ErrorResponse "Missing email query parameter"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /auth/verify [get]
func NewVerifyHandler(svc Verifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		if email == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Invalid email query parameter",
			})
			return
		}

		isVerified, err := svc.Verify(r.Context(), email)
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
		json.NewEncoder(w).Encode(VerifyResponse{
			IsVerified: isVerified,
		})
	}
}
