package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/eslamalii/user-management-api/internal/logger"
	"github.com/eslamalii/user-management-api/internal/models"
)

// AdminStats defines the interface for the admin statistics queries.
type AdminStats interface {
	GetTotalUsers(ctx context.Context) (int64, error)
	GetVerifiedUsers(ctx context.Context) (int64, error)
	GetTopUsers(ctx context.Context) ([]models.UserDB, error)
	GetInactiveUsers(ctx context.Context) ([]models.UserDB, error)
}

// TotalUsersResponse carries the total user count
// swagger:model TotalUsersResponse
type TotalUsersResponse struct {
	// Total number of users
	// example: 42
	TotalUsers int64 `json:"totalUsers"`
}

// VerifiedUsersResponse carries the verified user count
// swagger:model VerifiedUsersResponse
type VerifiedUsersResponse struct {
	// Number of verified users
	// example: 40
	VerifiedUsers int64 `json:"verifiedUsers"`
}

// NewTotalUsersHandler returns an HTTP handler for the total user count.
// @Summary Total user count
// @Tags admin
// @Produce json
// @Success 200 {object} handlers.TotalUsersResponse
// @Failure 403 {object} handlers.ErrorResponse "Admins only"
// @Security BearerAuth
// @Router /admin/stats/total-users [get]
func NewTotalUsersHandler(svc AdminStats) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total, err := svc.GetTotalUsers(r.Context())
		if err != nil {
			writeStatsError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(TotalUsersResponse{TotalUsers: total})
	}
}

// NewVerifiedUsersHandler returns an HTTP handler for the verified user count.
// @Summary Verified user count
// @Tags admin
// @Produce json
// @Success 200 {object} handlers.VerifiedUsersResponse
// @Failure 403 {object} handlers.ErrorResponse "Admins only"
// @Security BearerAuth
// @Router /admin/stats/verified-users [get]
func NewVerifiedUsersHandler(svc AdminStats) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total, err := svc.GetVerifiedUsers(r.Context())
		if err != nil {
			writeStatsError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(VerifiedUsersResponse{VerifiedUsers: total})
	}
}

// NewTopUsersHandler returns an HTTP handler for the top-3 users by login count.
// @Summary Top users by login count
// @Tags admin
// @Produce json
// @Success 200 {array} models.UserDB
// @Failure 403 {object} handlers.ErrorResponse "Admins only"
// @Security BearerAuth
// @Router /admin/stats/top-users [get]
func NewTopUsersHandler(svc AdminStats) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.GetTopUsers(r.Context())
		if err != nil {
			writeStatsError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(users)
	}
}

// NewInactiveUsersHandler returns an HTTP handler for users that never logged in.
// @Summary Users that never logged in
// @Tags admin
// @Produce json
// @Success 200 {array} models.UserDB
// @Failure 403 {object} handlers.ErrorResponse "Admins only"
// @Security BearerAuth
// @Router /admin/stats/inactive-users [get]
func NewInactiveUsersHandler(svc AdminStats) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.GetInactiveUsers(r.Context())
		if err != nil {
			writeStatsError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(users)
	}
}

func writeStatsError(w http.ResponseWriter, err error) {
	logger.Log.Errorw("internal server error", "err", err)
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: "Internal server error",
	})
}
