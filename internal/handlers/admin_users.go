package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/eslamalii/user-management-api/internal/logger"
	"github.com/eslamalii/user-management-api/internal/models"
)

// AdminLister defines the interface for the filtered admin user listing.
type AdminLister interface {
	GetAllUsers(ctx context.Context, filter models.AdminUserFilter) ([]models.UserDB, error)
}

// NewAdminUsersHandler returns an HTTP handler for the admin user listing.
// @Summary List users
// @Description Lists users with optional name/email substring filters, verification filter, creation date range and pagination.
// @Tags admin
// @Produce json
// @Param name query string false "Substring match on name"
// @Param email query string false "Substring match on email"
// @Param isVerified query bool false "Filter on verification flag"
// @Param start_date query string false "created_at lower bound (YYYY-MM-DD)"
// @Param end_date query string false "created_at upper bound (YYYY-MM-DD)"
// @Param page query int false "1-based page number"
// @Param limit query int false "Page size"
// @Success 200 {array} models.UserDB "Matching users"
// @Failure 403 {object} handlers.ErrorResponse "Admins only"
// @Security BearerAuth
// @Router /admin/users [get]
func NewAdminUsersHandler(svc AdminLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		filter := models.AdminUserFilter{
			Name:      q.Get("name"),
			Email:     q.Get("email"),
			StartDate: q.Get("start_date"),
			EndDate:   q.Get("end_date"),
		}

		if v := q.Get("isVerified"); v != "" {
			verified := v == "true"
			filter.IsVerified = &verified
		}
		if page, err := strconv.Atoi(q.Get("page")); err == nil {
			filter.Page = page
		}
		if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
			filter.Limit = limit
		}

		users, err := svc.GetAllUsers(r.Context(), filter)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(users)
	}
}
