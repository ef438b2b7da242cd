package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/eslamalii/user-management-api/internal/logger"
)

// Tokener defines the minimal interface needed by the auth middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (int64, bool, error)
}

type claimsKey struct{}

// claims carries the authenticated subject through the request context
type claims struct {
	UserID  int64
	IsAdmin bool
}

// AuthMiddleware returns a middleware that validates the bearer JWT and
// stores its claims in the request context
func AuthMiddleware(tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			userID, isAdmin, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx = context.WithValue(ctx, claimsKey{}, claims{UserID: userID, IsAdmin: isAdmin})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly returns a middleware that rejects non-admin subjects.
// Must run after AuthMiddleware.
func AdminOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, ok := r.Context().Value(claimsKey{}).(claims)
			if !ok || !c.IsAdmin {
				logger.Log.Errorw("admin access denied", "user_id", c.UserID)
				writeAuthError(w, http.StatusForbidden, "Forbidden: Admins only")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	c, ok := ctx.Value(claimsKey{}).(claims)
	return c.UserID, ok
}

// IsAdminFromContext reports whether the authenticated user is an admin.
func IsAdminFromContext(ctx context.Context) bool {
	c, _ := ctx.Value(claimsKey{}).(claims)
	return c.IsAdmin
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
