package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eslamalii/user-management-api/internal/jwt"
	"github.com/stretchr/testify/assert"
)

func newTestTokener(t *testing.T) *jwt.JWT {
	t.Helper()
	return jwt.New("test-secret", time.Hour, time.Minute)
}

func TestAuthMiddleware(t *testing.T) {
	tokener := newTestTokener(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, int64(7), userID)
		assert.False(t, IsAdminFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	})

	handler := AuthMiddleware(tokener)(next)

	t.Run("valid token", func(t *testing.T) {
		token, err := tokener.Generate(context.Background(), 7, false)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/users/7", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/7", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/7", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := jwt.New("other-secret", time.Hour, time.Minute)
		token, err := other.Generate(context.Background(), 7, false)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/users/7", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := jwt.New("test-secret", -time.Minute, time.Minute)
		token, err := expired.Generate(context.Background(), 7, false)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/users/7", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAdminOnly(t *testing.T) {
	tokener := newTestTokener(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := AuthMiddleware(tokener)(AdminOnly()(next))

	t.Run("admin passes", func(t *testing.T) {
		token, err := tokener.Generate(context.Background(), 1, true)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("non-admin is rejected", func(t *testing.T) {
		token, err := tokener.Generate(context.Background(), 7, false)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("no claims at all", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		rr := httptest.NewRecorder()

		AdminOnly()(next).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
