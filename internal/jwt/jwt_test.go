package jwt

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWT_GenerateAndGetClaims(t *testing.T) {
	j := New("test-secret", time.Minute, time.Minute)
	ctx := context.Background()

	token, err := j.Generate(ctx, 42, true)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, isAdmin, err := j.GetClaims(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.True(t, isAdmin)
}

func TestJWT_GenerateNonAdmin(t *testing.T) {
	j := New("test-secret", time.Minute, time.Minute)
	ctx := context.Background()

	token, err := j.Generate(ctx, 7, false)
	assert.NoError(t, err)

	userID, isAdmin, err := j.GetClaims(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), userID)
	assert.False(t, isAdmin)
}

func TestJWT_ResetTokenRoundTrip(t *testing.T) {
	j := New("test-secret", time.Hour, time.Minute)
	ctx := context.Background()

	token, err := j.GenerateResetToken(ctx, 13)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := j.GetResetUserID(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, int64(13), userID)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := New("test-secret", -time.Minute, -time.Minute) // already expired
	ctx := context.Background()

	token, err := j.Generate(ctx, 1, false)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	_, _, err = j.GetClaims(ctx, token)
	assert.Error(t, err)
}

func TestJWT_ExpiredResetToken(t *testing.T) {
	j := New("test-secret", time.Hour, -time.Minute)
	ctx := context.Background()

	token, err := j.GenerateResetToken(ctx, 1)
	assert.NoError(t, err)

	_, err = j.GetResetUserID(ctx, token)
	assert.Error(t, err)
}

func TestJWT_InvalidToken(t *testing.T) {
	j := New("secret", time.Minute, time.Minute)
	ctx := context.Background()

	// Totally invalid string
	_, _, err := j.GetClaims(ctx, "invalid.token.string")
	assert.Error(t, err)

	_, err = j.GetResetUserID(ctx, "invalid.token.string")
	assert.Error(t, err)
}

func TestJWT_WrongSecret(t *testing.T) {
	// Create token with one secret
	j1 := New("secret1", time.Minute, time.Minute)
	j2 := New("secret2", time.Minute, time.Minute)
	ctx := context.Background()

	token, err := j1.Generate(ctx, 5, false)
	assert.NoError(t, err)

	_, _, err = j2.GetClaims(ctx, token)
	assert.Error(t, err)
}

func TestJWT_GetTokenFromRequest(t *testing.T) {
	j := New("secret", time.Minute, time.Minute)
	ctx := context.Background()

	tests := []struct {
		name          string
		header        string
		expectedToken string
		expectError   bool
	}{
		{"ValidBearer", "Bearer mytoken123", "mytoken123", false},
		{"LowercaseBearer", "bearer mytoken123", "mytoken123", false},
		{"NoHeader", "", "", true},
		{"InvalidFormat", "Token mytoken123", "", true},
		{"TooManyParts", "Bearer a b c", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			token, err := j.GetTokenFromRequest(ctx, req)
			if tt.expectError {
				assert.Error(t, err)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedToken, token)
			}
		})
	}
}
