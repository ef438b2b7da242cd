package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWT provides methods to generate and validate JWT tokens.
type JWT struct {
	SecretKey string        // Secret key for signing tokens
	AuthExp   time.Duration // Expiration for login tokens
	ResetExp  time.Duration // Expiration for password reset tokens
}

// New creates a new JWT instance
func New(secretKey string, authExp, resetExp time.Duration) *JWT {
	return &JWT{
		SecretKey: secretKey,
		AuthExp:   authExp,
		ResetExp:  resetExp,
	}
}

// Generate creates a login JWT token carrying the user id and admin flag
func (j *JWT) Generate(ctx context.Context, userID int64, isAdmin bool) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"is_admin": isAdmin,
		"exp":      time.Now().Add(j.AuthExp).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.SecretKey))
}

// GenerateResetToken creates a short-lived token carrying only the user id,
// used for the password reset flow
func (j *JWT) GenerateResetToken(ctx context.Context, userID int64) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(j.ResetExp).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.SecretKey))
}

// GetClaims parses the token string and returns the userID and admin flag if valid
func (j *JWT) GetClaims(ctx context.Context, tokenString string) (int64, bool, error) {
	claims, err := j.parse(tokenString)
	if err != nil {
		return 0, false, err
	}

	userID, err := userIDFromClaims(claims)
	if err != nil {
		return 0, false, err
	}

	isAdmin, _ := claims["is_admin"].(bool)
	return userID, isAdmin, nil
}

// GetResetUserID parses a password reset token and returns the userID if valid
func (j *JWT) GetResetUserID(ctx context.Context, tokenString string) (int64, error) {
	claims, err := j.parse(tokenString)
	if err != nil {
		return 0, err
	}
	return userIDFromClaims(claims)
}

func (j *JWT) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func userIDFromClaims(claims jwt.MapClaims) (int64, error) {
	// Numeric claims come back as float64 after JSON decoding
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("user_id not found in token")
	}
	return int64(id), nil
}

// GetTokenFromRequest extracts the token string from the Authorization header
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}
