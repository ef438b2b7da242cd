package services

import (
	"context"
	"errors"
	"time"

	"github.com/eslamalii/user-management-api/internal/logger"
	"github.com/eslamalii/user-management-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidResetToken is returned when a reset token fails signature
// verification or has expired.
var ErrInvalidResetToken = errors.New("invalid or expired token")

// ResetTokener defines an interface for issuing and verifying password reset tokens.
type ResetTokener interface {
	GenerateResetToken(ctx context.Context, userID int64) (string, error)
	GetResetUserID(ctx context.Context, tokenString string) (int64, error)
}

// PasswordResetService handles reset-token issuance and password replacement.
type PasswordResetService struct {
	reader      UserReader
	writer      UserWriter
	tokener     ResetTokener
	kafkaWriter KafkaWriter
}

// NewPasswordResetService creates a new PasswordResetService instance.
func NewPasswordResetService(reader UserReader, writer UserWriter, tokener ResetTokener, kafkaWriter KafkaWriter) *PasswordResetService {
	return &PasswordResetService{
		reader:      reader,
		writer:      writer,
		tokener:     tokener,
		kafkaWriter: kafkaWriter,
	}
}

// Request issues a short-lived reset token for the user with the given email.
// Issuing a new token does not invalidate previously issued ones.
func (svc *PasswordResetService) Request(ctx context.Context, email string) (string, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "email", email)
		return "", ErrUserDoesNotExist
	}

	token, err := svc.tokener.GenerateResetToken(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to generate reset token", "err", err)
		return "", err
	}

	return token, nil
}

// Reset verifies the token and overwrites the stored password hash.
// Signature failure and expiry fold into ErrInvalidResetToken.
func (svc *PasswordResetService) Reset(ctx context.Context, token, newPassword string) error {
	userID, err := svc.tokener.GetResetUserID(ctx, token)
	if err != nil {
		logger.Log.Errorw("invalid reset token", "err", err)
		return ErrInvalidResetToken
	}

	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "user_id", userID)
		return ErrUserDoesNotExist
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	if err := svc.writer.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
		logger.Log.Errorw("failed to update password", "err", err)
		return err
	}

	svc.publishEvent(ctx, models.UserEvent{
		Type:       models.EventUserPasswordReset,
		UserID:     user.ID,
		Email:      user.Email,
		OccurredAt: time.Now().UTC(),
	})

	return nil
}

// publishEvent publishes a user lifecycle event to Kafka.
func (svc *PasswordResetService) publishEvent(ctx context.Context, event models.UserEvent) {
	if svc.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event", event.Type)
		return
	}

	publish(ctx, svc.kafkaWriter, event)
}
