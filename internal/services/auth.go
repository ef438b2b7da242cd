package services

import (
	"context"
	"errors"
	"time"

	"github.com/eslamalii/user-management-api/internal/logger"
	"github.com/eslamalii/user-management-api/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/segmentio/kafka-go"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserDoesNotExist   = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotVerified    = errors.New("user is not verified")
)

// pgUniqueViolation is the Postgres error code for unique constraint violations.
const pgUniqueViolation = "23505"

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, name, email, passwordHash string, isAdmin bool) (int64, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetVerified(ctx context.Context, id int64) error
	IncrementLoginStats(ctx context.Context, id int64) error
	Update(ctx context.Context, id int64, name, email *string) error
	Delete(ctx context.Context, id int64) error
}

// JWTGenerator defines an interface for generating login JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID int64, isAdmin bool) (string, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// AuthService handles registration, login and verification.
type AuthService struct {
	reader      UserReader
	writer      UserWriter
	jwt         JWTGenerator
	kafkaWriter KafkaWriter
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, jwt JWTGenerator, kafkaWriter KafkaWriter) *AuthService {
	return &AuthService{
		reader:      reader,
		writer:      writer,
		jwt:         jwt,
		kafkaWriter: kafkaWriter,
	}
}

// Register registers a new user and returns the stored record with its assigned id.
func (svc *AuthService) Register(ctx context.Context, name, email, password string, isAdmin bool) (*models.UserDB, error) {
	existing, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Errorw("user already exists", "email", email)
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	id, err := svc.writer.Save(ctx, name, email, string(hashedPassword), isAdmin)
	if err != nil {
		// A concurrent registration can slip past the existence check;
		// the unique index on email is the authority.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			logger.Log.Errorw("user already exists", "email", email)
			return nil, ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	user := &models.UserDB{
		ID:      id,
		Name:    name,
		Email:   email,
		IsAdmin: isAdmin,
	}

	svc.publishEvent(ctx, models.UserEvent{
		Type:       models.EventUserRegistered,
		UserID:     id,
		Email:      email,
		OccurredAt: time.Now().UTC(),
	})

	return user, nil
}

// Login authenticates a user and returns a JWT token plus the user record
// with the password hash stripped.
func (svc *AuthService) Login(ctx context.Context, email, password string) (string, *models.UserDB, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", nil, err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "email", email)
		return "", nil, ErrUserDoesNotExist
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "email", email)
		return "", nil, ErrInvalidCredentials
	}

	// Checked only after the password verifies, so a failed login never
	// leaks verification state.
	if !user.IsVerified {
		logger.Log.Errorw("user is not verified", "email", email)
		return "", nil, ErrUserNotVerified
	}

	if err := svc.writer.IncrementLoginStats(ctx, user.ID); err != nil {
		logger.Log.Errorw("failed to update login stats", "err", err)
		return "", nil, err
	}

	token, err := svc.jwt.Generate(ctx, user.ID, user.IsAdmin)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", nil, err
	}

	safe := user.Sanitized()
	safe.LoginCount++
	now := time.Now()
	safe.LastLogin = &now

	return token, safe, nil
}

// Verify marks the user as verified and returns the verification flag
// as it was before the update.
func (svc *AuthService) Verify(ctx context.Context, email string) (bool, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return false, err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "email", email)
		return false, ErrUserDoesNotExist
	}

	if err := svc.writer.SetVerified(ctx, user.ID); err != nil {
		logger.Log.Errorw("failed to set verified", "err", err)
		return false, err
	}

	return user.IsVerified, nil
}

// publishEvent publishes a user lifecycle event to Kafka.
func (svc *AuthService) publishEvent(ctx context.Context, event models.UserEvent) {
	if svc.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event", event.Type)
		return
	}

	publish(ctx, svc.kafkaWriter, event)
}
