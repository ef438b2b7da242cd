package repositories

import (
	"context"

	"github.com/eslamalii/user-management-api/internal/logger"
	"github.com/eslamalii/user-management-api/internal/models"
)

// NoopUserReadRepository is an inert stand-in for UserReadRepository,
// selected at startup when the service runs without a store
// (APP_STORAGE=none). Every lookup reports an absent user.
type NoopUserReadRepository struct{}

func NewNoopUserReadRepository() *NoopUserReadRepository {
	return &NoopUserReadRepository{}
}

func (r *NoopUserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	logger.Log.Debugw("noop store lookup", "email", email)
	return nil, nil
}

func (r *NoopUserReadRepository) GetByID(ctx context.Context, id int64) (*models.UserDB, error) {
	logger.Log.Debugw("noop store lookup", "id", id)
	return nil, nil
}

// NoopUserWriteRepository is the write-side counterpart. Writes succeed
// without persisting anything.
type NoopUserWriteRepository struct{}

func NewNoopUserWriteRepository() *NoopUserWriteRepository {
	return &NoopUserWriteRepository{}
}

func (r *NoopUserWriteRepository) Save(ctx context.Context, name, email, passwordHash string, isAdmin bool) (int64, error) {
	logger.Log.Debugw("noop store save", "email", email)
	return 0, nil
}

func (r *NoopUserWriteRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return nil
}

func (r *NoopUserWriteRepository) SetVerified(ctx context.Context, id int64) error {
	return nil
}

func (r *NoopUserWriteRepository) IncrementLoginStats(ctx context.Context, id int64) error {
	return nil
}

func (r *NoopUserWriteRepository) Update(ctx context.Context, id int64, name, email *string) error {
	return nil
}

func (r *NoopUserWriteRepository) Delete(ctx context.Context, id int64) error {
	return nil
}
