package services

import (
	"context"

	"github.com/eslamalii/user-management-api/internal/logger"
	"github.com/eslamalii/user-management-api/internal/models"
)

// UserService handles profile reads and updates.
type UserService struct {
	reader UserReader
	writer UserWriter
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader, writer UserWriter) *UserService {
	return &UserService{
		reader: reader,
		writer: writer,
	}
}

// GetByID returns the user with the password hash stripped.
func (svc *UserService) GetByID(ctx context.Context, id int64) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "user_id", id)
		return nil, ErrUserDoesNotExist
	}

	return user.Sanitized(), nil
}

// Update changes the name and/or email of a user. Nil fields are left untouched.
func (svc *UserService) Update(ctx context.Context, id int64, name, email *string) error {
	if err := svc.writer.Update(ctx, id, name, email); err != nil {
		logger.Log.Errorw("failed to update user", "err", err)
		return err
	}
	return nil
}

// Delete removes a user by id. Hard delete.
func (svc *UserService) Delete(ctx context.Context, id int64) error {
	if err := svc.writer.Delete(ctx, id); err != nil {
		logger.Log.Errorw("failed to delete user", "err", err)
		return err
	}
	return nil
}
