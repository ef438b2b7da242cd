package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/eslamalii/user-management-api/internal/logger"
	"github.com/eslamalii/user-management-api/internal/models"
	"github.com/jmoiron/sqlx"
)

// UserReadRepository handles user lookups
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByEmail returns the user with the given email, or nil if none exists.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `
		SELECT id, name, email, password_hash, is_verified, is_admin,
		       login_count, last_login, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, email)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{email},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByID returns the user with the given id, or nil if none exists.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.UserDB, error) {
	const query = `
		SELECT id, name, email, password_hash, is_verified, is_admin,
		       login_count, last_login, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, id)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// UserWriteRepository handles user write operations
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewUserWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// executor returns the in-context transaction when one is present,
// otherwise the pooled connection.
func (r *UserWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new user and returns the assigned id.
func (r *UserWriteRepository) Save(ctx context.Context, name, email, passwordHash string, isAdmin bool) (int64, error) {
	const query = `
		INSERT INTO users (name, email, password_hash, is_verified, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, FALSE, $4, NOW(), NOW())
		RETURNING id
	`
	args := []any{name, email, passwordHash, isAdmin}

	var id int64
	err := sqlx.GetContext(ctx, r.executor(ctx), &id, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{name, email, isAdmin},
		"result", id,
		"error", err,
	)

	return id, err
}

// UpdatePassword overwrites the stored password hash for a user.
func (r *UserWriteRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	const query = `
		UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1
	`

	_, err := r.executor(ctx).ExecContext(ctx, query, id, passwordHash)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	return err
}

// SetVerified marks a user as verified. Idempotent.
func (r *UserWriteRepository) SetVerified(ctx context.Context, id int64) error {
	const query = `
		UPDATE users SET is_verified = TRUE, updated_at = NOW() WHERE id = $1
	`

	_, err := r.executor(ctx).ExecContext(ctx, query, id)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	return err
}

// IncrementLoginStats bumps the login counter and stamps the last login
// in a single UPDATE so concurrent logins both apply.
func (r *UserWriteRepository) IncrementLoginStats(ctx context.Context, id int64) error {
	const query = `
		UPDATE users SET login_count = login_count + 1, last_login = NOW() WHERE id = $1
	`

	_, err := r.executor(ctx).ExecContext(ctx, query, id)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	return err
}

// Update changes the name and/or email of a user. Nil fields are left untouched.
func (r *UserWriteRepository) Update(ctx context.Context, id int64, name, email *string) error {
	const query = `
		UPDATE users
		SET name = COALESCE($2, name),
		    email = COALESCE($3, email),
		    updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.executor(ctx).ExecContext(ctx, query, id, name, email)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id, name, email},
		"error", err,
	)

	return err
}

// Delete removes a user. Hard delete, no tombstone.
func (r *UserWriteRepository) Delete(ctx context.Context, id int64) error {
	const query = `
		DELETE FROM users WHERE id = $1
	`

	_, err := r.executor(ctx).ExecContext(ctx, query, id)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	return err
}
