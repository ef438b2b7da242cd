package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/eslamalii/user-management-api/internal/logger"
	"github.com/eslamalii/user-management-api/internal/models"
	"github.com/jmoiron/sqlx"
)

// AdminRepository serves the admin listing and statistics queries
type AdminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// GetAllUsers lists users applying the optional filters and pagination.
func (r *AdminRepository) GetAllUsers(ctx context.Context, filter models.AdminUserFilter) ([]models.UserDB, error) {
	query := `
		SELECT id, name, email, password_hash, is_verified, is_admin,
		       login_count, last_login, created_at, updated_at
		FROM users
		WHERE 1=1
	`
	var args []any

	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		query += fmt.Sprintf(" AND name LIKE $%d", len(args))
	}
	if filter.Email != "" {
		args = append(args, "%"+filter.Email+"%")
		query += fmt.Sprintf(" AND email LIKE $%d", len(args))
	}
	if filter.IsVerified != nil {
		args = append(args, *filter.IsVerified)
		query += fmt.Sprintf(" AND is_verified = $%d", len(args))
	}
	if filter.StartDate != "" && filter.EndDate != "" {
		args = append(args, filter.StartDate, filter.EndDate)
		query += fmt.Sprintf(" AND created_at BETWEEN $%d AND $%d", len(args)-1, len(args))
	}

	query += " ORDER BY id"

	if filter.Page > 0 && filter.Limit > 0 {
		args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	users := []models.UserDB{}
	err := r.db.SelectContext(ctx, &users, query, args...)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", len(users),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return users, nil
}

// GetTotalUsers returns the total number of users.
func (r *AdminRepository) GetTotalUsers(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM users`

	var total int64
	err := r.db.GetContext(ctx, &total, query)

	logger.Log.Infow(
		"query", query,
		"result", total,
		"error", err,
	)

	return total, err
}

// GetVerifiedUsers returns the number of verified users.
func (r *AdminRepository) GetVerifiedUsers(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM users WHERE is_verified = TRUE`

	var total int64
	err := r.db.GetContext(ctx, &total, query)

	logger.Log.Infow(
		"query", query,
		"result", total,
		"error", err,
	)

	return total, err
}

// GetTopUsers returns the three users with the highest login count.
func (r *AdminRepository) GetTopUsers(ctx context.Context) ([]models.UserDB, error) {
	const query = `
		SELECT id, name, email, password_hash, is_verified, is_admin,
		       login_count, last_login, created_at, updated_at
		FROM users
		ORDER BY login_count DESC
		LIMIT 3
	`

	users := []models.UserDB{}
	err := r.db.SelectContext(ctx, &users, query)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"result", len(users),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return users, nil
}

// GetInactiveUsers returns users that have never logged in.
func (r *AdminRepository) GetInactiveUsers(ctx context.Context) ([]models.UserDB, error) {
	const query = `
		SELECT id, name, email, password_hash, is_verified, is_admin,
		       login_count, last_login, created_at, updated_at
		FROM users
		WHERE login_count = 0
		ORDER BY id
	`

	users := []models.UserDB{}
	err := r.db.SelectContext(ctx, &users, query)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"result", len(users),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return users, nil
}
