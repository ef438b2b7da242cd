package services

import (
	"context"

	"github.com/eslamalii/user-management-api/internal/logger"
	"github.com/eslamalii/user-management-api/internal/models"
)

// Cached stat names.
const (
	statTotalUsers    = "total_users"
	statVerifiedUsers = "verified_users"
)

// AdminReader defines the admin listing and statistics queries.
type AdminReader interface {
	GetAllUsers(ctx context.Context, filter models.AdminUserFilter) ([]models.UserDB, error)
	GetTotalUsers(ctx context.Context) (int64, error)
	GetVerifiedUsers(ctx context.Context) (int64, error)
	GetTopUsers(ctx context.Context) ([]models.UserDB, error)
	GetInactiveUsers(ctx context.Context) ([]models.UserDB, error)
}

// StatsCache caches counter statistics.
type StatsCache interface {
	GetCount(ctx context.Context, stat string) (int64, error)
	SetCount(ctx context.Context, stat string, count int64) error
}

// AdminService serves the admin user listing and statistics.
type AdminService struct {
	repo  AdminReader
	cache StatsCache
}

// NewAdminService creates a new AdminService instance.
func NewAdminService(repo AdminReader, cache StatsCache) *AdminService {
	return &AdminService{
		repo:  repo,
		cache: cache,
	}
}

// GetAllUsers lists users applying the given filters, hashes stripped.
func (svc *AdminService) GetAllUsers(ctx context.Context, filter models.AdminUserFilter) ([]models.UserDB, error) {
	users, err := svc.repo.GetAllUsers(ctx, filter)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}

	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// GetTotalUsers returns the total user count, served from cache when fresh.
func (svc *AdminService) GetTotalUsers(ctx context.Context) (int64, error) {
	return svc.cachedCount(ctx, statTotalUsers, svc.repo.GetTotalUsers)
}

// GetVerifiedUsers returns the verified user count, served from cache when fresh.
func (svc *AdminService) GetVerifiedUsers(ctx context.Context) (int64, error) {
	return svc.cachedCount(ctx, statVerifiedUsers, svc.repo.GetVerifiedUsers)
}

// GetTopUsers returns the three users with the highest login count.
func (svc *AdminService) GetTopUsers(ctx context.Context) ([]models.UserDB, error) {
	users, err := svc.repo.GetTopUsers(ctx)
	if err != nil {
		logger.Log.Errorw("failed to get top users", "err", err)
		return nil, err
	}

	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// GetInactiveUsers returns users that have never logged in.
func (svc *AdminService) GetInactiveUsers(ctx context.Context) ([]models.UserDB, error) {
	users, err := svc.repo.GetInactiveUsers(ctx)
	if err != nil {
		logger.Log.Errorw("failed to get inactive users", "err", err)
		return nil, err
	}

	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// cachedCount implements cache-aside for a counter stat. Cache failures
// fall through to the store.
func (svc *AdminService) cachedCount(ctx context.Context, stat string, load func(ctx context.Context) (int64, error)) (int64, error) {
	if svc.cache != nil {
		if count, err := svc.cache.GetCount(ctx, stat); err == nil {
			return count, nil
		}
	}

	count, err := load(ctx)
	if err != nil {
		logger.Log.Errorw("failed to load stat", "stat", stat, "err", err)
		return 0, err
	}

	if svc.cache != nil {
		if err := svc.cache.SetCount(ctx, stat, count); err != nil {
			logger.Log.Warnw("failed to cache stat", "stat", stat, "err", err)
		}
	}

	return count, nil
}
