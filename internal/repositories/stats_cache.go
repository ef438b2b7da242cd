package repositories

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/eslamalii/user-management-api/internal/logger"
	"github.com/redis/go-redis/v9"
)

// StatsCacheRepository caches admin user counters in Redis with a TTL
type StatsCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached counters
}

// NewStatsCacheRepository creates a new repository instance with the given TTL
func NewStatsCacheRepository(client *redis.Client, expiration time.Duration) *StatsCacheRepository {
	return &StatsCacheRepository{
		client: client,
		exp:    expiration,
	}
}

// GetCount fetches a cached counter by stat name
func (r *StatsCacheRepository) GetCount(ctx context.Context, stat string) (int64, error) {
	key := fmt.Sprintf("admin_stats:%s", stat)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"result", val,
			"error", err,
		)
		if err == redis.Nil {
			return 0, fmt.Errorf("stat %s not found in cache", stat)
		}
		return 0, err
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"value", val,
			"error", err,
		)
		return 0, err
	}

	logger.Log.Infow(
		"key", key,
		"result", count,
		"error", nil,
	)

	return count, nil
}

// SetCount caches a counter value with expiration
func (r *StatsCacheRepository) SetCount(ctx context.Context, stat string, count int64) error {
	key := fmt.Sprintf("admin_stats:%s", stat)
	err := r.client.Set(ctx, key, strconv.FormatInt(count, 10), r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"value", count,
		"error", err,
	)

	return err
}
