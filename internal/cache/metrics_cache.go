package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"dailydiet/internal/model"
)

// MetricsCache stores per-user metric summaries under a version counter.
// Bumping the version retires every summary stored for older versions.
type MetricsCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewMetricsCache(client *redisv9.Client, ttl time.Duration) *MetricsCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &MetricsCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *MetricsCache) Version(ctx context.Context, userID string) (int64, error) {
	version, err := c.client.Get(ctx, c.versionKey(userID)).Int64()
	if errors.Is(err, redisv9.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get metrics version failed: %w", err)
	}
	return version, nil
}

func (c *MetricsCache) Get(ctx context.Context, userID string, version int64) (*model.MealMetrics, bool, error) {
	raw, err := c.client.Get(ctx, c.metricsKey(userID, version)).Bytes()
	if errors.Is(err, redisv9.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get metrics failed: %w", err)
	}

	var metrics model.MealMetrics
	if err := json.Unmarshal(raw, &metrics); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached metrics failed: %w", err)
	}
	return &metrics, true, nil
}

func (c *MetricsCache) Set(ctx context.Context, userID string, version int64, metrics model.MealMetrics) error {
	payload, err := json.Marshal(metrics)
	if err != nil {
		return fmt.Errorf("marshal metrics cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.metricsKey(userID, version), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set metrics failed: %w", err)
	}
	return nil
}

func (c *MetricsCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Incr(ctx, c.versionKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis bump metrics version failed: %w", err)
	}
	return nil
}

func (c *MetricsCache) versionKey(userID string) string {
	return fmt.Sprintf("meals:metrics:version:%s", userID)
}

func (c *MetricsCache) metricsKey(userID string, version int64) string {
	return fmt.Sprintf("meals:metrics:%s:%d", userID, version)
}
