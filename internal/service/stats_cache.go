package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const statsVersionKey = "triage:stats:version"

// StatsCache keeps aggregate stats responses in Redis for a short TTL so the
// dashboards do not hammer Postgres. Writers bump a version key instead of
// scanning for stale entries; old versions simply expire.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewStatsCache creates the cache. A nil client disables caching entirely.
func NewStatsCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *StatsCache {
	return &StatsCache{client: client, ttl: ttl, logger: logger}
}

// Get loads a cached value into dest, reporting whether it was present.
func (c *StatsCache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	fullKey, err := c.versionedKey(ctx, key)
	if err != nil {
		return false
	}
	raw, err := c.client.Get(ctx, fullKey).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("corrupt stats cache entry", zap.String("key", fullKey), zap.Error(err))
		return false
	}
	return true
}

// Set stores a value under the current cache version.
func (c *StatsCache) Set(ctx context.Context, key string, value any) {
	if c == nil || c.client == nil {
		return
	}
	fullKey, err := c.versionedKey(ctx, key)
	if err != nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, fullKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("stats cache write failed", zap.String("key", fullKey), zap.Error(err))
	}
}

// Invalidate bumps the cache version, orphaning all cached stats at once.
func (c *StatsCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Incr(ctx, statsVersionKey).Err(); err != nil {
		c.logger.Warn("stats cache invalidation failed", zap.Error(err))
	}
}

func (c *StatsCache) versionedKey(ctx context.Context, key string) (string, error) {
	version, err := c.client.Get(ctx, statsVersionKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("triage:stats:v%d:%s", version, key), nil
}
