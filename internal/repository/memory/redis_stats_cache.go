package memory

import (
	"context"
	"encoding/json"
	"time"

	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStatsCache shares stats between instances. Redis errors count as a
// miss so analytics keep working when Redis is down.
type RedisStatsCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.ILogger
}

func NewRedisStatsCache(rdb *redis.Client, ttl time.Duration, log logger.ILogger) *RedisStatsCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisStatsCache{rdb: rdb, ttl: ttl, logger: log}
}

func (c *RedisStatsCache) Get(ctx context.Context, userId uuid.UUID) (*entity.UsageStats, bool) {
	raw, err := c.rdb.Get(ctx, statsKey(userId)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("CACHE", "Redis get failed", map[string]interface{}{"error": err.Error()})
		}
		return nil, false
	}

	var stats entity.UsageStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

func (c *RedisStatsCache) Set(ctx context.Context, stats *entity.UsageStats) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, statsKey(stats.UserId), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("CACHE", "Redis set failed", map[string]interface{}{"error": err.Error()})
	}
}

func (c *RedisStatsCache) Invalidate(ctx context.Context, userId uuid.UUID) {
	if err := c.rdb.Del(ctx, statsKey(userId)).Err(); err != nil {
		c.logger.Warn("CACHE", "Redis delete failed", map[string]interface{}{"error": err.Error()})
	}
}
