package memory

import (
	"context"
	"time"

	"funeral-docs-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// StatsCache holds computed usage stats per user until they are invalidated
// by a new metric or expire.
type StatsCache interface {
	Get(ctx context.Context, userId uuid.UUID) (*entity.UsageStats, bool)
	Set(ctx context.Context, stats *entity.UsageStats)
	Invalidate(ctx context.Context, userId uuid.UUID)
}

type LocalStatsCache struct {
	cache *cache.Cache
}

func NewLocalStatsCache(ttl time.Duration) *LocalStatsCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &LocalStatsCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func statsKey(userId uuid.UUID) string {
	return "usage:stats:" + userId.String()
}

func (c *LocalStatsCache) Get(_ context.Context, userId uuid.UUID) (*entity.UsageStats, bool) {
	if x, found := c.cache.Get(statsKey(userId)); found {
		stats := *x.(*entity.UsageStats)
		return &stats, true
	}
	return nil, false
}

func (c *LocalStatsCache) Set(_ context.Context, stats *entity.UsageStats) {
	copied := *stats
	c.cache.Set(statsKey(stats.UserId), &copied, cache.DefaultExpiration)
}

func (c *LocalStatsCache) Invalidate(_ context.Context, userId uuid.UUID) {
	c.cache.Delete(statsKey(userId))
}
