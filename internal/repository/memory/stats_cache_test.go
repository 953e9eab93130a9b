package memory

import (
	"context"
	"testing"
	"time"

	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStatsCache(t *testing.T) {
	ctx := context.Background()
	c := NewLocalStatsCache(time.Minute)
	id := uuid.New()

	_, ok := c.Get(ctx, id)
	assert.False(t, ok)

	stats := &entity.UsageStats{UserId: id, DocumentsGenerated: 6}
	c.Set(ctx, stats)
	stats.DocumentsGenerated = 99

	got, ok := c.Get(ctx, id)
	require.True(t, ok)
	assert.Equal(t, 6, got.DocumentsGenerated)

	got.DocumentsGenerated = 1
	again, _ := c.Get(ctx, id)
	assert.Equal(t, 6, again.DocumentsGenerated)

	c.Invalidate(ctx, id)
	_, ok = c.Get(ctx, id)
	assert.False(t, ok)
}

func TestRedisStatsCacheUnavailableIsMiss(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	c := NewRedisStatsCache(rdb, time.Minute, logger.NewNopLogger())
	id := uuid.New()

	c.Set(context.Background(), &entity.UsageStats{UserId: id})
	_, ok := c.Get(context.Background(), id)
	assert.False(t, ok)
	c.Invalidate(context.Background(), id)
}
