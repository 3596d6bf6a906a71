//nolint:testpackage // exercises the redis key prefix directly
package detector

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thanatos9404/fakecatcher-plus/internal/domain"
	"github.com/Thanatos9404/fakecatcher-plus/internal/logger"
)

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCache(client, ttl, logger.NewNop()), mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestRedisCache(t, time.Hour)

	_, ok := cache.Get(ctx, "missing")
	assert.False(t, ok)

	cache.Set(ctx, "key", sampleScore(85))

	got, ok := cache.Get(ctx, "key")
	require.True(t, ok)
	assert.InDelta(t, 85.0, got.Probability, 0.001)
	assert.Equal(t, domain.MethodDetector, got.Method)
	require.NotNil(t, got.Model)
	assert.Equal(t, "test/ai-detector", got.Model.Model)
}

func TestRedisCacheExpiry(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestRedisCache(t, time.Minute)

	cache.Set(ctx, "key", sampleScore(50))
	_, ok := cache.Get(ctx, "key")
	require.True(t, ok)

	mr.FastForward(2 * time.Minute)

	_, ok = cache.Get(ctx, "key")
	assert.False(t, ok)
}

func TestRedisCacheCorruptEntryIsAMiss(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestRedisCache(t, time.Hour)

	require.NoError(t, mr.Set(redisKeyPrefix+"bad", "{not json"))

	_, ok := cache.Get(ctx, "bad")
	assert.False(t, ok)
}

func TestRedisCacheIgnoresNilScore(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestRedisCache(t, time.Hour)

	cache.Set(ctx, "key", nil)

	assert.False(t, mr.Exists(redisKeyPrefix+"key"))
}

func TestRedisCacheSurvivesServerOutage(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestRedisCache(t, time.Hour)

	cache.Set(ctx, "key", sampleScore(60))
	mr.Close()

	// Redis being down is a miss, never an error.
	_, ok := cache.Get(ctx, "key")
	assert.False(t, ok)

	cache.Set(ctx, "other", sampleScore(70))
}
