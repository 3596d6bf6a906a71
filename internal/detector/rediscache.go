package detector

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Thanatos9404/fakecatcher-plus/internal/domain"
	"github.com/Thanatos9404/fakecatcher-plus/internal/logger"
)

const redisKeyPrefix = "detector:score:"

// RedisCache stores detector scores in Redis so multiple engine instances
// share one cache. Redis failures are logged and treated as misses; a cache
// outage must never fail a detection.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewRedisCache creates a Redis-backed detector cache.
func NewRedisCache(client *redis.Client, ttl time.Duration, log logger.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: log,
	}
}

func (c *RedisCache) key(cacheKey string) string {
	return redisKeyPrefix + cacheKey
}

// Get fetches a cached score. Returns false on miss or on any Redis error.
func (c *RedisCache) Get(ctx context.Context, cacheKey string) (*domain.ComponentScore, bool) {
	key := c.key(cacheKey)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Error("Redis error fetching detector score",
				logger.String("redis_key", key),
				logger.Error(err),
			)
		}
		return nil, false
	}

	var score domain.ComponentScore
	if err := json.Unmarshal(data, &score); err != nil {
		c.logger.Error("Corrupt detector cache entry",
			logger.String("redis_key", key),
			logger.Error(err),
		)
		return nil, false
	}

	return &score, true
}

// Set stores a score with the configured TTL. Errors are logged, not returned.
func (c *RedisCache) Set(ctx context.Context, cacheKey string, score *domain.ComponentScore) {
	if score == nil {
		return
	}
	key := c.key(cacheKey)

	data, err := json.Marshal(score)
	if err != nil {
		c.logger.Error("Marshal detector score for cache",
			logger.String("redis_key", key),
			logger.Error(err),
		)
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Error("Redis error storing detector score",
			logger.String("redis_key", key),
			logger.Duration("ttl", c.ttl),
			logger.Error(err),
		)
	}
}
