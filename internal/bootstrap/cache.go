package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/Thanatos9404/fakecatcher-plus/internal/config"
	"github.com/Thanatos9404/fakecatcher-plus/internal/detector"
	"github.com/Thanatos9404/fakecatcher-plus/internal/logger"
)

// SetupCache selects the detector cache backend. When Redis is configured
// but unreachable the engine falls back to the in-memory cache instead of
// failing startup. The returned client is nil unless Redis is in use.
func SetupCache(cfg *config.Config, log logger.Logger) (detector.Cache, *redis.Client) {
	if !cfg.Detector.Cache.Enabled {
		return nil, nil
	}

	if cfg.Detector.Cache.Backend == "redis" {
		client, err := newRedisClient(cfg.Redis)
		if err != nil {
			log.Warn("Redis not available, using in-memory detector cache",
				logger.String("url", cfg.Redis.URL),
				logger.Error(err),
			)
		} else {
			log.Info("Detector cache using Redis",
				logger.String("url", cfg.Redis.URL),
				logger.Duration("ttl", cfg.Detector.Cache.TTL),
			)
			return detector.NewRedisCache(client, cfg.Detector.Cache.TTL, log), client
		}
	}

	return detector.NewMemoryCache(cfg.Detector.Cache.TTL, cfg.Detector.Cache.MaxEntries), nil
}

// newRedisClient connects and verifies the connection before returning.
func newRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// redisOptions accepts both redis:// URLs and plain host:port addresses.
func redisOptions(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("redis url is empty")
	}

	var opts *redis.Options
	if strings.Contains(cfg.URL, "://") {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: cfg.URL}
	}

	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.Database != 0 {
		opts.DB = cfg.Database
	}
	opts.MaxRetries = cfg.MaxRetries
	return opts, nil
}
