package bootstrap

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Thanatos9404/fakecatcher-plus/internal/api"
	"github.com/Thanatos9404/fakecatcher-plus/internal/config"
	"github.com/Thanatos9404/fakecatcher-plus/internal/httpserver"
	"github.com/Thanatos9404/fakecatcher-plus/internal/logger"
	"github.com/Thanatos9404/fakecatcher-plus/internal/telemetry"
)

const redisPingTimeout = 2 * time.Second

// SetupServer wires the API handler into the HTTP server, exposing
// Prometheus metrics and, when Redis backs the cache, a Redis health check.
func SetupServer(cfg *config.Config, engine *Engine, tel *telemetry.Provider, redisClient *redis.Client, log logger.Logger) *httpserver.Server {
	handler := api.NewHandler(engine.Pipeline, engine.Detector, log)

	opts := api.ServerOptions{MetricsHandler: tel.Handler()}
	if redisClient != nil {
		opts.HealthChecks = map[string]httpserver.HealthChecker{
			"redis": httpserver.RedisHealthChecker(func() error {
				ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
				defer cancel()
				return redisClient.Ping(ctx).Err()
			}),
		}
	}

	return api.NewServer(handler, cfg, opts, log)
}
