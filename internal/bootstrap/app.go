// Package bootstrap handles application initialization and lifecycle
// management for the trust engine.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/Thanatos9404/fakecatcher-plus/internal/logger"
	"github.com/Thanatos9404/fakecatcher-plus/internal/profiling"
	"github.com/Thanatos9404/fakecatcher-plus/internal/telemetry"
)

// Start initializes the trust engine and runs it until shutdown.
func Start() error {
	// Phase 0: opt-in pprof server, before anything else so startup is covered.
	profiling.StartPprof()

	// Phase 1: configuration and logging.
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := CreateLogger(cfg)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	continuous, profErr := profiling.StartContinuous(cfg.Service.Name)
	if profErr != nil {
		log.Warn("Continuous profiling unavailable", logger.Error(profErr))
	}
	defer func() { _ = continuous.Stop() }()

	// Phase 2: metrics.
	tel := telemetry.NewProvider()

	// Phase 3: detector cache, Redis-backed when configured and reachable.
	cache, redisClient := SetupCache(cfg, log)
	defer func() {
		if redisClient == nil {
			return
		}
		if closeErr := redisClient.Close(); closeErr != nil {
			log.Error("Failed to close Redis client", logger.Error(closeErr))
		}
	}()

	// Phase 4: scoring pipeline.
	engine := BuildEngine(cfg, cache, tel, log)

	// Phase 5: HTTP server.
	server := SetupServer(cfg, engine, tel, redisClient, log)

	log.Info("Starting trust engine",
		logger.String("service", cfg.Service.Name),
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port),
	)

	if runErr := server.RunWithGracefulShutdown(context.Background()); runErr != nil {
		log.Error("Server error", logger.Error(runErr))
		return fmt.Errorf("server error: %w", runErr)
	}

	log.Info("Server exited")
	return nil
}
