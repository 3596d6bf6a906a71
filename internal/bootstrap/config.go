package bootstrap

import (
	"flag"
	"fmt"

	"github.com/Thanatos9404/fakecatcher-plus/internal/config"
	"github.com/Thanatos9404/fakecatcher-plus/internal/logger"
)

// LoadConfig loads configuration. Uses the -config flag with the
// CONFIG_PATH environment variable as fallback.
func LoadConfig() (*config.Config, error) {
	configPath := flag.String("config", config.GetConfigPath("config.yml"), "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// CreateLogger creates the service logger from configuration.
func CreateLogger(cfg *config.Config) (logger.Logger, error) {
	outputs := []string{"stdout"}
	if cfg.Logging.Output != "" && cfg.Logging.Output != "stdout" {
		outputs = []string{cfg.Logging.Output}
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Service.Debug || cfg.Logging.Format == "console",
		OutputPaths: outputs,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(
		logger.String("service", cfg.Service.Name),
		logger.String("version", cfg.Service.Version),
	), nil
}
