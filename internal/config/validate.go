package config

import (
	"fmt"
	"math"
)

// weightTolerance is the allowed drift when checking that weight sets sum to 1.0.
const weightTolerance = 1e-6

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidatePort checks if a port number is valid.
func ValidatePort(field string, port int) error {
	if port < 1 || port > 65535 {
		return &ValidationError{Field: field, Message: "must be between 1 and 65535"}
	}
	return nil
}

// ValidateLogLevel checks if a log level is valid.
func ValidateLogLevel(level string) error {
	switch level {
	case "debug", "info", "warn", "warning", "error", "fatal":
		return nil
	default:
		return &ValidationError{Field: "logging.level", Message: "must be one of: debug, info, warn, error, fatal"}
	}
}

// Validate checks the loaded configuration for internal consistency.
func (c *Config) Validate() error {
	if err := ValidatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if err := ValidateLogLevel(c.Logging.Level); err != nil {
		return err
	}
	if err := c.Detector.validate(); err != nil {
		return err
	}
	if err := c.Ensemble.validate(); err != nil {
		return err
	}
	if err := c.Verification.validate(); err != nil {
		return err
	}
	return c.Trust.validate()
}

func (d *DetectorConfig) validate() error {
	if d.MaxAttempts < 1 {
		return &ValidationError{Field: "detector.max_attempts", Message: "must be at least 1"}
	}
	if d.BackoffMin > d.BackoffMax {
		return &ValidationError{Field: "detector.backoff_min", Message: "must not exceed backoff_max"}
	}
	switch d.Cache.Backend {
	case "memory", "redis":
	default:
		return &ValidationError{Field: "detector.cache.backend", Message: "must be one of: memory, redis"}
	}
	if d.Cache.MaxEntries < 1 {
		return &ValidationError{Field: "detector.cache.max_entries", Message: "must be at least 1"}
	}
	return nil
}

func (e *EnsembleConfig) validate() error {
	if e.AIWeight < 0 || e.RuleWeight < 0 {
		return &ValidationError{Field: "ensemble", Message: "weights must not be negative"}
	}
	if math.Abs(e.AIWeight+e.RuleWeight-1.0) > weightTolerance {
		return &ValidationError{Field: "ensemble", Message: "ai_weight and rule_weight must sum to 1.0"}
	}
	return nil
}

func (v *VerificationConfig) validate() error {
	if v.MaxConcurrent < 1 {
		return &ValidationError{Field: "verification.max_concurrent", Message: "must be at least 1"}
	}
	if v.CheckTimeout > v.BatchTimeout {
		return &ValidationError{Field: "verification.check_timeout", Message: "must not exceed batch_timeout"}
	}
	return nil
}

func (t *TrustConfig) validate() error {
	weights := []float64{t.ContentWeight, t.CompanyWeight, t.WebWeight, t.SourceWeight, t.RedFlagWeight}
	sum := 0.0
	for _, w := range weights {
		if w < 0 {
			return &ValidationError{Field: "trust", Message: "weights must not be negative"}
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return &ValidationError{Field: "trust", Message: "component weights must sum to 1.0"}
	}
	return nil
}
