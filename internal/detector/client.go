package detector

import (
	"context"
	"encoding/json"
	"math"
	"unicode/utf8"

	"github.com/Thanatos9404/fakecatcher-plus/internal/circuitbreaker"
	"github.com/Thanatos9404/fakecatcher-plus/internal/config"
	"github.com/Thanatos9404/fakecatcher-plus/internal/domain"
	"github.com/Thanatos9404/fakecatcher-plus/internal/logger"
	"github.com/Thanatos9404/fakecatcher-plus/internal/retry"
	"github.com/Thanatos9404/fakecatcher-plus/internal/telemetry"
)

// Fallback reasons for detections that never reached the upstream API.
const (
	FallbackDisabled = "AI detection disabled in configuration"
	FallbackNoAPIKey = "Hugging Face API key not configured"
)

const (
	taskAIDetection = "ai_detection"
	taskZeroShot    = "zero_shot_classification"

	// Input samples are truncated before inference: the specialized detector
	// handles longer inputs than the zero-shot fallback.
	detectorSampleChars = 2000
	zeroShotSampleChars = 1000

	// An API key shorter than this cannot be a real token
	minAPIKeyLength = 10

	backoffMultiplier = 2.0
)

// zeroShotCandidateLabels are the classes offered to the zero-shot fallback.
var zeroShotCandidateLabels = []string{"human_written", "ai_generated", "computer_generated"}

// Client calls the AI detection models with caching, bounded retries, and a
// circuit breaker. Detect never returns an error: when no model can be
// reached the result is a fallback Detection and the caller scores with
// rules alone.
type Client struct {
	transport *Transport
	cache     Cache
	breaker   *circuitbreaker.Breaker
	config    config.DetectorConfig
	telemetry *telemetry.Provider
	logger    logger.Logger
}

// New creates a detector client. cache may be nil to disable caching.
func New(cfg config.DetectorConfig, cache Cache, tel *telemetry.Provider, log logger.Logger) *Client {
	breakerCfg := circuitbreaker.DefaultConfig()
	breakerCfg.OnStateChange = func(from, to circuitbreaker.State) {
		log.Warn("Detector circuit breaker state changed",
			logger.String("from", from.String()),
			logger.String("to", to.String()),
		)
		tel.SetBreakerState(int(to))
	}

	return &Client{
		transport: NewTransport(cfg.BaseURL, cfg.APIKey, cfg.Timeout),
		cache:     cache,
		breaker:   circuitbreaker.New(breakerCfg),
		config:    cfg,
		telemetry: tel,
		logger:    log,
	}
}

// Detect scores the text with the primary detector model, falling back to
// zero-shot classification and finally to a no-score fallback Detection.
func (c *Client) Detect(ctx context.Context, text string) domain.Detection {
	if !c.config.Enabled {
		c.telemetry.RecordDetectorFallback(ctx, "disabled")
		return domain.NewFallback(FallbackDisabled)
	}
	if c.config.APIKey == "" {
		c.telemetry.RecordDetectorFallback(ctx, "no_api_key")
		return domain.NewFallback(FallbackNoAPIKey)
	}

	cacheKey := CacheKey(text, c.config.Model, taskAIDetection)
	if c.cache != nil {
		if score, ok := c.cache.Get(ctx, cacheKey); ok {
			c.telemetry.RecordCacheHit(ctx)
			c.logger.Debug("Returning cached detector score",
				logger.String("cache_key", cacheKey),
			)
			return domain.Detection{Score: score}
		}
		c.telemetry.RecordCacheMiss(ctx)
	}

	score, err := c.tryDetectorModel(ctx, text)
	if err != nil {
		c.logger.Warn("Primary detector model failed, trying zero-shot fallback",
			logger.String("model", c.config.Model),
			logger.Error(err),
		)
		score, err = c.tryZeroShotModel(ctx, text)
	}
	if err != nil {
		c.telemetry.RecordDetectorFallback(ctx, "upstream_failed")
		c.logger.Warn("All detection models failed, falling back to rule-based scoring",
			logger.Error(err),
		)
		return domain.NewFallback(err.Error())
	}

	if c.cache != nil {
		c.cache.Set(ctx, cacheKey, score)
	}
	return domain.Detection{Score: score}
}

// tryDetectorModel calls the specialized AI detection model.
func (c *Client) tryDetectorModel(ctx context.Context, text string) (*domain.ComponentScore, error) {
	sample := truncate(text, detectorSampleChars)
	req := &DetectRequest{
		Inputs:  sample,
		Options: DetectOptions{WaitForModel: true, UseCache: true},
	}

	raw, err := c.callWithRetry(ctx, c.config.Model, req)
	if err != nil {
		c.telemetry.RecordDetectorRequest(ctx, c.config.Model, "error")
		return nil, err
	}
	c.telemetry.RecordDetectorRequest(ctx, c.config.Model, "success")

	norm, err := parseDetectorResponse(raw)
	if err != nil {
		return nil, err
	}

	return c.buildScore(norm, domain.MethodDetector, c.config.Model, taskAIDetection, len(sample)), nil
}

// tryZeroShotModel classifies the text against fixed candidate labels.
func (c *Client) tryZeroShotModel(ctx context.Context, text string) (*domain.ComponentScore, error) {
	sample := truncate(text, zeroShotSampleChars)
	req := &DetectRequest{
		Inputs: sample,
		Parameters: &DetectParameters{
			CandidateLabels: zeroShotCandidateLabels,
			MultiLabel:      false,
		},
		Options: DetectOptions{WaitForModel: true, UseCache: true},
	}

	raw, err := c.callWithRetry(ctx, c.config.FallbackModel, req)
	if err != nil {
		c.telemetry.RecordDetectorRequest(ctx, c.config.FallbackModel, "error")
		return nil, err
	}
	c.telemetry.RecordDetectorRequest(ctx, c.config.FallbackModel, "success")

	norm, err := parseZeroShotResponse(raw)
	if err != nil {
		return nil, err
	}

	return c.buildScore(norm, domain.MethodZeroShot, c.config.FallbackModel, taskZeroShot, len(sample)), nil
}

// callWithRetry wraps one logical upstream call in the circuit breaker, with
// transient failures retried inside a single breaker execution.
func (c *Client) callWithRetry(ctx context.Context, model string, req *DetectRequest) (json.RawMessage, error) {
	retryCfg := retry.Config{
		MaxAttempts:  c.config.MaxAttempts,
		InitialDelay: c.config.BackoffMin,
		MaxDelay:     c.config.BackoffMax,
		Multiplier:   backoffMultiplier,
		Jitter:       true,
		IsRetryable:  domain.IsTransient,
	}

	var raw json.RawMessage
	err := c.breaker.Execute(ctx, func() error {
		attempt := 0
		return retry.Retry(ctx, retryCfg, func() error {
			attempt++
			if attempt > 1 {
				c.telemetry.RecordDetectorRetry(ctx)
			}
			var callErr error
			raw, callErr = c.transport.DoDetect(ctx, model, req)
			return callErr
		})
	})
	return raw, err
}

func (c *Client) buildScore(norm *normalized, method, model, task string, analyzedChars int) *domain.ComponentScore {
	probability := round2(domain.Clamp(norm.Probability))
	return &domain.ComponentScore{
		Method:      method,
		Probability: probability,
		Confidence:  confidenceLabel(norm.Confidence),
		Model: &domain.ModelDetail{
			Model:         model,
			Task:          task,
			RawLabel:      norm.RawLabel,
			RawScore:      norm.RawScore,
			Category:      categorize(probability),
			AnalyzedChars: analyzedChars,
		},
	}
}

// HealthStatus reports detector upstream health for the health endpoint.
type HealthStatus struct {
	Status           string `json:"status"`
	APIAccessible    bool   `json:"api_accessible"`
	PrimaryModel     string `json:"primary_model"`
	FallbackModel    string `json:"fallback_model"`
	CacheEnabled     bool   `json:"cache_enabled"`
	APIKeyConfigured bool   `json:"api_key_configured"`
	BreakerState     string `json:"breaker_state"`
	LatencyMs        int64  `json:"latency_ms"`
	Error            string `json:"error,omitempty"`
}

// Health probes the primary model with a minimal payload.
func (c *Client) Health(ctx context.Context) HealthStatus {
	status := HealthStatus{
		PrimaryModel:     c.config.Model,
		FallbackModel:    c.config.FallbackModel,
		CacheEnabled:     c.cache != nil,
		APIKeyConfigured: len(c.config.APIKey) > minAPIKeyLength,
		BreakerState:     c.breaker.State().String(),
	}

	if !c.config.Enabled {
		status.Status = "disabled"
		return status
	}

	reachable, latencyMs, err := c.transport.DoHealth(ctx, c.config.Model)
	status.LatencyMs = latencyMs
	if err != nil {
		status.Status = "unhealthy"
		status.Error = err.Error()
		return status
	}

	status.Status = "healthy"
	status.APIAccessible = reachable
	return status
}

// truncate cuts s to at most limit bytes without splitting a UTF-8 rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
