package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, "service:\n  name: trust-engine\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, defaultServicePort, cfg.Service.Port)
	assert.Equal(t, defaultDetectorBaseURL, cfg.Detector.BaseURL)
	assert.Equal(t, defaultDetectorModel, cfg.Detector.Model)
	assert.Equal(t, defaultZeroShotModel, cfg.Detector.FallbackModel)
	assert.Equal(t, defaultDetectorAttempts, cfg.Detector.MaxAttempts)
	assert.Equal(t, "memory", cfg.Detector.Cache.Backend)
	assert.InDelta(t, 0.7, cfg.Ensemble.AIWeight, 1e-9)
	assert.InDelta(t, 0.3, cfg.Ensemble.RuleWeight, 1e-9)
	assert.InDelta(t, 0.30, cfg.Trust.ContentWeight, 1e-9)
	assert.InDelta(t, 0.10, cfg.Trust.RedFlagWeight, 1e-9)
	assert.Equal(t, defaultMaxConcurrent, cfg.Verification.MaxConcurrent)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadYAMLValues(t *testing.T) {
	path := writeConfigFile(t, `
service:
  port: 9000
detector:
  enabled: true
  model: custom/detector
  timeout: 15s
  cache:
    backend: redis
    ttl: 30m
ensemble:
  ai_weight: 0.6
  rule_weight: 0.4
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Service.Port)
	assert.True(t, cfg.Detector.Enabled)
	assert.Equal(t, "custom/detector", cfg.Detector.Model)
	assert.Equal(t, 15*time.Second, cfg.Detector.Timeout)
	assert.Equal(t, "redis", cfg.Detector.Cache.Backend)
	assert.Equal(t, 30*time.Minute, cfg.Detector.Cache.TTL)
	assert.InDelta(t, 0.6, cfg.Ensemble.AIWeight, 1e-9)
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	path := writeConfigFile(t, `
service:
  port: 9000
detector:
  api_key: from-yaml
`)

	t.Setenv("TRUST_ENGINE_PORT", "9100")
	t.Setenv("HUGGINGFACE_API_KEY", "from-env")
	t.Setenv("AI_DETECTION_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Service.Port)
	assert.Equal(t, "from-env", cfg.Detector.APIKey)
	assert.True(t, cfg.Detector.Enabled)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidateRejectsBadWeights(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "ensemble weights do not sum to one",
			yaml: "ensemble:\n  ai_weight: 0.8\n  rule_weight: 0.3\n",
		},
		{
			name: "negative trust weight",
			yaml: "trust:\n  content_weight: -0.1\n  company_weight: 0.45\n  web_weight: 0.3\n  source_weight: 0.25\n  red_flag_weight: 0.1\n",
		},
		{
			name: "trust weights do not sum to one",
			yaml: "trust:\n  content_weight: 0.5\n  company_weight: 0.5\n  web_weight: 0.5\n  source_weight: 0.5\n  red_flag_weight: 0.5\n",
		},
		{
			name: "unknown cache backend",
			yaml: "detector:\n  cache:\n    backend: memcached\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.yaml)
			_, err := Load(path)
			if err == nil {
				t.Errorf("expected validation error for %q", tt.name)
			}
		})
	}
}

func TestValidatePort(t *testing.T) {
	if err := ValidatePort("service.port", 8085); err != nil {
		t.Errorf("unexpected error for valid port: %v", err)
	}
	if err := ValidatePort("service.port", 0); err == nil {
		t.Error("expected error for port 0")
	}
	if err := ValidatePort("service.port", 70000); err == nil {
		t.Error("expected error for port 70000")
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	if got := GetConfigPath("config.yml"); got != "config.yml" {
		t.Errorf("expected default path, got %q", got)
	}

	t.Setenv("CONFIG_PATH", "/etc/trust/config.yml")
	if got := GetConfigPath("config.yml"); got != "/etc/trust/config.yml" {
		t.Errorf("expected env path, got %q", got)
	}
}
