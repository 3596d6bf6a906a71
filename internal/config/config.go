package config

import (
	"time"
)

// Default configuration values.
const (
	defaultServiceName    = "trust-engine"
	defaultServiceVersion = "1.0.0"
	defaultServicePort    = 8085

	defaultDetectorBaseURL  = "https://api-inference.huggingface.co/models"
	defaultDetectorModel    = "Hello-SimpleAI/chatgpt-detector-roberta"
	defaultZeroShotModel    = "facebook/bart-large-mnli"
	defaultDetectorTimeout  = 30 * time.Second
	defaultDetectorAttempts = 3
	defaultBackoffMin       = 4 * time.Second
	defaultBackoffMax       = 10 * time.Second

	defaultCacheBackend    = "memory"
	defaultCacheTTL        = time.Hour
	defaultCacheMaxEntries = 1000

	defaultAIWeight   = 0.7
	defaultRuleWeight = 0.3

	defaultCheckTimeout  = 10 * time.Second
	defaultBatchTimeout  = 30 * time.Second
	defaultMaxConcurrent = 5
	defaultProbeTimeout  = 8 * time.Second
	defaultProbeRate     = 2.0
	defaultProbeBurst    = 4
	defaultProbeAgent    = "trust-engine/1.0 (+verification)"

	defaultContentWeight = 0.30
	defaultCompanyWeight = 0.25
	defaultWebWeight     = 0.20
	defaultSourceWeight  = 0.15
	defaultRedFlagWeight = 0.10

	defaultRedisURL        = "localhost:6379"
	defaultRedisMaxRetries = 3
	defaultRedisTimeout    = 5 * time.Second

	defaultLogLevel  = "info"
	defaultLogFormat = "json"
)

// Config holds all configuration for the trust engine service.
type Config struct {
	Service      ServiceConfig      `yaml:"service"`
	Detector     DetectorConfig     `yaml:"detector"`
	Ensemble     EnsembleConfig     `yaml:"ensemble"`
	Verification VerificationConfig `yaml:"verification"`
	Trust        TrustConfig        `yaml:"trust"`
	Redis        RedisConfig        `yaml:"redis"`
	Logging      LoggingConfig      `yaml:"logging"`
	Auth         AuthConfig         `yaml:"auth"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `env:"TRUST_ENGINE_PORT" yaml:"port"`
	Debug   bool   `env:"APP_DEBUG"         yaml:"debug"`
}

// DetectorConfig holds AI detector upstream configuration.
// When Enabled is false or APIKey is empty the engine runs rule-based only.
type DetectorConfig struct {
	Enabled       bool          `env:"AI_DETECTION_ENABLED" yaml:"enabled"`
	BaseURL       string        `env:"HF_API_URL"           yaml:"base_url"`
	APIKey        string        `env:"HUGGINGFACE_API_KEY"  yaml:"api_key"`
	Model         string        `env:"HF_AI_DETECTOR_MODEL" yaml:"model"`
	FallbackModel string        `yaml:"fallback_model"`
	Timeout       time.Duration `yaml:"timeout"`
	MaxAttempts   int           `yaml:"max_attempts"`
	BackoffMin    time.Duration `yaml:"backoff_min"`
	BackoffMax    time.Duration `yaml:"backoff_max"`
	Cache         CacheConfig   `yaml:"cache"`
}

// CacheConfig holds detector response cache settings.
// Backend is "memory" or "redis".
type CacheConfig struct {
	Enabled    bool          `env:"AI_CACHE_ENABLED" yaml:"enabled"`
	Backend    string        `env:"AI_CACHE_BACKEND" yaml:"backend"`
	TTL        time.Duration `env:"AI_CACHE_TTL"     yaml:"ttl"`
	MaxEntries int           `yaml:"max_entries"`
}

// EnsembleConfig holds weights for combining AI and rule-based scores.
// The two weights must sum to 1.0.
type EnsembleConfig struct {
	AIWeight   float64 `env:"AI_ENSEMBLE_WEIGHT" yaml:"ai_weight"`
	RuleWeight float64 `env:"RULE_BASED_WEIGHT"  yaml:"rule_weight"`
}

// VerificationConfig holds settings for the concurrent check batteries.
type VerificationConfig struct {
	CheckTimeout  time.Duration `yaml:"check_timeout"`
	BatchTimeout  time.Duration `yaml:"batch_timeout"`
	MaxConcurrent int           `env:"VERIFY_CONCURRENCY" yaml:"max_concurrent"`
	Probe         ProbeConfig   `yaml:"probe"`
}

// ProbeConfig holds outbound HTTP probe settings.
type ProbeConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	RateLimit float64       `yaml:"rate_limit"`
	Burst     int           `yaml:"burst"`
}

// TrustConfig holds component weights for the final trust score.
// The five weights must sum to 1.0.
type TrustConfig struct {
	ContentWeight float64 `yaml:"content_weight"`
	CompanyWeight float64 `yaml:"company_weight"`
	WebWeight     float64 `yaml:"web_weight"`
	SourceWeight  float64 `yaml:"source_weight"`
	RedFlagWeight float64 `yaml:"red_flag_weight"`
}

// RedisConfig holds Redis configuration for the detector cache backend.
type RedisConfig struct {
	URL        string        `env:"REDIS_URL"      yaml:"url"`
	Password   string        `env:"REDIS_PASSWORD" yaml:"password"`
	Database   int           `yaml:"database"`
	MaxRetries int           `yaml:"max_retries"`
	Timeout    time.Duration `yaml:"timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
	Output string `yaml:"output"`
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	JWTSecret string `env:"AUTH_JWT_SECRET" yaml:"jwt_secret"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	cfg, err := loadWithDefaults[Config](path, setDefaults)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDetectorDefaults(&cfg.Detector)
	setEnsembleDefaults(&cfg.Ensemble)
	setVerificationDefaults(&cfg.Verification)
	setTrustDefaults(&cfg.Trust)
	setRedisDefaults(&cfg.Redis)
	setLoggingDefaults(&cfg.Logging)
	// Auth defaults are handled by env tags - no explicit defaults needed
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
}

func setDetectorDefaults(d *DetectorConfig) {
	if d.BaseURL == "" {
		d.BaseURL = defaultDetectorBaseURL
	}
	if d.Model == "" {
		d.Model = defaultDetectorModel
	}
	if d.FallbackModel == "" {
		d.FallbackModel = defaultZeroShotModel
	}
	if d.Timeout == 0 {
		d.Timeout = defaultDetectorTimeout
	}
	if d.MaxAttempts == 0 {
		d.MaxAttempts = defaultDetectorAttempts
	}
	if d.BackoffMin == 0 {
		d.BackoffMin = defaultBackoffMin
	}
	if d.BackoffMax == 0 {
		d.BackoffMax = defaultBackoffMax
	}
	if d.Cache.Backend == "" {
		d.Cache.Backend = defaultCacheBackend
	}
	if d.Cache.TTL == 0 {
		d.Cache.TTL = defaultCacheTTL
	}
	if d.Cache.MaxEntries == 0 {
		d.Cache.MaxEntries = defaultCacheMaxEntries
	}
}

func setEnsembleDefaults(e *EnsembleConfig) {
	if e.AIWeight == 0 && e.RuleWeight == 0 {
		e.AIWeight = defaultAIWeight
		e.RuleWeight = defaultRuleWeight
	}
}

func setVerificationDefaults(v *VerificationConfig) {
	if v.CheckTimeout == 0 {
		v.CheckTimeout = defaultCheckTimeout
	}
	if v.BatchTimeout == 0 {
		v.BatchTimeout = defaultBatchTimeout
	}
	if v.MaxConcurrent == 0 {
		v.MaxConcurrent = defaultMaxConcurrent
	}
	if v.Probe.Timeout == 0 {
		v.Probe.Timeout = defaultProbeTimeout
	}
	if v.Probe.UserAgent == "" {
		v.Probe.UserAgent = defaultProbeAgent
	}
	if v.Probe.RateLimit == 0 {
		v.Probe.RateLimit = defaultProbeRate
	}
	if v.Probe.Burst == 0 {
		v.Probe.Burst = defaultProbeBurst
	}
}

func setTrustDefaults(t *TrustConfig) {
	if t.ContentWeight == 0 && t.CompanyWeight == 0 && t.WebWeight == 0 &&
		t.SourceWeight == 0 && t.RedFlagWeight == 0 {
		t.ContentWeight = defaultContentWeight
		t.CompanyWeight = defaultCompanyWeight
		t.WebWeight = defaultWebWeight
		t.SourceWeight = defaultSourceWeight
		t.RedFlagWeight = defaultRedFlagWeight
	}
}

func setRedisDefaults(r *RedisConfig) {
	if r.URL == "" {
		r.URL = defaultRedisURL
	}
	if r.MaxRetries == 0 {
		r.MaxRetries = defaultRedisMaxRetries
	}
	if r.Timeout == 0 {
		r.Timeout = defaultRedisTimeout
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}
