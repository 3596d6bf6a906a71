// Package telemetry provides OpenTelemetry instrumentation for the trust engine.
// It exports Prometheus metrics and provides tracing capabilities.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "trust-engine"

// Metrics holds all trust engine Prometheus metrics
type Metrics struct {
	// Analysis metrics
	AnalysesTotal    *prometheus.CounterVec
	AnalysesFailed   *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec

	// Detector upstream metrics
	DetectorRequests  *prometheus.CounterVec
	DetectorRetries   prometheus.Counter
	DetectorFallbacks *prometheus.CounterVec
	CacheHits         prometheus.Counter
	CacheMisses       prometheus.Counter
	BreakerState      prometheus.Gauge

	// Ensemble metrics
	EnsembleMethod  *prometheus.CounterVec
	ConsensusTotal  *prometheus.CounterVec
	ConfidenceDelta prometheus.Histogram

	// Verification metrics
	ChecksTotal   *prometheus.CounterVec
	CheckDuration *prometheus.HistogramVec
	BatchDuration *prometheus.HistogramVec

	// Trust verdict metrics
	VerdictTier   *prometheus.CounterVec
	TrustScore    prometheus.Histogram
	RedFlagsFound prometheus.Histogram
}

// Provider wraps telemetry providers
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics
func NewProvider() *Provider {
	metrics := initMetrics()
	tracer := otel.Tracer(serviceName)

	return &Provider{
		Tracer:  tracer,
		Metrics: metrics,
	}
}

// Handler returns the Prometheus HTTP handler for /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initAnalysisMetrics(m)
	initDetectorMetrics(m)
	initEnsembleMetrics(m)
	initVerificationMetrics(m)
	initVerdictMetrics(m)
	return m
}

func initAnalysisMetrics(m *Metrics) {
	m.AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trust_engine_analyses_total",
		Help: "Total analyses completed by kind (text, document, company, web)",
	}, []string{"kind"})

	m.AnalysesFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trust_engine_analyses_failed_total",
		Help: "Total analyses that failed",
	}, []string{"kind", "error_code"})

	m.AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trust_engine_analysis_duration_seconds",
		Help:    "Time to complete a single analysis",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
	}, []string{"kind"})
}

func initDetectorMetrics(m *Metrics) {
	m.DetectorRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trust_engine_detector_requests_total",
		Help: "Total detector upstream requests by model and outcome",
	}, []string{"model", "outcome"})

	m.DetectorRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trust_engine_detector_retries_total",
		Help: "Total detector request retries",
	})

	m.DetectorFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trust_engine_detector_fallbacks_total",
		Help: "Total detections that fell back to rule-based scoring",
	}, []string{"reason"})

	m.CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trust_engine_detector_cache_hits_total",
		Help: "Total detector cache hits",
	})

	m.CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trust_engine_detector_cache_misses_total",
		Help: "Total detector cache misses",
	})

	m.BreakerState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "trust_engine_detector_breaker_state",
		Help: "Detector circuit breaker state (0=closed, 1=open, 2=half-open)",
	})
}

func initEnsembleMetrics(m *Metrics) {
	m.EnsembleMethod = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trust_engine_ensemble_method_total",
		Help: "Total ensemble combinations by method (ai_enhanced_ensemble, rule_based_only)",
	}, []string{"method"})

	m.ConsensusTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trust_engine_ensemble_consensus_total",
		Help: "Total ensemble results by consensus strength",
	}, []string{"consensus"})

	m.ConfidenceDelta = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trust_engine_ensemble_confidence_delta",
		Help:    "Confidence gained by the AI component over rule-based analysis",
		Buckets: []float64{0, 5, 10, 15, 20, 30, 40, 50, 75, 100},
	})
}

func initVerificationMetrics(m *Metrics) {
	m.ChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trust_engine_verification_checks_total",
		Help: "Total verification checks by battery, check name, and outcome",
	}, []string{"battery", "check", "outcome"})

	m.CheckDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trust_engine_verification_check_duration_seconds",
		Help:    "Time for a single verification check",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0},
	}, []string{"battery"})

	m.BatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trust_engine_verification_batch_duration_seconds",
		Help:    "Time for a full verification battery",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
	}, []string{"battery"})
}

func initVerdictMetrics(m *Metrics) {
	m.VerdictTier = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trust_engine_verdict_tier_total",
		Help: "Total trust verdicts by tier",
	}, []string{"tier"})

	m.TrustScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trust_engine_verdict_score",
		Help:    "Distribution of overall trust scores",
		Buckets: []float64{10, 20, 30, 35, 45, 55, 65, 70, 80, 85, 95},
	})

	m.RedFlagsFound = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trust_engine_red_flags_found",
		Help:    "Red flags found per analyzed document",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
	})
}

// RecordAnalysis records metrics for a completed analysis
func (p *Provider) RecordAnalysis(ctx context.Context, kind string, success bool, duration time.Duration) {
	if success {
		p.Metrics.AnalysesTotal.WithLabelValues(kind).Inc()
	}
	p.Metrics.AnalysisDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordAnalysisFailure records a failed analysis with error code
func (p *Provider) RecordAnalysisFailure(ctx context.Context, kind, errorCode string) {
	p.Metrics.AnalysesFailed.WithLabelValues(kind, errorCode).Inc()
}

// RecordDetectorRequest records a detector upstream request
func (p *Provider) RecordDetectorRequest(ctx context.Context, model, outcome string) {
	p.Metrics.DetectorRequests.WithLabelValues(model, outcome).Inc()
}

// RecordDetectorRetry increments the retry counter
func (p *Provider) RecordDetectorRetry(ctx context.Context) {
	p.Metrics.DetectorRetries.Inc()
}

// RecordDetectorFallback records a fallback to rule-based scoring
func (p *Provider) RecordDetectorFallback(ctx context.Context, reason string) {
	p.Metrics.DetectorFallbacks.WithLabelValues(reason).Inc()
}

// RecordCacheHit increments the detector cache hit counter
func (p *Provider) RecordCacheHit(ctx context.Context) {
	p.Metrics.CacheHits.Inc()
}

// RecordCacheMiss increments the detector cache miss counter
func (p *Provider) RecordCacheMiss(ctx context.Context) {
	p.Metrics.CacheMisses.Inc()
}

// SetBreakerState sets the detector circuit breaker state gauge
func (p *Provider) SetBreakerState(state int) {
	p.Metrics.BreakerState.Set(float64(state))
}

// RecordEnsemble records ensemble combination metrics
func (p *Provider) RecordEnsemble(ctx context.Context, method, consensus string, confidenceDelta float64) {
	p.Metrics.EnsembleMethod.WithLabelValues(method).Inc()
	if consensus != "" {
		p.Metrics.ConsensusTotal.WithLabelValues(consensus).Inc()
	}
	p.Metrics.ConfidenceDelta.Observe(confidenceDelta)
}

// RecordCheck records a single verification check
func (p *Provider) RecordCheck(ctx context.Context, battery, check, outcome string, duration time.Duration) {
	p.Metrics.ChecksTotal.WithLabelValues(battery, check, outcome).Inc()
	p.Metrics.CheckDuration.WithLabelValues(battery).Observe(duration.Seconds())
}

// RecordBatch records a completed verification battery
func (p *Provider) RecordBatch(ctx context.Context, battery string, duration time.Duration) {
	p.Metrics.BatchDuration.WithLabelValues(battery).Observe(duration.Seconds())
}

// RecordVerdict records a trust verdict
func (p *Provider) RecordVerdict(ctx context.Context, tier string, score float64, redFlags int) {
	p.Metrics.VerdictTier.WithLabelValues(tier).Inc()
	p.Metrics.TrustScore.Observe(score)
	p.Metrics.RedFlagsFound.Observe(float64(redFlags))
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, span
}
