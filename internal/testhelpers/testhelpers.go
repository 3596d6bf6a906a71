// Package testhelpers provides shared fakes for wiring the pipeline in
// tests: a canned detector, a process-wide telemetry provider (Prometheus
// collectors register globally, so one per test binary), and a fully
// assembled pipeline over deterministic facts.
package testhelpers

import (
	"context"
	"sync"
	"time"

	"github.com/Thanatos9404/fakecatcher-plus/internal/analyzer"
	"github.com/Thanatos9404/fakecatcher-plus/internal/config"
	"github.com/Thanatos9404/fakecatcher-plus/internal/detector"
	"github.com/Thanatos9404/fakecatcher-plus/internal/domain"
	"github.com/Thanatos9404/fakecatcher-plus/internal/ensemble"
	"github.com/Thanatos9404/fakecatcher-plus/internal/logger"
	"github.com/Thanatos9404/fakecatcher-plus/internal/pipeline"
	"github.com/Thanatos9404/fakecatcher-plus/internal/redflags"
	"github.com/Thanatos9404/fakecatcher-plus/internal/telemetry"
	"github.com/Thanatos9404/fakecatcher-plus/internal/trust"
	"github.com/Thanatos9404/fakecatcher-plus/internal/verify"
)

var (
	telemetryOnce     sync.Once
	telemetryProvider *telemetry.Provider
)

// Telemetry returns the shared telemetry provider for the test binary.
func Telemetry() *telemetry.Provider {
	telemetryOnce.Do(func() {
		telemetryProvider = telemetry.NewProvider()
	})
	return telemetryProvider
}

// StubDetector serves canned detections and health statuses, recording the
// texts it saw. Safe for concurrent use.
type StubDetector struct {
	mu           sync.Mutex
	Detection    domain.Detection
	HealthStatus detector.HealthStatus
	calls        []string
}

// NewStubDetector returns a detector answering every probe with the given
// probability and confidence, and reporting healthy.
func NewStubDetector(probability float64, confidence string) *StubDetector {
	return &StubDetector{
		Detection: domain.NewDetection(domain.ComponentScore{
			Method:      domain.MethodDetector,
			Probability: probability,
			Confidence:  confidence,
		}),
		HealthStatus: detector.HealthStatus{Status: "healthy", APIAccessible: true},
	}
}

// NewFallbackDetector returns a detector that always degrades with reason.
func NewFallbackDetector(reason string) *StubDetector {
	return &StubDetector{
		Detection:    domain.NewFallback(reason),
		HealthStatus: detector.HealthStatus{Status: "unhealthy", Error: reason},
	}
}

// Detect implements pipeline.Detector.
func (d *StubDetector) Detect(_ context.Context, text string) domain.Detection {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, text)
	return d.Detection
}

// Health implements the detector health probe.
func (d *StubDetector) Health(_ context.Context) detector.HealthStatus {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.HealthStatus
}

// Calls returns a copy of the texts Detect has seen.
func (d *StubDetector) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string{}, d.calls...)
}

// PipelineConfig returns the engine config tests assemble pipelines with:
// default weights, short verification timeouts.
func PipelineConfig() *config.Config {
	return &config.Config{
		Ensemble: config.EnsembleConfig{AIWeight: 0.7, RuleWeight: 0.3},
		Verification: config.VerificationConfig{
			CheckTimeout:  500 * time.Millisecond,
			BatchTimeout:  5 * time.Second,
			MaxConcurrent: 5,
		},
		Trust: config.TrustConfig{
			ContentWeight: 0.30,
			CompanyWeight: 0.25,
			WebWeight:     0.20,
			SourceWeight:  0.15,
			RedFlagWeight: 0.10,
		},
	}
}

// NewPipeline assembles a full pipeline over the given detector and facts
// provider, with a nop logger and the shared telemetry provider.
func NewPipeline(det pipeline.Detector, facts verify.FactsProvider) *pipeline.Pipeline {
	cfg := PipelineConfig()
	tel := Telemetry()
	nop := logger.NewNop()

	return pipeline.New(pipeline.Deps{
		Analyzer:     analyzer.New(nop),
		Detector:     det,
		Combiner:     ensemble.New(cfg.Ensemble, tel, nop),
		Orchestrator: verify.New(cfg.Verification, tel, nop),
		Company:      verify.NewCompanyBattery(facts),
		Web:          verify.NewWebBattery(facts),
		Scanner:      redflags.NewScanner(nop),
		Aggregator:   trust.New(cfg.Trust, tel, nop),
		Telemetry:    tel,
		Logger:       nop,
	})
}
