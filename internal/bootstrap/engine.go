package bootstrap

import (
	"github.com/Thanatos9404/fakecatcher-plus/internal/analyzer"
	"github.com/Thanatos9404/fakecatcher-plus/internal/config"
	"github.com/Thanatos9404/fakecatcher-plus/internal/detector"
	"github.com/Thanatos9404/fakecatcher-plus/internal/ensemble"
	"github.com/Thanatos9404/fakecatcher-plus/internal/logger"
	"github.com/Thanatos9404/fakecatcher-plus/internal/pipeline"
	"github.com/Thanatos9404/fakecatcher-plus/internal/redflags"
	"github.com/Thanatos9404/fakecatcher-plus/internal/telemetry"
	"github.com/Thanatos9404/fakecatcher-plus/internal/trust"
	"github.com/Thanatos9404/fakecatcher-plus/internal/verify"
	"github.com/Thanatos9404/fakecatcher-plus/internal/webprobe"
)

// Engine bundles the pipeline with the collaborators the HTTP layer
// needs direct access to.
type Engine struct {
	Pipeline *pipeline.Pipeline
	Detector *detector.Client
}

// BuildEngine assembles the scoring pipeline from configuration. The
// verification batteries share one rate-limited web probe.
func BuildEngine(cfg *config.Config, cache detector.Cache, tel *telemetry.Provider, log logger.Logger) *Engine {
	det := detector.New(cfg.Detector, cache, tel, log)
	probe := webprobe.New(cfg.Verification.Probe, log)

	pl := pipeline.New(pipeline.Deps{
		Analyzer:     analyzer.New(log),
		Detector:     det,
		Combiner:     ensemble.New(cfg.Ensemble, tel, log),
		Orchestrator: verify.New(cfg.Verification, tel, log),
		Company:      verify.NewCompanyBattery(probe),
		Web:          verify.NewWebBattery(probe),
		Scanner:      redflags.NewScanner(log),
		Aggregator:   trust.New(cfg.Trust, tel, log),
		Telemetry:    tel,
		Logger:       log,
	})

	return &Engine{Pipeline: pl, Detector: det}
}
