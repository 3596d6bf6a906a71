// Package verify runs concurrent batteries of legitimacy checks over a
// verification subject. Every check in a battery settles before the bundle
// is assembled: a failed check is recorded with its error, excluded from the
// weighted score, and its weight redistributed proportionally across the
// checks that succeeded.
package verify

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Thanatos9404/fakecatcher-plus/internal/config"
	"github.com/Thanatos9404/fakecatcher-plus/internal/domain"
	"github.com/Thanatos9404/fakecatcher-plus/internal/logger"
	"github.com/Thanatos9404/fakecatcher-plus/internal/telemetry"
)

// Subject identifies what a battery verifies.
type Subject struct {
	Name      string
	Domain    string
	SourceURL string
}

// Finding is the settled outcome of one check: the check result itself plus
// the red and green flags derived from the check's threshold rules.
type Finding struct {
	Result domain.CheckResult
	Red    []string
	Green  []string
}

// Check pairs a named probe with its share of the battery score.
type Check struct {
	Name   string
	Weight float64
	Run    func(ctx context.Context) Finding
}

// Orchestrator fans a battery of checks out concurrently and waits for all
// of them to settle before aggregating.
type Orchestrator struct {
	config    config.VerificationConfig
	telemetry *telemetry.Provider
	logger    logger.Logger
}

// New creates an orchestrator with the given verification settings.
func New(cfg config.VerificationConfig, tel *telemetry.Provider, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		config:    cfg,
		telemetry: tel,
		logger:    log,
	}
}

// Run settles every check in the battery and returns the assembled bundle.
// Checks start together, bounded by MaxConcurrent, each under its own
// timeout; one check failing never aborts or delays the others. Run itself
// never fails: errors surface as failed check results inside the bundle.
func (o *Orchestrator) Run(ctx context.Context, kind string, subject Subject, checks []Check) domain.VerificationBundle {
	start := time.Now()
	if o.config.BatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.config.BatchTimeout)
		defer cancel()
	}

	findings := make([]Finding, len(checks))

	group := new(errgroup.Group)
	if limit := o.config.MaxConcurrent; limit > 0 {
		group.SetLimit(limit)
	}
	for i, check := range checks {
		group.Go(func() error {
			findings[i] = o.settle(ctx, kind, check)
			return nil
		})
	}
	// Check closures never return errors; failures live in the findings.
	_ = group.Wait()

	bundle := domain.VerificationBundle{
		Subject:    subject.Name,
		Domain:     subject.Domain,
		SourceURL:  subject.SourceURL,
		Kind:       kind,
		Checks:     make([]domain.CheckResult, 0, len(checks)),
		RedFlags:   []string{},
		GreenFlags: []string{},
	}

	var weighted, succeededWeight float64
	for i, check := range checks {
		finding := findings[i]
		bundle.Checks = append(bundle.Checks, finding.Result)
		bundle.RedFlags = append(bundle.RedFlags, finding.Red...)
		bundle.GreenFlags = append(bundle.GreenFlags, finding.Green...)
		if finding.Result.Succeeded() {
			weighted += *finding.Result.Score * check.Weight
			succeededWeight += check.Weight
		}
	}
	if succeededWeight > 0 {
		bundle.Score = round2(weighted / succeededWeight)
	}

	o.telemetry.RecordBatch(ctx, kind, time.Since(start))
	o.logger.Debug("verification battery settled",
		logger.String("kind", kind),
		logger.String("subject", subject.Name),
		logger.Float64("score", bundle.Score),
		logger.Int("red_flags", len(bundle.RedFlags)),
		logger.Int("green_flags", len(bundle.GreenFlags)),
		logger.Duration("elapsed", time.Since(start)),
	)
	return bundle
}

// settle runs one check under its own deadline, converting a panic into a
// failed result so the battery still settles.
func (o *Orchestrator) settle(ctx context.Context, kind string, check Check) (finding Finding) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			finding = Finding{Result: domain.FailedCheck(check.Name, fmt.Errorf("check panicked: %v", r))}
		}
		o.telemetry.RecordCheck(ctx, kind, check.Name, finding.Result.Outcome, time.Since(start))
		if finding.Result.Outcome == domain.OutcomeFailed {
			o.logger.Warn("verification check failed",
				logger.String("kind", kind),
				logger.String("check", check.Name),
				logger.String("error", finding.Result.Error),
			)
		}
	}()

	if o.config.CheckTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.config.CheckTimeout)
		defer cancel()
	}
	return check.Run(ctx)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
