// Package trust folds the settled component results into the final tiered
// verdict. Aggregation never propagates an error: any internal failure
// yields the canonical zero-score verdict so every analysis stays
// renderable.
package trust

import (
	"context"
	"fmt"
	"math"

	"github.com/Thanatos9404/fakecatcher-plus/internal/config"
	"github.com/Thanatos9404/fakecatcher-plus/internal/domain"
	"github.com/Thanatos9404/fakecatcher-plus/internal/logger"
	"github.com/Thanatos9404/fakecatcher-plus/internal/telemetry"
)

// Content-authenticity adjustments. The ensemble probability moves the
// score off its base; compiled content flags subtract a capped penalty.
const (
	contentBase        = 70.0
	contentHumanBonus  = 20.0
	contentAIPenalty   = 25.0
	contentFlagPenalty = 5.0
	contentFlagCap     = 30.0

	humanLikelyMax = 30.0
	aiLikelyMin    = 70.0
)

// Flag adjustments applied on top of the battery scores.
const (
	companyGreenBonus = 3.0
	companyGreenCap   = 15.0
	companyRedPenalty = 5.0
	companyRedCap     = 25.0

	webGreenBonus = 2.0
	webGreenCap   = 10.0
	webRedPenalty = 4.0
	webRedCap     = 20.0
)

// Source credibility by extraction method.
const (
	sourceNeutral    = 50.0
	sourceFileBased  = 60.0
	sourceKnownBoard = 90.0
)

// Red-flag penalties. Each category is weighted and capped independently
// so one noisy category cannot zero the component on its own.
const (
	redFlagContentPenalty = 8.0
	redFlagContentCap     = 40.0
	redFlagCompanyPenalty = 10.0
	redFlagCompanyCap     = 40.0
	redFlagWebPenalty     = 6.0
	redFlagWebCap         = 30.0
	scamPatternPenalty    = 15.0
	scamPatternCap        = 60.0
)

// Tier thresholds on the overall score.
const (
	tierVeryHighMin = 85.0
	tierHighMin     = 70.0
	tierModerateMin = 55.0
	tierLowMin      = 35.0
)

// Risk-assessment thresholds on the overall score.
const (
	riskLowMin         = 80.0
	riskLowModerateMin = 65.0
	riskModerateMin    = 50.0
	riskHighMin        = 30.0
)

// Risk assessments shown to job seekers alongside the tier.
const (
	riskLow         = "LOW RISK - Safe to apply with standard precautions"
	riskLowModerate = "LOW-MODERATE RISK - Verify company details before applying"
	riskModerate    = "MODERATE RISK - Research thoroughly and ask detailed questions"
	riskHigh        = "HIGH RISK - Multiple warning signs detected"
	riskCritical    = "CRITICAL RISK - Strong scam indicators present"

	riskUnavailable = "Unable to assess - analysis error"
)

// Inputs carries the settled component results for one verdict. Nil
// pointers mark absent components; their weight is redistributed
// proportionally across the components present instead of scoring them
// zero. The red-flag summary is always present.
type Inputs struct {
	Content  *domain.EnsembleResult
	Company  *domain.VerificationBundle
	Web      *domain.VerificationBundle
	Source   *domain.SourceMeta
	RedFlags domain.RedFlagSummary
}

// Aggregator computes trust verdicts from component results.
type Aggregator struct {
	config    config.TrustConfig
	telemetry *telemetry.Provider
	logger    logger.Logger
}

// New creates an aggregator with the configured component weights. The
// weights must sum to 1; config validation enforces this before the
// aggregator is built.
func New(cfg config.TrustConfig, tel *telemetry.Provider, log logger.Logger) *Aggregator {
	return &Aggregator{
		config:    cfg,
		telemetry: tel,
		logger:    log,
	}
}

type componentScore struct {
	name    string
	weight  float64
	score   float64
	present bool
}

// Verdict computes the overall trust score, tier, and advice from the
// component results. It always returns a renderable verdict.
func (a *Aggregator) Verdict(ctx context.Context, in Inputs) (verdict domain.TrustVerdict) {
	ctx, span := a.telemetry.StartSpan(ctx, "trust.verdict")
	defer span.End()
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("trust aggregation panicked", logger.Any("cause", r))
			verdict = FailureVerdict(fmt.Sprintf("aggregation panicked: %v", r))
		}
	}()

	components := a.componentScores(in)

	present := make([]componentScore, 0, len(components))
	totalWeight := 0.0
	for _, comp := range components {
		if comp.present {
			present = append(present, comp)
			totalWeight += comp.weight
		}
	}
	if totalWeight <= 0 {
		a.logger.Warn("no weighted components available for verdict")
		return FailureVerdict("no weighted components available")
	}

	breakdown := make(map[string]domain.ComponentContribution, len(present))
	weighted := 0.0
	for _, comp := range present {
		weight := comp.weight / totalWeight
		contribution := comp.score * weight
		weighted += contribution
		breakdown[comp.name] = domain.ComponentContribution{
			Score:        round1(comp.score),
			Weight:       weight,
			Contribution: round1(contribution),
		}
	}
	overall := round1(domain.Clamp(weighted))

	verdict = domain.TrustVerdict{
		OverallTrustScore:  overall,
		TrustLevel:         tierFor(overall),
		RiskAssessment:     riskFor(overall),
		ComponentBreakdown: breakdown,
		Recommendations:    recommendations(overall, in),
		NextSteps:          nextSteps(overall),
		AnalysisSummary:    analysisSummary(overall, present),
	}

	a.telemetry.RecordVerdict(ctx, verdict.TrustLevel, overall, in.RedFlags.Total())
	a.logger.Info("Trust verdict computed",
		logger.Float64("overall_score", overall),
		logger.String("tier", verdict.TrustLevel),
		logger.Int("components", len(present)),
		logger.Int("red_flags", in.RedFlags.Total()),
	)
	return verdict
}

// componentScores evaluates all five components in breakdown order. The
// red-flag component is always present; the others are present only when
// their input was produced.
func (a *Aggregator) componentScores(in Inputs) []componentScore {
	return []componentScore{
		{domain.ComponentContent, a.config.ContentWeight, contentScore(in.Content, in.RedFlags), in.Content != nil},
		{domain.ComponentCompany, a.config.CompanyWeight, companyScore(in.Company), in.Company != nil},
		{domain.ComponentWeb, a.config.WebWeight, webScore(in.Web), in.Web != nil},
		{domain.ComponentSource, a.config.SourceWeight, sourceScore(in.Source), in.Source != nil},
		{domain.ComponentRedFlags, a.config.RedFlagWeight, redFlagScore(in.RedFlags), true},
	}
}

// contentScore grades content authenticity off the ensemble result. Likely
// human-written text earns a bonus; likely machine-generated text is
// suspicious for a posting and penalized harder.
func contentScore(content *domain.EnsembleResult, flags domain.RedFlagSummary) float64 {
	if content == nil {
		return 0
	}
	score := contentBase
	switch {
	case content.FinalProbability < humanLikelyMax:
		score += contentHumanBonus
	case content.FinalProbability > aiLikelyMin:
		score -= contentAIPenalty
	}
	score -= math.Min(float64(len(flags.ContentFlags))*contentFlagPenalty, contentFlagCap)
	return domain.Clamp(score)
}

// companyScore adjusts the legitimacy battery score by its flag counts.
func companyScore(company *domain.VerificationBundle) float64 {
	if company == nil {
		return 0
	}
	score := company.Score
	score += math.Min(float64(len(company.GreenFlags))*companyGreenBonus, companyGreenCap)
	score -= math.Min(float64(len(company.RedFlags))*companyRedPenalty, companyRedCap)
	return domain.Clamp(score)
}

// webScore adjusts the credibility battery score by its flag counts.
func webScore(web *domain.VerificationBundle) float64 {
	if web == nil {
		return 0
	}
	score := web.Score
	score += math.Min(float64(len(web.GreenFlags))*webGreenBonus, webGreenCap)
	score -= math.Min(float64(len(web.RedFlags))*webRedPenalty, webRedCap)
	return domain.Clamp(score)
}

// sourceScore grades where the posting came from. A known job board beats
// any scraped domain; file uploads carry no source signal and stay near
// neutral.
func sourceScore(source *domain.SourceMeta) float64 {
	if source == nil {
		return 0
	}
	switch source.ExtractionMethod {
	case domain.ExtractionWebScraping:
		if source.KnownPlatform {
			return sourceKnownBoard
		}
		return domain.Clamp(source.DomainCredibility)
	case domain.ExtractionPDFText, domain.ExtractionOCRImage:
		return sourceFileBased
	default:
		return sourceNeutral
	}
}

// redFlagScore starts from a clean 100 and subtracts each flag category's
// capped penalty. Fewer flags means a higher score.
func redFlagScore(flags domain.RedFlagSummary) float64 {
	score := 100.0
	score -= math.Min(float64(len(flags.ContentFlags))*redFlagContentPenalty, redFlagContentCap)
	score -= math.Min(float64(len(flags.CompanyFlags))*redFlagCompanyPenalty, redFlagCompanyCap)
	score -= math.Min(float64(len(flags.WebFlags))*redFlagWebPenalty, redFlagWebCap)
	score -= math.Min(float64(len(flags.ScamPatterns))*scamPatternPenalty, scamPatternCap)
	return domain.Clamp(score)
}

func tierFor(overall float64) string {
	switch {
	case overall >= tierVeryHighMin:
		return domain.TierVeryHigh
	case overall >= tierHighMin:
		return domain.TierHigh
	case overall >= tierModerateMin:
		return domain.TierModerate
	case overall >= tierLowMin:
		return domain.TierLow
	default:
		return domain.TierVeryLow
	}
}

func riskFor(overall float64) string {
	switch {
	case overall >= riskLowMin:
		return riskLow
	case overall >= riskLowModerateMin:
		return riskLowModerate
	case overall >= riskModerateMin:
		return riskModerate
	case overall >= riskHighMin:
		return riskHigh
	default:
		return riskCritical
	}
}

// FailureVerdict is the canonical zero-score verdict for an analysis the
// aggregator could not compute. Callers render it like any other verdict.
func FailureVerdict(reason string) domain.TrustVerdict {
	return domain.TrustVerdict{
		OverallTrustScore:  0,
		TrustLevel:         domain.TierFailed,
		RiskAssessment:     riskUnavailable,
		ComponentBreakdown: map[string]domain.ComponentContribution{},
		Recommendations: []string{
			"❌ Trust score calculation failed",
			"🔍 Manual verification strongly recommended",
			"⚠️ Do not proceed without thorough investigation",
		},
		NextSteps: []string{
			"1. Manually research the company and job posting",
			"2. Use alternative verification methods",
			"3. Consult with career advisors or trusted sources",
		},
		AnalysisSummary: fmt.Sprintf("Trust score analysis failed due to: %s", reason),
		Error:           reason,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
