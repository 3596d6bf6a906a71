// Package ensemble reconciles the rule-based baseline with the model-backed
// detection into a single content-authenticity score. Combining never fails:
// a fallback detection degrades to the baseline score with a reason attached.
package ensemble

import (
	"context"
	"math"
	"strings"

	"github.com/Thanatos9404/fakecatcher-plus/internal/config"
	"github.com/Thanatos9404/fakecatcher-plus/internal/domain"
	"github.com/Thanatos9404/fakecatcher-plus/internal/logger"
	"github.com/Thanatos9404/fakecatcher-plus/internal/telemetry"
)

// Agreement thresholds on the absolute probability difference between the
// rule-based and model-backed scores.
const (
	consensusStrongMax   = 15
	consensusModerateMax = 30

	reliabilityHighMax   = 10
	reliabilityMediumMax = 25
)

// Overall confidence bands. "Certain" scores sit near either end of the
// probability scale, where both agreement and direction are unambiguous.
const (
	certainHigh     = 80
	certainLow      = 20
	nearCertainHigh = 70
	nearCertainLow  = 30

	strongBoost   = 20
	moderateBoost = 15
	minorBoost    = 10
)

// Overall confidence labels for the combined score.
const (
	ConfidenceVeryHighEnhanced   = "Very High Confidence - AI Enhanced"
	ConfidenceHighEnhanced       = "High Confidence - AI Enhanced"
	ConfidenceMediumHighEnhanced = "Medium-High Confidence - AI Enhanced"
	ConfidenceMediumEnhanced     = "Medium Confidence - AI Enhanced"
	ConfidenceHighRuleBased      = "High Confidence - Rule-based"
	ConfidenceMediumRuleBased    = "Medium Confidence - Rule-based"
	ConfidenceLowRuleBased       = "Low Confidence - Rule-based (Recommend AI retry)"
)

// confidenceNumbers maps component confidence labels onto one numeric scale
// so heterogeneous confidences can be compared.
var confidenceNumbers = map[string]float64{
	"very high":   95,
	"high":        85,
	"medium-high": 75,
	"medium":      65,
	"low-medium":  50,
	"low":         40,
	"very low":    20,
}

// defaultConfidenceNumber is assumed for labels outside the known scale.
const defaultConfidenceNumber = 50

// Combiner merges a baseline ComponentScore with an optional detection.
type Combiner struct {
	aiWeight   float64
	ruleWeight float64
	telemetry  *telemetry.Provider
	logger     logger.Logger
}

// New creates a combiner with the configured weights. The weights must sum
// to 1; config validation enforces this before the combiner is built.
func New(cfg config.EnsembleConfig, tel *telemetry.Provider, log logger.Logger) *Combiner {
	return &Combiner{
		aiWeight:   cfg.AIWeight,
		ruleWeight: cfg.RuleWeight,
		telemetry:  tel,
		logger:     log,
	}
}

// Combine reconciles the baseline score with the detection outcome. A
// fallback detection leaves the baseline probability untouched and tags the
// result rule-based only.
func (c *Combiner) Combine(ctx context.Context, rule *domain.ComponentScore, det domain.Detection) domain.EnsembleResult {
	if rule == nil {
		// Combine never fails, even without a baseline.
		rule = &domain.ComponentScore{Method: domain.MethodRuleBased, Confidence: domain.ConfidenceLow}
	}

	if det.IsFallback() {
		result := domain.EnsembleResult{
			FinalProbability: rule.Probability,
			Confidence:       overallConfidence(false, rule.Probability, 0),
			Method:           domain.MethodRuleBasedOnly,
			FallbackReason:   det.FallbackReason,
			Components:       []domain.ComponentScore{*rule},
		}

		c.telemetry.RecordEnsemble(ctx, result.Method, result.Consensus, 0)
		c.logger.Debug("Ensemble using rule-based score only",
			logger.Float64("probability", rule.Probability),
			logger.String("fallback_reason", det.FallbackReason),
		)
		return result
	}

	ai := det.Score
	final := round2(domain.Clamp(ai.Probability*c.aiWeight + rule.Probability*c.ruleWeight))
	delta := round2(math.Max(0, confidenceNumber(ai.Confidence)-confidenceNumber(rule.Confidence)))
	agreement := round2(math.Abs(ai.Probability - rule.Probability))

	result := domain.EnsembleResult{
		FinalProbability: final,
		Confidence:       overallConfidence(true, final, delta),
		ConfidenceDelta:  delta,
		Consensus:        consensusFor(agreement),
		Agreement:        agreement,
		Reliability:      reliabilityFor(agreement),
		Method:           domain.MethodAIEnhancedEnsemble,
		Components:       []domain.ComponentScore{*rule, *ai},
	}

	c.telemetry.RecordEnsemble(ctx, result.Method, result.Consensus, delta)
	c.logger.Debug("Ensemble combined scores",
		logger.Float64("rule_probability", rule.Probability),
		logger.Float64("ai_probability", ai.Probability),
		logger.Float64("final_probability", final),
		logger.String("consensus", result.Consensus),
	)
	return result
}

func consensusFor(agreement float64) string {
	switch {
	case agreement <= consensusStrongMax:
		return domain.ConsensusStrong
	case agreement <= consensusModerateMax:
		return domain.ConsensusModerate
	default:
		return domain.ConsensusWeak
	}
}

func reliabilityFor(agreement float64) string {
	switch {
	case agreement <= reliabilityHighMax:
		return domain.ReliabilityHigh
	case agreement <= reliabilityMediumMax:
		return domain.ReliabilityMedium
	default:
		return domain.ReliabilityLow
	}
}

// overallConfidence grades the combined result. Model-backed runs earn
// higher grades when the model was more certain than the rules and the
// final probability sits near either end of the scale.
func overallConfidence(aiEnhanced bool, probability, confidenceDelta float64) string {
	if aiEnhanced {
		certain := probability >= certainHigh || probability <= certainLow
		nearCertain := probability >= nearCertainHigh || probability <= nearCertainLow
		switch {
		case confidenceDelta >= strongBoost && certain:
			return ConfidenceVeryHighEnhanced
		case confidenceDelta >= moderateBoost && nearCertain:
			return ConfidenceHighEnhanced
		case confidenceDelta >= minorBoost:
			return ConfidenceMediumHighEnhanced
		default:
			return ConfidenceMediumEnhanced
		}
	}

	switch {
	case probability >= certainHigh || probability <= certainLow:
		return ConfidenceHighRuleBased
	case probability >= nearCertainHigh || probability <= nearCertainLow:
		return ConfidenceMediumRuleBased
	default:
		return ConfidenceLowRuleBased
	}
}

func confidenceNumber(label string) float64 {
	if n, ok := confidenceNumbers[strings.ToLower(label)]; ok {
		return n
	}
	return defaultConfidenceNumber
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
