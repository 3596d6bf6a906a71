package detector

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Thanatos9404/fakecatcher-plus/internal/domain"
)

// Detection categories surfaced to reviewers.
const (
	CategoryHighlyLikelyAI = "Highly Likely AI-Generated"
	CategoryProbablyAI     = "Probably AI-Generated"
	CategoryUncertain      = "Mixed/Uncertain - Requires Review"
	CategoryProbablyHuman  = "Probably Human-Written"
	CategoryLikelyHuman    = "Likely Human-Written"
)

// Category thresholds on the 0-100 probability scale.
const (
	categoryHighlyLikelyAI = 85
	categoryProbablyAI     = 65
	categoryUncertain      = 35
	categoryProbablyHuman  = 15
)

// Model confidence thresholds on the 0-1 scale.
const (
	confidenceVeryHigh   = 0.9
	confidenceHigh       = 0.75
	confidenceMediumHigh = 0.6
	confidenceMedium     = 0.4
)

// aiLabelKeywords mark a detector label as meaning "AI-generated".
// Matched against the uppercased label.
var aiLabelKeywords = []string{"FAKE", "AI", "GENERATED", "MACHINE", "BOT"}

// zeroShotAIKeywords mark a candidate label as meaning "AI-generated".
// Matched against the lowercased label.
var zeroShotAIKeywords = []string{"ai", "generated", "computer", "machine", "artificial"}

// labelScore is one label/score pair from a text-classification response.
type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// zeroShotResponse is the response shape of a zero-shot classification call.
type zeroShotResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// normalized is a detector response reduced to the engine's scale.
type normalized struct {
	Probability float64
	Confidence  float64
	RawLabel    string
	RawScore    float64
}

// parseDetectorResponse normalizes a specialized AI-detector response.
// The API returns either a flat list of label/score pairs (the first entry is
// authoritative) or a nested list, in which case the highest-scoring entry of
// the first group wins. A label naming AI content maps score directly to the
// AI probability; any other label is treated as a human-content score and
// inverted.
func parseDetectorResponse(raw json.RawMessage) (*normalized, error) {
	best, err := pickDetectorEntry(raw)
	if err != nil {
		return nil, err
	}

	probability := 0.0
	upper := strings.ToUpper(best.Label)
	if containsAny(upper, aiLabelKeywords) {
		probability = best.Score * 100
	} else {
		probability = (1 - best.Score) * 100
	}

	return &normalized{
		Probability: probability,
		Confidence:  best.Score,
		RawLabel:    best.Label,
		RawScore:    best.Score,
	}, nil
}

func pickDetectorEntry(raw json.RawMessage) (*labelScore, error) {
	var flat []labelScore
	if err := json.Unmarshal(raw, &flat); err == nil && len(flat) > 0 && flat[0].Label != "" {
		return &flat[0], nil
	}

	var nested [][]labelScore
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		best := nested[0][0]
		for _, entry := range nested[0][1:] {
			if entry.Score > best.Score {
				best = entry
			}
		}
		return &best, nil
	}

	return nil, fmt.Errorf("%w: unrecognized detector response", domain.ErrPermanentUpstream)
}

// parseZeroShotResponse normalizes a zero-shot classification response.
// The first label naming AI content wins; failing that, a "human" label is
// inverted; failing that, the top score is treated as human confidence.
func parseZeroShotResponse(raw json.RawMessage) (*normalized, error) {
	var resp zeroShotResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode zero-shot response: %v", domain.ErrPermanentUpstream, err)
	}
	if len(resp.Labels) == 0 || len(resp.Scores) == 0 {
		return nil, fmt.Errorf("%w: empty zero-shot response", domain.ErrPermanentUpstream)
	}

	for i, label := range resp.Labels {
		if i >= len(resp.Scores) {
			break
		}
		if containsAny(strings.ToLower(label), zeroShotAIKeywords) {
			return &normalized{
				Probability: resp.Scores[i] * 100,
				Confidence:  resp.Scores[i],
				RawLabel:    label,
				RawScore:    resp.Scores[i],
			}, nil
		}
	}

	for i, label := range resp.Labels {
		if i >= len(resp.Scores) {
			break
		}
		if strings.Contains(strings.ToLower(label), "human") {
			return &normalized{
				Probability: (1 - resp.Scores[i]) * 100,
				Confidence:  resp.Scores[i],
				RawLabel:    label,
				RawScore:    resp.Scores[i],
			}, nil
		}
	}

	return &normalized{
		Probability: (1 - resp.Scores[0]) * 100,
		Confidence:  resp.Scores[0],
		RawLabel:    resp.Labels[0],
		RawScore:    resp.Scores[0],
	}, nil
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// confidenceLabel maps model confidence (0-1) to a discrete label.
func confidenceLabel(modelConfidence float64) string {
	switch {
	case modelConfidence >= confidenceVeryHigh:
		return domain.ConfidenceVeryHigh
	case modelConfidence >= confidenceHigh:
		return domain.ConfidenceHigh
	case modelConfidence >= confidenceMediumHigh:
		return domain.ConfidenceMediumHigh
	case modelConfidence >= confidenceMedium:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// categorize maps an AI probability to a reviewer-facing category.
func categorize(probability float64) string {
	switch {
	case probability >= categoryHighlyLikelyAI:
		return CategoryHighlyLikelyAI
	case probability >= categoryProbablyAI:
		return CategoryProbablyAI
	case probability >= categoryUncertain:
		return CategoryUncertain
	case probability >= categoryProbablyHuman:
		return CategoryProbablyHuman
	default:
		return CategoryLikelyHuman
	}
}
