// Package domain defines the result types shared across the trust-scoring
// pipeline. All entities are request-scoped: constructed fresh per analysis
// call and never mutated after construction.
package domain

// Scoring method constants
const (
	MethodRuleBased = "rule_based"
	MethodDetector  = "ai_detector"
	MethodZeroShot  = "zero_shot_classification"

	// Ensemble method tags
	MethodRuleBasedOnly      = "rule_based_only"
	MethodAIEnhancedEnsemble = "ai_enhanced_ensemble"
)

// Confidence label constants. Every component emits one of these canonical
// labels; the ensemble maps them onto a numeric scale when reconciling.
const (
	ConfidenceVeryHigh   = "Very High"
	ConfidenceHigh       = "High"
	ConfidenceMediumHigh = "Medium-High"
	ConfidenceMedium     = "Medium"
	ConfidenceLowMedium  = "Low-Medium"
	ConfidenceLow        = "Low"
	ConfidenceVeryLow    = "Very Low"
)

// Consensus constants describe how closely the rule-based and model-backed
// probabilities agree.
const (
	ConsensusStrong   = "Strong"
	ConsensusModerate = "Moderate"
	ConsensusWeak     = "Weak"
)

// Reliability constants grade how much weight a reviewer should put on an
// ensemble score, derived from the same agreement distance as consensus but
// on tighter thresholds.
const (
	ReliabilityHigh   = "High"
	ReliabilityMedium = "Medium"
	ReliabilityLow    = "Low"
)

// ComponentScore is the normalized output of one scoring method.
// Probability is the likelihood (0-100) that the text is machine-generated.
// Immutable once produced.
type ComponentScore struct {
	Method      string  `json:"method"`
	Probability float64 `json:"ai_probability"`
	Confidence  string  `json:"confidence"`

	// Signals is set for rule-based scores (optional)
	Signals *SignalBreakdown `json:"signals,omitempty"`

	// Model is set for model-backed scores (optional)
	Model *ModelDetail `json:"model,omitempty"`

	// Extra holds detail that has no typed home yet
	Extra map[string]any `json:"extra,omitempty"`
}

// SignalBreakdown holds the per-signal suspicion scores computed by the
// rule-based analyzer. Each *Score field is 0-100.
type SignalBreakdown struct {
	WordCount       int      `json:"word_count"`
	SentenceCount   int      `json:"sentence_count"`
	BuzzwordsFound  []string `json:"buzzwords_found,omitempty"`
	BuzzwordDensity float64  `json:"buzzword_density"`
	BuzzwordScore   float64  `json:"buzzword_score"`
	UniformityScore float64  `json:"sentence_uniformity"`
	GrammarScore    float64  `json:"perfect_grammar_score"`
	TransitionScore float64  `json:"transition_overuse"`
	EntropyScore    float64  `json:"lexical_entropy"`
}

// Clone returns a deep copy safe to hand to another request.
func (s *ComponentScore) Clone() *ComponentScore {
	if s == nil {
		return nil
	}
	out := *s
	if s.Signals != nil {
		sig := *s.Signals
		sig.BuzzwordsFound = append([]string(nil), s.Signals.BuzzwordsFound...)
		out.Signals = &sig
	}
	if s.Model != nil {
		m := *s.Model
		out.Model = &m
	}
	if s.Extra != nil {
		out.Extra = make(map[string]any, len(s.Extra))
		for k, v := range s.Extra {
			out.Extra[k] = v
		}
	}
	return &out
}

// ModelDetail describes the upstream model behind a model-backed score.
type ModelDetail struct {
	Model         string  `json:"model"`
	Task          string  `json:"task"`
	RawLabel      string  `json:"raw_label,omitempty"`
	RawScore      float64 `json:"raw_score"`
	Category      string  `json:"category,omitempty"`
	AnalyzedChars int     `json:"analyzed_chars"`
}

// Detection is the outcome of an AI-detection attempt. A nil Score marks a
// fallback: the upstream signal could not be obtained and FallbackReason
// records why. A fallback is treated as absent, never as zero.
type Detection struct {
	Score          *ComponentScore `json:"score,omitempty"`
	FallbackReason string          `json:"fallback_reason,omitempty"`
}

// IsFallback reports whether the detection produced no usable score.
func (d Detection) IsFallback() bool {
	return d.Score == nil
}

// NewFallback builds a Detection marking the upstream signal as absent.
func NewFallback(reason string) Detection {
	return Detection{FallbackReason: reason}
}

// NewDetection builds a Detection carrying a usable score.
func NewDetection(score ComponentScore) Detection {
	return Detection{Score: &score}
}

// EnsembleResult is the reconciled content-authenticity score produced by
// combining the rule-based baseline with an optional model-backed score.
type EnsembleResult struct {
	FinalProbability float64          `json:"final_probability"`
	Confidence       string           `json:"confidence"`
	ConfidenceDelta  float64          `json:"confidence_delta"`
	Consensus        string           `json:"consensus,omitempty"`
	Agreement        float64          `json:"agreement"`
	Reliability      string           `json:"reliability,omitempty"`
	Method           string           `json:"method"`
	FallbackReason   string           `json:"fallback_reason,omitempty"`
	Components       []ComponentScore `json:"components"`
}

// Clamp bounds a score to the [0,100] range.
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
