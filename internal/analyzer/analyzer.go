// Package analyzer implements deterministic rule-based AI-generation scoring.
// It is both the baseline for the ensemble and the fallback path when the
// AI detector is unavailable, so it performs no I/O and no allocation of
// shared state: the same input always yields the same score.
package analyzer

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/Thanatos9404/fakecatcher-plus/internal/domain"
	"github.com/Thanatos9404/fakecatcher-plus/internal/logger"
)

const (
	// Signal weights, sum to 1.0
	defaultBuzzwordWeight   = 0.35
	defaultUniformityWeight = 0.25
	defaultGrammarWeight    = 0.10
	defaultTransitionWeight = 0.10
	defaultEntropyWeight    = 0.20

	// Buzzword density is scaled so a density of 1/3 saturates the signal
	buzzwordDensityScale = 300

	// Uniformity needs at least this many sentences to be meaningful
	minSentencesForUniformity = 3
	// Coefficient of variation at or above this value means natural variation
	naturalVariationCV = 0.5

	// Each informal marker found lowers the perfect-grammar suspicion
	informalMarkerPenalty = 35

	// Transition density is scaled so one transition every other sentence saturates
	transitionDensityScale = 200

	maxScore = 100

	// Confidence label thresholds
	highThreshold       = 80
	mediumHighThreshold = 60
	mediumThreshold     = 40
	lowMediumThreshold  = 20
)

// aiMarkerVocabulary holds phrases that appear far more often in generated
// text than in human writing.
var aiMarkerVocabulary = []string{
	"passionate",
	"driven",
	"results-oriented",
	"team player",
	"synergy",
	"leverage",
	"paradigm",
	"holistic approach",
}

// transitionWords are connectives that generated text tends to overuse.
var transitionWords = []string{
	"however",
	"furthermore",
	"moreover",
	"additionally",
	"consequently",
	"therefore",
	"thus",
	"nevertheless",
	"nonetheless",
	"accordingly",
}

// informalMarkers are punctuation habits of human writers. Their absence
// raises the perfect-grammar suspicion.
var informalMarkers = []string{"!!", "??", "...", "  "}

const tokenCutset = ".,;:!?\"'()[]"

// Analyzer scores text for AI-generation likelihood using fixed rules
type Analyzer struct {
	logger logger.Logger
	config Config
}

// Config defines weights for the individual signals
type Config struct {
	BuzzwordWeight   float64
	UniformityWeight float64
	GrammarWeight    float64
	TransitionWeight float64
	EntropyWeight    float64
}

// New creates a new rule-based analyzer with default signal weights
func New(log logger.Logger) *Analyzer {
	return &Analyzer{
		logger: log,
		config: Config{
			BuzzwordWeight:   defaultBuzzwordWeight,
			UniformityWeight: defaultUniformityWeight,
			GrammarWeight:    defaultGrammarWeight,
			TransitionWeight: defaultTransitionWeight,
			EntropyWeight:    defaultEntropyWeight,
		},
	}
}

// NewWithConfig creates a new rule-based analyzer with custom signal weights
func NewWithConfig(log logger.Logger, config Config) *Analyzer {
	return &Analyzer{
		logger: log,
		config: config,
	}
}

// Score calculates the AI-generation probability for the given text.
// Returns domain.ErrInvalidInput when the text is empty after trimming.
func (a *Analyzer) Score(ctx context.Context, text string) (*domain.ComponentScore, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is empty", domain.ErrInvalidInput)
	}

	words := strings.Fields(text)
	sentences := splitSentences(text)
	lowerText := strings.ToLower(text)

	buzzwordScore, found, density := a.calculateBuzzwordSignal(lowerText, len(words))
	uniformityScore := a.calculateUniformitySignal(sentences)
	grammarScore := a.calculateGrammarSignal(text)
	transitionScore := a.calculateTransitionSignal(words, len(sentences))
	entropyScore := a.calculateEntropySignal(words)

	probability := buzzwordScore*a.config.BuzzwordWeight +
		uniformityScore*a.config.UniformityWeight +
		grammarScore*a.config.GrammarWeight +
		transitionScore*a.config.TransitionWeight +
		entropyScore*a.config.EntropyWeight
	probability = round2(domain.Clamp(probability))

	score := &domain.ComponentScore{
		Method:      domain.MethodRuleBased,
		Probability: probability,
		Confidence:  confidenceLabel(probability),
		Signals: &domain.SignalBreakdown{
			WordCount:       len(words),
			SentenceCount:   len(sentences),
			BuzzwordsFound:  found,
			BuzzwordDensity: round2(density * 100),
			BuzzwordScore:   round2(buzzwordScore),
			UniformityScore: round2(uniformityScore),
			GrammarScore:    round2(grammarScore),
			TransitionScore: round2(transitionScore),
			EntropyScore:    round2(entropyScore),
		},
	}

	a.logger.Debug("Rule-based analysis completed",
		logger.Float64("ai_probability", probability),
		logger.Int("word_count", len(words)),
		logger.Int("sentence_count", len(sentences)),
	)

	return score, nil
}

// calculateBuzzwordSignal measures marker vocabulary density (0-100).
// Multi-word markers are matched as substrings of the lowercased text.
func (a *Analyzer) calculateBuzzwordSignal(lowerText string, wordCount int) (float64, []string, float64) {
	hits := 0
	var found []string
	for _, marker := range aiMarkerVocabulary {
		if n := strings.Count(lowerText, marker); n > 0 {
			hits += n
			found = append(found, marker)
		}
	}

	density := float64(hits) / float64(max(wordCount, 1))
	return math.Min(density*buzzwordDensityScale, maxScore), found, density
}

// calculateUniformitySignal measures how uniform sentence lengths are (0-100).
// Low variation is suspicious; natural writing mixes short and long sentences.
func (a *Analyzer) calculateUniformitySignal(sentences []string) float64 {
	if len(sentences) < minSentencesForUniformity {
		return 0
	}

	lengths := make([]float64, len(sentences))
	sum := 0.0
	for i, s := range sentences {
		lengths[i] = float64(len(strings.Fields(s)))
		sum += lengths[i]
	}

	mean := sum / float64(len(lengths))
	if mean == 0 {
		return 0
	}

	variance := 0.0
	for _, l := range lengths {
		variance += (l - mean) * (l - mean)
	}
	variance /= float64(len(lengths))

	cv := math.Sqrt(variance) / mean
	suspicion := 1 - cv/naturalVariationCV
	if suspicion < 0 {
		suspicion = 0
	}
	return suspicion * maxScore
}

// calculateGrammarSignal measures the absence of informal punctuation (0-100).
func (a *Analyzer) calculateGrammarSignal(text string) float64 {
	markers := 0
	for _, m := range informalMarkers {
		markers += strings.Count(text, m)
	}
	return domain.Clamp(float64(maxScore - markers*informalMarkerPenalty))
}

// calculateTransitionSignal measures transition-word overuse (0-100).
func (a *Analyzer) calculateTransitionSignal(words []string, sentenceCount int) float64 {
	if sentenceCount == 0 {
		return 0
	}

	count := 0
	for _, w := range words {
		token := strings.Trim(strings.ToLower(w), tokenCutset)
		for _, t := range transitionWords {
			if token == t {
				count++
				break
			}
		}
	}

	return math.Min(float64(count)/float64(sentenceCount)*transitionDensityScale, maxScore)
}

// calculateEntropySignal measures lexical repetitiveness (0-100).
// Entropy near the theoretical maximum means rich vocabulary; low entropy
// relative to the maximum means repetitive, template-like text.
func (a *Analyzer) calculateEntropySignal(words []string) float64 {
	if len(words) < 2 {
		return 0
	}

	freq := make(map[string]int, len(words))
	total := 0
	for _, w := range words {
		token := strings.Trim(strings.ToLower(w), tokenCutset)
		if token == "" {
			continue
		}
		freq[token]++
		total++
	}
	if total < 2 {
		return 0
	}

	entropy := 0.0
	for _, n := range freq {
		p := float64(n) / float64(total)
		entropy -= p * math.Log2(p)
	}

	maxEntropy := math.Log2(float64(total))
	if maxEntropy == 0 {
		return 0
	}

	ratio := entropy / maxEntropy
	if ratio > 1 {
		ratio = 1
	}
	return (1 - ratio) * maxScore
}

// splitSentences splits on periods and drops blank fragments
func splitSentences(text string) []string {
	parts := strings.Split(text, ".")
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// confidenceLabel maps a probability to a discrete confidence label
func confidenceLabel(probability float64) string {
	switch {
	case probability >= highThreshold:
		return domain.ConfidenceHigh
	case probability >= mediumHighThreshold:
		return domain.ConfidenceMediumHigh
	case probability >= mediumThreshold:
		return domain.ConfidenceMedium
	case probability >= lowMediumThreshold:
		return domain.ConfidenceLowMedium
	default:
		return domain.ConfidenceLow
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
