// Package redflags scans document text for known scam-pattern vocabulary.
// scanner.go implements an Aho-Corasick based scanner so every category is
// matched in one pass through the text.
package redflags

import (
	"strings"
	"sync"
	"unicode"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/Thanatos9404/fakecatcher-plus/internal/logger"
)

// Urgency levels.
const (
	UrgencyLow      = "low"
	UrgencyModerate = "moderate"
	UrgencyHigh     = "high"
)

// urgencyHighThreshold is the match count at which pressure tactics are
// considered deliberate.
const urgencyHighThreshold = 3

const estimatedKeywordsPerCategory = 8

// Report summarizes the scam-pattern matches found in one document.
// CategoryHits holds every configured category, matched or not, so callers
// can iterate a stable key set.
type Report struct {
	TotalFlags    int                 `json:"total_red_flags"`
	CriticalFlags []string            `json:"critical_red_flags"`
	WarningFlags  []string            `json:"warning_red_flags"`
	CategoryHits  map[string][]string `json:"red_flag_categories"`
	ScamPatterns  []string            `json:"scam_pattern_matches"`
}

// UrgencyReport describes high-pressure hiring language in one document.
type UrgencyReport struct {
	Level           string   `json:"urgency_level"`
	Phrases         []string `json:"urgency_phrases"`
	PressureTactics bool     `json:"pressure_tactics_detected"`
}

// Scanner matches scam-pattern categories against document text. Category
// updates rebuild the automaton atomically, so scans and updates are safe
// to run concurrently.
type Scanner struct {
	mu           sync.RWMutex
	matcher      *ahocorasick.Matcher
	categories   []Category
	keywords     []string
	kwToCategory map[string][]kwMapping

	// The urgency vocabulary is fixed; its matcher is built once and
	// never rebuilt.
	urgencyMatcher    *ahocorasick.Matcher
	urgencyNormalized []string

	logger logger.Logger
}

type kwMapping struct {
	categoryIndex int
	original      string
}

// NewScanner creates a scanner over the built-in categories.
func NewScanner(log logger.Logger) *Scanner {
	return NewScannerWithCategories(DefaultCategories(), log)
}

// NewScannerWithCategories creates a scanner over a custom category set.
func NewScannerWithCategories(categories []Category, log logger.Logger) *Scanner {
	s := &Scanner{
		categories: categories,
		logger:     log,
	}
	// No lock needed in the constructor, the scanner is not yet shared.
	s.rebuildLocked()

	s.urgencyNormalized = make([]string, 0, len(urgencyIndicators))
	for _, phrase := range urgencyIndicators {
		s.urgencyNormalized = append(s.urgencyNormalized, normalizeKeyword(phrase))
	}
	s.urgencyMatcher = ahocorasick.NewStringMatcher(s.urgencyNormalized)

	s.logger.Info("Red flag scanner initialized",
		logger.Int("categories", len(categories)),
		logger.Int("keywords", len(s.keywords)),
	)
	return s
}

// rebuildLocked constructs the Aho-Corasick automaton.
// MUST be called with s.mu held.
func (s *Scanner) rebuildLocked() {
	s.keywords = make([]string, 0, len(s.categories)*estimatedKeywordsPerCategory)
	s.kwToCategory = make(map[string][]kwMapping)

	for catIndex, cat := range s.categories {
		for _, kw := range cat.Keywords {
			normalized := normalizeKeyword(kw)
			if normalized == "" {
				continue
			}
			s.keywords = append(s.keywords, normalized)
			s.kwToCategory[normalized] = append(s.kwToCategory[normalized], kwMapping{
				categoryIndex: catIndex,
				original:      kw,
			})
		}
	}

	if len(s.keywords) > 0 {
		s.matcher = ahocorasick.NewStringMatcher(s.keywords)
	} else {
		s.matcher = nil
	}
}

// Scan finds every category keyword in the text in a single pass. Flags are
// reported in category order regardless of where they occur in the text.
func (s *Scanner) Scan(text string) Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report := Report{
		CriticalFlags: []string{},
		WarningFlags:  []string{},
		CategoryHits:  make(map[string][]string, len(s.categories)),
		ScamPatterns:  []string{},
	}
	for _, cat := range s.categories {
		report.CategoryHits[cat.Name] = []string{}
	}

	matched := make(map[string]bool)
	if s.matcher != nil {
		for _, hitIndex := range s.matcher.Match([]byte(normalizeText(text))) {
			if hitIndex < len(s.keywords) {
				matched[s.keywords[hitIndex]] = true
			}
		}
	}

	for _, cat := range s.categories {
		for _, kw := range cat.Keywords {
			if !matched[normalizeKeyword(kw)] {
				continue
			}
			report.CategoryHits[cat.Name] = append(report.CategoryHits[cat.Name], kw)
			report.ScamPatterns = append(report.ScamPatterns, cat.Name+": "+kw)

			flag := cat.Label + ": " + kw
			if cat.Severity == SeverityCritical {
				report.CriticalFlags = append(report.CriticalFlags, flag)
			} else {
				report.WarningFlags = append(report.WarningFlags, flag)
			}
		}
	}

	report.TotalFlags = len(report.CriticalFlags) + len(report.WarningFlags)
	return report
}

// AnalyzeUrgency reports high-pressure hiring language in the text.
func (s *Scanner) AnalyzeUrgency(text string) UrgencyReport {
	matched := make(map[string]bool)
	for _, hitIndex := range s.urgencyMatcher.Match([]byte(normalizeText(text))) {
		if hitIndex < len(s.urgencyNormalized) {
			matched[s.urgencyNormalized[hitIndex]] = true
		}
	}

	report := UrgencyReport{Level: UrgencyLow, Phrases: []string{}}
	for _, phrase := range urgencyIndicators {
		if matched[normalizeKeyword(phrase)] {
			report.Phrases = append(report.Phrases, phrase)
		}
	}

	switch {
	case len(report.Phrases) >= urgencyHighThreshold:
		report.Level = UrgencyHigh
		report.PressureTactics = true
	case len(report.Phrases) >= 1:
		report.Level = UrgencyModerate
	}

	return report
}

// UpdateCategories hot-reloads the category set without restart.
func (s *Scanner) UpdateCategories(categories []Category) {
	s.mu.Lock()
	s.categories = categories
	s.rebuildLocked()
	keywordCount := len(s.keywords)
	s.mu.Unlock()

	s.logger.Info("Red flag categories updated",
		logger.Int("categories", len(categories)),
		logger.Int("keywords", keywordCount),
	)
}

// CategoryCount returns the number of configured categories.
func (s *Scanner) CategoryCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.categories)
}

// KeywordCount returns the total keywords across all categories.
func (s *Scanner) KeywordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keywords)
}

func normalizeKeyword(kw string) string {
	return strings.TrimSpace(normalizeText(kw))
}

// normalizeText lowercases and replaces every non-alphanumeric rune with a
// space, so punctuation never hides a phrase match.
func normalizeText(text string) string {
	text = strings.ToLower(text)

	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(r)
		} else {
			result.WriteByte(' ')
		}
	}

	return result.String()
}
