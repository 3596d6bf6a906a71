package redflags_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thanatos9404/fakecatcher-plus/internal/logger"
	"github.com/Thanatos9404/fakecatcher-plus/internal/redflags"
)

func TestScannerFindsCategorizedKeywords(t *testing.T) {
	scanner := redflags.NewScanner(logger.NewNop())

	text := "Great opportunity! Just wire transfer the deposit and be your own boss."
	report := scanner.Scan(text)

	assert.Equal(t, 2, report.TotalFlags)
	assert.Equal(t, []string{"Financial scam indicator: wire transfer"}, report.CriticalFlags)
	assert.Equal(t, []string{"MLM/Pyramid indicator: be your own boss"}, report.WarningFlags)

	assert.Equal(t, []string{"wire transfer"}, report.CategoryHits[redflags.CategoryFinancialScam])
	assert.Equal(t, []string{"be your own boss"}, report.CategoryHits[redflags.CategoryMLMPyramid])

	assert.Contains(t, report.ScamPatterns, "financial_scam: wire transfer")
	assert.Contains(t, report.ScamPatterns, "mlm_pyramid: be your own boss")
}

func TestScannerCleanText(t *testing.T) {
	scanner := redflags.NewScanner(logger.NewNop())

	report := scanner.Scan("We are looking for a senior backend developer with Go experience.")

	assert.Zero(t, report.TotalFlags)
	assert.Empty(t, report.CriticalFlags)
	assert.Empty(t, report.WarningFlags)
	assert.Empty(t, report.ScamPatterns)

	// Every category key is present even with no matches.
	require.Len(t, report.CategoryHits, 5)
	for name, hits := range report.CategoryHits {
		assert.Empty(t, hits, "category %s", name)
	}
}

func TestScannerMatchesThroughPunctuation(t *testing.T) {
	scanner := redflags.NewScanner(logger.NewNop())

	report := scanner.Scan("Send money (via Western Union!) before onboarding.")

	assert.Equal(t, []string{
		"Financial scam indicator: western union",
		"Financial scam indicator: send money",
	}, report.CriticalFlags)
}

func TestScannerReportsCategoryKeywordOrder(t *testing.T) {
	scanner := redflags.NewScanner(logger.NewNop())

	// Matches listed in vocabulary order, not text order.
	report := scanner.Scan("No work required, just easy money with guaranteed income.")

	assert.Equal(t, []string{
		"guaranteed income", "easy money", "no work required",
	}, report.CategoryHits[redflags.CategoryUnrealisticPromises])
	assert.Equal(t, 3, report.TotalFlags)
}

func TestScannerUpdateCategories(t *testing.T) {
	scanner := redflags.NewScanner(logger.NewNop())
	require.Equal(t, 5, scanner.CategoryCount())

	scanner.UpdateCategories([]redflags.Category{
		{
			Name:     "crypto_scam",
			Label:    "Crypto scam indicator",
			Severity: redflags.SeverityCritical,
			Keywords: []string{"crypto wallet", "seed phrase"},
		},
	})

	assert.Equal(t, 1, scanner.CategoryCount())
	assert.Equal(t, 2, scanner.KeywordCount())

	report := scanner.Scan("Please share your seed phrase and wire transfer the fee.")

	// Old vocabulary no longer matches; only the new category does.
	assert.Equal(t, []string{"Crypto scam indicator: seed phrase"}, report.CriticalFlags)
	assert.Equal(t, 1, report.TotalFlags)
	assert.NotContains(t, report.CategoryHits, redflags.CategoryFinancialScam)
}

func TestAnalyzeUrgency(t *testing.T) {
	scanner := redflags.NewScanner(logger.NewNop())

	tests := []struct {
		name         string
		text         string
		wantLevel    string
		wantPressure bool
		wantPhrases  int
	}{
		{
			name:      "no urgency language",
			text:      "We review applications on a rolling basis.",
			wantLevel: redflags.UrgencyLow,
		},
		{
			name:        "single phrase is moderate",
			text:        "Apply now to join our team.",
			wantLevel:   redflags.UrgencyModerate,
			wantPhrases: 1,
		},
		{
			name:         "three phrases flag pressure tactics",
			text:         "URGENT HIRING! Act now, limited time only.",
			wantLevel:    redflags.UrgencyHigh,
			wantPressure: true,
			wantPhrases:  3,
		},
		{
			name:        "apostrophes do not hide a phrase",
			text:        "Don't miss out on this role.",
			wantLevel:   redflags.UrgencyModerate,
			wantPhrases: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := scanner.AnalyzeUrgency(tt.text)

			assert.Equal(t, tt.wantLevel, report.Level)
			assert.Equal(t, tt.wantPressure, report.PressureTactics)
			assert.Len(t, report.Phrases, tt.wantPhrases)
		})
	}
}

func TestScanIsDeterministic(t *testing.T) {
	scanner := redflags.NewScanner(logger.NewNop())
	text := "Easy money! Wire transfer a processing fee for your starter kit cost."

	first := scanner.Scan(text)
	second := scanner.Scan(text)

	assert.Equal(t, first, second)
}
