//nolint:testpackage // testing unexported parsing internals
package detector

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thanatos9404/fakecatcher-plus/internal/domain"
)

func TestParseDetectorResponse(t *testing.T) {
	tests := []struct {
		name            string
		raw             string
		wantProbability float64
		wantLabel       string
	}{
		{
			name:            "flat list with AI label",
			raw:             `[{"label":"Fake","score":0.92}]`,
			wantProbability: 92,
			wantLabel:       "Fake",
		},
		{
			name:            "flat list with human label is inverted",
			raw:             `[{"label":"Real","score":0.9}]`,
			wantProbability: 10,
			wantLabel:       "Real",
		},
		{
			name:            "nested list picks highest score of first group",
			raw:             `[[{"label":"Real","score":0.2},{"label":"Fake","score":0.8}]]`,
			wantProbability: 80,
			wantLabel:       "Fake",
		},
		{
			name:            "machine label counts as AI",
			raw:             `[{"label":"MACHINE_GENERATED","score":0.6}]`,
			wantProbability: 60,
			wantLabel:       "MACHINE_GENERATED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			norm, err := parseDetectorResponse(json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.InDelta(t, tt.wantProbability, norm.Probability, 0.001)
			assert.Equal(t, tt.wantLabel, norm.RawLabel)
		})
	}
}

func TestParseDetectorResponseUnrecognized(t *testing.T) {
	for _, raw := range []string{
		`{"error":"model is loading"}`,
		`[]`,
		`"plain string"`,
	} {
		_, err := parseDetectorResponse(json.RawMessage(raw))
		require.Error(t, err, "raw: %s", raw)
		assert.True(t, errors.Is(err, domain.ErrPermanentUpstream), "raw: %s", raw)
	}
}

func TestParseZeroShotResponse(t *testing.T) {
	tests := []struct {
		name            string
		raw             string
		wantProbability float64
		wantLabel       string
	}{
		{
			name:            "AI label wins even when not top ranked",
			raw:             `{"labels":["human_written","ai_generated","computer_generated"],"scores":[0.55,0.4,0.05]}`,
			wantProbability: 40,
			wantLabel:       "ai_generated",
		},
		{
			name:            "human label inverted when no AI label present",
			raw:             `{"labels":["human text","formal"],"scores":[0.9,0.1]}`,
			wantProbability: 10,
			wantLabel:       "human text",
		},
		{
			name:            "top score inverted as last resort",
			raw:             `{"labels":["positive","negative"],"scores":[0.6,0.4]}`,
			wantProbability: 40,
			wantLabel:       "positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			norm, err := parseZeroShotResponse(json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.InDelta(t, tt.wantProbability, norm.Probability, 0.001)
			assert.Equal(t, tt.wantLabel, norm.RawLabel)
		})
	}
}

func TestParseZeroShotResponseErrors(t *testing.T) {
	for _, raw := range []string{
		`{"labels":[],"scores":[]}`,
		`"not an object"`,
	} {
		_, err := parseZeroShotResponse(json.RawMessage(raw))
		require.Error(t, err, "raw: %s", raw)
		assert.True(t, errors.Is(err, domain.ErrPermanentUpstream), "raw: %s", raw)
	}
}

func TestConfidenceLabel(t *testing.T) {
	tests := []struct {
		confidence float64
		want       string
	}{
		{0.95, domain.ConfidenceVeryHigh},
		{0.9, domain.ConfidenceVeryHigh},
		{0.8, domain.ConfidenceHigh},
		{0.75, domain.ConfidenceHigh},
		{0.6, domain.ConfidenceMediumHigh},
		{0.5, domain.ConfidenceMedium},
		{0.4, domain.ConfidenceMedium},
		{0.1, domain.ConfidenceLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, confidenceLabel(tt.confidence), "confidence %v", tt.confidence)
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		probability float64
		want        string
	}{
		{95, CategoryHighlyLikelyAI},
		{85, CategoryHighlyLikelyAI},
		{70, CategoryProbablyAI},
		{65, CategoryProbablyAI},
		{50, CategoryUncertain},
		{35, CategoryUncertain},
		{20, CategoryProbablyHuman},
		{15, CategoryProbablyHuman},
		{5, CategoryLikelyHuman},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, categorize(tt.probability), "probability %v", tt.probability)
	}
}
