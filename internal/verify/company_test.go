package verify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thanatos9404/fakecatcher-plus/internal/domain"
	"github.com/Thanatos9404/fakecatcher-plus/internal/verify"
)

func runCheck(t *testing.T, checks []verify.Check, name string) verify.Finding {
	t.Helper()
	for _, check := range checks {
		if check.Name == name {
			return check.Run(context.Background())
		}
	}
	t.Fatalf("check %s not found in battery", name)
	return verify.Finding{}
}

func TestCompanyBatteryShape(t *testing.T) {
	battery := verify.NewCompanyBattery(verify.NewStaticProvider())
	checks := battery.Checks(verify.Subject{Name: "Acme Corp", Domain: "acme.example"})

	require.Len(t, checks, 5)
	var names []string
	var weightSum float64
	for _, check := range checks {
		names = append(names, check.Name)
		weightSum += check.Weight
	}
	assert.Equal(t, []string{
		domain.CheckDomainRegistration,
		domain.CheckDomainReputation,
		domain.CheckOnlinePresence,
		domain.CheckBusinessPatterns,
		domain.CheckNameQuality,
	}, names)
	assert.InDelta(t, 1.0, weightSum, 0.0001)
}

func TestDomainRegistrationCheck(t *testing.T) {
	tests := []struct {
		name      string
		facts     verify.DomainFacts
		wantScore float64
		wantRed   []string
		wantGreen []string
	}{
		{
			name:      "established domain with registrar",
			facts:     verify.DomainFacts{Registered: true, AgeDays: 2000, Registrar: "Hover"},
			wantScore: 100,
			wantGreen: []string{"Domain is well-established (3+ years old)", "Domain registered with Hover"},
		},
		{
			name:      "one year old",
			facts:     verify.DomainFacts{Registered: true, AgeDays: 400},
			wantScore: 85.71,
			wantGreen: []string{"Domain has reasonable age (1+ years)"},
		},
		{
			name:      "a few months old",
			facts:     verify.DomainFacts{Registered: true, AgeDays: 120},
			wantScore: 71.43,
		},
		{
			name:      "brand new domain is flagged",
			facts:     verify.DomainFacts{Registered: true, AgeDays: 10},
			wantScore: 42.86,
			wantRed:   []string{"Domain is very new (less than 30 days old)"},
		},
		{
			name:      "unregistered",
			facts:     verify.DomainFacts{},
			wantScore: 14.29,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := verify.NewStaticProvider()
			provider.SetDomainFacts("acme.example", tt.facts)
			battery := verify.NewCompanyBattery(provider)
			checks := battery.Checks(verify.Subject{Name: "Acme Corp", Domain: "acme.example"})

			finding := runCheck(t, checks, domain.CheckDomainRegistration)

			require.True(t, finding.Result.Succeeded())
			assert.InDelta(t, tt.wantScore, *finding.Result.Score, 0.01)
			if tt.wantRed == nil {
				assert.Empty(t, finding.Red)
			} else {
				assert.Equal(t, tt.wantRed, finding.Red)
			}
			if tt.wantGreen == nil {
				assert.Empty(t, finding.Green)
			} else {
				assert.Equal(t, tt.wantGreen, finding.Green)
			}
		})
	}
}

func TestDomainRegistrationResolutionFallback(t *testing.T) {
	// No fixture means the static provider reports resolution-only facts.
	battery := verify.NewCompanyBattery(verify.NewStaticProvider())
	checks := battery.Checks(verify.Subject{Name: "Acme Corp", Domain: "unknown.example"})

	finding := runCheck(t, checks, domain.CheckDomainRegistration)

	require.True(t, finding.Result.Succeeded())
	assert.InDelta(t, 57.14, *finding.Result.Score, 0.01)
	assert.Contains(t, finding.Result.Flags, "registration record unavailable, resolution confirmed")
	assert.Empty(t, finding.Red)
}

func TestDomainRegistrationFailureAndSkip(t *testing.T) {
	provider := verify.NewStaticProvider()
	provider.FailDomainFacts("acme.example", errors.New("whois timeout"))
	battery := verify.NewCompanyBattery(provider)

	failed := runCheck(t, battery.Checks(verify.Subject{Name: "Acme", Domain: "acme.example"}),
		domain.CheckDomainRegistration)
	assert.Equal(t, domain.OutcomeFailed, failed.Result.Outcome)
	assert.Contains(t, failed.Result.Error, "whois timeout")

	skipped := runCheck(t, battery.Checks(verify.Subject{Name: "Acme"}), domain.CheckDomainRegistration)
	assert.Equal(t, domain.OutcomeSkipped, skipped.Result.Outcome)
}

func TestDomainReputationCheck(t *testing.T) {
	tests := []struct {
		name      string
		facts     verify.ReputationFacts
		wantScore float64
		wantRed   []string
		wantGreen []string
	}{
		{
			name:      "hardened site",
			facts:     verify.ReputationFacts{Accessible: true, SSL: true, RedirectCount: 1, SecurityHeaders: 4},
			wantScore: 100,
			wantGreen: []string{"Website uses SSL certificate"},
		},
		{
			name:      "accessible without ssl",
			facts:     verify.ReputationFacts{Accessible: true},
			wantScore: 80,
			wantRed:   []string{"Website does not use SSL certificate"},
		},
		{
			name:      "long redirect chain",
			facts:     verify.ReputationFacts{Accessible: true, SSL: true, RedirectCount: 5, SecurityHeaders: 2},
			wantScore: 87.5,
			wantRed:   []string{"Website has suspicious redirect chains"},
			wantGreen: []string{"Website uses SSL certificate"},
		},
		{
			name:      "unreachable site keeps the base score",
			facts:     verify.ReputationFacts{},
			wantScore: 60,
			wantRed:   []string{"Website does not use SSL certificate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := verify.NewStaticProvider()
			provider.SetReputationFacts("acme.example", tt.facts)
			battery := verify.NewCompanyBattery(provider)
			checks := battery.Checks(verify.Subject{Name: "Acme Corp", Domain: "acme.example"})

			finding := runCheck(t, checks, domain.CheckDomainReputation)

			require.True(t, finding.Result.Succeeded())
			assert.InDelta(t, tt.wantScore, *finding.Result.Score, 0.01)
			if tt.wantRed == nil {
				assert.Empty(t, finding.Red)
			} else {
				assert.Equal(t, tt.wantRed, finding.Red)
			}
			if tt.wantGreen == nil {
				assert.Empty(t, finding.Green)
			} else {
				assert.Equal(t, tt.wantGreen, finding.Green)
			}
		})
	}
}

func TestOnlinePresenceCheck(t *testing.T) {
	battery := verify.NewCompanyBattery(verify.NewStaticProvider())

	tests := []struct {
		name        string
		companyName string
		wantScore   float64
		wantRed     []string
		wantGreen   []string
	}{
		{
			name:        "professional corporate name",
			companyName: "Acme Technologies Inc",
			wantScore:   80,
			wantGreen:   []string{"Likely has professional LinkedIn presence"},
		},
		{
			name:        "moderate presence without corporate suffix",
			companyName: "Blue Marlin!",
			wantScore:   60,
			wantGreen:   []string{"Likely has professional LinkedIn presence"},
		},
		{
			name:        "scam phrasing kills the estimate",
			companyName: "Easy Money Pro",
			wantScore:   0,
			wantRed: []string{
				"Suspicious keyword: easy",
				"Low likelihood of legitimate online presence",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checks := battery.Checks(verify.Subject{Name: tt.companyName})
			finding := runCheck(t, checks, domain.CheckOnlinePresence)

			require.True(t, finding.Result.Succeeded())
			assert.InDelta(t, tt.wantScore, *finding.Result.Score, 0.01)
			assert.Contains(t, finding.Result.Flags, "heuristic estimate")
			if tt.wantRed == nil {
				assert.Empty(t, finding.Red)
			} else {
				assert.Equal(t, tt.wantRed, finding.Red)
			}
			if tt.wantGreen == nil {
				assert.Empty(t, finding.Green)
			} else {
				assert.Equal(t, tt.wantGreen, finding.Green)
			}
		})
	}
}

func TestBusinessPatternsCheck(t *testing.T) {
	battery := verify.NewCompanyBattery(verify.NewStaticProvider())

	t.Run("industry name", func(t *testing.T) {
		checks := battery.Checks(verify.Subject{Name: "Meridian Engineering Systems"})
		finding := runCheck(t, checks, domain.CheckBusinessPatterns)

		require.True(t, finding.Result.Succeeded())
		assert.InDelta(t, 93.33, *finding.Result.Score, 0.01)
		assert.Equal(t, []string{"Contains professional keywords: systems, engineering"}, finding.Green)
		assert.Empty(t, finding.Red)
		assert.Contains(t, finding.Result.Flags, "classified as technology")
	})

	t.Run("scam pattern name", func(t *testing.T) {
		checks := battery.Checks(verify.Subject{Name: "Quick Cash Solutions Group"})
		finding := runCheck(t, checks, domain.CheckBusinessPatterns)

		require.True(t, finding.Result.Succeeded())
		assert.Zero(t, *finding.Result.Score)
		assert.Equal(t, []string{
			"Contains scam-related keywords: quick cash",
			"Business name suggests potentially fraudulent activity",
		}, finding.Red)
		assert.Contains(t, finding.Result.Flags, "classified as suspicious")
	})

	t.Run("plain name", func(t *testing.T) {
		checks := battery.Checks(verify.Subject{Name: "Sunrise Bakery"})
		finding := runCheck(t, checks, domain.CheckBusinessPatterns)

		require.True(t, finding.Result.Succeeded())
		assert.InDelta(t, 66.67, *finding.Result.Score, 0.01)
		assert.Empty(t, finding.Red)
		assert.Empty(t, finding.Green)
	})
}

func TestNameQualityCheck(t *testing.T) {
	battery := verify.NewCompanyBattery(verify.NewStaticProvider())

	t.Run("well formed name", func(t *testing.T) {
		checks := battery.Checks(verify.Subject{Name: "Acme Software Solutions"})
		finding := runCheck(t, checks, domain.CheckNameQuality)

		require.True(t, finding.Result.Succeeded())
		assert.InDelta(t, 81.08, *finding.Result.Score, 0.01)
		assert.Equal(t, []string{"Company name appears professional and complete"}, finding.Green)
		assert.Empty(t, finding.Red)
	})

	t.Run("overlong name keeps its issue even when scoring well", func(t *testing.T) {
		name := "The International Business Company Group Solutions Corporation of Greater Metropolitan Area"
		checks := battery.Checks(verify.Subject{Name: name})
		finding := runCheck(t, checks, domain.CheckNameQuality)

		require.True(t, finding.Result.Succeeded())
		assert.InDelta(t, 74.64, *finding.Result.Score, 0.01)
		assert.Contains(t, finding.Green, "Company name appears professional and complete")
		assert.Contains(t, finding.Red, "Name may be difficult to remember")
	})
}

func TestCompanyBatteryEndToEnd(t *testing.T) {
	provider := verify.NewStaticProvider()
	provider.SetDomainFacts("acme.example", verify.DomainFacts{
		Registered: true,
		AgeDays:    2000,
		Registrar:  "Hover",
	})
	provider.SetReputationFacts("acme.example", verify.ReputationFacts{
		Accessible:      true,
		SSL:             true,
		RedirectCount:   1,
		SecurityHeaders: 4,
	})
	battery := verify.NewCompanyBattery(provider)
	orch := newTestOrchestrator(t)

	subject := verify.Subject{Name: "Acme Technologies Inc", Domain: "acme.example"}
	bundle := orch.Run(context.Background(), domain.KindCompanyLegitimacy, subject, battery.Checks(subject))

	assert.Equal(t, domain.KindCompanyLegitimacy, bundle.Kind)
	require.Len(t, bundle.Checks, 5)
	for _, check := range bundle.Checks {
		assert.Equal(t, domain.OutcomeSuccess, check.Outcome, "check %s", check.Name)
	}
	// 100*0.35 + 100*0.10 + 80*0.25 + 80*0.15 + 97.75*0.15
	assert.InDelta(t, 91.66, bundle.Score, 0.01)
	assert.Empty(t, bundle.RedFlags)
	assert.Contains(t, bundle.GreenFlags, "Domain is well-established (3+ years old)")
	assert.Contains(t, bundle.GreenFlags, "Website uses SSL certificate")
	assert.Contains(t, bundle.GreenFlags, "Likely has professional LinkedIn presence")
}

func TestCompanyBatteryFailedLookupDoesNotSinkScore(t *testing.T) {
	provider := verify.NewStaticProvider()
	provider.FailDomainFacts("acme.example", errors.New("whois unreachable"))
	provider.SetReputationFacts("acme.example", verify.ReputationFacts{
		Accessible:      true,
		SSL:             true,
		RedirectCount:   1,
		SecurityHeaders: 4,
	})
	battery := verify.NewCompanyBattery(provider)
	orch := newTestOrchestrator(t)

	subject := verify.Subject{Name: "Acme Technologies Inc", Domain: "acme.example"}
	bundle := orch.Run(context.Background(), domain.KindCompanyLegitimacy, subject, battery.Checks(subject))

	registration, ok := bundle.CheckByName(domain.CheckDomainRegistration)
	require.True(t, ok)
	assert.Equal(t, domain.OutcomeFailed, registration.Outcome)

	// Remaining weight 0.65 carries the whole score:
	// (100*0.10 + 80*0.25 + 80*0.15 + 97.75*0.15) / 0.65
	assert.InDelta(t, 87.17, bundle.Score, 0.01)
}

func TestCompanyBatteryWithoutDomainSkipsLookups(t *testing.T) {
	battery := verify.NewCompanyBattery(verify.NewStaticProvider())
	orch := newTestOrchestrator(t)

	subject := verify.Subject{Name: "Acme Technologies Inc"}
	bundle := orch.Run(context.Background(), domain.KindCompanyLegitimacy, subject, battery.Checks(subject))

	for _, name := range []string{domain.CheckDomainRegistration, domain.CheckDomainReputation} {
		check, ok := bundle.CheckByName(name)
		require.True(t, ok)
		assert.Equal(t, domain.OutcomeSkipped, check.Outcome)
	}
	// Heuristic checks alone: (80*0.25 + 80*0.15 + 97.75*0.15) / 0.55
	assert.InDelta(t, 84.84, bundle.Score, 0.01)
}
