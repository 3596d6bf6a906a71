package domain

// Check outcome constants
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"
)

// Verification kind constants
const (
	KindCompanyLegitimacy = "company_legitimacy"
	KindWebCredibility    = "web_credibility"
)

// Check name constants for the company-legitimacy battery.
const (
	CheckDomainRegistration = "domain_registration"
	CheckDomainReputation   = "domain_reputation"
	CheckOnlinePresence     = "online_presence"
	CheckBusinessPatterns   = "business_patterns"
	CheckNameQuality        = "name_quality"
)

// Check name constants for the web-credibility battery.
const (
	CheckCompanySite     = "company_site"
	CheckSocialPresence  = "social_media_presence"
	CheckReviewPresence  = "review_presence"
	CheckJobBoardListing = "job_board_presence"
	CheckSourceURL       = "source_url"
)

// CheckResult records the settled outcome of one verification check.
// Score is present only for successful checks; failed and skipped checks
// are excluded from the weighted aggregate rather than defaulted to zero.
type CheckResult struct {
	Name    string   `json:"name"`
	Outcome string   `json:"outcome"`
	Score   *float64 `json:"score,omitempty"` // 0-100, set only when Outcome is success
	Flags   []string `json:"flags,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Succeeded reports whether the check settled with a usable score.
func (c CheckResult) Succeeded() bool {
	return c.Outcome == OutcomeSuccess && c.Score != nil
}

// SuccessCheck builds a successful CheckResult with the given score.
func SuccessCheck(name string, score float64, flags ...string) CheckResult {
	s := Clamp(score)
	return CheckResult{
		Name:    name,
		Outcome: OutcomeSuccess,
		Score:   &s,
		Flags:   flags,
	}
}

// FailedCheck builds a failed CheckResult carrying the error text.
func FailedCheck(name string, err error) CheckResult {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return CheckResult{
		Name:    name,
		Outcome: OutcomeFailed,
		Error:   msg,
	}
}

// SkippedCheck builds a skipped CheckResult with the reason the check
// did not run (for example, no domain was provided).
func SkippedCheck(name, reason string) CheckResult {
	return CheckResult{
		Name:    name,
		Outcome: OutcomeSkipped,
		Error:   reason,
	}
}

// VerificationBundle is the settled output of one orchestrator run: the
// ordered check results plus the weighted aggregate score and the derived
// flag lists. Scores from failed or skipped checks are excluded and their
// weights redistributed proportionally among the checks that succeeded.
type VerificationBundle struct {
	Subject    string        `json:"subject"`
	Domain     string        `json:"domain,omitempty"`
	SourceURL  string        `json:"source_url,omitempty"`
	Kind       string        `json:"kind"`
	Score      float64       `json:"score"`
	Checks     []CheckResult `json:"checks"`
	RedFlags   []string      `json:"red_flags"`
	GreenFlags []string      `json:"green_flags"`
}

// CheckByName returns the named check result and whether it was found.
func (b *VerificationBundle) CheckByName(name string) (CheckResult, bool) {
	for _, c := range b.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return CheckResult{}, false
}
