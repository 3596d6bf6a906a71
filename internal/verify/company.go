package verify

import (
	"context"
	"math"
	"strings"
	"unicode"

	"github.com/Thanatos9404/fakecatcher-plus/internal/domain"
)

// Company-battery check weights, sum to 1.0.
const (
	weightDomainRegistration = 0.35
	weightDomainReputation   = 0.10
	weightOnlinePresence     = 0.25
	weightBusinessPatterns   = 0.15
	weightNameQuality        = 0.15
)

// Domain age bands in days.
const (
	ageEstablishedDays = 1095
	ageMaturedDays     = 365
	ageRecentDays      = 90
	ageSuspiciousDays  = 30
)

// Point pools for the registration and reputation checks.
const (
	registrationMaxPoints = 35
	reputationBase        = 50
	maxCleanRedirects     = 3
	securityHeaderCount   = 4
	presenceMaxPoints     = 25
	patternsMaxPoints     = 15
)

// Search visibility thresholds for the online-presence estimate.
const (
	searchVisibleThreshold   = 100
	searchProminentThreshold = 500
)

const heuristicEstimateFlag = "heuristic estimate"

var corporateSuffixes = []string{
	"inc", "corp", "corporation", "llc", "ltd", "limited", "company", "co",
	"group", "solutions", "technologies", "systems", "services", "consulting",
	"enterprises",
}

var nameSuspiciousKeywords = []string{
	"easy", "fast", "quick", "instant", "guaranteed", "unlimited", "free",
	"home business", "work from home", "make money", "get rich",
}

var genericBusinessWords = []string{
	"consulting", "services", "solutions", "group", "company", "business",
	"enterprise", "corporation", "international",
}

var scamNamePatterns = []string{
	"home business solutions", "easy money group", "financial freedom",
	"work from home company", "be your own boss", "unlimited income",
	"quick cash", "instant profit", "guaranteed success",
}

var industryKeywords = []string{
	"technologies", "systems", "engineering", "medical", "healthcare",
	"education", "research", "development", "manufacturing", "finance",
	"law", "legal", "accounting", "architecture", "design",
}

var commonBusinessWords = map[string]bool{
	"company": true, "business": true, "group": true, "services": true,
	"solutions": true, "consulting": true, "international": true,
	"global": true, "enterprise": true,
}

const nameSpecialChars = "!@#$%^&*()[]{}|;:,.<>?"

// CompanyBattery builds the company-legitimacy check set: domain
// registration and age, site reputation, and three name-pattern heuristics.
type CompanyBattery struct {
	facts FactsProvider
}

// NewCompanyBattery creates a company battery over the given facts source.
func NewCompanyBattery(facts FactsProvider) *CompanyBattery {
	return &CompanyBattery{facts: facts}
}

// Checks returns the five company-legitimacy checks for the subject.
func (b *CompanyBattery) Checks(subject Subject) []Check {
	return []Check{
		{Name: domain.CheckDomainRegistration, Weight: weightDomainRegistration, Run: func(ctx context.Context) Finding {
			return b.domainRegistration(ctx, subject.Domain)
		}},
		{Name: domain.CheckDomainReputation, Weight: weightDomainReputation, Run: func(ctx context.Context) Finding {
			return b.domainReputation(ctx, subject.Domain)
		}},
		{Name: domain.CheckOnlinePresence, Weight: weightOnlinePresence, Run: func(ctx context.Context) Finding {
			return b.onlinePresence(ctx, subject.Name)
		}},
		{Name: domain.CheckBusinessPatterns, Weight: weightBusinessPatterns, Run: func(ctx context.Context) Finding {
			return b.businessPatterns(ctx, subject.Name)
		}},
		{Name: domain.CheckNameQuality, Weight: weightNameQuality, Run: func(ctx context.Context) Finding {
			return b.nameQuality(ctx, subject.Name)
		}},
	}
}

// domainRegistration scores registration status and domain age. Very new
// domains are a scam staple and raise a red flag.
func (b *CompanyBattery) domainRegistration(ctx context.Context, domainName string) Finding {
	if domainName == "" {
		return Finding{Result: domain.SkippedCheck(domain.CheckDomainRegistration, "no domain provided")}
	}
	facts, err := b.facts.DomainFacts(ctx, domainName)
	if err != nil {
		return Finding{Result: domain.FailedCheck(domain.CheckDomainRegistration, err)}
	}

	var points float64
	if facts.Registered {
		points += 15
	}
	switch {
	case facts.AgeDays > ageEstablishedDays:
		points += 15
	case facts.AgeDays > ageMaturedDays:
		points += 10
	case facts.AgeDays > ageRecentDays:
		points += 5
	}
	suspicious := facts.Registered && !facts.ResolvedOnly && facts.AgeDays < ageSuspiciousDays
	if !suspicious {
		points += 5
	}

	var finding Finding
	if suspicious {
		finding.Red = append(finding.Red, "Domain is very new (less than 30 days old)")
	}
	switch {
	case facts.AgeDays > ageEstablishedDays:
		finding.Green = append(finding.Green, "Domain is well-established (3+ years old)")
	case facts.AgeDays > ageMaturedDays:
		finding.Green = append(finding.Green, "Domain has reasonable age (1+ years)")
	}
	if facts.Registrar != "" {
		finding.Green = append(finding.Green, "Domain registered with "+facts.Registrar)
	}

	var flags []string
	if facts.ResolvedOnly {
		flags = append(flags, "registration record unavailable, resolution confirmed")
	}
	finding.Result = domain.SuccessCheck(domain.CheckDomainRegistration,
		round2(points/registrationMaxPoints*100), flags...)
	return finding
}

// domainReputation scores transport hygiene: reachability, SSL, redirect
// discipline, and hardening headers.
func (b *CompanyBattery) domainReputation(ctx context.Context, domainName string) Finding {
	if domainName == "" {
		return Finding{Result: domain.SkippedCheck(domain.CheckDomainReputation, "no domain provided")}
	}
	facts, err := b.facts.ReputationFacts(ctx, domainName)
	if err != nil {
		return Finding{Result: domain.FailedCheck(domain.CheckDomainReputation, err)}
	}

	score := float64(reputationBase)
	if facts.Accessible {
		score += 20
	}
	if facts.SSL {
		score += 15
	}
	suspiciousRedirects := facts.RedirectCount > maxCleanRedirects
	if !suspiciousRedirects {
		score += 10
	}
	score += float64(facts.SecurityHeaders) / securityHeaderCount * 5

	var finding Finding
	if facts.SSL {
		finding.Green = append(finding.Green, "Website uses SSL certificate")
	} else {
		finding.Red = append(finding.Red, "Website does not use SSL certificate")
	}
	if suspiciousRedirects {
		finding.Red = append(finding.Red, "Website has suspicious redirect chains")
	}
	finding.Result = domain.SuccessCheck(domain.CheckDomainReputation, round2(score))
	return finding
}

// onlinePresence estimates discoverability purely from name-string patterns.
func (b *CompanyBattery) onlinePresence(_ context.Context, name string) Finding {
	if name == "" {
		return Finding{Result: domain.SkippedCheck(domain.CheckOnlinePresence, "no company name provided")}
	}
	indicators := analyzeNameIndicators(name)
	searchEstimate := estimateSearchResults(name)

	platforms := 0
	for _, present := range []bool{indicators.linkedIn, indicators.glassdoor, indicators.website} {
		if present {
			platforms++
		}
	}
	presenceScore := float64(platforms) / 3 * 100

	points := presenceScore / 100 * 15
	if searchEstimate > searchVisibleThreshold {
		points += 5
	}
	if searchEstimate > searchProminentThreshold {
		points += 5
	}

	var finding Finding
	if indicators.linkedIn {
		finding.Green = append(finding.Green, "Likely has professional LinkedIn presence")
	}
	finding.Red = append(finding.Red, firstN(indicators.suspicious, 2)...)
	finding.Result = domain.SuccessCheck(domain.CheckOnlinePresence,
		round2(points/presenceMaxPoints*100), heuristicEstimateFlag)
	return finding
}

// businessPatterns scores the name against generic-business, scam-pattern,
// and industry-keyword vocabularies.
func (b *CompanyBattery) businessPatterns(_ context.Context, name string) Finding {
	if name == "" {
		return Finding{Result: domain.SkippedCheck(domain.CheckBusinessPatterns, "no company name provided")}
	}
	patterns := analyzeBusinessPatterns(name)

	var points float64
	if !patterns.generic {
		points += 5
	}
	if len(patterns.scamPatterns) == 0 {
		points += 5
	}
	points += math.Min(float64(len(patterns.industryTerms))*2, 5)

	var finding Finding
	if len(patterns.scamPatterns) > 0 {
		finding.Red = append(finding.Red,
			"Contains scam-related keywords: "+strings.Join(firstN(patterns.scamPatterns, 3), ", "))
	}
	if len(patterns.industryTerms) > 0 {
		finding.Green = append(finding.Green,
			"Contains professional keywords: "+strings.Join(firstN(patterns.industryTerms, 3), ", "))
	}
	if patterns.classification == "suspicious" {
		finding.Red = append(finding.Red, "Business name suggests potentially fraudulent activity")
	}

	flags := []string{heuristicEstimateFlag}
	if patterns.classification != "unknown" {
		flags = append(flags, "classified as "+patterns.classification)
	}
	finding.Result = domain.SuccessCheck(domain.CheckBusinessPatterns,
		round2(points/patternsMaxPoints*100), flags...)
	return finding
}

// nameQuality scores professionalism, completeness, uniqueness, and
// memorability of the company name.
func (b *CompanyBattery) nameQuality(_ context.Context, name string) Finding {
	if name == "" {
		return Finding{Result: domain.SkippedCheck(domain.CheckNameQuality, "no company name provided")}
	}
	quality := analyzeNameQuality(name)

	var finding Finding
	switch {
	case quality.overall < 30:
		finding.Red = append(finding.Red, "Company name appears unprofessional or incomplete")
	case quality.overall > 70:
		finding.Green = append(finding.Green, "Company name appears professional and complete")
	}
	finding.Red = append(finding.Red, firstN(quality.issues, 2)...)
	finding.Result = domain.SuccessCheck(domain.CheckNameQuality,
		round2(quality.overall), heuristicEstimateFlag)
	return finding
}

type nameIndicators struct {
	corporateSuffix bool
	lengthOK        bool
	professional    bool
	linkedIn        bool
	glassdoor       bool
	website         bool
	legitimacy      float64
	suspicious      []string
}

// analyzeNameIndicators derives presence likelihood from name structure.
// Keyword tests are substring matches against the lowercased name.
func analyzeNameIndicators(name string) nameIndicators {
	lower := strings.ToLower(name)
	words := strings.Fields(name)

	var ind nameIndicators
	ind.corporateSuffix = containsAny(lower, corporateSuffixes...)
	ind.lengthOK = len(words) >= 2 && len(words) <= 5 && len(name) >= 5 && len(name) <= 50
	for _, keyword := range nameSuspiciousKeywords {
		if strings.Contains(lower, keyword) {
			ind.suspicious = append(ind.suspicious, "Suspicious keyword: "+keyword)
		}
	}
	ind.professional = !strings.ContainsAny(name, nameSpecialChars)

	var score float64
	if ind.corporateSuffix {
		score += 30
	}
	if ind.lengthOK {
		score += 25
	}
	if len(ind.suspicious) == 0 {
		score += 30
	}
	if ind.professional {
		score += 15
	}
	ind.legitimacy = score

	switch {
	case score >= 70:
		ind.linkedIn, ind.glassdoor, ind.website = true, true, true
	case score >= 50:
		ind.linkedIn, ind.website = true, true
	case score >= 30:
		ind.suspicious = append(ind.suspicious, "Low likelihood of legitimate online presence")
	default:
		ind.suspicious = append(ind.suspicious, "Very low likelihood of legitimate presence")
	}
	return ind
}

// estimateSearchResults approximates search visibility from name shape:
// very long names rank poorly, very short ones are too generic, corporate
// suffixes boost and scam phrases depress the estimate.
func estimateSearchResults(name string) int {
	if name == "" {
		return 0
	}
	words := len(strings.Fields(name))
	length := len(name)

	if length > 30 || words > 4 {
		if estimate := 50 - (length-30)*2; estimate > 10 {
			return estimate
		}
		return 10
	}
	if length < 5 {
		return 20
	}

	estimate := math.Min(float64(100+words*20), 500)
	lower := strings.ToLower(name)
	if containsAny(lower, "inc", "corp", "llc", "ltd", "company") {
		estimate *= 1.5
	}
	if containsAny(lower, "home business", "easy money", "work from home") {
		estimate *= 0.3
	}
	return int(math.Min(estimate, 1000))
}

type businessPatternAnalysis struct {
	generic        bool
	scamPatterns   []string
	industryTerms  []string
	classification string
}

func analyzeBusinessPatterns(name string) businessPatternAnalysis {
	lower := strings.ToLower(name)
	analysis := businessPatternAnalysis{classification: "unknown"}

	genericCount := 0
	for _, word := range genericBusinessWords {
		if strings.Contains(lower, word) {
			genericCount++
		}
	}
	analysis.generic = genericCount >= 2

	for _, pattern := range scamNamePatterns {
		if strings.Contains(lower, pattern) {
			analysis.scamPatterns = append(analysis.scamPatterns, pattern)
		}
	}
	for _, keyword := range industryKeywords {
		if strings.Contains(lower, keyword) {
			analysis.industryTerms = append(analysis.industryTerms, keyword)
		}
	}

	switch {
	case containsAny(lower, "tech", "software", "systems", "digital", "cyber"):
		analysis.classification = "technology"
	case containsAny(lower, "health", "medical", "pharma", "bio"):
		analysis.classification = "healthcare"
	case containsAny(lower, "financial", "bank", "investment", "capital"):
		analysis.classification = "financial"
	case containsAny(lower, "consulting", "advisory", "services"):
		analysis.classification = "services"
	case len(analysis.scamPatterns) > 0:
		analysis.classification = "suspicious"
	}
	return analysis
}

type nameQualityAnalysis struct {
	professional float64
	completeness float64
	uniqueness   float64
	memorability float64
	overall      float64
	issues       []string
}

func analyzeNameQuality(name string) nameQualityAnalysis {
	var quality nameQualityAnalysis
	if name == "" {
		return quality
	}
	lower := strings.ToLower(name)
	words := strings.Fields(name)
	length := len(name)

	quality.professional = boolFraction(
		length >= 3,
		length <= 50,
		name != strings.ToUpper(name),
		name != lower,
		len(words) >= 2,
		!hasDigitPrefix(name),
		!strings.ContainsAny(name, "!@#$%^&*()"),
	) * 100
	if quality.professional < 50 {
		quality.issues = append(quality.issues, "Unprofessional naming style")
	}

	quality.completeness = boolFraction(
		strings.TrimSpace(name) != "",
		len(words) >= 2,
		containsAny(lower, "inc", "corp", "llc", "ltd", "co", "company", "group"),
	) * 100
	if quality.completeness < 40 {
		quality.issues = append(quality.issues, "Incomplete or informal business name")
	}

	if len(words) > 0 {
		unique := 0
		for _, word := range words {
			if !commonBusinessWords[strings.ToLower(word)] {
				unique++
			}
		}
		quality.uniqueness = math.Min(float64(unique)/float64(len(words))*100, 100)
	}
	if quality.uniqueness < 30 {
		quality.issues = append(quality.issues, "Very generic business name")
	}

	switch {
	case len(words) >= 2 && len(words) <= 3 && length >= 8 && length <= 25:
		quality.memorability = 85
	case len(words) >= 1 && len(words) <= 4 && length >= 5 && length <= 35:
		quality.memorability = 65
	default:
		quality.memorability = 40
		quality.issues = append(quality.issues, "Name may be difficult to remember")
	}

	quality.overall = quality.professional*0.35 +
		quality.completeness*0.25 +
		quality.uniqueness*0.25 +
		quality.memorability*0.15
	return quality
}

// hasDigitPrefix reports whether any of the first three runes is a digit.
func hasDigitPrefix(s string) bool {
	n := 0
	for _, r := range s {
		if n >= 3 {
			break
		}
		if unicode.IsDigit(r) {
			return true
		}
		n++
	}
	return false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func boolFraction(factors ...bool) float64 {
	hits := 0
	for _, f := range factors {
		if f {
			hits++
		}
	}
	return float64(hits) / float64(len(factors))
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
