package verify

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/Thanatos9404/fakecatcher-plus/internal/domain"
)

// Web-battery check weights, sum to 1.0.
const (
	weightCompanySite    = 0.35
	weightSocialPresence = 0.20
	weightReviewPresence = 0.20
	weightJobBoard       = 0.15
	weightSourceURL      = 0.10
)

// Point pools per check before normalization.
const (
	sitePointsMax     = 35
	reviewPointsMax   = 20
	jobBoardPointsMax = 15
	sourceURLMax      = 10
)

// Review-likelihood and job-board bands.
const (
	reviewLikelyThreshold   = 0.7
	reviewPossibleThreshold = 0.4
	goodRatingThreshold     = 3.5
	boardPresenceThreshold  = 0.6
)

var legitimateJobBoards = []string{
	"indeed.com", "linkedin.com", "glassdoor.com", "monster.com",
	"careerbuilder.com", "ziprecruiter.com", "simplyhired.com",
	"dice.com", "craigslist.org", "upwork.com", "freelancer.com",
}

var urlShorteners = []string{"bit.ly", "tinyurl", "goo.gl"}

var ipHostPattern = regexp.MustCompile(`^\d+\.\d+\.\d+\.\d+`)

// WebBattery builds the web-credibility check set: one live site probe and
// four heuristics over the company name and the posting's source URL.
type WebBattery struct {
	facts FactsProvider
}

// NewWebBattery creates a web battery over the given facts source.
func NewWebBattery(facts FactsProvider) *WebBattery {
	return &WebBattery{facts: facts}
}

// Checks returns the five web-credibility checks for the subject.
func (b *WebBattery) Checks(subject Subject) []Check {
	return []Check{
		{Name: domain.CheckCompanySite, Weight: weightCompanySite, Run: func(ctx context.Context) Finding {
			return b.companySite(ctx, subject.Domain)
		}},
		{Name: domain.CheckSocialPresence, Weight: weightSocialPresence, Run: func(ctx context.Context) Finding {
			return b.socialPresence(ctx, subject.Name)
		}},
		{Name: domain.CheckReviewPresence, Weight: weightReviewPresence, Run: func(ctx context.Context) Finding {
			return b.reviewPresence(ctx, subject.Name)
		}},
		{Name: domain.CheckJobBoardListing, Weight: weightJobBoard, Run: func(ctx context.Context) Finding {
			return b.jobBoardPresence(ctx, subject.Name)
		}},
		{Name: domain.CheckSourceURL, Weight: weightSourceURL, Run: func(ctx context.Context) Finding {
			return b.sourceURL(ctx, subject.SourceURL)
		}},
	}
}

// companySite scores the official site on reachability, SSL, design
// professionalism, and a careers section.
func (b *WebBattery) companySite(ctx context.Context, domainName string) Finding {
	if domainName == "" {
		return Finding{Result: domain.SkippedCheck(domain.CheckCompanySite, "no domain provided")}
	}
	facts, err := b.facts.SiteFacts(ctx, domainName)
	if err != nil {
		return Finding{Result: domain.FailedCheck(domain.CheckCompanySite, err)}
	}

	var points float64
	if facts.Accessible {
		points += 12
	}
	if facts.SSL {
		points += 8
	}
	if facts.ProfessionalDesign {
		points += 10
	}
	if facts.CareersPage {
		points += 5
	}

	var finding Finding
	if facts.ProfessionalDesign {
		finding.Green = append(finding.Green, "Company website shows professional design")
	}
	if facts.CareersPage {
		finding.Green = append(finding.Green, "Company has dedicated careers section")
	}
	if len(facts.SuspiciousKeywords) > 0 {
		finding.Red = append(finding.Red,
			"Website contains suspicious keywords: "+strings.Join(facts.SuspiciousKeywords, ", "))
	}
	finding.Result = domain.SuccessCheck(domain.CheckCompanySite, round2(points/sitePointsMax*100))
	return finding
}

// socialPresence estimates platform presence from name shape. The estimate
// is all-or-nothing: a name professional enough for LinkedIn is assumed to
// carry the other platforms with it.
func (b *WebBattery) socialPresence(_ context.Context, name string) Finding {
	if name == "" {
		return Finding{Result: domain.SkippedCheck(domain.CheckSocialPresence, "no company name provided")}
	}
	lower := strings.ToLower(name)

	indicators := 0
	if containsAny(lower, "inc", "corp", "llc", "ltd", "company") {
		indicators++
	}
	if len(strings.Fields(name)) >= 2 {
		indicators++
	}
	if !containsAny(lower, "home business", "easy money", "work from home") {
		indicators++
	}
	if len(name) > 5 {
		indicators++
	}
	likelyOnLinkedIn := indicators >= 3

	var score float64
	var finding Finding
	if likelyOnLinkedIn {
		score = 100
		finding.Green = append(finding.Green, "Company likely has LinkedIn presence")
	}
	finding.Result = domain.SuccessCheck(domain.CheckSocialPresence, score, heuristicEstimateFlag)
	return finding
}

// reviewPresence estimates whether employer reviews exist for the company.
func (b *WebBattery) reviewPresence(_ context.Context, name string) Finding {
	if name == "" {
		return Finding{Result: domain.SkippedCheck(domain.CheckReviewPresence, "no company name provided")}
	}
	lower := strings.ToLower(name)

	likelihood := boolFraction(
		containsAny(lower, "inc", "corp", "llc", "ltd"),
		containsAny(lower, "tech", "software", "consulting", "services"),
		len(strings.Fields(name)) <= 4,
		!containsAny(lower, "home business", "easy", "quick", "fast"),
	)

	var points, rating float64
	var finding Finding
	switch {
	case likelihood >= reviewLikelyThreshold:
		points = 15
		rating = 3.5 + (likelihood-reviewLikelyThreshold)*5
	case likelihood >= reviewPossibleThreshold:
		points = 10
		rating = 2.5 + likelihood*2
	default:
		rating = likelihood * 3
		finding.Red = append(finding.Red, "Company name has suspicious characteristics")
	}
	if rating > goodRatingThreshold {
		points += 5
	}

	finding.Result = domain.SuccessCheck(domain.CheckReviewPresence,
		round2(points/reviewPointsMax*100), heuristicEstimateFlag)
	return finding
}

// jobBoardPresence estimates listings on the major job boards.
func (b *WebBattery) jobBoardPresence(_ context.Context, name string) Finding {
	if name == "" {
		return Finding{Result: domain.SkippedCheck(domain.CheckJobBoardListing, "no company name provided")}
	}
	lower := strings.ToLower(name)

	presence := boolFraction(
		containsAny(lower, "inc", "corp", "llc", "ltd", "company"),
		containsAny(lower, "group", "systems", "solutions", "technologies"),
		len(name) >= 5,
		!containsAny(lower, "home business", "easy money", "work from home", "be your own boss"),
	)

	var points float64
	if presence >= boardPresenceThreshold {
		points += 10
	}
	points += presence * 5

	flags := []string{heuristicEstimateFlag}
	switch {
	case presence >= 0.8:
		flags = append(flags, "Professional company profile", "Multiple job listings likely")
	case presence >= 0.5:
		flags = append(flags, "Some professional indicators")
	default:
		flags = append(flags, "Limited professional presence indicators")
	}

	return Finding{Result: domain.SuccessCheck(domain.CheckJobBoardListing,
		round2(points/jobBoardPointsMax*100), flags...)}
}

// sourceURL scores the posting's origin: known job boards rank highest,
// plain HTTPS sites middle, insecure or IP-hosted URLs lowest.
func (b *WebBattery) sourceURL(_ context.Context, rawURL string) Finding {
	if rawURL == "" {
		return Finding{Result: domain.SkippedCheck(domain.CheckSourceURL, "no source URL provided")}
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return Finding{Result: domain.FailedCheck(domain.CheckSourceURL, fmt.Errorf("parse source URL: %w", err))}
	}
	host := strings.ToLower(parsed.Host)

	onJobBoard := containsAny(host, legitimateJobBoards...)
	credibility, _ := SourceCredibility(rawURL)

	var finding Finding
	switch {
	case onJobBoard:
		finding.Green = append(finding.Green, "Posted on legitimate job board")
	case parsed.Scheme == "https":
		finding.Green = append(finding.Green, "Uses secure HTTPS connection")
	default:
		finding.Red = append(finding.Red, "Uses insecure HTTP connection")
	}
	if ipHostPattern.MatchString(host) {
		finding.Red = append(finding.Red, "URL contains IP address instead of domain name")
	}

	structureQuality := boolFraction(
		parsed.Scheme == "https",
		len(parsed.Path) > 1,
		!containsAny(host, urlShorteners...),
		strings.Contains(host, "."),
		len(host) > 4,
	) * 100

	flags := []string{
		heuristicEstimateFlag,
		fmt.Sprintf("URL structure quality %d%%", int(structureQuality)),
	}
	if len(strings.Split(host, ".")) > 3 {
		flags = append(flags, "URL has deeply nested subdomains")
	}

	var points float64
	if onJobBoard {
		points = 8
	} else {
		points = credibility / 100 * 2
	}
	finding.Result = domain.SuccessCheck(domain.CheckSourceURL,
		round2(points/sourceURLMax*100), flags...)
	return finding
}

// SourceCredibility rates a posting URL 0-100 and reports whether its host
// is a known job board. Empty and unparseable URLs rate zero.
func SourceCredibility(rawURL string) (float64, bool) {
	if rawURL == "" {
		return 0, false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return 0, false
	}
	host := strings.ToLower(parsed.Host)
	onJobBoard := containsAny(host, legitimateJobBoards...)

	var credibility float64
	switch {
	case onJobBoard:
		credibility = 90
	case parsed.Scheme == "https":
		credibility = 60
	default:
		credibility = 30
	}
	if ipHostPattern.MatchString(host) {
		credibility -= 20
	}
	return credibility, onJobBoard
}
