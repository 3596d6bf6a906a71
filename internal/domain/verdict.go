package domain

// Trust tier constants, ordered from most to least trustworthy.
const (
	TierVeryHigh = "Very High Trust - Highly Likely Legitimate"
	TierHigh     = "High Trust - Likely Legitimate"
	TierModerate = "Moderate Trust - Proceed with Caution"
	TierLow      = "Low Trust - Exercise Significant Caution"
	TierVeryLow  = "Very Low Trust - High Risk of Scam"

	// TierFailed is the canonical tier for a verdict the aggregator could
	// not compute. It never results from a score threshold.
	TierFailed = "Analysis Failed"
)

// Component name constants used as keys in the verdict breakdown.
const (
	ComponentContent  = "content_authenticity"
	ComponentCompany  = "company_legitimacy"
	ComponentWeb      = "web_intelligence"
	ComponentSource   = "posting_source"
	ComponentRedFlags = "red_flag_analysis"
)

// Extraction method constants describe how the analyzed text was obtained.
const (
	ExtractionWebScraping = "web_scraping"
	ExtractionPDFText     = "pdf_text"
	ExtractionOCRImage    = "ocr_image"
)

// SourceMeta describes where the analyzed document came from. For scraped
// postings, DomainCredibility carries the source-URL credibility computed
// by the web-credibility battery.
type SourceMeta struct {
	ExtractionMethod  string  `json:"extraction_method"`
	KnownPlatform     bool    `json:"is_known_platform"`
	DomainCredibility float64 `json:"domain_credibility"`
}

// RedFlagSummary groups the red flags compiled from every pipeline stage.
// Each list is penalized independently by the aggregator, with its own
// per-flag weight and cap.
type RedFlagSummary struct {
	ContentFlags []string `json:"content_red_flags"`
	CompanyFlags []string `json:"company_red_flags"`
	WebFlags     []string `json:"web_red_flags"`
	ScamPatterns []string `json:"scam_pattern_matches"`
}

// Total returns the number of compiled flags across all categories.
func (r RedFlagSummary) Total() int {
	return len(r.ContentFlags) + len(r.CompanyFlags) + len(r.WebFlags) + len(r.ScamPatterns)
}

// ComponentContribution is one row of the verdict breakdown.
type ComponentContribution struct {
	Score        float64 `json:"score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// TrustVerdict is the final tiered output of the pipeline. Every analysis
// yields a renderable verdict; genuine failure is visible only as lowered
// scores and reason strings, never as an absent result.
type TrustVerdict struct {
	OverallTrustScore  float64                          `json:"overall_trust_score"`
	TrustLevel         string                           `json:"trust_level"`
	RiskAssessment     string                           `json:"risk_assessment"`
	ComponentBreakdown map[string]ComponentContribution `json:"component_breakdown"`
	Recommendations    []string                         `json:"recommendations"`
	NextSteps          []string                         `json:"next_steps"`
	AnalysisSummary    string                           `json:"analysis_summary"`
	Error              string                           `json:"error,omitempty"`
}
