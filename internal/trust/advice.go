package trust

import (
	"fmt"

	"github.com/Thanatos9404/fakecatcher-plus/internal/domain"
)

// Advice bands on the overall score. They deliberately sit between the
// tier thresholds: advice hardens one band before the tier label does.
const (
	adviceTrustedMin  = 75.0
	adviceCautionMin  = 55.0
	adviceHighRiskMin = 35.0

	stepsStandardMin = 70.0
	stepsVerifyMin   = 50.0

	summaryStrongMin = 75.0
	summaryMixedMin  = 50.0
	summaryCalmMin   = 70.0
	summaryWaryMin   = 40.0
)

var componentDisplayNames = map[string]string{
	domain.ComponentContent:  "job posting content",
	domain.ComponentCompany:  "company verification",
	domain.ComponentWeb:      "web presence",
	domain.ComponentSource:   "posting source",
	domain.ComponentRedFlags: "scam detection",
}

// recommendations returns the band-specific advice list, extended with
// findings cited from the component results.
func recommendations(overall float64, in Inputs) []string {
	var recs []string
	switch {
	case overall >= adviceTrustedMin:
		recs = []string{
			"✅ Job posting appears legitimate and trustworthy",
			"📝 Proceed with standard application process",
			"🔍 Still verify company details during interview process",
			"💼 Ask for clear job description and expectations",
		}
	case overall >= adviceCautionMin:
		recs = []string{
			"⚠️ Exercise moderate caution when applying",
			"🔍 Research the company thoroughly before applying",
			"📞 Verify company contact information independently",
			"💰 Be cautious of any requests for upfront payments",
			"📋 Ask detailed questions about the role and company",
		}
	case overall >= adviceHighRiskMin:
		recs = []string{
			"🚨 HIGH CAUTION - Multiple warning signs detected",
			"🔍 Thoroughly investigate company legitimacy",
			"📞 Contact company through official channels only",
			"💳 Never provide personal financial information",
			"🤝 Insist on video/phone interview before proceeding",
			"📄 Request official company documentation",
		}
	default:
		recs = []string{
			"❌ AVOID - Strong indicators of fraudulent posting",
			"🚫 Do not provide any personal information",
			"🚫 Do not send money or pay any fees",
			"📢 Consider reporting as potential scam",
			"🔍 Look for legitimate opportunities elsewhere",
		}
	}

	if len(in.RedFlags.ContentFlags) > 0 {
		recs = append(recs, "⚠️ Job posting contains suspicious keywords - investigate further")
	}
	if in.Company != nil && len(in.Company.RedFlags) > 0 {
		recs = append(recs, "🏢 Company verification raised concerns - verify through official channels")
	}
	return recs
}

// nextSteps returns the band-specific action list.
func nextSteps(overall float64) []string {
	switch {
	case overall >= stepsStandardMin:
		return []string{
			"1. Prepare a tailored resume and cover letter",
			"2. Research the company's recent news and developments",
			"3. Apply through official company website or job board",
			"4. Follow up appropriately after application",
		}
	case overall >= stepsVerifyMin:
		return []string{
			"1. Verify company exists through independent research",
			"2. Check company reviews on Glassdoor or similar sites",
			"3. Look up company leadership on LinkedIn",
			"4. Apply only if verification checks pass",
			"5. Be prepared with questions about company legitimacy",
		}
	default:
		return []string{
			"1. Do NOT apply to this position",
			"2. Research legitimate companies in your field",
			"3. Use established job boards for job searching",
			"4. Report suspicious posting if on legitimate platform",
			"5. Continue job search with verified opportunities",
		}
	}
}

// analysisSummary builds the human-readable wrap-up, naming the strongest
// and weakest contributing components.
func analysisSummary(overall float64, components []componentScore) string {
	strongest, weakest := components[0], components[0]
	for _, comp := range components[1:] {
		if comp.score > strongest.score {
			strongest = comp
		}
		if comp.score < weakest.score {
			weakest = comp
		}
	}

	summary := fmt.Sprintf("Overall trust score: %.1f%%. ", overall)
	switch {
	case overall >= summaryStrongMin:
		summary += fmt.Sprintf("This job posting shows strong legitimacy indicators, particularly in %s (%.1f%%). ",
			componentDisplayNames[strongest.name], strongest.score)
	case overall >= summaryMixedMin:
		summary += fmt.Sprintf("This job posting shows mixed signals. Strong performance in %s (%.1f%%) but concerns in %s (%.1f%%). ",
			componentDisplayNames[strongest.name], strongest.score,
			componentDisplayNames[weakest.name], weakest.score)
	default:
		summary += fmt.Sprintf("This job posting shows significant warning signs, especially in %s (%.1f%%). ",
			componentDisplayNames[weakest.name], weakest.score)
	}

	switch {
	case overall >= summaryCalmMin:
		summary += "Proceed with standard job application precautions."
	case overall >= summaryWaryMin:
		summary += "Exercise heightened caution and verify company details thoroughly."
	default:
		summary += "Strong recommendation to avoid this opportunity."
	}
	return summary
}
