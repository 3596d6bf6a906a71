package redflags

import (
	"math"
	"strings"
)

// Vagueness penalties per missing or generic field.
const (
	vaguenessMissingTitle     = 25
	vaguenessVagueTitle       = 20
	vaguenessVagueCompany     = 20
	vaguenessBriefDescription = 15
	vaguenessFewRequirements  = 15
	vaguenessVagueLocation    = 10

	minDescriptionWords = 50
	minRequirements     = 2
	minCompanyNameLen   = 3
	maxVagueness        = 100
)

// vagueTitles are job titles generic enough to fit any scam posting.
var vagueTitles = []string{"data entry", "work from home", "general assistant", "various positions"}

// VaguenessInput carries the extracted document fields rated for vagueness.
type VaguenessInput struct {
	JobTitle     string
	CompanyName  string
	Description  string
	Requirements []string
	Location     string
}

// VaguenessScore rates how unspecific a posting is, 0-100. Higher means
// vaguer. Pure function of its input.
func VaguenessScore(input VaguenessInput) float64 {
	score := 0.0

	title := strings.ToLower(strings.TrimSpace(input.JobTitle))
	if title == "" {
		score += vaguenessMissingTitle
	} else {
		for _, vague := range vagueTitles {
			if strings.Contains(title, vague) {
				score += vaguenessVagueTitle
				break
			}
		}
	}

	if len(strings.TrimSpace(input.CompanyName)) < minCompanyNameLen {
		score += vaguenessVagueCompany
	}

	if len(strings.Fields(input.Description)) < minDescriptionWords {
		score += vaguenessBriefDescription
	}

	if len(input.Requirements) < minRequirements {
		score += vaguenessFewRequirements
	}

	location := strings.ToLower(strings.TrimSpace(input.Location))
	if location == "" || strings.Contains(location, "remote") {
		score += vaguenessVagueLocation
	}

	return math.Min(maxVagueness, score)
}
