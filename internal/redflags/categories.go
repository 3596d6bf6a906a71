package redflags

// Severity splits matched categories into critical findings and warnings.
type Severity string

// Severity levels.
const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// Category name constants, used as keys in scan reports.
const (
	CategoryFinancialScam       = "financial_scam"
	CategoryMLMPyramid          = "mlm_pyramid"
	CategoryDataHarvesting      = "data_harvesting"
	CategoryFakeCompany         = "fake_company"
	CategoryUnrealisticPromises = "unrealistic_promises"
)

// Category is one named scam-pattern vocabulary. Label prefixes the flag
// strings built from its matches.
type Category struct {
	Name     string   `json:"name"     yaml:"name"`
	Label    string   `json:"label"    yaml:"label"`
	Severity Severity `json:"severity" yaml:"severity"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// DefaultCategories returns the built-in scam-pattern vocabularies.
func DefaultCategories() []Category {
	return []Category{
		{
			Name:     CategoryFinancialScam,
			Label:    "Financial scam indicator",
			Severity: SeverityCritical,
			Keywords: []string{
				"pay upfront fee", "training fee required", "starter kit cost",
				"wire transfer", "western union", "send money", "processing fee",
			},
		},
		{
			Name:     CategoryMLMPyramid,
			Label:    "MLM/Pyramid indicator",
			Severity: SeverityWarning,
			Keywords: []string{
				"unlimited earning potential", "be your own boss", "financial freedom",
				"recruit others", "build your team", "residual income", "pyramid", "mlm",
			},
		},
		{
			Name:     CategoryDataHarvesting,
			Label:    "Data harvesting",
			Severity: SeverityCritical,
			Keywords: []string{
				"provide ssn", "social security", "bank details", "credit check",
				"background check fee", "identity verification fee",
			},
		},
		{
			Name:     CategoryFakeCompany,
			Label:    "Fake company indicator",
			Severity: SeverityWarning,
			Keywords: []string{
				"newly established", "startup opportunity", "no experience necessary",
				"work from anywhere", "flexible schedule guaranteed",
			},
		},
		{
			Name:     CategoryUnrealisticPromises,
			Label:    "Unrealistic promise",
			Severity: SeverityCritical,
			Keywords: []string{
				"guaranteed income", "make thousands weekly", "easy money",
				"no work required", "earn while you sleep", "get rich quick",
			},
		},
	}
}

// urgencyIndicators are high-pressure hiring phrases. Three or more in one
// document indicate pressure tactics.
var urgencyIndicators = []string{
	"urgent hiring", "immediate start", "apply today", "limited positions",
	"act now", "don't miss out", "limited time", "hire immediately",
	"start asap", "urgent need", "apply now",
}
