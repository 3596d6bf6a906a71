package webprobe

import (
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Thanatos9404/fakecatcher-plus/internal/verify"
)

const (
	// professionalIndicatorMin is how many structural markers a page needs
	// before it reads as professionally built.
	professionalIndicatorMin = 4

	substantialTextLength = 500
	substantialLinkCount  = 5
)

// pageSuspiciousKeywords flag get-rich-quick copy on a company page.
var pageSuspiciousKeywords = []string{
	"get rich quick",
	"make money fast",
	"work from home guaranteed",
	"no experience necessary",
	"earn thousands weekly",
	"financial freedom",
}

var (
	phonePattern = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
	contactWords = []string{"contact", "address", "phone", "email"}
)

// parsePageFacts derives site facts from a fetched company page. Careers,
// accessibility, and SSL are the caller's business.
func parsePageFacts(body io.Reader) (*verify.SiteFacts, error) {
	doc, err := goquery.NewDocumentFromReader(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return nil, err
	}

	text := doc.Text()
	lowered := strings.ToLower(text)

	indicators := 0
	for _, present := range []bool{
		strings.TrimSpace(doc.Find("title").First().Text()) != "",
		hasAttr(doc, "meta[name='description']", "content"),
		doc.Find("nav").Length() > 0,
		doc.Find("footer").Length() > 0,
		doc.Find("img").Length() > 0,
		doc.Find("link[rel='stylesheet']").Length() > 0,
	} {
		if present {
			indicators++
		}
	}

	var suspicious []string
	for _, keyword := range pageSuspiciousKeywords {
		if strings.Contains(lowered, keyword) {
			suspicious = append(suspicious, keyword)
		}
	}

	quality := 0
	for _, factor := range []bool{
		len(strings.TrimSpace(text)) > substantialTextLength,
		doc.Find("a").Length() > substantialLinkCount,
		doc.Find("h1").Length() > 0,
		doc.Find("h2, h3").Length() > 0,
		len(suspicious) == 0,
	} {
		if factor {
			quality++
		}
	}

	return &verify.SiteFacts{
		ProfessionalDesign: indicators >= professionalIndicatorMin,
		ContactInfo:        hasContactInfo(lowered),
		ContentQuality:     float64(quality) / 5 * 100,
		SuspiciousKeywords: suspicious,
	}, nil
}

func hasAttr(doc *goquery.Document, selector, attr string) bool {
	value, exists := doc.Find(selector).First().Attr(attr)
	return exists && strings.TrimSpace(value) != ""
}

func hasContactInfo(lowered string) bool {
	if strings.Contains(lowered, "@") || phonePattern.MatchString(lowered) {
		return true
	}
	for _, word := range contactWords {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}
