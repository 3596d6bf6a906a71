// Package pipeline wires the analyzers, batteries, and aggregator into the
// document trust-scoring flow. Content analysis, company legitimacy, and
// web credibility run concurrently for one document; the verdict waits for
// all of them to settle.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Thanatos9404/fakecatcher-plus/internal/analyzer"
	"github.com/Thanatos9404/fakecatcher-plus/internal/domain"
	"github.com/Thanatos9404/fakecatcher-plus/internal/ensemble"
	"github.com/Thanatos9404/fakecatcher-plus/internal/logger"
	"github.com/Thanatos9404/fakecatcher-plus/internal/redflags"
	"github.com/Thanatos9404/fakecatcher-plus/internal/telemetry"
	"github.com/Thanatos9404/fakecatcher-plus/internal/trust"
	"github.com/Thanatos9404/fakecatcher-plus/internal/verify"
	"github.com/Thanatos9404/fakecatcher-plus/internal/webprobe"
)

// unknownCompanyName stands in when a document names no company; the web
// battery still runs so the source URL gets analyzed.
const unknownCompanyName = "Unknown Company"

// Analysis kinds used in telemetry.
const (
	kindText     = "text"
	kindCompany  = "company"
	kindWeb      = "web"
	kindDocument = "document"
)

// Detector produces a model-backed detection for a text. Detect never
// returns an error; failures surface as fallback detections.
type Detector interface {
	Detect(ctx context.Context, text string) domain.Detection
}

// DocumentInput is one document to analyze, with whatever identity fields
// the caller extracted from it.
type DocumentInput struct {
	Text             string   `json:"text"`
	CompanyName      string   `json:"company_name,omitempty"`
	CompanyDomain    string   `json:"company_domain,omitempty"`
	SourceURL        string   `json:"source_url,omitempty"`
	ContactEmail     string   `json:"contact_email,omitempty"`
	ContactWebsite   string   `json:"contact_website,omitempty"`
	JobTitle         string   `json:"job_title,omitempty"`
	Location         string   `json:"location,omitempty"`
	Requirements     []string `json:"requirements,omitempty"`
	ExtractionMethod string   `json:"extraction_method,omitempty"`
}

// DocumentAnalysis is the settled result of one full document run.
type DocumentAnalysis struct {
	Content   domain.EnsembleResult      `json:"content_analysis"`
	Company   *domain.VerificationBundle `json:"company_verification,omitempty"`
	Web       *domain.VerificationBundle `json:"web_intelligence,omitempty"`
	RedFlags  redflags.Report            `json:"red_flag_detection"`
	Urgency   redflags.UrgencyReport     `json:"urgency_indicators"`
	Vagueness float64                    `json:"vagueness_score"`
	Source    domain.SourceMeta          `json:"source_analysis"`
	Verdict   domain.TrustVerdict        `json:"trust_score"`
}

// Deps holds the pipeline's collaborators.
type Deps struct {
	Analyzer     *analyzer.Analyzer
	Detector     Detector
	Combiner     *ensemble.Combiner
	Orchestrator *verify.Orchestrator
	Company      *verify.CompanyBattery
	Web          *verify.WebBattery
	Scanner      *redflags.Scanner
	Aggregator   *trust.Aggregator
	Telemetry    *telemetry.Provider
	Logger       logger.Logger
}

// Pipeline runs the trust-scoring entry points.
type Pipeline struct {
	analyzer     *analyzer.Analyzer
	detector     Detector
	combiner     *ensemble.Combiner
	orchestrator *verify.Orchestrator
	company      *verify.CompanyBattery
	web          *verify.WebBattery
	scanner      *redflags.Scanner
	aggregator   *trust.Aggregator
	telemetry    *telemetry.Provider
	logger       logger.Logger
}

// New creates a pipeline from its collaborators.
func New(deps Deps) *Pipeline {
	return &Pipeline{
		analyzer:     deps.Analyzer,
		detector:     deps.Detector,
		combiner:     deps.Combiner,
		orchestrator: deps.Orchestrator,
		company:      deps.Company,
		web:          deps.Web,
		scanner:      deps.Scanner,
		aggregator:   deps.Aggregator,
		telemetry:    deps.Telemetry,
		logger:       deps.Logger,
	}
}

// AnalyzeTextContent scores one text for content authenticity. The
// rule-based baseline and the model-backed detection run concurrently and
// are reconciled by the ensemble combiner.
func (p *Pipeline) AnalyzeTextContent(ctx context.Context, text string) (domain.EnsembleResult, error) {
	start := time.Now()
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		p.telemetry.RecordAnalysisFailure(ctx, kindText, "invalid_input")
		return domain.EnsembleResult{}, fmt.Errorf("%w: text is empty", domain.ErrInvalidInput)
	}

	var (
		rule      *domain.ComponentScore
		detection domain.Detection
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		rule, err = p.analyzer.Score(groupCtx, trimmed)
		return err
	})
	group.Go(func() error {
		detection = p.detector.Detect(groupCtx, trimmed)
		return nil
	})
	if err := group.Wait(); err != nil {
		p.telemetry.RecordAnalysisFailure(ctx, kindText, "analyzer_failed")
		return domain.EnsembleResult{}, err
	}

	result := p.combiner.Combine(ctx, rule, detection)
	p.telemetry.RecordAnalysis(ctx, kindText, true, time.Since(start))
	return result, nil
}

// AnalyzeCompany runs the company-legitimacy battery for one subject.
func (p *Pipeline) AnalyzeCompany(ctx context.Context, name, companyDomain string) (domain.VerificationBundle, error) {
	start := time.Now()
	name = strings.TrimSpace(name)
	if name == "" {
		p.telemetry.RecordAnalysisFailure(ctx, kindCompany, "invalid_input")
		return domain.VerificationBundle{}, fmt.Errorf("%w: company name is empty", domain.ErrInvalidInput)
	}

	subject := verify.Subject{Name: name, Domain: strings.TrimSpace(companyDomain)}
	bundle := p.orchestrator.Run(ctx, domain.KindCompanyLegitimacy, subject, p.company.Checks(subject))
	p.telemetry.RecordAnalysis(ctx, kindCompany, true, time.Since(start))
	return bundle, nil
}

// AnalyzeWebPresence runs the web-credibility battery for one subject.
func (p *Pipeline) AnalyzeWebPresence(ctx context.Context, name, companyDomain, sourceURL string) (domain.VerificationBundle, error) {
	start := time.Now()
	name = strings.TrimSpace(name)
	if name == "" {
		p.telemetry.RecordAnalysisFailure(ctx, kindWeb, "invalid_input")
		return domain.VerificationBundle{}, fmt.Errorf("%w: company name is empty", domain.ErrInvalidInput)
	}

	subject := verify.Subject{
		Name:      name,
		Domain:    strings.TrimSpace(companyDomain),
		SourceURL: strings.TrimSpace(sourceURL),
	}
	bundle := p.orchestrator.Run(ctx, domain.KindWebCredibility, subject, p.web.Checks(subject))
	p.telemetry.RecordAnalysis(ctx, kindWeb, true, time.Since(start))
	return bundle, nil
}

// ComputeTrustVerdict folds settled component results into the final
// verdict. It never returns an error; failures yield the canonical
// zero-score verdict.
func (p *Pipeline) ComputeTrustVerdict(
	ctx context.Context,
	content *domain.EnsembleResult,
	company, web *domain.VerificationBundle,
	source *domain.SourceMeta,
	flags domain.RedFlagSummary,
) domain.TrustVerdict {
	return p.aggregator.Verdict(ctx, trust.Inputs{
		Content:  content,
		Company:  company,
		Web:      web,
		Source:   source,
		RedFlags: flags,
	})
}

// AnalyzeDocument runs the whole flow for one document: content ensemble,
// scam-pattern scan, and both verification batteries concurrently, then the
// trust verdict over everything that settled.
func (p *Pipeline) AnalyzeDocument(ctx context.Context, input DocumentInput) (*DocumentAnalysis, error) {
	start := time.Now()
	text := strings.TrimSpace(input.Text)
	if text == "" {
		p.telemetry.RecordAnalysisFailure(ctx, kindDocument, "invalid_input")
		return nil, fmt.Errorf("%w: document text is empty", domain.ErrInvalidInput)
	}

	companyName := strings.TrimSpace(input.CompanyName)
	companyDomain := deriveDomain(input)

	analysis := &DocumentAnalysis{}
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		content, err := p.AnalyzeTextContent(groupCtx, text)
		if err != nil {
			return err
		}
		analysis.Content = content
		return nil
	})
	group.Go(func() error {
		analysis.RedFlags = p.scanner.Scan(text)
		analysis.Urgency = p.scanner.AnalyzeUrgency(text)
		analysis.Vagueness = redflags.VaguenessScore(redflags.VaguenessInput{
			JobTitle:     input.JobTitle,
			CompanyName:  companyName,
			Description:  text,
			Requirements: input.Requirements,
			Location:     input.Location,
		})
		return nil
	})
	if companyName != "" {
		group.Go(func() error {
			subject := verify.Subject{Name: companyName, Domain: companyDomain}
			bundle := p.orchestrator.Run(groupCtx, domain.KindCompanyLegitimacy, subject, p.company.Checks(subject))
			analysis.Company = &bundle
			return nil
		})
	} else {
		p.logger.Debug("document names no company, skipping legitimacy battery")
	}
	group.Go(func() error {
		webName := companyName
		if webName == "" {
			webName = unknownCompanyName
		}
		subject := verify.Subject{
			Name:      webName,
			Domain:    companyDomain,
			SourceURL: strings.TrimSpace(input.SourceURL),
		}
		bundle := p.orchestrator.Run(groupCtx, domain.KindWebCredibility, subject, p.web.Checks(subject))
		analysis.Web = &bundle
		return nil
	})
	if err := group.Wait(); err != nil {
		p.telemetry.RecordAnalysisFailure(ctx, kindDocument, "content_failed")
		return nil, err
	}

	analysis.Source = sourceMetaFor(input.ExtractionMethod, input.SourceURL)
	summary := compileRedFlags(analysis)
	analysis.Verdict = p.aggregator.Verdict(ctx, trust.Inputs{
		Content:  &analysis.Content,
		Company:  analysis.Company,
		Web:      analysis.Web,
		Source:   &analysis.Source,
		RedFlags: summary,
	})

	p.telemetry.RecordAnalysis(ctx, kindDocument, true, time.Since(start))
	p.logger.Info("document analysis completed",
		logger.String("company", companyName),
		logger.Float64("trust_score", analysis.Verdict.OverallTrustScore),
		logger.String("tier", analysis.Verdict.TrustLevel),
		logger.Duration("elapsed", time.Since(start)),
	)
	return analysis, nil
}

// compileRedFlags gathers the flags every stage raised into the summary the
// aggregator penalizes.
func compileRedFlags(analysis *DocumentAnalysis) domain.RedFlagSummary {
	content := make([]string, 0, len(analysis.RedFlags.CriticalFlags)+len(analysis.RedFlags.WarningFlags))
	content = append(content, analysis.RedFlags.CriticalFlags...)
	content = append(content, analysis.RedFlags.WarningFlags...)

	summary := domain.RedFlagSummary{
		ContentFlags: content,
		ScamPatterns: append([]string{}, analysis.RedFlags.ScamPatterns...),
	}
	if analysis.Company != nil {
		summary.CompanyFlags = append([]string{}, analysis.Company.RedFlags...)
	}
	if analysis.Web != nil {
		summary.WebFlags = append([]string{}, analysis.Web.RedFlags...)
	}
	return summary
}

// sourceMetaFor derives the posting-source component input from the
// extraction method and the source URL.
func sourceMetaFor(method, sourceURL string) domain.SourceMeta {
	credibility, board := verify.SourceCredibility(strings.TrimSpace(sourceURL))
	return domain.SourceMeta{
		ExtractionMethod:  strings.TrimSpace(method),
		KnownPlatform:     board,
		DomainCredibility: credibility,
	}
}

// deriveDomain picks the company domain from the explicit field, the
// contact email, or the contact website, in that order.
func deriveDomain(input DocumentInput) string {
	if d := strings.TrimSpace(input.CompanyDomain); d != "" {
		return webprobe.CleanDomain(d)
	}
	if email := strings.TrimSpace(input.ContactEmail); email != "" {
		if _, host, ok := strings.Cut(email, "@"); ok && host != "" {
			return host
		}
	}
	if site := strings.TrimSpace(input.ContactWebsite); site != "" {
		return webprobe.CleanDomain(site)
	}
	return ""
}
