// Package api exposes the trust-scoring pipeline over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thanatos9404/fakecatcher-plus/internal/detector"
	"github.com/Thanatos9404/fakecatcher-plus/internal/domain"
	"github.com/Thanatos9404/fakecatcher-plus/internal/logger"
	"github.com/Thanatos9404/fakecatcher-plus/internal/pipeline"
)

// DetectorProber probes the AI detector upstream.
type DetectorProber interface {
	Health(ctx context.Context) detector.HealthStatus
}

// Handler handles HTTP requests for the trust engine API.
type Handler struct {
	pipeline *pipeline.Pipeline
	detector DetectorProber
	logger   logger.Logger
}

// NewHandler creates an API handler.
func NewHandler(p *pipeline.Pipeline, det DetectorProber, log logger.Logger) *Handler {
	return &Handler{
		pipeline: p,
		detector: det,
		logger:   log,
	}
}

// AnalyzeTextRequest is a request to score one text for authenticity.
type AnalyzeTextRequest struct {
	Text string `json:"text" binding:"required"`
}

// AnalyzeDocumentRequest is a request to run the full document analysis.
type AnalyzeDocumentRequest struct {
	Text             string   `json:"text" binding:"required"`
	CompanyName      string   `json:"company_name"`
	CompanyDomain    string   `json:"company_domain"`
	SourceURL        string   `json:"source_url"`
	ContactEmail     string   `json:"contact_email"`
	ContactWebsite   string   `json:"contact_website"`
	JobTitle         string   `json:"job_title"`
	Location         string   `json:"location"`
	Requirements     []string `json:"requirements"`
	ExtractionMethod string   `json:"extraction_method"`
}

// VerifyCompanyRequest is a request to run the company-legitimacy battery.
type VerifyCompanyRequest struct {
	CompanyName   string `json:"company_name" binding:"required"`
	CompanyDomain string `json:"company_domain"`
}

// VerifyWebRequest is a request to run the web-credibility battery.
type VerifyWebRequest struct {
	CompanyName   string `json:"company_name" binding:"required"`
	CompanyDomain string `json:"company_domain"`
	SourceURL     string `json:"source_url"`
}

// AnalyzeText handles POST /api/v1/analyze/text.
func (h *Handler) AnalyzeText(c *gin.Context) {
	var req AnalyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid text analysis request", logger.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	timer := startTimer()
	result, err := h.pipeline.AnalyzeTextContent(c.Request.Context(), req.Text)
	if err != nil {
		h.writeError(c, "text analysis failed", err)
		return
	}

	c.JSON(http.StatusOK, TextAnalysisResponse{
		AnalysisID:       newAnalysisID(),
		Result:           result,
		ProcessingTimeMS: timer.elapsedMS(),
	})
}

// AnalyzeDocument handles POST /api/v1/analyze/document.
func (h *Handler) AnalyzeDocument(c *gin.Context) {
	var req AnalyzeDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid document analysis request", logger.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	timer := startTimer()
	analysis, err := h.pipeline.AnalyzeDocument(c.Request.Context(), pipeline.DocumentInput{
		Text:             req.Text,
		CompanyName:      req.CompanyName,
		CompanyDomain:    req.CompanyDomain,
		SourceURL:        req.SourceURL,
		ContactEmail:     req.ContactEmail,
		ContactWebsite:   req.ContactWebsite,
		JobTitle:         req.JobTitle,
		Location:         req.Location,
		Requirements:     req.Requirements,
		ExtractionMethod: req.ExtractionMethod,
	})
	if err != nil {
		h.writeError(c, "document analysis failed", err)
		return
	}

	h.logger.Info("Document analyzed",
		logger.String("company", req.CompanyName),
		logger.Float64("trust_score", analysis.Verdict.OverallTrustScore),
	)
	c.JSON(http.StatusOK, DocumentAnalysisResponse{
		AnalysisID:       newAnalysisID(),
		Result:           analysis,
		ProcessingTimeMS: timer.elapsedMS(),
	})
}

// VerifyCompany handles POST /api/v1/verify/company.
func (h *Handler) VerifyCompany(c *gin.Context) {
	var req VerifyCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid company verification request", logger.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	timer := startTimer()
	bundle, err := h.pipeline.AnalyzeCompany(c.Request.Context(), req.CompanyName, req.CompanyDomain)
	if err != nil {
		h.writeError(c, "company verification failed", err)
		return
	}

	c.JSON(http.StatusOK, VerificationResponse{
		AnalysisID:       newAnalysisID(),
		Result:           bundle,
		ProcessingTimeMS: timer.elapsedMS(),
	})
}

// VerifyWeb handles POST /api/v1/verify/web.
func (h *Handler) VerifyWeb(c *gin.Context) {
	var req VerifyWebRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid web verification request", logger.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	timer := startTimer()
	bundle, err := h.pipeline.AnalyzeWebPresence(c.Request.Context(), req.CompanyName, req.CompanyDomain, req.SourceURL)
	if err != nil {
		h.writeError(c, "web verification failed", err)
		return
	}

	c.JSON(http.StatusOK, VerificationResponse{
		AnalysisID:       newAnalysisID(),
		Result:           bundle,
		ProcessingTimeMS: timer.elapsedMS(),
	})
}

// DetectorHealth handles GET /api/v1/detector/health.
func (h *Handler) DetectorHealth(c *gin.Context) {
	status := h.detector.Health(c.Request.Context())

	code := http.StatusOK
	if status.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}

// writeError maps pipeline errors onto HTTP status codes.
func (h *Handler) writeError(c *gin.Context, msg string, err error) {
	h.logger.Error(msg, logger.Error(err))

	code := http.StatusInternalServerError
	if errors.Is(err, domain.ErrInvalidInput) {
		code = http.StatusBadRequest
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}
