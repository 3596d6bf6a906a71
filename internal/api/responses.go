package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/Thanatos9404/fakecatcher-plus/internal/domain"
	"github.com/Thanatos9404/fakecatcher-plus/internal/pipeline"
)

// TextAnalysisResponse carries one content-authenticity result.
type TextAnalysisResponse struct {
	AnalysisID       string                `json:"analysis_id"`
	Result           domain.EnsembleResult `json:"result"`
	ProcessingTimeMS int64                 `json:"processing_time_ms"`
}

// DocumentAnalysisResponse carries one full document analysis.
type DocumentAnalysisResponse struct {
	AnalysisID       string                     `json:"analysis_id"`
	Result           *pipeline.DocumentAnalysis `json:"result"`
	ProcessingTimeMS int64                      `json:"processing_time_ms"`
}

// VerificationResponse carries one battery run.
type VerificationResponse struct {
	AnalysisID       string                    `json:"analysis_id"`
	Result           domain.VerificationBundle `json:"result"`
	ProcessingTimeMS int64                     `json:"processing_time_ms"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// newAnalysisID returns a fresh analysis identifier.
func newAnalysisID() string {
	return uuid.NewString()
}

type timer struct {
	start time.Time
}

func startTimer() timer {
	return timer{start: time.Now()}
}

func (t timer) elapsedMS() int64 {
	return time.Since(t.start).Milliseconds()
}
