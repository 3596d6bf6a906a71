// Package detector provides the HTTP client for AI-generation detection via
// the Hugging Face inference API. Detection is best-effort: every failure
// path degrades to a fallback signal instead of an error so the caller can
// continue with rule-based scoring alone.
package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Thanatos9404/fakecatcher-plus/internal/domain"
)

const (
	transportUserAgent = "trust-engine AI authenticity detector v1.0"

	// Upstream error bodies are truncated to this length in wrapped errors
	maxErrorBodyBytes = 256
)

// DetectRequest is the request body for a model inference call.
type DetectRequest struct {
	Inputs     string            `json:"inputs"`
	Parameters *DetectParameters `json:"parameters,omitempty"`
	Options    DetectOptions     `json:"options"`
}

// DetectParameters carries zero-shot classification parameters.
type DetectParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
	MultiLabel      bool     `json:"multi_label"`
}

// DetectOptions controls upstream inference behavior.
type DetectOptions struct {
	WaitForModel bool `json:"wait_for_model"`
	UseCache     bool `json:"use_cache"`
}

// Transport performs authenticated HTTP calls to the inference API.
type Transport struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewTransport creates a transport for the given API base URL.
func NewTransport(baseURL, apiKey string, timeout time.Duration) *Transport {
	return &Transport{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// DoDetect sends an inference request to the named model and returns the raw
// JSON response body. Network failures and timeouts are wrapped as
// ErrTransientUpstream so callers can retry them; HTTP error statuses are
// wrapped as ErrPermanentUpstream and must not be retried.
func (t *Transport) DoDetect(ctx context.Context, model string, req *DetectRequest) (json.RawMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	apiURL := t.baseURL + "/" + model
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+t.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", transportUserAgent)

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransientUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, fmt.Errorf("%w: model %s returned %d: %s",
			domain.ErrPermanentUpstream, model, resp.StatusCode, string(snippet))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrTransientUpstream, err)
	}

	return json.RawMessage(raw), nil
}

// DoHealth sends a minimal inference request to the named model and reports
// whether the API answered, with the observed latency.
func (t *Transport) DoHealth(ctx context.Context, model string) (reachable bool, latencyMs int64, err error) {
	req := &DetectRequest{
		Inputs:  "This is a health check probe.",
		Options: DetectOptions{WaitForModel: false, UseCache: true},
	}

	start := time.Now()
	_, err = t.DoDetect(ctx, model, req)
	latencyMs = time.Since(start).Milliseconds()
	if err != nil {
		return false, latencyMs, err
	}
	return true, latencyMs, nil
}
