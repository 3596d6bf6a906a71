package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thanatos9404/fakecatcher-plus/internal/api"
	"github.com/Thanatos9404/fakecatcher-plus/internal/config"
	"github.com/Thanatos9404/fakecatcher-plus/internal/domain"
	"github.com/Thanatos9404/fakecatcher-plus/internal/jwt"
	"github.com/Thanatos9404/fakecatcher-plus/internal/logger"
	"github.com/Thanatos9404/fakecatcher-plus/internal/testhelpers"
	"github.com/Thanatos9404/fakecatcher-plus/internal/verify"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const sampleJobText = `We are hiring a backend engineer for our payments team
in Toronto. You will build settlement services in Go, own production
deployments, and work with the fraud analytics group. Salary range 120000 to
145000 CAD with full benefits and four weeks vacation.`

// newTestServer wires a real pipeline over static facts behind the API.
func newTestServer(t *testing.T, det *testhelpers.StubDetector, jwtSecret string) *httptest.Server {
	t.Helper()

	cfg := testhelpers.PipelineConfig()
	cfg.Service = config.ServiceConfig{Name: "trust-engine-test", Version: "test", Port: 0}
	cfg.Auth.JWTSecret = jwtSecret

	handler := api.NewHandler(testhelpers.NewPipeline(det, verify.NewStaticProvider()), det, logger.NewNop())
	srv := api.NewServer(handler, cfg, api.ServerOptions{}, logger.NewNop())

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, ts *httptest.Server, path string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := ts.Client().Post(ts.URL+path, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestAnalyzeTextEndpoint(t *testing.T) {
	det := testhelpers.NewStubDetector(15, domain.ConfidenceHigh)
	ts := newTestServer(t, det, "")

	resp := postJSON(t, ts, "/api/v1/analyze/text", gin.H{"text": sampleJobText})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.TextAnalysisResponse
	decodeInto(t, resp, &body)
	assert.NotEmpty(t, body.AnalysisID)
	assert.Equal(t, domain.MethodAIEnhancedEnsemble, body.Result.Method)
	assert.GreaterOrEqual(t, body.ProcessingTimeMS, int64(0))
	require.Len(t, det.Calls(), 1)
}

func TestAnalyzeTextRejectsMissingBody(t *testing.T) {
	ts := newTestServer(t, testhelpers.NewStubDetector(50, domain.ConfidenceMedium), "")

	resp := postJSON(t, ts, "/api/v1/analyze/text", gin.H{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalyzeTextRejectsBlankText(t *testing.T) {
	ts := newTestServer(t, testhelpers.NewStubDetector(50, domain.ConfidenceMedium), "")

	resp := postJSON(t, ts, "/api/v1/analyze/text", gin.H{"text": "   \n\t"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body api.ErrorResponse
	decodeInto(t, resp, &body)
	assert.Contains(t, body.Error, "text is empty")
}

func TestAnalyzeDocumentEndpoint(t *testing.T) {
	ts := newTestServer(t, testhelpers.NewStubDetector(10, domain.ConfidenceHigh), "")

	resp := postJSON(t, ts, "/api/v1/analyze/document", gin.H{
		"text":              sampleJobText,
		"company_name":      "Northern Payments Inc",
		"company_domain":    "northernpayments.example",
		"source_url":        "https://www.indeed.com/viewjob?jk=xyz",
		"extraction_method": domain.ExtractionWebScraping,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.DocumentAnalysisResponse
	decodeInto(t, resp, &body)
	require.NotNil(t, body.Result)
	assert.NotEmpty(t, body.AnalysisID)
	require.NotNil(t, body.Result.Company)
	assert.Equal(t, domain.KindCompanyLegitimacy, body.Result.Company.Kind)
	require.NotNil(t, body.Result.Web)
	assert.True(t, body.Result.Source.KnownPlatform)
	assert.Contains(t, body.Result.Verdict.ComponentBreakdown, domain.ComponentContent)
	assert.NotEmpty(t, body.Result.Verdict.TrustLevel)
}

func TestVerifyCompanyEndpoint(t *testing.T) {
	ts := newTestServer(t, testhelpers.NewStubDetector(50, domain.ConfidenceMedium), "")

	resp := postJSON(t, ts, "/api/v1/verify/company", gin.H{
		"company_name":   "Acme Corporation",
		"company_domain": "acme.com",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.VerificationResponse
	decodeInto(t, resp, &body)
	assert.Equal(t, domain.KindCompanyLegitimacy, body.Result.Kind)
	assert.Equal(t, "Acme Corporation", body.Result.Subject)
	assert.Len(t, body.Result.Checks, 5)
}

func TestVerifyCompanyRequiresName(t *testing.T) {
	ts := newTestServer(t, testhelpers.NewStubDetector(50, domain.ConfidenceMedium), "")

	resp := postJSON(t, ts, "/api/v1/verify/company", gin.H{"company_domain": "acme.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVerifyWebEndpoint(t *testing.T) {
	ts := newTestServer(t, testhelpers.NewStubDetector(50, domain.ConfidenceMedium), "")

	resp := postJSON(t, ts, "/api/v1/verify/web", gin.H{
		"company_name": "Acme Corporation",
		"source_url":   "https://www.linkedin.com/jobs/view/99",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.VerificationResponse
	decodeInto(t, resp, &body)
	assert.Equal(t, domain.KindWebCredibility, body.Result.Kind)
	source, found := body.Result.CheckByName(domain.CheckSourceURL)
	require.True(t, found)
	assert.Equal(t, domain.OutcomeSuccess, source.Outcome)
}

func TestDetectorHealthEndpoint(t *testing.T) {
	healthy := newTestServer(t, testhelpers.NewStubDetector(50, domain.ConfidenceMedium), "")
	resp, err := healthy.Client().Get(healthy.URL + "/api/v1/detector/health")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	broken := newTestServer(t, testhelpers.NewFallbackDetector("upstream timeout"), "")
	resp2, err := broken.Client().Get(broken.URL + "/api/v1/detector/health")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp2.Body.Close() })
	assert.Equal(t, http.StatusServiceUnavailable, resp2.StatusCode)
}

func TestRoutesRequireAuthWhenSecretConfigured(t *testing.T) {
	const secret = "integration-test-secret-32-chars"
	ts := newTestServer(t, testhelpers.NewStubDetector(15, domain.ConfidenceHigh), secret)

	// No token: rejected.
	resp := postJSON(t, ts, "/api/v1/analyze/text", gin.H{"text": sampleJobText})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Health stays public.
	healthResp, err := ts.Client().Get(ts.URL + "/health")
	require.NoError(t, err)
	t.Cleanup(func() { _ = healthResp.Body.Close() })
	assert.Equal(t, http.StatusOK, healthResp.StatusCode)

	// Signed token: accepted.
	token, err := jwt.Sign("test-client", secret, time.Hour)
	require.NoError(t, err)

	body, err := json.Marshal(gin.H{"text": sampleJobText})
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/analyze/text", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	authResp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = authResp.Body.Close() })
	assert.Equal(t, http.StatusOK, authResp.StatusCode)
}

func TestServerHealthIncludesDetectorCheck(t *testing.T) {
	ts := newTestServer(t, testhelpers.NewStubDetector(50, domain.ConfidenceMedium), "")

	resp, err := ts.Client().Get(ts.URL + "/health")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health struct {
		Status string                     `json:"status"`
		Checks map[string]json.RawMessage `json:"checks"`
	}
	decodeInto(t, resp, &health)
	assert.Equal(t, "healthy", health.Status)
	assert.Contains(t, health.Checks, "detector")
}
