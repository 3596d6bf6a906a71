package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Thanatos9404/fakecatcher-plus/internal/config"
	"github.com/Thanatos9404/fakecatcher-plus/internal/httpserver"
	"github.com/Thanatos9404/fakecatcher-plus/internal/logger"
)

// detectorProbeTimeout bounds the upstream probe inside the health check.
const detectorProbeTimeout = 5 * time.Second

// ServerOptions holds the collaborators the API server wires in beyond the
// handler itself.
type ServerOptions struct {
	// MetricsHandler is served on GET /metrics when set.
	MetricsHandler http.Handler
	// HealthChecks are extra named checks for /health and /ready.
	HealthChecks map[string]httpserver.HealthChecker
}

// NewServer builds the trust engine HTTP server: standard middleware,
// health and metrics endpoints, and the versioned API routes.
func NewServer(handler *Handler, cfg *config.Config, opts ServerOptions, log logger.Logger) *httpserver.Server {
	builder := httpserver.NewServerBuilder(cfg.Service.Name, cfg.Service.Port).
		WithLogger(log).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithHealthCheck("detector", DetectorHealthChecker(handler.detector)).
		WithRoutes(func(router *gin.Engine) {
			SetupServiceRoutes(router, handler, cfg)
		})

	if opts.MetricsHandler != nil {
		builder.WithMetricsHandler(opts.MetricsHandler)
	}
	for name, check := range opts.HealthChecks {
		builder.WithHealthCheck(name, check)
	}

	return builder.Build()
}

// SetupServiceRoutes configures the versioned API routes. Health and metrics
// routes are registered by the server builder.
func SetupServiceRoutes(router *gin.Engine, handler *Handler, cfg *config.Config) {
	v1 := httpserver.ProtectedGroup(router, "/api/v1", cfg.Auth.JWTSecret)

	analyze := v1.Group("/analyze")
	analyze.POST("/text", handler.AnalyzeText)         // POST /api/v1/analyze/text
	analyze.POST("/document", handler.AnalyzeDocument) // POST /api/v1/analyze/document

	verify := v1.Group("/verify")
	verify.POST("/company", handler.VerifyCompany) // POST /api/v1/verify/company
	verify.POST("/web", handler.VerifyWeb)         // POST /api/v1/verify/web

	v1.GET("/detector/health", handler.DetectorHealth) // GET /api/v1/detector/health
}

// DetectorHealthChecker adapts the detector probe to a named health check.
// A down or unconfigured detector degrades the service; the engine keeps
// scoring rule-based.
func DetectorHealthChecker(prober DetectorProber) httpserver.HealthChecker {
	return func() httpserver.CheckResult {
		ctx, cancel := context.WithTimeout(context.Background(), detectorProbeTimeout)
		defer cancel()

		status := prober.Health(ctx)
		switch status.Status {
		case "healthy":
			return httpserver.CheckResult{
				Status:  httpserver.HealthStatusHealthy,
				Message: "AI detector reachable",
				Latency: time.Duration(status.LatencyMs * int64(time.Millisecond)).String(),
			}
		case "disabled":
			return httpserver.CheckResult{
				Status:  httpserver.HealthStatusHealthy,
				Message: "AI detector disabled, rule-based scoring only",
			}
		default:
			return httpserver.CheckResult{
				Status:  httpserver.HealthStatusDegraded,
				Message: "AI detector unreachable: " + status.Error,
			}
		}
	}
}
