package httpserver_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Thanatos9404/fakecatcher-plus/internal/httpserver"
	"github.com/Thanatos9404/fakecatcher-plus/internal/logger"
)

func buildTestServer(t *testing.T, opts ...func(*httpserver.ServerBuilder)) *httpserver.Server {
	t.Helper()

	builder := httpserver.NewServerBuilder("trust-engine-test", 0).
		WithLogger(logger.NewNop()).
		WithVersion("test")
	for _, opt := range opts {
		opt(builder)
	}
	return builder.Build()
}

func TestBuildRegistersHealthRoutes(t *testing.T) {
	t.Parallel()

	srv := buildTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /health status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp httpserver.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("health response is not JSON: %v", err)
	}
	if resp.Service != "trust-engine-test" {
		t.Errorf("health service = %q, want trust-engine-test", resp.Service)
	}
	if resp.Status != httpserver.HealthStatusHealthy {
		t.Errorf("health status = %q, want %q", resp.Status, httpserver.HealthStatusHealthy)
	}
}

func TestHealthAggregatesNamedChecks(t *testing.T) {
	t.Parallel()

	srv := buildTestServer(t, func(b *httpserver.ServerBuilder) {
		b.WithHealthCheck("upstream", func() httpserver.CheckResult {
			return httpserver.CheckResult{Status: httpserver.HealthStatusHealthy, Message: "upstream OK"}
		})
		b.WithHealthCheck("cache", func() httpserver.CheckResult {
			return httpserver.CheckResult{Status: httpserver.HealthStatusDegraded, Message: "cache slow"}
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /health status = %d, want %d (degraded is still 200)", w.Code, http.StatusOK)
	}

	var resp httpserver.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("health response is not JSON: %v", err)
	}
	if resp.Status != httpserver.HealthStatusDegraded {
		t.Errorf("aggregate status = %q, want %q", resp.Status, httpserver.HealthStatusDegraded)
	}
	if len(resp.Checks) != 2 {
		t.Errorf("checks = %d, want 2", len(resp.Checks))
	}
}

func TestHealthUnhealthyCheckReturns503(t *testing.T) {
	t.Parallel()

	srv := buildTestServer(t, func(b *httpserver.ServerBuilder) {
		b.WithHealthCheck("upstream", func() httpserver.CheckResult {
			return httpserver.CheckResult{Status: httpserver.HealthStatusUnhealthy, Message: "upstream down"}
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("GET /health status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}

func TestReadyReflectsCheckState(t *testing.T) {
	t.Parallel()

	healthy := buildTestServer(t)
	broken := buildTestServer(t, func(b *httpserver.ServerBuilder) {
		b.WithHealthCheck("upstream", func() httpserver.CheckResult {
			return httpserver.CheckResult{Status: httpserver.HealthStatusUnhealthy, Message: "down"}
		})
	})

	w := httptest.NewRecorder()
	healthy.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", http.NoBody))
	if w.Code != http.StatusOK {
		t.Errorf("healthy GET /ready status = %d, want %d", w.Code, http.StatusOK)
	}

	w = httptest.NewRecorder()
	broken.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", http.NoBody))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("broken GET /ready status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}

func TestBuildServesMetricsHandler(t *testing.T) {
	t.Parallel()

	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})
	srv := buildTestServer(t, func(b *httpserver.ServerBuilder) {
		b.WithMetricsHandler(metrics)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /metrics status = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.String() != "# metrics" {
		t.Errorf("metrics body = %q, want handler output", w.Body.String())
	}
}

func TestBuildAppliesServiceRoutes(t *testing.T) {
	t.Parallel()

	srv := buildTestServer(t, func(b *httpserver.ServerBuilder) {
		b.WithRoutes(func(router *gin.Engine) {
			router.GET("/custom", func(c *gin.Context) {
				c.String(http.StatusOK, "custom route")
			})
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/custom", http.NoBody)
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("GET /custom status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRedisHealthCheckerDegradesOnFailure(t *testing.T) {
	t.Parallel()

	okChecker := httpserver.RedisHealthChecker(func() error { return nil })
	if got := okChecker(); got.Status != httpserver.HealthStatusHealthy {
		t.Errorf("ok ping status = %q, want %q", got.Status, httpserver.HealthStatusHealthy)
	}

	downChecker := httpserver.RedisHealthChecker(func() error { return errors.New("connection refused") })
	got := downChecker()
	if got.Status != httpserver.HealthStatusDegraded {
		t.Errorf("failed ping status = %q, want %q (cache loss degrades, not fails)", got.Status, httpserver.HealthStatusDegraded)
	}
	if got.Latency == "" {
		t.Error("failed ping latency not recorded")
	}
}
