package httpserver

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthStatus represents the status of a health check.
type HealthStatus string

const (
	// HealthStatusHealthy indicates the service is healthy.
	HealthStatusHealthy HealthStatus = "healthy"
	// HealthStatusDegraded indicates the service is degraded but functional.
	HealthStatusDegraded HealthStatus = "degraded"
	// HealthStatusUnhealthy indicates the service is unhealthy.
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResponse is the standardized health check response format.
type HealthResponse struct {
	Status  HealthStatus           `json:"status"`
	Service string                 `json:"service"`
	Version string                 `json:"version"`
	Uptime  string                 `json:"uptime,omitempty"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult is the result of one named health check.
type CheckResult struct {
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
	Latency string       `json:"latency,omitempty"`
}

// HealthChecker performs one health check.
type HealthChecker func() CheckResult

// HealthOptions configures the health endpoints.
type HealthOptions struct {
	ServiceName    string
	ServiceVersion string
	// Checks maps check names to checkers. A degraded check lowers the
	// aggregate to degraded; an unhealthy check makes /health return 503
	// and /ready report not ready.
	Checks map[string]HealthChecker
}

// healthState tracks process start time for uptime reporting.
var healthState = struct {
	sync.Once
	startTime time.Time
}{}

func initStartTime() {
	healthState.Do(func() {
		healthState.startTime = time.Now()
	})
}

// RegisterHealthRoutes adds the health and readiness endpoints:
//   - GET /health  - aggregate status with named check results
//   - HEAD /health - lightweight probe for load balancers
//   - GET /ready   - readiness: 503 until every check is non-unhealthy
func RegisterHealthRoutes(router *gin.Engine, opts HealthOptions) {
	initStartTime()

	router.GET("/health", healthHandler(opts))
	router.HEAD("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/ready", readyHandler(opts))
}

func healthHandler(opts HealthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := HealthResponse{
			Status:  HealthStatusHealthy,
			Service: opts.ServiceName,
			Version: opts.ServiceVersion,
			Uptime:  formatUptime(time.Since(healthState.startTime)),
		}

		if len(opts.Checks) > 0 {
			response.Checks = make(map[string]CheckResult, len(opts.Checks))
			for name, checker := range opts.Checks {
				result := checker()
				response.Checks[name] = result

				switch result.Status {
				case HealthStatusUnhealthy:
					response.Status = HealthStatusUnhealthy
				case HealthStatusDegraded:
					if response.Status == HealthStatusHealthy {
						response.Status = HealthStatusDegraded
					}
				case HealthStatusHealthy:
				}
			}
		}

		statusCode := http.StatusOK
		if response.Status == HealthStatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, response)
	}
}

func readyHandler(opts HealthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		for name, checker := range opts.Checks {
			if result := checker(); result.Status == HealthStatusUnhealthy {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "not ready",
					"check":  name,
					"reason": result.Message,
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

// formatUptime formats a duration as a compact human-readable string.
func formatUptime(d time.Duration) string {
	const hoursPerDay = 24

	days := int(d.Hours()) / hoursPerDay
	hours := int(d.Hours()) % hoursPerDay
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// PingHealthChecker builds a checker from a ping function. failStatus
// controls whether a failed ping marks the service unhealthy or merely
// degraded (a cache backend is usually degraded, not fatal).
func PingHealthChecker(description string, failStatus HealthStatus, ping func() error) HealthChecker {
	return func() CheckResult {
		start := time.Now()
		err := ping()
		latency := time.Since(start)

		if err != nil {
			return CheckResult{
				Status:  failStatus,
				Message: description + " unavailable: " + err.Error(),
				Latency: latency.String(),
			}
		}
		return CheckResult{
			Status:  HealthStatusHealthy,
			Message: description + " OK",
			Latency: latency.String(),
		}
	}
}

// RedisHealthChecker reports the detector cache backend. Redis being down
// degrades the service (the detector falls back to the in-process cache
// path) rather than failing it.
func RedisHealthChecker(ping func() error) HealthChecker {
	return PingHealthChecker("Redis connection", HealthStatusDegraded, ping)
}
