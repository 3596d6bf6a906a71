package profiling

import (
	"fmt"
	"os"
	"runtime"

	"github.com/grafana/pyroscope-go"
)

const defaultPyroscopeURL = "http://pyroscope:4040"

// Continuous wraps a running Pyroscope session.
type Continuous struct {
	profiler *pyroscope.Profiler
}

// StartContinuous ships continuous profiles to a Pyroscope server when
// ENABLE_CONTINUOUS_PROFILING=true. The server address comes from
// PYROSCOPE_SERVER_URL and the environment tag from
// PYROSCOPE_ENVIRONMENT. Returns (nil, nil) when disabled.
func StartContinuous(serviceName string) (*Continuous, error) {
	if os.Getenv("ENABLE_CONTINUOUS_PROFILING") != "true" {
		return nil, nil
	}

	serverURL := os.Getenv("PYROSCOPE_SERVER_URL")
	if serverURL == "" {
		serverURL = defaultPyroscopeURL
	}
	environment := os.Getenv("PYROSCOPE_ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: "fakecatcher." + serviceName,
		ServerAddress:   serverURL,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
		Tags: map[string]string{
			"environment": environment,
			"hostname":    hostname(),
			"go_version":  runtime.Version(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("starting pyroscope: %w", err)
	}
	return &Continuous{profiler: profiler}, nil
}

// Stop flushes and stops the Pyroscope session. Safe to call on nil.
func (c *Continuous) Stop() error {
	if c == nil || c.profiler == nil {
		return nil
	}
	return c.profiler.Stop()
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
