// Package profiling wires the opt-in profiling backends for the trust
// engine. Both stay off unless the corresponding environment variable
// enables them, and both read the environment directly because they
// start before configuration loads.
package profiling

import (
	"errors"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"
)

// StartPprof starts the pprof HTTP server when ENABLE_PROFILING=true.
//
// The server binds to localhost only and serves the standard
// /debug/pprof/ endpoints on PPROF_PORT (default 6060):
//
//	/debug/pprof/heap      - heap allocations
//	/debug/pprof/goroutine - goroutine stacks
//	/debug/pprof/profile   - CPU profile (30s default)
//	/debug/pprof/block     - blocking operations
//	/debug/pprof/mutex     - mutex contention
func StartPprof() {
	if os.Getenv("ENABLE_PROFILING") != "true" {
		return
	}

	port := os.Getenv("PPROF_PORT")
	if port == "" {
		port = "6060"
	}
	// Localhost only so the profiling surface never faces the network.
	addr := "localhost:" + port

	srv := &http.Server{Addr: addr, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Printf("pprof listening on http://%s/debug/pprof/", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("pprof server stopped: %v", err)
		}
	}()
}
