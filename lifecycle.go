// Package zlayout is the spatial-indexing core: Morton-ordered quadtrees
// and R-trees composed into a hierarchical IP-block index, plus the EDA
// geometry analyses built on top of them.
package zlayout

import (
	"sync"

	"github.com/arx-os/zlayout/internal/telemetry/logger"
)

// state holds the library's process-wide lifecycle flag. A library has no
// daemon to own a DI container the way the teacher's cmd/arx does, so this
// is scaled down to a package-level singleton guarded by a mutex, following
// the same initialized-bool-plus-mutex shape as the teacher's
// internal/app/di.Container.
var state struct {
	mu              sync.Mutex
	initialized     bool
	parallelEnabled bool
}

// Initialize marks the library ready and records whether parallel
// processing (worker-pool-backed operations) is enabled. It is
// idempotent-with-warning: calling it again while already initialized logs
// a warning and returns true without changing the recorded flag.
func Initialize(enableParallel bool) bool {
	state.mu.Lock()
	defer state.mu.Unlock()

	if state.initialized {
		logger.Warn("zlayout already initialized, ignoring repeated Initialize call")
		return true
	}
	state.initialized = true
	state.parallelEnabled = enableParallel
	return true
}

// ParallelEnabled reports the flag recorded by the most recent Initialize
// call; hierarchical.New consults this at construction time.
func ParallelEnabled() bool {
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.parallelEnabled
}

// Initialized reports whether Initialize has been called since the last
// Cleanup.
func Initialized() bool {
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.initialized
}

// Cleanup returns the library to its uninitialized state.
func Cleanup() {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.initialized = false
	state.parallelEnabled = false
}
