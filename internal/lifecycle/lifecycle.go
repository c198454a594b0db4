// Package lifecycle holds process-wide drain state shared by the health
// handler and the shutdown sequence.
package lifecycle

import "sync/atomic"

var shuttingDown atomic.Bool

// SetShuttingDown marks the process as draining. main sets it on SIGTERM/SIGINT
// before stopping the server; /health then answers 503 shutting-down.
func SetShuttingDown(v bool) {
	shuttingDown.Store(v)
}

// IsShuttingDown reports whether the process is draining and should not receive new lookups.
func IsShuttingDown() bool {
	return shuttingDown.Load()
}
