package baostack

import "context"

// Stack is a dev stack that may or may not have been spawned by this
// process.
//
// Callers follow this lifecycle:
//
//	New → Start → Shutdown
//
// Shutdown is safe at any point, including before or during Start.
type Stack interface {
	// Start ensures both services are running, spawning the bootstrap
	// command if needed, and blocks until both ports accept connections.
	//
	// Returns an error matching ErrWorkspaceNotFound, ErrSpawnFailed,
	// ErrTimedOut or ErrChildExited on failure. A second call returns
	// ErrAlreadyStarted.
	Start(ctx context.Context) (Endpoints, error)

	// Shutdown terminates the spawned bootstrap process and everything in
	// its process group, waiting until it has exited. It never fails;
	// problems are logged. Idempotent.
	Shutdown()

	// Endpoints returns the configured addresses. They are reachable only
	// after a successful Start.
	Endpoints() Endpoints

	// State reports the current lifecycle state.
	State() State
}
