package baostack

import (
	"github.com/baobuildbuddy/baostack/internal/core"
	"github.com/baobuildbuddy/baostack/internal/readiness"
	"github.com/baobuildbuddy/baostack/internal/startup"
	"github.com/baobuildbuddy/baostack/internal/supervisor"
	"github.com/baobuildbuddy/baostack/internal/workspace"
)

// Sentinel errors for error inspection with errors.Is.
// These are immutable constants safe for use in wrapped error chain comparison.
const (
	// ErrWorkspaceNotFound is returned by Start when no workspace root could
	// be found and BAO_WORKSPACE_ROOT is not set.
	ErrWorkspaceNotFound = workspace.ErrWorkspaceNotFound

	// ErrInvalidPortValue is returned by New when PORT or CLIENT_PORT is
	// set but is not a valid port number.
	ErrInvalidPortValue = startup.ErrInvalidPortValue

	// ErrSpawnFailed is returned by Start when the bootstrap command could
	// not be launched. The OS error is in the chain.
	ErrSpawnFailed = core.ErrSpawnFailed

	// ErrTimedOut is returned by Start when a port did not accept
	// connections within the ready timeout.
	ErrTimedOut = readiness.ErrTimedOut

	// ErrChildExited is returned by Start when the spawned bootstrap process
	// exited with an error before both ports became ready.
	ErrChildExited = readiness.ErrChildExited

	// ErrLockUnavailable means the supervisor could not record the child.
	// Start logs it and continues; it is exported for completeness.
	ErrLockUnavailable = supervisor.ErrLockUnavailable

	// ErrChildAlreadyTracked means a second child was offered to the
	// supervisor. Start terminates the new child and fails.
	ErrChildAlreadyTracked = supervisor.ErrChildAlreadyTracked

	// ErrAlreadyStarted is returned by every Start after the first.
	ErrAlreadyStarted = core.ErrAlreadyStarted

	// ErrShutdown is returned by Start when Shutdown ran concurrently.
	ErrShutdown = core.ErrShutdown

	// ErrStackFailed is returned when waiting on a stack whose startup
	// already failed.
	ErrStackFailed = core.ErrStackFailed
)
