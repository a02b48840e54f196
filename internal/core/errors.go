package core

import (
	"fmt"
	"strings"

	"github.com/baobuildbuddy/baostack/internal/sentinel"
)

// ErrSpawnFailed matches every *SpawnError.
const ErrSpawnFailed = sentinel.Error("failed to spawn bootstrap command")

// ErrAlreadyStarted is returned by EnsureStackRunning on every call after
// the first. An Orchestrator drives a single startup.
const ErrAlreadyStarted = sentinel.Error("stack orchestration already started")

// ErrStackFailed is returned by WaitForServices after startup has failed.
const ErrStackFailed = sentinel.Error("stack startup failed")

// ErrShutdown is returned by EnsureStackRunning when Shutdown was called
// while the bootstrap command was being spawned. The child is terminated.
const ErrShutdown = sentinel.Error("orchestrator shut down during startup")

// SpawnError reports a bootstrap command that could not be started. Err is
// the OS-level cause, e.g. exec.ErrNotFound.
type SpawnError struct {
	Command string
	Args    []string
	Dir     string
	Err     error
}

func (e *SpawnError) Error() string {
	cmdline := strings.TrimSpace(e.Command + " " + strings.Join(e.Args, " "))
	return fmt.Sprintf("spawn %q in %s: %v", cmdline, e.Dir, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrSpawnFailed) true for any *SpawnError.
func (e *SpawnError) Is(target error) bool {
	return target == ErrSpawnFailed
}
