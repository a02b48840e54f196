package supervisor

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/baobuildbuddy/baostack/internal/process"
	"github.com/baobuildbuddy/baostack/internal/sentinel"
)

// ErrLockUnavailable is returned by SetChild when the supervisor cannot
// guard its slot. A nil *Supervisor is the only such state: sync.Mutex has
// no poisoned mode.
const ErrLockUnavailable = sentinel.Error("supervisor lock unavailable")

// ErrChildAlreadyTracked is returned by SetChild when a child is already
// being tracked. The slot is left unchanged.
const ErrChildAlreadyTracked = sentinel.Error("a child process is already tracked")

// Child is the handle the supervisor terminates on shutdown.
// *process.Process implements it.
type Child interface {
	Name() string
	PID() int
	Terminate(timeout time.Duration) (process.Outcome, error)
}

var _ Child = (*process.Process)(nil)

const shutdownKey = "shutdown"

// Supervisor owns at most one Child.
type Supervisor struct {
	mu    sync.Mutex
	child Child

	group       singleflight.Group
	log         *slog.Logger
	stopTimeout time.Duration
}

// New returns an empty supervisor. A nil logger uses slog.Default(); a
// non-positive stopTimeout uses process.DefaultStopTimeout.
func New(logger *slog.Logger, stopTimeout time.Duration) *Supervisor {
	if logger == nil {
		logger = slog.Default()
	}
	if stopTimeout <= 0 {
		stopTimeout = process.DefaultStopTimeout
	}
	return &Supervisor{log: logger, stopTimeout: stopTimeout}
}

// SetChild records c as the tracked child. It never panics.
func (s *Supervisor) SetChild(c Child) error {
	if s == nil {
		slog.Default().Warn("supervisor unavailable, child will not be tracked",
			"process", c.Name(), "pid", c.PID())
		return ErrLockUnavailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.child != nil {
		return ErrChildAlreadyTracked
	}
	s.child = c
	s.log.Debug("tracking child", "process", c.Name(), "pid", c.PID())
	return nil
}

// Tracked reports whether a child is currently held.
func (s *Supervisor) Tracked() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.child != nil
}

// Shutdown terminates the tracked child, if any, and waits for it to be
// reaped. It is idempotent and never returns an error: failures are logged.
// Concurrent callers share one termination and all return after it ends.
func (s *Supervisor) Shutdown() {
	if s == nil {
		return
	}
	_, _, _ = s.group.Do(shutdownKey, func() (any, error) {
		s.shutdown()
		return nil, nil
	})
}

func (s *Supervisor) shutdown() {
	s.mu.Lock()
	c := s.child
	s.child = nil
	s.mu.Unlock()

	if c == nil {
		return
	}

	outcome, err := c.Terminate(s.stopTimeout)
	switch {
	case err != nil:
		s.log.Warn("failed to terminate child", "process", c.Name(), "pid", c.PID(), "error", err)
	case outcome == process.AlreadyExited:
		s.log.Debug("child already exited", "process", c.Name(), "pid", c.PID())
	default:
		s.log.Info("child terminated", "process", c.Name(), "pid", c.PID())
	}
}
