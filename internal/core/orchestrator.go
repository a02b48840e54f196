package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/baobuildbuddy/baostack/internal/process"
	"github.com/baobuildbuddy/baostack/internal/readiness"
	"github.com/baobuildbuddy/baostack/internal/spawnlock"
	"github.com/baobuildbuddy/baostack/internal/supervisor"
)

// Orchestrator brings the dev stack up once and tears down what it started.
//
// Synchronization strategy:
//   - state is an atomic State, readable at any time through State.
//   - begun guards the single EnsureStackRunning call.
//   - mu guards child and lock, which are written during startup and read
//     by WaitForServices and Shutdown, possibly from a signal goroutine.
type Orchestrator struct {
	cfg    Config
	prober *readiness.Prober
	sup    *supervisor.Supervisor

	state  atomic.Uint32 // State; zero value is StateNotStarted
	begun  atomic.Bool
	closed atomic.Bool

	mu    sync.Mutex
	child *process.Process
	lock  *spawnlock.Lock
}

// New validates cfg and returns an Orchestrator in StateNotStarted.
func New(cfg Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid orchestrator config: %w", err)
	}
	if cfg.Locator.Override == "" {
		cfg.Locator.Override = cfg.Startup.WorkspaceRootOverride()
	}
	log := Logger()
	return &Orchestrator{
		cfg:    cfg,
		prober: readiness.New(log),
		sup:    supervisor.New(log, cfg.StopTimeout),
	}, nil
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	return State(o.state.Load())
}

func (o *Orchestrator) storeState(s State) {
	prev := State(o.state.Swap(uint32(s)))
	if prev != s {
		Logger().Debug("state transition", "from", prev, "to", s)
	}
}

// Endpoints returns the configured service addresses.
func (o *Orchestrator) Endpoints() Endpoints {
	return Endpoints{
		Host:       o.cfg.Startup.Host,
		ServerPort: uint16(o.cfg.Startup.ServerPort),
		ClientPort: uint16(o.cfg.Startup.ClientPort),
	}
}

// EnsureStackRunning makes sure both services are running or being started.
// It reports spawned=false when they were already reachable. When either is
// down it resolves the workspace root and launches the bootstrap command
// there; the caller must follow up with WaitForServices.
//
// Only the first call does any work; later calls return ErrAlreadyStarted.
func (o *Orchestrator) EnsureStackRunning(ctx context.Context) (bool, error) {
	if !o.begun.CompareAndSwap(false, true) {
		return false, ErrAlreadyStarted
	}

	ep := o.Endpoints()
	if o.prober.AllReady(ctx, ep.Host, ep.ServerPort, ep.ClientPort) {
		Logger().Info("dev stack already running", "server", ep.ServerURL(), "ui", ep.ClientURL())
		o.storeState(StateReady)
		return false, nil
	}
	o.storeState(StateSpawning)

	if o.acquireSpawnLock(ctx) && o.prober.AllReady(ctx, ep.Host, ep.ServerPort, ep.ClientPort) {
		// Another instance brought the stack up while we waited for the lock.
		Logger().Info("dev stack started by another instance", "server", ep.ServerURL(), "ui", ep.ClientURL())
		o.releaseSpawnLock()
		o.storeState(StateReady)
		return false, nil
	}

	if o.closed.Load() {
		return false, o.fail(ErrShutdown)
	}

	root, err := o.cfg.Locator.Resolve()
	if err != nil {
		return false, o.fail(fmt.Errorf("resolve workspace root: %w", err))
	}

	child, err := o.spawn(root)
	if err != nil {
		return false, o.fail(err)
	}

	if err := o.sup.SetChild(child); err != nil {
		switch {
		case errors.Is(err, supervisor.ErrChildAlreadyTracked):
			// Not reachable while begun admits a single spawn.
			if _, termErr := child.Terminate(o.cfg.StopTimeout); termErr != nil {
				Logger().Warn("failed to terminate untracked child", "pid", child.PID(), "error", termErr)
			}
			return false, o.fail(fmt.Errorf("track bootstrap process: %w", err))
		default:
			Logger().Warn("bootstrap process is not tracked and will not be stopped on shutdown",
				"pid", child.PID(), "error", err)
		}
	}

	o.mu.Lock()
	o.child = child
	o.mu.Unlock()

	if o.closed.Load() {
		// Shutdown raced the spawn; run it again now that the child is tracked.
		o.sup.Shutdown()
		return true, o.fail(ErrShutdown)
	}

	o.storeState(StateWaiting)
	return true, nil
}

// spawn launches the bootstrap command in root with the service env.
func (o *Orchestrator) spawn(root string) (*process.Process, error) {
	command := o.cfg.Startup.BootstrapCommand()
	args := o.cfg.BootstrapArgs
	environ := o.cfg.Environ
	if environ == nil {
		environ = os.Environ()
	}

	child, err := process.Start(process.Spec{
		Name:    filepath.Base(command),
		Command: command,
		Args:    args,
		Dir:     root,
		Env:     o.cfg.Startup.SpawnEnv(environ),
		Stdout:  o.cfg.Stdout,
		Stderr:  o.cfg.Stderr,
		Logger:  Logger(),
	})
	if err != nil {
		// process.Start wraps the cause; unwrap one level so SpawnError
		// carries the OS error directly.
		cause := errors.Unwrap(err)
		if cause == nil {
			cause = err
		}
		return nil, &SpawnError{Command: command, Args: args, Dir: root, Err: cause}
	}

	Logger().Info("spawned dev stack", "command", command, "args", args, "dir", root, "pid", child.PID())
	return child, nil
}

// WaitForServices blocks until the server port and then the client port
// accept connections. Each port gets the full ReadyTimeout. If the spawned
// child exits with an error first, the wait is cut short.
func (o *Orchestrator) WaitForServices(ctx context.Context) (Endpoints, error) {
	defer o.releaseSpawnLock()

	ep := o.Endpoints()
	switch o.State() {
	case StateReady:
		return ep, nil
	case StateFailed:
		return Endpoints{}, ErrStackFailed
	}
	o.storeState(StateWaiting)

	o.mu.Lock()
	child := o.child
	o.mu.Unlock()

	for _, port := range []uint16{ep.ServerPort, ep.ClientPort} {
		wc := readiness.WaitConfig{
			Host:     ep.Host,
			Port:     port,
			Interval: o.cfg.PollInterval,
			Timeout:  o.cfg.ReadyTimeout,
		}
		if child != nil {
			wc.ChildExited = child.Exited()
			wc.ChildErr = child.ExitErr
		}
		if err := o.prober.WaitUntilReady(ctx, wc); err != nil {
			return Endpoints{}, o.fail(err)
		}
	}

	o.storeState(StateReady)
	return ep, nil
}

// Start runs EnsureStackRunning followed by WaitForServices.
func (o *Orchestrator) Start(ctx context.Context) (Endpoints, error) {
	spawned, err := o.EnsureStackRunning(ctx)
	if err != nil {
		return Endpoints{}, err
	}
	ep, err := o.WaitForServices(ctx)
	if err != nil {
		return Endpoints{}, err
	}
	Logger().Info("dev stack ready", "server", ep.ServerURL(), "ui", ep.ClientURL(), "spawned", spawned)
	return ep, nil
}

// Shutdown releases the spawn lock and terminates the spawned child, if
// any. It is idempotent, safe to call concurrently and safe to call when
// nothing was spawned.
func (o *Orchestrator) Shutdown() {
	o.closed.Store(true)
	o.releaseSpawnLock()
	o.sup.Shutdown()
}

// fail moves to StateFailed, drops the spawn lock and returns err.
func (o *Orchestrator) fail(err error) error {
	o.storeState(StateFailed)
	o.releaseSpawnLock()
	Logger().Debug("dev stack startup failed", "error", err)
	return err
}

// acquireSpawnLock takes the spawn lock, waiting at most spawnLockWait for
// another instance to finish. It reports whether the lock is held. Failure
// is logged and startup continues unlocked.
func (o *Orchestrator) acquireSpawnLock(ctx context.Context) bool {
	if o.cfg.DisableSpawnLock {
		return false
	}
	lockCtx, cancel := context.WithTimeout(ctx, o.cfg.spawnLockWait())
	defer cancel()

	l, err := spawnlock.Acquire(lockCtx, Logger(), o.cfg.LockDir, o.cfg.Startup.Host, uint16(o.cfg.Startup.ServerPort))
	if err != nil {
		Logger().Warn("spawn lock unavailable, continuing without it", "error", err)
		return false
	}

	o.mu.Lock()
	o.lock = l
	o.mu.Unlock()
	return true
}

func (o *Orchestrator) releaseSpawnLock() {
	o.mu.Lock()
	l := o.lock
	o.lock = nil
	o.mu.Unlock()

	l.Release()
}
