package process

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/baobuildbuddy/baostack/internal/sentinel"
)

// ErrEmptyCommand is returned by Start when Spec.Command is empty.
const ErrEmptyCommand = sentinel.Error("command must not be empty")

// ErrEmptyName is returned by Start when Spec.Name is empty.
const ErrEmptyName = sentinel.Error("process name must not be empty")

// DefaultStopTimeout is the default overall budget for Terminate.
const DefaultStopTimeout = 10 * time.Second

// Spec describes the process to launch.
type Spec struct {
	Name    string   // For logging and error messages (e.g., "bun")
	Command string   // Executable name or path, resolved via PATH
	Args    []string // Arguments after the command
	Dir     string   // Working directory; "" means the parent's
	Env     []string // Full environment; nil inherits the parent's

	// Stdout and Stderr default to the parent's streams so operators see
	// the dev servers' output.
	Stdout io.Writer
	Stderr io.Writer

	Logger *slog.Logger // Optional, defaults to slog.Default()
}

// Process is a started child. Exited, ExitErr and PID are safe for
// concurrent use; Terminate may be called from any goroutine and runs its
// shutdown sequence at most once.
type Process struct {
	cmd  *exec.Cmd
	name string
	log  *slog.Logger

	exited  chan struct{} // closed after cmd.Wait returns
	exitErr error         // cmd.Wait result; written before exited is closed

	stopOnce sync.Once
	outcome  Outcome
	stopErr  error
}

// Start launches the process described by spec. Stdin is connected to the
// null device. On failure the OS error (e.g., exec.ErrNotFound) is wrapped.
func Start(spec Spec) (*Process, error) {
	if spec.Name == "" {
		return nil, ErrEmptyName
	}
	if spec.Command == "" {
		return nil, ErrEmptyCommand
	}
	log := spec.Logger
	if log == nil {
		log = slog.Default()
	}

	cmd := exec.Command(spec.Command, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	cmd.Stdin = nil
	cmd.Stdout = spec.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = spec.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	configureSysProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s process: %w", spec.Name, err)
	}

	p := &Process{
		cmd:    cmd,
		name:   spec.Name,
		log:    log,
		exited: make(chan struct{}),
	}
	// cmd.Wait must be called exactly once; this goroutine owns it.
	go func() {
		p.exitErr = cmd.Wait()
		close(p.exited)
	}()

	log.Debug("process started", "process", spec.Name, "pid", cmd.Process.Pid, "dir", spec.Dir)
	return p, nil
}

// Name returns the process name given in Spec.
func (p *Process) Name() string {
	return p.name
}

// PID returns the OS process id.
func (p *Process) PID() int {
	return p.cmd.Process.Pid
}

// Exited returns a channel closed once the process has exited and been
// reaped. It can be selected on from any number of goroutines.
func (p *Process) Exited() <-chan struct{} {
	return p.exited
}

// ExitErr returns the cmd.Wait result once Exited is closed, and nil while
// the process is still running.
func (p *Process) ExitErr() error {
	select {
	case <-p.exited:
		return p.exitErr
	default:
		return nil
	}
}
