package process

import (
	"errors"
	"fmt"
	"os/exec"
	"syscall"
	"time"
)

// Outcome tags how Terminate ended for a process that is no longer running.
type Outcome int

const (
	// Terminated means the termination signal was delivered and the
	// process exited in response.
	Terminated Outcome = iota + 1

	// AlreadyExited means the process was gone before it could be
	// signaled. This is expected when the stack exits on its own.
	AlreadyExited
)

func (o Outcome) String() string {
	switch o {
	case Terminated:
		return "terminated"
	case AlreadyExited:
		return "already exited"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// termGracePeriod is the maximum time to wait for a process to exit after
// SIGTERM before escalating to SIGKILL. The actual grace period is capped
// at the overall timeout.
const termGracePeriod = 5 * time.Second

// killDrainTimeout bounds the wait for the reaper goroutine after SIGKILL or
// after the process was found already gone.
const killDrainTimeout = 10 * time.Second

// Terminate stops the process group: SIGTERM, then SIGKILL after a grace
// period, then a synchronous wait until the exit has been reaped. It runs at
// most once; later calls return the first result.
//
// A process that was already gone yields (AlreadyExited, nil). A non-nil
// error means termination genuinely failed or the exit status was not the
// one a termination signal produces.
//
// Worst-case blocking duration is timeout + killDrainTimeout.
func (p *Process) Terminate(timeout time.Duration) (Outcome, error) {
	p.stopOnce.Do(func() {
		if timeout <= 0 {
			timeout = DefaultStopTimeout
		}
		p.outcome, p.stopErr = p.terminate(timeout)
		p.log.Debug("process stopped", "process", p.name, "pid", p.PID(), "outcome", p.outcome)
	})
	return p.outcome, p.stopErr
}

func (p *Process) terminate(timeout time.Duration) (Outcome, error) {
	proc := p.cmd.Process

	select {
	case <-p.exited:
		// The leader is reaped; forked dev servers may still hold the
		// group, so ask them to leave too.
		_ = signalGroup(proc, syscall.SIGTERM)
		return AlreadyExited, nil
	default:
	}

	if err := signalGroup(proc, syscall.SIGTERM); err != nil {
		if isProcessGone(err) {
			if !waitExited(p.exited, killDrainTimeout) {
				return AlreadyExited, fmt.Errorf("%s: timed out draining process after signal failure", p.name)
			}
			return AlreadyExited, nil
		}
		// Signal delivery failed for another reason; fall back to killing
		// the leader directly.
		if killErr := proc.Kill(); killErr != nil && !isProcessGone(killErr) {
			return Terminated, fmt.Errorf("%s: terminate pid %d: %w", p.name, proc.Pid, errors.Join(err, killErr))
		}
		if !waitExited(p.exited, killDrainTimeout) {
			return Terminated, fmt.Errorf("%s: timed out waiting for process to exit after SIGKILL", p.name)
		}
		return Terminated, nil
	}

	// grace is clamped to timeout so SIGKILL always fires before the total
	// timeout expires.
	grace := min(termGracePeriod, timeout)
	killTimer := time.AfterFunc(grace, func() {
		_ = signalGroup(proc, syscall.SIGKILL)
	})
	defer killTimer.Stop()

	totalTimer := time.NewTimer(timeout)
	defer totalTimer.Stop()

	select {
	case <-p.exited:
		return Terminated, expectSignalExit(p.exitErr, p.name)
	case <-totalTimer.C:
		if !waitExited(p.exited, killDrainTimeout) {
			return Terminated, fmt.Errorf("%s: timed out waiting for process to exit after SIGKILL", p.name)
		}
		if err := expectSignalExit(p.exitErr, p.name); err != nil {
			return Terminated, fmt.Errorf("%s stop timeout: %w", p.name, err)
		}
		return Terminated, nil
	}
}

// waitExited waits for exited to close, at most timeout. It reports whether
// the channel closed in time.
func waitExited(exited <-chan struct{}, timeout time.Duration) bool {
	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case <-exited:
		return true
	case <-t.C:
		return false
	}
}

// expectSignalExit interprets a cmd.Wait error after a termination signal.
// Exits caused by SIGTERM or SIGKILL, including shells that translate them
// into 128+signal exit codes, are treated as successful stops.
func expectSignalExit(err error, name string) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && isTerminationExit(exitErr) {
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}
