//go:build unix

package process

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// signalGroup delivers sig to the process group led by p. If the group
// cannot be signaled for a reason other than it being gone, the leader is
// signaled directly.
func signalGroup(p *os.Process, sig syscall.Signal) error {
	err := syscall.Kill(-p.Pid, sig)
	if err == nil {
		return nil
	}
	if errors.Is(err, syscall.ESRCH) {
		return os.ErrProcessDone
	}
	return p.Signal(sig)
}

// isProcessGone reports whether err means the target no longer exists.
func isProcessGone(err error) bool {
	return errors.Is(err, os.ErrProcessDone) || errors.Is(err, syscall.ESRCH)
}

// isTerminationExit reports whether exitErr was produced by SIGTERM or
// SIGKILL, directly or as a 128+signal exit code.
func isTerminationExit(exitErr *exec.ExitError) bool {
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		sig := status.Signal()
		return sig == syscall.SIGTERM || sig == syscall.SIGKILL
	}
	code := exitErr.ExitCode()
	return code == 128+int(syscall.SIGTERM) || code == 128+int(syscall.SIGKILL)
}
