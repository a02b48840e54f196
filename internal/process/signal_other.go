//go:build !unix

package process

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// signalGroup kills p. Process groups and catchable termination signals are
// not available here, so every signal is a kill.
func signalGroup(p *os.Process, _ syscall.Signal) error {
	return p.Kill()
}

// isProcessGone reports whether err means the target no longer exists.
func isProcessGone(err error) bool {
	return errors.Is(err, os.ErrProcessDone)
}

// isTerminationExit reports true for any exit status: a killed process has
// no signal information to inspect.
func isTerminationExit(_ *exec.ExitError) bool {
	return true
}
