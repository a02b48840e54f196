//go:build linux

package process

import (
	"os/exec"
	"syscall"
)

// configureSysProcAttr sets Linux-specific process attributes on cmd.
// Setpgid puts the child in its own group so Terminate reaches whatever the
// bootstrap tool forks. Pdeathsig sends the child SIGTERM if the parent dies
// abruptly, so a crashed wrapper does not leave the dev stack running.
func configureSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid:   true,
		Pdeathsig: syscall.SIGTERM,
	}
}
