//go:build unix && !linux

package process

import (
	"os/exec"
	"syscall"
)

// configureSysProcAttr puts the child in its own process group.
// Pdeathsig (parent-death signal) is a Linux-only kernel feature.
func configureSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
