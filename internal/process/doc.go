// Package process starts and terminates the dev stack's bootstrap process.
//
// Start launches one child with stdin closed and stdout/stderr inherited,
// runs a single cmd.Wait goroutine, and exposes the exit through Exited and
// ExitErr. Terminate performs the SIGTERM, grace period, SIGKILL sequence
// against the child's process group and reports whether the child had
// already exited as a tagged Outcome rather than an error.
package process
