// Package core implements the stack orchestrator behind the baostack facade.
//
// An Orchestrator runs once per process. EnsureStackRunning probes both
// service ports and, when either is down, spawns the bootstrap command from
// the workspace root under a machine-wide spawn lock. WaitForServices then
// blocks until both ports accept connections. Shutdown releases the lock and
// terminates anything that was spawned.
//
// Lifecycle:
//
//	NotStarted ──(already up)──────────────────────────► Ready
//	NotStarted ──► Spawning ──► Waiting ──► Ready
//	     └────────────┴────────────┴──────► Failed
package core
