package core

import "fmt"

// State is the orchestrator lifecycle state.
type State uint32

const (
	StateNotStarted State = iota // Zero value; New returns in this state
	StateSpawning                // Services were down; spawn in progress
	StateWaiting                 // Child spawned; readiness wait pending or running
	StateReady                   // Both services accept connections
	StateFailed                  // Terminal; see the error that caused it
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not started"
	case StateSpawning:
		return "spawning"
	case StateWaiting:
		return "waiting"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", uint32(s))
	}
}
