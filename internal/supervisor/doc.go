// Package supervisor tracks the single child process the orchestrator may
// spawn and guarantees it is terminated exactly once on shutdown.
//
// The tracked slot starts empty, is filled at most once by SetChild, and is
// emptied by the first Shutdown. Both operations are safe to call from
// independent goroutines, for example a signal handler racing a deferred
// cleanup.
package supervisor
