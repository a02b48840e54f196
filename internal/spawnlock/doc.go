// Package spawnlock serializes bootstrap spawns across wrapper instances on
// the same machine with an exclusive file lock keyed by host and server
// port. The lock file is left on disk after release.
package spawnlock
