// Package readiness decides whether a dev-stack service is live by opening a
// TCP connection to it. Ready performs one attempt, AllReady checks a set of
// ports on one host, and WaitUntilReady polls a single port on a fixed
// interval until it accepts connections or a deadline passes.
//
// Results are never cached: the services are separate processes whose state
// can change between polls.
package readiness
