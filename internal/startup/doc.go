// Package startup resolves the dev stack's startup configuration from the
// environment: host, server and client ports, the bootstrap command, the
// workspace root override and the optional auth override forwarded to the
// spawned process.
//
// Every field has a default that applies when its variable is absent. A port
// variable that is present but malformed is an error, never a silent
// fallback.
package startup
