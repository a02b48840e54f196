// Package sentinel defines Error, a string-backed error type that can be
// declared as a const. Every baostack sentinel (workspace not found, invalid
// port, spawn failed, timed out) is declared with it so that callers cannot
// reassign them and errors.Is keeps working through wrapped chains.
package sentinel
