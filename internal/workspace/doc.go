// Package workspace locates the root of the project checkout that the dev
// stack is launched from. A directory is the root iff it directly contains a
// package.json manifest file and a packages/ directory.
package workspace
