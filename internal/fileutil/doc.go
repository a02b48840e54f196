// Package fileutil holds the small filesystem predicates and helpers baostack
// needs: IsDir and IsFile back the workspace root marker, and EnsureDir
// prepares the spawn lock directory.
package fileutil
