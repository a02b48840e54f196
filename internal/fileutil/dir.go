package fileutil

import (
	"fmt"
	"os"
)

// EnsureDir creates a directory and all parent directories if they don't exist.
// Uses mode 0755. Returns nil if directory already exists.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// IsDir reports whether path exists and is a directory. Symlinks are
// followed. Any stat error, including permission errors, reports false.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path exists and is not a directory.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
