package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/baobuildbuddy/baostack/internal/fileutil"
	"github.com/baobuildbuddy/baostack/internal/sentinel"
)

// OverrideEnv names the environment variable that bypasses discovery.
const OverrideEnv = "BAO_WORKSPACE_ROOT"

const (
	// DefaultManifest is the project-definition file expected at the root.
	DefaultManifest = "package.json"

	// DefaultPackagesDir is the directory holding the checkout's packages.
	DefaultPackagesDir = "packages"
)

// ErrWorkspaceNotFound matches every *NotFoundError.
const ErrWorkspaceNotFound = sentinel.Error("workspace root not found")

// NotFoundError is returned by Resolve when neither the start directories'
// ancestors nor the working directory carry the root marker.
type NotFoundError struct {
	Searched []string // start directories and the working directory
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not locate repository workspace root (searched %v); set %s to your checkout path",
		e.Searched, OverrideEnv)
}

// Is makes errors.Is(err, ErrWorkspaceNotFound) true for any *NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrWorkspaceNotFound
}

// Locator resolves the workspace root. The zero value searches DefaultStartDirs
// and the process working directory for DefaultManifest and DefaultPackagesDir.
type Locator struct {
	// Override is returned verbatim when non-empty, without validation.
	Override string

	// StartDirs are walked upward, in order, looking for the marker.
	// Nil means DefaultStartDirs().
	StartDirs []string

	// Getwd returns the fallback directory. Nil means os.Getwd.
	Getwd func() (string, error)

	Manifest    string // "" means DefaultManifest
	PackagesDir string // "" means DefaultPackagesDir
}

// Resolve returns the workspace root: the override if set, else the closest
// qualifying ancestor of the first start directory that has one, else the
// working directory if it qualifies. Otherwise it returns a *NotFoundError.
func (l Locator) Resolve() (string, error) {
	if l.Override != "" {
		return l.Override, nil
	}

	starts := l.StartDirs
	if starts == nil {
		starts = DefaultStartDirs()
	}
	for _, start := range starts {
		if root, ok := l.walk(start); ok {
			return root, nil
		}
	}

	searched := append([]string(nil), starts...)
	getwd := l.Getwd
	if getwd == nil {
		getwd = os.Getwd
	}
	cwd, err := getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	if l.IsRoot(cwd) {
		return cwd, nil
	}
	return "", &NotFoundError{Searched: append(searched, cwd)}
}

// IsRoot reports whether dir carries the root marker: a manifest file and a
// packages directory, both directly beneath it.
func (l Locator) IsRoot(dir string) bool {
	manifest := l.Manifest
	if manifest == "" {
		manifest = DefaultManifest
	}
	packages := l.PackagesDir
	if packages == "" {
		packages = DefaultPackagesDir
	}
	return fileutil.IsFile(filepath.Join(dir, manifest)) &&
		fileutil.IsDir(filepath.Join(dir, packages))
}

// walk tests start and each of its ancestors, closest first.
func (l Locator) walk(start string) (string, bool) {
	dir := filepath.Clean(start)
	for {
		if l.IsRoot(dir) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultStartDirs returns the build-time source directory of this package,
// when the binary was built without -trimpath, followed by the directory of
// the running executable. Either may be missing from the result.
func DefaultStartDirs() []string {
	var dirs []string
	if _, file, _, ok := runtime.Caller(0); ok && filepath.IsAbs(file) {
		dirs = append(dirs, filepath.Dir(file))
	}
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}
	return dirs
}
