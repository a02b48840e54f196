package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// makeWorkspace creates base/ws with package.json and packages/desktop/src-tauri
// and returns the workspace root and the nested src-tauri directory.
func makeWorkspace(t *testing.T) (root, nested string) {
	t.Helper()

	root = filepath.Join(t.TempDir(), "ws")
	nested = filepath.Join(root, "packages", "desktop", "src-tauri")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "package.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return root, nested
}

// fixedWd returns a Getwd func reporting dir.
func fixedWd(dir string) func() (string, error) {
	return func() (string, error) { return dir, nil }
}

func TestResolve_FromDescendant(t *testing.T) {
	t.Parallel()

	root, nested := makeWorkspace(t)
	l := Locator{StartDirs: []string{nested}, Getwd: fixedWd(t.TempDir())}

	got, err := l.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != root {
		t.Errorf("Resolve() = %q, want %q", got, root)
	}
}

func TestResolve_ClosestAncestorWins(t *testing.T) {
	t.Parallel()

	outer, _ := makeWorkspace(t)
	// A nested checkout inside packages/ must win over the outer one.
	inner := filepath.Join(outer, "packages", "vendored")
	start := filepath.Join(inner, "packages", "app")
	if err := os.MkdirAll(start, 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(inner, "package.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	got, err := Locator{StartDirs: []string{start}, Getwd: fixedWd(t.TempDir())}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != inner {
		t.Errorf("Resolve() = %q, want closest root %q", got, inner)
	}
}

func TestResolve_OverrideReturnedVerbatim(t *testing.T) {
	t.Parallel()

	const override = "/does/not/exist/anywhere"
	got, err := Locator{Override: override, StartDirs: []string{}}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != override {
		t.Errorf("Resolve() = %q, want %q", got, override)
	}
}

func TestResolve_FallsBackToWorkingDirectory(t *testing.T) {
	t.Parallel()

	root, _ := makeWorkspace(t)
	l := Locator{StartDirs: []string{t.TempDir()}, Getwd: fixedWd(root)}

	got, err := l.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != root {
		t.Errorf("Resolve() = %q, want cwd %q", got, root)
	}
}

func TestResolve_WorkingDirectoryIsNotWalked(t *testing.T) {
	t.Parallel()

	_, nested := makeWorkspace(t)
	l := Locator{StartDirs: []string{}, Getwd: fixedWd(nested)}

	if _, err := l.Resolve(); !errors.Is(err, ErrWorkspaceNotFound) {
		t.Fatalf("expected ErrWorkspaceNotFound for a cwd below the root, got %v", err)
	}
}

func TestResolve_NotFound(t *testing.T) {
	t.Parallel()

	start := t.TempDir()
	cwd := t.TempDir()
	_, err := Locator{StartDirs: []string{start}, Getwd: fixedWd(cwd)}.Resolve()

	if !errors.Is(err, ErrWorkspaceNotFound) {
		t.Fatalf("expected ErrWorkspaceNotFound, got %v", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *NotFoundError, got %T", err)
	}
	if len(nf.Searched) != 2 || nf.Searched[0] != start || nf.Searched[1] != cwd {
		t.Errorf("Searched = %v, want [%s %s]", nf.Searched, start, cwd)
	}
	if !strings.Contains(err.Error(), OverrideEnv) {
		t.Errorf("error %q should hint at %s", err, OverrideEnv)
	}
}

func TestResolve_GetwdError(t *testing.T) {
	t.Parallel()

	want := errors.New("cwd removed")
	l := Locator{StartDirs: []string{}, Getwd: func() (string, error) { return "", want }}

	if _, err := l.Resolve(); !errors.Is(err, want) {
		t.Fatalf("expected getwd error, got %v", err)
	}
}

func TestIsRoot(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		setup func(t *testing.T, dir string)
		want  bool
	}{
		"manifest and packages": {
			setup: func(t *testing.T, dir string) {
				mustWrite(t, filepath.Join(dir, "package.json"))
				mustMkdir(t, filepath.Join(dir, "packages"))
			},
			want: true,
		},
		"manifest only": {
			setup: func(t *testing.T, dir string) {
				mustWrite(t, filepath.Join(dir, "package.json"))
			},
			want: false,
		},
		"packages only": {
			setup: func(t *testing.T, dir string) {
				mustMkdir(t, filepath.Join(dir, "packages"))
			},
			want: false,
		},
		"packages is a file": {
			setup: func(t *testing.T, dir string) {
				mustWrite(t, filepath.Join(dir, "package.json"))
				mustWrite(t, filepath.Join(dir, "packages"))
			},
			want: false,
		},
		"manifest is a directory": {
			setup: func(t *testing.T, dir string) {
				mustMkdir(t, filepath.Join(dir, "package.json"))
				mustMkdir(t, filepath.Join(dir, "packages"))
			},
			want: false,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			tc.setup(t, dir)
			if got := (Locator{}).IsRoot(dir); got != tc.want {
				t.Errorf("IsRoot() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsRoot_CustomMarker(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "go.work"))
	mustMkdir(t, filepath.Join(dir, "modules"))

	l := Locator{Manifest: "go.work", PackagesDir: "modules"}
	if !l.IsRoot(dir) {
		t.Error("IsRoot() = false with a custom marker present")
	}
	if (Locator{}).IsRoot(dir) {
		t.Error("default marker should not match a custom layout")
	}
}

func TestDefaultStartDirs(t *testing.T) {
	t.Parallel()

	for _, dir := range DefaultStartDirs() {
		if !filepath.IsAbs(dir) {
			t.Errorf("start dir %q is not absolute", dir)
		}
	}
}

func mustWrite(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
}
