//go:build unix

package process

import (
	"bytes"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"
)

func TestExpectSignalExit(t *testing.T) {
	t.Parallel()

	type testCase struct {
		err     error
		signal  syscall.Signal
		wantErr bool
	}

	tests := map[string]testCase{
		"nil error returns nil": {
			wantErr: false,
		},
		"SIGTERM exit is expected": {
			signal:  syscall.SIGTERM,
			wantErr: false,
		},
		"SIGKILL exit is expected": {
			signal:  syscall.SIGKILL,
			wantErr: false,
		},
		"other signal is unexpected": {
			signal:  syscall.SIGINT,
			wantErr: true,
		},
		"non-ExitError is unexpected": {
			err:     errors.New("some other error"),
			wantErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			inputErr := tc.err
			if inputErr == nil && tc.signal != 0 {
				inputErr = makeSignalExitError(t, tc.signal)
			}

			got := expectSignalExit(inputErr, "test-proc")

			if tc.wantErr && got == nil {
				t.Fatal("expected error, got nil")
			}
			if !tc.wantErr && got != nil {
				t.Fatalf("expected nil, got %v", got)
			}
		})
	}
}

func TestExpectSignalExit_ShellExitCodes(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		code    int
		wantErr bool
	}{
		"143 is SIGTERM": {code: 143, wantErr: false},
		"137 is SIGKILL": {code: 137, wantErr: false},
		"1 is a failure": {code: 1, wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := exec.Command("sh", "-c", "exit "+itoa(tc.code)).Run()
			got := expectSignalExit(err, "bun")
			if tc.wantErr != (got != nil) {
				t.Fatalf("expectSignalExit(exit %d) = %v, wantErr %v", tc.code, got, tc.wantErr)
			}
		})
	}
}

func TestExpectSignalExit_WrapsProcessName(t *testing.T) {
	t.Parallel()

	err := expectSignalExit(errors.New("exit status 2"), "bun")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := err.Error(); got != "bun: exit status 2" {
		t.Errorf("error = %q, want %q", got, "bun: exit status 2")
	}
}

func TestWaitExited(t *testing.T) {
	t.Parallel()

	t.Run("closed channel", func(t *testing.T) {
		t.Parallel()
		ch := make(chan struct{})
		close(ch)
		if !waitExited(ch, time.Second) {
			t.Fatal("expected true for a closed channel")
		}
	})

	t.Run("times out on open channel", func(t *testing.T) {
		t.Parallel()
		if waitExited(make(chan struct{}), 10*time.Millisecond) {
			t.Fatal("expected false when timeout elapses")
		}
	})
}

func TestStart_Validation(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		spec Spec
		want error
	}{
		"empty name":    {spec: Spec{Command: "true"}, want: ErrEmptyName},
		"empty command": {spec: Spec{Name: "bun"}, want: ErrEmptyCommand},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if _, err := Start(tc.spec); !errors.Is(err, tc.want) {
				t.Fatalf("Start() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestStart_MissingCommand(t *testing.T) {
	t.Parallel()

	_, err := Start(Spec{Name: "bun", Command: "baostack-no-such-command-xyz"})
	if err == nil {
		t.Fatal("expected error for a missing executable")
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("expected exec.ErrNotFound in chain, got %v", err)
	}
}

func TestStart_DirEnvAndOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var stdout bytes.Buffer
	p, err := Start(Spec{
		Name:    "sh",
		Command: "sh",
		Args:    []string{"-c", `pwd; echo "$PORT $HOST"; read -r line || echo stdin-closed`},
		Dir:     dir,
		Env:     []string{"PATH=/usr/bin:/bin", "PORT=3000", "HOST=127.0.0.1"},
		Stdout:  &stdout,
	})
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if !waitExited(p.Exited(), 5*time.Second) {
		t.Fatal("process did not exit")
	}
	if err := p.ExitErr(); err != nil {
		t.Fatalf("ExitErr() = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("unexpected output %q", stdout.String())
	}
	gotDir, _ := filepath.EvalSymlinks(lines[0])
	wantDir, _ := filepath.EvalSymlinks(dir)
	if gotDir != wantDir {
		t.Errorf("cwd = %q, want %q", lines[0], dir)
	}
	if lines[1] != "3000 127.0.0.1" {
		t.Errorf("env line = %q, want %q", lines[1], "3000 127.0.0.1")
	}
	if lines[2] != "stdin-closed" {
		t.Errorf("stdin line = %q, want stdin-closed", lines[2])
	}
}

func TestTerminate_RunningProcess(t *testing.T) {
	t.Parallel()

	p := startSleep(t)

	start := time.Now()
	outcome, err := p.Terminate(5 * time.Second)
	if err != nil {
		t.Fatalf("Terminate() error: %v", err)
	}
	if outcome != Terminated {
		t.Errorf("outcome = %v, want %v", outcome, Terminated)
	}
	if elapsed := time.Since(start); elapsed > termGracePeriod {
		t.Errorf("sleep should exit on SIGTERM, took %v", elapsed)
	}
	select {
	case <-p.Exited():
	default:
		t.Fatal("Exited should be closed after Terminate returns")
	}
}

func TestTerminate_IgnoresSIGTERM(t *testing.T) {
	t.Parallel()

	p, err := Start(Spec{
		Name:    "stubborn",
		Command: "sh",
		Args:    []string{"-c", `trap "" TERM; echo ready; while :; do sleep 0.05; done`},
		Stdout:  &syncBuffer{ready: make(chan struct{})},
	})
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	<-p.cmd.Stdout.(*syncBuffer).ready

	outcome, err := p.Terminate(300 * time.Millisecond)
	if err != nil {
		t.Fatalf("Terminate() error: %v", err)
	}
	if outcome != Terminated {
		t.Errorf("outcome = %v, want %v", outcome, Terminated)
	}
}

func TestTerminate_AlreadyExited(t *testing.T) {
	t.Parallel()

	p, err := Start(Spec{Name: "true", Command: "true"})
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if !waitExited(p.Exited(), 5*time.Second) {
		t.Fatal("process did not exit")
	}

	outcome, err := p.Terminate(time.Second)
	if err != nil {
		t.Fatalf("Terminate() error: %v", err)
	}
	if outcome != AlreadyExited {
		t.Errorf("outcome = %v, want %v", outcome, AlreadyExited)
	}
}

func TestTerminate_Idempotent(t *testing.T) {
	t.Parallel()

	p := startSleep(t)

	first, err := p.Terminate(5 * time.Second)
	if err != nil {
		t.Fatalf("first Terminate() error: %v", err)
	}
	second, err := p.Terminate(5 * time.Second)
	if err != nil {
		t.Fatalf("second Terminate() error: %v", err)
	}
	if first != second {
		t.Errorf("second Terminate() = %v, want cached %v", second, first)
	}
}

func TestTerminate_ReachesProcessGroup(t *testing.T) {
	t.Parallel()

	buf := &syncBuffer{ready: make(chan struct{})}
	p, err := Start(Spec{
		Name:    "launcher",
		Command: "sh",
		Args:    []string{"-c", `sleep 60 & echo $!; wait`},
		Stdout:  buf,
	})
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	<-buf.ready
	grandchild := atoi(t, strings.TrimSpace(buf.String()))

	if _, err := p.Terminate(5 * time.Second); err != nil {
		t.Fatalf("Terminate() error: %v", err)
	}

	// The forked sleep shares the group and must be gone (or a zombie
	// awaiting init) shortly after.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if err := syscall.Kill(grandchild, 0); errors.Is(err, syscall.ESRCH) {
			return
		}
		if isZombie(grandchild) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Errorf("grandchild pid %d still running after Terminate", grandchild)
}

func TestOutcome_String(t *testing.T) {
	t.Parallel()

	tests := map[Outcome]string{
		Terminated:    "terminated",
		AlreadyExited: "already exited",
		Outcome(0):    "Outcome(0)",
	}
	for o, want := range tests {
		if got := o.String(); got != want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(o), got, want)
		}
	}
}

// startSleep starts "sleep 60" and kills it at test end if still running.
func startSleep(t *testing.T) *Process {
	t.Helper()

	p, err := Start(Spec{Name: "sleep", Command: "sleep", Args: []string{"60"}})
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	t.Cleanup(func() { _ = p.cmd.Process.Kill() }) // best-effort cleanup
	return p
}

// makeSignalExitError creates an *exec.ExitError with the given signal.
// It uses a real process to generate an authentic WaitStatus.
func makeSignalExitError(tb testing.TB, sig syscall.Signal) *exec.ExitError {
	tb.Helper()

	cmd := exec.Command("sleep", "60")
	if err := cmd.Start(); err != nil {
		tb.Fatalf("test setup: start sleep: %v", err)
	}

	if err := cmd.Process.Signal(sig); err != nil {
		_ = cmd.Process.Kill() // best-effort cleanup
		tb.Fatalf("test setup: signal process with %v: %v", sig, err)
	}

	err := cmd.Wait()

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		tb.Fatalf("test setup: expected *exec.ExitError from signaled process, got %v", err)
	}

	return exitErr
}
