package process

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"testing"
	"time"

	"cookiecycle/internal/domain"
)

type testLogger struct{}

func (testLogger) Info(msg string, args ...any)  {}
func (testLogger) Warn(msg string, args ...any)  {}
func (testLogger) Error(msg string, args ...any) {}

// fakeHandle simulates a process that dies on terminate, on kill, or never.
type fakeHandle struct {
	pid        int
	diesOnTerm bool
	diesOnKill bool
	termed     bool
	killed     bool
}

func (f *fakeHandle) Pid() int { return f.pid }

func (f *fakeHandle) Terminate() error {
	f.termed = true
	return nil
}

func (f *fakeHandle) Kill() error {
	f.killed = true
	return nil
}

func (f *fakeHandle) Running() bool {
	if f.termed && f.diesOnTerm {
		return false
	}
	if f.killed && f.diesOnKill {
		return false
	}
	return true
}

type fakeFinder struct {
	handles []domain.ProcessHandle
	findErr error
	alive   map[int]bool
}

func (f *fakeFinder) Find(pattern string) ([]domain.ProcessHandle, error) {
	return f.handles, f.findErr
}

func (f *fakeFinder) PidAlive(pid int) bool {
	if f.alive == nil {
		return true
	}
	return f.alive[pid]
}

func testOptions() Options {
	return Options{
		ServerCommand: "python3 start_api.py",
		Host:          "0.0.0.0",
		Pattern:       "start_api.py",
		LogFile:       filepath.Join(os.TempDir(), "test_api.log"),
		GraceTimeout:  300 * time.Millisecond,
		KillTimeout:   300 * time.Millisecond,
		SettleTimeout: 300 * time.Millisecond,
	}
}

func TestStopExisting_NoProcesses(t *testing.T) {
	m := NewManager(&fakeFinder{}, testLogger{}, testOptions())
	if err := m.stopExisting(); err != nil {
		t.Fatalf("stopExisting() error: %v", err)
	}
}

func TestStopExisting_GracefulTargetsAll(t *testing.T) {
	handles := []*fakeHandle{
		{pid: 100, diesOnTerm: true},
		{pid: 101, diesOnTerm: true},
		{pid: 102, diesOnTerm: true},
	}
	f := &fakeFinder{}
	for _, h := range handles {
		f.handles = append(f.handles, h)
	}

	m := NewManager(f, testLogger{}, testOptions())
	if err := m.stopExisting(); err != nil {
		t.Fatalf("stopExisting() error: %v", err)
	}

	for _, h := range handles {
		if !h.termed {
			t.Errorf("pid %d was not sent the termination signal", h.pid)
		}
		if h.killed {
			t.Errorf("pid %d was force-killed although it exited gracefully", h.pid)
		}
	}
}

func TestStopExisting_ForceKillsExactlySurvivors(t *testing.T) {
	cooperative := &fakeHandle{pid: 100, diesOnTerm: true}
	stubborn := &fakeHandle{pid: 101, diesOnKill: true}
	f := &fakeFinder{handles: []domain.ProcessHandle{cooperative, stubborn}}

	m := NewManager(f, testLogger{}, testOptions())
	if err := m.stopExisting(); err != nil {
		t.Fatalf("stopExisting() error: %v", err)
	}

	if cooperative.killed {
		t.Error("a process that exited on SIGTERM must not be force-killed")
	}
	if !stubborn.killed {
		t.Error("the survivor must be force-killed")
	}
}

func TestStopExisting_ImmortalSurvivorFails(t *testing.T) {
	immortal := &fakeHandle{pid: 100}
	f := &fakeFinder{handles: []domain.ProcessHandle{immortal}}

	m := NewManager(f, testLogger{}, testOptions())
	err := m.stopExisting()
	if !errors.Is(err, domain.ErrLifecycle) {
		t.Fatalf("expected ErrLifecycle, got %v", err)
	}
	if !immortal.termed || !immortal.killed {
		t.Error("both escalation phases must have signalled the survivor")
	}
}

func TestRestart_NoSpawnWhileOldProcessesSurvive(t *testing.T) {
	immortal := &fakeHandle{pid: 100}
	f := &fakeFinder{handles: []domain.ProcessHandle{immortal}}

	opts := testOptions()
	opts.ServerCommand = filepath.Join(t.TempDir(), "does-not-exist")

	m := NewManager(f, testLogger{}, opts)
	_, err := m.Restart(5555)
	if !errors.Is(err, domain.ErrLifecycle) {
		t.Fatalf("expected ErrLifecycle, got %v", err)
	}
}

func TestFindError(t *testing.T) {
	f := &fakeFinder{findErr: errors.New("proc unavailable")}
	m := NewManager(f, testLogger{}, testOptions())
	if err := m.stopExisting(); !errors.Is(err, domain.ErrLifecycle) {
		t.Fatalf("expected ErrLifecycle, got %v", err)
	}
}

// serverScript writes an executable that ignores its arguments and sleeps.
func serverScript(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("unix shell script")
	}
	path := filepath.Join(t.TempDir(), "fake_server.sh")
	script := "#!/bin/sh\nsleep 30\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRestart_SpawnsDetachedServer(t *testing.T) {
	opts := testOptions()
	opts.ServerCommand = serverScript(t)
	opts.LogFile = filepath.Join(t.TempDir(), "server.log")

	m := NewManager(&fakeFinder{}, testLogger{}, opts)
	proc, err := m.Restart(5555)
	if err != nil {
		t.Fatalf("Restart() error: %v", err)
	}
	defer syscall.Kill(proc.PID, syscall.SIGKILL)

	if proc.PID <= 0 {
		t.Errorf("pid = %d", proc.PID)
	}
	if proc.ListenPort != 5555 {
		t.Errorf("port = %d", proc.ListenPort)
	}
	if _, err := os.Stat(opts.LogFile); err != nil {
		t.Errorf("server log was not created: %v", err)
	}
}

func TestRestart_StartupFailure(t *testing.T) {
	opts := testOptions()
	opts.ServerCommand = filepath.Join(t.TempDir(), "missing_server")

	m := NewManager(&fakeFinder{}, testLogger{}, opts)
	if _, err := m.Restart(5555); !errors.Is(err, domain.ErrLifecycle) {
		t.Fatalf("expected ErrLifecycle, got %v", err)
	}
}

func TestRestart_ServerDiesDuringSettle(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix shell script")
	}
	opts := testOptions()
	opts.LogFile = filepath.Join(t.TempDir(), "server.log")

	// A server that exits immediately, observed by a finder that reads
	// every pid as dead.
	script := filepath.Join(t.TempDir(), "dying_server.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nexit 1\n"), 0755); err != nil {
		t.Fatal(err)
	}
	opts.ServerCommand = script

	f := &fakeFinder{alive: map[int]bool{}}
	m := NewManager(f, testLogger{}, opts)
	_, err := m.Restart(5555)
	if !errors.Is(err, domain.ErrLifecycle) {
		t.Fatalf("expected ErrLifecycle, got %v", err)
	}
}
