package process

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"cookiecycle/internal/domain"
)

const pollInterval = 250 * time.Millisecond

// Options configures the server lifecycle.
type Options struct {
	// ServerCommand launches the API server, e.g. "python3 start_api.py".
	// Host/port flags are appended.
	ServerCommand string
	Host          string
	// Pattern identifies running server instances in the process table.
	Pattern string
	// LogFile receives the server's stdout and stderr.
	LogFile string
	// GraceTimeout bounds the wait after SIGTERM, KillTimeout the wait
	// after SIGKILL, SettleTimeout the post-spawn stability window.
	GraceTimeout  time.Duration
	KillTimeout   time.Duration
	SettleTimeout time.Duration
}

// Manager replaces running server instances: discover, stop gracefully,
// escalate to a forced kill, spawn a detached replacement and confirm it
// stays alive. Terminal outcomes are a live replacement or an error.
type Manager struct {
	finder domain.ProcessFinder
	logger domain.Logger
	opts   Options
}

// NewManager creates a lifecycle manager.
func NewManager(finder domain.ProcessFinder, logger domain.Logger, opts Options) *Manager {
	return &Manager{finder: finder, logger: logger, opts: opts}
}

// Restart stops all discovered server processes and spawns a replacement on
// port. No replacement is spawned until the old processes are confirmed
// gone; survivors of both signals fail the restart.
func (m *Manager) Restart(port int) (domain.ServerProcess, error) {
	if err := m.stopExisting(); err != nil {
		return domain.ServerProcess{}, err
	}
	return m.spawn(port)
}

// stopExisting implements the graceful-then-forced escalation policy:
// SIGTERM to all matches, poll through the grace window, SIGKILL exactly
// the survivors, poll again.
func (m *Manager) stopExisting() error {
	procs, err := m.finder.Find(m.opts.Pattern)
	if err != nil {
		return fmt.Errorf("%w: discover server processes: %v", domain.ErrLifecycle, err)
	}
	if len(procs) == 0 {
		m.logger.Info("no running server processes", "pattern", m.opts.Pattern)
		return nil
	}

	m.logger.Info("stopping server processes", "count", len(procs))
	for _, p := range procs {
		if err := p.Terminate(); err != nil {
			m.logger.Warn("terminate signal failed", "pid", p.Pid(), "err", err)
		}
	}

	survivors := m.awaitExit(procs, m.opts.GraceTimeout)
	if len(survivors) == 0 {
		return nil
	}

	m.logger.Warn("escalating to forced kill", "count", len(survivors))
	for _, p := range survivors {
		if err := p.Kill(); err != nil {
			m.logger.Warn("kill signal failed", "pid", p.Pid(), "err", err)
		}
	}

	survivors = m.awaitExit(survivors, m.opts.KillTimeout)
	if len(survivors) > 0 {
		return fmt.Errorf("%w: %d server process(es) survived forced kill", domain.ErrLifecycle, len(survivors))
	}
	return nil
}

// awaitExit polls the handles until all have exited or the deadline passes,
// returning the survivors.
func (m *Manager) awaitExit(procs []domain.ProcessHandle, timeout time.Duration) []domain.ProcessHandle {
	deadline := time.Now().Add(timeout)
	for {
		var alive []domain.ProcessHandle
		for _, p := range procs {
			if p.Running() {
				alive = append(alive, p)
			}
		}
		if len(alive) == 0 || !time.Now().Before(deadline) {
			return alive
		}
		time.Sleep(pollInterval)
		procs = alive
	}
}

// spawn launches the server detached with output redirected to the log
// file, then watches the pid through the settle window.
func (m *Manager) spawn(port int) (domain.ServerProcess, error) {
	argv := strings.Fields(m.opts.ServerCommand)
	if len(argv) == 0 {
		return domain.ServerProcess{}, fmt.Errorf("%w: empty server command", domain.ErrLifecycle)
	}
	args := append(argv[1:], "--host", m.opts.Host, "--port", strconv.Itoa(port))

	logf, err := os.OpenFile(m.opts.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return domain.ServerProcess{}, fmt.Errorf("%w: open server log: %v", domain.ErrLifecycle, err)
	}
	defer logf.Close()

	cmd := exec.Command(argv[0], args...)
	cmd.Stdout = logf
	cmd.Stderr = logf
	cmd.Stdin = nil
	cmd.SysProcAttr = sysProcAttr()

	if err := cmd.Start(); err != nil {
		return domain.ServerProcess{}, fmt.Errorf("%w: start server: %v", domain.ErrLifecycle, err)
	}

	pid := cmd.Process.Pid
	// Detach: the server must outlive this process, so it is never waited on.
	if err := cmd.Process.Release(); err != nil {
		m.logger.Warn("release server process handle failed", "pid", pid, "err", err)
	}
	m.logger.Info("server started", "pid", pid, "port", port, "log", m.opts.LogFile)

	if err := m.confirmAlive(pid); err != nil {
		return domain.ServerProcess{}, err
	}
	return domain.ServerProcess{PID: pid, ListenPort: port}, nil
}

// confirmAlive watches the pid through the settle window, failing as soon
// as it disappears.
func (m *Manager) confirmAlive(pid int) error {
	deadline := time.Now().Add(m.opts.SettleTimeout)
	for time.Now().Before(deadline) {
		if !m.finder.PidAlive(pid) {
			return fmt.Errorf("%w: server exited during startup, check %s", domain.ErrLifecycle, m.opts.LogFile)
		}
		time.Sleep(pollInterval)
	}
	if !m.finder.PidAlive(pid) {
		return fmt.Errorf("%w: server exited during startup, check %s", domain.ErrLifecycle, m.opts.LogFile)
	}
	return nil
}
