package process

import (
	"fmt"
	"os"
	"strings"

	"github.com/shirou/gopsutil/v4/process"

	"cookiecycle/internal/domain"
)

// GopsutilFinder discovers processes by scanning the OS process table.
type GopsutilFinder struct{}

// NewGopsutilFinder creates a process-table finder.
func NewGopsutilFinder() *GopsutilFinder {
	return &GopsutilFinder{}
}

// Find returns handles for every process whose command line contains
// pattern. The calling process itself is always excluded.
func (f *GopsutilFinder) Find(pattern string) ([]domain.ProcessHandle, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	self := os.Getpid()
	var matches []domain.ProcessHandle
	for _, p := range procs {
		if int(p.Pid) == self {
			continue
		}
		cmdline, err := p.Cmdline()
		if err != nil || cmdline == "" {
			continue
		}
		if strings.Contains(cmdline, pattern) {
			matches = append(matches, &handle{p: p})
		}
	}
	return matches, nil
}

// PidAlive reports whether pid is still running. A zombie counts as dead:
// the spawned server is never waited on, so an early exit leaves a zombie
// entry in the table until the orchestrator itself exits.
func (f *GopsutilFinder) PidAlive(pid int) bool {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return false
	}
	statuses, err := p.Status()
	if err != nil {
		ok, existsErr := process.PidExists(int32(pid))
		return existsErr == nil && ok
	}
	for _, s := range statuses {
		if s == process.Zombie {
			return false
		}
	}
	return true
}

// handle wraps a gopsutil process as a domain.ProcessHandle.
type handle struct {
	p *process.Process
}

func (h *handle) Pid() int { return int(h.p.Pid) }

func (h *handle) Terminate() error { return h.p.Terminate() }

func (h *handle) Kill() error { return h.p.Kill() }

func (h *handle) Running() bool {
	ok, err := h.p.IsRunning()
	return err == nil && ok
}
