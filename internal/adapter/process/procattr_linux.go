package process

import "syscall"

// sysProcAttr puts the server in its own process group so it is not bound
// to the orchestrator's lifetime or its controlling terminal.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setpgid: true,
	}
}
