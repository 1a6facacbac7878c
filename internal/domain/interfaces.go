package domain

// ConfigLocator finds the active persisted configuration file, if any.
// Absence is a valid state (first run), not an error.
type ConfigLocator interface {
	Locate() (path string, ok bool)
}

// BackupManager snapshots a configuration file before mutation and returns
// the backup path. The original file is never touched.
type BackupManager interface {
	Backup(path string) (backupPath string, err error)
}

// CookieUpdater is the external updater subprocess boundary.
// Update mutates configuration; Detect is a read-only dry-run probe that
// recovers the concrete platform when the request used the auto hint.
type CookieUpdater interface {
	Update(req CookieUpdateRequest) error
	Detect(sourcePath string) (Platform, error)
}

// Verifier re-reads the configuration after an update and confirms the
// cookie field for the given concrete platform is present and well-formed.
type Verifier interface {
	Verify(platform Platform) (VerificationResult, error)
}

// ServerLifecycle replaces any running server instances with a fresh one
// listening on port, confirming the new process stays alive.
type ServerLifecycle interface {
	Restart(port int) (ServerProcess, error)
}

// HealthProber checks the server's network endpoints.
// Probe and ProbeDocs are point-in-time checks; WaitResponding polls the
// root endpoint until it responds or the prober's deadline elapses.
type HealthProber interface {
	Probe(port int) HealthStatus
	ProbeDocs(port int) HealthStatus
	WaitResponding(port int) (HealthStatus, error)
}

// ProcessHandle is a live entry from the process table.
type ProcessHandle interface {
	Pid() int
	Terminate() error
	Kill() error
	Running() bool
}

// ProcessFinder discovers server processes by launch signature. Discovery is
// pattern matching over the OS process table; the interface is scoped so a
// registry-based finder can replace it where command lines are unreliable.
type ProcessFinder interface {
	Find(pattern string) ([]ProcessHandle, error)
	PidAlive(pid int) bool
}

// Logger provides structured logging.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
