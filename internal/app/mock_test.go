package app

import (
	"cookiecycle/internal/domain"
)

// mockLocator returns a configured active configuration path.
type mockLocator struct {
	path string
	ok   bool
}

func (m *mockLocator) Locate() (string, bool) { return m.path, m.ok }

// mockBackup records calls and returns configured values.
type mockBackup struct {
	backupFn func(path string) (string, error)
	called   bool
	lastPath string
}

func (m *mockBackup) Backup(path string) (string, error) {
	m.called = true
	m.lastPath = path
	return m.backupFn(path)
}

// mockUpdater records Update and Detect calls.
type mockUpdater struct {
	updateFn     func(req domain.CookieUpdateRequest) error
	detectFn     func(sourcePath string) (domain.Platform, error)
	updateCalled bool
	detectCalled bool
	lastReq      domain.CookieUpdateRequest
}

func (m *mockUpdater) Update(req domain.CookieUpdateRequest) error {
	m.updateCalled = true
	m.lastReq = req
	return m.updateFn(req)
}

func (m *mockUpdater) Detect(sourcePath string) (domain.Platform, error) {
	m.detectCalled = true
	return m.detectFn(sourcePath)
}

// mockVerifier records the verified platform.
type mockVerifier struct {
	verifyFn     func(p domain.Platform) (domain.VerificationResult, error)
	called       bool
	lastPlatform domain.Platform
}

func (m *mockVerifier) Verify(p domain.Platform) (domain.VerificationResult, error) {
	m.called = true
	m.lastPlatform = p
	return m.verifyFn(p)
}

// mockLifecycle records the Restart call.
type mockLifecycle struct {
	restartFn func(port int) (domain.ServerProcess, error)
	called    bool
	lastPort  int
}

func (m *mockLifecycle) Restart(port int) (domain.ServerProcess, error) {
	m.called = true
	m.lastPort = port
	return m.restartFn(port)
}

// mockProber returns configured probe outcomes.
type mockProber struct {
	waitFn     func(port int) (domain.HealthStatus, error)
	docsStatus domain.HealthStatus
	waitCalled bool
}

func (m *mockProber) Probe(port int) domain.HealthStatus { return domain.HealthResponding }

func (m *mockProber) ProbeDocs(port int) domain.HealthStatus { return m.docsStatus }

func (m *mockProber) WaitResponding(port int) (domain.HealthStatus, error) {
	m.waitCalled = true
	return m.waitFn(port)
}

// mockLogger collects messages.
type mockLogger struct {
	messages []string
}

func (m *mockLogger) Info(msg string, args ...any)  { m.messages = append(m.messages, msg) }
func (m *mockLogger) Warn(msg string, args ...any)  { m.messages = append(m.messages, "WARN: "+msg) }
func (m *mockLogger) Error(msg string, args ...any) { m.messages = append(m.messages, "ERROR: "+msg) }
