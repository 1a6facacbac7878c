package domain

// CookieUpdateRequest describes one cookie-update invocation.
type CookieUpdateRequest struct {
	// SourcePath is a Netscape-format cookie export file.
	SourcePath string
	Platform   Platform
}

// VerificationResult reports whether the expected cookie field landed in
// configuration after an update. Preview is bounded; the full secret value
// is never exposed.
type VerificationResult struct {
	Found   bool
	Length  int
	Preview string
}

// ServerProcess is a handle to the spawned API server.
type ServerProcess struct {
	PID        int
	ListenPort int
}

// HealthStatus classifies a health probe response.
type HealthStatus string

const (
	HealthUnknown      HealthStatus = "unknown"
	HealthResponding   HealthStatus = "responding"
	HealthUnresponsive HealthStatus = "unresponsive"
)
