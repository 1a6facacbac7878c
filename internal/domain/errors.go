package domain

import "errors"

// Stage failure categories. Every orchestrator failure wraps one of these
// so callers and tests can classify with errors.Is.
var (
	// ErrMissingInput means no cookie file was given or the path does not exist.
	ErrMissingInput = errors.New("missing input")
	// ErrInvalidPlatform means an unrecognized platform token.
	ErrInvalidPlatform = errors.New("invalid platform")
	// ErrSubprocess means the cookie updater or server process exited abnormally.
	ErrSubprocess = errors.New("subprocess failed")
	// ErrVerification means the cookie field is absent or unreadable post-update.
	ErrVerification = errors.New("verification failed")
	// ErrLifecycle means an old process was unkillable or the new one died.
	ErrLifecycle = errors.New("lifecycle failed")
	// ErrHealthCheck means the server stayed unresponsive past the deadline.
	ErrHealthCheck = errors.New("health check failed")
)
