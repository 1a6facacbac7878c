package updater

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"cookiecycle/internal/domain"
)

// DetectedMarker prefixes the machine-readable platform line a dry run
// emits. The invoker parses exactly this field, never free text.
const DetectedMarker = "detected-platform="

// Exec invokes the cookie updater as a subprocess. The updater's exit
// status is the sole success criterion; cookie content is never parsed here.
type Exec struct {
	command []string
	logger  domain.Logger
}

// NewExec creates an invoker for the given updater command line
// (program plus leading arguments).
func NewExec(command []string, logger domain.Logger) *Exec {
	return &Exec{command: command, logger: logger}
}

// SelfCommand resolves the bundled updater: this binary's own "update"
// subcommand.
func SelfCommand() ([]string, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve own executable: %w", err)
	}
	return []string{exe, "update"}, nil
}

// Update runs the updater against the cookie source, mutating configuration.
func (e *Exec) Update(req domain.CookieUpdateRequest) error {
	args := e.args(req.SourcePath, "--platform", string(req.Platform))
	e.logger.Info("invoking cookie updater", "cmd", e.command[0], "platform", req.Platform)

	cmd := exec.Command(e.command[0], args...)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: cookie updater: %v", domain.ErrSubprocess, err)
	}
	return nil
}

// Detect runs the updater in dry-run mode and recovers the detected
// platform from its output. The dry run must not mutate configuration.
func (e *Exec) Detect(sourcePath string) (domain.Platform, error) {
	args := e.args(sourcePath, "--platform", string(domain.PlatformAuto), "--dry-run")

	var out bytes.Buffer
	cmd := exec.Command(e.command[0], args...)
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: updater dry run: %v", domain.ErrSubprocess, err)
	}

	p, ok := ParseDetected(out.String())
	if !ok {
		return "", fmt.Errorf("%w: dry run reported no detected platform", domain.ErrSubprocess)
	}
	e.logger.Info("platform detected", "platform", p)
	return p, nil
}

func (e *Exec) args(extra ...string) []string {
	return append(append([]string{}, e.command[1:]...), extra...)
}

// ParseDetected scans dry-run output for the detected-platform field.
func ParseDetected(output string) (domain.Platform, bool) {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, DetectedMarker) {
			continue
		}
		p, err := domain.ParsePlatform(strings.TrimPrefix(line, DetectedMarker))
		if err != nil || !p.Concrete() {
			return "", false
		}
		return p, true
	}
	return "", false
}
