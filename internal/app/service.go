package app

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"cookiecycle/internal/domain"
)

// Config holds resolved runtime configuration for one update run.
type Config struct {
	CookieFile string
	Platform   domain.Platform
	Port       int
	// StrictBackup promotes a failed configuration backup from a warning
	// to a run-aborting error.
	StrictBackup bool
}

// Outcome describes a fully successful run.
type Outcome struct {
	Platform     domain.Platform
	Process      domain.ServerProcess
	BackupPath   string
	Verification domain.VerificationResult
}

// Service orchestrates the update cycle: back up configuration, run the
// cookie updater, verify the update landed, restart the API server and
// confirm it is serving. Every stage gates the next; the first failure
// aborts the run.
type Service struct {
	locator   domain.ConfigLocator
	backup    domain.BackupManager
	updater   domain.CookieUpdater
	verifier  domain.Verifier
	lifecycle domain.ServerLifecycle
	prober    domain.HealthProber
	logger    domain.Logger
}

// NewService creates the application service with all dependencies injected.
func NewService(
	lc domain.ConfigLocator,
	bk domain.BackupManager,
	up domain.CookieUpdater,
	vf domain.Verifier,
	sl domain.ServerLifecycle,
	pr domain.HealthProber,
	lg domain.Logger,
) *Service {
	return &Service{
		locator:   lc,
		backup:    bk,
		updater:   up,
		verifier:  vf,
		lifecycle: sl,
		prober:    pr,
		logger:    lg,
	}
}

// Run executes one update cycle and returns the outcome on full success.
func (s *Service) Run(cfg Config) (*Outcome, error) {
	runID := uuid.NewString()[:8]
	s.logger.Info("starting update run", "run", runID, "platform", cfg.Platform, "port", cfg.Port)

	if cfg.CookieFile == "" {
		return nil, fmt.Errorf("%w: no cookie file given", domain.ErrMissingInput)
	}
	if _, err := os.Stat(cfg.CookieFile); err != nil {
		return nil, fmt.Errorf("%w: cookie file %s: %v", domain.ErrMissingInput, cfg.CookieFile, err)
	}
	if !cfg.Platform.Concrete() && cfg.Platform != domain.PlatformAuto {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPlatform, cfg.Platform)
	}

	backupPath, err := s.backupConfig(cfg.StrictBackup)
	if err != nil {
		return nil, err
	}

	if err := s.updater.Update(domain.CookieUpdateRequest{SourcePath: cfg.CookieFile, Platform: cfg.Platform}); err != nil {
		return nil, fmt.Errorf("cookie update: %w", err)
	}

	platform := cfg.Platform
	if platform == domain.PlatformAuto {
		platform, err = s.updater.Detect(cfg.CookieFile)
		if err != nil {
			return nil, fmt.Errorf("platform detection: %w", err)
		}
	}

	// Never restart the server on unverified credentials.
	verification, err := s.verifier.Verify(platform)
	if err != nil {
		return nil, fmt.Errorf("verify update: %w", err)
	}
	if !verification.Found {
		return nil, fmt.Errorf("%w: %s cookie field empty after update", domain.ErrVerification, platform.DisplayName())
	}
	s.logger.Info("cookie verified", "platform", platform, "chars", verification.Length)

	proc, err := s.lifecycle.Restart(cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("restart server: %w", err)
	}

	if _, err := s.prober.WaitResponding(cfg.Port); err != nil {
		return nil, fmt.Errorf("server on port %d: %w", cfg.Port, err)
	}
	if s.prober.ProbeDocs(cfg.Port) != domain.HealthResponding {
		s.logger.Warn("docs endpoint not responding", "port", cfg.Port)
	}

	s.logger.Info("update run complete", "run", runID, "platform", platform, "pid", proc.PID)
	return &Outcome{
		Platform:     platform,
		Process:      proc,
		BackupPath:   backupPath,
		Verification: verification,
	}, nil
}

// backupConfig snapshots the active configuration. A missing configuration
// skips the backup (first run); a failed copy aborts only in strict mode.
func (s *Service) backupConfig(strict bool) (string, error) {
	path, ok := s.locator.Locate()
	if !ok {
		s.logger.Warn("no configuration found, skipping backup")
		return "", nil
	}

	backupPath, err := s.backup.Backup(path)
	if err != nil {
		if strict {
			return "", fmt.Errorf("backup %s: %w", path, err)
		}
		s.logger.Warn("configuration backup failed", "path", path, "err", err)
		return "", nil
	}
	s.logger.Info("configuration backed up", "path", path, "backup", backupPath)
	return backupPath, nil
}
