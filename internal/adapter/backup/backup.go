package backup

import (
	"fmt"
	"io"
	"os"
	"time"
)

const stampLayout = "20060102_150405"

// Manager snapshots configuration files before mutation.
type Manager struct {
	now func() time.Time
}

// NewManager creates a backup manager using the wall clock for stamps.
func NewManager() *Manager {
	return &Manager{now: time.Now}
}

// Backup copies path byte-for-byte to <path>.backup.<YYYYMMDD_HHMMSS>.
// An existing backup at that name is never overwritten; a second-resolution
// stamp collision surfaces as an error instead.
func (m *Manager) Backup(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open config: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", fmt.Errorf("stat config: %w", err)
	}

	dest := path + ".backup." + m.now().Format(stampLayout)
	dst, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return "", fmt.Errorf("create backup: %w", err)
	}

	_, copyErr := io.Copy(dst, src)
	closeErr := dst.Close()
	if copyErr != nil {
		os.Remove(dest)
		return "", fmt.Errorf("write backup: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(dest)
		return "", fmt.Errorf("close backup: %w", closeErr)
	}
	return dest, nil
}
