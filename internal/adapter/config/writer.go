package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cookiecycle/internal/domain"
)

// VolumePath is the API-mode configuration that mirrors the cookie fields.
const VolumePath = "Volume/settings.json"

// Writer persists a cookie header into the downloader configuration and
// mirrors it into the Volume configuration used by API mode.
type Writer struct {
	locator *Locator
	logger  domain.Logger
}

// NewWriter creates a writer over the locator's candidate paths.
func NewWriter(locator *Locator, logger domain.Logger) *Writer {
	return &Writer{locator: locator, logger: logger}
}

// Apply sets the platform's cookie field to header in the active
// configuration, creating the default file when none exists. The Volume
// mirror is best effort; its failure is only a warning.
func (w *Writer) Apply(header string, p domain.Platform) (path, field string, err error) {
	field, err = CookieField(p)
	if err != nil {
		return "", "", err
	}

	path, ok := w.locator.Locate()
	if !ok {
		path = w.locator.DefaultPath()
	}

	doc, err := readDoc(path)
	if err != nil {
		return "", "", fmt.Errorf("read config %s: %w", path, err)
	}
	doc[field] = header

	if err := writeDoc(path, doc); err != nil {
		return "", "", fmt.Errorf("write config %s: %w", path, err)
	}

	if err := w.syncVolume(header, field, doc); err != nil {
		w.logger.Warn("volume config sync failed", "path", VolumePath, "err", err)
	}

	return path, field, nil
}

// syncVolume mirrors the cookie field into Volume/settings.json, starting
// from a copy of the main document when the mirror does not exist yet.
func (w *Writer) syncVolume(header, field string, main map[string]any) error {
	doc, err := readDoc(VolumePath)
	if err != nil {
		return err
	}
	if len(doc) == 0 {
		for k, v := range main {
			doc[k] = v
		}
	}
	doc[field] = header
	return writeDoc(VolumePath, doc)
}

func readDoc(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// writeDoc renders the document the way the downloader expects: 4-space
// indent, non-ASCII kept literal.
func writeDoc(path string, doc map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
