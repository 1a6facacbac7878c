package config

import "os"

// DefaultCandidates are the recognized configuration locations of the
// downloader, highest priority first.
var DefaultCandidates = []string{
	"src/config/settings.json",
	"settings.json",
	"config.json",
}

// Locator finds the active configuration among an ordered candidate list.
type Locator struct {
	candidates []string
}

// NewLocator creates a locator over the given candidate paths, falling back
// to DefaultCandidates when none are given.
func NewLocator(candidates ...string) *Locator {
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}
	return &Locator{candidates: candidates}
}

// Locate returns the first candidate that exists as a regular file.
// ok is false when no configuration exists yet; that is a valid first-run
// state, not an error.
func (l *Locator) Locate() (string, bool) {
	for _, c := range l.candidates {
		info, err := os.Stat(c)
		if err == nil && info.Mode().IsRegular() {
			return c, true
		}
	}
	return "", false
}

// DefaultPath is where a new configuration is created when none exists.
func (l *Locator) DefaultPath() string {
	return l.candidates[0]
}
