package config

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"cookiecycle/internal/domain"
)

// Field names in the downloader configuration. TikTok has its own field;
// Douyin and Kuaishou share one.
const (
	FieldTikTok = "cookie_tiktok"
	FieldShared = "cookie"
)

const previewLimit = 100

// CookieField maps a concrete platform to its configuration field name.
func CookieField(p domain.Platform) (string, error) {
	switch p {
	case domain.PlatformTikTok:
		return FieldTikTok, nil
	case domain.PlatformDouyin, domain.PlatformKuaishou:
		return FieldShared, nil
	}
	return "", fmt.Errorf("%w: no cookie field for platform %q", domain.ErrVerification, p)
}

// Verifier re-reads the active configuration and confirms the cookie field
// for a platform landed after an update.
type Verifier struct {
	locator *Locator
}

// NewVerifier creates a verifier that locates the configuration fresh on
// every call, since the update may have created it.
func NewVerifier(locator *Locator) *Verifier {
	return &Verifier{locator: locator}
}

// Verify extracts the platform's cookie field. An absent or empty field
// yields Found=false without error; an unreadable configuration or an
// unverifiable platform is a hard error.
func (v *Verifier) Verify(p domain.Platform) (domain.VerificationResult, error) {
	field, err := CookieField(p)
	if err != nil {
		return domain.VerificationResult{}, err
	}

	path, ok := v.locator.Locate()
	if !ok {
		return domain.VerificationResult{}, fmt.Errorf("%w: no configuration file found after update", domain.ErrVerification)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.VerificationResult{}, fmt.Errorf("%w: read %s: %v", domain.ErrVerification, path, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.VerificationResult{}, fmt.Errorf("%w: parse %s: %v", domain.ErrVerification, path, err)
	}

	value, _ := doc[field].(string)
	if value == "" {
		return domain.VerificationResult{}, nil
	}

	return domain.VerificationResult{
		Found:   true,
		Length:  utf8.RuneCountInString(value),
		Preview: preview(value),
	}, nil
}

// preview bounds the displayed value so the full secret never reaches the
// terminal or logs.
func preview(value string) string {
	runes := []rune(value)
	if len(runes) <= previewLimit {
		return value
	}
	return string(runes[:previewLimit]) + "..."
}
