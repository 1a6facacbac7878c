package domain

import "fmt"

// Platform identifies a supported content platform.
type Platform string

const (
	// PlatformDouyin is 抖音 (Douyin).
	PlatformDouyin Platform = "douyin"
	// PlatformTikTok is TikTok.
	PlatformTikTok Platform = "tiktok"
	// PlatformKuaishou is 快手 (Kuaishou).
	PlatformKuaishou Platform = "kuaishou"
	// PlatformAuto asks the cookie updater to detect the platform from the
	// cookie domains. It is a request-time hint only; verification always
	// requires a concrete platform.
	PlatformAuto Platform = "auto"
)

// ParsePlatform validates a platform token from CLI input.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformDouyin, PlatformTikTok, PlatformKuaishou, PlatformAuto:
		return Platform(s), nil
	}
	return "", fmt.Errorf("%w: %q (expected douyin, tiktok, kuaishou or auto)", ErrInvalidPlatform, s)
}

// Concrete reports whether p names an actual platform rather than the
// auto-detect hint.
func (p Platform) Concrete() bool {
	switch p {
	case PlatformDouyin, PlatformTikTok, PlatformKuaishou:
		return true
	}
	return false
}

// DisplayName returns the operator-facing platform name.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformDouyin:
		return "抖音"
	case PlatformTikTok:
		return "TikTok"
	case PlatformKuaishou:
		return "快手"
	}
	return string(p)
}
