package cookie

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"cookiecycle/internal/domain"
)

// Cookie is one record from a Netscape-format export. Only the fields the
// updater needs are kept.
type Cookie struct {
	Name   string
	Value  string
	Domain string
}

// Domain keywords that map a cookie to a platform. Cookies from any other
// domain are discarded.
var platformDomains = []struct {
	keyword  string
	platform domain.Platform
}{
	{"douyin.com", domain.PlatformDouyin},
	{"iesdouyin.com", domain.PlatformDouyin},
	{"tiktok.com", domain.PlatformTikTok},
	{"kuaishou.com", domain.PlatformKuaishou},
}

// ParseFile reads a Netscape cookie export from path.
func ParseFile(path string) ([]Cookie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cookie file: %w", err)
	}
	defer f.Close()
	cookies, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cookies, nil
}

// Parse reads tab-delimited Netscape cookie lines: domain, flag, path,
// secure, expiration, name, value. Comments, blank lines, short lines and
// unsupported domains are skipped.
func Parse(r io.Reader) ([]Cookie, error) {
	var cookies []Cookie
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 7 {
			continue
		}
		cookieDomain, name, value := parts[0], parts[5], parts[6]
		if !supportedDomain(cookieDomain) {
			continue
		}
		cookies = append(cookies, Cookie{Name: name, Value: value, Domain: cookieDomain})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cookies, nil
}

func supportedDomain(d string) bool {
	for _, pd := range platformDomains {
		if strings.Contains(d, pd.keyword) {
			return true
		}
	}
	return false
}

// Classify detects the platform from cookie domains. Douyin wins over
// TikTok wins over Kuaishou when an export mixes domains.
func Classify(cookies []Cookie) (domain.Platform, bool) {
	for _, want := range []domain.Platform{domain.PlatformDouyin, domain.PlatformTikTok, domain.PlatformKuaishou} {
		for _, c := range cookies {
			if domainPlatform(c.Domain) == want {
				return want, true
			}
		}
	}
	return "", false
}

func domainPlatform(d string) domain.Platform {
	for _, pd := range platformDomains {
		if strings.Contains(d, pd.keyword) {
			return pd.platform
		}
	}
	return ""
}
