package cookie

import (
	"strings"
	"testing"

	"cookiecycle/internal/domain"
)

const sampleExport = `# Netscape HTTP Cookie File
# This is a generated file! Do not edit.

.douyin.com	TRUE	/	TRUE	1767225600	sessionid	dy-session
.douyin.com	TRUE	/	TRUE	1767225600	ttwid	dy-ttwid
.iesdouyin.com	TRUE	/	FALSE	0	msToken	dy-token
.google.com	TRUE	/	TRUE	0	NID	ignored
short	line
`

func TestParse_SkipsCommentsAndUnsupportedDomains(t *testing.T) {
	cookies, err := Parse(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(cookies) != 3 {
		t.Fatalf("got %d cookies, want 3: %+v", len(cookies), cookies)
	}
	if cookies[0].Name != "sessionid" || cookies[0].Value != "dy-session" {
		t.Errorf("first cookie = %+v", cookies[0])
	}
	for _, c := range cookies {
		if strings.Contains(c.Domain, "google.com") {
			t.Errorf("unsupported domain kept: %+v", c)
		}
	}
}

func TestParse_Empty(t *testing.T) {
	cookies, err := Parse(strings.NewReader("# only comments\n\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(cookies) != 0 {
		t.Errorf("got %d cookies, want 0", len(cookies))
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		domains []string
		want    domain.Platform
		ok      bool
	}{
		{"douyin", []string{".douyin.com"}, domain.PlatformDouyin, true},
		{"iesdouyin", []string{".iesdouyin.com"}, domain.PlatformDouyin, true},
		{"tiktok", []string{".tiktok.com"}, domain.PlatformTikTok, true},
		{"kuaishou", []string{".kuaishou.com"}, domain.PlatformKuaishou, true},
		{"douyin wins over kuaishou", []string{".kuaishou.com", ".douyin.com"}, domain.PlatformDouyin, true},
		{"tiktok wins over kuaishou", []string{".kuaishou.com", ".tiktok.com"}, domain.PlatformTikTok, true},
		{"none", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cookies []Cookie
			for _, d := range tt.domains {
				cookies = append(cookies, Cookie{Name: "n", Value: "v", Domain: d})
			}
			got, ok := Classify(cookies)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Classify() = %q, %v; want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestHeaderString_PriorityFirst(t *testing.T) {
	cookies := []Cookie{
		{Name: "odin_tt", Value: "z", Domain: ".douyin.com"},
		{Name: "sessionid", Value: "s1", Domain: ".douyin.com"},
		{Name: "ttwid", Value: "w", Domain: ".douyin.com"},
	}

	header := HeaderString(cookies, domain.PlatformDouyin)
	want := "sessionid=s1; ttwid=w; odin_tt=z"
	if header != want {
		t.Errorf("HeaderString() = %q, want %q", header, want)
	}
}

func TestHeaderString_LastDuplicateWins(t *testing.T) {
	cookies := []Cookie{
		{Name: "sessionid", Value: "old", Domain: ".douyin.com"},
		{Name: "sessionid", Value: "new", Domain: ".douyin.com"},
	}

	if header := HeaderString(cookies, domain.PlatformDouyin); header != "sessionid=new" {
		t.Errorf("HeaderString() = %q", header)
	}
}

func TestHeaderString_GenericPriorityForUnknownPlatform(t *testing.T) {
	cookies := []Cookie{
		{Name: "other", Value: "o", Domain: ".tiktok.com"},
		{Name: "sessionid", Value: "s", Domain: ".tiktok.com"},
	}

	header := HeaderString(cookies, domain.PlatformAuto)
	if header != "sessionid=s; other=o" {
		t.Errorf("HeaderString() = %q", header)
	}
}

func TestHeaderString_Empty(t *testing.T) {
	if header := HeaderString(nil, domain.PlatformDouyin); header != "" {
		t.Errorf("HeaderString(nil) = %q", header)
	}
}
