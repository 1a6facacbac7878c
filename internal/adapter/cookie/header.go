package cookie

import (
	"strings"

	"cookiecycle/internal/domain"
)

// Session-critical cookie names per platform, emitted first so truncated
// displays still show the credentials that matter.
var priorityNames = map[domain.Platform][]string{
	domain.PlatformDouyin:   {"sessionid", "sid_guard", "uid_tt", "sid_tt", "ttwid", "msToken"},
	domain.PlatformTikTok:   {"sessionid_ss", "sessionid", "ttwid", "msToken", "tt_csstoken"},
	domain.PlatformKuaishou: {"userId", "kpn", "kpf", "did", "clientid", "kuaishou.server.webday7_st"},
}

var genericPriority = []string{"sessionid", "sessionid_ss", "userid", "uid", "ttwid"}

// HeaderString assembles an HTTP Cookie header value. Duplicate names keep
// the last value seen; the platform's priority cookies come first, the rest
// follow in first-seen order.
func HeaderString(cookies []Cookie, p domain.Platform) string {
	if len(cookies) == 0 {
		return ""
	}

	priority, ok := priorityNames[p]
	if !ok {
		priority = genericPriority
	}

	values := make(map[string]string, len(cookies))
	var order []string
	for _, c := range cookies {
		if _, seen := values[c.Name]; !seen {
			order = append(order, c.Name)
		}
		values[c.Name] = c.Value
	}

	var parts []string
	for _, name := range priority {
		if v, ok := values[name]; ok {
			parts = append(parts, name+"="+v)
			delete(values, name)
		}
	}
	for _, name := range order {
		if v, ok := values[name]; ok {
			parts = append(parts, name+"="+v)
		}
	}
	return strings.Join(parts, "; ")
}
