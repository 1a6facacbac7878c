package probe

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"cookiecycle/internal/domain"
)

const pollInterval = 250 * time.Millisecond

// Statuses that count as "responding". The probe cares about HTTP liveness,
// not business-logic correctness, so a redirect or a 404 root still proves
// the server is up.
var acceptedStatuses = map[int]bool{200: true, 307: true, 404: true}

// HTTP probes the API server's endpoints.
type HTTP struct {
	client  *resty.Client
	host    string
	timeout time.Duration
	logger  domain.Logger
}

// NewHTTP creates a prober against host with the given overall polling
// deadline for WaitResponding.
func NewHTTP(host string, timeout time.Duration, logger domain.Logger) *HTTP {
	client := resty.New().
		SetTimeout(2 * time.Second).
		SetRedirectPolicy(resty.NoRedirectPolicy())
	return &HTTP{client: client, host: host, timeout: timeout, logger: logger}
}

// Probe issues a single request to the root path.
func (h *HTTP) Probe(port int) domain.HealthStatus {
	return h.get(h.url(port, "/"))
}

// ProbeDocs issues a single request to the documentation path. Advisory
// only; callers treat a failure as a warning.
func (h *HTTP) ProbeDocs(port int) domain.HealthStatus {
	return h.get(h.url(port, "/docs"))
}

// WaitResponding polls the root path until it responds or the deadline
// elapses.
func (h *HTTP) WaitResponding(port int) (domain.HealthStatus, error) {
	deadline := time.Now().Add(h.timeout)
	for {
		if status := h.Probe(port); status == domain.HealthResponding {
			return status, nil
		}
		if !time.Now().Before(deadline) {
			return domain.HealthUnresponsive,
				fmt.Errorf("%w: no response from port %d within %s", domain.ErrHealthCheck, port, h.timeout)
		}
		time.Sleep(pollInterval)
	}
}

// get classifies one request. Redirects are not followed so a 307 stays
// observable; resty reports the blocked redirect as an error with the
// response still populated, so status is checked first.
func (h *HTTP) get(url string) domain.HealthStatus {
	resp, _ := h.client.R().Get(url)
	if resp != nil && acceptedStatuses[resp.StatusCode()] {
		return domain.HealthResponding
	}
	return domain.HealthUnresponsive
}

func (h *HTTP) url(port int, path string) string {
	return "http://" + net.JoinHostPort(h.host, strconv.Itoa(port)) + path
}
