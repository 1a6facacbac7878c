package monitor

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"cookiecycle/internal/domain"
)

// Service probes the API server on a cron schedule and logs the outcome.
// It keeps watching through outages; classification only, no restarts.
type Service struct {
	prober   domain.HealthProber
	logger   domain.Logger
	port     int
	schedule string
	c        *cron.Cron
}

// New creates a monitor for port using a cron schedule expression
// (e.g. "@every 30s").
func New(prober domain.HealthProber, logger domain.Logger, port int, schedule string) *Service {
	return &Service{prober: prober, logger: logger, port: port, schedule: schedule}
}

// Start probes once immediately, then on every schedule tick.
func (s *Service) Start() error {
	s.c = cron.New()
	if _, err := s.c.AddFunc(s.schedule, s.tick); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", s.schedule, err)
	}
	s.tick()
	s.c.Start()
	return nil
}

// Stop halts the schedule and waits for an in-flight probe to finish.
func (s *Service) Stop() {
	if s.c != nil {
		<-s.c.Stop().Done()
	}
}

func (s *Service) tick() {
	root := s.prober.Probe(s.port)
	docs := s.prober.ProbeDocs(s.port)
	if root == domain.HealthResponding {
		s.logger.Info("api server responding", "port", s.port, "docs", docs)
		return
	}
	s.logger.Warn("api server unresponsive", "port", s.port, "docs", docs)
}
