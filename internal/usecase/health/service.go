package health

import (
	"context"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates every component failed.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names used as Report.Checks keys.
const (
	CheckStore   = "store"
	CheckContent = "content"
)

const defaultPingTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
	Items  int
}

// Service coordinates health checks.
type Service struct {
	store       StorePinger
	content     ContentProbe
	pingTimeout time.Duration
}

// New creates a Service. Either dependency can be nil to skip its check.
func New(store StorePinger, content ContentProbe) *Service {
	return &Service{store: store, content: content, pingTimeout: defaultPingTimeout}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	var items int

	if s.store != nil {
		pctx, cancel := context.WithTimeout(ctx, s.pingTimeout)
		err := s.store.Ping(pctx)
		cancel()
		checks[CheckStore] = result(err == nil)
	}

	if s.content != nil {
		checks[CheckContent] = result(s.content.Loaded())
		items = s.content.Size()
	}

	failed := 0
	for _, v := range checks {
		if v == CheckError {
			failed++
		}
	}

	status := Healthy
	switch {
	case failed > 0 && failed == len(checks):
		status = Unhealthy
	case failed > 0:
		status = Degraded
	}

	return Report{Status: status, Checks: checks, Items: items}
}

func result(ok bool) CheckResult {
	if ok {
		return CheckOK
	}
	return CheckError
}
