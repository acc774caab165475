package health

import "context"

// Status is the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component is failing.
	Degraded Status = "degraded"
	// Unhealthy indicates the document store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult is an individual component check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing check.
	CheckError CheckResult = "error"
)

// Report aggregates component checks.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks. The store is mandatory; a failing
// store makes the whole report unhealthy. AI providers are optional
// and only degrade the report.
type Service struct {
	db       DBPinger
	upstream map[string]UpstreamChecker
}

// New creates a Service. Nil upstream checkers are skipped, so disabled
// features never appear in the report.
func New(db DBPinger, embedding, images UpstreamChecker) *Service {
	upstream := make(map[string]UpstreamChecker, 2)
	if embedding != nil {
		upstream["embedding"] = embedding
	}
	if images != nil {
		upstream["images"] = images
	}
	return &Service{db: db, upstream: upstream}
}

// Check runs every component check and aggregates the outcome.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 1+len(s.upstream))
	status := Healthy

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
		status = Unhealthy
	} else {
		checks["database"] = CheckOK
	}

	for name, checker := range s.upstream {
		if err := checker.HealthCheck(ctx); err != nil {
			checks[name] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks[name] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
