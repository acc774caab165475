package health

import "context"

// DBPinger checks document store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// UpstreamChecker checks an optional AI provider's availability.
type UpstreamChecker interface {
	HealthCheck(ctx context.Context) error
}
