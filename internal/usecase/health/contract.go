package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// DescriberChecker checks description provider availability.
type DescriberChecker interface {
	HealthCheck(ctx context.Context) error
}
