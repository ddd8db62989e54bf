package health

import "context"

// DBChecker checks database availability.
type DBChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}
