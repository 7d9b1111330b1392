package observability

import "context"

// HealthStatus is the health state of a dependency.
type HealthStatus string

// Health states.
const (
	HealthStatusUp       HealthStatus = "up"
	HealthStatusDown     HealthStatus = "down"
	HealthStatusDegraded HealthStatus = "degraded"
)

// Health is the result of one health check.
type Health struct {
	Name    string            `json:"name"`
	Status  HealthStatus      `json:"status"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// HealthChecker is implemented by clients that can probe their server.
type HealthChecker interface {
	CheckHealth(ctx context.Context) Health
}
