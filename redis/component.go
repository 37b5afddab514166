package redis

import (
	"context"
	"fmt"

	"github.com/kbukum/seqkit/component"
	"github.com/kbukum/seqkit/observability"
)

var _ component.Component = (*Component)(nil)

// Component manages a Client's lifecycle: Start verifies connectivity and
// Stop closes the pool.
type Component struct {
	client *Client
}

// NewComponent wraps client for use with the component registry.
func NewComponent(client *Client) *Component {
	return &Component{client: client}
}

// Name returns the component name.
func (c *Component) Name() string { return "redis" }

// Start verifies the server is reachable.
func (c *Component) Start(ctx context.Context) error {
	if err := c.client.Ping(ctx); err != nil {
		return fmt.Errorf("redis start: %w", err)
	}
	c.client.log.Info("redis connected", map[string]interface{}{"addr": c.client.Addr()})
	return nil
}

// Stop closes the connection pool.
func (c *Component) Stop(_ context.Context) error {
	return c.client.Close()
}

// Health pings the server. An unreachable cache only degrades the service,
// since runs fall back to computing results.
func (c *Component) Health(ctx context.Context) observability.Health {
	if err := c.client.Ping(ctx); err != nil {
		return observability.Health{
			Name:    c.Name(),
			Status:  observability.HealthStatusDegraded,
			Message: err.Error(),
		}
	}
	return observability.Health{
		Name:    c.Name(),
		Status:  observability.HealthStatusUp,
		Details: map[string]string{"addr": c.client.Addr()},
	}
}
