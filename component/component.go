package component

import (
	"context"
	"sync/atomic"

	"github.com/kbukum/seqkit/observability"
)

// Component represents a lifecycle-managed part of a service.
type Component interface {
	// Name returns the unique name of the component for registration.
	Name() string

	// Start initializes and starts the component.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the component and releases resources.
	Stop(ctx context.Context) error

	// Health returns the current health status of the component.
	Health(ctx context.Context) observability.Health
}

// funcComponent adapts a pair of functions to Component.
type funcComponent struct {
	name    string
	start   func(ctx context.Context) error
	stop    func(ctx context.Context) error
	running atomic.Bool
}

// New returns a Component that runs start and stop. Either may be nil.
// It reports up while started and down otherwise.
func New(name string, start, stop func(ctx context.Context) error) Component {
	return &funcComponent{name: name, start: start, stop: stop}
}

func (c *funcComponent) Name() string { return c.name }

func (c *funcComponent) Start(ctx context.Context) error {
	if c.start != nil {
		if err := c.start(ctx); err != nil {
			return err
		}
	}
	c.running.Store(true)
	return nil
}

func (c *funcComponent) Stop(ctx context.Context) error {
	c.running.Store(false)
	if c.stop != nil {
		return c.stop(ctx)
	}
	return nil
}

func (c *funcComponent) Health(ctx context.Context) observability.Health {
	if c.running.Load() {
		return observability.Health{Name: c.name, Status: observability.HealthStatusUp}
	}
	return observability.Health{Name: c.name, Status: observability.HealthStatusDown, Message: "not running"}
}
