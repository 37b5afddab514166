package server

import (
	"context"

	"github.com/kbukum/seqkit/component"
	"github.com/kbukum/seqkit/observability"
)

const componentName = "http-server"

var _ component.Component = (*ServerComponent)(nil)

// ServerComponent wraps Server to implement component.Component.
type ServerComponent struct {
	server *Server
}

// NewComponent returns a component.Component backed by the given Server.
func NewComponent(s *Server) *ServerComponent {
	return &ServerComponent{server: s}
}

// Name returns the component name used for registration.
func (sc *ServerComponent) Name() string { return componentName }

// Start starts the underlying HTTP server.
func (sc *ServerComponent) Start(ctx context.Context) error {
	return sc.server.Start(ctx)
}

// Stop gracefully shuts down the underlying HTTP server.
func (sc *ServerComponent) Stop(ctx context.Context) error {
	return sc.server.Stop(ctx)
}

// Health reports up while the server is listening.
func (sc *ServerComponent) Health(ctx context.Context) observability.Health {
	if sc.server.Listening() {
		return observability.Health{
			Name:    componentName,
			Status:  observability.HealthStatusUp,
			Details: map[string]string{"addr": sc.server.Addr()},
		}
	}
	return observability.Health{
		Name:    componentName,
		Status:  observability.HealthStatusDown,
		Message: "HTTP server not listening",
	}
}
