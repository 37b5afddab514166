package main

import (
	"context"
	"time"

	"github.com/kbukum/seqkit/component"
	"github.com/kbukum/seqkit/config"
	"github.com/kbukum/seqkit/definition"
	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/observability"
	"github.com/kbukum/seqkit/redis"
	"github.com/kbukum/seqkit/server"
	"github.com/kbukum/seqkit/server/api"
	"github.com/kbukum/seqkit/server/endpoint"
)

const meterName = "github.com/kbukum/seqkit"

// app is a wired seqd instance.
type app struct {
	cfg        *config.Config
	components *component.Registry
	server     *server.Server
	catalog    *definition.Catalog
}

// newApp wires telemetry, the definition catalog, the runner and the HTTP
// server, and registers them as components in start order.
func newApp(cfg *config.Config, log *logger.Logger) (*app, error) {
	a := &app{cfg: cfg, components: component.NewRegistry()}

	if cfg.Tracing.Enabled {
		if err := a.components.Register(tracingComponent(cfg)); err != nil {
			return nil, err
		}
	}
	if cfg.Metrics.Enabled {
		if err := a.components.Register(metricsComponent(cfg)); err != nil {
			return nil, err
		}
	}

	// Instruments created on the global meter forward to the provider set
	// later by the metrics component; without it they are no-ops.
	metrics, err := observability.NewMetrics(observability.Meter(meterName))
	if err != nil {
		return nil, err
	}

	reg := definition.DefaultRegistry()
	a.catalog = definition.NewCatalog(reg, definition.NewLoader(cfg.Pipelines.Dirs...))
	opts := []definition.RunnerOption{
		definition.WithMetrics(metrics),
		definition.WithMaxElements(cfg.Pipelines.ElementLimit()),
		definition.WithMaxPulls(cfg.Pipelines.PullLimit()),
		definition.WithTimeout(cfg.Pipelines.RunTimeout()),
		definition.WithLogger(log.WithComponent("runner")),
	}

	if cfg.Redis.Enabled {
		client, err := redis.New(cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		if err := a.components.Register(redis.NewComponent(client)); err != nil {
			return nil, err
		}
		store := redis.NewTypedStore[definition.Result](client, "results")
		opts = append(opts, definition.WithCache(store, time.Duration(cfg.Pipelines.CacheTTL)*time.Second))
	}
	runner := definition.NewRunner(reg, opts...)

	a.server = server.New(cfg.Server, log)
	endpoint.Register(a.server.Engine(), cfg.Name, func(ctx context.Context) *observability.ServiceHealth {
		return a.components.ServiceHealth(ctx, cfg.Name, cfg.Version)
	})
	api.NewHandler(a.catalog, runner, reg).Register(a.server.Engine())

	if err := a.components.Register(a.catalog); err != nil {
		return nil, err
	}
	if err := a.components.Register(server.NewComponent(a.server)); err != nil {
		return nil, err
	}
	return a, nil
}

func tracingComponent(cfg *config.Config) component.Component {
	var shutdown func(context.Context) error
	return component.New("tracing",
		func(ctx context.Context) error {
			tc := observability.DefaultTracerConfig(cfg.Name)
			tc.ServiceVersion = cfg.Version
			tc.Environment = cfg.Environment
			tc.Endpoint = cfg.Tracing.Endpoint
			tc.Insecure = cfg.Tracing.Insecure
			tc.SampleRate = cfg.Tracing.SampleRate
			tp, err := observability.InitTracer(ctx, tc)
			if err != nil {
				return err
			}
			shutdown = tp.Shutdown
			return nil
		},
		func(ctx context.Context) error {
			if shutdown == nil {
				return nil
			}
			return shutdown(ctx)
		})
}

func metricsComponent(cfg *config.Config) component.Component {
	var shutdown func(context.Context) error
	return component.New("metrics",
		func(ctx context.Context) error {
			mc := observability.DefaultMeterConfig(cfg.Name)
			mc.ServiceVersion = cfg.Version
			mc.Environment = cfg.Environment
			mc.Endpoint = cfg.Metrics.Endpoint
			mc.Insecure = cfg.Metrics.Insecure
			mc.Interval = time.Duration(cfg.Metrics.Interval) * time.Second
			mp, err := observability.InitMeter(ctx, mc)
			if err != nil {
				return err
			}
			shutdown = mp.Shutdown
			return nil
		},
		func(ctx context.Context) error {
			if shutdown == nil {
				return nil
			}
			return shutdown(ctx)
		})
}

// run starts every component, blocks until ctx is done and stops them again.
func (a *app) run(ctx context.Context) error {
	if err := a.components.StartAll(ctx); err != nil {
		return err
	}
	logger.Info("seqd ready", logger.Fields(
		"addr", a.server.Addr(),
		"pipelines", a.catalog.Len(),
	))

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()
	return a.components.StopAll(stopCtx)
}
