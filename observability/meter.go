package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/seqkit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(newResource(config.ServiceName, config.ServiceVersion, config.Environment)),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metric instrument names.
const (
	MetricDrains        = "seq.drains"
	MetricElements      = "seq.elements"
	MetricDrainDuration = "seq.drain.duration"
	MetricDrainsActive  = "seq.drains.active"
	MetricRuns          = "pipeline.runs"
)

// Metrics holds the instruments recorded for sequence drains and pipeline runs.
type Metrics struct {
	drains        metric.Int64Counter
	elements      metric.Int64Counter
	drainDuration metric.Float64Histogram
	drainsActive  metric.Int64UpDownCounter
	runs          metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	drains, err := meter.Int64Counter(MetricDrains,
		metric.WithDescription("Completed sequence traversals"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricDrains, err)
	}

	elements, err := meter.Int64Counter(MetricElements,
		metric.WithDescription("Elements yielded by instrumented sequences"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricElements, err)
	}

	drainDuration, err := meter.Float64Histogram(MetricDrainDuration,
		metric.WithDescription("Duration of sequence traversals in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricDrainDuration, err)
	}

	drainsActive, err := meter.Int64UpDownCounter(MetricDrainsActive,
		metric.WithDescription("Sequence traversals in progress"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricDrainsActive, err)
	}

	runs, err := meter.Int64Counter(MetricRuns,
		metric.WithDescription("Pipeline definition runs by status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRuns, err)
	}

	return &Metrics{
		drains:        drains,
		elements:      elements,
		drainDuration: drainDuration,
		drainsActive:  drainsActive,
		runs:          runs,
	}, nil
}

// RecordDrainStart increments the active traversal count.
func (m *Metrics) RecordDrainStart(ctx context.Context, name string) {
	m.drainsActive.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrSeqName, name)))
}

// RecordDrainEnd decrements active traversals and records the finished one.
func (m *Metrics) RecordDrainEnd(ctx context.Context, name string, elements int64, stoppedEarly bool, duration time.Duration) {
	nameAttr := attribute.String(AttrSeqName, name)
	m.drainsActive.Add(ctx, -1, metric.WithAttributes(nameAttr))
	m.drains.Add(ctx, 1, metric.WithAttributes(nameAttr, attribute.Bool(AttrStoppedEarly, stoppedEarly)))
	m.elements.Add(ctx, elements, metric.WithAttributes(nameAttr))
	m.drainDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(nameAttr))
}

// RecordRun records a pipeline definition run.
func (m *Metrics) RecordRun(ctx context.Context, pipeline, status string) {
	m.runs.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrPipeline, pipeline),
		attribute.String("status", status),
	))
}
