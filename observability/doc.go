// Package observability provides OpenTelemetry tracing and metrics for seqkit
// pipelines and the seqd service.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("seqd"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("seqd"))
//	defer mp.Shutdown(ctx)
//	metrics, err := observability.NewMetrics(observability.Meter("seqd"))
//
// Instrumenting a sequence. The span starts when traversal starts, not when
// Instrument is called, so wrapping a lazy chain keeps it lazy:
//
//	src := observability.Instrument(ctx, "orders", orders, metrics)
//	out := seq.Entry(src).Filter(isOpen).Take(10).Collect().Slice()
package observability
