package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	runIDKey     contextKey = "run_id"
)

// ContextWithRequestID returns a copy of ctx carrying the HTTP request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID stored on ctx, if any.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// ContextWithRunID returns a copy of ctx carrying a pipeline run ID.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext returns the pipeline run ID stored on ctx, if any.
func RunIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)
	return id
}

// contextFields collects the identifiers on ctx that belong on every log line.
func contextFields(ctx context.Context) map[string]string {
	fields := make(map[string]string, 4)
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields[FieldTraceID] = sc.TraceID().String()
		fields[FieldSpanID] = sc.SpanID().String()
	}
	if id := RequestIDFromContext(ctx); id != "" {
		fields[FieldRequestID] = id
	}
	if id := RunIDFromContext(ctx); id != "" {
		fields[FieldRunID] = id
	}
	return fields
}
