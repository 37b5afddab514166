package observability

import (
	"context"
	"iter"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Instrument wraps s so that each traversal is traced and measured.
//
// Nothing happens until s is ranged over. Each traversal opens a seq.drain
// span, counts the elements it yields and notes whether the consumer stopped
// before s was exhausted (as Take and TakeWhile do). m may be nil.
func Instrument[T any](ctx context.Context, name string, s iter.Seq[T], m *Metrics) iter.Seq[T] {
	return func(yield func(T) bool) {
		spanCtx, span := StartSpan(ctx, SpanSeqDrain, trace.WithAttributes(attribute.String(AttrSeqName, name)))
		start := time.Now()
		if m != nil {
			m.RecordDrainStart(spanCtx, name)
		}

		var count int64
		stopped := false
		finished := false
		defer func() {
			span.SetAttributes(
				attribute.Int64(AttrElements, count),
				attribute.Bool(AttrStoppedEarly, stopped),
			)
			if !finished {
				// Unwinding from a panic in s or in the consumer.
				span.SetStatus(codes.Error, "traversal aborted")
			}
			span.End()
			if m != nil {
				m.RecordDrainEnd(spanCtx, name, count, stopped, time.Since(start))
			}
		}()

		for v := range s {
			count++
			if !yield(v) {
				stopped = true
				break
			}
		}
		finished = true
	}
}
