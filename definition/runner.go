package definition

import (
	"context"
	stderrors "errors"
	"fmt"
	"iter"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/observability"
	"github.com/kbukum/seqkit/seq"
)

// ctxCheckEvery is how many source elements pass between context checks.
const ctxCheckEvery = 64

// Result is the outcome of a pipeline run.
type Result struct {
	RunID      string      `json:"run_id"`
	Pipeline   string      `json:"pipeline"`
	Collect    CollectKind `json:"collect"`
	Values     []float64   `json:"values"`
	Count      int         `json:"count"`
	Truncated  bool        `json:"truncated"`
	Cached     bool        `json:"cached"`
	DurationMS int64       `json:"duration_ms"`
}

// Runner executes definitions.
type Runner struct {
	registry    *Registry
	metrics     *observability.Metrics
	maxElements int
	maxPulls    int
	timeout     time.Duration
	log         *logger.Logger
	cache       ResultCache
	cacheTTL    time.Duration
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithMetrics records drain and run metrics on m.
func WithMetrics(m *observability.Metrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// WithMaxElements caps how many elements a run may collect. A run that
// reaches the cap stops pulling and reports Truncated. 0 means unlimited.
func WithMaxElements(n int) RunnerOption {
	return func(r *Runner) { r.maxElements = n }
}

// WithMaxPulls caps how many source elements a run may pull. Chains whose
// steps never end on their own, such as a filter that rejects everything
// ahead of a take, fail with LIMIT_EXCEEDED at the cap. 0 means unlimited.
func WithMaxPulls(n int) RunnerOption {
	return func(r *Runner) { r.maxPulls = n }
}

// WithTimeout bounds each run. 0 means no deadline beyond the caller's context.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) { r.timeout = d }
}

// WithLogger sets the runner's logger.
func WithLogger(l *logger.Logger) RunnerOption {
	return func(r *Runner) { r.log = l }
}

// NewRunner creates a Runner resolving functions from reg.
func NewRunner(reg *Registry, opts ...RunnerOption) *Runner {
	r := &Runner{registry: reg}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.WithComponent("runner")
	}
	return r
}

// Run validates def, builds its seq chain and collects the result.
func (r *Runner) Run(ctx context.Context, def *Definition) (res *Result, err error) {
	if err := Validate(def, r.registry); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx = logger.ContextWithRunID(ctx, runID)
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	ctx, span := observability.StartSpan(ctx, observability.SpanPipelineRun, trace.WithAttributes(
		attribute.String(observability.AttrPipeline, def.Name),
		attribute.String(observability.AttrRunID, runID),
	))
	defer span.End()

	log := r.log.WithContext(ctx)
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			res, err = nil, errors.FromPanic(rec)
		}
		status := "ok"
		if err != nil {
			status = "error"
			observability.SetSpanError(ctx, err)
			log.Error("pipeline run failed", logger.MergeWithError(
				logger.Fields(logger.FieldPipeline, def.Name), err))
		}
		if r.metrics != nil {
			r.metrics.RecordRun(ctx, def.Name, status)
		}
	}()

	var cacheKey string
	if r.cache != nil {
		key, keyErr := Fingerprint(def, r.maxElements)
		if keyErr != nil {
			log.Warn("result cache skipped", logger.MergeWithError(
				logger.Fields(logger.FieldPipeline, def.Name), keyErr))
		} else {
			cacheKey = key
		}
	}
	if cacheKey != "" {
		if hit := r.cached(ctx, log, cacheKey); hit != nil {
			hit.RunID, hit.Pipeline, hit.Cached = runID, def.Name, true
			hit.DurationMS = time.Since(start).Milliseconds()
			span.SetAttributes(attribute.Bool(observability.AttrCacheHit, true))
			log.Info("pipeline run served from cache", logger.Fields(
				logger.FieldPipeline, def.Name,
				logger.FieldElements, hit.Count,
			))
			return hit, nil
		}
	}

	d := &drain{nonFinite: -1}
	values := collect(r.build(ctx, def, d), def.CollectOrDefault())

	if ctxErr := ctx.Err(); ctxErr != nil {
		if stderrors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, errors.Timeout("pipeline run").WithDetail("pipeline", def.Name).WithCause(ctxErr)
		}
		return nil, errors.Internal(ctxErr).WithDetail("pipeline", def.Name)
	}
	if d.exhausted {
		return nil, errors.New(errors.ErrCodeLimitExceeded,
			fmt.Sprintf("pipeline pulled %d source elements without finishing", d.pulls),
			http.StatusUnprocessableEntity,
		).WithDetail("pipeline", def.Name).WithDetail("max_pulls", r.maxPulls)
	}
	if d.nonFinite >= 0 {
		return nil, errors.InvalidArgument("values", fmt.Sprintf("element %d is not a finite number", d.nonFinite)).
			WithDetail("pipeline", def.Name)
	}

	res = &Result{
		RunID:      runID,
		Pipeline:   def.Name,
		Collect:    def.CollectOrDefault(),
		Values:     values,
		Count:      len(values),
		Truncated:  d.truncated,
		DurationMS: time.Since(start).Milliseconds(),
	}
	span.SetAttributes(attribute.Int(observability.AttrElements, res.Count))
	if cacheKey != "" {
		if err := r.cache.Save(ctx, cacheKey, res, r.cacheTTL); err != nil {
			log.Warn("result cache save failed", logger.MergeWithError(
				logger.Fields(logger.FieldPipeline, def.Name), err))
		}
	}
	log.Info("pipeline run finished", logger.MergeWithDuration(logger.Fields(
		logger.FieldPipeline, def.Name,
		logger.FieldElements, res.Count,
		"truncated", d.truncated,
	), time.Since(start)))
	return res, nil
}

// drain records why a run's chain stopped pulling.
type drain struct {
	pulls     int
	exhausted bool
	truncated bool
	nonFinite int
}

// build wires the source and steps into one lazy adaptor, followed by the
// element cap and the finite-value check. def must be valid.
func (r *Runner) build(ctx context.Context, def *Definition, d *drain) *seq.Adaptor[float64] {
	src := observability.Instrument(ctx, def.Name, guard(ctx, source(def.Source), r.maxPulls, d), r.metrics)
	a := seq.Entry(src)

	for _, step := range def.Steps {
		arg := 0.0
		if step.Arg != nil {
			arg = *step.Arg
		}
		switch step.Op {
		case OpMap:
			m, _ := r.registry.Mapper(step.Func)
			a = a.Map(m.Build(arg))
		case OpFilter:
			p, _ := r.registry.Predicate(step.Func)
			a = a.Filter(p.Build(arg))
		case OpTakeWhile:
			p, _ := r.registry.Predicate(step.Func)
			a = a.TakeWhile(p.Build(arg))
		case OpTake:
			a = a.Take(step.N)
		case OpDrop:
			a = a.Drop(step.N)
		}
	}

	produced := 0
	return a.TakeWhile(func(v float64) bool {
		produced++
		if r.maxElements > 0 && produced > r.maxElements {
			d.truncated = true
			return false
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			d.nonFinite = produced - 1
			return false
		}
		return true
	})
}

// source returns the values a Source describes.
func source(s Source) iter.Seq[float64] {
	step := s.step()
	scaled := func(i int) float64 { return s.Start + float64(i)*step }

	switch s.Kind {
	case SourceRange:
		end := *s.End
		return seq.Map(seq.Entry(seq.Naturals()), scaled).
			TakeWhile(func(v float64) bool { return v < end }).
			Iter()
	case SourceNaturals:
		return seq.Map(seq.Entry(seq.Naturals()), scaled).Iter()
	case SourceRepeat:
		return seq.Repeat(s.Value)
	default:
		return seq.View(s.Values).Iter()
	}
}

// guard ends s early once ctx is done or, when maxPulls is positive, once
// more than maxPulls elements would be pulled from it.
func guard[T any](ctx context.Context, s iter.Seq[T], maxPulls int, d *drain) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range s {
			if d.pulls%ctxCheckEvery == 0 && ctx.Err() != nil {
				return
			}
			if maxPulls > 0 && d.pulls >= maxPulls {
				d.exhausted = true
				return
			}
			d.pulls++
			if !yield(v) {
				return
			}
		}
	}
}

// collect materializes a per kind. Sets keep first-seen order.
func collect(a *seq.Adaptor[float64], kind CollectKind) []float64 {
	switch kind {
	case CollectSet:
		set := seq.As[orderedSet](a.Collect())
		if set.values == nil {
			return []float64{}
		}
		return set.values
	case CollectSorted:
		return seq.As[seq.SortedSet[float64]](a.Collect()).Values()
	default:
		return a.Collect().Slice()
	}
}

// orderedSet drops repeats while keeping insertion order.
type orderedSet struct {
	seen   seq.Set[float64]
	values []float64
}

func (s *orderedSet) Insert(v float64) {
	if s.seen.Contains(v) {
		return
	}
	s.seen.Insert(v)
	s.values = append(s.values, v)
}
