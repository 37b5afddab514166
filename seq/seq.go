package seq

import (
	"iter"
	"slices"

	"github.com/kbukum/seqkit/errors"
)

// Adaptor is a not-yet-evaluated sequence with zero or more pending
// transformations. It owns its sequence and is consumed by every chained call.
// The zero value is an empty sequence.
type Adaptor[T any] struct {
	seq   iter.Seq[T]
	spent bool
}

// Entry wraps s directly. The adaptor takes ownership of s; the caller should
// not traverse s independently afterwards.
func Entry[T any](s iter.Seq[T]) *Adaptor[T] {
	if s == nil {
		s = empty[T]
	}
	return &Adaptor[T]{seq: s}
}

// FromSlice takes ownership of a copy of s. Later writes to s by the caller
// are not observed by the chain.
func FromSlice[S ~[]E, E any](s S) *Adaptor[E] {
	return Entry(slices.Values(slices.Clone(s)))
}

// View borrows s without copying it. The chain reads s lazily, so s must
// stay valid and unmodified until the chain has been drained. s is never written.
func View[S ~[]E, E any](s S) *Adaptor[E] {
	return Entry(slices.Values(s))
}

// Iter consumes the adaptor and returns the composed sequence.
func (a *Adaptor[T]) Iter() iter.Seq[T] {
	return a.consume("iter")
}

// Collect ends the transformation stage. Nothing is traversed until the
// returned Materializer is converted into a container.
func (a *Adaptor[T]) Collect() *Materializer[T] {
	return &Materializer[T]{seq: a.consume("collect")}
}

func (a *Adaptor[T]) consume(op string) iter.Seq[T] {
	if a == nil {
		panic(errors.InvalidArgument("adaptor", "nil adaptor"))
	}
	if a.spent {
		panic(errors.Consumed("adaptor", op))
	}
	a.spent = true
	s := a.seq
	a.seq = nil
	if s == nil {
		return empty[T]
	}
	return s
}

func empty[T any](func(T) bool) {}
