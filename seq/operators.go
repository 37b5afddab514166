package seq

import (
	"iter"

	"github.com/kbukum/seqkit/errors"
)

// Map transforms each value of a with f. The element type of the result is
// f's return type. f runs once per value, only when that value is pulled.
func Map[I, O any](a *Adaptor[I], f func(I) O) *Adaptor[O] {
	return Entry(mapSeq(a.consume("map"), f))
}

// Map transforms each value with f, keeping the element type.
// Use the package-level Map to change the element type.
func (a *Adaptor[T]) Map(f func(T) T) *Adaptor[T] {
	return Map(a, f)
}

// Filter keeps only values that satisfy p.
func (a *Adaptor[T]) Filter(p func(T) bool) *Adaptor[T] {
	return Entry(filterSeq(a.consume("filter"), p))
}

// Take keeps at most the first n values. It panics if n is negative.
func (a *Adaptor[T]) Take(n int) *Adaptor[T] {
	checkCount("take", n)
	return Entry(takeSeq(a.consume("take"), n))
}

// Drop skips the first n values. It panics if n is negative.
func (a *Adaptor[T]) Drop(n int) *Adaptor[T] {
	checkCount("drop", n)
	return Entry(dropSeq(a.consume("drop"), n))
}

// TakeWhile keeps values until the first one that fails p. That value and
// everything after it are excluded, and the source is not pulled further.
func (a *Adaptor[T]) TakeWhile(p func(T) bool) *Adaptor[T] {
	return Entry(takeWhileSeq(a.consume("take_while"), p))
}

func checkCount(op string, n int) {
	if n < 0 {
		panic(errors.InvalidArgument("n", op+" count must be non-negative").WithDetail("n", n))
	}
}

// --- Sequence implementations ---

func mapSeq[I, O any](source iter.Seq[I], f func(I) O) iter.Seq[O] {
	return func(yield func(O) bool) {
		for v := range source {
			if !yield(f(v)) {
				return
			}
		}
	}
}

func filterSeq[T any](source iter.Seq[T], p func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range source {
			if p(v) && !yield(v) {
				return
			}
		}
	}
}

func takeSeq[T any](source iter.Seq[T], n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if n == 0 {
			return
		}
		taken := 0
		for v := range source {
			if !yield(v) {
				return
			}
			taken++
			if taken == n {
				return
			}
		}
	}
}

func dropSeq[T any](source iter.Seq[T], n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		skipped := 0
		for v := range source {
			if skipped < n {
				skipped++
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

func takeWhileSeq[T any](source iter.Seq[T], p func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range source {
			if !p(v) || !yield(v) {
				return
			}
		}
	}
}
