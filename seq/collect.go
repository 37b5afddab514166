package seq

import (
	"iter"
	"slices"

	"github.com/google/btree"

	"github.com/kbukum/seqkit/errors"
)

// Materializer holds a composed, still-lazy sequence and converts it into a
// container exactly once.
type Materializer[T any] struct {
	seq   iter.Seq[T]
	spent bool
}

// Inserter is implemented by containers that can be built one value at a time.
type Inserter[T any] interface {
	Insert(T)
}

// Pair is a key/value element used to materialize maps.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// KV builds a Pair.
func KV[K, V any](k K, v V) Pair[K, V] {
	return Pair[K, V]{Key: k, Value: v}
}

// Into drains m into the container produced by build. build receives the
// composed sequence and must traverse it at most once.
func Into[C, T any](m *Materializer[T], build func(iter.Seq[T]) C) C {
	return build(m.consume())
}

// As drains m into a new zero-value C, inserting every surviving value in
// traversal order. C is chosen with an explicit type argument:
//
//	ids := seq.As[seq.Set[string]](m)
func As[C any, PC interface {
	*C
	Inserter[T]
}, T any](m *Materializer[T]) C {
	var c C
	for v := range m.consume() {
		PC(&c).Insert(v)
	}
	return c
}

// Slice drains m into a new slice. An empty sequence yields a non-nil empty slice.
func (m *Materializer[T]) Slice() []T {
	return ToSlice(m.consume())
}

func (m *Materializer[T]) consume() iter.Seq[T] {
	if m == nil {
		panic(errors.InvalidArgument("materializer", "nil materializer"))
	}
	if m.spent {
		panic(errors.Consumed("materializer", "collect"))
	}
	m.spent = true
	s := m.seq
	m.seq = nil
	if s == nil {
		return empty[T]
	}
	return s
}

// --- Builders for use with Into ---

// ToSlice collects s into a slice.
func ToSlice[T any](s iter.Seq[T]) []T {
	out := slices.Collect(s)
	if out == nil {
		out = []T{}
	}
	return out
}

// ToSet collects s into a Set.
func ToSet[T comparable](s iter.Seq[T]) Set[T] {
	set := NewSet[T]()
	for v := range s {
		set.Insert(v)
	}
	return set
}

// ToSortedSet collects s into a SortedSet.
func ToSortedSet[T btree.Ordered](s iter.Seq[T]) SortedSet[T] {
	var set SortedSet[T]
	for v := range s {
		set.Insert(v)
	}
	return set
}

// ToMap collects a sequence of pairs into a map. Later keys overwrite earlier ones.
func ToMap[K comparable, V any](s iter.Seq[Pair[K, V]]) map[K]V {
	out := make(map[K]V)
	for p := range s {
		out[p.Key] = p.Value
	}
	return out
}
