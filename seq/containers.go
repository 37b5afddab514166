package seq

import (
	"iter"
	"maps"

	"github.com/google/btree"
)

// Set is an unordered set. The zero value is ready to use.
type Set[T comparable] struct {
	items map[T]struct{}
}

// NewSet creates a Set holding vals.
func NewSet[T comparable](vals ...T) Set[T] {
	s := Set[T]{items: make(map[T]struct{}, len(vals))}
	for _, v := range vals {
		s.items[v] = struct{}{}
	}
	return s
}

// Insert adds v to the set.
func (s *Set[T]) Insert(v T) {
	if s.items == nil {
		s.items = make(map[T]struct{})
	}
	s.items[v] = struct{}{}
}

// Contains reports whether v is in the set.
func (s Set[T]) Contains(v T) bool {
	_, ok := s.items[v]
	return ok
}

// Len returns the number of distinct values.
func (s Set[T]) Len() int { return len(s.items) }

// All yields the values in unspecified order.
func (s Set[T]) All() iter.Seq[T] {
	return maps.Keys(s.items)
}

// sortedSetDegree is the B-tree node degree used by SortedSet.
const sortedSetDegree = 16

// SortedSet is an ordered set backed by a B-tree. The zero value is ready to use.
type SortedSet[T btree.Ordered] struct {
	tree *btree.BTreeG[T]
}

// Insert adds v to the set. Inserting an existing value is a no-op.
func (s *SortedSet[T]) Insert(v T) {
	if s.tree == nil {
		s.tree = btree.NewOrderedG[T](sortedSetDegree)
	}
	s.tree.ReplaceOrInsert(v)
}

// Contains reports whether v is in the set.
func (s SortedSet[T]) Contains(v T) bool {
	if s.tree == nil {
		return false
	}
	return s.tree.Has(v)
}

// Len returns the number of distinct values.
func (s SortedSet[T]) Len() int {
	if s.tree == nil {
		return 0
	}
	return s.tree.Len()
}

// Min returns the smallest value, or false if the set is empty.
func (s SortedSet[T]) Min() (T, bool) {
	if s.tree == nil {
		var zero T
		return zero, false
	}
	return s.tree.Min()
}

// Max returns the largest value, or false if the set is empty.
func (s SortedSet[T]) Max() (T, bool) {
	if s.tree == nil {
		var zero T
		return zero, false
	}
	return s.tree.Max()
}

// All yields the values in ascending order.
func (s SortedSet[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if s.tree == nil {
			return
		}
		s.tree.Ascend(func(v T) bool {
			return yield(v)
		})
	}
}

// Values returns the values in ascending order.
func (s SortedSet[T]) Values() []T {
	return ToSlice(s.All())
}
