package seq

import "iter"

// Iterate yields seed, next(seed), next(next(seed)), ... without end.
// Bound it with Take or TakeWhile before materializing.
func Iterate[T any](seed T, next func(T) T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := seed; yield(v); v = next(v) {
		}
	}
}

// Naturals yields 0, 1, 2, ... without end.
func Naturals() iter.Seq[int] {
	return Iterate(0, func(n int) int { return n + 1 })
}

// Repeat yields v without end.
func Repeat[T any](v T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for yield(v) {
		}
	}
}

// Range yields start, start+1, ..., end-1. It is empty when end <= start.
func Range(start, end int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := start; i < end; i++ {
			if !yield(i) {
				return
			}
		}
	}
}
