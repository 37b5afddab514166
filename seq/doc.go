// Package seq provides a fluent, chainable adaptor over iter.Seq.
//
// Chains are lazy: no element is produced until the chain is materialized.
// Each stage pulls from the previous one on demand, so Take and TakeWhile
// stop upstream traversal and work over infinite sources.
//
// An Adaptor and a Materializer are single-use. Every chained call consumes
// its receiver; touching a consumed value panics with a PIPELINE_CONSUMED
// *errors.AppError.
//
// # Operators
//
//   - Map: transform each value (method for same-type, function for type-changing)
//   - Filter: keep values matching a predicate
//   - Take: keep at most the first n values
//   - Drop: skip the first n values
//   - TakeWhile: keep the longest prefix matching a predicate
//
// # Usage
//
//	halves := seq.Map(
//	    seq.View(values).Filter(func(n int) bool { return n%2 == 0 }),
//	    func(n int) float64 { return float64(n*n) / 2 },
//	).Collect().Slice()
//
// Materialize into any container with Into or, for types implementing
// Inserter, with an explicit type argument:
//
//	set := seq.As[seq.SortedSet[int]](seq.FromSlice(ids).Drop(1).Collect())
package seq
