// Package definition runs declarative numeric pipelines on top of package seq.
//
// A Definition names a source of float64 values, an ordered list of steps
// (map, filter, take, drop, take_while) and how the survivors are collected.
// Functions are referenced by name and resolved from a Registry, so a
// definition can be stored as YAML or sent as JSON:
//
//	name: first-even-squares
//	source:
//	  kind: naturals
//	steps:
//	  - op: filter
//	    func: even
//	  - op: map
//	    func: square
//	  - op: take
//	    n: 3
//	collect: slice
//
// Definitions are loaded with a Loader, checked with Validate, held by a
// Catalog and executed by a Runner. A run is traced and measured through
// package observability and never pulls more elements than its steps demand.
package definition
