package definition

import (
	"slices"
)

// SourceKind selects how a pipeline's input values are produced.
type SourceKind string

const (
	SourceValues   SourceKind = "values"
	SourceRange    SourceKind = "range"
	SourceNaturals SourceKind = "naturals"
	SourceRepeat   SourceKind = "repeat"
)

// Infinite reports whether the source never ends on its own.
func (k SourceKind) Infinite() bool {
	return k == SourceNaturals || k == SourceRepeat
}

// Op is a pipeline step operation.
type Op string

const (
	OpMap       Op = "map"
	OpFilter    Op = "filter"
	OpTake      Op = "take"
	OpDrop      Op = "drop"
	OpTakeWhile Op = "take_while"
)

// usesFunc reports whether the op applies a registered function.
func (o Op) usesFunc() bool {
	return o == OpMap || o == OpFilter || o == OpTakeWhile
}

// CollectKind selects the container a run materializes into.
type CollectKind string

const (
	CollectSlice  CollectKind = "slice"
	CollectSet    CollectKind = "set"
	CollectSorted CollectKind = "sorted"
)

// Definition describes a pipeline: a source, ordered steps and a collector.
type Definition struct {
	Name        string      `json:"name" yaml:"name" validate:"required,max=64"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Source      Source      `json:"source" yaml:"source"`
	Steps       []Step      `json:"steps,omitempty" yaml:"steps,omitempty" validate:"dive"`
	Collect     CollectKind `json:"collect,omitempty" yaml:"collect,omitempty" validate:"omitempty,oneof=slice set sorted"`
}

// Source produces the values fed into the first step.
//
// values yields Values in order. range yields Start, Start+Step, ... while
// below End. naturals yields Start, Start+Step, ... forever. repeat yields
// Value forever. Step defaults to 1.
type Source struct {
	Kind   SourceKind `json:"kind" yaml:"kind" validate:"required,oneof=values range naturals repeat"`
	Values []float64  `json:"values,omitempty" yaml:"values,omitempty"`
	Start  float64    `json:"start,omitempty" yaml:"start,omitempty"`
	End    *float64   `json:"end,omitempty" yaml:"end,omitempty" validate:"required_if=Kind range"`
	Step   float64    `json:"step,omitempty" yaml:"step,omitempty" validate:"gte=0"`
	Value  float64    `json:"value,omitempty" yaml:"value,omitempty"`
}

// Step is one operation in a pipeline. Func and Arg apply to map, filter and
// take_while; N applies to take and drop.
type Step struct {
	Op   Op       `json:"op" yaml:"op" validate:"required,oneof=map filter take drop take_while"`
	Func string   `json:"func,omitempty" yaml:"func,omitempty"`
	Arg  *float64 `json:"arg,omitempty" yaml:"arg,omitempty"`
	N    int      `json:"n,omitempty" yaml:"n,omitempty" validate:"gte=0"`
}

// CollectOrDefault returns the collector, defaulting to slice.
func (d *Definition) CollectOrDefault() CollectKind {
	if d.Collect == "" {
		return CollectSlice
	}
	return d.Collect
}

// Bounded reports whether a run has a way to stop: the source is finite or
// some take or take_while step can end the traversal early. It does not prove
// that step is ever reached or fails; a filter that rejects everything ahead
// of a take still runs forever, so the runner's pull cap and timeout bound
// such chains.
func (d *Definition) Bounded() bool {
	if !d.Source.Kind.Infinite() {
		return true
	}
	return slices.ContainsFunc(d.Steps, func(s Step) bool {
		return s.Op == OpTake || s.Op == OpTakeWhile
	})
}

func (s Source) step() float64 {
	if s.Step == 0 {
		return 1
	}
	return s.Step
}

// Float returns a pointer to v, for building Source.End and Step.Arg literals.
func Float(v float64) *float64 {
	return &v
}
