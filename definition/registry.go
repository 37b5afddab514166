package definition

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/kbukum/seqkit/errors"
)

// FuncKind distinguishes mapper and predicate functions.
type FuncKind string

const (
	KindMapper    FuncKind = "mapper"
	KindPredicate FuncKind = "predicate"
)

// Mapper is a named float64 transform. When TakesArg is set, Build receives
// the step's arg.
type Mapper struct {
	Name        string
	Description string
	TakesArg    bool
	// CheckArg optionally rejects args Build cannot use.
	CheckArg func(arg float64) error
	Build    func(arg float64) func(float64) float64
}

// Predicate is a named float64 test. When TakesArg is set, Build receives
// the step's arg.
type Predicate struct {
	Name        string
	Description string
	TakesArg    bool
	CheckArg    func(arg float64) error
	Build       func(arg float64) func(float64) bool
}

// FuncInfo describes a registered function.
type FuncInfo struct {
	Kind        FuncKind `json:"kind"`
	Name        string   `json:"name"`
	TakesArg    bool     `json:"takes_arg"`
	Description string   `json:"description"`
}

// Registry provides named function lookup for definition steps.
type Registry struct {
	mu         sync.RWMutex
	mappers    map[string]Mapper
	predicates map[string]Predicate
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		mappers:    make(map[string]Mapper),
		predicates: make(map[string]Predicate),
	}
}

// DefaultRegistry returns a Registry holding the built-in functions.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, m := range builtinMappers() {
		if err := r.RegisterMapper(m); err != nil {
			panic(err)
		}
	}
	for _, p := range builtinPredicates() {
		if err := r.RegisterPredicate(p); err != nil {
			panic(err)
		}
	}
	return r
}

// RegisterMapper adds a mapper. Names must be unique across both kinds.
func (r *Registry) RegisterMapper(m Mapper) error {
	if m.Name == "" || m.Build == nil {
		return errors.InvalidArgument("mapper", "name and build function are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken(m.Name) {
		return errors.InvalidArgument("mapper", fmt.Sprintf("function %q already registered", m.Name))
	}
	r.mappers[m.Name] = m
	return nil
}

// RegisterPredicate adds a predicate. Names must be unique across both kinds.
func (r *Registry) RegisterPredicate(p Predicate) error {
	if p.Name == "" || p.Build == nil {
		return errors.InvalidArgument("predicate", "name and build function are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken(p.Name) {
		return errors.InvalidArgument("predicate", fmt.Sprintf("function %q already registered", p.Name))
	}
	r.predicates[p.Name] = p
	return nil
}

func (r *Registry) taken(name string) bool {
	_, m := r.mappers[name]
	_, p := r.predicates[name]
	return m || p
}

// Mapper retrieves a mapper by name.
func (r *Registry) Mapper(name string) (Mapper, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.mappers[name]
	return m, ok
}

// Predicate retrieves a predicate by name.
func (r *Registry) Predicate(name string) (Predicate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.predicates[name]
	return p, ok
}

// Funcs lists every registered function, mappers first, each group by name.
func (r *Registry) Funcs() []FuncInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]FuncInfo, 0, len(r.mappers)+len(r.predicates))
	for _, m := range r.mappers {
		infos = append(infos, FuncInfo{Kind: KindMapper, Name: m.Name, TakesArg: m.TakesArg, Description: m.Description})
	}
	for _, p := range r.predicates {
		infos = append(infos, FuncInfo{Kind: KindPredicate, Name: p.Name, TakesArg: p.TakesArg, Description: p.Description})
	}
	slices.SortFunc(infos, func(a, b FuncInfo) int {
		if c := strings.Compare(string(a.Kind), string(b.Kind)); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return infos
}

func unary(f func(float64) float64) func(float64) func(float64) float64 {
	return func(float64) func(float64) float64 { return f }
}

func test(f func(float64) bool) func(float64) func(float64) bool {
	return func(float64) func(float64) bool { return f }
}

func builtinMappers() []Mapper {
	return []Mapper{
		{Name: "square", Description: "x * x", Build: unary(func(x float64) float64 { return x * x })},
		{Name: "double", Description: "2 * x", Build: unary(func(x float64) float64 { return 2 * x })},
		{Name: "half", Description: "x / 2", Build: unary(func(x float64) float64 { return x / 2 })},
		{Name: "negate", Description: "-x", Build: unary(func(x float64) float64 { return -x })},
		{Name: "abs", Description: "|x|", Build: unary(math.Abs)},
		{Name: "sqrt", Description: "square root of x", Build: unary(math.Sqrt)},
		{Name: "inc", Description: "x + 1", Build: unary(func(x float64) float64 { return x + 1 })},
		{Name: "add", Description: "x + arg", TakesArg: true, Build: func(a float64) func(float64) float64 {
			return func(x float64) float64 { return x + a }
		}},
		{Name: "mul", Description: "x * arg", TakesArg: true, Build: func(a float64) func(float64) float64 {
			return func(x float64) float64 { return x * a }
		}},
		{Name: "div", Description: "x / arg", TakesArg: true,
			CheckArg: func(a float64) error {
				if a == 0 {
					return fmt.Errorf("division by zero")
				}
				return nil
			},
			Build: func(a float64) func(float64) float64 {
				return func(x float64) float64 { return x / a }
			}},
	}
}

func builtinPredicates() []Predicate {
	cmp := func(name, desc string, f func(x, a float64) bool) Predicate {
		return Predicate{Name: name, Description: desc, TakesArg: true, Build: func(a float64) func(float64) bool {
			return func(x float64) bool { return f(x, a) }
		}}
	}
	return []Predicate{
		{Name: "even", Description: "x is an even integer", Build: test(func(x float64) bool { return math.Mod(x, 2) == 0 })},
		{Name: "odd", Description: "x is an odd integer", Build: test(func(x float64) bool { return math.Abs(math.Mod(x, 2)) == 1 })},
		{Name: "positive", Description: "x > 0", Build: test(func(x float64) bool { return x > 0 })},
		{Name: "negative", Description: "x < 0", Build: test(func(x float64) bool { return x < 0 })},
		cmp("lt", "x < arg", func(x, a float64) bool { return x < a }),
		cmp("le", "x <= arg", func(x, a float64) bool { return x <= a }),
		cmp("gt", "x > arg", func(x, a float64) bool { return x > a }),
		cmp("ge", "x >= arg", func(x, a float64) bool { return x >= a }),
		cmp("eq", "x == arg", func(x, a float64) bool { return x == a }),
		cmp("ne", "x != arg", func(x, a float64) bool { return x != a }),
	}
}
