package engine

import (
	"slices"

	"github.com/ardnew/calcpad/format"
	"github.com/ardnew/calcpad/lang"
	"github.com/ardnew/calcpad/value"
)

type binding struct {
	value     value.Value
	line      int
	redefined bool
	failed    bool // the closest definition failed
}

// store holds the bindings and functions accumulated by one pass. Names
// resolve to the closest prior definition in document order because each
// line overwrites the previous binding as it is evaluated.
type store struct {
	vars  map[string]*binding
	funcs map[string]*lang.Node
	order []string // first definition order of vars
	defs  []string // first definition order of funcs
}

func newStore() *store {
	return &store{
		vars:  make(map[string]*binding),
		funcs: make(map[string]*lang.Node),
	}
}

func (s *store) lookup(name string) (value.Value, bool) {
	b, ok := s.vars[name]
	if !ok || b.failed {
		return value.Value{}, false
	}

	return b.value, true
}

// failed reports whether the closest definition of name failed.
func (s *store) failed(name string) bool {
	b, ok := s.vars[name]

	return ok && b.failed
}

func (s *store) bind(name string, v value.Value, line int) {
	if b, ok := s.vars[name]; ok {
		b.value, b.line, b.redefined, b.failed = v, line, true, false

		return
	}

	s.vars[name] = &binding{value: v, line: line}
	s.order = append(s.order, name)
}

// fail supersedes any earlier binding of name by a failed definition on
// line, so later lines read name as undefined.
func (s *store) fail(name string, line int) {
	b, ok := s.vars[name]
	if !ok {
		return
	}

	b.value, b.line, b.redefined, b.failed = value.Value{}, line, true, true
}

func (s *store) define(fn *lang.Node) {
	if _, ok := s.funcs[fn.Name]; !ok {
		s.defs = append(s.defs, fn.Name)
	}

	s.funcs[fn.Name] = fn
}

func (s *store) function(name string) (*lang.Node, bool) {
	fn, ok := s.funcs[name]

	return fn, ok
}

func (s *store) bindings(f *format.Formatter) []Binding {
	out := make([]Binding, 0, len(s.order))

	for _, name := range s.order {
		b := s.vars[name]
		if b.failed {
			continue
		}

		out = append(out, Binding{
			Name:      name,
			Value:     f.Value(b.value),
			Line:      b.line,
			Redefined: b.redefined,
		})
	}

	return out
}

func (s *store) functions() []Function {
	out := make([]Function, 0, len(s.defs))

	for _, name := range s.defs {
		fn := s.funcs[name]

		params := make([]string, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = p.Name
		}

		out = append(out, Function{Name: name, Params: params, Line: fn.Line})
	}

	return out
}

// frames is the dynamic scope of active function calls, innermost last.
// A function body sees its own parameters, then those of its callers, then
// the store as it stands at call time.
type frames []map[string]value.Value

func (f frames) lookup(name string) (value.Value, bool) {
	for _, frame := range slices.Backward(f) {
		if v, ok := frame[name]; ok {
			return v, true
		}
	}

	return value.Value{}, false
}
