package engine

import (
	"fmt"
	"log/slog"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/calcpad/unit"
)

// rateRefs collects the currency codes referenced by a rate expression.
// Other identifiers, such as builtin function names, are left to expr.
type rateRefs struct {
	codes []string
}

// Visit implements ast.Visitor for rateRefs.
func (r *rateRefs) Visit(node *ast.Node) {
	id, ok := (*node).(*ast.IdentifierNode)
	if !ok || !unit.IsCurrencyCode(id.Value) || slices.Contains(r.codes, id.Value) {
		return
	}

	r.codes = append(r.codes, id.Value)
}

type rateProgram struct {
	program *vm.Program
	source  string
	refs    []string
}

// resolveRates evaluates the configured rate expressions. Each expression
// runs with the codes it references bound to their own resolved rates; the
// base currency is always 1.
func resolveRates(base string, exprs map[string]string) (map[string]float64, error) {
	programs := make(map[string]rateProgram, len(exprs))

	for code, source := range exprs {
		canon, err := unit.ParseCode(strings.ToUpper(code))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a currency code", ErrRate, code)
		}

		refs := &rateRefs{}

		program, err := expr.Compile(source, expr.Patch(refs))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrRate, canon, err)
		}

		programs[canon] = rateProgram{program: program, source: source, refs: refs.codes}
	}

	r := &rateResolver{
		base:     base,
		programs: programs,
		rates:    map[string]float64{base: 1},
	}

	for _, code := range slices.Sorted(maps.Keys(programs)) {
		if _, err := r.resolve(code, nil); err != nil {
			return nil, err
		}
	}

	return r.rates, nil
}

type rateResolver struct {
	programs map[string]rateProgram
	rates    map[string]float64
	base     string
}

func (r *rateResolver) resolve(code string, path []string) (float64, error) {
	if rate, ok := r.rates[code]; ok {
		return rate, nil
	}

	if slices.Contains(path, code) {
		return 0, fmt.Errorf("%w: circular rate %s", ErrRate,
			strings.Join(append(path, code), " -> "))
	}

	p, ok := r.programs[code]
	if !ok {
		return 0, fmt.Errorf("%w: %s references %s, which has no rate", ErrRate,
			path[len(path)-1], code)
	}

	env := make(map[string]any, len(p.refs))

	for _, ref := range p.refs {
		rate, err := r.resolve(ref, append(path, code))
		if err != nil {
			return 0, err
		}

		env[ref] = rate
	}

	out, err := expr.Run(p.program, env)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrRate, code, err)
	}

	rate, ok := toFloat(out)
	if !ok || rate <= 0 || math.IsInf(rate, 0) || math.IsNaN(rate) {
		return 0, fmt.Errorf("%w: %s = %q must be a positive number, got %v",
			ErrRate, code, p.source, out)
	}

	r.rates[code] = rate

	return rate, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// rateAttrs describes resolved rates for logging.
func rateAttrs(rates map[string]float64) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(rates))

	for _, code := range slices.Sorted(maps.Keys(rates)) {
		attrs = append(attrs, slog.Float64(code, rates[code]))
	}

	return attrs
}
