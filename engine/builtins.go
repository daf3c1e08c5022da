package engine

import (
	"maps"
	"math"
	"slices"

	"github.com/ardnew/calcpad/unit"
	"github.com/ardnew/calcpad/value"
)

// builtin is a function available to every document. User functions of
// the same name shadow it.
type builtin struct {
	fn  func(*pass, []value.Value) (value.Value, error)
	min int
	max int // negative for variadic
}

func (b builtin) arity(name string, n int) error {
	switch {
	case n < b.min && b.min == b.max:
		return value.ErrArityMismatch.Detail("%s takes %d arguments, got %d", name, b.min, n)
	case n < b.min:
		return value.ErrArityMismatch.Detail("%s takes at least %d arguments, got %d",
			name, b.min, n)
	case b.max >= 0 && n > b.max:
		return value.ErrArityMismatch.Detail("%s takes at most %d arguments, got %d",
			name, b.max, n)
	}

	return nil
}

// constants are the names that resolve when no binding exists.
var constants = map[string]func(*pass) value.Value{
	"pi":        func(*pass) value.Value { return value.Number(value.Pi()) },
	"e":         func(*pass) value.Value { return value.Number(math.E) },
	"today":     func(p *pass) value.Value { return value.Date(p.now, false) },
	"now":       func(p *pass) value.Value { return value.Date(p.now, true) },
	"tomorrow":  func(p *pass) value.Value { return value.Date(p.now.AddDate(0, 0, 1), false) },
	"yesterday": func(p *pass) value.Value { return value.Date(p.now.AddDate(0, 0, -1), false) },
}

var builtins = makeBuiltins()

func makeBuiltins() map[string]builtin {
	b := map[string]builtin{
		"sort":    {min: 1, max: 1, fn: listFunc(func(l value.Value) (value.Value, error) { return value.Sort(l, false) })},
		"reverse": {min: 1, max: 1, fn: listFunc(value.Reverse)},
		"first":   {min: 1, max: 1, fn: listFunc(func(l value.Value) (value.Value, error) { return value.Index(l, 1) })},
		"last":    {min: 1, max: 1, fn: listFunc(func(l value.Value) (value.Value, error) { return value.Index(l, -1) })},
		"len":     {min: 1, max: 1, fn: listFunc(func(l value.Value) (value.Value, error) { return value.Number(float64(len(l.Items))), nil })},

		"sqrt":  {min: 1, max: 1, fn: root(2, math.Sqrt)},
		"cbrt":  {min: 1, max: 1, fn: root(3, math.Cbrt)},
		"abs":   {min: 1, max: 1, fn: unary(absolute)},
		"round": {min: 1, max: 2, fn: rounding(math.Round)},
		"floor": {min: 1, max: 1, fn: rounding(math.Floor)},
		"ceil":  {min: 1, max: 1, fn: rounding(math.Ceil)},
		"exp":   {min: 1, max: 1, fn: numeric(value.Exp)},
		"ln":    {min: 1, max: 1, fn: numeric(value.Ln)},
		"log":   {min: 1, max: 1, fn: numeric(value.Log10)},
		"log2":  {min: 1, max: 1, fn: numeric(log2)},
		"sin":   {min: 1, max: 1, fn: numeric(pure(math.Sin))},
		"cos":   {min: 1, max: 1, fn: numeric(pure(math.Cos))},
		"tan":   {min: 1, max: 1, fn: numeric(pure(math.Tan))},
		"pow": {min: 2, max: 2, fn: func(_ *pass, args []value.Value) (value.Value, error) {
			return value.Binary(value.OpPow, args[0], args[1])
		}},

		"year":         {min: 1, max: 1, fn: dateField(func(v value.Value) value.Value { return value.Number(float64(v.Time.Year())) })},
		"month":        {min: 1, max: 1, fn: dateField(func(v value.Value) value.Value { return value.Number(float64(v.Time.Month())) })},
		"day":          {min: 1, max: 1, fn: dateField(func(v value.Value) value.Value { return value.Number(float64(v.Time.Day())) })},
		"weekday":      {min: 1, max: 1, fn: dateField(func(v value.Value) value.Value { return value.Symbolic(v.Time.Weekday().String()) })},
		"businessdays": {min: 2, max: 2, fn: businessDays},
	}

	for name, agg := range value.Aggregations {
		b[name] = builtin{min: 1, max: -1, fn: aggregate(agg)}
	}

	for name, c := range constants {
		if _, ok := b[name]; !ok && name != "pi" && name != "e" {
			b[name] = builtin{min: 0, max: 0, fn: func(p *pass, _ []value.Value) (value.Value, error) {
				return c(p), nil
			}}
		}
	}

	return b
}

// Builtin describes a builtin function.
type Builtin struct {
	Name string
	Min  int
	Max  int // negative for variadic
}

// Builtins returns the builtin functions sorted by name.
func Builtins() []Builtin {
	out := make([]Builtin, 0, len(builtins))

	for _, name := range slices.Sorted(maps.Keys(builtins)) {
		b := builtins[name]
		out = append(out, Builtin{Name: name, Min: b.min, Max: b.max})
	}

	return out
}

// Constants returns the names of the builtin constants, sorted.
func Constants() []string { return slices.Sorted(maps.Keys(constants)) }

// aggregate folds one list argument, or two or more scalar arguments taken
// as a list.
func aggregate(agg value.Aggregation) func(*pass, []value.Value) (value.Value, error) {
	return func(_ *pass, args []value.Value) (value.Value, error) {
		if len(args) == 1 {
			return value.Aggregate(agg, args[0])
		}

		l, err := value.List(args...)
		if err != nil {
			return value.Value{}, err
		}

		return value.Aggregate(agg, l)
	}
}

func listFunc(f func(value.Value) (value.Value, error)) func(*pass, []value.Value) (value.Value, error) {
	return func(_ *pass, args []value.Value) (value.Value, error) {
		if args[0].Type != value.TypeList {
			return value.Value{}, value.ErrInvalidArgument.Detail("expected a list, got a %s",
				args[0].Type)
		}

		return f(args[0])
	}
}

// unary applies f to a scalar argument or to every item of a list.
func unary(f func(value.Value) (value.Value, error)) func(*pass, []value.Value) (value.Value, error) {
	var apply func(value.Value) (value.Value, error)

	apply = func(v value.Value) (value.Value, error) {
		if v.Type == value.TypeList {
			return value.Map(v, apply)
		}

		return f(v)
	}

	return func(_ *pass, args []value.Value) (value.Value, error) { return apply(args[0]) }
}

func pure(f func(float64) float64) func(float64) (float64, error) {
	return func(x float64) (float64, error) { return f(x), nil }
}

func log2(x float64) (float64, error) {
	n, err := value.Ln(x)

	return n / math.Ln2, err
}

// numeric lifts f to plain numbers.
func numeric(f func(float64) (float64, error)) func(*pass, []value.Value) (value.Value, error) {
	return unary(func(v value.Value) (value.Value, error) {
		if v.Type != value.TypeNumber {
			return value.Value{}, value.ErrIncompatibleTypes.Detail("expected a number, got a %s",
				v.Type)
		}

		n, err := f(v.Num)
		if err != nil {
			return value.Value{}, err
		}

		if math.IsNaN(n) {
			return value.Value{}, value.ErrInvalidArgument.Detail("result is not a number")
		}

		return value.Number(n), nil
	})
}

// root takes the nth root. Numbers use f; quantities raise their unit to
// 1/n, which requires every dimension exponent to divide by n.
func root(n int, f func(float64) float64) func(*pass, []value.Value) (value.Value, error) {
	return unary(func(v value.Value) (value.Value, error) {
		if v.Type == value.TypeNumber {
			if n%2 == 0 && v.Num < 0 {
				return value.Value{}, value.ErrInvalidArgument.Detail(
					"even root of a negative number")
			}

			return value.Number(f(v.Num)), nil
		}

		return value.Binary(value.OpPow, v, value.Number(1/float64(n)))
	})
}

func absolute(v value.Value) (value.Value, error) {
	switch v.Type {
	case value.TypeDuration:
		if v.Duration.Fixed() < 0 {
			return value.Neg(v)
		}

		return v, nil
	case value.TypeNumber, value.TypeCurrency, value.TypeQuantity, value.TypePercentage:
		v.Num = math.Abs(v.Num)

		return v, nil
	}

	return value.Value{}, value.ErrIncompatibleTypes.Detail("a %s has no magnitude", v.Type)
}

// rounding applies f to the displayed magnitude of a value, optionally at a
// number of decimal places given as the second argument.
func rounding(f func(float64) float64) func(*pass, []value.Value) (value.Value, error) {
	return func(p *pass, args []value.Value) (value.Value, error) {
		scale := 1.0

		if len(args) == 2 {
			places, ok := args[1].Integer()
			if !ok || places < 0 || places > 15 {
				return value.Value{}, value.ErrInvalidArgument.Detail(
					"decimal places must be a whole number from 0 to 15, got %s",
					p.eng.format.Value(args[1]))
			}

			scale = math.Pow10(places)
		}

		g := func(n float64) float64 { return f(n*scale) / scale }

		return unary(func(v value.Value) (value.Value, error) {
			return magnitude(v, g)
		})(p, args[:1])
	}
}

// magnitude replaces the displayed magnitude of v by f of it, keeping the
// unit.
func magnitude(v value.Value, f func(float64) float64) (value.Value, error) {
	switch v.Type {
	case value.TypeNumber, value.TypeCurrency, value.TypeQuantity:
		v.Num = f(v.Num)

		return v, nil
	case value.TypePercentage:
		v.Num = f(v.Num*100) / 100

		return v, nil
	case value.TypeDuration:
		if v.Duration.Mixed() {
			return value.Value{}, value.ErrInvalidArgument.Detail(
				"cannot round a mixed duration; convert it to one unit first")
		}

		u := v.Duration.DisplayUnit()

		return value.Quantity(f(v.Duration.In(u)), unit.Single(u)), nil
	}

	return value.Value{}, value.ErrIncompatibleTypes.Detail("cannot round a %s", v.Type)
}

func dateField(f func(value.Value) value.Value) func(*pass, []value.Value) (value.Value, error) {
	return unary(func(v value.Value) (value.Value, error) {
		if v.Type != value.TypeDate {
			return value.Value{}, value.ErrIncompatibleTypes.Detail("expected a date, got a %s",
				v.Type)
		}

		return f(v), nil
	})
}

// businessDays counts the weekdays from the first date up to the second.
func businessDays(_ *pass, args []value.Value) (value.Value, error) {
	for i, a := range args {
		if a.Type != value.TypeDate {
			return value.Value{}, value.ErrIncompatibleTypes.Detail(
				"businessdays argument %d must be a date, got a %s", i+1, a.Type)
		}
	}

	n := value.BusinessDaysBetween(args[0].Time, args[1].Time)

	return value.Quantity(float64(n), unit.Single(unit.BusinessDay)), nil
}
