package value

import (
	"cmp"
	"math"
	"slices"
)

// Map applies f to every item of the list l.
func Map(l Value, f func(Value) (Value, error)) (Value, error) {
	out := make([]Value, len(l.Items))

	for i, it := range l.Items {
		v, err := f(it)
		if err != nil {
			return Value{}, err
		}

		out[i] = v
	}

	return List(out...)
}

func broadcast(op Op, a, b Value) (Value, error) {
	switch {
	case a.Type == TypeList && b.Type == TypeList:
		if len(a.Items) != len(b.Items) {
			return Value{}, ErrLengthMismatch.Detail("%d and %d items",
				len(a.Items), len(b.Items))
		}

		out := make([]Value, len(a.Items))

		for i := range a.Items {
			v, err := Binary(op, a.Items[i], b.Items[i])
			if err != nil {
				return Value{}, err
			}

			out[i] = v
		}

		return List(out...)
	case a.Type == TypeList:
		return Map(a, func(it Value) (Value, error) { return Binary(op, it, b) })
	default:
		return Map(b, func(it Value) (Value, error) { return Binary(op, a, it) })
	}
}

// Aggregation folds a list into a single value.
type Aggregation int

const (
	AggSum Aggregation = iota
	AggMean
	AggMin
	AggMax
	AggMedian
	AggStddev
	AggRange
	AggCount
)

// Aggregations maps builtin names, including aliases, to aggregations.
var Aggregations = map[string]Aggregation{
	"sum":     AggSum,
	"total":   AggSum,
	"mean":    AggMean,
	"avg":     AggMean,
	"average": AggMean,
	"min":     AggMin,
	"max":     AggMax,
	"median":  AggMedian,
	"stddev":  AggStddev,
	"range":   AggRange,
	"count":   AggCount,
}

var aggName = [...]string{
	AggSum:    "sum",
	AggMean:   "mean",
	AggMin:    "min",
	AggMax:    "max",
	AggMedian: "median",
	AggStddev: "stddev",
	AggRange:  "range",
	AggCount:  "count",
}

func (a Aggregation) String() string { return aggName[a] }

// Aggregate folds the list l. Items are measured in the unit of the first
// item, so the result keeps that unit. Nested lists are rejected.
func Aggregate(agg Aggregation, l Value) (Value, error) {
	if l.Type != TypeList {
		return Value{}, ErrInvalidArgument.Detail("%s expects a list, not a %s",
			agg, l.Type)
	}

	if agg == AggCount {
		return Number(float64(len(l.Items))), nil
	}

	if len(l.Items) == 0 {
		if agg == AggSum {
			return Number(0), nil
		}

		return Value{}, ErrInvalidArgument.Detail("%s of an empty list", agg)
	}

	ref := l.Items[0]

	for _, it := range l.Items {
		if it.Type == TypeList {
			return Value{}, ErrInvalidArgument.Detail(
				"%s does not accept nested lists", agg)
		}
	}

	switch agg {
	case AggMin, AggMax, AggRange:
		return extremum(agg, l.Items)
	case AggMedian:
		return median(l.Items)
	}

	xs, err := magnitudes(ref, l.Items, agg)
	if err != nil {
		return Value{}, err
	}

	var sum float64
	for _, x := range xs {
		sum += x
	}

	mean := sum / float64(len(xs))

	switch agg {
	case AggSum:
		return withMagnitude(ref, sum), nil
	case AggMean:
		return withMagnitude(ref, mean), nil
	case AggStddev:
		if len(xs) < 2 {
			return Value{}, ErrInvalidArgument.Detail("stddev needs at least two items")
		}

		var sq float64
		for _, x := range xs {
			sq += (x - mean) * (x - mean)
		}

		return withMagnitude(ref, math.Sqrt(sq/float64(len(xs)-1))), nil
	}

	return Value{}, ErrInvalidArgument.Detail("unknown aggregation %d", int(agg))
}

// magnitudes expresses every item in the unit of ref.
func magnitudes(ref Value, items []Value, agg Aggregation) ([]float64, error) {
	switch ref.Type {
	case TypeDate, TypeTime:
		return nil, ErrIncompatibleTypes.Detail("cannot take the %s of %ss",
			agg, ref.Type)
	case TypeNumber, TypePercentage:
		xs := make([]float64, len(items))
		for i, it := range items {
			xs[i] = it.Num
		}

		return xs, nil
	}

	_, c := ref.compound()
	xs := make([]float64, len(items))

	for i, it := range items {
		conv, err := Convert(it, c)
		if err != nil {
			return nil, err
		}

		xs[i], _ = conv.compound()
	}

	return xs, nil
}

// withMagnitude returns a value like ref with magnitude n in ref's unit.
func withMagnitude(ref Value, n float64) Value {
	switch ref.Type {
	case TypeNumber:
		return Number(n)
	case TypePercentage:
		return Percentage(n)
	case TypeDuration:
		return Value{Type: TypeDuration, Duration: DurationOf(n, ref.Duration.DisplayUnit())}
	}

	return Value{Type: ref.Type, Num: n, Unit: ref.Unit}
}

func extremum(agg Aggregation, items []Value) (Value, error) {
	lo, hi := items[0], items[0]

	for _, it := range items[1:] {
		c, err := Compare(it, lo)
		if err != nil {
			return Value{}, err
		}

		if c < 0 {
			lo = it
		}

		if c, err = Compare(it, hi); err != nil {
			return Value{}, err
		} else if c > 0 {
			hi = it
		}
	}

	switch agg {
	case AggMin:
		return lo, nil
	case AggMax:
		return hi, nil
	default:
		return Binary(OpSub, hi, lo)
	}
}

func median(items []Value) (Value, error) {
	sorted, err := Sort(Value{Type: TypeList, Items: items}, false)
	if err != nil {
		return Value{}, err
	}

	n := len(sorted.Items)
	if n%2 == 1 {
		return sorted.Items[n/2], nil
	}

	sum, err := Binary(OpAdd, sorted.Items[n/2-1], sorted.Items[n/2])
	if err != nil {
		return Value{}, err
	}

	if sum.Type == TypeDate || sum.Type == TypeTime {
		return sum, nil
	}

	return Binary(OpDiv, sum, Number(2))
}

// Sort orders the list l by canonical magnitude, preserving each item's
// own unit. The sort is stable.
func Sort(l Value, descending bool) (Value, error) {
	if l.Type != TypeList {
		return Value{}, ErrInvalidArgument.Detail("sort expects a list, not a %s", l.Type)
	}

	type keyed struct {
		v Value
		k float64
	}

	keys, err := sortKeys(l.Items)
	if err != nil {
		return Value{}, err
	}

	ks := make([]keyed, len(l.Items))
	for i, it := range l.Items {
		ks[i] = keyed{v: it, k: keys[i]}
	}

	slices.SortStableFunc(ks, func(a, b keyed) int {
		if Near(a.k, b.k) {
			return 0
		}

		if descending {
			return cmp.Compare(b.k, a.k)
		}

		return cmp.Compare(a.k, b.k)
	})

	out := make([]Value, len(ks))
	for i, k := range ks {
		out[i] = k.v
	}

	return Value{Type: TypeList, Items: out}, nil
}

// sortKeys measures items in the unit of the first item, or canonically
// for dates and times.
func sortKeys(items []Value) ([]float64, error) {
	if len(items) == 0 {
		return nil, nil
	}

	if items[0].measured() || items[0].Type == TypeNumber || items[0].Type == TypePercentage {
		return magnitudes(items[0], items, AggMin)
	}

	keys := make([]float64, len(items))

	for i, it := range items {
		k, err := Canonical(it)
		if err != nil {
			return nil, err
		}

		keys[i] = k
	}

	return keys, nil
}

// Reverse returns the items of l in reverse order.
func Reverse(l Value) (Value, error) {
	if l.Type != TypeList {
		return Value{}, ErrInvalidArgument.Detail("reverse expects a list, not a %s", l.Type)
	}

	out := slices.Clone(l.Items)
	slices.Reverse(out)

	return Value{Type: TypeList, Items: out}, nil
}

// Cmp is a comparison operator used by filters.
type Cmp int

const (
	CmpEq Cmp = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

var cmpSymbol = [...]string{
	CmpEq: "=",
	CmpNe: "!=",
	CmpLt: "<",
	CmpLe: "<=",
	CmpGt: ">",
	CmpGe: ">=",
}

func (c Cmp) String() string { return cmpSymbol[c] }

// Holds reports whether the comparison result r satisfies c.
func (c Cmp) Holds(r int) bool {
	switch c {
	case CmpEq:
		return r == 0
	case CmpNe:
		return r != 0
	case CmpLt:
		return r < 0
	case CmpLe:
		return r <= 0
	case CmpGt:
		return r > 0
	default:
		return r >= 0
	}
}

// Filter keeps the items x of l for which "x c operand" holds. The result
// is always a list, possibly empty.
func Filter(l Value, c Cmp, operand Value) (Value, error) {
	if l.Type != TypeList {
		return Value{}, ErrInvalidArgument.Detail("where expects a list, not a %s", l.Type)
	}

	out := make([]Value, 0, len(l.Items))

	for _, it := range l.Items {
		r, err := Compare(it, operand)
		if err != nil {
			return Value{}, err
		}

		if c.Holds(r) {
			out = append(out, it)
		}
	}

	return Value{Type: TypeList, Items: out}, nil
}

// position resolves a 1-based index, where negative indices count from the
// end, into a 0-based offset.
func position(i, n int) (int, error) {
	at := i

	switch {
	case i == 0:
		return 0, ErrIndexOutOfRange.Detail("lists are indexed from 1")
	case i < 0:
		at += n + 1
	}

	if at < 1 || at > n {
		return 0, ErrIndexOutOfRange.Detail("index %d of a list of %d items", i, n)
	}

	return at - 1, nil
}

// Index returns item i of l, counting from 1; -1 is the last item.
func Index(l Value, i int) (Value, error) {
	if l.Type != TypeList {
		return Value{}, ErrIncompatibleTypes.Detail("cannot index a %s", l.Type)
	}

	p, err := position(i, len(l.Items))
	if err != nil {
		return Value{}, err
	}

	return l.Items[p], nil
}

// Slice returns items from through to of l, both inclusive and counted from
// 1. Negative bounds count from the end; a descending slice is an error.
func Slice(l Value, from, to int) (Value, error) {
	if l.Type != TypeList {
		return Value{}, ErrIncompatibleTypes.Detail("cannot slice a %s", l.Type)
	}

	a, err := position(from, len(l.Items))
	if err != nil {
		return Value{}, err
	}

	b, err := position(to, len(l.Items))
	if err != nil {
		return Value{}, err
	}

	if a > b {
		return Value{}, ErrInvalidRangeDirection.Detail(
			"slice %d..%d runs backwards", from, to)
	}

	return Value{Type: TypeList, Items: slices.Clone(l.Items[a : b+1])}, nil
}

// Range expands start..end into a list, stepping by step when given and by
// one unit of start otherwise. Ranges may descend; a step whose sign
// disagrees with the direction is an error. Lists longer than limit fail
// with [ErrRangeTooLarge].
func Range(start, end Value, step *Value, limit int) (Value, error) {
	if !scalable(start) || start.Type == TypePercentage {
		return Value{}, ErrInvalidArgument.Detail(
			"range bounds must be numbers or quantities, not %ss", start.Type)
	}

	s, err := magnitudes(start, []Value{start, end}, AggRange)
	if err != nil {
		return Value{}, err
	}

	lo, hi := s[0], s[1]

	inc := 1.0
	if hi < lo {
		inc = -1
	}

	if step != nil {
		st, err := magnitudes(start, []Value{*step}, AggRange)
		if err != nil {
			return Value{}, err
		}

		inc = st[0]

		switch {
		case inc == 0:
			return Value{}, ErrInvalidArgument.Detail("step cannot be 0")
		case (hi-lo)*inc < 0:
			return Value{}, ErrInvalidRangeDirection.Detail(
				"step %g cannot reach %g from %g", inc, hi, lo)
		}
	}

	count := math.Floor((hi-lo)/inc+1e-9) + 1
	if count > float64(limit) {
		return Value{}, ErrRangeTooLarge.Detail("%v items exceed the limit of %d",
			count, limit)
	}

	out := make([]Value, int(count))
	for i := range out {
		out[i] = withMagnitude(start, lo+float64(i)*inc)
	}

	return Value{Type: TypeList, Items: out}, nil
}
