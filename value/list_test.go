package value

import (
	"errors"
	"testing"

	"github.com/ardnew/calcpad/unit"
)

func mustList(t *testing.T, items ...Value) Value {
	t.Helper()

	l, err := List(items...)
	if err != nil {
		t.Fatal(err)
	}

	return l
}

func numbers(t *testing.T, ns ...float64) Value {
	t.Helper()

	items := make([]Value, len(ns))
	for i, n := range ns {
		items[i] = Number(n)
	}

	return mustList(t, items...)
}

func nums(l Value) []float64 {
	out := make([]float64, len(l.Items))
	for i, it := range l.Items {
		out[i] = it.Num
	}

	return out
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !Near(a[i], b[i]) {
			return false
		}
	}

	return true
}

func TestAggregate_Currency(t *testing.T) {
	t.Parallel()

	dollar := usd(t)
	costs := mustList(t, Currency(12, dollar), Currency(15, dollar), Currency(9, dollar))

	tests := []struct {
		agg  Aggregation
		want float64
	}{
		{AggSum, 36},
		{AggMean, 12},
		{AggMin, 9},
		{AggMax, 15},
		{AggMedian, 12},
		{AggRange, 6},
		{AggStddev, 3},
	}

	for _, tt := range tests {
		t.Run(tt.agg.String(), func(t *testing.T) {
			t.Parallel()

			got, err := Aggregate(tt.agg, costs)
			if err != nil {
				t.Fatal(err)
			}

			if got.Type != TypeCurrency || got.Code() != "USD" || !Near(got.Num, tt.want) {
				t.Errorf("%s = %s %v %s, want %v USD", tt.agg, got.Type, got.Num, got.Code(), tt.want)
			}
		})
	}

	n, err := Aggregate(AggCount, costs)
	if err != nil || n.Type != TypeNumber || n.Num != 3 {
		t.Errorf("count = %+v, %v", n, err)
	}
}

func TestAggregate_Errors(t *testing.T) {
	t.Parallel()

	empty := mustList(t)

	if got, err := Aggregate(AggSum, empty); err != nil || got.Num != 0 {
		t.Errorf("sum of empty = %+v, %v", got, err)
	}

	if _, err := Aggregate(AggMean, empty); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("mean of empty: error = %v", err)
	}

	nested := Value{Type: TypeList, Items: []Value{numbers(t, 1, 2), numbers(t, 3)}}
	if _, err := Aggregate(AggSum, nested); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nested: error = %v", err)
	}

	if _, err := Aggregate(AggSum, Number(3)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("scalar: error = %v", err)
	}
}

func TestSort_Durations(t *testing.T) {
	t.Parallel()

	times := mustList(t, qty(t, 2, "min"), qty(t, 30, "s"), qty(t, 1, "h"))

	got, err := Sort(times, false)
	if err != nil {
		t.Fatal(err)
	}

	want := []*unit.Unit{unit.Second, unit.Minute, unit.Hour}
	for i, it := range got.Items {
		if it.Duration.DisplayUnit() != want[i] {
			t.Errorf("item %d unit = %s, want %s", i, it.Duration.DisplayUnit().Symbol, want[i].Symbol)
		}
	}

	desc, err := Sort(times, true)
	if err != nil {
		t.Fatal(err)
	}

	if desc.Items[0].Duration.DisplayUnit() != unit.Hour {
		t.Errorf("descending first = %s", desc.Items[0].Duration.DisplayUnit().Symbol)
	}
}

func TestBroadcast(t *testing.T) {
	t.Parallel()

	xs := numbers(t, 1, 2, 3)

	got, err := Binary(OpMul, xs, Number(2))
	if err != nil {
		t.Fatal(err)
	}

	if !equalFloats(nums(got), []float64{2, 4, 6}) {
		t.Errorf("list * 2 = %v", nums(got))
	}

	got, err = Binary(OpAdd, xs, numbers(t, 10, 20, 30))
	if err != nil {
		t.Fatal(err)
	}

	if !equalFloats(nums(got), []float64{11, 22, 33}) {
		t.Errorf("list + list = %v", nums(got))
	}

	if _, err := Binary(OpAdd, xs, numbers(t, 1, 2)); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("length mismatch: error = %v", err)
	}

	neg, err := Neg(xs)
	if err != nil || !equalFloats(nums(neg), []float64{-1, -2, -3}) {
		t.Errorf("-list = %v, %v", nums(neg), err)
	}
}

func TestIndexSlice(t *testing.T) {
	t.Parallel()

	xs := numbers(t, 10, 20, 30, 40)

	tests := []struct {
		name     string
		from, to int
		slice    bool
		want     []float64
		err      error
	}{
		{name: "first", from: 1, want: []float64{10}},
		{name: "last", from: -1, want: []float64{40}},
		{name: "zero", from: 0, err: ErrIndexOutOfRange},
		{name: "past end", from: 5, err: ErrIndexOutOfRange},
		{name: "slice", from: 2, to: 3, slice: true, want: []float64{20, 30}},
		{name: "negative slice", from: -2, to: -1, slice: true, want: []float64{30, 40}},
		{name: "descending slice", from: 3, to: 2, slice: true, err: ErrInvalidRangeDirection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var (
				got Value
				err error
			)

			if tt.slice {
				got, err = Slice(xs, tt.from, tt.to)
			} else {
				got, err = Index(xs, tt.from)
				got = Value{Type: TypeList, Items: []Value{got}}
			}

			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("error = %v, want %v", err, tt.err)
				}

				return
			}

			if err != nil {
				t.Fatal(err)
			}

			if !equalFloats(nums(got), tt.want) {
				t.Errorf("got %v, want %v", nums(got), tt.want)
			}
		})
	}
}

func TestIndex_MessageQuotesIndex(t *testing.T) {
	t.Parallel()

	xs := numbers(t, 10, 20)

	tests := []struct {
		name string
		at   int
		want string
	}{
		{"past end", 3, "index 3 of a list of 2 items"},
		{"before start", -3, "index -3 of a list of 2 items"},
		{"far before start", -10, "index -10 of a list of 2 items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Index(xs, tt.at)
			if !errors.Is(err, ErrIndexOutOfRange) {
				t.Fatalf("error = %v, want IndexOutOfRange", err)
			}

			if got := AsError(err).Message(); got != tt.want {
				t.Errorf("message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	dollar := usd(t)
	costs := mustList(t, Currency(12, dollar), Currency(15, dollar), Currency(9, dollar))

	got, err := Filter(costs, CmpGt, Number(10))
	if err != nil {
		t.Fatal(err)
	}

	if !equalFloats(nums(got), []float64{12, 15}) {
		t.Errorf("where > 10 = %v", nums(got))
	}

	one, err := Filter(costs, CmpEq, Currency(9, dollar))
	if err != nil || one.Type != TypeList || len(one.Items) != 1 {
		t.Errorf("where = $9 = %+v, %v", one, err)
	}

	none, err := Filter(costs, CmpLt, Number(0))
	if err != nil || none.Type != TypeList || len(none.Items) != 0 {
		t.Errorf("where < 0 = %+v, %v", none, err)
	}
}

func TestFilter_RelativeTolerance(t *testing.T) {
	t.Parallel()

	big := numbers(t, 1e12, 5)

	tests := []struct {
		name string
		op   Cmp
		rhs  float64
		want []float64
	}{
		{"equal within bound", CmpEq, 1e12 + 900, []float64{1e12}},
		{"equal past bound", CmpEq, 1e12 + 2000, nil},
		{"not equal within bound", CmpNe, 1e12 + 900, []float64{5}},
		{"not equal past bound", CmpNe, 1e12 + 2000, []float64{1e12, 5}},
		{"less within bound", CmpLt, 1e12 + 900, []float64{5}},
		{"less past bound", CmpLt, 1e12 + 2000, []float64{1e12, 5}},
		{"at least within bound", CmpGe, 1e12 + 900, []float64{1e12}},
		{"tiny values", CmpEq, 5 + 1e-8, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Filter(big, tt.op, Number(tt.rhs))
			if err != nil {
				t.Fatal(err)
			}

			if !equalFloats(nums(got), tt.want) {
				t.Errorf("where %v = %v, want %v", tt.rhs, nums(got), tt.want)
			}
		})
	}
}

func TestRange(t *testing.T) {
	t.Parallel()

	step := func(n float64) *Value { v := Number(n); return &v }

	tests := []struct {
		name       string
		start, end float64
		step       *Value
		want       []float64
		err        error
	}{
		{name: "ascending", start: 1, end: 5, want: []float64{1, 2, 3, 4, 5}},
		{name: "descending", start: 3, end: 1, want: []float64{3, 2, 1}},
		{name: "stepped", start: 0, end: 10, step: step(4), want: []float64{0, 4, 8}},
		{name: "fractional", start: 0, end: 1, step: step(0.25), want: []float64{0, 0.25, 0.5, 0.75, 1}},
		{name: "zero step", start: 0, end: 10, step: step(0), err: ErrInvalidArgument},
		{name: "wrong direction", start: 0, end: 10, step: step(-1), err: ErrInvalidRangeDirection},
		{name: "too large", start: 1, end: 1e6, err: ErrRangeTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Range(Number(tt.start), Number(tt.end), tt.step, 10000)

			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("error = %v, want %v", err, tt.err)
				}

				return
			}

			if err != nil {
				t.Fatal(err)
			}

			if !equalFloats(nums(got), tt.want) {
				t.Errorf("got %v, want %v", nums(got), tt.want)
			}
		})
	}

	_, err := Range(Number(0), Number(10), step(0), 100)
	if e := AsError(err); e.Message() != "step cannot be 0" {
		t.Errorf("message = %q", e.Message())
	}
}

func TestRange_TooLargeMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		end  float64
		want string
	}{
		{"modest", 100000, "100000 items exceed the limit of 10000"},
		{"huge", 1e300, "1e+300 items exceed the limit of 10000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Range(Number(1), Number(tt.end), nil, 10000)
			if !errors.Is(err, ErrRangeTooLarge) {
				t.Fatalf("error = %v, want RangeTooLarge", err)
			}

			if got := AsError(err).Message(); got != tt.want {
				t.Errorf("message = %q, want %q", got, tt.want)
			}
		})
	}
}
