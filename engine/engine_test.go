package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/ardnew/calcpad/value"
)

// friday is the fixed clock of every test document.
var friday = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func newEngine(t testing.TB, modify ...func(*Config)) *Engine {
	t.Helper()

	cfg := Defaults()
	for _, m := range modify {
		m(&cfg)
	}

	e, err := New(cfg, WithClock(func() time.Time { return friday }))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	return e
}

// lastText evaluates src and returns the text of its last descriptor.
func lastText(t *testing.T, e *Engine, src string) string {
	t.Helper()

	res := e.EvaluateString(t.Context(), src)
	if len(res.Descriptors) == 0 {
		t.Fatalf("no results for %q", src)
	}

	return res.Descriptors[len(res.Descriptors)-1].Text
}

func TestEvaluate_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"range", "1..5 =>", "1, 2, 3, 4, 5"},
		{"range step zero", "0..10 step 0 =>", "InvalidArgument: step cannot be 0"},
		{"descending range", "5..1 step -2 =>", "5, 3, 1"},
		{"month clamps", "2024-01-31 + 1 month =>", "2024-02-29"},
		{"days roll over", "2024-01-31 + 30 days =>", "2024-03-01"},
		{"sum", "costs = $12, $15, $9\nsum(costs) =>", "$36"},
		{"avg", "costs = $12, $15, $9\navg(costs) =>", "$12"},
		{
			"discount",
			"discount = 15%\nbase price = $120.50\ndiscount off base price =>",
			"$102.425",
		},
		{"sort durations", "times = 2 min, 30 s, 1 h\nsort(times) =>", "30 s, 2 min, 1 h"},
		{"percent of", "15% of 200 =>", "30"},
		{"percent on", "5% on $30 =>", "$31.5"},
		{"what percent", "50 is what % of 200 =>", "25%"},
		{"as percent", "0.25 to % =>", "25%"},
		{"base of", "30 is 25% off what =>", "40"},
		{"plus percent", "$200 + 10% =>", "$220"},
		{"unit conversion", "5 km to m =>", "5000 m"},
		{"minute shorthand", "2 h to m =>", "120 min"},
		{"mixed units add", "1 km + 500 m =>", "1.5 km"},
		{"incompatible", "1 km + 2 kg =>", "IncompatibleDimensions"},
		{"duration sequence", "1h 30m to min =>", "90 min"},
		{"grouped number", "x = 1,000", "ParseError"},
		{"undefined", "xa * 2 =>", "UndefinedVariable: xa"},
		{"undefined function", "nope(1) =>", "UndefinedFunction: nope"},
		{"division by zero", "1 / 0 =>", "DivisionByZero"},
		{"index", "xs = 10, 20, 30\nxs[-1] =>", "30"},
		{"index out of range", "xs = 10, 20, 30\nxs[4] =>", "IndexOutOfRange"},
		{"slice", "xs = 10, 20, 30\nxs[2..3] =>", "20, 30"},
		{"where", "xs = 1, 5, 10, 20\nxs where > 5 =>", "10, 20"},
		{"where tolerance", "xs = 0.1 + 0.2, 0.4\nxs where = 0.3 =>", "0.3"},
		{"where nothing", "xs = 1, 5, 10\nxs where > 100 =>", "(empty list)"},
		{"where relative bound", "xs = 1000000000000, 5\nys = xs where = 1000000000900\ncount(ys) =>", "1"},
		{"where past relative bound", "xs = 1000000000000, 5\nys = xs where = 1000000002000\ncount(ys) =>", "0"},
		{"broadcast", "xs = 1, 2, 3\nxs * 2 =>", "2, 4, 6"},
		{"length mismatch", "(1, 2) + (1, 2, 3) =>", "LengthMismatch"},
		{"today", "today =>", "2024-03-15"},
		{"tomorrow", "tomorrow() =>", "2024-03-16"},
		{"weekday", "weekday(today) =>", "Friday"},
		{"business days", "businessdays(today, 2024-03-19) =>", "2 business days"},
		{"add business days", "today + 1 business day =>", "2024-03-18"},
		{"year", "year(2024-03-15) =>", "2024"},
		{"sqrt", "sqrt(16) =>", "4"},
		{"sqrt area", "sqrt(9 m^2) =>", "3 m"},
		{"round places", "round(3.14159, 2) =>", "3.14"},
		{"round currency", "round($10.6) =>", "$11"},
		{"abs list", "abs((-1, 2, -3)) =>", "1, 2, 3"},
		{"min scalars", "min(4, 2, 8) =>", "2"},
		{"count", "count((1, 2, 3)) =>", "3"},
		{"len", "len((1, 2)) =>", "2"},
		{"aggregate scalar", "sum(4) =>", "InvalidArgument"},
		{"arity", "sqrt(1, 2) =>", "ArityMismatch"},
		{"pi", "round(pi, 4) =>", "3.1416"},
		{"range too large", "1..100000 =>", "RangeTooLarge"},
	}

	e := newEngine(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := lastText(t, e, tt.src); !strings.HasPrefix(got, tt.want) {
				t.Errorf("%q => %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestEvaluate_CascadingFailure(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	res := e.EvaluateString(t.Context(), "a = xa\nb = a*2 =>\nc = b+1 =>")

	if len(res.Descriptors) != 2 {
		t.Fatalf("got %d descriptors, want 2", len(res.Descriptors))
	}

	for _, d := range res.Descriptors {
		if d.Err == nil || d.Err.Kind != value.KindUndefinedVariable.String() {
			t.Errorf("line %d: %q, want UndefinedVariable", d.Line, d.Text)
		}
	}

	if len(res.Bindings) != 0 {
		t.Errorf("failed lines bound %v", res.Bindings)
	}
}

func TestEvaluate_FailedRedefinition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		lines []int // lines expected to report UndefinedVariable x
	}{
		{"undefined", "x = 3\nx = nope\nx * 2 =>", []int{3}},
		{"domain", "x = 3\nx = 1/0\nx =>", []int{3}},
		{"combined", "x = 3\nx = nope * 2 =>\nx * 2 =>", []int{2, 3}},
	}

	e := newEngine(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := e.EvaluateString(t.Context(), tt.src)

			for _, line := range tt.lines {
				d, ok := res.Descriptor(line)
				if !ok || d.Err == nil ||
					d.Err.Kind != value.KindUndefinedVariable.String() {
					t.Errorf("line %d = %+v, want UndefinedVariable", line, d)

					continue
				}

				if line == tt.lines[len(tt.lines)-1] && !strings.Contains(d.Text, "x") {
					t.Errorf("line %d = %q, want the name x", line, d.Text)
				}
			}

			for _, b := range res.Bindings {
				if b.Name == "x" {
					t.Errorf("stale binding %+v", b)
				}
			}
		})
	}
}

func TestEvaluate_RedefinitionAfterFailure(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	res := e.EvaluateString(t.Context(), "x = 3\nx = nope\nx = 5\nx + 1 =>")

	if d, _ := res.Descriptor(4); d.Text != "6" {
		t.Errorf("line 4 = %q, want 6", d.Text)
	}

	if len(res.Bindings) != 1 || res.Bindings[0].Line != 3 {
		t.Errorf("bindings = %+v, want x from line 3", res.Bindings)
	}
}

func TestEvaluate_LinesAreIndependent(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	res := e.EvaluateString(t.Context(), "1 / 0 =>\nshopping list\n2 + 2 =>")

	if len(res.Descriptors) != 2 {
		t.Fatalf("got %d descriptors, want 2", len(res.Descriptors))
	}

	d, ok := res.Descriptor(3)
	if !ok || d.Text != "4" || d.Err != nil {
		t.Errorf("line 3 = %+v, want 4", d)
	}

	if _, ok := res.Descriptor(2); ok {
		t.Error("plain text produced a descriptor")
	}
}

func TestEvaluate_ClosestPriorDefinition(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	res := e.EvaluateString(t.Context(), strings.Join([]string{
		"x = 1",
		"x =>",
		"x = 2",
		"x =>",
		"y = x * 10 =>",
	}, "\n"))

	for line, want := range map[int]string{2: "1", 4: "2", 5: "20"} {
		if d, _ := res.Descriptor(line); d.Text != want {
			t.Errorf("line %d = %q, want %q", line, d.Text, want)
		}
	}

	want := []Binding{
		{Name: "x", Value: "2", Line: 3, Redefined: true},
		{Name: "y", Value: "20", Line: 5},
	}

	if len(res.Bindings) != len(want) {
		t.Fatalf("bindings = %+v", res.Bindings)
	}

	for i, b := range want {
		if res.Bindings[i] != b {
			t.Errorf("binding %d = %+v, want %+v", i, res.Bindings[i], b)
		}
	}
}

func TestEvaluate_TriggerSpan(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	res := e.EvaluateString(t.Context(), "price * 2 => \nq = 1,500")

	d, ok := res.Descriptor(1)
	if !ok {
		t.Fatal("no descriptor for line 1")
	}

	if d.Span.Start != 10 || d.Span.End != 12 {
		t.Errorf("span = %+v, want {10 12}", d.Span)
	}

	d, ok = res.Descriptor(2)
	if !ok || d.Err == nil || d.Err.Kind != "ParseError" {
		t.Fatalf("line 2 = %+v, want ParseError", d)
	}

	if d.Span.Start != 0 || d.Span.End != len("q = 1,500") {
		t.Errorf("untriggered error span = %+v, want whole line", d.Span)
	}
}

func TestEvaluate_Functions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  []string
		want string
	}{
		{
			name: "dynamic scope",
			src:  []string{"f(x) = x * rate", "rate = 2", "f(3) =>", "rate = 3", "f(3) =>"},
			want: "9",
		},
		{
			name: "defined after use",
			src:  []string{"g(2) =>", "g(x) = x"},
			want: "UndefinedFunction: g",
		},
		{name: "default", src: []string{"g(x, k = 2) = x * k", "g(5) =>"}, want: "10"},
		{name: "named", src: []string{"g(x, k = 2) = x * k", "g(5, k: 3) =>"}, want: "15"},
		{name: "all named", src: []string{"g(x, k = 2) = x * k", "g(k: 4, x: 2) =>"}, want: "8"},
		{name: "default sees args", src: []string{"g(x, k = x) = x * k", "g(4) =>"}, want: "16"},
		{name: "missing", src: []string{"g(x, k) = x * k", "g(1) =>"}, want: "ArityMismatch"},
		{name: "too many", src: []string{"g(x) = x", "g(1, 2) =>"}, want: "ArityMismatch"},
		{name: "unknown name", src: []string{"g(x) = x", "g(y: 1) =>"}, want: "ArityMismatch"},
		{name: "duplicate", src: []string{"g(x) = x", "g(1, x: 2) =>"}, want: "ArityMismatch"},
		{name: "shadows builtin", src: []string{"sum(x) = x + 1", "sum(2) =>"}, want: "3"},
		{
			name: "callers scope",
			src:  []string{"inner(y) = y + base", "outer(base) = inner(1)", "outer(41) =>"},
			want: "42",
		},
		{
			name: "recursion",
			src:  []string{"loop(x) = loop(x) + 1", "loop(1) =>"},
			want: "MaxCallDepthExceeded",
		},
		{name: "self reference", src: []string{"t = t + 1 =>"}, want: "CircularDependency: t -> t"},
		{
			name: "reference through call",
			src:  []string{"f(x) = total * x", "total = f(2) =>"},
			want: "CircularDependency: total -> f -> total",
		},
	}

	e := newEngine(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := strings.Join(tt.src, "\n")
			if got := lastText(t, e, src); !strings.HasPrefix(got, tt.want) {
				t.Errorf("%q => %q, want %q", src, got, tt.want)
			}
		})
	}
}

func TestEvaluate_FunctionList(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	res := e.EvaluateString(t.Context(), "fee(amount, rate = 2.5%) = amount * rate\nfee(x) = x")

	if len(res.Functions) != 1 {
		t.Fatalf("functions = %+v", res.Functions)
	}

	f := res.Functions[0]
	if f.Name != "fee" || f.Line != 2 || strings.Join(f.Params, ",") != "x" {
		t.Errorf("function = %+v, want the redefinition on line 2", f)
	}
}

func TestEvaluate_MaxCallDepth(t *testing.T) {
	t.Parallel()

	e := newEngine(t, func(c *Config) { c.MaxCallDepth = 2 })

	src := "a() = 1\nb() = a()\nc() = b()\nb() =>\nc() =>"
	res := e.EvaluateString(t.Context(), src)

	if d, _ := res.Descriptor(4); d.Text != "1" {
		t.Errorf("depth 2 = %q, want 1", d.Text)
	}

	if d, _ := res.Descriptor(5); d.Err == nil || d.Err.Kind != "MaxCallDepthExceeded" {
		t.Errorf("depth 3 = %q, want MaxCallDepthExceeded", d.Text)
	}
}

func TestEvaluate_ListInvariant(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	res := e.EvaluateString(t.Context(), strings.Join([]string{
		"xs = 5, 6",
		"xs where > 5 =>",
		"xs[1..1] =>",
		"n = sum(xs) =>",
	}, "\n"))

	for _, line := range []int{2, 3} {
		d, _ := res.Descriptor(line)
		if d.Value.Type != value.TypeList || len(d.Value.Items) != 1 {
			t.Errorf("line %d = %q (%s), want a one-item list", line, d.Text, d.Value.Type)
		}
	}

	if d, _ := res.Descriptor(4); d.Value.Type == value.TypeList {
		t.Errorf("scalar assignment produced a list: %q", d.Text)
	}
}

func TestEvaluate_Currencies(t *testing.T) {
	t.Parallel()

	e := newEngine(t, func(c *Config) {
		c.Rates = map[string]string{"EUR": "1.1", "GBP": "EUR * 1.2"}
	})

	tests := []struct {
		src  string
		want string
	}{
		{"20 EUR to USD =>", "$22"},
		{"$10 + 10 EUR =>", "$21"},
		{"10 GBP to EUR =>", "€12"},
		{"10 CHF + $1 =>", "IncompatibleCurrencies"},
		{"$15/hour * 8 h =>", "$120"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			if got := lastText(t, e, tt.src); !strings.HasPrefix(got, tt.want) {
				t.Errorf("%q => %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	t.Parallel()

	src := strings.Join([]string{
		"rent = $1200",
		"utilities = $150 =>",
		"total = rent + utilities =>",
		"share = total / 3 =>",
		"oops = missing + 1 =>",
	}, "\n")

	e := newEngine(t)
	first := e.EvaluateString(t.Context(), src)
	second := e.EvaluateString(t.Context(), src)

	if first.Fingerprint != second.Fingerprint {
		t.Error("fingerprint changed between passes")
	}

	if len(first.Descriptors) != len(second.Descriptors) {
		t.Fatalf("descriptor count changed: %d, %d",
			len(first.Descriptors), len(second.Descriptors))
	}

	for i, a := range first.Descriptors {
		b := second.Descriptors[i]
		if a.Line != b.Line || a.Text != b.Text || a.Span != b.Span {
			t.Errorf("descriptor %d changed: %+v, %+v", i, a, b)
		}
	}
}

func TestEngine_Fingerprint(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	other := newEngine(t, func(c *Config) { c.DecimalPlaces = 2 })

	lines := []string{"x = 1", "x + 1 =>"}

	if e.Fingerprint(lines) != e.Fingerprint(slicesClone(lines)) {
		t.Error("equal documents have different fingerprints")
	}

	if e.Fingerprint(lines) == e.Fingerprint([]string{"x = 1", "x + 2 =>"}) {
		t.Error("different documents share a fingerprint")
	}

	if e.Fingerprint(lines) == other.Fingerprint(lines) {
		t.Error("different configurations share a fingerprint")
	}
}

func slicesClone(s []string) []string { return append([]string(nil), s...) }

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := Defaults()
	cfg.Rates = map[string]string{"EUR": "USD / 0"}

	if _, err := New(cfg); err == nil {
		t.Error("New accepted an infinite rate")
	}
}

func BenchmarkEvaluate(b *testing.B) {
	e := newEngine(b)
	src := strings.Split(strings.Repeat(
		"rate = $45/hour\nhours = 1h 30m, 2 h, 45 min\ntotal = sum(hours) * rate =>\n"+
			"tip = 15% of total =>\n", 25), "\n")

	for b.Loop() {
		e.Evaluate(b.Context(), src)
	}
}
