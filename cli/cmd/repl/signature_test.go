package repl

import (
	"slices"
	"strings"
	"testing"
)

func TestDetectFunctionCall(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		cursor     int
		wantName   string
		wantIndex  int
		wantInCall bool
	}{
		{name: "no call", input: "price", cursor: 5},
		{name: "open paren", input: "pow(", cursor: 4, wantName: "pow", wantInCall: true},
		{name: "first arg", input: "pow(2", cursor: 5, wantName: "pow", wantInCall: true},
		{name: "second arg", input: "pow(2, 3", cursor: 8, wantName: "pow", wantIndex: 1, wantInCall: true},
		{name: "nested inner", input: "round(sqrt(2", cursor: 12, wantName: "sqrt", wantInCall: true},
		{
			name: "nested outer", input: "round(sqrt(2), ", cursor: 15,
			wantName: "round", wantIndex: 1, wantInCall: true,
		},
		{name: "closed", input: "sqrt(4) + 1", cursor: 11},
		{name: "grouping only", input: "(1 + 2", cursor: 6},
		{name: "list argument", input: "sum((1, 2), ", cursor: 12, wantName: "sum", wantIndex: 1, wantInCall: true},
		{name: "cursor before call", input: "pow(2, 3)", cursor: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := detectFunctionCall(tt.input, tt.cursor)
			if got.inCall != tt.wantInCall || got.name != tt.wantName || got.argIndex != tt.wantIndex {
				t.Errorf("detectFunctionCall(%q, %d) = %+v, want {%s %d %v}",
					tt.input, tt.cursor, got, tt.wantName, tt.wantIndex, tt.wantInCall)
			}
		})
	}
}

func TestGetSignature(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, "fee(amount, pct = 3%) = amount * pct")

	tests := []struct {
		name       string
		wantSig    string
		wantParams []string
	}{
		{"fee", "fee(amount, pct)", []string{"amount", "pct"}},
		{"pow", "pow(base, exponent)", []string{"base", "exponent"}},
		{"round", "round(x, places)", []string{"x", "places"}},
		{"sum", "sum(x1, ...xs)", []string{"x1", "...xs"}},
		{"missing", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sig, params := m.getSignature(tt.name)
			if sig != tt.wantSig || !slices.Equal(params, tt.wantParams) {
				t.Errorf("getSignature(%q) = (%q, %v), want (%q, %v)",
					tt.name, sig, params, tt.wantSig, tt.wantParams)
			}
		})
	}
}

func TestArityParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lo, hi int
		want   string
	}{
		{1, 1, "x1"},
		{1, 2, "x1, x2?"},
		{0, 0, ""},
		{2, -1, "x1, x2, ...xs"},
	}

	for _, tt := range tests {
		if got := strings.Join(arityParams(tt.lo, tt.hi), ", "); got != tt.want {
			t.Errorf("arityParams(%d, %d) = %q, want %q", tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestRenderSignatureHint(t *testing.T) {
	t.Parallel()

	if got := renderSignatureHint("", nil, 0); got != "" {
		t.Errorf("empty signature rendered %q", got)
	}

	got := renderSignatureHint("pow(base, exponent)", []string{"base", "exponent"}, 1)
	for _, want := range []string{"pow", "base", "exponent"} {
		if !strings.Contains(got, want) {
			t.Errorf("hint %q missing %q", got, want)
		}
	}
}
