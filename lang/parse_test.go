package lang

import (
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/calcpad/value"
)

func TestParseExpr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "precedence", input: "1 + 2 * 3", want: "(1 + (2 * 3))"},
		{name: "power right assoc", input: "2^3^2", want: "(2 ^ (3 ^ 2))"},
		{name: "double star", input: "2 ** 3", want: "(2 ^ 3)"},
		{name: "unary binds looser than power", input: "-2^2", want: "-(2 ^ 2)"},
		{name: "unicode operators", input: "6 × 2 ÷ 3", want: "((6 * 2) / 3)"},
		{name: "mod", input: "10 mod 3", want: "(10 mod 3)"},
		{name: "implicit variable", input: "2x", want: "(2 * x)"},
		{name: "implicit paren", input: "2(3 + 4)", want: "(2 * (3 + 4))"},
		{name: "multi-word name", input: "base  price * 2", want: "(base price * 2)"},
		{name: "percent literal", input: "15%", want: "15%"},
		{name: "percent of", input: "15% of 200", want: "15% of 200"},
		{name: "percent off name", input: "discount off base price", want: "discount off base price"},
		{name: "percent on", input: "5% on $30", want: "5% on 30 USD"},
		{name: "chained percent", input: "10% off 20% off 100", want: "10% off 20% off 100"},
		{name: "as percent", input: "50 as %", want: "50 as %"},
		{name: "as a percent of", input: "50 as a % of 200", want: "50 as % of 200"},
		{name: "is what percent", input: "50 is what % of 200", want: "50 as % of 200"},
		{name: "is percent of what", input: "30 is 15% off what", want: "30 is 15% off what"},
		{name: "unit", input: "5 km", want: "5 km"},
		{name: "compound unit", input: "60 km/h", want: "60 km/h"},
		{name: "unit power", input: "9.81 m/s^2", want: "9.81 m/s^2"},
		{name: "per unit", input: "50 km per hour", want: "(50 km / 1 hour)"},
		{name: "currency symbol", input: "$120.50", want: "120.5 USD"},
		{name: "currency rate", input: "$15/hour", want: "15 USD/hour"},
		{name: "code after", input: "20 EUR", want: "20 EUR"},
		{name: "code before", input: "EUR 20", want: "20 EUR"},
		{name: "duration sequence", input: "1h 30m", want: "(1 h + 30 min)"},
		{name: "glued duration", input: "1h30m15s", want: "((1 h + 30 min) + 15 s)"},
		{name: "spelled durations", input: "2 hours 15 min", want: "(2 hours + 15 min)"},
		{name: "metre alone", input: "5 m", want: "5 m"},
		{name: "business days", input: "3 business days", want: "3 business days"},
		{name: "date", input: "2024-01-31 + 1 month", want: "(2024-01-31 + 1 month)"},
		{name: "date clock zone", input: "2024-03-05 14:30 UTC", want: "2024-03-05 14:30 UTC"},
		{name: "time", input: "9:30", want: "09:30"},
		{name: "time pm", input: "3:15 pm", want: "15:15"},
		{name: "hour am zone", input: "9am PST", want: "09:00 PST"},
		{name: "midnight", input: "12am", want: "00:00"},
		{name: "convert unit", input: "5 km to m", want: "5 km to m"},
		{name: "convert in", input: "90 min in h", want: "90 min to h"},
		{name: "convert percent", input: "0.25 to %", want: "0.25 to %"},
		{name: "convert zone", input: "now to UTC+5:30", want: "now to UTC+5:30"},
		{name: "list", input: "$12, $15, $9", want: "12 USD, 15 USD, 9 USD"},
		{name: "range", input: "1..5", want: "1..5"},
		{name: "range step", input: "0..10 step 2", want: "0..10 step 2"},
		{name: "decimal range", input: "0.5..2.5", want: "0.5..2.5"},
		{name: "index", input: "xs[1]", want: "xs[1]"},
		{name: "negative index", input: "xs[-1]", want: "xs[-1]"},
		{name: "slice", input: "xs[2..3]", want: "xs[2..3]"},
		{name: "where", input: "xs where > 10", want: "xs where > 10"},
		{name: "where equal", input: "xs where = 5 km", want: "xs where = 5 km"},
		{name: "call", input: "sum(costs)", want: "sum(costs)"},
		{name: "call args", input: "f(1, 2, y: 3)", want: "f(1, 2, y: 3)"},
		{name: "call no args", input: "today()", want: "today()"},
		{name: "call list arg", input: "sort((3, 1, 2))", want: "sort(3, 1, 2)"},
		{name: "name before paren is product", input: "x (2)", want: "(x * 2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, err := ParseExpr(tt.input)
			if err != nil {
				t.Fatalf("ParseExpr(%q) error: %v", tt.input, err)
			}

			if got := e.String(); got != tt.want {
				t.Errorf("ParseExpr(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseExpr_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		msg    string
		column int
	}{
		{name: "grouped number", input: "1,000 + 2", msg: "grouped number 1,000", column: 1},
		{name: "grouped in list", input: "5, 1,250", msg: "write 1250", column: 4},
		{name: "dangling operator", input: "1 +", msg: "unexpected end of line", column: 4},
		{name: "unclosed paren", input: "(1 + 2", msg: `expected ")"`, column: 7},
		{name: "bad date", input: "2024-02-30", msg: "invalid date", column: 1},
		{name: "bad clock", input: "25:00", msg: "invalid time", column: 1},
		{name: "bad character", input: "2 # 3", msg: "unexpected character", column: 3},
		{name: "keyword operand", input: "of 3", msg: "unexpected keyword", column: 1},
		{name: "missing percent", input: "5 as 10", msg: `expected "%"`, column: 6},
		{name: "where without comparison", input: "xs where 3", msg: "comparison", column: 10},
		{name: "trailing input", input: "(1) )", msg: `unexpected ")"`, column: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseExpr(tt.input)
			if err == nil {
				t.Fatalf("ParseExpr(%q) succeeded, want error", tt.input)
			}

			if !errors.Is(err, value.ErrParse) {
				t.Errorf("errors.Is(%v, ErrParse) = false", err)
			}

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error %T is not *ParseError", err)
			}

			if !strings.Contains(perr.Msg, tt.msg) {
				t.Errorf("message %q does not contain %q", perr.Msg, tt.msg)
			}

			if perr.Source != tt.input {
				t.Errorf("source = %q, want %q", perr.Source, tt.input)
			}

			if perr.Column() != tt.column {
				t.Errorf("column = %d, want %d", perr.Column(), tt.column)
			}
		})
	}
}

func TestParseError_Snippet(t *testing.T) {
	t.Parallel()

	err := &ParseError{Source: "x = 1,000", Msg: "grouped number", Line: 3, Offset: 4}

	want := "  3 | x = 1,000\n" +
		"          ^\n"

	if got := err.Snippet(); got != want {
		t.Errorf("Snippet() =\n%s\nwant\n%s", got, want)
	}

	if got := err.Error(); got != "parse error at line 3, column 5: grouped number" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWalk(t *testing.T) {
	t.Parallel()

	e, err := ParseExpr("sum(a, b * 2) + c")
	if err != nil {
		t.Fatal(err)
	}

	var names []string

	Walk(e, func(e Expr) bool {
		if id, ok := e.(*Ident); ok {
			names = append(names, id.Name)
		}

		return true
	})

	if got := strings.Join(names, ","); got != "a,b,c" {
		t.Errorf("identifiers = %s, want a,b,c", got)
	}
}
