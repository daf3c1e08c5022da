package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goodsign/monday"

	"github.com/ardnew/calcpad/unit"
	"github.com/ardnew/calcpad/value"
)

// maxDecimalPlaces bounds the fixed-notation precision.
const maxDecimalPlaces = 15

// EmptyList is the rendering of a list with no items.
const EmptyList = "(empty list)"

// Formatter renders values under one set of [Options].
type Formatter struct {
	opts   Options
	locale localeLayout
}

// New returns a Formatter for opts. An invalid locale is an error only when
// dates are displayed in locale format.
func New(opts Options) (*Formatter, error) {
	if opts.DecimalPlaces < 0 || opts.DecimalPlaces > maxDecimalPlaces {
		return nil, fmt.Errorf("%w: %d", ErrDecimalPlaces, opts.DecimalPlaces)
	}

	loc, err := resolveLocale(opts.DateLocale)
	if err != nil && opts.DateFormat == DateLocale {
		return nil, err
	}

	return &Formatter{opts: opts, locale: loc}, nil
}

// Options returns the options f was created with.
func (f *Formatter) Options() Options { return f.opts }

// Value renders v.
func (f *Formatter) Value(v value.Value) string {
	switch v.Type {
	case value.TypeNumber:
		return f.Number(v.Num)
	case value.TypePercentage:
		return f.Number(v.Num*100) + "%"
	case value.TypeCurrency:
		return f.currency(v)
	case value.TypeQuantity:
		return f.quantity(v.Num, v.Unit)
	case value.TypeDuration:
		return f.duration(v.Duration)
	case value.TypeDate:
		return f.date(v)
	case value.TypeTime:
		return f.clock(v)
	case value.TypeList:
		if len(v.Items) == 0 {
			return EmptyList
		}

		items := make([]string, len(v.Items))
		for i, it := range v.Items {
			items[i] = f.Value(it)
		}

		return strings.Join(items, ", ")
	case value.TypeError:
		return Error(v.Err)
	case value.TypeSymbolic:
		return v.Expr
	}

	return fmt.Sprintf("%v", v)
}

// Error renders an evaluation error prefixed by its kind, such as
// "UndefinedVariable: xa".
func Error(err *value.Error) string {
	if err == nil {
		return ""
	}

	return err.Kind().String() + ": " + err.Message()
}

// Number renders n in fixed notation with trailing zeros removed, or in
// scientific notation when |n| is at least ScientificUpper, below
// ScientificLower, or would round to zero.
func (f *Formatter) Number(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "∞"
	case math.IsInf(n, -1):
		return "-∞"
	}

	if a := math.Abs(n); a != 0 && (a >= f.opts.ScientificUpper || a < f.opts.ScientificLower) {
		return f.scientific(n)
	}

	s := trimZeros(strconv.FormatFloat(n, 'f', f.opts.DecimalPlaces, 64))
	if s == "0" || s == "-0" {
		if n != 0 {
			return f.scientific(n)
		}

		return "0"
	}

	return s
}

func (f *Formatter) scientific(n float64) string {
	s := strconv.FormatFloat(n, 'e', f.opts.DecimalPlaces, 64)

	mantissa, exp, _ := strings.Cut(s, "e")
	if f.opts.TrimScientificZeros {
		mantissa = trimZeros(mantissa)
	}

	sign := ""
	if exp[0] == '-' {
		sign = "-"
	}

	exp = strings.TrimLeft(exp[1:], "0")
	if exp == "" {
		exp = "0"
	}

	return mantissa + "e" + sign + exp
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}

	return strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
}

func (f *Formatter) currency(v value.Value) string {
	code := v.Code()

	sign, ok := unit.SymbolForCode(code)
	if !ok {
		return f.Number(v.Num) + " " + code
	}

	if v.Num < 0 {
		return "-" + sign + f.Number(-v.Num)
	}

	return sign + f.Number(v.Num)
}

func (f *Formatter) quantity(n float64, c unit.Compound) string {
	if u, ok := c.Unit(); ok {
		return f.Number(n) + " " + u.Label(n)
	}

	return f.Number(n) + " " + c.String()
}

func (f *Formatter) duration(d value.Duration) string {
	if !d.Mixed() {
		u := d.DisplayUnit()

		return f.quantity(d.In(u), unit.Single(u))
	}

	parts := d.Parts()
	out := make([]string, len(parts))

	for i, p := range parts {
		out[i] = f.quantity(p.Amount, unit.Single(p.Unit))
	}

	return strings.Join(out, " ")
}

func zoneSuffix(t time.Time) string {
	if name, off := t.Zone(); off != 0 || (name != "UTC" && name != "") {
		return " " + name
	}

	return ""
}

func clockLayout(t time.Time, twelve bool) string {
	switch {
	case twelve && t.Second() != 0:
		return "3:04:05 pm"
	case twelve:
		return "3:04 pm"
	case t.Second() != 0:
		return "15:04:05"
	default:
		return "15:04"
	}
}

func (f *Formatter) date(v value.Value) string {
	t := v.Time

	var s string

	if f.opts.DateFormat == DateLocale {
		s = monday.Format(t, f.locale.date, f.locale.locale)
	} else {
		s = t.Format(time.DateOnly)
	}

	if v.Clock {
		s += " " + t.Format(clockLayout(t, false))
	}

	return s + zoneSuffix(t)
}

func (f *Formatter) clock(v value.Value) string {
	s := v.Time.Format(clockLayout(v.Time, v.Twelve)) + zoneSuffix(v.Time)

	switch {
	case v.Rollover == 1:
		s += " (+1 day)"
	case v.Rollover == -1:
		s += " (-1 day)"
	case v.Rollover > 1:
		s += fmt.Sprintf(" (+%d days)", v.Rollover)
	case v.Rollover < -1:
		s += fmt.Sprintf(" (%d days)", v.Rollover)
	}

	return s
}
