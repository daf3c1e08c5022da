package value

//go:generate go tool stringer --linecomment --type Type --output type_string.go

import (
	"math"
	"time"

	"github.com/ardnew/calcpad/unit"
)

// Type identifies the variant held by a [Value].
type Type int

const (
	TypeNumber     Type = iota // number
	TypeCurrency               // currency
	TypeQuantity               // quantity
	TypePercentage             // percentage
	TypeDate                   // date
	TypeDuration               // duration
	TypeTime                   // time
	TypeList                   // list
	TypeError                  // error
	TypeSymbolic               // symbolic
)

// Value is the result of evaluating an expression.
//
// Only the fields relevant to Type are meaningful:
//
//   - Number: Num.
//   - Currency: Num and a Unit holding one currency term.
//   - Quantity: Num and Unit.
//   - Percentage: Num holds the ratio, so 15% is 0.15.
//   - Date: Time, and Clock when a time of day was given.
//   - Duration: Duration.
//   - Time: Time holds the wall clock on a reference day in its zone,
//     Rollover counts the whole days crossed by arithmetic, and Twelve marks
//     a clock written with am/pm.
//   - List: Items.
//   - Error: Err.
//   - Symbolic: Expr.
type Value struct {
	Time     time.Time
	Err      *Error
	Expr     string
	Unit     unit.Compound
	Items    []Value
	Duration Duration
	Num      float64
	Rollover int
	Type     Type
	Clock    bool
	Twelve   bool
}

// Number returns a plain number.
func Number(n float64) Value { return Value{Type: TypeNumber, Num: n} }

// Percentage returns the percentage whose ratio is r, so Percentage(0.15)
// is 15%.
func Percentage(r float64) Value { return Value{Type: TypePercentage, Num: r} }

// Currency returns an amount of the currency cur.
func Currency(n float64, cur *unit.Unit) Value {
	return Value{Type: TypeCurrency, Num: n, Unit: unit.Single(cur)}
}

// Quantity returns n measured in c, normalized to the most specific
// variant: a dimensionless compound yields a Number, a lone currency a
// Currency, and a lone time unit a Duration.
func Quantity(n float64, c unit.Compound) Value {
	if len(c) == 0 {
		return Number(n)
	}

	if u, ok := c.Unit(); ok {
		switch {
		case u.IsCurrency():
			return Currency(n, u)
		case u.IsTime():
			return Value{Type: TypeDuration, Duration: DurationOf(n, u)}
		}
	}

	return Value{Type: TypeQuantity, Num: n, Unit: c}
}

// Date returns the calendar date of t. When clock is false, the time of day
// is dropped.
func Date(t time.Time, clock bool) Value {
	if !clock {
		y, m, d := t.Date()
		t = time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	}

	return Value{Type: TypeDate, Time: t, Clock: clock}
}

// refYear, refMonth and refDay fix the reference day on which times of day
// are stored.
const (
	refYear  = 2000
	refMonth = time.January
	refDay   = 1
)

// Clock returns the time of day h:m:s in loc. A nil loc means UTC.
func Clock(h, m int, s float64, loc *time.Location, twelve bool) Value {
	if loc == nil {
		loc = time.UTC
	}

	whole, frac := math.Modf(s)
	t := time.Date(refYear, refMonth, refDay, h, m, int(whole),
		int(math.Round(frac*1e9)), loc)

	return Value{Type: TypeTime, Time: t, Twelve: twelve}
}

// List returns a list of items. All items must share one [Class], otherwise
// the result is an [ErrIncompatibleDimensions] error.
func List(items ...Value) (Value, error) {
	if len(items) > 0 {
		c := ClassOf(items[0])

		for _, it := range items[1:] {
			if k := ClassOf(it); k != c {
				return Value{}, ErrIncompatibleDimensions.Detail(
					"list mixes %s and %s", c, k)
			}
		}
	}

	return Value{Type: TypeList, Items: items}, nil
}

// Failure returns an error value carrying err.
func Failure(err error) Value { return Value{Type: TypeError, Err: AsError(err)} }

// Symbolic returns a residual expression, displayed verbatim.
func Symbolic(expr string) Value { return Value{Type: TypeSymbolic, Expr: expr} }

// Code returns the ISO 4217 code of a currency value, or "" otherwise.
func (v Value) Code() string {
	if v.Type != TypeCurrency {
		return ""
	}

	if u, ok := v.Unit.Unit(); ok {
		return u.Code
	}

	return ""
}

// IsScalar reports whether v is neither a list, an error, nor symbolic.
func (v Value) IsScalar() bool {
	switch v.Type {
	case TypeList, TypeError, TypeSymbolic:
		return false
	default:
		return true
	}
}

// Integer returns v as an int when v is a whole Number.
func (v Value) Integer() (int, bool) {
	if v.Type != TypeNumber || v.Num != math.Trunc(v.Num) ||
		math.Abs(v.Num) > math.MaxInt32 {
		return 0, false
	}

	return int(v.Num), true
}

// measured reports whether v carries a unit magnitude (Currency, Quantity,
// or Duration).
func (v Value) measured() bool {
	switch v.Type {
	case TypeCurrency, TypeQuantity, TypeDuration:
		return true
	default:
		return false
	}
}

// compound returns the unit of a measured value along with its magnitude
// expressed in that unit. Durations are expressed in their display unit.
func (v Value) compound() (float64, unit.Compound) {
	if v.Type == TypeDuration {
		u := v.Duration.DisplayUnit()

		return v.Duration.In(u), unit.Single(u)
	}

	return v.Num, v.Unit
}

// Class partitions values for list homogeneity: items of one list must
// share a Class.
type Class struct {
	Type   Type
	Dim    unit.Dimension
	Affine bool
}

// ClassOf returns the class of v. Durations and time quantities share a
// class, as do currencies of different codes.
func ClassOf(v Value) Class {
	switch v.Type {
	case TypeCurrency, TypeQuantity, TypeDuration:
		_, c := v.compound()

		return Class{Type: TypeQuantity, Dim: c.Dim(), Affine: c.IsAffine()}
	default:
		return Class{Type: v.Type}
	}
}

// String describes the class for error messages.
func (c Class) String() string {
	if c.Type != TypeQuantity {
		return c.Type.String()
	}

	switch {
	case c.Dim.Is(unit.Currency):
		return "currency"
	case c.Dim.Is(unit.Time):
		return "duration"
	case c.Affine:
		return "temperature"
	default:
		return c.Dim.String()
	}
}
