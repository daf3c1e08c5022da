package value

import (
	"errors"
	"math"

	"github.com/ardnew/calcpad/unit"
)

// Op is a binary arithmetic operator.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
)

var opSymbol = [...]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpMod: "mod",
	OpPow: "^",
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opSymbol) {
		return "?"
	}

	return opSymbol[op]
}

// Binary applies op to a and b. Lists broadcast element-wise against
// scalars and against lists of equal length.
func Binary(op Op, a, b Value) (Value, error) {
	switch {
	case a.Type == TypeError:
		return Value{}, a.Err
	case b.Type == TypeError:
		return Value{}, b.Err
	case a.Type == TypeSymbolic || b.Type == TypeSymbolic:
		return Value{}, ErrIncompatibleTypes.Detail(
			"cannot compute with a symbolic expression")
	case a.Type == TypeList || b.Type == TypeList:
		return broadcast(op, a, b)
	}

	switch op {
	case OpAdd:
		return add(a, b, 1)
	case OpSub:
		return add(a, b, -1)
	case OpMul:
		return mul(a, b)
	case OpDiv:
		return div(a, b)
	case OpMod:
		return mod(a, b)
	case OpPow:
		return pow(a, b)
	}

	return Value{}, ErrInvalidArgument.Detail("unknown operator %d", int(op))
}

// Neg returns -v.
func Neg(v Value) (Value, error) {
	switch v.Type {
	case TypeNumber, TypeCurrency, TypeQuantity, TypePercentage:
		v.Num = -v.Num

		return v, nil
	case TypeDuration:
		v.Duration = v.Duration.Scale(-1)

		return v, nil
	case TypeList:
		return Map(v, Neg)
	case TypeError:
		return Value{}, v.Err
	}

	return Value{}, ErrIncompatibleTypes.Detail("cannot negate a %s", v.Type)
}

func verb(sign float64) string {
	if sign < 0 {
		return "subtract"
	}

	return "add"
}

func add(a, b Value, sign float64) (Value, error) {
	switch {
	case a.Type == TypePercentage && b.Type == TypePercentage:
		return Percentage(a.Num + sign*b.Num), nil
	case b.Type == TypePercentage && scalable(a):
		return scale(a, 1+sign*b.Num), nil
	case a.Type == TypePercentage && sign > 0 && scalable(b):
		return scale(b, 1+a.Num), nil
	case a.Type == TypeDate:
		return shiftDate(a, b, sign)
	case b.Type == TypeDate && sign > 0:
		return shiftDate(b, a, 1)
	case a.Type == TypeTime && b.Type == TypeTime:
		if sign < 0 {
			return subClocks(a, b), nil
		}

		return Value{}, ErrIncompatibleTypes.Detail(
			"cannot add two times; add a duration instead")
	case a.Type == TypeTime:
		return shiftClock(a, b, sign)
	case b.Type == TypeTime && sign > 0:
		return shiftClock(b, a, 1)
	case a.Type == TypeNumber && b.Type == TypeNumber:
		return Number(a.Num + sign*b.Num), nil
	case a.Type == TypeNumber && b.measured():
		return addMeasured(adopt(a.Num, b), b, sign)
	case a.measured() && b.Type == TypeNumber:
		return addMeasured(a, adopt(b.Num, a), sign)
	case a.measured() && b.measured():
		return addMeasured(a, b, sign)
	}

	return Value{}, ErrIncompatibleTypes.Detail("cannot %s %s and %s",
		verb(sign), a.Type, b.Type)
}

// adopt returns n measured in the unit of like.
func adopt(n float64, like Value) Value {
	if like.Type == TypeDuration {
		return Value{Type: TypeDuration, Duration: DurationOf(n, like.Duration.DisplayUnit())}
	}

	return Value{Type: like.Type, Num: n, Unit: like.Unit}
}

func scalable(v Value) bool {
	switch v.Type {
	case TypeNumber, TypeCurrency, TypeQuantity, TypeDuration, TypePercentage:
		return true
	default:
		return false
	}
}

func scale(v Value, f float64) Value {
	if v.Type == TypeDuration {
		v.Duration = v.Duration.Scale(f)

		return v
	}

	v.Num *= f

	return v
}

func addMeasured(a, b Value, sign float64) (Value, error) {
	if a.Type == TypeDuration && b.Type == TypeDuration {
		return Value{Type: TypeDuration, Duration: a.Duration.Plus(b.Duration, sign)}, nil
	}

	an, ac := a.compound()
	bn, bc := b.compound()

	if ac.Dim().Is(unit.Temperature) && (ac.IsAffine() || bc.IsAffine()) {
		return addTemperature(an, ac, bn, bc, sign)
	}

	conv, err := unit.Convert(bn, bc, ac)
	if err != nil {
		return Value{}, conversionError(ac, bc, err)
	}

	return Quantity(an+sign*conv, ac), nil
}

// addTemperature adds or subtracts temperatures where at least one side is
// an absolute scale. Absolute minus absolute is a difference; a difference
// added to an absolute stays absolute.
func addTemperature(an float64, ac unit.Compound, bn float64, bc unit.Compound,
	sign float64,
) (Value, error) {
	au, aok := ac.Unit()
	bu, bok := bc.Unit()

	if !aok || !bok || !bc.Dim().Is(unit.Temperature) {
		return Value{}, ErrIncompatibleDimensions.Detail("%s and %s", ac, bc)
	}

	switch {
	case au.Affine && bu.Affine && sign < 0:
		d := au.Delta()
		kelvin := unit.Canonical(an, ac) - unit.Canonical(bn, bc)

		return Quantity(kelvin/d.Factor, unit.Single(d)), nil
	case au.Affine:
		return Quantity(an+sign*bn*bu.Factor/au.Factor, ac), nil
	case sign < 0:
		return Value{}, ErrIncompatibleDimensions.Detail(
			"cannot subtract an absolute temperature from a difference")
	default:
		return Quantity(bn+an*au.Factor/bu.Factor, bc), nil
	}
}

// conversionError classifies a failed unit conversion between two compounds,
// naming them in operand order.
func conversionError(from, to unit.Compound, err error) *Error {
	if errors.Is(err, unit.ErrUnknownRate) {
		return ErrIncompatibleCurrencies.Detail("no exchange rate between %s and %s",
			from, to)
	}

	if from.IsAffine() != to.IsAffine() && from.Dim() == to.Dim() {
		return ErrIncompatibleDimensions.Detail(
			"%s and %s mix absolute temperatures and differences", from, to)
	}

	return ErrIncompatibleDimensions.Detail("%s (%s) and %s (%s)",
		from, from.Dim(), to, to.Dim())
}

func mul(a, b Value) (Value, error) {
	switch {
	case a.Type == TypePercentage && b.Type == TypePercentage:
		return Percentage(a.Num * b.Num), nil
	case b.Type == TypePercentage && scalable(a):
		return scale(a, b.Num), nil
	case a.Type == TypePercentage && scalable(b):
		return scale(b, a.Num), nil
	case a.Type == TypeNumber && scalable(b):
		return scale(b, a.Num), nil
	case b.Type == TypeNumber && scalable(a):
		return scale(a, b.Num), nil
	case a.measured() && b.measured():
		an, ac := a.compound()
		bn, bc := b.compound()

		c, s := ac.Mul(bc)
		if math.IsNaN(s) {
			return Value{}, ErrIncompatibleCurrencies.Detail(
				"no exchange rate between %s and %s", ac, bc)
		}

		return Quantity(an*bn*s, c), nil
	}

	return Value{}, ErrIncompatibleTypes.Detail("cannot multiply %s by %s",
		a.Type, b.Type)
}

func isZero(v Value) bool {
	switch v.Type {
	case TypeDuration:
		return v.Duration.IsZero()
	case TypeNumber, TypeCurrency, TypeQuantity, TypePercentage:
		return v.Num == 0
	default:
		return false
	}
}

func div(a, b Value) (Value, error) {
	if isZero(b) {
		return Value{}, ErrDivisionByZero
	}

	switch {
	case a.Type == TypePercentage && b.Type == TypePercentage:
		return Number(a.Num / b.Num), nil
	case (b.Type == TypePercentage || b.Type == TypeNumber) && scalable(a):
		return scale(a, 1/b.Num), nil
	case a.Type == TypeNumber && b.measured():
		bn, bc := b.compound()

		return Quantity(a.Num/bn, bc.Pow(-1)), nil
	case a.measured() && b.measured():
		an, ac := a.compound()
		bn, bc := b.compound()

		c, s := ac.Div(bc)
		if math.IsNaN(s) {
			return Value{}, ErrIncompatibleCurrencies.Detail(
				"no exchange rate between %s and %s", ac, bc)
		}

		return Quantity(an/bn*s, c), nil
	}

	return Value{}, ErrIncompatibleTypes.Detail("cannot divide %s by %s",
		a.Type, b.Type)
}

// floorMod returns a modulo b with the sign of b.
func floorMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}

	return r
}

func mod(a, b Value) (Value, error) {
	if isZero(b) {
		return Value{}, ErrDivisionByZero
	}

	switch {
	case a.Type == TypeNumber && b.Type == TypeNumber:
		return Number(floorMod(a.Num, b.Num)), nil
	case a.measured() && b.Type == TypeNumber:
		an, ac := a.compound()

		return Quantity(floorMod(an, b.Num), ac), nil
	case a.measured() && b.measured():
		an, ac := a.compound()
		bn, bc := b.compound()

		conv, err := unit.Convert(bn, bc, ac)
		if err != nil {
			return Value{}, conversionError(ac, bc, err)
		}

		return Quantity(floorMod(an, conv), ac), nil
	}

	return Value{}, ErrIncompatibleTypes.Detail("cannot take %s mod %s",
		a.Type, b.Type)
}

// maxDenominator bounds the denominators tried when a fractional exponent
// is applied to a unit.
const maxDenominator = 12

// rational finds num/den equal to x with a small denominator.
func rational(x float64) (num, den int, ok bool) {
	for den = 1; den <= maxDenominator; den++ {
		n := x * float64(den)
		if r := math.Round(n); math.Abs(n-r) < 1e-9 {
			return int(r), den, true
		}
	}

	return 0, 0, false
}

func pow(a, b Value) (Value, error) {
	if b.Type != TypeNumber {
		return Value{}, ErrIncompatibleTypes.Detail(
			"exponent must be a plain number, not a %s", b.Type)
	}

	switch {
	case a.Type == TypeNumber:
		r, err := Power(a.Num, b.Num)
		if err != nil {
			return Value{}, err
		}

		return Number(r), nil
	case a.measured():
		an, ac := a.compound()

		num, den, ok := rational(b.Num)
		if !ok {
			return Value{}, ErrIncompatibleDimensions.Detail(
				"cannot raise %s to the irrational power %g", ac, b.Num)
		}

		c, ok := ac.Root(den)
		if !ok {
			return Value{}, ErrIncompatibleDimensions.Detail(
				"%s^%g has a fractional dimension", ac, b.Num)
		}

		r, err := Power(an, b.Num)
		if err != nil {
			return Value{}, err
		}

		return Quantity(r, c.Pow(num)), nil
	}

	return Value{}, ErrIncompatibleTypes.Detail("cannot raise a %s to a power",
		a.Type)
}

// Convert expresses v in the target unit. Plain numbers adopt the target
// unit; durations convert into any time unit, including calendar and
// business units.
func Convert(v Value, target unit.Compound) (Value, error) {
	switch v.Type {
	case TypeList:
		return Map(v, func(it Value) (Value, error) { return Convert(it, target) })
	case TypeNumber:
		return Quantity(v.Num, target), nil
	case TypeDuration:
		if u, ok := target.Unit(); ok && u.IsTime() {
			return Value{Type: TypeDuration, Duration: DurationOf(v.Duration.In(u), u)}, nil
		}

		fallthrough
	case TypeCurrency, TypeQuantity:
		n, c := v.compound()

		r, err := unit.Convert(n, c, target)
		if err != nil {
			return Value{}, conversionError(c, target, err)
		}

		return Quantity(r, target), nil
	case TypeError:
		return Value{}, v.Err
	}

	return Value{}, ErrIncompatibleTypes.Detail("cannot convert a %s to %s",
		v.Type, target)
}

// Canonical returns the magnitude of v in the canonical unit of its class:
// durations in seconds, dates as Unix seconds, times as seconds since
// midnight of their first day.
func Canonical(v Value) (float64, error) {
	switch v.Type {
	case TypeNumber, TypePercentage:
		return v.Num, nil
	case TypeDuration:
		return v.Duration.Fixed(), nil
	case TypeCurrency, TypeQuantity:
		f := unit.Canonical(v.Num, v.Unit)
		if math.IsNaN(f) {
			return 0, ErrIncompatibleCurrencies.Detail("no exchange rate for %s", v.Unit)
		}

		return f, nil
	case TypeDate:
		return float64(v.Time.UnixNano()) / 1e9, nil
	case TypeTime:
		return instant(v), nil
	}

	return 0, ErrIncompatibleTypes.Detail("a %s has no magnitude", v.Type)
}

// Near reports whether a and b are equal within a relative tolerance of
// 1e-9, or an absolute tolerance of 1e-12 near zero.
func Near(a, b float64) bool {
	return math.Abs(a-b) <= math.Max(1e-12, 1e-9*math.Max(math.Abs(a), math.Abs(b)))
}

// Compare orders a and b by canonical magnitude, treating values within
// [Near] tolerance as equal. A plain number compares in the unit of the
// other operand.
func Compare(a, b Value) (int, error) {
	switch {
	case a.Type == TypeNumber && b.measured():
		a = adopt(a.Num, b)
	case b.Type == TypeNumber && a.measured():
		b = adopt(b.Num, a)
	}

	if ca, cb := ClassOf(a), ClassOf(b); ca != cb {
		return 0, ErrIncompatibleDimensions.Detail("cannot compare %s with %s", ca, cb)
	}

	if a.measured() {
		an, ac := a.compound()
		bn, bc := b.compound()

		conv, err := unit.Convert(bn, bc, ac)
		if err != nil {
			return 0, conversionError(ac, bc, err)
		}

		return order(an, conv), nil
	}

	x, err := Canonical(a)
	if err != nil {
		return 0, err
	}

	y, err := Canonical(b)
	if err != nil {
		return 0, err
	}

	return order(x, y), nil
}

func order(x, y float64) int {
	switch {
	case Near(x, y):
		return 0
	case x < y:
		return -1
	default:
		return 1
	}
}
