package value

import (
	"errors"
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// precision is the mantissa size used for transcendental functions.
const precision = 128

// Power returns x raised to y. Whole exponents use float64 arithmetic;
// fractional ones are computed in extended precision.
func Power(x, y float64) (float64, error) {
	if x == 0 && y < 0 {
		return 0, ErrDivisionByZero.Detail("0 raised to a negative power")
	}

	if y == math.Trunc(y) || x == 0 {
		return math.Pow(x, y), nil
	}

	if x < 0 {
		return 0, ErrInvalidArgument.Detail("fractional power of a negative number")
	}

	return extended(func(z *big.Float, in ...*big.Float) *big.Float {
		return bigfloat.Pow(z, in[0], in[1])
	}, x, y)
}

// Exp returns e raised to x.
func Exp(x float64) (float64, error) {
	return extended(func(z *big.Float, in ...*big.Float) *big.Float {
		return bigfloat.Exp(z, in[0])
	}, x)
}

// Ln returns the natural logarithm of x.
func Ln(x float64) (float64, error) {
	if x <= 0 {
		return 0, ErrInvalidArgument.Detail("logarithm of a non-positive number")
	}

	return extended(func(z *big.Float, in ...*big.Float) *big.Float {
		return bigfloat.Log(z, in[0])
	}, x)
}

// Log10 returns the base-10 logarithm of x.
func Log10(x float64) (float64, error) {
	if x <= 0 {
		return 0, ErrInvalidArgument.Detail("logarithm of a non-positive number")
	}

	return extended(func(z *big.Float, in ...*big.Float) *big.Float {
		ten := new(big.Float).SetPrec(precision).SetInt64(10)
		bigfloat.Log(z, in[0])
		bigfloat.Log(ten, ten)

		return z.Quo(z, ten)
	}, x)
}

// Pi returns π computed to [precision] bits and rounded to float64.
func Pi() float64 {
	f, _ := bigfloat.Pi(new(big.Float).SetPrec(precision)).Float64()

	return f
}

// extended evaluates f on args converted to big.Float. Domain errors raised
// by bigfloat as big.ErrNaN panics become [ErrInvalidArgument].
func extended(
	f func(z *big.Float, in ...*big.Float) *big.Float,
	args ...float64,
) (r float64, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}

		var nan big.ErrNaN
		if e, ok := p.(error); ok && errors.As(e, &nan) {
			err = ErrInvalidArgument.Detail("%s", nan.Error())

			return
		}

		panic(p)
	}()

	in := make([]*big.Float, len(args))
	for i, a := range args {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return 0, ErrInvalidArgument.Detail("not a finite number")
		}

		in[i] = new(big.Float).SetPrec(precision).SetFloat64(a)
	}

	r, _ = f(new(big.Float).SetPrec(precision), in...).Float64()
	if math.IsInf(r, 0) {
		return 0, ErrInvalidArgument.Detail("result overflows")
	}

	return r, nil
}
