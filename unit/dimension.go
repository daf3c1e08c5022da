package unit

//go:generate go tool stringer --linecomment --type Base --output base_string.go

import (
	"strconv"
	"strings"
)

// Base identifies one base dimension.
type Base int

const (
	Length      Base = iota // length
	Mass                    // mass
	Time                    // time
	Temperature             // temperature
	Current                 // current
	Currency                // currency
	Count                   // count
)

const numBases = int(Count) + 1

// Dimension holds the exponent of each base dimension.
// The zero Dimension is dimensionless.
type Dimension [numBases]int

// Of returns the dimension of a single base raised to the first power.
func Of(b Base) Dimension {
	var d Dimension

	d[b] = 1

	return d
}

// IsZero reports whether d is dimensionless.
func (d Dimension) IsZero() bool { return d == Dimension{} }

// Is reports whether d is exactly base b to the first power.
func (d Dimension) Is(b Base) bool { return d == Of(b) }

// Mul returns the dimension of a product.
func (d Dimension) Mul(o Dimension) Dimension {
	for i := range d {
		d[i] += o[i]
	}

	return d
}

// Div returns the dimension of a quotient.
func (d Dimension) Div(o Dimension) Dimension {
	for i := range d {
		d[i] -= o[i]
	}

	return d
}

// Scale raises d to the rational power num/den. It reports false when any
// resulting exponent would not be an integer.
func (d Dimension) Scale(num, den int) (Dimension, bool) {
	if den == 0 {
		return d, false
	}

	for i, e := range d {
		if (e*num)%den != 0 {
			return d, false
		}

		d[i] = e * num / den
	}

	return d, true
}

// String renders d as a product of base powers, e.g. "length·time^-1".
func (d Dimension) String() string {
	if d.IsZero() {
		return "dimensionless"
	}

	parts := make([]string, 0, numBases)

	for i, e := range d {
		switch e {
		case 0:
			continue
		case 1:
			parts = append(parts, Base(i).String())
		default:
			parts = append(parts, Base(i).String()+"^"+strconv.Itoa(e))
		}
	}

	return strings.Join(parts, "·")
}
