package unit

import (
	"math"
	"strconv"
	"strings"
)

// Term is one unit raised to an integer power.
type Term struct {
	Unit  *Unit
	Power int
}

// Compound is a product of unit powers in first-seen order, e.g. km·h^-1.
// The empty Compound is dimensionless.
type Compound []Term

// Single returns the compound made of u alone.
func Single(u *Unit) Compound { return Compound{{Unit: u, Power: 1}} }

// Dim returns the dimension of c.
func (c Compound) Dim() Dimension {
	var d Dimension

	for _, t := range c {
		p, _ := t.Unit.Dim.Scale(t.Power, 1)
		d = d.Mul(p)
	}

	return d
}

// Factor returns the canonical magnitude of one c, ignoring offsets.
// It is NaN when a currency term has no known rate.
func (c Compound) Factor() float64 {
	f := 1.0

	for _, t := range c {
		f *= math.Pow(t.Unit.Factor, float64(t.Power))
	}

	return f
}

// Unit returns the only unit of c when c is a single term to the first
// power.
func (c Compound) Unit() (*Unit, bool) {
	if len(c) == 1 && c[0].Power == 1 {
		return c[0].Unit, true
	}

	return nil, false
}

// IsAffine reports whether c is a lone absolute temperature scale.
func (c Compound) IsAffine() bool {
	u, ok := c.Unit()

	return ok && u.Affine
}

// Compatible reports whether magnitudes in a and b can be converted into
// each other.
func Compatible(a, b Compound) bool {
	return a.Dim() == b.Dim() && a.IsAffine() == b.IsAffine()
}

// Equal reports whether a and b have the same terms in the same order.
func Equal(a, b Compound) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// Mul returns the product of c and o along with the scale that must be
// applied to the product of the magnitudes. Terms of the same dimension are
// merged into the unit seen first, so km·m becomes km^2 with scale 1e-3.
func (c Compound) Mul(o Compound) (Compound, float64) {
	out := make(Compound, 0, len(c)+len(o))
	scale := 1.0

	for _, t := range c {
		out, scale = out.merge(t, scale)
	}

	for _, t := range o {
		out, scale = out.merge(t, scale)
	}

	return out.compact(), scale
}

// Div returns the quotient of c and o along with its magnitude scale.
func (c Compound) Div(o Compound) (Compound, float64) {
	return c.Mul(o.Pow(-1))
}

// Pow raises every term of c to the integer power n.
func (c Compound) Pow(n int) Compound {
	out := make(Compound, 0, len(c))

	for _, t := range c {
		out = append(out, Term{Unit: t.Unit, Power: t.Power * n})
	}

	return out.compact()
}

// Root takes the n-th root of c. It reports false unless every power is a
// multiple of n.
func (c Compound) Root(n int) (Compound, bool) {
	if n == 0 {
		return nil, false
	}

	out := make(Compound, 0, len(c))

	for _, t := range c {
		if t.Power%n != 0 {
			return nil, false
		}

		out = append(out, Term{Unit: t.Unit, Power: t.Power / n})
	}

	return out.compact(), true
}

func (c Compound) merge(t Term, scale float64) (Compound, float64) {
	for i := range c {
		if c[i].Unit == t.Unit {
			c[i].Power += t.Power

			return c, scale
		}
	}

	for i := range c {
		u := c[i].Unit
		if u.Dim != t.Unit.Dim || u.Calendar || t.Unit.Calendar {
			continue
		}

		scale *= math.Pow(t.Unit.Factor/u.Factor, float64(t.Power))
		c[i].Power += t.Power

		return c, scale
	}

	return append(c, t), scale
}

func (c Compound) compact() Compound {
	out := c[:0]

	for _, t := range c {
		if t.Power != 0 {
			out = append(out, t)
		}
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

// String renders c with a single slash, e.g. "km/h", "m/s^2", "J/(kg·K)".
func (c Compound) String() string {
	var num, den []string

	for _, t := range c {
		switch {
		case t.Power > 0:
			num = append(num, termString(t.Unit.Symbol, t.Power))
		case t.Power < 0:
			den = append(den, termString(t.Unit.Symbol, -t.Power))
		}
	}

	var b strings.Builder

	if len(num) == 0 {
		b.WriteString("1")
	} else {
		b.WriteString(strings.Join(num, "·"))
	}

	switch len(den) {
	case 0:
	case 1:
		b.WriteString("/" + den[0])
	default:
		b.WriteString("/(" + strings.Join(den, "·") + ")")
	}

	return b.String()
}

func termString(symbol string, power int) string {
	if power == 1 {
		return symbol
	}

	return symbol + "^" + strconv.Itoa(power)
}

// Convert expresses magnitude v, measured in from, in the unit to.
func Convert(v float64, from, to Compound) (float64, error) {
	if !Compatible(from, to) {
		return 0, ErrIncompatible
	}

	if Equal(from, to) {
		return v, nil
	}

	if from.IsAffine() {
		f, _ := from.Unit()
		t, _ := to.Unit()

		return (v*f.Factor + f.Offset - t.Offset) / t.Factor, nil
	}

	ff, tf := from.Factor(), to.Factor()
	if math.IsNaN(ff) || math.IsNaN(tf) {
		return 0, ErrUnknownRate
	}

	return v * ff / tf, nil
}

// Canonical returns v measured in c expressed in the canonical unit of c's
// dimension. Absolute temperatures are expressed in kelvin.
func Canonical(v float64, c Compound) float64 {
	if c.IsAffine() {
		u, _ := c.Unit()

		return v*u.Factor + u.Offset
	}

	return v * c.Factor()
}
