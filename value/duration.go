package value

import (
	"math"

	"github.com/ardnew/calcpad/unit"
)

// Duration is a span of time split into calendar months and years, business
// days, and exact seconds. Calendar and business components only have an
// exact length once added to a date; elsewhere they use the fixed lengths
// [unit.SecondsPerMonth] and [unit.SecondsPerYear] and 24-hour days.
type Duration struct {
	// Unit is the display unit. When nil, one is chosen from the magnitude.
	Unit *unit.Unit

	Years    float64
	Months   float64
	Business float64
	Seconds  float64
}

// DurationOf returns n of the time unit u.
func DurationOf(n float64, u *unit.Unit) Duration {
	d := Duration{Unit: u}

	switch {
	case u.Business:
		d.Business = n
	case u == unit.Year:
		d.Years = n
	case u == unit.Month:
		d.Months = n
	default:
		d.Seconds = n * u.Factor
	}

	return d
}

// Fixed returns the length of d in seconds, using fixed-length months and
// years.
func (d Duration) Fixed() float64 {
	return d.Years*unit.SecondsPerYear + d.Months*unit.SecondsPerMonth +
		d.Business*unit.BusinessDay.Factor + d.Seconds
}

// IsZero reports whether every component of d is zero.
func (d Duration) IsZero() bool {
	return d.Years == 0 && d.Months == 0 && d.Business == 0 && d.Seconds == 0
}

// Calendar reports whether d has a month or year component.
func (d Duration) Calendar() bool { return d.Years != 0 || d.Months != 0 }

// Mixed reports whether d combines more than one of calendar, business,
// and exact components.
func (d Duration) Mixed() bool {
	n := 0

	for _, nonzero := range []bool{d.Calendar(), d.Business != 0, d.Seconds != 0} {
		if nonzero {
			n++
		}
	}

	return n > 1
}

// DisplayUnit returns the unit d is shown in.
func (d Duration) DisplayUnit() *unit.Unit {
	if d.Unit != nil {
		return d.Unit
	}

	return fitUnit(d.Fixed())
}

// In returns the magnitude of d in the time unit u. Calendar and business
// components convert exactly into their own units and approximately
// otherwise.
func (d Duration) In(u *unit.Unit) float64 {
	switch {
	case u.Business && !d.Calendar() && d.Seconds == 0:
		return d.Business
	case u == unit.Year && d.Business == 0 && d.Seconds == 0:
		return d.Years + d.Months/12
	case u == unit.Month && d.Business == 0 && d.Seconds == 0:
		return d.Years*12 + d.Months
	default:
		return d.Fixed() / u.Factor
	}
}

// Scale multiplies every component of d by f.
func (d Duration) Scale(f float64) Duration {
	d.Years *= f
	d.Months *= f
	d.Business *= f
	d.Seconds *= f

	return d
}

// Plus returns d + sign*o component-wise. The display unit of d wins.
func (d Duration) Plus(o Duration, sign float64) Duration {
	if d.Unit == nil {
		d.Unit = o.Unit
	}

	d.Years += sign * o.Years
	d.Months += sign * o.Months
	d.Business += sign * o.Business
	d.Seconds += sign * o.Seconds

	return d
}

// Part is one component of a mixed duration, e.g. "1 month" in
// "1 month 3 days".
type Part struct {
	Unit   *unit.Unit
	Amount float64
}

// Parts splits d into its nonzero components, largest first.
func (d Duration) Parts() []Part {
	var parts []Part

	switch {
	case d.Years != 0 && d.Months != 0:
		parts = append(parts, Part{Unit: unit.Month, Amount: d.Years*12 + d.Months})
	case d.Years != 0:
		parts = append(parts, Part{Unit: unit.Year, Amount: d.Years})
	case d.Months != 0:
		parts = append(parts, Part{Unit: unit.Month, Amount: d.Months})
	}

	if d.Business != 0 {
		parts = append(parts, Part{Unit: unit.BusinessDay, Amount: d.Business})
	}

	if d.Seconds != 0 {
		u := fitUnit(d.Seconds)
		parts = append(parts, Part{Unit: u, Amount: d.Seconds / u.Factor})
	}

	return parts
}

// fitUnit picks the largest of day, hour, minute, and second in which
// seconds is at least one.
func fitUnit(seconds float64) *unit.Unit {
	s := math.Abs(seconds)

	for _, u := range []*unit.Unit{unit.Day, unit.Hour, unit.Minute} {
		if s >= u.Factor {
			return u
		}
	}

	return unit.Second
}
