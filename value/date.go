package value

import (
	"math"
	"time"

	"github.com/ardnew/calcpad/unit"
)

// DaysIn returns the number of days in month m of year y.
func DaysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths moves t by n calendar months, clamping the day to the end of
// the target month: 2024-01-31 plus one month is 2024-02-29.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()

	total := int(m) - 1 + n
	years := total / 12

	if total%12 < 0 {
		years--
	}

	ny := y + years
	nm := time.Month(total-years*12) + 1

	if dim := DaysIn(ny, nm); d > dim {
		d = dim
	}

	h, mi, s := t.Clock()

	return time.Date(ny, nm, d, h, mi, s, t.Nanosecond(), t.Location())
}

func weekend(t time.Time) bool {
	wd := t.Weekday()

	return wd == time.Saturday || wd == time.Sunday
}

// AddBusinessDays moves t by n weekdays, skipping Saturdays and Sundays.
func AddBusinessDays(t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}

	for n != 0 {
		// Five business days from any weekday land on the same weekday a
		// week later.
		if !weekend(t) && (n >= 5 || n <= -5) {
			weeks := n / 5
			t = t.AddDate(0, 0, 7*weeks)
			n -= 5 * weeks

			continue
		}

		t = t.AddDate(0, 0, step)

		if !weekend(t) {
			n -= step
		}
	}

	return t
}

// BusinessDaysBetween counts the weekdays in (from, to], negated when to is
// before from.
func BusinessDaysBetween(from, to time.Time) int {
	sign := 1
	if to.Before(from) {
		from, to, sign = to, from, -1
	}

	n := 0

	for d := from.AddDate(0, 0, 1); !d.After(to); d = d.AddDate(0, 0, 1) {
		if !weekend(d) {
			n++
		}
	}

	return sign * n
}

// AddDuration moves the date d by sign*dur. Calendar components step
// through months with end-of-month clamping, business days skip weekends,
// and exact components add elapsed time.
func AddDuration(d Value, dur Duration, sign float64) (Value, error) {
	t := d.Time

	whole, frac := math.Modf(sign * (dur.Years*12 + dur.Months))
	t = AddMonths(t, int(whole))

	if dur.Business != 0 {
		if dur.Business != math.Trunc(dur.Business) {
			return Value{}, ErrInvalidArgument.Detail(
				"cannot add a fractional number of business days to a date")
		}

		t = AddBusinessDays(t, int(sign*dur.Business))
	}

	clock := d.Clock

	if secs := sign*dur.Seconds + frac*unit.SecondsPerMonth; secs != 0 {
		days := math.Floor(secs / unit.Day.Factor)
		rest := secs - days*unit.Day.Factor

		if math.Abs(days) > 1e7 {
			return Value{}, ErrInvalidArgument.Detail("date out of range")
		}

		t = t.AddDate(0, 0, int(days)).Add(time.Duration(math.Round(rest * 1e9)))
		clock = clock || rest != 0
	}

	return Date(t, clock), nil
}

// durationOf extracts a duration from a Duration or a time-dimensioned
// Quantity.
func durationOf(v Value) (Duration, bool) {
	switch v.Type {
	case TypeDuration:
		return v.Duration, true
	case TypeQuantity:
		if !v.Unit.Dim().Is(unit.Time) {
			return Duration{}, false
		}

		return Duration{Seconds: unit.Canonical(v.Num, v.Unit)}, true
	default:
		return Duration{}, false
	}
}

// shiftDate computes date ± x, where x is a duration or, for subtraction,
// another date.
func shiftDate(date, x Value, sign float64) (Value, error) {
	if x.Type == TypeDate {
		if sign > 0 {
			return Value{}, ErrIncompatibleTypes.Detail("cannot add two dates")
		}

		return subDates(date, x), nil
	}

	dur, ok := durationOf(x)
	if !ok {
		return Value{}, ErrIncompatibleTypes.Detail(
			"cannot %s a %s and a date; use a duration such as 3 days",
			verb(sign), x.Type)
	}

	return AddDuration(date, dur, sign)
}

// subDates returns the exact duration from b to a. Whole dates measure in
// days.
func subDates(a, b Value) Value {
	secs := float64(a.Time.Unix()-b.Time.Unix()) +
		float64(a.Time.Nanosecond()-b.Time.Nanosecond())/1e9

	d := Duration{Seconds: secs}
	if !a.Clock && !b.Clock {
		d.Unit = unit.Day
	}

	return Value{Type: TypeDuration, Duration: d}
}

// refMidnight is the instant times of day in UTC are measured from.
var refMidnight = time.Date(refYear, refMonth, refDay, 0, 0, 0, 0, time.UTC)

// clockSeconds returns the wall-clock seconds since midnight of v.
func clockSeconds(v Value) float64 {
	h, m, s := v.Time.Clock()

	return float64(h*3600+m*60+s) + float64(v.Time.Nanosecond())/1e9
}

// instant returns the seconds between the UTC reference midnight and v,
// including rollover days.
func instant(v Value) float64 {
	return v.Time.Sub(refMidnight).Seconds() + float64(v.Rollover)*unit.Day.Factor
}

// shiftClock adds sign*x to a time of day, wrapping past midnight and
// counting the days crossed in Rollover.
func shiftClock(clock, x Value, sign float64) (Value, error) {
	dur, ok := durationOf(x)
	if !ok {
		return Value{}, ErrIncompatibleTypes.Detail(
			"cannot %s a %s and a time; use a duration such as 2 h",
			verb(sign), x.Type)
	}

	if dur.Calendar() || dur.Business != 0 {
		return Value{}, ErrIncompatibleTypes.Detail(
			"cannot %s months, years or business days to a time of day", verb(sign))
	}

	total := clockSeconds(clock) + sign*dur.Seconds
	days := math.Floor(total / unit.Day.Factor)
	rest := total - days*unit.Day.Factor

	midnight := time.Date(refYear, refMonth, refDay, 0, 0, 0, 0, clock.Time.Location())
	clock.Time = midnight.Add(time.Duration(math.Round(rest * 1e9)))
	clock.Rollover += int(days)

	return clock, nil
}

// subClocks returns the elapsed time from b to a, honoring zones and
// rollover.
func subClocks(a, b Value) Value {
	return Value{Type: TypeDuration, Duration: Duration{Seconds: instant(a) - instant(b)}}
}

// InZone expresses a date or time in loc. A time of day that crosses
// midnight in the conversion gains or loses a rollover day.
func InZone(v Value, loc *time.Location) (Value, error) {
	switch v.Type {
	case TypeList:
		return Map(v, func(it Value) (Value, error) { return InZone(it, loc) })
	case TypeDate:
		if !v.Clock {
			y, m, d := v.Time.Date()

			return Date(time.Date(y, m, d, 0, 0, 0, 0, loc), false), nil
		}

		return Date(v.Time.In(loc), true), nil
	case TypeTime:
		t := v.Time.In(loc)

		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		ref := time.Date(refYear, refMonth, refDay, 0, 0, 0, 0, time.UTC)
		v.Rollover += int(day.Sub(ref).Hours() / 24)

		v.Time = time.Date(refYear, refMonth, refDay,
			t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)

		return v, nil
	case TypeError:
		return Value{}, v.Err
	}

	return Value{}, ErrIncompatibleTypes.Detail("a %s has no time zone", v.Type)
}
