package value

import (
	"errors"
	"testing"
	"time"

	"github.com/ardnew/calcpad/unit"
)

func day(y int, m time.Month, d int) Value {
	return Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC), false)
}

func TestAddDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		date Value
		dur  Value
		sign float64
		want string
	}{
		{"month clamps", day(2024, 1, 31), qty(t, 1, "month"), 1, "2024-02-29"},
		{"exact days", day(2024, 1, 31), qty(t, 30, "days"), 1, "2024-03-01"},
		{"year from leap day", day(2024, 2, 29), qty(t, 1, "year"), 1, "2025-02-28"},
		{"subtract months", day(2024, 3, 31), qty(t, 1, "month"), -1, "2024-02-29"},
		{"across years", day(2024, 11, 15), qty(t, 3, "months"), 1, "2025-02-15"},
		{"weeks", day(2024, 1, 1), qty(t, 2, "weeks"), 1, "2024-01-15"},
		{"business days over weekend", day(2024, 1, 5), qty(t, 1, "business day"), 1, "2024-01-08"},
		{"business days from saturday", day(2024, 1, 6), qty(t, 5, "business days"), 1, "2024-01-12"},
		{"business weeks", day(2024, 1, 3), qty(t, 10, "workdays"), 1, "2024-01-17"},
		{"business days backwards", day(2024, 1, 8), qty(t, 1, "workday"), -1, "2024-01-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := AddDuration(tt.date, tt.dur.Duration, tt.sign)
			if err != nil {
				t.Fatal(err)
			}

			if s := got.Time.Format(time.DateOnly); s != tt.want {
				t.Errorf("got %s, want %s", s, tt.want)
			}

			if got.Clock {
				t.Error("whole-day arithmetic gained a clock")
			}
		})
	}
}

func TestBinary_Dates(t *testing.T) {
	t.Parallel()

	diff, err := Binary(OpSub, day(2024, 3, 1), day(2024, 1, 31))
	if err != nil {
		t.Fatal(err)
	}

	if diff.Type != TypeDuration || diff.Duration.DisplayUnit() != unit.Day ||
		diff.Duration.In(unit.Day) != 30 {
		t.Errorf("date - date = %+v", diff.Duration)
	}

	if _, err := Binary(OpAdd, day(2024, 1, 1), day(2024, 1, 2)); !errors.Is(err, ErrIncompatibleTypes) {
		t.Errorf("date + date: error = %v", err)
	}

	if _, err := Binary(OpAdd, day(2024, 1, 1), Number(3)); !errors.Is(err, ErrIncompatibleTypes) {
		t.Errorf("date + number: error = %v", err)
	}

	later, err := Binary(OpAdd, qty(t, 36, "h"), day(2024, 1, 1))
	if err != nil {
		t.Fatal(err)
	}

	if !later.Clock || later.Time.Format(time.DateTime) != "2024-01-02 12:00:00" {
		t.Errorf("36 h + date = %v (clock %v)", later.Time, later.Clock)
	}
}

func TestBinary_Clocks(t *testing.T) {
	t.Parallel()

	late := Clock(23, 0, 0, nil, false)

	got, err := Binary(OpAdd, late, qty(t, 2, "h"))
	if err != nil {
		t.Fatal(err)
	}

	if h, m, _ := got.Time.Clock(); h != 1 || m != 0 || got.Rollover != 1 {
		t.Errorf("23:00 + 2 h = %02d:%02d rollover %d", h, m, got.Rollover)
	}

	early, err := Binary(OpSub, Clock(0, 30, 0, nil, false), qty(t, 1, "h"))
	if err != nil {
		t.Fatal(err)
	}

	if h, m, _ := early.Time.Clock(); h != 23 || m != 30 || early.Rollover != -1 {
		t.Errorf("00:30 - 1 h = %02d:%02d rollover %d", h, m, early.Rollover)
	}

	span, err := Binary(OpSub, Clock(17, 30, 0, nil, false), Clock(9, 0, 0, nil, false))
	if err != nil {
		t.Fatal(err)
	}

	if span.Type != TypeDuration || span.Duration.Seconds != 8.5*3600 {
		t.Errorf("17:30 - 9:00 = %+v", span.Duration)
	}

	if _, err := Binary(OpAdd, late, late); !errors.Is(err, ErrIncompatibleTypes) {
		t.Errorf("time + time: error = %v", err)
	}

	if _, err := Binary(OpAdd, late, qty(t, 1, "month")); !errors.Is(err, ErrIncompatibleTypes) {
		t.Errorf("time + month: error = %v", err)
	}
}

func TestInZone(t *testing.T) {
	t.Parallel()

	pst, ok := Zone("PST")
	if !ok {
		t.Fatal("PST not found")
	}

	got, err := InZone(Clock(3, 0, 0, nil, false), pst)
	if err != nil {
		t.Fatal(err)
	}

	if h, _, _ := got.Time.Clock(); h != 19 || got.Rollover != -1 {
		t.Errorf("03:00 UTC in PST = %d:00 rollover %d", h, got.Rollover)
	}

	for _, name := range []string{"UTC+5:30", "GMT-3", "+0800", "JST"} {
		if !IsZone(name) {
			t.Errorf("IsZone(%q) = false", name)
		}
	}

	for _, name := range []string{"pst", "UTC+15", "+5:7", "km"} {
		if IsZone(name) {
			t.Errorf("IsZone(%q) = true", name)
		}
	}

	ist, _ := Zone("UTC+5:30")
	if _, off := time.Date(2024, 1, 1, 0, 0, 0, 0, ist).Zone(); off != 5*3600+30*60 {
		t.Errorf("UTC+5:30 offset = %d", off)
	}
}

func TestBusinessDaysBetween(t *testing.T) {
	t.Parallel()

	from := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	if got := BusinessDaysBetween(from, to); got != 6 {
		t.Errorf("got %d, want 6", got)
	}

	if got := BusinessDaysBetween(to, from); got != -6 {
		t.Errorf("reversed: got %d, want -6", got)
	}
}
