package unit

import (
	"errors"
	"math"
	"testing"
)

func mustLookup(t *testing.T, name string) *Unit {
	t.Helper()

	u, ok := Lookup(name)
	if !ok {
		t.Fatalf("unit %q not found", name)
	}

	return u
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, want string
	}{
		{"km", "km"},
		{"kilometres", "km"},
		{"Kilometers", "km"},
		{"hours", "h"},
		{"mins", "min"},
		{"days", "day"},
		{"degC", "°C"},
		{"business days", "business day"},
		{"workday", "business day"},
	}

	for _, tt := range tests {
		if got := mustLookup(t, tt.name).Symbol; got != tt.want {
			t.Errorf("Lookup(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}

	if _, ok := Lookup("furlongs per fortnight"); ok {
		t.Error("unexpected unit")
	}
}

func TestConvert_RoundTrip(t *testing.T) {
	t.Parallel()

	groups := [][]string{
		{"m", "km", "cm", "mi", "ft", "inch", "nmi"},
		{"kg", "g", "lb", "oz", "st"},
		{"s", "min", "h", "day", "week", "month", "year"},
		{"K", "°C", "°F"},
		{"L", "mL", "gal", "m³"},
		{"J", "kcal", "kWh"},
	}

	values := []float64{-40, 0, 1, 3.75, 1234.5678}

	for _, group := range groups {
		for _, a := range group {
			for _, b := range group {
				ua, ub := Single(mustLookup(t, a)), Single(mustLookup(t, b))

				for _, v := range values {
					there, err := Convert(v, ua, ub)
					if err != nil {
						t.Fatalf("Convert(%v %s -> %s): %v", v, a, b, err)
					}

					back, err := Convert(there, ub, ua)
					if err != nil {
						t.Fatalf("Convert(%v %s -> %s): %v", there, b, a, err)
					}

					if !near(back, v) {
						t.Errorf("%v %s -> %s -> %s = %v", v, a, b, a, back)
					}
				}
			}
		}
	}
}

func TestConvert_Temperature(t *testing.T) {
	t.Parallel()

	c, f, k := Single(mustLookup(t, "°C")), Single(mustLookup(t, "°F")), Single(mustLookup(t, "K"))

	tests := []struct {
		v        float64
		from, to Compound
		want     float64
	}{
		{100, c, f, 212},
		{-40, c, f, -40},
		{0, c, k, 273.15},
		{32, f, c, 0},
	}

	for _, tt := range tests {
		got, err := Convert(tt.v, tt.from, tt.to)
		if err != nil {
			t.Fatalf("Convert(%v %s -> %s): %v", tt.v, tt.from, tt.to, err)
		}

		if !near(got, tt.want) {
			t.Errorf("Convert(%v %s -> %s) = %v, want %v", tt.v, tt.from, tt.to, got, tt.want)
		}
	}

	delta := Single(mustLookup(t, "°C").Delta())
	if _, err := Convert(1, c, delta); !errors.Is(err, ErrIncompatible) {
		t.Errorf("absolute to difference: err = %v, want %v", err, ErrIncompatible)
	}
}

func TestConvert_Incompatible(t *testing.T) {
	t.Parallel()

	_, err := Convert(1, Single(mustLookup(t, "km")), Single(mustLookup(t, "kg")))
	if !errors.Is(err, ErrIncompatible) {
		t.Errorf("err = %v, want %v", err, ErrIncompatible)
	}
}

func TestCompound_Mul(t *testing.T) {
	t.Parallel()

	km, h, m, minute := mustLookup(t, "km"), mustLookup(t, "h"), mustLookup(t, "m"), mustLookup(t, "min")

	speed, scale := Single(km).Div(Single(h))
	if scale != 1 || speed.String() != "km/h" {
		t.Fatalf("km/h = %s (scale %v)", speed, scale)
	}

	dist, scale := speed.Mul(Single(minute))
	if dist.String() != "km" || !near(scale, 1.0/60) {
		t.Errorf("km/h * min = %s (scale %v)", dist, scale)
	}

	area, scale := Single(km).Mul(Single(m))
	if area.String() != "km^2" || !near(scale, 1e-3) {
		t.Errorf("km * m = %s (scale %v)", area, scale)
	}

	none, _ := Single(m).Div(Single(m))
	if len(none) != 0 || none.String() != "1" {
		t.Errorf("m/m = %q", none.String())
	}

	root, ok := area.Root(2)
	if !ok || root.String() != "km" {
		t.Errorf("sqrt(km^2) = %s, %v", root, ok)
	}

	if _, ok := Single(km).Root(2); ok {
		t.Error("sqrt(km) should be rejected")
	}
}

func TestCompound_String(t *testing.T) {
	t.Parallel()

	kg, s, k, j := mustLookup(t, "kg"), mustLookup(t, "s"), mustLookup(t, "K"), mustLookup(t, "J")

	accel := Compound{{Unit: mustLookup(t, "m"), Power: 1}, {Unit: s, Power: -2}}
	if got := accel.String(); got != "m/s^2" {
		t.Errorf("accel = %q", got)
	}

	heat := Compound{{Unit: j, Power: 1}, {Unit: kg, Power: -1}, {Unit: k, Power: -1}}
	if got := heat.String(); got != "J/(kg·K)" {
		t.Errorf("specific heat = %q", got)
	}

	if got := (Compound{{Unit: s, Power: -1}}).String(); got != "1/s" {
		t.Errorf("frequency = %q", got)
	}
}
