package unit

import (
	"iter"
	"slices"
	"strings"
)

// Unit is a named scale within one dimension.
//
// A magnitude v in a Unit has canonical magnitude v*Factor + Offset. Only
// absolute temperature scales carry an Offset.
type Unit struct {
	Symbol  string
	Name    string
	Plural  string
	Aliases []string
	Dim     Dimension
	Factor  float64
	Offset  float64

	// Affine marks an absolute temperature scale. Differences between two
	// affine values are measured in the matching non-affine unit.
	Affine bool

	// Calendar marks month and year, whose length depends on the date they
	// are added to.
	Calendar bool

	// Spelled units display their name instead of their symbol, e.g.
	// "3 days" rather than "3 d".
	Spelled bool

	// Business marks the business-day unit, which steps over weekends.
	Business bool

	// Code is the ISO 4217 code of a currency unit.
	Code string
}

// Label returns the text displayed after a magnitude of the unit.
// Spelled units use their plural form unless magnitude is exactly ±1.
func (u *Unit) Label(magnitude float64) string {
	if !u.Spelled {
		return u.Symbol
	}

	if (magnitude == 1 || magnitude == -1) || u.Plural == "" {
		return u.Name
	}

	return u.Plural
}

// IsCurrency reports whether u measures money.
func (u *Unit) IsCurrency() bool { return u.Code != "" }

// IsTime reports whether u measures elapsed time.
func (u *Unit) IsTime() bool { return u.Dim.Is(Time) }

// Delta returns the difference unit paired with an absolute temperature
// scale, or u itself when it is not affine.
func (u *Unit) Delta() *Unit {
	if !u.Affine {
		return u
	}

	if d, ok := deltaOf[u.Symbol]; ok {
		return d
	}

	return u
}

// Absolute returns the absolute temperature scale paired with a difference
// unit, or nil when u has none.
func (u *Unit) Absolute() *Unit {
	for sym, d := range deltaOf {
		if d == u {
			return index[sym]
		}
	}

	return nil
}

// Named units that other packages refer to directly.
var (
	Second *Unit
	Minute *Unit
	Hour   *Unit
	Day    *Unit
	Week   *Unit
	Month  *Unit
	Year   *Unit
	Meter  *Unit

	BusinessDay *Unit
)

var (
	index   map[string]*Unit
	folded  map[string]*Unit
	deltaOf map[string]*Unit
)

func init() {
	index = make(map[string]*Unit, len(table)*4)
	folded = make(map[string]*Unit, len(table)*3)

	for _, u := range table {
		register(u)
	}

	Second = index["s"]
	Minute = index["min"]
	Hour = index["h"]
	Day = index["day"]
	Week = index["week"]
	Month = index["month"]
	Year = index["year"]
	Meter = index["m"]
	BusinessDay = index["business day"]

	deltaOf = map[string]*Unit{
		"K":  index["ΔK"],
		"°C": index["Δ°C"],
		"°F": index["Δ°F"],
	}
}

func register(u *Unit) {
	index[u.Symbol] = u

	for _, name := range append([]string{u.Name, u.Plural}, u.Aliases...) {
		if name == "" {
			continue
		}

		if _, taken := index[name]; !taken {
			index[name] = u
		}

		folded[strings.ToLower(name)] = u
	}
}

// Lookup finds a unit by symbol, name, plural, or alias. Symbols match
// exactly; names also match case-insensitively. Currency codes are not
// resolved here; see [Registry.Lookup].
func Lookup(name string) (*Unit, bool) {
	if u, ok := index[name]; ok {
		return u, true
	}

	u, ok := folded[strings.ToLower(name)]

	return u, ok
}

// IsUnit reports whether name denotes a physical unit or a currency code.
func IsUnit(name string) bool {
	if _, ok := Lookup(name); ok {
		return true
	}

	return IsCurrencyCode(name)
}

// All returns every physical unit ordered by dimension and then by factor.
func All() iter.Seq[*Unit] {
	sorted := slices.Clone(table)

	slices.SortStableFunc(sorted, func(a, b *Unit) int {
		if c := strings.Compare(a.Dim.String(), b.Dim.String()); c != 0 {
			return c
		}

		switch {
		case a.Factor < b.Factor:
			return -1
		case a.Factor > b.Factor:
			return 1
		}

		return 0
	})

	return slices.Values(sorted)
}
