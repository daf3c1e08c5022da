package lang

import (
	"strconv"
	"strings"

	"github.com/ardnew/calcpad/value"
)

// Span is a half-open byte range [Start, End) within a line.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end"   yaml:"end"`
}

// Expr is an expression in the syntax tree.
type Expr interface {
	Pos() Span
	String() string
}

// UnitTerm names one unit of a compound unit with its power.
type UnitTerm struct {
	Name  string
	Power int
}

// UnitSpec is a compound unit as written, e.g. km/h is
// [{km 1} {h -1}]. Names are resolved during evaluation.
type UnitSpec []UnitTerm

func (u UnitSpec) String() string {
	var b strings.Builder

	for i, t := range u {
		switch {
		case i == 0 && t.Power < 0:
			b.WriteString("1/")
		case t.Power < 0:
			b.WriteString("/")
		case i > 0:
			b.WriteString("*")
		}

		b.WriteString(t.Name)

		if p := abs(t.Power); p != 1 {
			b.WriteString("^" + strconv.Itoa(p))
		}
	}

	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}

	return n
}

type (
	// Number is a numeric literal.
	Number struct {
		Span
		Value float64
	}

	// Percent is a percentage literal such as 15%.
	Percent struct {
		Span
		Value float64 // 15 for 15%
	}

	// Measure attaches a unit or currency to an operand: 5 km, $12, 20 EUR.
	Measure struct {
		Span
		X    Expr
		Unit UnitSpec
	}

	// DateLit is a calendar date with an optional clock and zone.
	DateLit struct {
		Span
		Year, Month, Day int
		Clock            *TimeLit
		Zone             string
	}

	// TimeLit is a time of day.
	TimeLit struct {
		Span
		Hour, Minute int
		Second       float64
		Twelve       bool
		Zone         string
	}

	// Ident references a binding or a builtin constant. Names may contain
	// single spaces between words.
	Ident struct {
		Span
		Name string
	}

	// Unary is a prefix minus.
	Unary struct {
		Span
		X Expr
	}

	// Binary is an arithmetic operation.
	Binary struct {
		Span
		Op   value.Op
		L, R Expr
	}

	// PercentOf applies a percentage: P of X, P on X, P off X.
	PercentOf struct {
		Span
		P, X Expr
		Rel  Relation
	}

	// RateOf asks what percentage A is: A as % [of|on|off B],
	// A is what % of|on|off B.
	RateOf struct {
		Span
		A, B Expr // B is nil for "A as %"
		Rel  Relation
	}

	// BaseOf solves for the base: A is P of|on|off what.
	BaseOf struct {
		Span
		A, P Expr
		Rel  Relation
	}

	// Convert expresses X in a target unit, as a percentage, or in a zone.
	Convert struct {
		Span
		X      Expr
		Target Target
	}

	// ListLit is a comma-separated list.
	ListLit struct {
		Span
		Items []Expr
	}

	// RangeLit expands Start..End [step Step].
	RangeLit struct {
		Span
		Start, End Expr
		Step       Expr
	}

	// Index selects one item: X[I].
	Index struct {
		Span
		X, I Expr
	}

	// Slice selects items From through To inclusive: X[From..To].
	Slice struct {
		Span
		X, From, To Expr
	}

	// Where filters a list: X where > Y.
	Where struct {
		Span
		X, Y Expr
		Cmp  value.Cmp
	}

	// Call invokes a builtin or user function.
	Call struct {
		Span
		Name string
		Args []Arg
	}
)

// Arg is a call argument, optionally named: f(1, y: 2).
type Arg struct {
	Value Expr
	Name  string
}

// Relation distinguishes the percentage phrases.
type Relation int

const (
	RelOf  Relation = iota // of
	RelOn                  // on
	RelOff                 // off
	RelAs                  // as
)

var relName = [...]string{RelOf: "of", RelOn: "on", RelOff: "off", RelAs: "as"}

func (r Relation) String() string { return relName[r] }

// TargetKind selects what a conversion produces.
type TargetKind int

const (
	TargetUnit    TargetKind = iota // unit
	TargetPercent                   // %
	TargetZone                      // zone
)

// Target is the right side of "to" or "in".
type Target struct {
	Zone string
	Unit UnitSpec
	Kind TargetKind
}

func (t Target) String() string {
	switch t.Kind {
	case TargetPercent:
		return "%"
	case TargetZone:
		return t.Zone
	default:
		return t.Unit.String()
	}
}

// Pos returns the span of the node.
func (s Span) Pos() Span { return s }

func (e *Number) String() string { return strconv.FormatFloat(e.Value, 'g', -1, 64) }

func (e *Percent) String() string {
	return strconv.FormatFloat(e.Value, 'g', -1, 64) + "%"
}

func (e *Measure) String() string { return e.X.String() + " " + e.Unit.String() }

func (e *DateLit) String() string {
	s := pad(e.Year, 4) + "-" + pad(e.Month, 2) + "-" + pad(e.Day, 2)
	if e.Clock != nil {
		s += " " + e.Clock.String()
	}

	if e.Zone != "" {
		s += " " + e.Zone
	}

	return s
}

func (e *TimeLit) String() string {
	s := pad(e.Hour, 2) + ":" + pad(e.Minute, 2)
	if e.Second != 0 {
		s += ":" + pad(int(e.Second), 2)
	}

	if e.Zone != "" {
		s += " " + e.Zone
	}

	return s
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	for len(s) < width {
		s = "0" + s
	}

	return s
}

func (e *Ident) String() string { return e.Name }

func (e *Unary) String() string { return "-" + e.X.String() }

func (e *Binary) String() string {
	return "(" + e.L.String() + " " + e.Op.String() + " " + e.R.String() + ")"
}

func (e *PercentOf) String() string {
	return e.P.String() + " " + e.Rel.String() + " " + e.X.String()
}

func (e *RateOf) String() string {
	if e.B == nil {
		return e.A.String() + " as %"
	}

	return e.A.String() + " as % " + e.Rel.String() + " " + e.B.String()
}

func (e *BaseOf) String() string {
	return e.A.String() + " is " + e.P.String() + " " + e.Rel.String() + " what"
}

func (e *Convert) String() string { return e.X.String() + " to " + e.Target.String() }

func (e *ListLit) String() string {
	items := make([]string, len(e.Items))
	for i, it := range e.Items {
		items[i] = it.String()
	}

	return strings.Join(items, ", ")
}

func (e *RangeLit) String() string {
	s := e.Start.String() + ".." + e.End.String()
	if e.Step != nil {
		s += " step " + e.Step.String()
	}

	return s
}

func (e *Index) String() string { return e.X.String() + "[" + e.I.String() + "]" }

func (e *Slice) String() string {
	return e.X.String() + "[" + e.From.String() + ".." + e.To.String() + "]"
}

func (e *Where) String() string {
	return e.X.String() + " where " + e.Cmp.String() + " " + e.Y.String()
}

func (e *Call) String() string {
	args := make([]string, len(e.Args))

	for i, a := range e.Args {
		args[i] = a.Value.String()
		if a.Name != "" {
			args[i] = a.Name + ": " + args[i]
		}
	}

	return e.Name + "(" + strings.Join(args, ", ") + ")"
}

// Walk calls fn for e and each of its subexpressions in depth-first order,
// stopping early when fn returns false.
func Walk(e Expr, fn func(Expr) bool) bool {
	if e == nil {
		return true
	}

	if !fn(e) {
		return false
	}

	var kids []Expr

	switch e := e.(type) {
	case *Measure:
		kids = []Expr{e.X}
	case *DateLit:
		if e.Clock != nil {
			kids = []Expr{e.Clock}
		}
	case *Unary:
		kids = []Expr{e.X}
	case *Binary:
		kids = []Expr{e.L, e.R}
	case *PercentOf:
		kids = []Expr{e.P, e.X}
	case *RateOf:
		kids = []Expr{e.A, e.B}
	case *BaseOf:
		kids = []Expr{e.A, e.P}
	case *Convert:
		kids = []Expr{e.X}
	case *ListLit:
		kids = e.Items
	case *RangeLit:
		kids = []Expr{e.Start, e.End, e.Step}
	case *Index:
		kids = []Expr{e.X, e.I}
	case *Slice:
		kids = []Expr{e.X, e.From, e.To}
	case *Where:
		kids = []Expr{e.X, e.Y}
	case *Call:
		for _, a := range e.Args {
			kids = append(kids, a.Value)
		}
	}

	for _, k := range kids {
		if !Walk(k, fn) {
			return false
		}
	}

	return true
}
