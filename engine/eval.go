package engine

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/ardnew/calcpad/lang"
	"github.com/ardnew/calcpad/unit"
	"github.com/ardnew/calcpad/value"
)

// pass is the state of one evaluation of a document.
type pass struct {
	ctx    context.Context
	eng    *Engine
	store  *store
	units  *unit.Registry
	now    time.Time
	frames frames

	// defining is the name the current line binds, and calls the user
	// functions active on the current line, outermost first.
	defining string
	calls    []string
}

func newPass(ctx context.Context, e *Engine) *pass {
	return &pass{
		ctx:   ctx,
		eng:   e,
		store: newStore(),
		units: e.registry(),
		now:   e.clock().In(e.loc),
	}
}

// evalLine evaluates the expression of n.
func (p *pass) evalLine(n *lang.Node) (value.Value, error) {
	p.defining, p.calls, p.frames = n.Name, nil, nil

	v, err := p.eval(n.Expr)
	if err == nil && v.Type == value.TypeError {
		err = v.Err
	}

	return v, err
}

func (p *pass) eval(e lang.Expr) (value.Value, error) {
	switch e := e.(type) {
	case *lang.Number:
		return value.Number(e.Value), nil
	case *lang.Percent:
		return value.Percentage(e.Value / 100), nil
	case *lang.Measure:
		return p.measure(e)
	case *lang.DateLit:
		return p.date(e)
	case *lang.TimeLit:
		return p.clock(e)
	case *lang.Ident:
		return p.ident(e.Name)
	case *lang.Unary:
		x, err := p.eval(e.X)
		if err != nil {
			return value.Value{}, err
		}

		return value.Neg(x)
	case *lang.Binary:
		l, r, err := p.eval2(e.L, e.R)
		if err != nil {
			return value.Value{}, err
		}

		return value.Binary(e.Op, l, r)
	case *lang.PercentOf:
		return p.percentOf(e)
	case *lang.RateOf:
		return p.rateOf(e)
	case *lang.BaseOf:
		return p.baseOf(e)
	case *lang.Convert:
		return p.convert(e)
	case *lang.ListLit:
		return p.list(e)
	case *lang.RangeLit:
		return p.rangeList(e)
	case *lang.Index:
		return p.index(e)
	case *lang.Slice:
		return p.slice(e)
	case *lang.Where:
		x, y, err := p.eval2(e.X, e.Y)
		if err != nil {
			return value.Value{}, err
		}

		return value.Filter(x, e.Cmp, y)
	case *lang.Call:
		return p.call(e)
	}

	return value.Value{}, value.ErrInvalidArgument.Detail("cannot evaluate %s", e)
}

func (p *pass) eval2(a, b lang.Expr) (value.Value, value.Value, error) {
	x, err := p.eval(a)
	if err != nil {
		return value.Value{}, value.Value{}, err
	}

	y, err := p.eval(b)
	if err != nil {
		return value.Value{}, value.Value{}, err
	}

	return x, y, nil
}

// compound resolves a unit as written.
func (p *pass) compound(spec lang.UnitSpec) (unit.Compound, error) {
	c := make(unit.Compound, 0, len(spec))

	for _, t := range spec {
		u, ok := p.units.Lookup(t.Name)
		if !ok {
			return nil, value.ErrInvalidArgument.Detail("unknown unit %s", t.Name)
		}

		c = append(c, unit.Term{Unit: u, Power: t.Power})
	}

	return c, nil
}

func (p *pass) measure(e *lang.Measure) (value.Value, error) {
	x, err := p.eval(e.X)
	if err != nil {
		return value.Value{}, err
	}

	c, err := p.compound(e.Unit)
	if err != nil {
		return value.Value{}, err
	}

	if x.Type == value.TypeNumber {
		return value.Quantity(x.Num, c), nil
	}

	return value.Binary(value.OpMul, x, value.Quantity(1, c))
}

// zone returns the location named by zone, or the engine's zone.
func (p *pass) zone(zone string) (*time.Location, error) {
	if zone == "" {
		return p.eng.loc, nil
	}

	loc, ok := value.Zone(zone)
	if !ok {
		return nil, value.ErrInvalidArgument.Detail("unknown time zone %s", zone)
	}

	return loc, nil
}

func (p *pass) date(e *lang.DateLit) (value.Value, error) {
	loc, err := p.zone(e.Zone)
	if err != nil {
		return value.Value{}, err
	}

	if e.Clock == nil {
		return value.Date(time.Date(e.Year, time.Month(e.Month), e.Day, 0, 0, 0, 0, loc), false), nil
	}

	sec, frac := math.Modf(e.Clock.Second)
	t := time.Date(e.Year, time.Month(e.Month), e.Day,
		e.Clock.Hour, e.Clock.Minute, int(sec), int(frac*1e9), loc)

	return value.Date(t, true), nil
}

func (p *pass) clock(e *lang.TimeLit) (value.Value, error) {
	loc, err := p.zone(e.Zone)
	if err != nil {
		return value.Value{}, err
	}

	return value.Clock(e.Hour, e.Minute, e.Second, loc, e.Twelve), nil
}

// ident resolves a name: call frames first, then the store, then builtin
// constants.
func (p *pass) ident(name string) (value.Value, error) {
	if v, ok := p.frames.lookup(name); ok {
		return v, nil
	}

	if v, ok := p.store.lookup(name); ok {
		return v, nil
	}

	if p.store.failed(name) {
		return value.Value{}, value.ErrUndefinedVariable.Detail("%s", name)
	}

	if c, ok := constants[name]; ok {
		return c(p), nil
	}

	if name == p.defining {
		path := append(append([]string{name}, p.calls...), name)

		return value.Value{}, value.ErrCircularDependency.Detail("%s",
			strings.Join(path, " -> "))
	}

	return value.Value{}, value.ErrUndefinedVariable.Detail("%s", name)
}

// ratio returns the percentage p as a ratio.
func ratio(v value.Value, phrase string) (float64, error) {
	if v.Type != value.TypePercentage {
		return 0, value.ErrIncompatibleTypes.Detail("%s needs a percentage, got a %s",
			phrase, v.Type)
	}

	return v.Num, nil
}

// percentOf applies P of X = X·P, P on X = X·(1+P), P off X = X·(1−P).
func (p *pass) percentOf(e *lang.PercentOf) (value.Value, error) {
	pv, x, err := p.eval2(e.P, e.X)
	if err != nil {
		return value.Value{}, err
	}

	r, err := ratio(pv, e.Rel.String())
	if err != nil {
		return value.Value{}, err
	}

	switch e.Rel {
	case lang.RelOn:
		r = 1 + r
	case lang.RelOff:
		r = 1 - r
	}

	if x.Type == value.TypePercentage {
		return value.Percentage(x.Num * r), nil
	}

	return value.Binary(value.OpMul, x, value.Number(r))
}

// rateOf answers "A as %" and "what percentage of B is A".
func (p *pass) rateOf(e *lang.RateOf) (value.Value, error) {
	a, err := p.eval(e.A)
	if err != nil {
		return value.Value{}, err
	}

	if e.B == nil {
		return asPercentage(a)
	}

	b, err := p.eval(e.B)
	if err != nil {
		return value.Value{}, err
	}

	q, err := value.Binary(value.OpDiv, a, b)
	if err != nil {
		return value.Value{}, err
	}

	if q.Type != value.TypeNumber {
		return value.Value{}, value.ErrIncompatibleDimensions.Detail(
			"cannot express a %s as a percentage of a %s", value.ClassOf(a), value.ClassOf(b))
	}

	switch e.Rel {
	case lang.RelOn:
		return value.Percentage(q.Num - 1), nil
	case lang.RelOff:
		return value.Percentage(1 - q.Num), nil
	default:
		return value.Percentage(q.Num), nil
	}
}

func asPercentage(v value.Value) (value.Value, error) {
	switch v.Type {
	case value.TypeList:
		return value.Map(v, asPercentage)
	case value.TypeNumber:
		return value.Percentage(v.Num), nil
	case value.TypePercentage:
		return v, nil
	}

	return value.Value{}, value.ErrIncompatibleTypes.Detail(
		"cannot express a %s as a percentage", v.Type)
}

// baseOf solves A is P of what: A/P, A/(1+P) or A/(1−P).
func (p *pass) baseOf(e *lang.BaseOf) (value.Value, error) {
	a, pv, err := p.eval2(e.A, e.P)
	if err != nil {
		return value.Value{}, err
	}

	r, err := ratio(pv, "is "+e.Rel.String()+" what")
	if err != nil {
		return value.Value{}, err
	}

	switch e.Rel {
	case lang.RelOn:
		r = 1 + r
	case lang.RelOff:
		r = 1 - r
	}

	return value.Binary(value.OpDiv, a, value.Number(r))
}

func (p *pass) convert(e *lang.Convert) (value.Value, error) {
	x, err := p.eval(e.X)
	if err != nil {
		return value.Value{}, err
	}

	switch e.Target.Kind {
	case lang.TargetPercent:
		return asPercentage(x)
	case lang.TargetZone:
		loc, err := p.zone(e.Target.Zone)
		if err != nil {
			return value.Value{}, err
		}

		return value.InZone(x, loc)
	}

	spec := e.Target.Unit
	if isMinuteShorthand(x, spec) {
		spec = lang.UnitSpec{{Name: "min", Power: 1}}
	}

	c, err := p.compound(spec)
	if err != nil {
		return value.Value{}, err
	}

	return value.Convert(x, c)
}

// isMinuteShorthand reports whether "to m" applied to a duration means
// minutes rather than metres.
func isMinuteShorthand(x value.Value, spec lang.UnitSpec) bool {
	if len(spec) != 1 || spec[0].Name != "m" || spec[0].Power != 1 {
		return false
	}

	if x.Type == value.TypeList && len(x.Items) > 0 {
		x = x.Items[0]
	}

	return x.Type == value.TypeDuration
}

func (p *pass) list(e *lang.ListLit) (value.Value, error) {
	if limit := p.eng.cfg.MaxListSize; len(e.Items) > limit {
		return value.Value{}, value.ErrRangeTooLarge.Detail(
			"%d items exceed the limit of %d", len(e.Items), limit)
	}

	items := make([]value.Value, len(e.Items))

	for i, it := range e.Items {
		v, err := p.eval(it)
		if err != nil {
			return value.Value{}, err
		}

		items[i] = v
	}

	return value.List(items...)
}

func (p *pass) rangeList(e *lang.RangeLit) (value.Value, error) {
	lo, hi, err := p.eval2(e.Start, e.End)
	if err != nil {
		return value.Value{}, err
	}

	var step *value.Value

	if e.Step != nil {
		s, err := p.eval(e.Step)
		if err != nil {
			return value.Value{}, err
		}

		step = &s
	}

	return value.Range(lo, hi, step, p.eng.cfg.MaxListSize)
}

// position evaluates a list index, which must be a whole number.
func (p *pass) position(e lang.Expr) (int, error) {
	v, err := p.eval(e)
	if err != nil {
		return 0, err
	}

	i, ok := v.Integer()
	if !ok {
		return 0, value.ErrInvalidArgument.Detail("index must be a whole number, got %s",
			p.eng.format.Value(v))
	}

	return i, nil
}

func (p *pass) index(e *lang.Index) (value.Value, error) {
	x, err := p.eval(e.X)
	if err != nil {
		return value.Value{}, err
	}

	i, err := p.position(e.I)
	if err != nil {
		return value.Value{}, err
	}

	return value.Index(x, i)
}

func (p *pass) slice(e *lang.Slice) (value.Value, error) {
	x, err := p.eval(e.X)
	if err != nil {
		return value.Value{}, err
	}

	from, err := p.position(e.From)
	if err != nil {
		return value.Value{}, err
	}

	to, err := p.position(e.To)
	if err != nil {
		return value.Value{}, err
	}

	return value.Slice(x, from, to)
}

// call invokes a user function, which shadows any builtin of the same
// name, or a builtin.
func (p *pass) call(e *lang.Call) (value.Value, error) {
	if fn, ok := p.store.function(e.Name); ok {
		return p.invoke(fn, e)
	}

	b, ok := builtins[e.Name]
	if !ok {
		return value.Value{}, value.ErrUndefinedFunction.Detail("%s", e.Name)
	}

	args := make([]value.Value, len(e.Args))

	for i, a := range e.Args {
		if a.Name != "" {
			return value.Value{}, value.ErrArityMismatch.Detail(
				"%s has no parameter %s", e.Name, a.Name)
		}

		v, err := p.eval(a.Value)
		if err != nil {
			return value.Value{}, err
		}

		args[i] = v
	}

	if err := b.arity(e.Name, len(args)); err != nil {
		return value.Value{}, err
	}

	return b.fn(p, args)
}

// invoke binds arguments positionally and by name, fills defaults, and
// evaluates the body of fn under the dynamic scope of the call.
func (p *pass) invoke(fn *lang.Node, e *lang.Call) (value.Value, error) {
	if len(p.calls) >= p.eng.cfg.MaxCallDepth {
		return value.Value{}, value.ErrMaxCallDepthExceeded.Detail(
			"%s nested deeper than %d calls", fn.Name, p.eng.cfg.MaxCallDepth)
	}

	frame := make(map[string]value.Value, len(fn.Params))
	positional := 0

	for _, a := range e.Args {
		name := a.Name

		if name == "" {
			if positional >= len(fn.Params) {
				return value.Value{}, value.ErrArityMismatch.Detail(
					"%s takes %d arguments, got %d", fn.Name, len(fn.Params), len(e.Args))
			}

			name = fn.Params[positional].Name
			positional++
		} else if !hasParam(fn, name) {
			return value.Value{}, value.ErrArityMismatch.Detail(
				"%s has no parameter %s", fn.Name, name)
		}

		if _, dup := frame[name]; dup {
			return value.Value{}, value.ErrArityMismatch.Detail(
				"%s: parameter %s given twice", fn.Name, name)
		}

		v, err := p.eval(a.Value)
		if err != nil {
			return value.Value{}, err
		}

		frame[name] = v
	}

	p.frames = append(p.frames, frame)
	p.calls = append(p.calls, fn.Name)

	defer func() {
		p.frames = p.frames[:len(p.frames)-1]
		p.calls = p.calls[:len(p.calls)-1]
	}()

	for _, param := range fn.Params {
		if _, ok := frame[param.Name]; ok {
			continue
		}

		if param.Default == nil {
			return value.Value{}, value.ErrArityMismatch.Detail(
				"%s: missing argument %s", fn.Name, param.Name)
		}

		v, err := p.eval(param.Default)
		if err != nil {
			return value.Value{}, err
		}

		frame[param.Name] = v
	}

	return p.eval(fn.Expr)
}

func hasParam(fn *lang.Node, name string) bool {
	for _, p := range fn.Params {
		if p.Name == name {
			return true
		}
	}

	return false
}
