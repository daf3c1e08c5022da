package lang

import (
	"strconv"
	"strings"
	"time"

	"github.com/ardnew/calcpad/unit"
	"github.com/ardnew/calcpad/value"
)

// keywords end multi-word names and are never identifiers.
var keywords = map[string]bool{
	"of":    true,
	"on":    true,
	"off":   true,
	"as":    true,
	"is":    true,
	"to":    true,
	"in":    true,
	"where": true,
	"step":  true,
	"per":   true,
	"mod":   true,
}

// IsKeyword reports whether word is reserved by the grammar.
func IsKeyword(word string) bool { return keywords[word] }

// parser holds the state of one expression parse.
type parser struct {
	src  string
	toks []token
	pos  int
}

// ParseExpr parses a complete expression. Trailing input is an error.
func ParseExpr(src string) (Expr, error) {
	e, perr := parseExpr(src, 0)
	if perr != nil {
		perr.Source = src

		return nil, perr
	}

	return e, nil
}

// parseExpr parses src as an expression whose bytes begin at offset within
// the line.
func parseExpr(src string, offset int) (Expr, *ParseError) {
	toks, err := lex(src)
	if err != nil {
		err.Offset += offset

		return nil, err
	}

	for i := range toks {
		toks[i].start += offset
		toks[i].end += offset
	}

	p := &parser{src: src, toks: toks}

	if p.at(tokEOF) {
		return nil, p.errorf(p.peek(), "empty expression")
	}

	e, perr := p.parseList()
	if perr != nil {
		return nil, perr
	}

	if !p.at(tokEOF) {
		return nil, p.errorf(p.peek(), "unexpected "+strconv.Quote(p.peek().text))
	}

	return e, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) peekN(n int) token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}

	return p.toks[p.pos+n]
}

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}

	return t
}

func (p *parser) at(kind tokenKind) bool { return p.peek().kind == kind }

// isOp reports whether the next token is one of the operators ops.
func (p *parser) isOp(ops ...string) bool {
	t := p.peek()
	if t.kind != tokOp {
		return false
	}

	for _, op := range ops {
		if t.text == op {
			return true
		}
	}

	return false
}

// isWord reports whether the next token is the word w.
func (p *parser) isWord(w string) bool {
	t := p.peek()

	return t.kind == tokWord && t.text == w
}

func (p *parser) expectOp(op string) (token, *ParseError) {
	if !p.isOp(op) {
		return token{}, p.errorf(p.peek(), "expected "+strconv.Quote(op))
	}

	return p.advance(), nil
}

func (p *parser) errorf(at token, msg string) *ParseError {
	return &ParseError{Offset: at.start, Msg: msg}
}

// last returns the end offset of the most recently consumed token.
func (p *parser) last() int {
	if p.pos == 0 {
		return p.toks[0].start
	}

	return p.toks[p.pos-1].end
}

func spanFrom(start int, p *parser) Span { return Span{Start: start, End: p.last()} }

// parseList parses: Where (',' Where)*.
func (p *parser) parseList() (Expr, *ParseError) {
	start := p.peek().start

	first, err := p.parseWhere()
	if err != nil {
		return nil, err
	}

	if !p.isOp(",") {
		return first, nil
	}

	items := []Expr{first}

	for p.isOp(",") {
		p.advance()

		it, err := p.parseWhere()
		if err != nil {
			return nil, err
		}

		items = append(items, it)
	}

	return &ListLit{Span: spanFrom(start, p), Items: items}, nil
}

var comparisons = map[string]value.Cmp{
	"=":  value.CmpEq,
	"==": value.CmpEq,
	"!=": value.CmpNe,
	"<":  value.CmpLt,
	"<=": value.CmpLe,
	">":  value.CmpGt,
	">=": value.CmpGe,
}

// parseWhere parses: Convert ('where' Cmp Convert)*.
func (p *parser) parseWhere() (Expr, *ParseError) {
	start := p.peek().start

	x, err := p.parseConvert()
	if err != nil {
		return nil, err
	}

	for p.isWord("where") {
		p.advance()

		t := p.peek()

		cmp, ok := comparisons[t.text]
		if t.kind != tokOp || !ok {
			return nil, p.errorf(t, "expected a comparison after where")
		}

		p.advance()

		y, err := p.parseConvert()
		if err != nil {
			return nil, err
		}

		x = &Where{Span: spanFrom(start, p), X: x, Y: y, Cmp: cmp}
	}

	return x, nil
}

// parseConvert parses: Percent (('to' | 'in') Target)*.
func (p *parser) parseConvert() (Expr, *ParseError) {
	start := p.peek().start

	x, err := p.parsePercent()
	if err != nil {
		return nil, err
	}

	for p.isWord("to") || p.isWord("in") {
		p.advance()

		target, err := p.parseTarget()
		if err != nil {
			return nil, err
		}

		x = &Convert{Span: spanFrom(start, p), X: x, Target: target}
	}

	return x, nil
}

func (p *parser) parseTarget() (Target, *ParseError) {
	if p.isOp("%") {
		p.advance()

		return Target{Kind: TargetPercent}, nil
	}

	if zone, ok := p.zone(); ok {
		return Target{Kind: TargetZone, Zone: zone}, nil
	}

	spec, ok := p.unitSpec(false)
	if !ok {
		return Target{}, p.errorf(p.peek(), "expected a unit, %, or time zone")
	}

	return Target{Kind: TargetUnit, Unit: spec}, nil
}

func (p *parser) relation() (Relation, bool) {
	for _, r := range []Relation{RelOf, RelOn, RelOff} {
		if p.isWord(r.String()) {
			p.advance()

			return r, true
		}
	}

	return 0, false
}

// parsePercent parses the percentage phrases:
//
//	Range ('of'|'on'|'off') Percent
//	Range 'as' ['a'] '%' [('of'|'on'|'off') Range]
//	Range 'is' 'what' '%' ('of'|'on'|'off') Range
//	Range 'is' Range ('of'|'on'|'off') 'what'
func (p *parser) parsePercent() (Expr, *ParseError) {
	start := p.peek().start

	a, err := p.parseRange()
	if err != nil {
		return nil, err
	}

	if rel, ok := p.relation(); ok {
		x, err := p.parsePercent()
		if err != nil {
			return nil, err
		}

		return &PercentOf{Span: spanFrom(start, p), P: a, X: x, Rel: rel}, nil
	}

	switch {
	case p.isWord("as"):
		p.advance()

		if p.isWord("a") {
			p.advance()
		}

		if _, err := p.expectOp("%"); err != nil {
			return nil, err
		}

		rel, ok := p.relation()
		if !ok {
			return &RateOf{Span: spanFrom(start, p), A: a, Rel: RelAs}, nil
		}

		b, err := p.parseRange()
		if err != nil {
			return nil, err
		}

		return &RateOf{Span: spanFrom(start, p), A: a, B: b, Rel: rel}, nil

	case p.isWord("is"):
		p.advance()

		if p.isWord("what") {
			p.advance()

			if _, err := p.expectOp("%"); err != nil {
				return nil, err
			}

			rel, ok := p.relation()
			if !ok {
				return nil, p.errorf(p.peek(), "expected of, on, or off")
			}

			b, err := p.parseRange()
			if err != nil {
				return nil, err
			}

			return &RateOf{Span: spanFrom(start, p), A: a, B: b, Rel: rel}, nil
		}

		pct, err := p.parseRange()
		if err != nil {
			return nil, err
		}

		rel, ok := p.relation()
		if !ok {
			return nil, p.errorf(p.peek(), "expected of, on, or off")
		}

		if !p.isWord("what") {
			return nil, p.errorf(p.peek(), "expected what")
		}

		p.advance()

		return &BaseOf{Span: spanFrom(start, p), A: a, P: pct, Rel: rel}, nil
	}

	return a, nil
}

// parseRange parses: Additive ['..' Additive ['step' Additive]].
func (p *parser) parseRange() (Expr, *ParseError) {
	start := p.peek().start

	lo, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	if !p.isOp("..") {
		return lo, nil
	}

	p.advance()

	hi, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	r := &RangeLit{Start: lo, End: hi}

	if p.isWord("step") {
		p.advance()

		if r.Step, err = p.parseAdditive(); err != nil {
			return nil, err
		}
	}

	r.Span = spanFrom(start, p)

	return r, nil
}

// parseAdditive parses: Multiplicative (('+'|'-') Multiplicative)*.
func (p *parser) parseAdditive() (Expr, *ParseError) {
	start := p.peek().start

	x, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for p.isOp("+", "-") {
		op := value.OpAdd
		if p.advance().text == "-" {
			op = value.OpSub
		}

		y, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}

		x = &Binary{Span: spanFrom(start, p), Op: op, L: x, R: y}
	}

	return x, nil
}

var multiplicative = map[string]value.Op{
	"*":   value.OpMul,
	"×":   value.OpMul,
	"·":   value.OpMul,
	"/":   value.OpDiv,
	"÷":   value.OpDiv,
	"per": value.OpDiv,
	"mod": value.OpMod,
}

// startsOperand reports whether the next token can begin an implicit
// multiplication operand, as in 2x or 2(3 + 4).
func (p *parser) startsOperand() bool {
	t := p.peek()

	switch t.kind {
	case tokNumber, tokCurrency:
		return true
	case tokWord:
		return !keywords[t.text]
	case tokOp:
		return t.text == "("
	default:
		return false
	}
}

// parseMultiplicative parses: Unary ((op | implicit) Unary)*.
func (p *parser) parseMultiplicative() (Expr, *ParseError) {
	start := p.peek().start

	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		t := p.peek()
		op, explicit := multiplicative[t.text]

		switch {
		case explicit && (t.kind == tokOp || t.kind == tokWord):
			p.advance()
		case p.startsOperand():
			op = value.OpMul
		default:
			return x, nil
		}

		var y Expr

		// per hour, / day: a bare unit after a division is one of that unit.
		if op == value.OpDiv && p.at(tokWord) && !p.nextIsCall() {
			if spec, ok := p.unitSpec(false); ok {
				y = &Measure{Span: spanFrom(t.end, p), X: &Number{Value: 1}, Unit: spec}
			}
		}

		if y == nil {
			if y, err = p.parseUnary(); err != nil {
				return nil, err
			}
		}

		x = &Binary{Span: spanFrom(start, p), Op: op, L: x, R: y}
	}
}

// parseUnary parses: ('-'|'+') Unary | Power.
func (p *parser) parseUnary() (Expr, *ParseError) {
	start := p.peek().start

	switch {
	case p.isOp("-"):
		p.advance()

		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return &Unary{Span: spanFrom(start, p), X: x}, nil
	case p.isOp("+"):
		p.advance()

		return p.parseUnary()
	}

	return p.parsePower()
}

// parsePower parses: Postfix [('^'|'**') Unary].
func (p *parser) parsePower() (Expr, *ParseError) {
	start := p.peek().start

	x, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}

	if !p.isOp("^", "**") {
		return x, nil
	}

	p.advance()

	y, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return &Binary{Span: spanFrom(start, p), Op: value.OpPow, L: x, R: y}, nil
}

// parsePostfix parses: Primary ('[' Additive ['..' Additive] ']')*.
func (p *parser) parsePostfix() (Expr, *ParseError) {
	start := p.peek().start

	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.isOp("[") {
		p.advance()

		i, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}

		if p.isOp("..") {
			p.advance()

			j, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}

			if _, err := p.expectOp("]"); err != nil {
				return nil, err
			}

			x = &Slice{Span: spanFrom(start, p), X: x, From: i, To: j}

			continue
		}

		if _, err := p.expectOp("]"); err != nil {
			return nil, err
		}

		x = &Index{Span: spanFrom(start, p), X: x, I: i}
	}

	return x, nil
}

func (p *parser) nextIsCall() bool {
	return p.at(tokWord) && p.peekN(1).kind == tokOp && p.peekN(1).text == "(" &&
		!p.peekN(1).space
}

func (p *parser) parsePrimary() (Expr, *ParseError) {
	t := p.peek()

	switch t.kind {
	case tokNumber:
		return p.parseNumber()
	case tokCurrency:
		return p.parseCurrency()
	case tokDate:
		return p.parseDate()
	case tokTime:
		return p.parseTime()
	case tokWord:
		return p.parseWord()
	case tokOp:
		if t.text == "(" {
			p.advance()

			x, err := p.parseList()
			if err != nil {
				return nil, err
			}

			if _, err := p.expectOp(")"); err != nil {
				return nil, err
			}

			return x, nil
		}
	case tokEOF:
		return nil, p.errorf(t, "unexpected end of line")
	}

	return nil, p.errorf(t, "unexpected "+strconv.Quote(t.text))
}

func (p *parser) number() (float64, *ParseError) {
	t := p.advance()

	n, err := strconv.ParseFloat(t.text, 64)
	if err != nil {
		return 0, p.errorf(t, "invalid number "+strconv.Quote(t.text))
	}

	return n, nil
}

// parseNumber parses a number with an optional suffix: 15%, 9am, 5 km,
// 20 EUR, or a duration sequence such as 1h 30m.
func (p *parser) parseNumber() (Expr, *ParseError) {
	start := p.peek().start

	n, err := p.number()
	if err != nil {
		return nil, err
	}

	num := &Number{Span: spanFrom(start, p), Value: n}

	switch {
	case p.isOp("%"):
		p.advance()

		return &Percent{Span: spanFrom(start, p), Value: n}, nil
	case p.isWord("am") || p.isWord("pm"):
		if n != float64(int(n)) || n < 1 || n > 12 {
			return nil, p.errorf(p.peek(), "invalid hour for am/pm")
		}

		tl := &TimeLit{Hour: twelveHour(int(n), p.advance().text), Twelve: true}
		tl.Zone, _ = p.zone()
		tl.Span = spanFrom(start, p)

		return tl, nil
	}

	spec, ok := p.unitSpec(false)
	if !ok {
		return num, nil
	}

	var x Expr = &Measure{Span: spanFrom(start, p), X: num, Unit: spec}

	// 1h 30m 15s
	for isDuration(spec) && p.at(tokNumber) {
		save := p.pos

		m, err := p.number()
		if err != nil {
			return nil, err
		}

		next, ok := p.unitSpec(true)
		if !ok || !isDuration(next) {
			p.pos = save

			break
		}

		partStart := p.toks[save].start
		y := &Measure{
			Span: spanFrom(partStart, p),
			X:    &Number{Span: Span{Start: partStart, End: p.toks[save].end}, Value: m},
			Unit: next,
		}
		x = &Binary{Span: spanFrom(start, p), Op: value.OpAdd, L: x, R: y}
		spec = next
	}

	return x, nil
}

func twelveHour(h int, suffix string) int {
	switch {
	case suffix == "am" && h == 12:
		return 0
	case suffix == "pm" && h != 12:
		return h + 12
	default:
		return h
	}
}

// isDuration reports whether spec is a single time unit.
func isDuration(spec UnitSpec) bool {
	if len(spec) != 1 || spec[0].Power != 1 {
		return false
	}

	u, ok := unit.Lookup(spec[0].Name)

	return ok && u.IsTime()
}

// unitWord reads a unit name at the cursor, including two-word names such
// as "business days". In a duration sequence "m" means minute.
func (p *parser) unitWord(inDuration bool) (string, bool) {
	t := p.peek()
	if t.kind != tokWord || keywords[t.text] || p.nextIsCall() {
		return "", false
	}

	if next := p.peekN(1); next.kind == tokWord && !keywords[next.text] {
		if name := t.text + " " + next.text; unit.IsUnit(name) {
			p.advance()
			p.advance()

			return name, true
		}
	}

	if inDuration && t.text == "m" {
		p.advance()

		return "min", true
	}

	if !unit.IsUnit(t.text) {
		return "", false
	}

	p.advance()

	return t.text, true
}

// unitSpec reads a compound unit: Unit ['^' Int] (('/'|'*') Unit ['^' Int])*.
func (p *parser) unitSpec(inDuration bool) (UnitSpec, bool) {
	name, ok := p.unitWord(inDuration)
	if !ok {
		return nil, false
	}

	spec := UnitSpec{{Name: name, Power: p.unitPower()}}

	for p.isOp("/", "*", "·") && p.peekN(1).kind == tokWord {
		save := p.pos
		sign := 1

		if p.advance().text == "/" {
			sign = -1
		}

		name, ok := p.unitWord(false)
		if !ok {
			p.pos = save

			break
		}

		spec = append(spec, UnitTerm{Name: name, Power: sign * p.unitPower()})
	}

	return spec, true
}

// unitPower reads an optional integer exponent glued to a unit: m^2.
func (p *parser) unitPower() int {
	if !p.isOp("^") || p.peek().space {
		return 1
	}

	sign, k := 1, 1
	if p.peekN(1).kind == tokOp && p.peekN(1).text == "-" {
		sign, k = -1, 2
	}

	t := p.peekN(k)
	if t.kind != tokNumber {
		return 1
	}

	n, err := strconv.Atoi(t.text)
	if err != nil {
		return 1
	}

	p.pos += k + 1

	return sign * n
}

// parseCurrency parses a currency sign followed by an amount: $12,
// $15/hour.
func (p *parser) parseCurrency() (Expr, *ParseError) {
	start := p.peek().start
	sign := p.advance()

	code, _ := unit.CodeForSymbol(sign.text)

	if !p.at(tokNumber) {
		return nil, p.errorf(p.peek(), "expected an amount after "+sign.text)
	}

	numStart := p.peek().start

	n, err := p.number()
	if err != nil {
		return nil, err
	}

	spec := UnitSpec{{Name: code, Power: 1}}

	for p.isOp("/", "*", "·") && p.peekN(1).kind == tokWord {
		save := p.pos
		sign := 1

		if p.advance().text == "/" {
			sign = -1
		}

		name, ok := p.unitWord(false)
		if !ok {
			p.pos = save

			break
		}

		spec = append(spec, UnitTerm{Name: name, Power: sign * p.unitPower()})
	}

	return &Measure{
		Span: spanFrom(start, p),
		X:    &Number{Span: Span{Start: numStart, End: p.toks[p.pos-1].end}, Value: n},
		Unit: spec,
	}, nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)

	return n
}

// parseClock reads HH:MM[:SS] with an optional am/pm suffix.
func (p *parser) parseClock() (*TimeLit, *ParseError) {
	t := p.advance()
	parts := strings.Split(t.text, ":")

	tl := &TimeLit{Hour: atoi(parts[0]), Minute: atoi(parts[1])}
	if len(parts) == 3 {
		tl.Second = float64(atoi(parts[2]))
	}

	if p.isWord("am") || p.isWord("pm") {
		if tl.Hour < 1 || tl.Hour > 12 {
			return nil, p.errorf(t, "invalid hour for am/pm")
		}

		tl.Hour = twelveHour(tl.Hour, p.advance().text)
		tl.Twelve = true
	}

	if tl.Hour > 23 || tl.Minute > 59 || tl.Second > 59 {
		return nil, p.errorf(t, "invalid time "+t.text)
	}

	return tl, nil
}

func (p *parser) parseTime() (Expr, *ParseError) {
	start := p.peek().start

	tl, err := p.parseClock()
	if err != nil {
		return nil, err
	}

	tl.Zone, _ = p.zone()
	tl.Span = spanFrom(start, p)

	return tl, nil
}

func (p *parser) parseDate() (Expr, *ParseError) {
	start := p.peek().start
	t := p.advance()
	parts := strings.Split(t.text, "-")

	d := &DateLit{Year: atoi(parts[0]), Month: atoi(parts[1]), Day: atoi(parts[2])}

	if d.Month < 1 || d.Month > 12 || d.Day < 1 ||
		d.Day > value.DaysIn(d.Year, time.Month(d.Month)) {
		return nil, p.errorf(t, "invalid date "+t.text)
	}

	if p.at(tokTime) {
		clockStart := p.peek().start

		tl, err := p.parseClock()
		if err != nil {
			return nil, err
		}

		tl.Span = spanFrom(clockStart, p)
		d.Clock = tl
	}

	d.Zone, _ = p.zone()
	d.Span = spanFrom(start, p)

	return d, nil
}

// zone reads a zone abbreviation or a glued offset such as UTC+5:30.
func (p *parser) zone() (string, bool) {
	t := p.peek()
	if t.kind != tokWord {
		return "", false
	}

	if sign, num := p.peekN(1), p.peekN(2); (t.text == "UTC" || t.text == "GMT") &&
		sign.kind == tokOp && (sign.text == "+" || sign.text == "-") && !sign.space &&
		(num.kind == tokNumber || num.kind == tokTime) && !num.space {
		if name := t.text + sign.text + num.text; value.IsZone(name) {
			p.pos += 3

			return name, true
		}
	}

	if !value.IsZone(t.text) {
		return "", false
	}

	p.advance()

	return t.text, true
}

// parseWord parses a call, a currency code before an amount, or a
// possibly multi-word name.
func (p *parser) parseWord() (Expr, *ParseError) {
	start := p.peek().start
	t := p.peek()

	if keywords[t.text] {
		return nil, p.errorf(t, "unexpected keyword "+strconv.Quote(t.text))
	}

	if p.nextIsCall() {
		return p.parseCall()
	}

	if unit.IsCurrencyCode(t.text) && p.peekN(1).kind == tokNumber {
		p.advance()

		numStart := p.peek().start

		n, err := p.number()
		if err != nil {
			return nil, err
		}

		return &Measure{
			Span: spanFrom(start, p),
			X:    &Number{Span: spanFrom(numStart, p), Value: n},
			Unit: UnitSpec{{Name: t.text, Power: 1}},
		}, nil
	}

	words := []string{p.advance().text}

	for p.at(tokWord) && !keywords[p.peek().text] && !p.nextIsCall() {
		words = append(words, p.advance().text)
	}

	return &Ident{Span: spanFrom(start, p), Name: strings.Join(words, " ")}, nil
}

// parseCall parses: Name '(' [Arg (',' Arg)*] ')' where Arg is
// [Name ':'] Where.
func (p *parser) parseCall() (Expr, *ParseError) {
	start := p.peek().start
	name := p.advance().text

	p.advance() // (

	var args []Arg

	for !p.isOp(")") {
		if len(args) > 0 {
			if _, err := p.expectOp(","); err != nil {
				return nil, err
			}
		}

		var arg Arg

		if p.at(tokWord) && p.peekN(1).kind == tokOp && p.peekN(1).text == ":" {
			arg.Name = p.advance().text
			p.advance()
		}

		v, err := p.parseWhere()
		if err != nil {
			return nil, err
		}

		arg.Value = v
		args = append(args, arg)
	}

	p.advance() // )

	return &Call{Span: spanFrom(start, p), Name: name, Args: args}, nil
}
