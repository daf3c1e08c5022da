package engine

import (
	"log/slog"

	"github.com/ardnew/calcpad/lang"
	"github.com/ardnew/calcpad/value"
)

// evaluatorKind names one link of the evaluation chain.
type evaluatorKind int

const (
	evalPercentage evaluatorKind = iota // percentage
	evalUnit                            // unit
	evalCombined                        // combined
	evalAssignment                      // assignment
	evalExpression                      // expression
	evalError                           // error
	evalPlainText                       // plaintext
)

var evaluatorName = [...]string{
	evalPercentage: "percentage",
	evalUnit:       "unit",
	evalCombined:   "combined",
	evalAssignment: "assignment",
	evalExpression: "expression",
	evalError:      "error",
	evalPlainText:  "plaintext",
}

func (k evaluatorKind) String() string { return evaluatorName[k] }

// evaluator is one link of the chain: the first evaluator whose claims
// reports true handles the node.
type evaluator struct {
	claims func(*lang.Node) bool
	run    func(*pass, *lang.Node) (Descriptor, bool)
	kind   evaluatorKind
}

// chain is tried in order for every line. Percentage phrases are claimed
// before generic arithmetic, and combined assignments before either plain
// assignment or bare expression.
var chain = [...]evaluator{
	{kind: evalPercentage, claims: claimsPercentage, run: (*pass).runValue},
	{kind: evalUnit, claims: claimsUnit, run: (*pass).runValue},
	{kind: evalCombined, claims: claimsKind(lang.NodeCombined), run: (*pass).runValue},
	{
		kind:   evalAssignment,
		claims: claimsKind(lang.NodeAssignment, lang.NodeFunctionDef),
		run:    (*pass).runAssignment,
	},
	{kind: evalExpression, claims: claimsKind(lang.NodeExpression), run: (*pass).runValue},
	{kind: evalError, claims: claimsKind(lang.NodeError), run: (*pass).runError},
	{kind: evalPlainText, claims: claimsKind(lang.NodePlainText), run: (*pass).runPlainText},
}

// dispatch hands n to the first evaluator that claims it.
func (p *pass) dispatch(n *lang.Node) (Descriptor, bool) {
	for _, ev := range chain {
		if !ev.claims(n) {
			continue
		}

		p.eng.logger.TraceContext(p.ctx, "claim",
			slog.Int("line", n.Line),
			slog.String("evaluator", ev.kind.String()),
			slog.String("node", n.Kind.String()),
		)

		return ev.run(p, n)
	}

	return Descriptor{}, false
}

func claimsKind(kinds ...lang.NodeKind) func(*lang.Node) bool {
	return func(n *lang.Node) bool {
		for _, k := range kinds {
			if n.Kind == k {
				return true
			}
		}

		return false
	}
}

var claimsValue = claimsKind(lang.NodeExpression, lang.NodeCombined)

// claimsPercentage claims expressions whose outermost operation is a
// percentage phrase or literal.
func claimsPercentage(n *lang.Node) bool {
	if !claimsValue(n) {
		return false
	}

	switch e := n.Expr.(type) {
	case *lang.Percent, *lang.PercentOf, *lang.RateOf, *lang.BaseOf:
		return true
	case *lang.Convert:
		return e.Target.Kind == lang.TargetPercent
	default:
		return false
	}
}

// claimsUnit claims expressions that attach or convert units.
func claimsUnit(n *lang.Node) bool {
	if !claimsValue(n) {
		return false
	}

	return !lang.Walk(n.Expr, func(e lang.Expr) bool {
		switch e.(type) {
		case *lang.Measure, *lang.Convert:
			return false
		default:
			return true
		}
	})
}

// runValue evaluates an expression and, for a combined line, binds its
// result or marks the name failed.
func (p *pass) runValue(n *lang.Node) (Descriptor, bool) {
	v, err := p.evalLine(n)
	if n.Kind == lang.NodeCombined {
		if err == nil {
			p.store.bind(n.Name, v, n.Line)
		} else {
			p.store.fail(n.Name, n.Line)
		}
	}

	return p.eng.describe(n, v, err), true
}

// runAssignment binds a variable or registers a function. It renders
// nothing; a failed assignment leaves its name undefined.
func (p *pass) runAssignment(n *lang.Node) (Descriptor, bool) {
	if n.Kind == lang.NodeFunctionDef {
		p.store.define(n)

		return Descriptor{}, false
	}

	v, err := p.evalLine(n)
	if err != nil {
		p.eng.logger.DebugContext(p.ctx, "assignment failed",
			slog.Int("line", n.Line),
			slog.String("name", n.Name),
			slog.Any("error", err),
		)

		p.store.fail(n.Name, n.Line)

		return Descriptor{}, false
	}

	p.store.bind(n.Name, v, n.Line)

	return Descriptor{}, false
}

func (p *pass) runError(n *lang.Node) (Descriptor, bool) {
	return p.eng.describe(n, value.Value{}, n.Err), true
}

func (p *pass) runPlainText(*lang.Node) (Descriptor, bool) {
	return Descriptor{}, false
}
