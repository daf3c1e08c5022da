package lang

import "strings"

// Trigger marks the end of a line's expression and requests its result.
const Trigger = "=>"

// NodeKind classifies a parsed line.
type NodeKind int

const (
	NodePlainText   NodeKind = iota // PlainText
	NodeAssignment                  // VariableAssignment
	NodeExpression                  // Expression
	NodeCombined                    // CombinedAssignment
	NodeFunctionDef                 // FunctionDefinition
	NodeError                       // Error
)

var nodeKindName = [...]string{
	NodePlainText:   "PlainText",
	NodeAssignment:  "VariableAssignment",
	NodeExpression:  "Expression",
	NodeCombined:    "CombinedAssignment",
	NodeFunctionDef: "FunctionDefinition",
	NodeError:       "Error",
}

func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindName) {
		return "NodeKind(?)"
	}

	return nodeKindName[k]
}

// Param is a function parameter with an optional default.
type Param struct {
	Default Expr
	Name    string
}

// Node is the parse of one document line. Nodes are not modified after
// [Parse] returns them.
type Node struct {
	Expr      Expr
	Err       *ParseError
	Text      string
	Name      string
	Params    []Param
	Trigger   Span
	Line      int
	Kind      NodeKind
	Triggered bool
}

// HasCall reports whether the node's expression invokes a function.
func (n *Node) HasCall() bool {
	if n.Expr == nil {
		return false
	}

	return !Walk(n.Expr, func(e Expr) bool {
		_, ok := e.(*Call)

		return !ok
	})
}

// Parse parses one line of a document. It never fails: text that is not a
// definition, an assignment, or a triggered expression is plain text, and a
// triggered line that cannot be parsed is a [NodeError].
func Parse(line string, num int) *Node {
	n := &Node{Line: num, Text: line}

	body := line
	if i := strings.Index(body, "//"); i >= 0 {
		body = body[:i]
	}

	if i := strings.Index(body, Trigger); i >= 0 {
		n.Triggered = true
		n.Trigger = Span{Start: i, End: i + len(Trigger)}
		body = body[:i]
	}

	eq := assignOp(body)
	if eq < 0 {
		return n.expression(body)
	}

	lhs := body[:eq]

	if name, params, ok := definition(lhs); ok {
		return n.definition(name, params, body, eq)
	}

	name, ok := bindingName(lhs)
	if !ok {
		return n.expression(body)
	}

	n.Name = name

	return n.assignment(body, eq)
}

// ParseDocument parses every line of src.
func ParseDocument(src string) []*Node {
	lines := strings.Split(src, "\n")
	nodes := make([]*Node, len(lines))

	for i, line := range lines {
		nodes[i] = Parse(strings.TrimSuffix(line, "\r"), i+1)
	}

	return nodes
}

func (n *Node) fail(err *ParseError) *Node {
	err.Source = n.Text
	err.Line = n.Line
	n.Kind = NodeError
	n.Err = err
	n.Expr = nil

	return n
}

func (n *Node) expression(body string) *Node {
	if !n.Triggered {
		return n
	}

	e, err := parseExpr(body, 0)
	if err != nil {
		return n.fail(err)
	}

	n.Kind = NodeExpression
	n.Expr = e

	return n
}

func (n *Node) assignment(body string, eq int) *Node {
	e, err := parseExpr(body[eq+1:], eq+1)
	if err != nil {
		// An untriggered line that only looks like an assignment is prose,
		// unless it holds a grouped number.
		if n.Triggered || grouped(err) {
			return n.fail(err)
		}

		n.Name = ""

		return n
	}

	n.Expr = e
	n.Kind = NodeAssignment

	if n.Triggered {
		n.Kind = NodeCombined
	}

	return n
}

func (n *Node) definition(name, params string, body string, eq int) *Node {
	n.Name = name

	off := strings.Index(body, "(") + 1

	for _, p := range splitTop(params) {
		param := Param{Name: strings.TrimSpace(p.text)}

		if i := assignOp(p.text); i >= 0 {
			param.Name = strings.TrimSpace(p.text[:i])

			def, err := parseExpr(p.text[i+1:], off+p.start+i+1)
			if err != nil {
				return n.fail(err)
			}

			param.Default = def
		}

		if !isName(param.Name) {
			return n.fail(&ParseError{Offset: off + p.start, Msg: "invalid parameter " + param.Name})
		}

		for _, q := range n.Params {
			if q.Name == param.Name {
				return n.fail(&ParseError{Offset: off + p.start, Msg: "duplicate parameter " + param.Name})
			}
		}

		n.Params = append(n.Params, param)
	}

	e, err := parseExpr(body[eq+1:], eq+1)
	if err != nil {
		return n.fail(err)
	}

	n.Kind = NodeFunctionDef
	n.Expr = e

	return n
}

// grouped reports whether err rejects a grouped number such as 1,000.
func grouped(err *ParseError) bool { return strings.HasPrefix(err.Msg, "grouped number") }

// assignOp returns the byte offset of the first top-level "=" that is not
// part of a comparison, or -1.
func assignOp(s string) int {
	depth := 0

	for i := range len(s) {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case '=':
			if depth != 0 {
				continue
			}

			if i > 0 && strings.IndexByte("=!<>", s[i-1]) >= 0 {
				continue
			}

			if i+1 < len(s) && (s[i+1] == '=' || s[i+1] == '>') {
				continue
			}

			return i
		}
	}

	return -1
}

// bindingName validates the left side of an assignment and normalizes the
// spaces between its words.
func bindingName(lhs string) (string, bool) {
	toks, err := lex(lhs)
	if err != nil || len(toks) < 2 {
		return "", false
	}

	words := make([]string, 0, len(toks)-1)

	for _, t := range toks[:len(toks)-1] {
		if t.kind != tokWord || keywords[t.text] {
			return "", false
		}

		words = append(words, t.text)
	}

	return strings.Join(words, " "), true
}

func isName(s string) bool {
	toks, err := lex(s)

	return err == nil && len(toks) == 2 && toks[0].kind == tokWord && !keywords[toks[0].text]
}

// definition matches "name(params)" and returns the name and the raw
// parameter text.
func definition(lhs string) (string, string, bool) {
	lhs = strings.TrimSpace(lhs)

	open := strings.IndexByte(lhs, '(')
	if open <= 0 || !strings.HasSuffix(lhs, ")") {
		return "", "", false
	}

	name := lhs[:open]
	if !isName(name) || strings.TrimSpace(name) != name {
		return "", "", false
	}

	return name, lhs[open+1 : len(lhs)-1], true
}

type part struct {
	text  string
	start int
}

// splitTop splits s at commas outside parentheses and brackets. Blank input
// yields no parts.
func splitTop(s string) []part {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var (
		parts []part
		depth int
		start int
	)

	for i := range len(s) {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, part{text: s[start:i], start: start})
				start = i + 1
			}
		}
	}

	return append(parts, part{text: s[start:], start: start})
}
