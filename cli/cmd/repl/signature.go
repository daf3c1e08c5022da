package repl

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// builtinParams names the parameters of builtins for the signature hint.
// Builtins missing here are described by their arity alone.
var builtinParams = map[string][]string{
	"sort":         {"list"},
	"reverse":      {"list"},
	"first":        {"list"},
	"last":         {"list"},
	"len":          {"list"},
	"sqrt":         {"x"},
	"cbrt":         {"x"},
	"abs":          {"x"},
	"round":        {"x", "places"},
	"floor":        {"x"},
	"ceil":         {"x"},
	"exp":          {"x"},
	"ln":           {"x"},
	"log":          {"x"},
	"log2":         {"x"},
	"sin":          {"x"},
	"cos":          {"x"},
	"tan":          {"x"},
	"pow":          {"base", "exponent"},
	"year":         {"date"},
	"month":        {"date"},
	"day":          {"date"},
	"weekday":      {"date"},
	"businessdays": {"from", "to"},
}

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
	signatureSeparatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// functionCall represents a detected function call in the input.
type functionCall struct {
	name     string // function name
	argIndex int    // current argument index (0-based)
	inCall   bool   // true if cursor is inside parameter list
}

// detectFunctionCall analyzes the input to determine if the cursor is inside
// a function call's parameter list. It returns the function name, current
// argument index, and whether we're inside a call.
func detectFunctionCall(input string, cursor int) functionCall {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Scan backward from cursor to find the opening paren of a function call.
	// Track nested parens so we find the correct one.
	parenDepth := 0
	openParenPos := -1

	for i := cursor - 1; i >= 0; i-- {
		ch, size := utf8.DecodeLastRuneInString(input[:i+1])

		switch ch {
		case ')':
			parenDepth++
		case '(':
			if parenDepth == 0 {
				openParenPos = i

				goto foundOpenParen
			}

			parenDepth--
		}

		// Move to start of this rune
		if i > 0 {
			i -= (size - 1)
		}
	}

foundOpenParen:
	if openParenPos == -1 {
		return functionCall{inCall: false}
	}

	// Extract function name before the '('
	nameEnd := openParenPos
	nameStart := openParenPos

	for nameStart > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:nameStart])

		if isWordRune(r) {
			nameStart -= size
		} else {
			break
		}
	}

	funcName := strings.TrimSpace(input[nameStart:nameEnd])
	if funcName == "" {
		return functionCall{inCall: false}
	}

	// Count arguments by counting commas at depth 0 in the parameter list
	argIndex := 0
	depth := 0

	for i := openParenPos + 1; i < cursor; i++ {
		ch, size := utf8.DecodeRuneInString(input[i:])

		switch ch {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				argIndex++
			}
		}

		i += size - 1
	}

	return functionCall{
		name:     funcName,
		argIndex: argIndex,
		inCall:   true,
	}
}

// getSignature returns the signature of the user function or builtin
// called name. The signature is empty if name is neither.
func (m model) getSignature(name string) (signature string, params []string) {
	if fn, ok := m.doc.function(name); ok {
		return formatSignature(name, fn.Params), fn.Params
	}

	b, ok := builtinByName(name)
	if !ok {
		return "", nil
	}

	params, ok = builtinParams[name]
	if !ok {
		params = arityParams(b.Min, b.Max)
	}

	return formatSignature(name, params), params
}

// arityParams invents parameter names for a builtin taking min to max
// arguments. A negative max is variadic.
func arityParams(lo, hi int) []string {
	if hi < 0 {
		params := make([]string, 0, lo+1)
		for i := range lo {
			params = append(params, fmt.Sprintf("x%d", i+1))
		}

		return append(params, "...xs")
	}

	params := make([]string, 0, hi)
	for i := range hi {
		p := fmt.Sprintf("x%d", i+1)
		if i >= lo {
			p += "?"
		}

		params = append(params, p)
	}

	return params
}

func formatSignature(name string, params []string) string {
	return name + "(" + strings.Join(params, ", ") + ")"
}

// renderSignatureHint renders the function signature with the current
// parameter highlighted.
func renderSignatureHint(
	signature string,
	params []string,
	currentArgIdx int,
) string {
	if signature == "" {
		return ""
	}

	// Parse signature: "funcName(param1, param2, ...)"
	openParen := strings.Index(signature, "(")
	if openParen == -1 {
		return signatureStyle.Render(signature)
	}

	funcName := signature[:openParen]

	closeParen := strings.LastIndex(signature, ")")
	if closeParen == -1 {
		return signatureStyle.Render(signature)
	}

	// If no parameters, just render the signature
	if len(params) == 0 {
		return signatureNameStyle.Render(funcName) +
			signatureStyle.Render("()")
	}

	// Build the signature with highlighted current parameter
	var b strings.Builder
	b.WriteString(signatureNameStyle.Render(funcName))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureSeparatorStyle.Render(", "))
		}

		// Check if this is a variadic parameter
		isVariadic := strings.HasPrefix(param, "...")

		// Highlight the current parameter
		// For variadic parameters, highlight if we're at or beyond that index
		if (isVariadic && currentArgIdx >= i) ||
			(!isVariadic && currentArgIdx == i) {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
