package lang

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/calcpad/unit"
)

// tokenKind classifies a lexical token.
type tokenKind int

const (
	tokEOF      tokenKind = iota
	tokNumber             // 12, 1.5, .5, 1e3
	tokWord               // identifier, keyword, or unit
	tokCurrency           // $, €, £, ¥ ...
	tokDate               // 2024-01-31
	tokTime               // 9:30, 09:30:15
	tokOp                 // operator or punctuation
)

// token is one lexeme with its byte span in the line.
type token struct {
	text  string
	kind  tokenKind
	start int
	end   int
	space bool // preceded by whitespace
}

// lexer splits one line into tokens.
type lexer struct {
	input string
	pos   int
	prev  tokenKind
}

// operators lists multi-character operators before their prefixes.
var operators = []string{
	"=>", "==", "!=", "<=", ">=", "..", "**",
	"+", "-", "*", "/", "×", "÷", "^", "(", ")", "[", "]",
	",", "=", ":", "%", "<", ">", "·",
}

// lex tokenizes input. Grouped numbers such as 1,000 are reported as a
// *ParseError.
func lex(input string) ([]token, *ParseError) {
	l := &lexer{input: input}

	var toks []token

	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}

		toks = append(toks, tok)

		if tok.kind == tokEOF {
			return toks, nil
		}
	}
}

func (l *lexer) peek() rune {
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])

	return r
}

func (l *lexer) eof() bool { return l.pos >= len(l.input) }

func (l *lexer) errorf(pos int, msg string) *ParseError {
	return &ParseError{Source: l.input, Offset: pos, Msg: msg}
}

func (l *lexer) next() (token, *ParseError) {
	start := l.pos

	for !l.eof() && unicode.IsSpace(l.peek()) {
		_, size := utf8.DecodeRuneInString(l.input[l.pos:])
		l.pos += size
	}

	space := l.pos > start
	start = l.pos

	if l.eof() {
		return token{kind: tokEOF, start: start, end: start, space: space}, nil
	}

	r := l.peek()

	var (
		kind tokenKind
		err  *ParseError
	)

	switch {
	case isDigit(r) || (r == '.' && isDigit(l.at(l.pos+1))):
		kind, err = l.number()
	case unit.IsCurrencySymbol(r):
		l.pos += utf8.RuneLen(r)
		kind = tokCurrency
	case isWordStart(r):
		// 1h30m: a word glued to a number stops at the next digit.
		l.word(l.prev == tokNumber && !space)
		kind = tokWord
	default:
		kind = tokOp
		if !l.operator() {
			return token{}, l.errorf(start, "unexpected character "+string(r))
		}
	}

	if err != nil {
		return token{}, err
	}

	l.prev = kind

	return token{
		text:  l.input[start:l.pos],
		kind:  kind,
		start: start,
		end:   l.pos,
		space: space,
	}, nil
}

// at returns the byte at i as a rune, or 0 past the end.
func (l *lexer) at(i int) rune {
	if i < 0 || i >= len(l.input) {
		return 0
	}

	return rune(l.input[i])
}

func (l *lexer) digits() int {
	n := 0
	for isDigit(l.at(l.pos)) {
		l.pos++
		n++
	}

	return n
}

// number scans a number, a date, or a time of day.
func (l *lexer) number() (tokenKind, *ParseError) {
	start := l.pos
	n := l.digits()

	// 2024-01-31
	if n == 4 && l.at(l.pos) == '-' && l.span(l.pos+1, 2) && l.at(l.pos+3) == '-' &&
		l.span(l.pos+4, 2) && !isDigit(l.at(l.pos+6)) {
		l.pos += 6

		return tokDate, nil
	}

	// 9:30, 09:30:15
	if n >= 1 && n <= 2 && l.at(l.pos) == ':' && l.span(l.pos+1, 2) &&
		!isDigit(l.at(l.pos+3)) {
		l.pos += 3

		if l.at(l.pos) == ':' && l.span(l.pos+1, 2) && !isDigit(l.at(l.pos+3)) {
			l.pos += 3
		}

		return tokTime, nil
	}

	if l.at(l.pos) == '.' && l.at(l.pos+1) != '.' {
		l.pos++
		l.digits()
	}

	if c := l.at(l.pos); c == 'e' || c == 'E' {
		save := l.pos
		l.pos++

		if c := l.at(l.pos); c == '+' || c == '-' {
			l.pos++
		}

		if l.digits() == 0 {
			l.pos = save
		}
	}

	// A comma directly followed by exactly three digits is a thousands
	// separator, which the list syntax makes ambiguous.
	if l.at(l.pos) == ',' && l.span(l.pos+1, 3) && !isDigit(l.at(l.pos+4)) &&
		l.at(l.pos+4) != '.' {
		grouped := l.input[start : l.pos+4]

		return 0, l.errorf(start, "grouped number "+grouped+
			" is ambiguous; write "+strings.ReplaceAll(grouped, ",", "")+
			" or separate list items with \", \"")
	}

	return tokNumber, nil
}

// span reports whether n digits start at byte i.
func (l *lexer) span(i, n int) bool {
	for j := range n {
		if !isDigit(l.at(i + j)) {
			return false
		}
	}

	return true
}

func (l *lexer) word(letters bool) {
	for !l.eof() {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !isWordPart(r) || (letters && isDigit(r)) {
			return
		}

		l.pos += size
	}
}

func (l *lexer) operator() bool {
	for _, op := range operators {
		if strings.HasPrefix(l.input[l.pos:], op) {
			l.pos += len(op)

			return true
		}
	}

	return false
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isWordStart(r rune) bool {
	return r == '_' || r == '°' || r == 'Δ' || r == 'µ' || unicode.IsLetter(r)
}

func isWordPart(r rune) bool {
	return isWordStart(r) || isDigit(r) || r == '²' || r == '³'
}
