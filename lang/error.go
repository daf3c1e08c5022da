package lang

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/calcpad/value"
)

// ParseError reports a line that could not be parsed.
type ParseError struct {
	Source string // text of the offending line
	Msg    string
	Line   int // 1-based; 0 when unknown
	Offset int // byte offset within Source
}

// Column returns the 1-based rune column of the error.
func (e *ParseError) Column() int {
	off := min(max(e.Offset, 0), len(e.Source))

	return utf8.RuneCountInString(e.Source[:off]) + 1
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var buf strings.Builder

	buf.WriteString("parse error at ")

	if e.Line > 0 {
		buf.WriteString("line ")
		buf.WriteString(strconv.Itoa(e.Line))
		buf.WriteString(", ")
	}

	buf.WriteString("column ")
	buf.WriteString(strconv.Itoa(e.Column()))
	buf.WriteString(": ")
	buf.WriteString(e.Msg)

	return buf.String()
}

// Snippet renders the offending line with a marker under the error column.
func (e *ParseError) Snippet() string {
	if e.Source == "" {
		return ""
	}

	num := strconv.Itoa(max(e.Line, 1))

	var src strings.Builder

	src.WriteString("  ")
	src.WriteString(num)
	src.WriteString(" | ")
	src.WriteString(e.Source)
	src.WriteRune('\n')

	// 2 leading spaces + " | "
	src.WriteString(strings.Repeat(" ", len(num)+5+e.Column()-1))
	src.WriteString("^\n")

	return src.String()
}

// Unwrap exposes the error as a [value.ErrParse] so that errors.Is matches
// the ParseError kind.
func (e *ParseError) Unwrap() error { return value.ErrParse.Detail("%s", e.Msg) }

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", e.Msg),
		slog.Int("line", e.Line),
		slog.Int("column", e.Column()),
	)
}
