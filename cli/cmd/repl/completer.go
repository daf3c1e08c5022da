package repl

import (
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/calcpad/engine"
	"github.com/ardnew/calcpad/unit"
)

// ctrlCommands are the control-mode commands.
var ctrlCommands = []string{"help", "list", "vars", "undo", "edit", "save", "clear", "quit"}

// keywords are the words of the expression language offered for
// completion.
var keywords = []string{
	"to", "in", "of", "on", "off", "as", "is", "what",
	"where", "step", "per", "mod",
}

// staticCandidates are the builtin functions, constants, keywords and
// unit names, which do not depend on the document.
var staticCandidates = sync.OnceValue(func() []string {
	names := slices.Clone(keywords)

	for _, b := range engine.Builtins() {
		names = append(names, b.Name)
	}

	names = append(names, engine.Constants()...)

	for u := range unit.All() {
		for _, n := range append([]string{u.Symbol, u.Name, u.Plural}, u.Aliases...) {
			if utf8.RuneCountInString(n) > 1 && isWord(n) {
				names = append(names, n)
			}
		}
	}

	slices.Sort(names)

	return slices.Compact(names)
})

// isWord reports whether s is made only of letters, digits and
// underscores.
func isWord(s string) bool {
	for _, r := range s {
		if !isWordRune(r) {
			return false
		}
	}

	return s != ""
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wordBounds returns the word at cursor and its byte boundaries within
// input. A word is a run of letters, digits and underscores; the word is
// empty when the cursor sits between two non-word runes.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if !isWordRune(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if !isWordRune(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// candidates returns the completion candidates in the current mode.
func (m model) candidates() []string {
	if m.mode == modeCtrl {
		return ctrlCommands
	}

	names := append(m.doc.names(), staticCandidates()...)
	slices.Sort(names)

	return slices.Compact(names)
}

// computeMatches ranks the candidates against the word at the cursor. An
// empty word, or a word starting with a digit, has no matches.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	word, ws, we := wordBounds(m.input.Value(), m.input.Position())

	if word == "" || unicode.IsDigit([]rune(word)[0]) {
		return nil, ws, we
	}

	return fuzzy.Find(word, m.candidates()), ws, we
}

// renderCandidateBar builds the one-line completion bar, ellipsized to
// width. The selected candidate is highlighted while tab-cycling.
func (m model) renderCandidateBar() string {
	if len(m.matches) == 0 || m.width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")

	var (
		b    strings.Builder
		used int
	)

	for i, match := range m.matches {
		rendered := m.renderCandidate(match, m.tabActive && i == m.suggIdx)
		w := lipgloss.Width(rendered)

		if i > 0 {
			w += lipgloss.Width(sep)
		}

		if i > 0 && used+w+lipgloss.Width(ellipsis) > m.width {
			b.WriteString(sep + ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched runes emphasized.
// Functions are shown with a "()" suffix.
func (m model) renderCandidate(match fuzzy.Match, selected bool) string {
	base, emphasis := suggestionStyle, suggestionStyle.Bold(true)
	if selected {
		base, emphasis = selectedStyle, selectedStyle.Bold(true)
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, i := range match.MatchedIndexes {
		matched[i] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(emphasis.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if m.mode == modeEval && m.isFunction(match.Str) {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}

// isFunction reports whether name is a user function or a builtin that
// takes arguments.
func (m model) isFunction(name string) bool {
	if _, ok := m.doc.function(name); ok {
		return true
	}

	_, ok := builtinByName(name)

	return ok
}

func builtinByName(name string) (engine.Builtin, bool) {
	for _, b := range engine.Builtins() {
		if b.Name == name && b.Max != 0 {
			return b, true
		}
	}

	return engine.Builtin{}, false
}
