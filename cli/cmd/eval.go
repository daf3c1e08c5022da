package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/calcpad/engine"
)

// Eval evaluates documents in one pass and prints their results.
type Eval struct {
	Files    []string `arg:""         help:"Documents to evaluate, '-' for standard input."                        optional:""`
	Output   string   `default:"text" help:"Output format."                                                        enum:"text,yaml,json" short:"o"`
	Bindings bool     `               help:"Also print the variables bound at the end of the document."                                  short:"b"`
	Only     bool     `               help:"Print only the results, prefixed by line number, in text output."                             short:"r"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer func(err *error) { cancel(*err) }(&err)

	lines, err := readDocument(ctx, e.Files, os.Stdin)
	if err != nil {
		return err
	}

	eng, err := newEngine(ctx)
	if err != nil {
		return err
	}

	return e.write(stdout(ctx), lines, eng.Evaluate(ctx, lines))
}

func (e *Eval) write(w io.Writer, lines []string, res *engine.Result) error {
	if !e.Bindings {
		view := *res
		view.Bindings, view.Functions = nil, nil
		res = &view
	}

	var (
		out []byte
		err error
	)

	switch e.Output {
	case "yaml":
		if out, err = yaml.Marshal(res); err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}
	case "json":
		if out, err = json.MarshalIndent(res, "", "  "); err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		out = append(out, '\n')
	default:
		out = []byte(renderText(lipgloss.NewRenderer(w), lines, res, e.Only))
	}

	if _, err := w.Write(out); err != nil {
		return ErrWriteOutput.With(slog.String("format", e.Output)).Wrap(err)
	}

	return nil
}

type textStyles struct {
	line, gutter, result, failure, name, note lipgloss.Style
}

func newTextStyles(r *lipgloss.Renderer) textStyles {
	return textStyles{
		line:    r.NewStyle(),
		gutter:  r.NewStyle().Foreground(lipgloss.Color("8")),
		result:  r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")),
		name:    r.NewStyle().Foreground(lipgloss.Color("6")),
		note:    r.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
	}
}

// renderText prints every line of the document with its result aligned in
// a column to the right. With only set, it prints just the results.
func renderText(r *lipgloss.Renderer, lines []string, res *engine.Result, only bool) string {
	st := newTextStyles(r)

	var b strings.Builder

	styled := func(d engine.Descriptor) string {
		if d.Err != nil {
			return st.failure.Render(d.Text)
		}

		return st.result.Render(d.Text)
	}

	if only {
		for _, d := range res.Descriptors {
			fmt.Fprintf(&b, "%s %s\n", st.gutter.Render(fmt.Sprintf("%d:", d.Line)), styled(d))
		}
	} else {
		width := 0

		for _, d := range res.Descriptors {
			if d.Line-1 < len(lines) {
				width = max(width, lipgloss.Width(strings.TrimRight(lines[d.Line-1], " \t")))
			}
		}

		for i, line := range lines {
			d, ok := res.Descriptor(i + 1)
			if !ok {
				b.WriteString(st.line.Render(line) + "\n")

				continue
			}

			text := strings.TrimRight(line, " \t")
			pad := strings.Repeat(" ", width-lipgloss.Width(text))
			fmt.Fprintf(&b, "%s%s %s %s\n", st.line.Render(text), pad, st.gutter.Render("│"), styled(d))
		}
	}

	if len(res.Bindings) > 0 || len(res.Functions) > 0 {
		b.WriteString("\n")
	}

	for _, v := range res.Bindings {
		note := ""
		if v.Redefined {
			note = " " + st.note.Render("(redefined)")
		}

		fmt.Fprintf(&b, "%s = %s %s%s\n",
			st.name.Render(v.Name), v.Value,
			st.gutter.Render(fmt.Sprintf("line %d", v.Line)), note)
	}

	for _, f := range res.Functions {
		fmt.Fprintf(&b, "%s(%s) %s\n",
			st.name.Render(f.Name), strings.Join(f.Params, ", "),
			st.gutter.Render(fmt.Sprintf("line %d", f.Line)))
	}

	return b.String()
}
