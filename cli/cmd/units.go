package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/calcpad/engine"
	"github.com/ardnew/calcpad/unit"
	"github.com/ardnew/calcpad/value"
)

// Units lists the known physical units grouped by dimension, and the
// currencies of the configured rate table.
type Units struct {
	Dimension string `arg:"" help:"Only list units whose dimension contains this name, e.g. length or currency." optional:""`
}

// Run executes the units command.
func (u *Units) Run(ctx context.Context) error {
	eng, err := newEngine(ctx)
	if err != nil {
		return err
	}

	reg := unit.NewRegistry(eng.Config().BaseCurrency, eng.Rates())

	return u.write(stdout(ctx), reg, eng)
}

func (u *Units) write(w io.Writer, reg *unit.Registry, eng *engine.Engine) error {
	r := lipgloss.NewRenderer(w)
	heading := r.NewStyle().Bold(true).Underline(true)
	symbol := r.NewStyle().Foreground(lipgloss.Color("6")).Width(8)
	alias := r.NewStyle().Foreground(lipgloss.Color("8"))

	filter := strings.ToLower(strings.TrimSpace(u.Dimension))

	var (
		b       strings.Builder
		current string
		matched int
	)

	for un := range unit.All() {
		dim := un.Dim.String()
		if filter != "" && !strings.Contains(dim, filter) {
			continue
		}

		if dim != current {
			if current != "" {
				b.WriteString("\n")
			}

			current = dim
			b.WriteString(heading.Render(dim) + "\n")
		}

		names := []string{un.Name}
		if un.Plural != "" && un.Plural != un.Name {
			names = append(names, un.Plural)
		}

		names = append(names, un.Aliases...)

		fmt.Fprintf(&b, "  %s %s\n", symbol.Render(un.Symbol), alias.Render(strings.Join(names, ", ")))

		matched++
	}

	if filter == "" || strings.Contains("currency", filter) {
		if matched > 0 {
			b.WriteString("\n")
		}

		b.WriteString(heading.Render("currency") + "\n")

		base, err := reg.Currency(reg.Base())
		if err != nil {
			return ErrEngine.Wrap(err)
		}

		for _, code := range reg.Codes() {
			cu, err := reg.Currency(code)
			if err != nil {
				continue
			}

			rate := "base"
			if code != reg.Base() {
				rate = eng.Format(value.Currency(cu.Factor, base))
			}

			sym, _ := unit.SymbolForCode(code)
			fmt.Fprintf(&b, "  %s %s %s\n", symbol.Render(code), alias.Render(sym), rate)

			matched++
		}
	}

	if matched == 0 {
		return ErrUnknownDimension.With(slog.String("dimension", u.Dimension))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
