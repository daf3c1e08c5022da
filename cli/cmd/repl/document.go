package repl

import (
	"context"
	"os"
	"strings"

	"github.com/ardnew/calcpad/engine"
)

// document is the notepad being edited. Every change re-runs a full pass,
// skipped when the fingerprint of the lines is unchanged.
type document struct {
	eng    *engine.Engine
	lines  []string
	result *engine.Result
}

func newDocument(ctx context.Context, eng *engine.Engine, lines []string) *document {
	d := &document{eng: eng, lines: lines}
	d.evaluate(ctx)

	return d
}

// evaluate runs a pass over the lines and reports whether one was needed.
func (d *document) evaluate(ctx context.Context) bool {
	if d.result != nil && d.result.Fingerprint == d.eng.Fingerprint(d.lines) {
		return false
	}

	d.result = d.eng.Evaluate(ctx, d.lines)

	return true
}

// add appends line and returns its descriptor, if it produced one.
func (d *document) add(ctx context.Context, line string) (engine.Descriptor, bool) {
	d.lines = append(d.lines, line)
	d.evaluate(ctx)

	return d.result.Descriptor(len(d.lines))
}

// undo removes the last line.
func (d *document) undo(ctx context.Context) (string, error) {
	if len(d.lines) == 0 {
		return "", ErrEmptyDocument
	}

	last := d.lines[len(d.lines)-1]
	d.lines = d.lines[:len(d.lines)-1]
	d.evaluate(ctx)

	return last, nil
}

func (d *document) replace(ctx context.Context, lines []string) {
	d.lines = lines
	d.evaluate(ctx)
}

func (d *document) clear(ctx context.Context) { d.replace(ctx, nil) }

// save writes the lines to path, one per line.
func (d *document) save(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrNoPath
	}

	text := strings.Join(d.lines, "\n")
	if len(d.lines) > 0 {
		text += "\n"
	}

	return os.WriteFile(path, []byte(text), 0o600)
}

// names returns the variables and functions the document defines.
func (d *document) names() []string {
	if d.result == nil {
		return nil
	}

	names := make([]string, 0, len(d.result.Bindings)+len(d.result.Functions))

	for _, b := range d.result.Bindings {
		names = append(names, b.Name)
	}

	for _, f := range d.result.Functions {
		names = append(names, f.Name)
	}

	return names
}

// function returns the user function called name.
func (d *document) function(name string) (engine.Function, bool) {
	if d.result == nil {
		return engine.Function{}, false
	}

	for _, f := range d.result.Functions {
		if f.Name == name {
			return f, true
		}
	}

	return engine.Function{}, false
}
