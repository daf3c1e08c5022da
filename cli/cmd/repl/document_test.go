package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestDocument_Add(t *testing.T) {
	t.Parallel()

	doc := newDocument(t.Context(), newTestEngine(t), nil)

	if _, ok := doc.add(t.Context(), "price = 12"); ok {
		t.Error("assignment produced a result")
	}

	d, ok := doc.add(t.Context(), "price * 2 =>")
	if !ok {
		t.Fatal("triggered line produced no result")
	}

	if d.Text != "24" || d.Line != 2 {
		t.Errorf("descriptor = {%q, line %d}, want {\"24\", line 2}", d.Text, d.Line)
	}

	d, ok = doc.add(t.Context(), "missing + 1 =>")
	if !ok || d.Err == nil {
		t.Fatalf("undefined variable: ok=%v err=%v, want failure", ok, d.Err)
	}
}

func TestDocument_EvaluateSkipsUnchanged(t *testing.T) {
	t.Parallel()

	doc := newDocument(t.Context(), newTestEngine(t), []string{"1 + 1 =>"})

	if doc.evaluate(t.Context()) {
		t.Error("evaluate ran a pass over unchanged lines")
	}

	doc.lines = append(doc.lines, "2 + 2 =>")

	if !doc.evaluate(t.Context()) {
		t.Error("evaluate skipped changed lines")
	}
}

func TestDocument_Undo(t *testing.T) {
	t.Parallel()

	doc := newDocument(t.Context(), newTestEngine(t), []string{"x = 2", "x * 3 =>"})

	line, err := doc.undo(t.Context())
	if err != nil || line != "x * 3 =>" {
		t.Fatalf("undo = (%q, %v), want (%q, nil)", line, err, "x * 3 =>")
	}

	if len(doc.result.Descriptors) != 0 {
		t.Errorf("descriptors after undo = %d, want 0", len(doc.result.Descriptors))
	}

	doc.clear(t.Context())

	if _, err := doc.undo(t.Context()); !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("undo on empty document error = %v, want %v", err, ErrEmptyDocument)
	}
}

func TestDocument_Names(t *testing.T) {
	t.Parallel()

	doc := newDocument(t.Context(), newTestEngine(t), []string{
		"rate = 3",
		"double(x) = x * 2",
	})

	names := doc.names()
	for _, want := range []string{"rate", "double"} {
		if !slices.Contains(names, want) {
			t.Errorf("names() = %v, missing %q", names, want)
		}
	}

	fn, ok := doc.function("double")
	if !ok || !slices.Equal(fn.Params, []string{"x"}) {
		t.Errorf("function(double) = (%+v, %v)", fn, ok)
	}

	if _, ok := doc.function("rate"); ok {
		t.Error("function(rate) found a variable")
	}
}

func TestDocument_Save(t *testing.T) {
	t.Parallel()

	doc := newDocument(t.Context(), newTestEngine(t), []string{"a = 1", "a + 1 =>"})

	if err := doc.save(" "); !errors.Is(err, ErrNoPath) {
		t.Errorf("save without path error = %v, want %v", err, ErrNoPath)
	}

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := doc.save(path); err != nil {
		t.Fatalf("save error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if want := "a = 1\na + 1 =>\n"; string(data) != want {
		t.Errorf("saved %q, want %q", data, want)
	}
}
