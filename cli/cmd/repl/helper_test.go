package repl

import (
	"io"
	"testing"

	"github.com/ardnew/calcpad/engine"
	"github.com/ardnew/calcpad/log"
)

func newTestEngine(t testing.TB) *engine.Engine {
	t.Helper()

	eng, err := engine.New(engine.Defaults())
	if err != nil {
		t.Fatalf("engine.New error: %v", err)
	}

	return eng
}

func newTestModel(t *testing.T, lines ...string) model {
	t.Helper()

	ctx := t.Context()
	doc := newDocument(ctx, newTestEngine(t), lines)

	return newModel(ctx, doc, NewHistory(""), log.Make(io.Discard))
}
