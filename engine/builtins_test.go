package engine

import (
	"slices"
	"testing"
)

func TestBuiltins(t *testing.T) {
	t.Parallel()

	list := Builtins()

	if !slices.IsSortedFunc(list, func(a, b Builtin) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}

		return 0
	}) {
		t.Error("Builtins() not sorted by name")
	}

	want := map[string]Builtin{
		"round":    {Name: "round", Min: 1, Max: 2},
		"sum":      {Name: "sum", Min: 1, Max: -1},
		"today":    {Name: "today", Min: 0, Max: 0},
		"pow":      {Name: "pow", Min: 2, Max: 2},
		"weekday":  {Name: "weekday", Min: 1, Max: 1},
		"sqrt":     {Name: "sqrt", Min: 1, Max: 1},
		"tomorrow": {Name: "tomorrow", Min: 0, Max: 0},
	}

	for _, b := range list {
		if w, ok := want[b.Name]; ok {
			if b != w {
				t.Errorf("builtin %s = %+v, want %+v", b.Name, b, w)
			}

			delete(want, b.Name)
		}

		if b.Name == "pi" || b.Name == "e" {
			t.Errorf("constant %s listed as a function", b.Name)
		}
	}

	for name := range want {
		t.Errorf("builtin %s missing", name)
	}

	if got := Constants(); !slices.Contains(got, "pi") || !slices.Contains(got, "today") {
		t.Errorf("Constants() = %v", got)
	}
}
