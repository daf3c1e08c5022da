package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/calcpad/engine"
	"github.com/ardnew/calcpad/unit"
)

func newUnitsEngine(t *testing.T) (*engine.Engine, *unit.Registry) {
	t.Helper()

	cfg := engine.Defaults()
	cfg.Rates = map[string]string{"EUR": "1.25", "GBP": "EUR * 1.2"}

	eng, err := engine.New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	return eng, unit.NewRegistry(cfg.BaseCurrency, eng.Rates())
}

func TestUnitsWrite(t *testing.T) {
	t.Parallel()

	eng, reg := newUnitsEngine(t)

	tests := []struct {
		name      string
		dimension string
		want      []string
		absent    []string
	}{
		{
			name: "all",
			want: []string{"length", "km", "kilometers", "currency", "EUR", "base"},
		},
		{
			name:      "length only",
			dimension: "Length",
			want:      []string{"length", "km", "metre"},
			absent:    []string{"currency", "kg"},
		},
		{
			name:      "currency only",
			dimension: "currency",
			want:      []string{"currency", "GBP", "$1.5"},
			absent:    []string{"km"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := (&Units{Dimension: tt.dimension}).write(&buf, reg, eng); err != nil {
				t.Fatalf("write error: %v", err)
			}

			out := buf.String()

			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}

			for _, absent := range tt.absent {
				if strings.Contains(out, absent) {
					t.Errorf("output contains %q:\n%s", absent, out)
				}
			}
		})
	}
}

func TestUnitsWrite_Unknown(t *testing.T) {
	t.Parallel()

	eng, reg := newUnitsEngine(t)

	var buf bytes.Buffer

	err := (&Units{Dimension: "flavor"}).write(&buf, reg, eng)
	if !errors.Is(err, ErrUnknownDimension) {
		t.Errorf("write error = %v, want %v", err, ErrUnknownDimension)
	}

	if buf.Len() != 0 {
		t.Errorf("wrote output for unknown dimension:\n%s", buf.String())
	}
}
