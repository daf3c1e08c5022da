package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestReadDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := writeFile(t, filepath.Join(dir, "first.txt"), "a = 1\r\nb = 2\n")
	second := writeFile(t, filepath.Join(dir, "second.txt"), "a + b =>")

	tests := []struct {
		name    string
		sources []string
		stdin   string
		want    []string
	}{
		{
			name:    "no sources reads stdin",
			sources: nil,
			stdin:   "1 + 1 =>\n",
			want:    []string{"1 + 1 =>"},
		},
		{
			name:    "files in order",
			sources: []string{first, second},
			want:    []string{"a = 1", "b = 2", "a + b =>"},
		},
		{
			name:    "duplicates read once",
			sources: []string{first, first, filepath.Join(dir, ".", "first.txt")},
			want:    []string{"a = 1", "b = 2"},
		},
		{
			name:    "stdin read last",
			sources: []string{"-", second},
			stdin:   "x = 3",
			want:    []string{"a + b =>", "x = 3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := readDocument(t.Context(), tt.sources, strings.NewReader(tt.stdin))
			if err != nil {
				t.Fatalf("readDocument error: %v", err)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("readDocument = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadDocument_SearchPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "budget.txt"), "rent = $900")

	ctx := WithSearchPath(t.Context(), []string{filepath.Join(dir, "missing"), dir})

	got, err := readDocument(ctx, []string{"budget.txt"}, nil)
	if err != nil {
		t.Fatalf("readDocument error: %v", err)
	}

	if !slices.Equal(got, []string{"rent = $900"}) {
		t.Errorf("readDocument = %q", got)
	}

	_, err = readDocument(ctx, []string{"nowhere.txt"}, nil)
	if !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("missing document error = %v, want %v", err, ErrSourceNotFound)
	}
}

func TestLocate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	abs := writeFile(t, filepath.Join(dir, "notes.txt"), "")

	if path, ok := locate(abs, nil); !ok || path != abs {
		t.Errorf("locate(%q) = (%q, %v)", abs, path, ok)
	}

	if path, ok := locate("notes.txt", []string{dir}); !ok || path != abs {
		t.Errorf("locate via search path = (%q, %v), want (%q, true)", path, ok, abs)
	}

	missing := filepath.Join(dir, "missing.txt")
	if path, ok := locate(missing, []string{dir}); ok || path != missing {
		t.Errorf("locate(%q) = (%q, %v), want unchanged and not found", missing, path, ok)
	}
}

func TestReadLines_LongLine(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("1+", 40_000) + "1 =>"

	lines, err := readLines(strings.NewReader("x = 1\n" + long + "\n"))
	if err != nil {
		t.Fatalf("readLines error: %v", err)
	}

	if len(lines) != 2 || lines[1] != long {
		t.Errorf("readLines returned %d lines", len(lines))
	}
}

func TestConfigFrom_Default(t *testing.T) {
	t.Parallel()

	cfg := configFrom(t.Context())
	if cfg.BaseCurrency == "" || cfg.MaxListSize == 0 {
		t.Errorf("configFrom without config = %+v, want defaults", cfg)
	}

	eng, err := newEngine(t.Context())
	if err != nil || eng == nil {
		t.Fatalf("newEngine = (%v, %v)", eng, err)
	}
}
