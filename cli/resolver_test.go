package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"logLevel", "log-level", "log_level", "LOG_LEVEL"} {
		if got := normalize(key); got != "loglevel" {
			t.Errorf("normalize(%q) = %q", key, got)
		}
	}
}

func TestFlagValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"bool", true, true},
		{"string", "EUR", "EUR"},
		{"uint", uint64(4), "4"},
		{"int", int64(-2), "-2"},
		{"float", 1e12, "1e+12"},
		{"list", []any{"a", uint64(1)}, "a,1"},
		{"map", map[string]any{"GBP": "EUR * 1.2", "EUR": 1.1}, "EUR=1.1;GBP=EUR * 1.2"},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := flagValue(tt.in); got != tt.want {
				t.Errorf("flagValue(%v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

type resolverCLI struct {
	LogLevel      string            `default:"info"`
	BaseCurrency  string            `default:"USD"`
	DecimalPlaces int               `default:"4"`
	Pretty        bool              `default:"true" negatable:""`
	Rates         map[string]string `mapsep:";"`
}

func parseWithConfig(t *testing.T, content string, args ...string) resolverCLI {
	t.Helper()

	path := filepath.Join(t.TempDir(), configFile)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	var cli resolverCLI

	parser, err := kong.New(&cli,
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
		kong.Configuration(resolve(t.Context()), path),
	)
	if err != nil {
		t.Fatalf("kong.New: %v", err)
	}

	if _, err := parser.Parse(args); err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}

	return cli
}

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("file", func(t *testing.T) {
		t.Parallel()

		cli := parseWithConfig(t, strings.Join([]string{
			"log_level: debug",
			"baseCurrency: EUR",
			"decimal-places: 2",
			"pretty: false",
			"rates:",
			"  USD: 1 / 1.08",
			"  GBP: USD * 1.27",
		}, "\n"))

		if cli.LogLevel != "debug" || cli.BaseCurrency != "EUR" ||
			cli.DecimalPlaces != 2 || cli.Pretty {
			t.Errorf("unexpected values %+v", cli)
		}

		if cli.Rates["USD"] != "1 / 1.08" || cli.Rates["GBP"] != "USD * 1.27" {
			t.Errorf("rates = %v", cli.Rates)
		}
	})

	t.Run("flags override", func(t *testing.T) {
		t.Parallel()

		cli := parseWithConfig(t, "baseCurrency: EUR\n", "--base-currency=GBP")
		if cli.BaseCurrency != "GBP" {
			t.Errorf("BaseCurrency = %q, want GBP", cli.BaseCurrency)
		}
	})

	t.Run("invalid file ignored", func(t *testing.T) {
		t.Parallel()

		cli := parseWithConfig(t, "{ not: [valid\n")
		if cli.BaseCurrency != "USD" || cli.DecimalPlaces != 4 {
			t.Errorf("defaults not kept: %+v", cli)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()

		cli := parseWithConfig(t, "")
		if cli.LogLevel != "info" {
			t.Errorf("LogLevel = %q", cli.LogLevel)
		}
	})
}
