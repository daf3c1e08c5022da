package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/calcpad/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads a YAML (or JSON)
// configuration file and supplies its values as flag defaults.
//
// Keys may be written in camelCase, kebab-case or snake_case:
//
//	logLevel: debug
//	base-currency: EUR
//	decimal_places: 2
//	rates:
//	  USD: 1 / 1.08
//	  GBP: USD * 1.27
//
// Flags given on the command line override the file. A file that does not
// parse is reported and ignored.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var raw map[string]any

		if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			log.WarnContext(ctx, "ignoring configuration file",
				slog.String("error", err.Error()))

			return config{}, nil
		}

		cfg := make(config, len(raw))
		for k, v := range raw {
			cfg[normalize(k)] = flagValue(v)
		}

		return cfg, nil
	}
}

// config implements [kong.Resolver] over normalized keys.
type config map[string]any

func (config) Validate(*kong.Application) error { return nil }

func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := c[normalize(flag.Name)]; ok {
		return v, nil
	}

	return nil, nil
}

// normalize folds camelCase, kebab-case and snake_case spellings of a key
// to one form: logLevel, log-level and log_level all become "loglevel".
func normalize(key string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return -1
		}

		return unicode.ToLower(r)
	}, key)
}

// flagValue converts a decoded YAML value to the form kong decodes flags
// from. Scalars become strings, sequences become comma-separated lists and
// mappings become the key=value;key=value form of map flags.
func flagValue(v any) any {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x
	case uint64:
		return strconv.FormatUint(x, 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = fmt.Sprint(flagValue(e))
		}

		return strings.Join(parts, ",")
	case map[string]any:
		parts := make([]string, 0, len(x))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			parts = append(parts, k+"="+fmt.Sprint(flagValue(x[k])))
		}

		return strings.Join(parts, ";")
	case nil:
		return nil
	default:
		return fmt.Sprint(x)
	}
}
