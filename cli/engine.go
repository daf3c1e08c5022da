package cli

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/calcpad/engine"
	"github.com/ardnew/calcpad/format"
	"github.com/ardnew/calcpad/log"
)

// engineConfig exposes every [engine.Config] option as a flag. Flag names
// are the kebab-case form of the configuration file keys, so
// dateDisplayFormat in config.yaml resolves --date-display-format.
type engineConfig struct {
	BaseCurrency string            `default:"${baseCurrency}" help:"Currency that exchange rates are quoted in."           placeholder:"CODE"`
	Rates        map[string]string `                          help:"Exchange rate expressions (CODE=EXPR;CODE=EXPR)."     placeholder:"CODE=EXPR" mapsep:";"`
	TimeZone     string            `default:"${timeZone}"     help:"Zone of dates and times written without one."`

	DecimalPlaces                 int     `default:"${decimalPlaces}"   help:"Maximum fractional digits displayed."`
	ScientificUpperThreshold      float64 `default:"${scientificUpper}" help:"Magnitude at or above which numbers use scientific notation."`
	ScientificLowerThreshold      float64 `default:"${scientificLower}" help:"Magnitude below which nonzero numbers use scientific notation."`
	TrimTrailingZerosInScientific bool    `default:"true"               help:"Trim trailing zeros of scientific mantissas."                 negatable:""`
	DateDisplayFormat             string  `default:"${dateFormat}"      help:"Date rendering."                                              enum:"iso,locale"`
	DateLocale                    string  `default:"${dateLocale}"      help:"BCP-47 locale of dates rendered with --date-display-format=locale."`

	MaxListSize  int `default:"${maxListSize}"  help:"Largest list a range may produce."`
	MaxCallDepth int `default:"${maxCallDepth}" help:"Deepest user function call chain."`
}

func (engineConfig) vars() kong.Vars {
	d := engine.Defaults()

	return kong.Vars{
		"baseCurrency":    d.BaseCurrency,
		"timeZone":        d.TimeZone,
		"decimalPlaces":   strconv.Itoa(d.DecimalPlaces),
		"scientificUpper": strconv.FormatFloat(d.ScientificUpper, 'g', -1, 64),
		"scientificLower": strconv.FormatFloat(d.ScientificLower, 'g', -1, 64),
		"dateFormat":      d.DateFormat.String(),
		"dateLocale":      d.DateLocale,
		"maxListSize":     strconv.Itoa(d.MaxListSize),
		"maxCallDepth":    strconv.Itoa(d.MaxCallDepth),
	}
}

func (engineConfig) group() kong.Group {
	return kong.Group{Key: "engine", Title: "Evaluation options"}
}

// config returns the validated engine configuration described by the flags.
func (c *engineConfig) config(ctx context.Context) (engine.Config, error) {
	cfg := engine.Config{
		Rates:        c.Rates,
		BaseCurrency: c.BaseCurrency,
		TimeZone:     c.TimeZone,
		Options: format.Options{
			DateLocale:          c.DateLocale,
			ScientificUpper:     c.ScientificUpperThreshold,
			ScientificLower:     c.ScientificLowerThreshold,
			DecimalPlaces:       c.DecimalPlaces,
			TrimScientificZeros: c.TrimTrailingZerosInScientific,
		},
		MaxListSize:  c.MaxListSize,
		MaxCallDepth: c.MaxCallDepth,
	}

	if err := cfg.DateFormat.UnmarshalText([]byte(c.DateDisplayFormat)); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	log.DebugContext(ctx, "engine configured",
		slog.String("baseCurrency", cfg.BaseCurrency),
		slog.String("timeZone", cfg.TimeZone),
		slog.Int("rates", len(cfg.Rates)),
	)

	return cfg, nil
}
