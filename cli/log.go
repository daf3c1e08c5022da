package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/calcpad/log"
)

// logLevel configures the default logger as kong decodes --log-level, so
// that parse errors are already reported at the requested level.
type logLevel string

func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

// logFormat configures the default logger as kong decodes --log-format.
type logFormat string

func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"${logLevel}"  enum:"${logLevelEnum}"  help:"Set log level."`
	Format     logFormat `default:"${logFormat}" enum:"${logFormatEnum}" help:"Set log format."`
	TimeLayout string    `default:"${logTime}"                           help:"Set timestamp layout (Go layout or name such as RFC3339, none)."`
	Caller     bool      `default:"false"                                help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                                 help:"Enable colorized pretty printing." negatable:""`
}

func (logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevel":      log.DefaultLevel.String(),
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormat":     log.DefaultFormat.String(),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
		"logTime":       log.DefaultTimeLayout,
	}
}

func (logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start applies every parsed log flag to the default logger.
func (c *logConfig) start(ctx context.Context) {
	log.Config(c.options()...)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(c.Level)),
		slog.String("format", string(c.Format)),
		slog.String("time", c.TimeLayout),
		slog.Bool("caller", c.Caller),
		slog.Bool("pretty", c.Pretty),
	)
}

func (c *logConfig) options() []log.Option {
	return []log.Option{
		log.WithLevel(log.ParseLevel(string(c.Level))),
		log.WithFormat(log.ParseFormat(string(c.Format))),
		log.WithTimeLayout(c.TimeLayout),
		log.WithCaller(c.Caller),
		log.WithPretty(c.Pretty),
	}
}

// scan applies log flags found in args before kong parses them. Boolean
// flags never reach an UnmarshalText hook, and kong reports some errors
// before it decodes any flag, so both rely on this pass.
func (c *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		name, value, assigned := strings.Cut(args[i], "=")

		// next consumes the following argument as the value of name.
		next := func() string {
			if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++

				return args[i]
			}

			return value
		}

		// enabled reports the state of a boolean flag; negated flags invert it.
		enabled := func(negated bool) (bool, bool) {
			if !assigned {
				return !negated, true
			}

			b, err := strconv.ParseBool(value)

			return b != negated, err == nil
		}

		switch name {
		case "--log-level":
			_ = c.Level.UnmarshalText([]byte(next()))
		case "--log-format":
			_ = c.Format.UnmarshalText([]byte(next()))
		case "--log-time-layout":
			c.TimeLayout = next()
			log.Config(log.WithTimeLayout(c.TimeLayout))
		case "--log-caller", "--no-log-caller":
			if v, ok := enabled(name == "--no-log-caller"); ok {
				c.Caller = v
				log.Config(log.WithCaller(v))
			}
		case "--log-pretty", "--no-log-pretty":
			if v, ok := enabled(name == "--no-log-pretty"); ok {
				c.Pretty = v
				log.Config(log.WithPretty(v))
			}
		}
	}
}
