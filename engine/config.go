package engine

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/calcpad/format"
	"github.com/ardnew/calcpad/unit"
	"github.com/ardnew/calcpad/value"
)

// Default limits.
const (
	DefaultMaxListSize  = 10000
	DefaultMaxCallDepth = 64
	DefaultBaseCurrency = "USD"
	DefaultTimeZone     = "UTC"
)

// Config holds the options of an [Engine]. The zero Config is not valid;
// start from [Defaults].
type Config struct {
	// Rates maps a currency code to an expression giving the value of one
	// unit of that currency in BaseCurrency, e.g. EUR: "1.08" or
	// JPY: "1/150". Expressions may reference other codes.
	Rates map[string]string `json:"rates,omitempty" yaml:"rates,omitempty"`

	BaseCurrency string `json:"baseCurrency" yaml:"baseCurrency"`

	// TimeZone is the zone of dates and times written without one, and of
	// today and now.
	TimeZone string `json:"timeZone" yaml:"timeZone"`

	format.Options `json:",inline" yaml:",inline"`

	MaxListSize  int `json:"maxListSize"  yaml:"maxListSize"`
	MaxCallDepth int `json:"maxCallDepth" yaml:"maxCallDepth"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		BaseCurrency: DefaultBaseCurrency,
		TimeZone:     DefaultTimeZone,
		Options:      format.Defaults(),
		MaxListSize:  DefaultMaxListSize,
		MaxCallDepth: DefaultMaxCallDepth,
	}
}

// LoadConfig reads a YAML or JSON configuration from r. Options absent from
// the input keep their defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := Defaults()

	data, err := io.ReadAll(r)
	if err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	return cfg, cfg.Validate()
}

// Marshal encodes the configuration as YAML.
func (c Config) Marshal() ([]byte, error) { return yaml.Marshal(c) }

// Validate reports the first invalid option.
func (c Config) Validate() error {
	switch {
	case c.MaxListSize <= 0:
		return fmt.Errorf("%w: maxListSize must be positive, got %d",
			ErrConfig, c.MaxListSize)
	case c.MaxCallDepth <= 0:
		return fmt.Errorf("%w: maxCallDepth must be positive, got %d",
			ErrConfig, c.MaxCallDepth)
	}

	if _, err := unit.ParseCode(c.BaseCurrency); err != nil {
		return fmt.Errorf("%w: baseCurrency %q: %w", ErrConfig, c.BaseCurrency, err)
	}

	if _, err := c.location(); err != nil {
		return err
	}

	if _, err := format.New(c.Options); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	_, err := resolveRates(c.BaseCurrency, c.Rates)

	return err
}

func (c Config) location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.UTC, nil
	}

	loc, ok := value.Zone(c.TimeZone)
	if !ok {
		return nil, fmt.Errorf("%w: unknown timeZone %q", ErrConfig, c.TimeZone)
	}

	return loc, nil
}
