package format

import (
	"fmt"
	"strings"
)

// DateFormat selects how dates are displayed.
type DateFormat int

const (
	DateISO    DateFormat = iota // iso
	DateLocale                   // locale
)

func (f DateFormat) String() string {
	if f == DateLocale {
		return "locale"
	}

	return "iso"
}

// MarshalText implements encoding.TextMarshaler.
func (f DateFormat) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *DateFormat) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "iso", "":
		*f = DateISO
	case "locale":
		*f = DateLocale
	default:
		return fmt.Errorf("%w: %q", ErrDateFormat, text)
	}

	return nil
}

// Options controls numeric precision, notation, and date rendering.
type Options struct {
	DateLocale          string     `json:"dateLocale"                    yaml:"dateLocale"`
	ScientificUpper     float64    `json:"scientificUpperThreshold"      yaml:"scientificUpperThreshold"`
	ScientificLower     float64    `json:"scientificLowerThreshold"      yaml:"scientificLowerThreshold"`
	DecimalPlaces       int        `json:"decimalPlaces"                 yaml:"decimalPlaces"`
	DateFormat          DateFormat `json:"dateDisplayFormat"             yaml:"dateDisplayFormat"`
	TrimScientificZeros bool       `json:"trimTrailingZerosInScientific" yaml:"trimTrailingZerosInScientific"`
}

// Defaults returns the default options.
func Defaults() Options {
	return Options{
		DecimalPlaces:       4,
		ScientificUpper:     1e12,
		ScientificLower:     1e-6,
		TrimScientificZeros: true,
		DateFormat:          DateISO,
		DateLocale:          "en-US",
	}
}
