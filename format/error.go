package format

import "errors"

// Sentinel errors.
var (
	ErrDateFormat    = errors.New("unknown date display format")
	ErrLocale        = errors.New("invalid date locale")
	ErrDecimalPlaces = errors.New("decimal places out of range")
)
