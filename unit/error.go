package unit

import "errors"

// Sentinel errors.
var (
	ErrIncompatible = errors.New("incompatible dimensions")
	ErrUnknownRate  = errors.New("no exchange rate")
	ErrNotCurrency  = errors.New("not a currency code")
)
