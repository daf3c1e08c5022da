package engine

import "errors"

// Sentinel errors.
var (
	ErrConfig = errors.New("invalid configuration")
	ErrRate   = errors.New("invalid exchange rate")
)
