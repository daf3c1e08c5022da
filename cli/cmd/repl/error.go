package repl

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds   = errors.New("index out of range")
	ErrNoEngine      = errors.New("no engine")
	ErrEmptyDocument = errors.New("document is empty")
	ErrNoPath        = errors.New("missing file name")
)
