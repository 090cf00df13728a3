package engine

import "errors"

// Errors surfaced to presentation layers. Match with errors.Is; the wrapped
// message carries the offending values.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrTimeout      = errors.New("calculation timed out")
	ErrUnsupported  = errors.New("calculation unsupported")
)
