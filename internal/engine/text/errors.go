package text

import "errors"

// Errors returned by text operations.
var (
	// ErrEmptyPattern indicates a padding pattern or separator with no runes.
	ErrEmptyPattern = errors.New("empty pattern")

	// ErrUnknownCase indicates a case mode ChangeCase does not know.
	ErrUnknownCase = errors.New("unknown case mode")
)
