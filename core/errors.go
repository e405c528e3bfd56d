package core

import "errors"

var (
	// ErrUnknownDialect is returned when no render branch exists for a dialect.
	ErrUnknownDialect = errors.New("unknown dialect")
	// ErrUnknownLevel is returned for section levels outside 1-5.
	ErrUnknownLevel = errors.New("unknown section level")
	// ErrMalformedTable is returned for empty or non-rectangular table content.
	ErrMalformedTable = errors.New("malformed table")
)
