package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound       = errors.New("not found")
	ErrMalformedTag   = errors.New("malformed tag")
	ErrEmptyAggregate = errors.New("empty aggregate")
	ErrInvalidConfig  = errors.New("invalid configuration")
)
