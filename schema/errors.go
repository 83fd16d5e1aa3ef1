package schema

import "errors"

// Sentinel errors for schema construction and validation.
var (
	ErrViolation     = errors.New("schema violation")
	ErrInvalidSchema = errors.New("invalid schema")
	ErrInvalidType   = errors.New("type must be a struct or pointer to struct")
)
