package render

import "errors"

// Sentinel errors for render passes.
var (
	ErrChildPanic = errors.New("child renderer panicked")
	ErrNilStore   = errors.New("store is nil")
)
