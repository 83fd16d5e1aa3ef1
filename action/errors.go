package action

import "errors"

// Sentinel errors for the action registry.
var (
	ErrNotFound      = errors.New("action not found")
	ErrAlreadyExists = errors.New("action already registered")
	ErrEmptyName     = errors.New("action name is empty")
)
