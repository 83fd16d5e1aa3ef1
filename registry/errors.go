package registry

import "errors"

// Sentinel errors for store operations.
var (
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrKeyNotFound      = errors.New("key not found")
	ErrEmptyKey         = errors.New("key is empty")
	ErrSchemaAlreadySet = errors.New("schema already set")
	ErrSchemaValidation = errors.New("schema validation failed")
	ErrNilSchema        = errors.New("schema is nil")
)
