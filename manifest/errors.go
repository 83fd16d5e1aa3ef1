package manifest

import "errors"

// Sentinel errors for store and loader operations.
var (
	ErrNotFound        = errors.New("manifest not found")
	ErrLoadFailed      = errors.New("load failed")
	ErrSaveFailed      = errors.New("save failed")
	ErrInvalidManifest = errors.New("invalid manifest")
)
