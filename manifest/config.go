package manifest

import "time"

// Config holds manifest subsystem initialization parameters.
type Config struct {
	Path       string `json:"path,omitempty"`        // manifest directory; empty disables manifests.
	Watch      bool   `json:"watch,omitempty"`       // re-apply manifests when files change.
	DebounceMS int    `json:"debounce_ms,omitempty"` // reload debounce in milliseconds.
}

// DefaultConfig returns the default manifest configuration (disabled).
func DefaultConfig() Config {
	return Config{DebounceMS: 500}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Path != "" {
		c.Path = source.Path
	}
	if source.Watch {
		c.Watch = true
	}
	if source.DebounceMS != 0 {
		c.DebounceMS = source.DebounceMS
	}
}

// Debounce returns the configured debounce as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// NewStore creates a Store from configuration. Returns nil Store when Path
// is empty, indicating manifests are disabled.
func NewStore(cfg *Config) (Store, error) {
	if cfg.Path == "" {
		return nil, nil
	}
	return NewFileStore(cfg.Path), nil
}
