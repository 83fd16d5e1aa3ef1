package journal

// Config holds journal initialization parameters.
type Config struct {
	Capacity int `json:"capacity,omitempty"` // retained updates; 0 keeps everything.
}

// DefaultConfig returns the default journal configuration.
func DefaultConfig() Config {
	return Config{Capacity: 256}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Capacity != 0 {
		c.Capacity = source.Capacity
	}
}

// New creates a Journal from configuration. Currently returns an in-memory
// journal.
func New(cfg *Config) (Journal, error) {
	return NewMemoryJournal(cfg.Capacity), nil
}
