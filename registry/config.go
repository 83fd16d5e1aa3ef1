package registry

// Config holds root store initialization parameters.
type Config struct {
	Name            string `json:"name,omitempty"`             // root store name, used in event sources.
	DefaultPriority int    `json:"default_priority,omitempty"` // priority for entries added without one.
}

// DefaultConfig returns the default registry configuration.
func DefaultConfig() Config {
	return Config{
		Name:            "root",
		DefaultPriority: DefaultPriority,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Name != "" {
		c.Name = source.Name
	}
	if source.DefaultPriority != 0 {
		c.DefaultPriority = source.DefaultPriority
	}
}
