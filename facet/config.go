package facet

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/facet-ui/facet/journal"
	"github.com/facet-ui/facet/manifest"
	"github.com/facet-ui/facet/observability"
	"github.com/facet-ui/facet/registry"
	"github.com/facet-ui/facet/render"
)

// Config holds initialization parameters for all app subsystems.
// Each subsystem section delegates to that subsystem's config-driven
// constructor.
type Config struct {
	Registry registry.Config `json:"registry"`
	Manifest manifest.Config `json:"manifest"`
	Render   render.Config   `json:"render"`
	Journal  journal.Config  `json:"journal"`

	// Observer specifies which registered observer receives events
	// ("noop", "slog", or a name added via observability.RegisterObserver).
	Observer string `json:"observer,omitempty"`
	LogLevel string `json:"log_level,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Registry: registry.DefaultConfig(),
		Manifest: manifest.DefaultConfig(),
		Render:   render.DefaultConfig(),
		Journal:  journal.DefaultConfig(),
		Observer: observability.ObserverSlog,
		LogLevel: "info",
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Registry.Merge(&source.Registry)
	c.Manifest.Merge(&source.Manifest)
	c.Render.Merge(&source.Render)
	c.Journal.Merge(&source.Journal)

	if source.Observer != "" {
		c.Observer = source.Observer
	}
	if source.LogLevel != "" {
		c.LogLevel = source.LogLevel
	}
}

// LoadConfig reads a JSON config file, merges it with defaults, and returns
// the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
