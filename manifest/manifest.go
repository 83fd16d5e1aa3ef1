package manifest

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/facet-ui/facet/component"
	"github.com/facet-ui/facet/schema"
)

// Version is the manifest format version this package reads. Documents may
// omit the field; when present it must match.
const Version = 1

// Manifest is the decoded form of one manifest document.
type Manifest struct {
	Version    int                   `yaml:"version,omitempty"`
	Categories []Category            `yaml:"categories,omitempty"`
	Components []component.Component `yaml:"components,omitempty"`
}

// Category declares a registry category and, optionally, the JSON Schema its
// entries must satisfy. The schema is written inline as YAML.
type Category struct {
	Name   string         `yaml:"name"`
	Schema map[string]any `yaml:"schema,omitempty"`
}

// CompiledSchema converts the inline YAML schema to a *schema.Schema.
// Returns nil for categories declared without one.
func (c *Category) CompiledSchema() (*schema.Schema, error) {
	if c.Schema == nil {
		return nil, nil
	}
	data, err := json.Marshal(c.Schema)
	if err != nil {
		return nil, fmt.Errorf("category %q: %w", c.Name, err)
	}
	s, err := schema.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("category %q: %w", c.Name, err)
	}
	return s, nil
}

// Parse decodes and validates one manifest document.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks structural rules the decoder cannot: a supported version,
// named categories, well-formed components, and no duplicate registrations.
func (m *Manifest) Validate() error {
	if m.Version != 0 && m.Version != Version {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidManifest, m.Version)
	}

	for i := range m.Categories {
		if m.Categories[i].Name == "" {
			return fmt.Errorf("%w: category %d has no name", ErrInvalidManifest, i)
		}
	}

	// Components of different kinds land in different categories, so only
	// a kind+name pair collides.
	seen := make(map[string]bool, len(m.Components))
	for i := range m.Components {
		c := &m.Components[i]
		if err := c.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidManifest, err)
		}
		slot := string(c.Kind) + "/" + c.Name
		if seen[slot] {
			return fmt.Errorf("%w: duplicate component %q", ErrInvalidManifest, slot)
		}
		seen[slot] = true
	}

	return nil
}
