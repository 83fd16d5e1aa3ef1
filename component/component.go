// Package component defines the canonical descriptor types registered into
// facet stores: components (views, widgets, services), actions, and the kind
// taxonomy shared by manifests, registries, and surfaces.
package component

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Component describes a registrable object as declared in a manifest or
// built in code. Name is the registry key; Kind selects the category the
// loader registers it under. Priority is a pointer so that an omitted value
// can be distinguished from an explicit 0 (lower priorities sort first).
type Component struct {
	Name     string         `json:"name" yaml:"name"`
	Kind     Kind           `json:"kind" yaml:"kind"`
	Title    string         `json:"title,omitempty" yaml:"title,omitempty"`
	Priority *int           `json:"priority,omitempty" yaml:"priority,omitempty"`
	Text     string         `json:"text,omitempty" yaml:"text,omitempty"`
	Meta     map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// UnmarshalYAML accepts both the full mapping form and a scalar shorthand.
// The shorthand
//
//	components:
//	  - clock
//
// is equivalent to {name: clock, kind: widget}. This keeps hand-written
// manifests compact while the mapping form remains canonical.
func (c *Component) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}
		c.Name = name
		c.Kind = KindWidget
		return nil
	}

	type plain Component
	return node.Decode((*plain)(c))
}

// Validate checks that the descriptor can be registered.
func (c *Component) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("component name is empty")
	}
	if c.Kind == "" {
		return fmt.Errorf("component %q: kind is empty (valid: %s)", c.Name, KindStrings())
	}
	if !IsValid(string(c.Kind)) {
		return fmt.Errorf("component %q: unknown kind %q (valid: %s)", c.Name, c.Kind, KindStrings())
	}
	return nil
}

// EffectiveTitle returns the display title, falling back to the name.
func (c *Component) EffectiveTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Name
}
