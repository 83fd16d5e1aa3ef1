package component

// Action defines a named operation dispatchable through the action registry.
// This is the canonical action definition type used across the framework.
// Params uses JSON Schema format to describe the action's input.
type Action struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	Params      map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}
