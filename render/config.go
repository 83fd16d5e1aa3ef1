package render

import "github.com/facet-ui/facet/observability"

// FailFunc receives child render failures after the pass that detected them
// completes. The failed child is already evicted when the callback runs.
type FailFunc func(key string, err error)

// StackConfig configures a Stack adapter.
type StackConfig struct {
	// Gap is the number of blank lines between children.
	Gap int
	// Divider draws a horizontal rule between children.
	Divider bool
	// MaxChildren caps the number of children rendered per pass; 0 renders
	// all.
	MaxChildren int
	// OnFailure is invoked for each child failure after the pass completes.
	OnFailure FailFunc
	// Observer receives render events. Nil means no events.
	Observer observability.Observer
}

// DefaultStackConfig returns a Stack configuration with no gap, no divider,
// and no child cap.
func DefaultStackConfig() StackConfig {
	return StackConfig{}
}

// GridConfig configures a Grid adapter.
type GridConfig struct {
	// Columns is the number of panels per row. Values below 1 are treated
	// as 1.
	Columns int
	// ShowTitles renders each entry's key as the panel title.
	ShowTitles bool
	// PanelWidth fixes each panel's inner width; 0 sizes panels to content.
	PanelWidth int
	// OnFailure is invoked for each child failure after the pass completes.
	OnFailure FailFunc
	// Observer receives render events. Nil means no events.
	Observer observability.Observer
}

// DefaultGridConfig returns a two-column Grid configuration with titles.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		Columns:    2,
		ShowTitles: true,
	}
}

// Surface names accepted by Config.Surface.
const (
	SurfaceStack = "stack"
	SurfaceGrid  = "grid"
)

// Config holds render surface initialization parameters as loaded from the
// application config file. It covers both surfaces; fields irrelevant to the
// selected one are ignored.
type Config struct {
	Surface     string `json:"surface,omitempty"`      // "stack" or "grid".
	Category    string `json:"category,omitempty"`     // registry category the surface renders.
	Gap         int    `json:"gap,omitempty"`          // stack: blank lines between children.
	Divider     bool   `json:"divider,omitempty"`      // stack: horizontal rule between children.
	MaxChildren int    `json:"max_children,omitempty"` // stack: children per pass; 0 renders all.
	Columns     int    `json:"columns,omitempty"`      // grid: panels per row.
	ShowTitles  *bool  `json:"show_titles,omitempty"`  // grid: panel titles; nil keeps the default.
	PanelWidth  int    `json:"panel_width,omitempty"`  // grid: fixed panel width.
}

// DefaultConfig returns the default render configuration: a stack over the
// widgets category.
func DefaultConfig() Config {
	return Config{
		Surface:  SurfaceStack,
		Category: "widgets",
		Columns:  2,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Surface != "" {
		c.Surface = source.Surface
	}
	if source.Category != "" {
		c.Category = source.Category
	}
	if source.Gap != 0 {
		c.Gap = source.Gap
	}
	if source.Divider {
		c.Divider = true
	}
	if source.MaxChildren != 0 {
		c.MaxChildren = source.MaxChildren
	}
	if source.Columns != 0 {
		c.Columns = source.Columns
	}
	if source.ShowTitles != nil {
		c.ShowTitles = source.ShowTitles
	}
	if source.PanelWidth != 0 {
		c.PanelWidth = source.PanelWidth
	}
}
