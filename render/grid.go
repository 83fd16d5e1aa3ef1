package render

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/facet-ui/facet/registry"
)

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(0, 1)

// Grid renders a store's children as bordered panels laid out in rows, in
// view order. Children that fail are evicted per the adapter error boundary.
type Grid struct {
	*adapter
	cfg GridConfig
}

// NewGrid creates a Grid over the given store and subscribes it to the
// store's updates. Close the Grid to detach it.
func NewGrid(store *registry.Store, cfg GridConfig) *Grid {
	if store == nil {
		panic(ErrNilStore)
	}
	if cfg.Columns < 1 {
		cfg.Columns = 1
	}
	return &Grid{
		adapter: newAdapter(store, cfg.Observer, cfg.OnFailure, "render.Grid"),
		cfg:     cfg,
	}
}

// Render runs one pass over the store's current entries and returns the
// assembled frame. Failures are surfaced after assembly, never mid-pass.
func (g *Grid) Render(env Env) Frame {
	start := time.Now()
	results := g.pass(env, 0)

	panels := make([]string, 0, len(results))
	for _, child := range results {
		if child.Err != nil {
			continue
		}
		panels = append(panels, g.panel(child))
	}

	return g.finish(g.assemble(panels), results, start)
}

func (g *Grid) panel(child ChildResult) string {
	style := panelStyle
	if g.cfg.PanelWidth > 0 {
		style = style.Width(g.cfg.PanelWidth)
	}

	content := child.Output
	if g.cfg.ShowTitles {
		title := titleStyle.Render(child.Key)
		if content == "" {
			content = title
		} else {
			content = lipgloss.JoinVertical(lipgloss.Left, title, content)
		}
	}

	return style.Render(content)
}

func (g *Grid) assemble(panels []string) string {
	if len(panels) == 0 {
		return ""
	}

	rows := make([]string, 0, (len(panels)+g.cfg.Columns-1)/g.cfg.Columns)
	for i := 0; i < len(panels); i += g.cfg.Columns {
		end := i + g.cfg.Columns
		if end > len(panels) {
			end = len(panels)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, panels[i:end]...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
