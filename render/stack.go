package render

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/facet-ui/facet/registry"
)

// Stack renders a store's children vertically, in view order. Children that
// fail are evicted per the adapter error boundary; siblings are unaffected.
type Stack struct {
	*adapter
	cfg StackConfig
}

// NewStack creates a Stack over the given store and subscribes it to the
// store's updates. Close the Stack to detach it.
func NewStack(store *registry.Store, cfg StackConfig) *Stack {
	if store == nil {
		panic(ErrNilStore)
	}
	return &Stack{
		adapter: newAdapter(store, cfg.Observer, cfg.OnFailure, "render.Stack"),
		cfg:     cfg,
	}
}

// Render runs one pass over the store's current entries and returns the
// assembled frame. Failures are surfaced after assembly, never mid-pass.
func (s *Stack) Render(env Env) Frame {
	start := time.Now()
	results := s.pass(env, s.cfg.MaxChildren)

	parts := make([]string, 0, len(results))
	for _, child := range results {
		if child.Err != nil {
			continue
		}
		parts = append(parts, child.Output)
	}

	return s.finish(s.assemble(parts, env), results, start)
}

func (s *Stack) assemble(parts []string, env Env) string {
	if len(parts) == 0 {
		return ""
	}

	separated := make([]string, 0, len(parts)*2-1)
	for i, part := range parts {
		if i > 0 {
			if s.cfg.Divider {
				separated = append(separated, s.divider(env))
			}
			for gap := 0; gap < s.cfg.Gap; gap++ {
				separated = append(separated, "")
			}
		}
		separated = append(separated, part)
	}

	return lipgloss.JoinVertical(lipgloss.Left, separated...)
}

func (s *Stack) divider(env Env) string {
	width := env.Width()
	if width <= 0 {
		width = 20
	}
	return faintStyle.Render(strings.Repeat("─", width))
}
