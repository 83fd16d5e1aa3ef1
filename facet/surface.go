package facet

import (
	"fmt"

	"github.com/facet-ui/facet/observability"
	"github.com/facet-ui/facet/registry"
	"github.com/facet-ui/facet/render"
)

// Surface abstracts the render adapter the app drives. Both render.Stack and
// render.Grid satisfy it.
type Surface interface {
	Render(env render.Env) render.Frame
	Close()
}

// newSurface builds the configured surface over the store.
func newSurface(cfg *render.Config, store *registry.Store, observer observability.Observer) (Surface, error) {
	switch cfg.Surface {
	case render.SurfaceStack:
		sc := render.DefaultStackConfig()
		sc.Gap = cfg.Gap
		sc.Divider = cfg.Divider
		sc.MaxChildren = cfg.MaxChildren
		sc.Observer = observer
		return render.NewStack(store, sc), nil

	case render.SurfaceGrid:
		gc := render.DefaultGridConfig()
		if cfg.Columns > 0 {
			gc.Columns = cfg.Columns
		}
		if cfg.ShowTitles != nil {
			gc.ShowTitles = *cfg.ShowTitles
		}
		gc.PanelWidth = cfg.PanelWidth
		gc.Observer = observer
		return render.NewGrid(store, gc), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownSurface, cfg.Surface)
}
