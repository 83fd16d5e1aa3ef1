package render

import "github.com/facet-ui/facet/observability"

const (
	// Render passes
	EventPassComplete observability.EventType = "render.pass.complete"

	// Child error boundary
	EventChildFail    observability.EventType = "render.child.fail"
	EventChildRestore observability.EventType = "render.child.restore"
)
