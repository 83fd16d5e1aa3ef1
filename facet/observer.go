package facet

import "github.com/facet-ui/facet/observability"

// App event types emitted during the run loop.
const (
	EventRunStart    observability.EventType = "facet.run.start"
	EventRunComplete observability.EventType = "facet.run.complete"
	EventRenderPass  observability.EventType = "facet.render.pass"
	EventError       observability.EventType = "facet.error"
)
