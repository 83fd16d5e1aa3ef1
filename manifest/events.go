package manifest

import "github.com/facet-ui/facet/observability"

const (
	// Loader
	EventApply     observability.EventType = "manifest.apply"
	EventApplyFail observability.EventType = "manifest.apply.fail"
	EventRemove    observability.EventType = "manifest.remove"
	EventScaffold  observability.EventType = "manifest.scaffold"

	// Watcher
	EventWatchStart observability.EventType = "manifest.watch.start"
	EventWatchError observability.EventType = "manifest.watch.error"
)
