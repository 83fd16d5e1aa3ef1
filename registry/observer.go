package registry

import "github.com/facet-ui/facet/observability"

// Store event types emitted on mutation and schema activity.
const (
	EventAdd             observability.EventType = "registry.add"
	EventRemove          observability.EventType = "registry.remove"
	EventCategoryCreate  observability.EventType = "registry.category.create"
	EventSchemaSet       observability.EventType = "registry.schema.set"
	EventSchemaViolation observability.EventType = "registry.schema.violation"
)
