package render

import (
	"maps"

	"github.com/facet-ui/facet/observability"
)

// Env is the immutable environment scope a render pass hands to each child.
//
// All modifications return new Env values; a child deriving its own scope
// cannot affect siblings. The zero value is usable and equivalent to
// NewEnv(nil) without allocation.
type Env struct {
	data     map[string]any
	observer observability.Observer
	width    int
	height   int
}

// NewEnv creates an empty environment. A nil observer is replaced with
// NoOpObserver so children can always emit events.
func NewEnv(observer observability.Observer) Env {
	if observer == nil {
		observer = observability.NoOpObserver{}
	}
	return Env{
		data:     make(map[string]any),
		observer: observer,
	}
}

// Get retrieves a scope value by key.
func (e Env) Get(key string) (any, bool) {
	value, exists := e.data[key]
	return value, exists
}

// GetString retrieves a string scope value, or fallback when the key is
// absent or not a string.
func (e Env) GetString(key, fallback string) string {
	if value, exists := e.data[key]; exists {
		if s, ok := value.(string); ok {
			return s
		}
	}
	return fallback
}

// With returns a new Env with the key-value pair added or updated. The
// receiver is unchanged.
func (e Env) With(key string, value any) Env {
	derived := e.clone()
	derived.data[key] = value
	return derived
}

// WithSize returns a new Env carrying the available render area.
func (e Env) WithSize(width, height int) Env {
	derived := e.clone()
	derived.width = width
	derived.height = height
	return derived
}

// Width returns the available render width, 0 when unconstrained.
func (e Env) Width() int {
	return e.width
}

// Height returns the available render height, 0 when unconstrained.
func (e Env) Height() int {
	return e.height
}

// Observer returns the environment's observer, never nil.
func (e Env) Observer() observability.Observer {
	if e.observer == nil {
		return observability.NoOpObserver{}
	}
	return e.observer
}

func (e Env) clone() Env {
	derived := Env{
		data:     maps.Clone(e.data),
		observer: e.observer,
		width:    e.width,
		height:   e.height,
	}
	if derived.data == nil {
		derived.data = make(map[string]any)
	}
	return derived
}
