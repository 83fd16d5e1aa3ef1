package observability

import "context"

// MultiObserver fans out events to multiple observers.
type MultiObserver struct {
	observers []Observer
}

// NewMultiObserver creates a MultiObserver that forwards events to all
// non-nil observers.
func NewMultiObserver(observers ...Observer) *MultiObserver {
	filtered := make([]Observer, 0, len(observers))
	for _, obs := range observers {
		if obs != nil {
			filtered = append(filtered, obs)
		}
	}
	return &MultiObserver{observers: filtered}
}

func (m *MultiObserver) OnEvent(ctx context.Context, event Event) {
	for _, obs := range m.observers {
		obs.OnEvent(ctx, event)
	}
}

// FilterObserver forwards only events at or above a minimum level.
// Wraps another observer; used by the runtime to honor configured log levels
// without touching emitters.
type FilterObserver struct {
	next Observer
	min  Level
}

// NewFilterObserver creates a FilterObserver passing events with
// event.Level >= min to next.
func NewFilterObserver(next Observer, min Level) *FilterObserver {
	if next == nil {
		next = NoOpObserver{}
	}
	return &FilterObserver{next: next, min: min}
}

func (f *FilterObserver) OnEvent(ctx context.Context, event Event) {
	if event.Level < f.min {
		return
	}
	f.next.OnEvent(ctx, event)
}
