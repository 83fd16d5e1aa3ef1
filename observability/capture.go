package observability

import (
	"context"
	"sync"
)

// CaptureObserver records every event it receives. Intended for tests that
// assert on emitted events; also usable as a bounded in-process event buffer.
// Thread-safe for concurrent use.
type CaptureObserver struct {
	mu     sync.Mutex
	events []Event
}

// NewCaptureObserver creates an empty CaptureObserver.
func NewCaptureObserver() *CaptureObserver {
	return &CaptureObserver{}
}

func (c *CaptureObserver) OnEvent(_ context.Context, event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

// Events returns a defensive copy of all captured events in arrival order.
func (c *CaptureObserver) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := make([]Event, len(c.events))
	copy(copied, c.events)
	return copied
}

// ByType returns captured events matching the given type, in arrival order.
func (c *CaptureObserver) ByType(typ EventType) []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var matched []Event
	for _, e := range c.events {
		if e.Type == typ {
			matched = append(matched, e)
		}
	}
	return matched
}

// Reset discards all captured events.
func (c *CaptureObserver) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
}
