package render

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/facet-ui/facet/notify"
	"github.com/facet-ui/facet/observability"
	"github.com/facet-ui/facet/registry"
)

// adapter is the error-boundary core shared by Stack and Grid: it tracks
// which children are evicted, clears evictions when the store updates the
// corresponding key, and surfaces failures once the pass that found them has
// completed.
type adapter struct {
	store    *registry.Store
	observer observability.Observer
	onFail   FailFunc
	source   string

	mu      sync.Mutex
	evicted map[string]error

	sub *notify.Subscription
}

func newAdapter(store *registry.Store, observer observability.Observer, onFail FailFunc, source string) *adapter {
	if observer == nil {
		observer = observability.NoOpObserver{}
	}

	a := &adapter{
		store:    store,
		observer: observer,
		onFail:   onFail,
		source:   source,
		evicted:  make(map[string]error),
	}
	a.sub = store.Subscribe(a.handleUpdate)

	return a
}

// handleUpdate clears the eviction for a key the store just changed. A
// re-registered child gets another chance on the next pass; a removed child
// no longer needs tracking.
func (a *adapter) handleUpdate(u notify.Update) {
	a.mu.Lock()
	_, wasEvicted := a.evicted[u.Key]
	delete(a.evicted, u.Key)
	a.mu.Unlock()

	if wasEvicted && u.IsAdd() {
		a.emit(EventChildRestore, observability.LevelVerbose, map[string]any{"key": u.Key})
	}
}

// Store returns the adapter's backing store.
func (a *adapter) Store() *registry.Store {
	return a.store
}

// Evicted returns the keys currently excluded from rendering, sorted.
func (a *adapter) Evicted() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	keys := make([]string, 0, len(a.evicted))
	for key := range a.evicted {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Close detaches the adapter from its store's updates.
func (a *adapter) Close() {
	a.store.Unsubscribe(a.sub)
}

func (a *adapter) isEvicted(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, evicted := a.evicted[key]
	return evicted
}

func (a *adapter) evict(key string, err error) {
	a.mu.Lock()
	a.evicted[key] = err
	a.mu.Unlock()
}

// renderChild renders one entry inside the error boundary. A panicking
// renderer is converted to an error carrying the panic value.
func (a *adapter) renderChild(env Env, entry registry.Entry) (output string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrChildPanic, r)
		}
	}()

	return renderValue(env, entry.Value)
}

// pass renders every non-evicted entry, evicting the ones that fail. The
// returned results hold one entry per rendered child, failures included;
// maxChildren caps successful children when positive.
func (a *adapter) pass(env Env, maxChildren int) []ChildResult {
	entries := a.store.Entries()

	results := make([]ChildResult, 0, len(entries))
	rendered := 0
	for _, entry := range entries {
		if a.isEvicted(entry.Key) {
			continue
		}
		if maxChildren > 0 && rendered >= maxChildren {
			break
		}

		start := time.Now()
		output, err := a.renderChild(env, entry)
		result := ChildResult{
			Key:     entry.Key,
			Output:  output,
			Err:     err,
			Elapsed: time.Since(start),
		}
		results = append(results, result)

		if err != nil {
			a.evict(entry.Key, err)
			continue
		}
		rendered++
	}

	return results
}

// finish assembles the Frame and, once the pass is complete, surfaces each
// failure: an error-level event first, then the configured FailFunc.
func (a *adapter) finish(output string, results []ChildResult, start time.Time) Frame {
	frame := Frame{
		Output:   output,
		Children: results,
		Elapsed:  time.Since(start),
	}
	for _, child := range results {
		if child.Err != nil {
			frame.Failed++
		} else {
			frame.Rendered++
		}
	}

	a.emit(EventPassComplete, observability.LevelVerbose, map[string]any{
		"store":    a.store.Name(),
		"rendered": frame.Rendered,
		"failed":   frame.Failed,
	})

	for _, child := range results {
		if child.Err == nil {
			continue
		}
		a.emit(EventChildFail, observability.LevelError, map[string]any{
			"store": a.store.Name(),
			"key":   child.Key,
			"error": child.Err.Error(),
		})
		if a.onFail != nil {
			a.onFail(child.Key, child.Err)
		}
	}

	return frame
}

func (a *adapter) emit(typ observability.EventType, level observability.Level, data map[string]any) {
	a.observer.OnEvent(context.Background(), observability.NewEvent(typ, level, a.source, data))
}
