package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/facet-ui/facet/notify"
	"github.com/facet-ui/facet/observability"
	"github.com/facet-ui/facet/schema"
)

// Store is a keyed, priority-ordered value store with change notification
// and lazily created sub-stores. Thread-safe for concurrent access.
type Store struct {
	name string

	mu      sync.RWMutex
	records map[string]record
	nextSeq uint64

	view      []Entry
	viewDirty bool

	children map[string]*Store

	schema *schema.Schema

	notifier        *notify.Notifier
	observer        observability.Observer
	defaultPriority int
}

// New creates an empty Store with the given name. The name attributes
// notifications and events to this store.
func New(name string, opts ...Option) *Store {
	s := &Store{
		name:            name,
		records:         make(map[string]record),
		children:        make(map[string]*Store),
		notifier:        notify.New(name),
		observer:        observability.NoOpObserver{},
		defaultPriority: DefaultPriority,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the store's name.
func (s *Store) Name() string {
	return s.name
}

// Add registers a value under key. Fails with ErrDuplicateKey when the key
// exists and WithForce was not given. A forced replacement keeps the prior
// entry's priority and view position unless WithPriority supplies a new one;
// a fresh entry uses the supplied priority or the store default.
//
// When a schema is installed the value is validated first; on violation
// nothing is stored. On success the ordered view is invalidated and an
// OpAdd update is published carrying the new value.
func (s *Store) Add(key string, value any, opts ...AddOption) error {
	if key == "" {
		return ErrEmptyKey
	}

	options := applyAddOptions(opts)

	s.mu.Lock()

	prior, exists := s.records[key]
	if exists && !options.force {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrDuplicateKey, key)
	}

	if s.schema != nil {
		if err := schema.Validate(value, s.schema); err != nil {
			s.mu.Unlock()
			s.emit(EventSchemaViolation, observability.LevelWarning, map[string]any{
				"key":   key,
				"error": err.Error(),
			})
			return fmt.Errorf("%w: key %q: %v", ErrSchemaValidation, key, err)
		}
	}

	priority := s.defaultPriority
	switch {
	case options.hasPriority:
		priority = options.priority
	case exists:
		priority = prior.priority
	}

	seq := prior.seq
	if !exists {
		s.nextSeq++
		seq = s.nextSeq
	}

	s.records[key] = record{value: value, priority: priority, seq: seq}
	s.invalidate()
	s.mu.Unlock()

	s.notifier.Publish(notify.NewUpdate(notify.OpAdd, key, value))
	s.emit(EventAdd, observability.LevelVerbose, map[string]any{
		"key":      key,
		"priority": priority,
		"replaced": exists,
	})

	return nil
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (s *Store) Get(key string) (any, error) {
	value, exists := s.Lookup(key)
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return value, nil
}

// Lookup returns the value and true if the key is present, nil and false
// otherwise.
func (s *Store) Lookup(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.records[key]
	if !exists {
		return nil, false
	}
	return rec.value, true
}

// GetDefault returns the value stored under key, or fallback when the key is
// absent. A stored nil is returned as nil, not replaced by the fallback.
func (s *Store) GetDefault(key string, fallback any) any {
	value, exists := s.Lookup(key)
	if !exists {
		return fallback
	}
	return value
}

// Contains reports whether key is present.
func (s *Store) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.records[key]
	return exists
}

// Remove deletes the entry under key and publishes an OpRemove update
// carrying the removed value. Removing an absent key is a no-op: no update
// is published. Returns whether an entry was removed.
func (s *Store) Remove(key string) bool {
	s.mu.Lock()
	rec, exists := s.records[key]
	if !exists {
		s.mu.Unlock()
		return false
	}

	delete(s.records, key)
	s.invalidate()
	s.mu.Unlock()

	s.notifier.Publish(notify.NewUpdate(notify.OpRemove, key, rec.value))
	s.emit(EventRemove, observability.LevelVerbose, map[string]any{"key": key})

	return true
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Values returns all values in view order. The slice is a fresh copy.
func (s *Store) Values() []any {
	view := s.snapshot()

	values := make([]any, len(view))
	for i, e := range view {
		values[i] = e.Value
	}
	return values
}

// Entries returns all entries in view order. The slice is a fresh copy.
func (s *Store) Entries() []Entry {
	view := s.snapshot()

	entries := make([]Entry, len(view))
	copy(entries, view)
	return entries
}

// Keys returns all keys in view order. The slice is a fresh copy.
func (s *Store) Keys() []string {
	view := s.snapshot()

	keys := make([]string, len(view))
	for i, e := range view {
		keys[i] = e.Key
	}
	return keys
}

// Category returns the named sub-store, creating it on first access. The
// child inherits the parent's observer and default priority but is otherwise
// independent: its own entries, subscribers, and schema.
func (s *Store) Category(name string) *Store {
	s.mu.Lock()
	child, exists := s.children[name]
	if !exists {
		child = New(name, WithObserver(s.observer), WithDefaultPriority(s.defaultPriority))
		s.children[name] = child
	}
	s.mu.Unlock()

	if !exists {
		s.emit(EventCategoryCreate, observability.LevelVerbose, map[string]any{"category": name})
	}

	return child
}

// Categories returns the names of all sub-stores created so far, sorted.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.children))
	for name := range s.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetSchema installs a validation schema. A store accepts exactly one
// schema: a second call fails with ErrSchemaAlreadySet. All current entries
// are validated in view order; on the first violation the schema is not
// installed and the store is left unchanged. Once installed, every
// subsequent Add is validated.
func (s *Store) SetSchema(doc *schema.Schema) error {
	if doc == nil {
		return ErrNilSchema
	}

	s.mu.Lock()
	if s.schema != nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrSchemaAlreadySet, s.name)
	}

	if s.viewDirty {
		s.rebuild()
	}
	for _, e := range s.view {
		if err := schema.Validate(e.Value, doc); err != nil {
			s.mu.Unlock()
			s.emit(EventSchemaViolation, observability.LevelWarning, map[string]any{
				"key":   e.Key,
				"error": err.Error(),
			})
			return fmt.Errorf("%w: key %q: %v", ErrSchemaValidation, e.Key, err)
		}
	}

	s.schema = doc
	s.mu.Unlock()

	s.emit(EventSchemaSet, observability.LevelInfo, map[string]any{"entries": s.Len()})
	return nil
}

// Schema returns the installed validation schema, or nil.
func (s *Store) Schema() *schema.Schema {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schema
}

// Subscribe registers a handler for this store's updates. Handlers run
// synchronously after the mutation is applied, outside the store's lock, so
// they may read the store freely.
func (s *Store) Subscribe(handler notify.Handler) *notify.Subscription {
	return s.notifier.Subscribe(handler)
}

// Unsubscribe removes a subscription returned by Subscribe.
func (s *Store) Unsubscribe(sub *notify.Subscription) {
	s.notifier.Unsubscribe(sub)
}

// Updates bridges this store's notifications onto a buffered channel.
// Delivery never blocks a mutation; updates are dropped when the buffer is
// full. Unsubscribe the returned subscription when done.
func (s *Store) Updates(ctx context.Context, buffer int) (*notify.Channel[notify.Update], *notify.Subscription) {
	return s.notifier.Stream(ctx, buffer)
}

// Metrics returns notification counters for this store.
func (s *Store) Metrics() notify.MetricsSnapshot {
	return s.notifier.Metrics()
}

// Close shuts down notification for this store and all its categories.
func (s *Store) Close() {
	s.mu.RLock()
	children := make([]*Store, 0, len(s.children))
	for _, child := range s.children {
		children = append(children, child)
	}
	s.mu.RUnlock()

	for _, child := range children {
		child.Close()
	}
	s.notifier.Close()
}

// snapshot returns the current ordered view, rebuilding it if a mutation
// invalidated the cache. Callers must copy before handing the slice out.
func (s *Store) snapshot() []Entry {
	s.mu.RLock()
	if !s.viewDirty {
		view := s.view
		s.mu.RUnlock()
		return view
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.viewDirty {
		s.rebuild()
	}
	return s.view
}

// invalidate marks the view stale. Called with the lock held, before the
// mutation's update is published, so subscribers never observe a stale view.
func (s *Store) invalidate() {
	s.view = nil
	s.viewDirty = true
}

// rebuild recomputes the sorted view. Called with the lock held.
func (s *Store) rebuild() {
	seqs := make(map[string]uint64, len(s.records))
	entries := make([]Entry, 0, len(s.records))
	for key, rec := range s.records {
		entries = append(entries, Entry{Key: key, Value: rec.value, Priority: rec.priority})
		seqs[key] = rec.seq
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority < entries[j].Priority
		}
		return seqs[entries[i].Key] < seqs[entries[j].Key]
	})

	s.view = entries
	s.viewDirty = false
}

func (s *Store) emit(typ observability.EventType, level observability.Level, data map[string]any) {
	s.observer.OnEvent(context.Background(), observability.NewEvent(typ, level, "registry."+s.name, data))
}
