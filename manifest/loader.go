package manifest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/facet-ui/facet/observability"
	"github.com/facet-ui/facet/registry"
)

// registration records where one manifest component landed in the registry.
type registration struct {
	category string
	key      string
}

// Loader applies manifest documents to a registry store: category schemas
// first, then components force-added into their kind's category. The loader
// remembers what each manifest registered so a re-application removes
// components the new revision dropped, and Remove unregisters a manifest
// wholesale. Thread-safe for concurrent access.
type Loader struct {
	store    Store
	target   *registry.Store
	observer observability.Observer

	mu      sync.Mutex
	applied map[string][]registration
}

// Option configures a Loader.
type Option func(*Loader)

// WithObserver sets the observer for loader events.
func WithObserver(observer observability.Observer) Option {
	return func(l *Loader) {
		if observer != nil {
			l.observer = observer
		}
	}
}

// NewLoader creates a Loader that applies documents from store into target.
func NewLoader(store Store, target *registry.Store, opts ...Option) *Loader {
	l := &Loader{
		store:    store,
		target:   target,
		observer: observability.NoOpObserver{},
		applied:  make(map[string][]registration),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadAll loads and applies every manifest in the store. The first failure
// aborts: a broken manifest at startup should be loud, not skipped.
func (l *Loader) LoadAll(ctx context.Context) error {
	names, err := l.store.List(ctx)
	if err != nil {
		return fmt.Errorf("list manifests: %w", err)
	}

	for _, name := range names {
		if err := l.Load(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

// Load loads and applies one manifest by name.
func (l *Loader) Load(ctx context.Context, name string) error {
	docs, err := l.store.Load(ctx, name)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	m, err := Parse(docs[0].Data)
	if err != nil {
		return fmt.Errorf("manifest %s: %w", name, err)
	}
	return l.Apply(name, m)
}

// Apply registers a parsed manifest into the target store under the given
// name. Components present in an earlier application of the same name but
// absent from m are removed.
func (l *Loader) Apply(name string, m *Manifest) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("manifest %s: %w", name, err)
	}

	for _, cat := range m.Categories {
		doc, err := cat.CompiledSchema()
		if err != nil {
			return fmt.Errorf("manifest %s: %w", name, err)
		}
		if doc == nil {
			// Declared without a schema: creates the category eagerly.
			l.target.Category(cat.Name)
			continue
		}
		err = l.target.Category(cat.Name).SetSchema(doc)
		if err != nil && !errors.Is(err, registry.ErrSchemaAlreadySet) {
			return fmt.Errorf("manifest %s: category %q: %w", name, cat.Name, err)
		}
	}

	regs := make([]registration, 0, len(m.Components))
	for i := range m.Components {
		c := m.Components[i]
		category := c.Kind.Category()

		opts := []registry.AddOption{registry.WithForce()}
		if c.Priority != nil {
			opts = append(opts, registry.WithPriority(*c.Priority))
		}
		if err := l.target.Category(category).Add(c.Name, c, opts...); err != nil {
			return fmt.Errorf("manifest %s: component %q: %w", name, c.Name, err)
		}
		regs = append(regs, registration{category: category, key: c.Name})
	}

	l.mu.Lock()
	previous := l.applied[name]
	l.applied[name] = regs
	l.mu.Unlock()

	removed := l.removeStale(previous, regs)

	l.emit(EventApply, observability.LevelInfo, map[string]any{
		"manifest":   name,
		"components": len(regs),
		"categories": len(m.Categories),
		"removed":    removed,
	})
	return nil
}

// Remove unregisters everything a previously applied manifest added.
// Unknown names are a no-op.
func (l *Loader) Remove(name string) {
	l.mu.Lock()
	regs := l.applied[name]
	delete(l.applied, name)
	l.mu.Unlock()

	if regs == nil {
		return
	}
	for _, reg := range regs {
		l.target.Category(reg.category).Remove(reg.key)
	}

	l.emit(EventRemove, observability.LevelInfo, map[string]any{
		"manifest":   name,
		"components": len(regs),
	})
}

// Manifests returns the names of all applied manifests, sorted.
func (l *Loader) Manifests() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	names := make([]string, 0, len(l.applied))
	for name := range l.applied {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// removeStale unregisters components from the previous application that the
// current one no longer declares. Returns how many were removed.
func (l *Loader) removeStale(previous, current []registration) int {
	if len(previous) == 0 {
		return 0
	}

	keep := make(map[registration]bool, len(current))
	for _, reg := range current {
		keep[reg] = true
	}

	removed := 0
	for _, reg := range previous {
		if keep[reg] {
			continue
		}
		if l.target.Category(reg.category).Remove(reg.key) {
			removed++
		}
	}
	return removed
}

// Scaffold writes a starter manifest when the store is empty, so a fresh
// directory renders something on first run. Returns the names of written
// documents, nil when the store already has content.
func (l *Loader) Scaffold(ctx context.Context, name string) ([]string, error) {
	names, err := l.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("scaffold: %w", err)
	}
	if len(names) > 0 {
		return nil, nil
	}

	doc := Document{Name: name, Data: []byte(starterManifest)}
	if err := l.store.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("scaffold: %w", err)
	}

	l.emit(EventScaffold, observability.LevelInfo, map[string]any{"manifest": name})
	return []string{name}, nil
}

func (l *Loader) emit(typ observability.EventType, level observability.Level, data map[string]any) {
	l.observer.OnEvent(context.Background(), observability.NewEvent(typ, level, "manifest.Loader", data))
}

// starterManifest is what Scaffold writes into an empty manifest directory.
const starterManifest = `version: 1

categories:
  - name: widgets
    schema:
      type: object
      required: [name, kind]

components:
  - name: welcome
    kind: widget
    title: Welcome
    priority: 10
    text: Edit this manifest to declare your own components.
`
