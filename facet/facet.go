// Package facet composes the registry, manifest loading, the journal, and a
// render surface into the application runtime.
//
// The app initializes from configuration via New, creating all subsystems
// internally. Functional options allow overrides of any subsystem.
//
//	app, err := facet.New(&cfg)
//	err = app.Run(ctx)
package facet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/facet-ui/facet/journal"
	"github.com/facet-ui/facet/manifest"
	"github.com/facet-ui/facet/notify"
	"github.com/facet-ui/facet/observability"
	"github.com/facet-ui/facet/registry"
	"github.com/facet-ui/facet/render"
)

// updateBuffer sizes the update stream feeding the run loop. Bursts beyond
// it are dropped; the following pass reads current state anyway.
const updateBuffer = 16

// Option configures an App before config-driven initialization. Anything an
// option sets is kept; New creates the rest from configuration.
type Option func(*App)

// WithObserver replaces the observer New would resolve from Config.Observer.
// An injected observer receives the full event stream; Config.LogLevel
// filters only resolved observers.
func WithObserver(o observability.Observer) Option {
	return func(a *App) { a.observer = o }
}

// WithRoot overrides the config-created root store.
func WithRoot(root *registry.Store) Option {
	return func(a *App) { a.root = root }
}

// WithJournal overrides the config-created journal.
func WithJournal(j journal.Journal) Option {
	return func(a *App) { a.journal = j }
}

// WithManifestStore overrides the config-created manifest store.
func WithManifestStore(s manifest.Store) Option {
	return func(a *App) {
		a.manifests = s
		a.manifestsSet = true
	}
}

// WithSurface overrides the config-created render surface.
func WithSurface(s Surface) Option {
	return func(a *App) { a.surface = s }
}

// WithClock overrides the time source placed into the render environment.
func WithClock(clock func() time.Time) Option {
	return func(a *App) { a.clock = clock }
}

// WithOutput sets the writer Run prints frames to. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(a *App) { a.out = w }
}

// App is the application runtime: it loads manifests into the root store,
// watches them for changes, and re-renders the configured surface whenever
// the rendered category updates.
type App struct {
	cfg      *Config
	root     *registry.Store
	journal  journal.Journal
	observer observability.Observer
	surface  Surface
	clock    func() time.Time
	out      io.Writer

	manifests    manifest.Store
	manifestsSet bool
	loader       *manifest.Loader

	journalSub *notify.Subscription
}

// New creates an App from configuration. Subsystems are initialized from
// their respective config sections; functional options can replace any of
// them, for tests or for embedding.
func New(cfg *Config, opts ...Option) (*App, error) {
	a := &App{
		cfg:   cfg,
		clock: time.Now,
		out:   os.Stdout,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.observer == nil {
		base, err := observability.GetObserver(cfg.Observer)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve observer: %w", err)
		}
		level, err := observability.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to parse log level: %w", err)
		}
		a.observer = observability.NewFilterObserver(base, level)
	}

	if a.journal == nil {
		j, err := journal.New(&cfg.Journal)
		if err != nil {
			return nil, fmt.Errorf("failed to create journal: %w", err)
		}
		a.journal = j
	}

	if a.root == nil {
		a.root = registry.New(cfg.Registry.Name,
			registry.WithObserver(a.observer),
			registry.WithDefaultPriority(cfg.Registry.DefaultPriority),
		)
	}

	if !a.manifestsSet {
		s, err := manifest.NewStore(&cfg.Manifest)
		if err != nil {
			return nil, fmt.Errorf("failed to create manifest store: %w", err)
		}
		a.manifests = s
	}
	if a.manifests != nil {
		a.loader = manifest.NewLoader(a.manifests, a.root,
			manifest.WithObserver(a.observer))
	}

	if a.surface == nil {
		s, err := newSurface(&cfg.Render, a.Category(), a.observer)
		if err != nil {
			return nil, err
		}
		a.surface = s
	}

	a.journalSub = a.Category().Subscribe(a.journal.Record)

	return a, nil
}

// Root returns the app's root store.
func (a *App) Root() *registry.Store {
	return a.root
}

// Category returns the store the configured surface renders.
func (a *App) Category() *registry.Store {
	return a.root.Category(a.cfg.Render.Category)
}

// Journal returns the app's update journal.
func (a *App) Journal() journal.Journal {
	return a.journal
}

// Surface returns the app's render surface.
func (a *App) Surface() Surface {
	return a.surface
}

// Loader returns the manifest loader, nil when manifests are disabled.
func (a *App) Loader() *manifest.Loader {
	return a.loader
}

// Run loads manifests, starts the watcher when configured, renders an
// initial frame, then re-renders whenever the rendered category changes.
// Blocks until ctx ends; returns the context's error.
func (a *App) Run(ctx context.Context) error {
	a.emit(ctx, EventRunStart, observability.LevelInfo, map[string]any{
		"surface":  a.cfg.Render.Surface,
		"category": a.cfg.Render.Category,
		"watch":    a.cfg.Manifest.Watch,
	})

	if a.loader != nil {
		if err := a.loader.LoadAll(ctx); err != nil {
			a.emit(ctx, EventError, observability.LevelError, map[string]any{"error": err.Error()})
			return fmt.Errorf("load manifests: %w", err)
		}
	}

	if a.loader != nil && a.cfg.Manifest.Watch {
		watcher := manifest.NewWatcher(a.loader, a.cfg.Manifest.Path, manifest.WatchConfig{
			Debounce: a.cfg.Manifest.Debounce(),
			Observer: a.observer,
		})
		go func() {
			err := watcher.Run(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				a.emit(ctx, EventError, observability.LevelWarning, map[string]any{"error": err.Error()})
			}
		}()
	}

	stream, sub := a.Category().Updates(ctx, updateBuffer)
	defer a.Category().Unsubscribe(sub)

	a.write(a.pass(ctx))

	for {
		if _, err := stream.Receive(ctx); err != nil {
			a.emit(ctx, EventRunComplete, observability.LevelInfo, nil)
			return ctx.Err()
		}
		// Coalesce bursts into one pass; the pass reads current state.
		for {
			if _, ok := stream.TryReceive(); !ok {
				break
			}
		}
		a.write(a.pass(ctx))
	}
}

// RenderOnce loads manifests and renders a single frame without starting the
// run loop.
func (a *App) RenderOnce(ctx context.Context) (render.Frame, error) {
	if a.loader != nil {
		if err := a.loader.LoadAll(ctx); err != nil {
			return render.Frame{}, fmt.Errorf("load manifests: %w", err)
		}
	}
	return a.pass(ctx), nil
}

// Close detaches the app from its stores. The root store itself belongs to
// the caller and stays open.
func (a *App) Close() {
	a.Category().Unsubscribe(a.journalSub)
	a.surface.Close()
}

// Env returns the environment render passes run under: the observer plus
// the current clock reading at key "now".
func (a *App) Env() render.Env {
	return render.NewEnv(a.observer).With("now", a.clock())
}

func (a *App) pass(ctx context.Context) render.Frame {
	frame := a.surface.Render(a.Env())
	a.emit(ctx, EventRenderPass, observability.LevelVerbose, map[string]any{
		"rendered": frame.Rendered,
		"failed":   frame.Failed,
	})
	return frame
}

func (a *App) write(frame render.Frame) {
	fmt.Fprintln(a.out, frame.Output)
}

func (a *App) emit(ctx context.Context, typ observability.EventType, level observability.Level, data map[string]any) {
	a.observer.OnEvent(ctx, observability.NewEvent(typ, level, "facet.App", data))
}
