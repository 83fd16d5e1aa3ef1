package manifest

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/facet-ui/facet/observability"
)

// WatchConfig holds Watcher tuning.
type WatchConfig struct {
	// Debounce is the minimum interval between reload batches. Editor save
	// sequences (truncate, write, rename) collapse into one reload.
	Debounce time.Duration
	// Observer overrides the loader's observer when set.
	Observer observability.Observer
}

// DefaultWatchConfig returns the default watcher tuning.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{Debounce: 500 * time.Millisecond}
}

// Watcher re-applies manifests when files in a directory change and removes
// the registrations of deleted manifests. The directory is watched flat;
// manifests in subdirectories are only picked up by an explicit LoadAll.
type Watcher struct {
	loader   *Loader
	dir      string
	limiter  *rate.Limiter
	observer observability.Observer
}

// NewWatcher creates a Watcher over dir feeding loader.
func NewWatcher(loader *Loader, dir string, cfg WatchConfig) *Watcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultWatchConfig().Debounce
	}
	observer := cfg.Observer
	if observer == nil {
		observer = loader.observer
	}
	return &Watcher{
		loader:   loader,
		dir:      dir,
		limiter:  rate.NewLimiter(rate.Every(cfg.Debounce), 1),
		observer: observer,
	}
}

// Run watches until ctx ends. Reload failures are reported as events, not
// returned: a broken edit must not kill the watch.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("manifest watch: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("manifest watch %s: %w", w.dir, err)
	}
	w.emit(EventWatchStart, observability.LevelInfo, map[string]any{"dir": w.dir})

	// Changes accumulate here until the debounce timer fires; the last
	// operation per name wins.
	pending := make(map[string]fsnotify.Op)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			name, ok := w.manifestName(event.Name)
			if !ok {
				continue
			}
			switch {
			case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
				pending[name] = fsnotify.Write
			case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
				pending[name] = fsnotify.Remove
			default:
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.limiter.Reserve().Delay())
				fire = timer.C
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.emit(EventWatchError, observability.LevelWarning, map[string]any{"error": err.Error()})

		case <-fire:
			w.flush(ctx, pending)
			pending = make(map[string]fsnotify.Op)
			timer = nil
			fire = nil
		}
	}
}

// manifestName maps an event path to a document name, rejecting paths that
// are not manifests.
func (w *Watcher) manifestName(path string) (string, bool) {
	rel, err := filepath.Rel(w.dir, path)
	if err != nil || !IsManifestName(rel) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// flush applies one accumulated batch of changes.
func (w *Watcher) flush(ctx context.Context, pending map[string]fsnotify.Op) {
	for name, op := range pending {
		if op == fsnotify.Remove {
			w.loader.Remove(name)
			continue
		}
		if err := w.loader.Load(ctx, name); err != nil {
			w.emit(EventApplyFail, observability.LevelError, map[string]any{
				"manifest": name,
				"error":    err.Error(),
			})
		}
	}
}

func (w *Watcher) emit(typ observability.EventType, level observability.Level, data map[string]any) {
	w.observer.OnEvent(context.Background(), observability.NewEvent(typ, level, "manifest.Watcher", data))
}
