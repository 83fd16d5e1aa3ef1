// Command facet renders a component dashboard in the terminal. Components
// come from builtin registrations and from YAML manifests; with -watch the
// screen follows manifest edits. Use -once for a single frame on stdout.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/facet-ui/facet/facet"
	"github.com/facet-ui/facet/manifest"
	"github.com/facet-ui/facet/observability"
	"github.com/facet-ui/facet/render"
	"github.com/facet-ui/facet/tui"
)

// viewCategory is the registry category the TUI's stack pane renders.
const viewCategory = "views"

func main() {
	if err := mainImpl(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "facet: %v\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	configFile := flag.String("config", "", "Path to config JSON file")
	manifestDir := flag.String("manifests", "", "Manifest directory (overrides config)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error; overrides config)")
	once := flag.Bool("once", false, "Render a single frame to stdout and exit")
	watch := flag.Bool("watch", false, "Reload manifests when files change (overrides config)")
	scaffold := flag.Bool("scaffold", false, "Write a starter manifest when the directory is empty")
	flag.Parse()
	if len(flag.Args()) > 0 {
		return fmt.Errorf("unknown arguments: %v", flag.Args())
	}

	var cfg *facet.Config
	if *configFile != "" {
		loaded, err := facet.LoadConfig(*configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		defaults := facet.DefaultConfig()
		cfg = &defaults
	}

	if *manifestDir != "" {
		cfg.Manifest.Path = *manifestDir
	}
	if *watch {
		cfg.Manifest.Watch = true
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	ll := &slog.LevelVar{}
	ll.Set(slog.LevelInfo)
	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      ll,
		TimeFormat: "15:04:05.000", // Like time.TimeOnly plus milliseconds.
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
	slog.SetDefault(logger)

	level, err := observability.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	ll.Set(level.SlogLevel())

	observer := observability.NewSlogObserver(logger)
	app, err := facet.New(cfg, facet.WithObserver(observer))
	if err != nil {
		return err
	}
	defer app.Close()

	registerBuiltins(app)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *scaffold {
		if app.Loader() == nil {
			return errors.New("scaffold requires a manifest directory (-manifests or config)")
		}
		written, err := app.Loader().Scaffold(ctx, "starter.yaml")
		if err != nil {
			return fmt.Errorf("scaffold: %w", err)
		}
		for _, name := range written {
			logger.Info("wrote starter manifest", "name", name)
		}
	}

	if *once {
		frame, err := app.RenderOnce(ctx)
		if err != nil {
			return err
		}
		fmt.Println(frame.Output)
		if !frame.Clean() {
			logger.Warn("some children failed to render", "failed", frame.Failed)
		}
		return nil
	}

	return runTUI(ctx, cfg, app, observer, logger)
}

// runTUI loads manifests, starts the watcher when configured, and hands the
// terminal to the interactive host until the user quits or ctx ends.
func runTUI(ctx context.Context, cfg *facet.Config, app *facet.App, observer observability.Observer, logger *slog.Logger) error {
	if app.Loader() != nil {
		if err := app.Loader().LoadAll(ctx); err != nil {
			return fmt.Errorf("load manifests: %w", err)
		}
		if cfg.Manifest.Watch {
			watcher := manifest.NewWatcher(app.Loader(), cfg.Manifest.Path, manifest.WatchConfig{
				Debounce: cfg.Manifest.Debounce(),
				Observer: observer,
			})
			go func() {
				if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.WarnContext(ctx, "manifest watcher stopped", "error", err)
				}
			}()
		}
	}

	// The app journals its render category; record view updates too so the
	// activity footer covers both panes.
	views := app.Root().Category(viewCategory)
	viewsSub := views.Subscribe(app.Journal().Record)
	defer views.Unsubscribe(viewsSub)

	gridCfg := render.DefaultGridConfig()
	if cfg.Render.Columns > 0 {
		gridCfg.Columns = cfg.Render.Columns
	}
	if cfg.Render.ShowTitles != nil {
		gridCfg.ShowTitles = *cfg.Render.ShowTitles
	}
	if cfg.Render.PanelWidth > 0 {
		gridCfg.PanelWidth = cfg.Render.PanelWidth
	}

	model := tui.New(app.Root(),
		tui.WithJournal(app.Journal()),
		tui.WithObserver(observer),
		tui.WithCategories(cfg.Render.Category, viewCategory),
		tui.WithGridConfig(gridCfg),
	)

	return tui.Run(ctx, model)
}
