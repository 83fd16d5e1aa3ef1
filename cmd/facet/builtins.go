package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/facet-ui/facet/action"
	"github.com/facet-ui/facet/component"
	"github.com/facet-ui/facet/facet"
	"github.com/facet-ui/facet/registry"
	"github.com/facet-ui/facet/render"
)

// registerBuiltins installs the demo components and the builtin actions.
// Manifests can replace any of them by registering the same key.
func registerBuiltins(app *facet.App) {
	widgets := app.Category()

	must(widgets.Add("clock", render.Func(renderClock),
		registry.WithPriority(10)))

	start := time.Now()
	must(widgets.Add("uptime", render.Func(func(render.Env) (string, error) {
		return "up " + time.Since(start).Round(time.Second).String(), nil
	}), registry.WithPriority(20)))

	views := app.Root().Category(viewCategory)
	must(views.Add("welcome", render.Text{
		Title: "facet",
		Body:  "Drop YAML manifests in the manifest directory to add components.",
	}, registry.WithPriority(10)))

	must(action.Register(component.Action{
		Name:        "journal-clear",
		Description: "Clears the activity journal.",
	}, func(_ context.Context, _ json.RawMessage) (action.Result, error) {
		app.Journal().Clear()
		return action.Result{Output: "journal cleared"}, nil
	}))

	must(action.Register(component.Action{
		Name:        "manifest-reload",
		Description: "Reloads every manifest from disk.",
	}, func(ctx context.Context, _ json.RawMessage) (action.Result, error) {
		if app.Loader() == nil {
			return action.Result{Output: "manifests disabled", IsError: true}, nil
		}
		if err := app.Loader().LoadAll(ctx); err != nil {
			return action.Result{}, err
		}
		return action.Result{Output: fmt.Sprintf("%d manifests loaded", len(app.Loader().Manifests()))}, nil
	}))
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("failed to register builtin: %v", err))
	}
}

// renderClock shows the environment clock so frames are reproducible when a
// fixed clock is injected.
func renderClock(env render.Env) (string, error) {
	value, ok := env.Get("now")
	now, isTime := value.(time.Time)
	if !ok || !isTime {
		now = time.Now()
	}
	return now.Format("Mon 15:04:05"), nil
}
