// Package render turns registry stores into terminal output.
//
// Two adapters read a store's priority-ordered entries and render each entry
// as an isolated child: Stack lays children out vertically, Grid lays titled
// panels out in rows. Both subscribe to their store's updates, so the next
// render pass always reflects the current registry content.
//
// # Error isolation
//
// A child that fails to render, by returning an error or by panicking, is
// evicted from the adapter's local render list. Its siblings render
// unaffected, the pass output contains the remainder, and the failure is
// surfaced after the pass completes: each failure is emitted as a LevelError
// event and handed to the configured FailFunc. A subsequent registry update
// for an evicted key restores the child on the next pass.
//
// # Rendering
//
// Children implement Renderer or are converted by value: strings render
// verbatim, component descriptors through the descriptor template, and
// anything else through its default formatting. Func adapts a plain function:
//
//	clock := render.Func(func(env render.Env) (string, error) {
//	    return time.Now().Format(time.Kitchen), nil
//	})
//
//	widgets := store.Category("widgets")
//	widgets.Add("clock", clock)
//
//	stack := render.NewStack(widgets, render.DefaultStackConfig())
//	defer stack.Close()
//
//	frame := stack.Render(render.NewEnv(nil))
//	fmt.Println(frame.Output)
//
// # Environment
//
// Env is the immutable scope passed to every child. Deriving a child scope
// never mutates the parent:
//
//	env := render.NewEnv(observer).With("theme", "dark").WithSize(80, 24)
package render
