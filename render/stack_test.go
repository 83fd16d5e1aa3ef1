package render_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/facet-ui/facet/component"
	"github.com/facet-ui/facet/observability"
	"github.com/facet-ui/facet/registry"
	"github.com/facet-ui/facet/render"
)

func staticChild(out string) render.Func {
	return render.Func(func(render.Env) (string, error) {
		return out, nil
	})
}

func failingChild(err error) render.Func {
	return render.Func(func(render.Env) (string, error) {
		return "", err
	})
}

func TestStack_RendersInViewOrder(t *testing.T) {
	store := registry.New("widgets")
	store.Add("footer", staticChild("footer-text"), registry.WithPriority(90))
	store.Add("header", staticChild("header-text"), registry.WithPriority(10))
	store.Add("body", staticChild("body-text"), registry.WithPriority(50))

	stack := render.NewStack(store, render.DefaultStackConfig())
	defer stack.Close()

	frame := stack.Render(render.NewEnv(nil))

	if frame.Rendered != 3 {
		t.Fatalf("Rendered = %d, want 3", frame.Rendered)
	}

	headerAt := strings.Index(frame.Output, "header-text")
	bodyAt := strings.Index(frame.Output, "body-text")
	footerAt := strings.Index(frame.Output, "footer-text")
	if headerAt < 0 || bodyAt < 0 || footerAt < 0 {
		t.Fatalf("output missing children:\n%s", frame.Output)
	}
	if !(headerAt < bodyAt && bodyAt < footerAt) {
		t.Errorf("children out of priority order in output:\n%s", frame.Output)
	}
}

func TestStack_ValueKinds(t *testing.T) {
	store := registry.New("mixed")
	store.Add("renderer", staticChild("from-renderer"), registry.WithPriority(1))
	store.Add("plain", "plain-string", registry.WithPriority(2))
	store.Add("descriptor", component.Component{
		Name: "status",
		Kind: component.KindWidget,
		Text: "descriptor-body",
	}, registry.WithPriority(3))
	store.Add("number", 42, registry.WithPriority(4))

	stack := render.NewStack(store, render.DefaultStackConfig())
	defer stack.Close()

	frame := stack.Render(render.NewEnv(nil))

	if !frame.Clean() {
		t.Fatalf("Failed = %d, want 0 (failures: %v)", frame.Failed, frame.FailedKeys())
	}
	for _, want := range []string{"from-renderer", "plain-string", "descriptor-body", "42"} {
		if !strings.Contains(frame.Output, want) {
			t.Errorf("output should contain %q:\n%s", want, frame.Output)
		}
	}
}

func TestStack_ChildErrorIsolation(t *testing.T) {
	store := registry.New("widgets")
	boom := errors.New("render exploded")
	store.Add("first", staticChild("first-ok"), registry.WithPriority(1))
	store.Add("broken", failingChild(boom), registry.WithPriority(2))
	store.Add("third", staticChild("third-ok"), registry.WithPriority(3))

	stack := render.NewStack(store, render.DefaultStackConfig())
	defer stack.Close()

	frame := stack.Render(render.NewEnv(nil))

	if frame.Rendered != 2 {
		t.Errorf("Rendered = %d, want 2 (siblings must survive)", frame.Rendered)
	}
	if frame.Failed != 1 {
		t.Errorf("Failed = %d, want 1", frame.Failed)
	}
	if keys := frame.FailedKeys(); len(keys) != 1 || keys[0] != "broken" {
		t.Errorf("FailedKeys() = %v, want [broken]", keys)
	}
	if !strings.Contains(frame.Output, "first-ok") || !strings.Contains(frame.Output, "third-ok") {
		t.Errorf("surviving siblings missing from output:\n%s", frame.Output)
	}
	if evicted := stack.Evicted(); len(evicted) != 1 || evicted[0] != "broken" {
		t.Errorf("Evicted() = %v, want [broken]", evicted)
	}
}

func TestStack_ChildPanicIsolation(t *testing.T) {
	store := registry.New("widgets")
	store.Add("stable", staticChild("stable-ok"), registry.WithPriority(1))
	store.Add("panicky", render.Func(func(render.Env) (string, error) {
		panic("child blew up")
	}), registry.WithPriority(2))

	stack := render.NewStack(store, render.DefaultStackConfig())
	defer stack.Close()

	frame := stack.Render(render.NewEnv(nil))

	if frame.Rendered != 1 {
		t.Errorf("Rendered = %d, want 1", frame.Rendered)
	}
	if frame.Failed != 1 {
		t.Fatalf("Failed = %d, want 1", frame.Failed)
	}

	var panicErr error
	for _, child := range frame.Children {
		if child.Key == "panicky" {
			panicErr = child.Err
		}
	}
	if !errors.Is(panicErr, render.ErrChildPanic) {
		t.Errorf("panicking child error = %v, want %v", panicErr, render.ErrChildPanic)
	}
	if !strings.Contains(panicErr.Error(), "child blew up") {
		t.Errorf("panic value missing from error: %v", panicErr)
	}
}

func TestStack_FailureSurfacedAfterPass(t *testing.T) {
	store := registry.New("widgets")
	boom := errors.New("broken widget")

	var order []string
	store.Add("a", render.Func(func(render.Env) (string, error) {
		order = append(order, "render-a")
		return "a-ok", nil
	}), registry.WithPriority(1))
	store.Add("b", render.Func(func(render.Env) (string, error) {
		order = append(order, "render-b")
		return "", boom
	}), registry.WithPriority(2))
	store.Add("c", render.Func(func(render.Env) (string, error) {
		order = append(order, "render-c")
		return "c-ok", nil
	}), registry.WithPriority(3))

	cfg := render.DefaultStackConfig()
	cfg.OnFailure = func(key string, err error) {
		order = append(order, "fail-"+key)
		if !errors.Is(err, boom) {
			t.Errorf("OnFailure error = %v, want %v", err, boom)
		}
	}

	stack := render.NewStack(store, cfg)
	defer stack.Close()
	stack.Render(render.NewEnv(nil))

	want := []string{"render-a", "render-b", "render-c", "fail-b"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v (failure must surface after all siblings render)", order, want)
		}
	}
}

func TestStack_EvictionPersistsAcrossPasses(t *testing.T) {
	store := registry.New("widgets")

	attempts := 0
	store.Add("broken", render.Func(func(render.Env) (string, error) {
		attempts++
		return "", errors.New("still broken")
	}))
	store.Add("fine", staticChild("fine-ok"))

	stack := render.NewStack(store, render.DefaultStackConfig())
	defer stack.Close()

	stack.Render(render.NewEnv(nil))
	second := stack.Render(render.NewEnv(nil))

	if attempts != 1 {
		t.Errorf("failing child rendered %d times, want 1 (evicted after first failure)", attempts)
	}
	if second.Failed != 0 {
		t.Errorf("second pass Failed = %d, want 0 (evicted child skipped)", second.Failed)
	}
	if second.Rendered != 1 {
		t.Errorf("second pass Rendered = %d, want 1", second.Rendered)
	}
}

func TestStack_UpdateRestoresEvictedChild(t *testing.T) {
	store := registry.New("widgets")
	store.Add("flaky", failingChild(errors.New("first version broken")))

	stack := render.NewStack(store, render.DefaultStackConfig())
	defer stack.Close()

	stack.Render(render.NewEnv(nil))
	if len(stack.Evicted()) != 1 {
		t.Fatal("child was not evicted after failure")
	}

	store.Add("flaky", staticChild("fixed-now"), registry.WithForce())

	if len(stack.Evicted()) != 0 {
		t.Error("registry update did not clear the eviction")
	}

	frame := stack.Render(render.NewEnv(nil))
	if !strings.Contains(frame.Output, "fixed-now") {
		t.Errorf("restored child missing from output:\n%s", frame.Output)
	}
}

func TestStack_RemoveClearsEviction(t *testing.T) {
	store := registry.New("widgets")
	store.Add("broken", failingChild(errors.New("broken")))

	stack := render.NewStack(store, render.DefaultStackConfig())
	defer stack.Close()

	stack.Render(render.NewEnv(nil))
	store.Remove("broken")

	if len(stack.Evicted()) != 0 {
		t.Errorf("Evicted() = %v after Remove, want empty", stack.Evicted())
	}
}

func TestStack_ObservabilityEvents(t *testing.T) {
	capture := observability.NewCaptureObserver()
	store := registry.New("widgets")
	store.Add("ok", staticChild("ok"))
	store.Add("broken", failingChild(errors.New("boom")))

	cfg := render.DefaultStackConfig()
	cfg.Observer = capture

	stack := render.NewStack(store, cfg)
	defer stack.Close()
	stack.Render(render.NewEnv(nil))

	passes := capture.ByType(render.EventPassComplete)
	if len(passes) != 1 {
		t.Fatalf("render.pass.complete events = %d, want 1", len(passes))
	}

	fails := capture.ByType(render.EventChildFail)
	if len(fails) != 1 {
		t.Fatalf("render.child.fail events = %d, want 1", len(fails))
	}
	if fails[0].Level != observability.LevelError {
		t.Errorf("child.fail level = %d, want %d (must be monitoring-visible)",
			fails[0].Level, observability.LevelError)
	}
	if fails[0].Data["key"] != "broken" {
		t.Errorf("child.fail key = %v, want broken", fails[0].Data["key"])
	}
}

func TestStack_MaxChildren(t *testing.T) {
	store := registry.New("widgets")
	store.Add("a", staticChild("a-out"), registry.WithPriority(1))
	store.Add("b", staticChild("b-out"), registry.WithPriority(2))
	store.Add("c", staticChild("c-out"), registry.WithPriority(3))

	cfg := render.DefaultStackConfig()
	cfg.MaxChildren = 2

	stack := render.NewStack(store, cfg)
	defer stack.Close()

	frame := stack.Render(render.NewEnv(nil))
	if frame.Rendered != 2 {
		t.Errorf("Rendered = %d, want 2 (capped)", frame.Rendered)
	}
	if strings.Contains(frame.Output, "c-out") {
		t.Errorf("output should not contain the capped child:\n%s", frame.Output)
	}
}

func TestStack_Divider(t *testing.T) {
	store := registry.New("widgets")
	store.Add("a", staticChild("a-out"), registry.WithPriority(1))
	store.Add("b", staticChild("b-out"), registry.WithPriority(2))

	cfg := render.DefaultStackConfig()
	cfg.Divider = true

	stack := render.NewStack(store, cfg)
	defer stack.Close()

	frame := stack.Render(render.NewEnv(nil).WithSize(10, 0))
	if !strings.Contains(frame.Output, "──────────") {
		t.Errorf("output missing divider rule:\n%s", frame.Output)
	}
}

func TestStack_Close(t *testing.T) {
	store := registry.New("widgets")
	store.Add("broken", failingChild(errors.New("broken")))

	stack := render.NewStack(store, render.DefaultStackConfig())
	stack.Render(render.NewEnv(nil))
	stack.Close()

	// After Close the adapter no longer tracks store updates, so the
	// eviction must survive a re-registration.
	store.Add("broken", staticChild("fixed"), registry.WithForce())

	if len(stack.Evicted()) != 1 {
		t.Error("closed adapter still reacted to store updates")
	}
}

func TestStack_EmptyStore(t *testing.T) {
	store := registry.New("empty")

	stack := render.NewStack(store, render.DefaultStackConfig())
	defer stack.Close()

	frame := stack.Render(render.NewEnv(nil))
	if frame.Output != "" {
		t.Errorf("Output = %q, want empty", frame.Output)
	}
	if !frame.Clean() {
		t.Error("empty pass should be clean")
	}
}
