package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/facet-ui/facet/observability"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		name  string
		level observability.Level
		want  string
	}{
		{name: "trace range", level: 1, want: "TRACE"},
		{name: "verbose maps to DEBUG", level: observability.LevelVerbose, want: "DEBUG"},
		{name: "info maps to INFO", level: observability.LevelInfo, want: "INFO"},
		{name: "warning maps to WARN", level: observability.LevelWarning, want: "WARN"},
		{name: "error maps to ERROR", level: observability.LevelError, want: "ERROR"},
		{name: "fatal range", level: 21, want: "FATAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
			}
		})
	}
}

func TestLevel_SlogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level observability.Level
		want  slog.Level
	}{
		{name: "verbose maps to Debug", level: observability.LevelVerbose, want: slog.LevelDebug},
		{name: "info maps to Info", level: observability.LevelInfo, want: slog.LevelInfo},
		{name: "warning maps to Warn", level: observability.LevelWarning, want: slog.LevelWarn},
		{name: "error maps to Error", level: observability.LevelError, want: slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.SlogLevel(); got != tt.want {
				t.Errorf("Level(%d).SlogLevel() = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestLevel_OTelAlignment(t *testing.T) {
	if observability.LevelVerbose != 5 {
		t.Errorf("LevelVerbose = %d, want 5 (OTel DEBUG range)", observability.LevelVerbose)
	}
	if observability.LevelInfo != 9 {
		t.Errorf("LevelInfo = %d, want 9 (OTel INFO range)", observability.LevelInfo)
	}
	if observability.LevelWarning != 13 {
		t.Errorf("LevelWarning = %d, want 13 (OTel WARN range)", observability.LevelWarning)
	}
	if observability.LevelError != 17 {
		t.Errorf("LevelError = %d, want 17 (OTel ERROR range)", observability.LevelError)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    observability.Level
		wantErr bool
	}{
		{name: "debug", input: "debug", want: observability.LevelVerbose},
		{name: "info", input: "info", want: observability.LevelInfo},
		{name: "empty defaults to info", input: "", want: observability.LevelInfo},
		{name: "warn", input: "warn", want: observability.LevelWarning},
		{name: "error", input: "error", want: observability.LevelError},
		{name: "unknown fails", input: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := observability.ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewEvent(t *testing.T) {
	event := observability.NewEvent("registry.add", observability.LevelInfo, "registry.root", map[string]any{"key": "clock"})

	if event.Type != "registry.add" {
		t.Errorf("Type = %q, want %q", event.Type, "registry.add")
	}
	if event.Level != observability.LevelInfo {
		t.Errorf("Level = %d, want %d", event.Level, observability.LevelInfo)
	}
	if event.Source != "registry.root" {
		t.Errorf("Source = %q, want %q", event.Source, "registry.root")
	}
	if event.Timestamp.IsZero() {
		t.Error("Timestamp is zero, want stamped")
	}
	if event.Data["key"] != "clock" {
		t.Errorf("Data[key] = %v, want %q", event.Data["key"], "clock")
	}
}

func TestNoOpObserver(t *testing.T) {
	obs := observability.NoOpObserver{}
	obs.OnEvent(context.Background(), observability.Event{
		Type:      "test.event",
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "test",
		Data:      map[string]any{"key": "value"},
	})
}

func TestMultiObserver(t *testing.T) {
	obs1 := observability.NewCaptureObserver()
	obs2 := observability.NewCaptureObserver()

	multi := observability.NewMultiObserver(obs1, obs2)

	event := observability.Event{
		Type:      "test.event",
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "test",
		Data:      map[string]any{"key": "value"},
	}

	multi.OnEvent(context.Background(), event)

	if got := len(obs1.Events()); got != 1 {
		t.Errorf("observer 1 received %d events, want 1", got)
	}
	if got := len(obs2.Events()); got != 1 {
		t.Errorf("observer 2 received %d events, want 1", got)
	}
	if typ := obs1.Events()[0].Type; typ != "test.event" {
		t.Errorf("observer 1 event type = %q, want %q", typ, "test.event")
	}
}

func TestMultiObserver_NilFiltering(t *testing.T) {
	obs := observability.NewCaptureObserver()

	multi := observability.NewMultiObserver(nil, obs, nil)

	multi.OnEvent(context.Background(), observability.Event{
		Type:  "test.event",
		Level: observability.LevelInfo,
	})

	if got := len(obs.Events()); got != 1 {
		t.Errorf("received %d events, want 1 (nil observers should be filtered)", got)
	}
}

func TestFilterObserver(t *testing.T) {
	tests := []struct {
		name       string
		min        observability.Level
		level      observability.Level
		wantPassed bool
	}{
		{name: "below threshold dropped", min: observability.LevelInfo, level: observability.LevelVerbose, wantPassed: false},
		{name: "at threshold passes", min: observability.LevelInfo, level: observability.LevelInfo, wantPassed: true},
		{name: "above threshold passes", min: observability.LevelInfo, level: observability.LevelError, wantPassed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			capture := observability.NewCaptureObserver()
			filter := observability.NewFilterObserver(capture, tt.min)

			filter.OnEvent(context.Background(), observability.Event{
				Type:  "test.event",
				Level: tt.level,
			})

			passed := len(capture.Events()) == 1
			if passed != tt.wantPassed {
				t.Errorf("event passed = %v, want %v", passed, tt.wantPassed)
			}
		})
	}
}

func TestCaptureObserver_ByType(t *testing.T) {
	capture := observability.NewCaptureObserver()

	capture.OnEvent(context.Background(), observability.Event{Type: "registry.add"})
	capture.OnEvent(context.Background(), observability.Event{Type: "registry.remove"})
	capture.OnEvent(context.Background(), observability.Event{Type: "registry.add"})

	adds := capture.ByType("registry.add")
	if len(adds) != 2 {
		t.Errorf("ByType(registry.add) returned %d events, want 2", len(adds))
	}

	capture.Reset()
	if len(capture.Events()) != 0 {
		t.Error("Reset() did not clear captured events")
	}
}

func TestSlogObserver_LevelMapping(t *testing.T) {
	tests := []struct {
		name      string
		level     observability.Level
		minLevel  slog.Level
		expectLog bool
	}{
		{name: "verbose at debug handler", level: observability.LevelVerbose, minLevel: slog.LevelDebug, expectLog: true},
		{name: "verbose at info handler", level: observability.LevelVerbose, minLevel: slog.LevelInfo, expectLog: false},
		{name: "info at info handler", level: observability.LevelInfo, minLevel: slog.LevelInfo, expectLog: true},
		{name: "info at warn handler", level: observability.LevelInfo, minLevel: slog.LevelWarn, expectLog: false},
		{name: "warning at warn handler", level: observability.LevelWarning, minLevel: slog.LevelWarn, expectLog: true},
		{name: "error at error handler", level: observability.LevelError, minLevel: slog.LevelError, expectLog: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
				Level: tt.minLevel,
			}))

			obs := observability.NewSlogObserver(logger)
			obs.OnEvent(context.Background(), observability.Event{
				Type:      "test.event",
				Level:     tt.level,
				Timestamp: time.Now(),
				Source:    "test",
			})

			hasOutput := buf.Len() > 0
			if hasOutput != tt.expectLog {
				t.Errorf("log output = %v, want %v (buf: %q)", hasOutput, tt.expectLog, buf.String())
			}
		})
	}
}

func TestSlogObserver_EventTypeAsMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	obs := observability.NewSlogObserver(logger)
	obs.OnEvent(context.Background(), observability.Event{
		Type:      "render.pass.complete",
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "render.Stack",
		Data: map[string]any{
			"children": 4,
		},
	})

	output := buf.String()
	if !strings.Contains(output, "render.pass.complete") {
		t.Errorf("expected event type as log message, got: %s", output)
	}
	if !strings.Contains(output, "source=render.Stack") {
		t.Errorf("expected source attribute, got: %s", output)
	}
	if !strings.Contains(output, "children=4") {
		t.Errorf("expected data attributes, got: %s", output)
	}
}

func TestSlogObserver_ZeroValueUsesDefault(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	defer slog.SetDefault(prev)
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	obs := &observability.SlogObserver{}
	obs.OnEvent(context.Background(), observability.Event{
		Type:      "test.event",
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "test",
	})

	if !strings.Contains(buf.String(), "test.event") {
		t.Errorf("expected zero-value observer to log via slog.Default, got: %q", buf.String())
	}
}

func TestRegistry_GetObserver(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "noop exists", key: "noop", wantErr: false},
		{name: "slog exists", key: "slog", wantErr: false},
		{name: "unknown fails", key: "nonexistent", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, err := observability.GetObserver(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("GetObserver(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, observability.ErrUnknownObserver) {
				t.Errorf("GetObserver(%q) error = %v, want ErrUnknownObserver", tt.key, err)
			}
			if !tt.wantErr && obs == nil {
				t.Errorf("GetObserver(%q) returned nil observer", tt.key)
			}
		})
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	custom := observability.NewCaptureObserver()

	observability.RegisterObserver("test-custom", custom)

	obs, err := observability.GetObserver("test-custom")
	if err != nil {
		t.Fatalf("GetObserver failed: %v", err)
	}

	obs.OnEvent(context.Background(), observability.Event{
		Type:  "test.event",
		Level: observability.LevelInfo,
	})

	if got := len(custom.Events()); got != 1 {
		t.Errorf("received %d events, want 1", got)
	}
}
