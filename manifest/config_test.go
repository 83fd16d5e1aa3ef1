package manifest_test

import (
	"testing"
	"time"

	"github.com/facet-ui/facet/manifest"
)

func TestDefaultConfig(t *testing.T) {
	cfg := manifest.DefaultConfig()

	if cfg.Path != "" {
		t.Errorf("got Path %q, want empty string", cfg.Path)
	}
	if cfg.Watch {
		t.Error("Watch should default to false")
	}
	if cfg.DebounceMS != 500 {
		t.Errorf("got DebounceMS %d, want 500", cfg.DebounceMS)
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := manifest.DefaultConfig()

	source := &manifest.Config{Path: "/data/manifests", Watch: true, DebounceMS: 100}
	cfg.Merge(source)

	if cfg.Path != "/data/manifests" {
		t.Errorf("got Path %q, want %q", cfg.Path, "/data/manifests")
	}
	if !cfg.Watch {
		t.Error("Watch should be merged")
	}
	if cfg.DebounceMS != 100 {
		t.Errorf("got DebounceMS %d, want 100", cfg.DebounceMS)
	}
}

func TestConfig_Merge_EmptyPreservesDefault(t *testing.T) {
	cfg := manifest.Config{Path: "/original", DebounceMS: 200}

	source := &manifest.Config{}
	cfg.Merge(source)

	if cfg.Path != "/original" {
		t.Errorf("got Path %q, want %q (preserved)", cfg.Path, "/original")
	}
	if cfg.DebounceMS != 200 {
		t.Errorf("got DebounceMS %d, want 200 (preserved)", cfg.DebounceMS)
	}
}

func TestConfig_Debounce(t *testing.T) {
	cfg := manifest.Config{DebounceMS: 250}

	if got := cfg.Debounce(); got != 250*time.Millisecond {
		t.Errorf("Debounce() = %v, want 250ms", got)
	}
}

func TestNewStore_EmptyPath(t *testing.T) {
	cfg := &manifest.Config{}

	store, err := manifest.NewStore(cfg)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if store != nil {
		t.Error("expected nil store for empty path")
	}
}

func TestNewStore_WithPath(t *testing.T) {
	cfg := &manifest.Config{Path: t.TempDir()}

	store, err := manifest.NewStore(cfg)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if store == nil {
		t.Fatal("expected non-nil store for valid path")
	}
}
