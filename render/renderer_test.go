package render_test

import (
	"strings"
	"testing"

	"github.com/facet-ui/facet/render"
)

func TestFunc_Render(t *testing.T) {
	fn := render.Func(func(env render.Env) (string, error) {
		return "from " + env.GetString("source", "nowhere"), nil
	})

	out, err := fn.Render(render.NewEnv(nil).With("source", "test"))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if out != "from test" {
		t.Errorf("Render() = %q, want %q", out, "from test")
	}
}

func TestText_Render(t *testing.T) {
	tests := []struct {
		name     string
		text     render.Text
		contains []string
	}{
		{
			name:     "title and body",
			text:     render.Text{Title: "Status", Body: "all good"},
			contains: []string{"Status", "all good"},
		},
		{
			name:     "body only",
			text:     render.Text{Body: "plain"},
			contains: []string{"plain"},
		},
		{
			name:     "title only",
			text:     render.Text{Title: "Header"},
			contains: []string{"Header"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.text.Render(render.Env{})
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("Render() = %q, should contain %q", out, want)
				}
			}
		})
	}
}

func TestKV_Render(t *testing.T) {
	kv := render.KV{
		Title: "Build",
		Pairs: [][2]string{
			{"version", "1.4.0"},
			{"go", "1.25"},
		},
	}

	out, err := kv.Render(render.Env{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{"Build", "version", "1.4.0", "go", "1.25"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() output should contain %q:\n%s", want, out)
		}
	}

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Errorf("Render() produced %d lines, want 3 (title + 2 pairs)", len(lines))
	}
}
