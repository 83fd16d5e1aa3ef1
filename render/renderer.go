package render

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/facet-ui/facet/component"
)

// Renderer produces terminal output for one child within an environment
// scope.
type Renderer interface {
	Render(env Env) (string, error)
}

// Func wraps a function as a Renderer, enabling inline child definitions
// without creating custom types.
type Func func(env Env) (string, error)

// Render runs the wrapped function with the given environment.
func (f Func) Render(env Env) (string, error) {
	return f(env)
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

// Text is a static text block with an optional bold title.
type Text struct {
	Title string
	Body  string
	Color string
}

func (t Text) Render(Env) (string, error) {
	body := t.Body
	if t.Color != "" {
		body = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color)).Render(body)
	}
	if t.Title == "" {
		return body, nil
	}
	if body == "" {
		return titleStyle.Render(t.Title), nil
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(t.Title), body), nil
}

// KV renders aligned key-value pairs, keys faint.
type KV struct {
	Title string
	Pairs [][2]string
}

func (kv KV) Render(Env) (string, error) {
	width := 0
	for _, pair := range kv.Pairs {
		if len(pair[0]) > width {
			width = len(pair[0])
		}
	}

	lines := make([]string, 0, len(kv.Pairs)+1)
	if kv.Title != "" {
		lines = append(lines, titleStyle.Render(kv.Title))
	}
	for _, pair := range kv.Pairs {
		label := fmt.Sprintf("%-*s", width, pair[0])
		lines = append(lines, faintStyle.Render(label)+" "+pair[1])
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...), nil
}

// renderValue converts an arbitrary registry value to terminal output.
// Renderer implementations are invoked; other types fall back to a textual
// form so any registered value produces something visible.
func renderValue(env Env, value any) (string, error) {
	switch v := value.(type) {
	case Renderer:
		return v.Render(env)
	case string:
		return v, nil
	case component.Component:
		return renderComponent(v)
	case *component.Component:
		if v == nil {
			return "", nil
		}
		return renderComponent(*v)
	case fmt.Stringer:
		return v.String(), nil
	case nil:
		return "", nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

// renderComponent is the descriptor template: bold title over body text.
func renderComponent(c component.Component) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	title := titleStyle.Render(c.EffectiveTitle())
	if c.Text == "" {
		return title, nil
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, c.Text), nil
}
