package schema_test

import (
	"errors"
	"testing"

	"github.com/facet-ui/facet/schema"
)

type widgetSpec struct {
	Name    string   `json:"name"`
	Size    int      `json:"size,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Enabled bool     `json:"enabled,omitempty"`
}

func TestFromType(t *testing.T) {
	s, err := schema.FromType[widgetSpec]()
	if err != nil {
		t.Fatalf("FromType() error = %v", err)
	}

	if s.Type != "object" {
		t.Errorf("Type = %q, want %q", s.Type, "object")
	}

	props := make(map[string]bool)
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		props[pair.Key] = true
	}
	for _, want := range []string{"name", "size", "tags", "enabled"} {
		if !props[want] {
			t.Errorf("Properties missing %q (have %v)", want, props)
		}
	}

	required := make(map[string]bool)
	for _, name := range s.Required {
		required[name] = true
	}
	if !required["name"] {
		t.Errorf("Required = %v, want to include %q", s.Required, "name")
	}
	if required["size"] {
		t.Errorf("Required = %v, omitempty field %q should not be required", s.Required, "size")
	}
}

func TestFromType_PointerToStruct(t *testing.T) {
	s, err := schema.FromType[*widgetSpec]()
	if err != nil {
		t.Fatalf("FromType() error = %v", err)
	}
	if s.Type != "object" {
		t.Errorf("Type = %q, want %q", s.Type, "object")
	}
}

func TestFromType_NotStruct(t *testing.T) {
	_, err := schema.FromType[int]()
	if !errors.Is(err, schema.ErrInvalidType) {
		t.Errorf("FromType[int]() error = %v, want %v", err, schema.ErrInvalidType)
	}
}

func TestFromValue(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{name: "struct value", value: widgetSpec{Name: "clock"}, wantErr: false},
		{name: "pointer to struct", value: &widgetSpec{Name: "clock"}, wantErr: false},
		{name: "nil", value: nil, wantErr: true},
		{name: "plain string", value: "clock", wantErr: true},
		{name: "map", value: map[string]any{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.FromValue(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("FromValue() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, schema.ErrInvalidType) {
				t.Errorf("error = %v, want %v", err, schema.ErrInvalidType)
			}
		})
	}
}

func TestParse(t *testing.T) {
	doc := []byte(`{
		"type": "object",
		"properties": {
			"title": {"type": "string"}
		},
		"required": ["title"]
	}`)

	s, err := schema.Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s.Type != "object" {
		t.Errorf("Type = %q, want %q", s.Type, "object")
	}
	if len(s.Required) != 1 || s.Required[0] != "title" {
		t.Errorf("Required = %v, want [title]", s.Required)
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := schema.Parse([]byte(`{not json`))
	if !errors.Is(err, schema.ErrInvalidSchema) {
		t.Errorf("Parse() error = %v, want %v", err, schema.ErrInvalidSchema)
	}
}

func TestMustParse_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse() did not panic on invalid input")
		}
	}()
	schema.MustParse([]byte(`{not json`))
}
