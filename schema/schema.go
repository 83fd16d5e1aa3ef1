package schema

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
)

// Schema is a JSON Schema document. The alias keeps the full jsonschema
// surface available to callers that build documents by hand.
type Schema = jsonschema.Schema

// FromType reflects a JSON Schema from a struct type. Properties are inlined
// rather than referenced so the result validates standalone.
func FromType[T any]() (*Schema, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()

	switch t.Kind() {
	case reflect.Pointer:
		if t.Elem().Kind() != reflect.Struct {
			return nil, fmt.Errorf("%w, got %s", ErrInvalidType, t.Kind())
		}
		t = t.Elem()
	case reflect.Struct:
	default:
		return nil, fmt.Errorf("%w, got %s", ErrInvalidType, t.Kind())
	}

	r := jsonschema.Reflector{Anonymous: true, DoNotReference: true}
	return r.ReflectFromType(t), nil
}

// FromValue reflects a JSON Schema from a value's dynamic type.
func FromValue(v any) (*Schema, error) {
	if v == nil {
		return nil, fmt.Errorf("%w, got nil", ErrInvalidType)
	}

	t := reflect.TypeOf(v)
	switch t.Kind() {
	case reflect.Pointer:
		if t.Elem().Kind() != reflect.Struct {
			return nil, fmt.Errorf("%w, got %s", ErrInvalidType, t.Kind())
		}
		t = t.Elem()
	case reflect.Struct:
	default:
		return nil, fmt.Errorf("%w, got %s", ErrInvalidType, t.Kind())
	}

	r := jsonschema.Reflector{Anonymous: true, DoNotReference: true}
	return r.ReflectFromType(t), nil
}

// Parse decodes a raw JSON Schema document.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	return &s, nil
}

// MustParse is Parse for schemas known valid at compile time, such as
// builtin component schemas. Panics on malformed input.
func MustParse(data []byte) *Schema {
	s, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return s
}
