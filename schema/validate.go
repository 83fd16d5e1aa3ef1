package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// Validate checks value against the schema's structural subset: type,
// required, properties, items, and enum. The first violation found is
// returned, wrapped in ErrViolation with a path locating the offending
// field. A nil schema accepts everything.
//
// The value is normalized through its JSON encoding before checking, so
// structs, maps, and slices validate by their wire shape rather than their
// Go type.
func Validate(value any, s *Schema) error {
	if s == nil {
		return nil
	}

	data, err := normalize(value)
	if err != nil {
		return fmt.Errorf("%w: value is not JSON-encodable: %v", ErrViolation, err)
	}

	return validate(data, s, "$")
}

func validate(data any, s *Schema, path string) error {
	if s == nil {
		return nil
	}

	if s.Type != "" && !typeMatches(data, s.Type) {
		return fmt.Errorf("%w: %s: expected %s, got %s", ErrViolation, path, s.Type, jsonType(data))
	}

	if len(s.Enum) > 0 && !enumContains(s.Enum, data) {
		return fmt.Errorf("%w: %s: value %v not in enum", ErrViolation, path, data)
	}

	if obj, ok := data.(map[string]any); ok {
		for _, name := range s.Required {
			if _, present := obj[name]; !present {
				return fmt.Errorf("%w: %s: missing required property %q", ErrViolation, path, name)
			}
		}
		if s.Properties != nil {
			for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
				child, present := obj[pair.Key]
				if !present {
					continue
				}
				if err := validate(child, pair.Value, path+"."+pair.Key); err != nil {
					return err
				}
			}
		}
	}

	if arr, ok := data.([]any); ok && s.Items != nil {
		for i, item := range arr {
			if err := validate(item, s.Items, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}

	return nil
}

// normalize round-trips a value through JSON so validation sees the same
// shapes a decoder would produce.
func normalize(value any) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func typeMatches(data any, want string) bool {
	got := jsonType(data)
	if want == "integer" {
		f, ok := data.(float64)
		return ok && f == math.Trunc(f)
	}
	return got == want
}

func jsonType(data any) string {
	switch data.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", data)
	}
}

func enumContains(enum []any, data any) bool {
	for _, candidate := range enum {
		normalized, err := normalize(candidate)
		if err != nil {
			continue
		}
		if reflect.DeepEqual(normalized, data) {
			return true
		}
	}
	return false
}
