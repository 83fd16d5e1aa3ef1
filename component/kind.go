package component

import "strings"

// Kind classifies a registrable object. Each kind maps to a registry
// category by convention: views and widgets are rendered by surfaces,
// actions are dispatched by name, services are opaque dependencies.
type Kind string

const (
	KindView    Kind = "view"
	KindWidget  Kind = "widget"
	KindAction  Kind = "action"
	KindService Kind = "service"
)

var validKinds = []Kind{KindView, KindWidget, KindAction, KindService}

// IsValid reports whether s names a known kind. Matching is exact and
// case-sensitive; manifests must use lowercase kind names.
func IsValid(s string) bool {
	for _, k := range validKinds {
		if string(k) == s {
			return true
		}
	}
	return false
}

// ValidKinds returns all known kinds in declaration order.
func ValidKinds() []Kind {
	kinds := make([]Kind, len(validKinds))
	copy(kinds, validKinds)
	return kinds
}

// KindStrings returns a comma-separated list of valid kind names,
// suitable for error messages.
func KindStrings() string {
	names := make([]string, len(validKinds))
	for i, k := range validKinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// Renderable reports whether values of this kind are drawn by surfaces.
// Actions and services are registered for lookup only.
func (k Kind) Renderable() bool {
	switch k {
	case KindView, KindWidget:
		return true
	case KindAction, KindService:
		return false
	}
	return false
}

// Category returns the registry category name components of this kind are
// registered under.
func (k Kind) Category() string {
	return string(k) + "s"
}
