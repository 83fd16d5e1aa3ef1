// Package schema provides JSON Schema construction and structural validation
// for registry values.
//
// Schemas come from three sources: reflection over a Go type (FromType),
// reflection over a value (FromValue), or a raw JSON Schema document (Parse).
// Validate checks a value against a schema's structural subset: type,
// required, properties, items, and enum. Keyword coverage beyond that subset
// is intentionally out of scope.
package schema
