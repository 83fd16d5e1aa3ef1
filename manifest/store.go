// Package manifest loads declarative component manifests into a registry.
// Manifests are YAML documents naming categories, their schemas, and the
// components to register; a Loader applies them to a store and a Watcher
// re-applies them when the backing files change.
package manifest

import "context"

// Document is a named raw manifest as held by a Store. Names are /-separated
// paths relative to the store root, extension included.
type Document struct {
	Name string
	Data []byte
}

// Store translates between external storage and named manifest documents.
// Implementations are stateless: they perform I/O on each call without
// caching.
type Store interface {
	// List returns the names of all manifests in the store.
	List(ctx context.Context) ([]string, error)
	// Load retrieves the documents with the specified names.
	Load(ctx context.Context, names ...string) ([]Document, error)
	// Save persists documents, creating or overwriting as needed.
	Save(ctx context.Context, docs ...Document) error
	// Delete removes documents. Missing names are ignored.
	Delete(ctx context.Context, names ...string) error
}
