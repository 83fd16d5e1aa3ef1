package manifest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type fileStore struct {
	root string
}

// NewFileStore creates a Store backed by the filesystem. Document names map
// 1:1 to relative file paths under root; only manifest files are listed.
func NewFileStore(root string) Store {
	return &fileStore{root: root}
}

// IsManifestName reports whether name looks like a manifest file. Dot-prefixed
// names are editor artifacts and never manifests.
func IsManifestName(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	switch filepath.Ext(base) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func (s *fileStore) List(_ context.Context) ([]string, error) {
	var names []string

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == s.root {
				return fs.SkipAll
			}
			return err
		}

		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}
		if !IsManifestName(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	return names, nil
}

func (s *fileStore) Load(_ context.Context, names ...string) ([]Document, error) {
	docs := make([]Document, 0, len(names))

	for _, name := range names {
		path := filepath.Join(s.root, filepath.FromSlash(name))
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
			}
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadFailed, name, err)
		}
		docs = append(docs, Document{Name: name, Data: data})
	}

	return docs, nil
}

func (s *fileStore) Save(_ context.Context, docs ...Document) error {
	for _, doc := range docs {
		path := filepath.Join(s.root, filepath.FromSlash(doc.Name))

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrSaveFailed, doc.Name, err)
		}

		tmp, err := os.CreateTemp(dir, ".tmp-*")
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrSaveFailed, doc.Name, err)
		}
		tmpName := tmp.Name()

		if _, err := tmp.Write(doc.Data); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("%w: %s: %v", ErrSaveFailed, doc.Name, err)
		}
		if err := tmp.Close(); err != nil {
			os.Remove(tmpName)
			return fmt.Errorf("%w: %s: %v", ErrSaveFailed, doc.Name, err)
		}

		if err := os.Rename(tmpName, path); err != nil {
			os.Remove(tmpName)
			return fmt.Errorf("%w: %s: %v", ErrSaveFailed, doc.Name, err)
		}
	}

	return nil
}

func (s *fileStore) Delete(_ context.Context, names ...string) error {
	for _, name := range names {
		path := filepath.Join(s.root, filepath.FromSlash(name))
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("delete failed: %s: %w", name, err)
		}

		dir := filepath.Dir(path)
		for dir != s.root {
			if err := os.Remove(dir); err != nil {
				break
			}
			dir = filepath.Dir(dir)
		}
	}

	return nil
}
