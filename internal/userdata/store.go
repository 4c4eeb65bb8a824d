package userdata

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"
)

// ErrCorrupt is returned when a namespace file cannot be parsed or fails its
// schema.
var ErrCorrupt = errors.New("corrupt data file")

// Store is a flat key-value document persisted as one YAML file. Every
// mutation re-reads the file, applies the change and atomically replaces the
// file, so the last writer wins if two processes ever race.
type Store struct {
	mu        sync.Mutex
	fs        afero.Fs
	namespace string
	path      string
	data      map[string]any
}

// Open loads the namespace file under root, creating nothing until the first
// write. A missing file is an empty store.
func Open(fsys afero.Fs, root, namespace string) (*Store, error) {
	s := &Store{
		fs:        fsys,
		namespace: namespace,
		path:      NamespacePath(root, namespace),
	}
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	s.data = doc
	return s, nil
}

// Namespace returns the store's namespace id.
func (s *Store) Namespace() string { return s.namespace }

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Get returns the value stored under key.
func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

// Decode copies the value under key into out, which must be a pointer. It
// reports false, leaving out untouched, when key is absent.
func (s *Store) Decode(key string, out any) (bool, error) {
	v, ok := s.Get(key)
	if !ok {
		return false, nil
	}
	if err := remarshal(v, out); err != nil {
		return true, fmt.Errorf("decoding %s.%s: %w", s.namespace, key, err)
	}
	return true, nil
}

// List returns a shallow copy of every entry.
func (s *Store) List() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.data)
}

// Set stores value under key and persists the store.
func (s *Store) Set(key string, value any) error {
	return s.Update(func(doc map[string]any) error {
		doc[key] = value
		return nil
	})
}

// Delete removes key and persists the store. Deleting an absent key is not
// an error.
func (s *Store) Delete(key string) error {
	return s.Update(func(doc map[string]any) error {
		delete(doc, key)
		return nil
	})
}

// Clear removes every entry and persists the empty store. The old file is
// not read, so Clear also recovers a corrupt namespace.
func (s *Store) Clear() error {
	return s.Replace(map[string]any{})
}

// Replace overwrites the whole document with doc without reading the file
// first. doc is still validated before it is written.
func (s *Store) Replace(doc map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(doc)
}

// Reset empties the namespace file under root without parsing it. It is the
// way out when Open reports ErrCorrupt.
func Reset(fsys afero.Fs, root, namespace string) (*Store, error) {
	s := &Store{
		fs:        fsys,
		namespace: namespace,
		path:      NamespacePath(root, namespace),
	}
	if err := s.Clear(); err != nil {
		return nil, err
	}
	return s, nil
}

// Update applies fn to a fresh copy of the on-disk document and writes the
// result. Nothing is written if fn fails.
func (s *Store) Update(fn func(doc map[string]any) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.write(doc)
}

// write validates doc and atomically replaces the file. The caller holds mu.
func (s *Store) write(doc map[string]any) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", s.namespace, err)
	}
	if err := s.check(data); err != nil {
		return err
	}
	if err := s.writeAtomic(data); err != nil {
		return err
	}

	// Cache the normalised form so Get returns what a fresh Open would.
	fresh, err := parseDocument(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	s.data = fresh
	return nil
}

func (s *Store) read() (map[string]any, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	if err := s.check(data); err != nil {
		return nil, err
	}
	doc, err := parseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return doc, nil
}

// check validates data against the namespace schema.
func (s *Store) check(data []byte) error {
	result, err := Validate(s.namespace, data)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	if !result.Valid {
		msgs := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			msgs = append(msgs, issue.String())
		}
		return fmt.Errorf("%w: %s: %s", ErrCorrupt, s.path, strings.Join(msgs, "; "))
	}
	return nil
}

// writeAtomic writes to a temp file in the same directory then renames it
// over the store path.
func (s *Store) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, DirPermSecure); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(s.fs, dir, s.namespace+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := s.fs.Chmod(tmpName, FilePermSecure); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("setting permissions on %s: %w", tmpName, err)
	}
	if err := s.fs.Rename(tmpName, s.path); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

// remarshal converts a generic YAML value into out via its YAML encoding.
func remarshal(in, out any) error {
	data, err := yaml.Marshal(in)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}
