package glossary

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Store persists a single JSON-encoded glossary at a fixed path. Saves are
// read-merge-write cycles, so concurrent writers are serialized through a
// sibling lock file.
type Store struct {
	path string
	lock *flock.Flock
}

// NewStore creates a store for the glossary file at path.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted glossary. A missing file is an empty glossary.
func (s *Store) Load() (Glossary, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Glossary{}, nil
		}
		return nil, fmt.Errorf("read glossary store: %w", err)
	}
	return DecodeJSON(data)
}

// Save merges entries into the persisted glossary under the file lock and
// rewrites the store. Entries win over existing terms.
func (s *Store) Save(entries Glossary) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock glossary store: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	current, err := s.Load()
	if err != nil {
		return err
	}
	return s.write(Merge(current, entries))
}

// Replace overwrites the persisted glossary under the file lock.
func (s *Store) Replace(entries Glossary) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock glossary store: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()
	return s.write(Merge(entries))
}

// Delete removes terms from the persisted glossary under the file lock.
// Unknown terms are ignored. Returns the number of terms removed.
func (s *Store) Delete(terms ...string) (int, error) {
	if err := s.lock.Lock(); err != nil {
		return 0, fmt.Errorf("lock glossary store: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	current, err := s.Load()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, term := range terms {
		if _, ok := current[term]; ok {
			delete(current, term)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, s.write(current)
}

func (s *Store) write(g Glossary) error {
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure glossary dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("encode glossary store: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write glossary store: %w", err)
	}
	return nil
}
