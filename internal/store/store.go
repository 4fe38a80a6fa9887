// Package store persists DocumentRecords as indented JSON files, one per
// source document, under a json/ directory.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"

	"examgen/internal/model"
)

// Store writes and reads per-document JSON records in a single directory.
type Store struct {
	dir  string
	lock *flock.Flock
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &Store{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, ".examgen.lock")),
	}, nil
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

// Lock takes an exclusive advisory lock on the store so two batch runs
// cannot interleave writes. It blocks until the lock is available.
func (s *Store) Lock() error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock store: %w", err)
	}
	return nil
}

// Unlock releases the advisory lock.
func (s *Store) Unlock() error {
	return s.lock.Unlock()
}

// Save writes the record to <pdf-base>.json in the store directory and
// returns the path written.
func (s *Store) Save(rec *model.DocumentRecord) (string, error) {
	base := strings.TrimSuffix(filepath.Base(rec.Filename), filepath.Ext(rec.Filename))
	path := filepath.Join(s.dir, base+".json")

	data, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal record: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write record file: %w", err)
	}

	return path, nil
}

// Load reads one DocumentRecord from path.
func Load(path string) (*model.DocumentRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record file: %w", err)
	}

	var rec model.DocumentRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse record file: %w", err)
	}

	return &rec, nil
}

// List returns the sorted paths of all record files in the store.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read store directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, entry.Name()))
	}

	sort.Strings(paths)
	return paths, nil
}
