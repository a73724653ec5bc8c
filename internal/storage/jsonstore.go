package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DocumentStore persists whole keyed documents. There are no partial writes:
// Save rewrites the entire document, Load reads it back in full. A document
// that does not exist yet loads as an empty mapping.
type DocumentStore interface {
	Load(name string, into any) error
	Save(name string, doc any) error
}

// FileStore keeps each document as a JSON file under a data directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Load(name string, into any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read document %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("document %s is not valid JSON: %w", name, err)
	}
	return nil
}

func (s *FileStore) Save(name string, doc any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal document %s: %w", name, err)
	}

	// Write to a temp file then rename so readers never see a torn document.
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace document %s: %w", name, err)
	}
	return nil
}

// MemoryStore is an in-process DocumentStore for tests.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Load(name string, into any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.docs[name]
	if !ok {
		return nil
	}
	return json.Unmarshal(data, into)
}

func (s *MemoryStore) Save(name string, doc any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	s.docs[name] = data
	return nil
}
