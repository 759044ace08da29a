package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists entries in a single JSON file, the closest local
// analog of the browser's localStorage.  The whole map is rewritten
// on every mutation; entry counts are tiny (a handful of booking
// keys), so simplicity wins over incremental writes.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by the file at path.  The file
// is created on first write; a missing or unreadable file reads as an
// empty store.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.load()
	v, ok := m[key]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.load()
	cp := make(json.RawMessage, len(value))
	copy(cp, value)
	m[key] = cp
	return s.save(m)
}

func (s *FileStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.load()
	if _, ok := m[key]; !ok {
		return nil
	}
	delete(m, key)
	return s.save(m)
}

// load reads the backing file.  Any read or decode failure yields an
// empty map: a corrupt store behaves like an absent one.
func (s *FileStore) load() map[string]json.RawMessage {
	m := make(map[string]json.RawMessage)
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return m
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return make(map[string]json.RawMessage)
	}
	return m
}

// save writes the map atomically via a temp file rename so a crash
// mid-write never leaves a half-written store behind.
func (s *FileStore) save(m map[string]json.RawMessage) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}
