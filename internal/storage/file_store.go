package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore persists each slot as one JSON file under a directory. Writes go
// through a temp file and rename so a crash never leaves a half-written slot.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: failed to create data directory: %w", err)
	}

	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Put(slot string, value any) error {
	raw, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: failed to marshal slot %s: %w", slot, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(slot)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("storage: failed to write slot %s: %w", slot, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("storage: failed to replace slot %s: %w", slot, err)
	}

	return nil
}

func (s *FileStore) Get(slot string, dest any) error {
	s.mu.Lock()
	raw, err := os.ReadFile(s.path(slot))
	s.mu.Unlock()

	if errors.Is(err, fs.ErrNotExist) {
		return ErrSlotEmpty
	}
	if err != nil {
		return fmt.Errorf("storage: failed to read slot %s: %w", slot, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("storage: failed to unmarshal slot %s: %w", slot, err)
	}

	return nil
}

func (s *FileStore) Delete(slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(slot))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: failed to delete slot %s: %w", slot, err)
	}

	return nil
}

// path flattens the slot name into a safe file name.
func (s *FileStore) path(slot string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(slot)
	return filepath.Join(s.dir, name+".json")
}
