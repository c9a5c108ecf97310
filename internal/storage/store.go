// Package storage provides a durable single-document slot store. Each slot
// holds one JSON value and is overwritten wholesale, mirroring the browser
// local-storage slots the client uses.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

var ErrSlotEmpty = errors.New("slot is empty")

type Store interface {
	Put(slot string, value any) error
	Get(slot string, dest any) error
	Delete(slot string) error
}

// MemoryStore keeps slots in memory. Used in tests and as a fallback when no
// data directory is configured.
type MemoryStore struct {
	mu    sync.Mutex
	slots map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

func (s *MemoryStore) Put(slot string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage: failed to marshal slot %s: %w", slot, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slot] = raw

	return nil
}

func (s *MemoryStore) Get(slot string, dest any) error {
	s.mu.Lock()
	raw, ok := s.slots[slot]
	s.mu.Unlock()

	if !ok {
		return ErrSlotEmpty
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("storage: failed to unmarshal slot %s: %w", slot, err)
	}

	return nil
}

func (s *MemoryStore) Delete(slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, slot)

	return nil
}
