// Package storage provides the key-value slots the storefront persists its cart in.
package storage

import (
	"context"
	"sync"
)

// KeyValueStore persists opaque blobs under named slots. Get reports found=false when the
// slot has never been written.
type KeyValueStore interface {
	Get(ctx context.Context, slot string) (data []byte, found bool, err error)
	Set(ctx context.Context, slot string, data []byte) error
	Delete(ctx context.Context, slot string) error
}

// MemoryStore keeps slots in process memory
type MemoryStore struct {
	mu    sync.Mutex
	slots map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

var _ KeyValueStore = (*MemoryStore)(nil)

// Get returns a copy of the slot's data
func (m *MemoryStore) Get(ctx context.Context, slot string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.slots[slot]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

// Set stores a copy of data
func (m *MemoryStore) Set(ctx context.Context, slot string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = append([]byte(nil), data...)
	return nil
}

// Delete drops a slot
func (m *MemoryStore) Delete(ctx context.Context, slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, slot)
	return nil
}
