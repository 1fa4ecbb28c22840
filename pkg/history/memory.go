package history

import (
	"context"
	"sync"
)

// MemoryStore keeps history in process memory. It backs tests and the
// server's default configuration when no persistence is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps []Snap // newest first
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Add prepends the snap and evicts entries past the cap.
func (m *MemoryStore) Add(ctx context.Context, s Snap) error {
	if err := s.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snaps = append([]Snap{s}, m.snaps...)
	if len(m.snaps) > MaxEntries {
		m.snaps = m.snaps[:MaxEntries]
	}
	return nil
}

// List returns a copy of all entries, newest first.
func (m *MemoryStore) List(ctx context.Context) ([]Snap, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Snap, len(m.snaps))
	copy(out, m.snaps)
	return out, nil
}

// Get returns the entry with the given ID.
func (m *MemoryStore) Get(ctx context.Context, id string) (Snap, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.snaps {
		if s.ID == id {
			return s, nil
		}
	}
	return Snap{}, notFound(id)
}

// Delete removes the entry with the given ID.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, s := range m.snaps {
		if s.ID == id {
			m.snaps = append(m.snaps[:i], m.snaps[i+1:]...)
			return nil
		}
	}
	return notFound(id)
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
