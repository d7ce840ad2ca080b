package toast

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory implementation of the Store interface.
// Suitable for single-process applications, development, and testing.
type MemoryStore struct {
	order []string
	items map[string]Toast
	mu    sync.RWMutex
}

// NewMemoryStore creates a new in-memory toast store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]Toast),
	}
}

func (s *MemoryStore) Insert(ctx context.Context, t Toast) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		return ErrEmptyID
	}
	if _, exists := s.items[t.ID]; exists {
		return ErrDuplicateID
	}

	s.items[t.ID] = t
	s.order = append(s.order, t.ID)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Toast, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.items[id]
	if !exists {
		return nil, ErrToastNotFound
	}

	// Return a copy to prevent external mutation of stored data
	return &t, nil
}

func (s *MemoryStore) RemoveByID(ctx context.Context, id string) (*Toast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, exists := s.items[id]
	if !exists {
		return nil, nil
	}

	delete(s.items, id)
	for i, stored := range s.order {
		if stored == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return &t, nil
}

func (s *MemoryStore) RemoveAll(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := make([]string, len(s.order))
	copy(removed, s.order)

	s.order = nil
	clear(s.items)

	return removed, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Toast, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Toast, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out, nil
}

func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order), nil
}

var _ Store = (*MemoryStore)(nil)
