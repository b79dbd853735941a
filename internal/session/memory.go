package session

import (
	"context"
	"sync"

	"bookstore/internal/domain"
)

// MemoryStore is an in-process Store for tests and single-node development.
// Carts still round-trip through JSON so both backends share serialization
// behavior.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]byte)}
}

func (s *MemoryStore) GetCart(_ context.Context, key string) ([]domain.CartItem, error) {
	s.mu.RLock()
	data := s.carts[key]
	s.mu.RUnlock()
	return decodeCart(data)
}

func (s *MemoryStore) SetCart(_ context.Context, key string, items []domain.CartItem) error {
	data, err := encodeCart(items)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.carts[key] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.carts, key)
	s.mu.Unlock()
	return nil
}

var _ Store = (*MemoryStore)(nil)
