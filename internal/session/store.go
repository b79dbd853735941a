// Package session persists the per-session shopping cart. The cart is a JSON
// list of lines under a single key; a missing key reads back as an empty cart.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"bookstore/internal/domain"
)

// Store is the pluggable session cart backend. Implementations serialize
// concurrent writes for the same key last-write-wins; no cross-request locking
// is provided here.
type Store interface {
	GetCart(ctx context.Context, key string) ([]domain.CartItem, error)
	SetCart(ctx context.Context, key string, items []domain.CartItem) error
	Clear(ctx context.Context, key string) error
}

func encodeCart(items []domain.CartItem) ([]byte, error) {
	if items == nil {
		items = []domain.CartItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode cart: %w", err)
	}
	return data, nil
}

func decodeCart(data []byte) ([]domain.CartItem, error) {
	if len(data) == 0 {
		return []domain.CartItem{}, nil
	}
	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	return items, nil
}
