// Package cart implements session cart mutations: a small state machine going
// Empty -> Populated -> Empty over the session store.
package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"bookstore/internal/domain"
	"bookstore/internal/metrics"
	"bookstore/internal/session"
)

type Service struct {
	store   session.Store
	metrics *metrics.Metrics
}

// New builds the cart service. metrics may be nil.
func New(store session.Store, m *metrics.Metrics) *Service {
	return &Service{store: store, metrics: m}
}

// Get returns the cart lines plus their display subtotal.
func (s *Service) Get(ctx context.Context, key string) ([]domain.CartItem, decimal.Decimal, error) {
	items, err := s.store.GetCart(ctx, key)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return items, domain.CartSubtotal(items), nil
}

// Add appends a line or, when the book is already in the cart, accumulates its
// quantity. The price is snapshotted on first add and deliberately not
// refreshed on repeat adds; a requested quantity below 1 is coerced to 1.
func (s *Service) Add(ctx context.Context, key string, item domain.CartItem) error {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	items, err := s.store.GetCart(ctx, key)
	if err != nil {
		return err
	}

	found := false
	for i := range items {
		if items[i].BookID == item.BookID {
			items[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, item)
	}

	if err := s.store.SetCart(ctx, key, items); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.CartItemsAdded.Add(float64(item.Quantity))
	}
	return nil
}

// UpdateQuantity sets a line's quantity exactly; zero or negative removes the
// line. Unknown book ids are a no-op.
func (s *Service) UpdateQuantity(ctx context.Context, key string, bookID int64, quantity int) error {
	items, err := s.store.GetCart(ctx, key)
	if err != nil {
		return err
	}

	for i := range items {
		if items[i].BookID != bookID {
			continue
		}
		if quantity <= 0 {
			items = append(items[:i], items[i+1:]...)
		} else {
			items[i].Quantity = quantity
		}
		return s.store.SetCart(ctx, key, items)
	}
	return nil
}

// Remove deletes the matching line if present.
func (s *Service) Remove(ctx context.Context, key string, bookID int64) error {
	items, err := s.store.GetCart(ctx, key)
	if err != nil {
		return err
	}

	for i := range items {
		if items[i].BookID == bookID {
			items = append(items[:i], items[i+1:]...)
			return s.store.SetCart(ctx, key, items)
		}
	}
	return nil
}
