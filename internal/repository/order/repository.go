package order

import (
	"context"

	"bookstore/internal/domain"
)

// ListInput filters the admin order listing. Page is 1-based.
type ListInput struct {
	Query    string
	Status   string
	Page     int
	PageSize int
}

// Repository persists order aggregates. CreateAtomic writes the header and
// every item in one transaction; a partial order must never be observable.
type Repository interface {
	CreateAtomic(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListPaged(ctx context.Context, in ListInput) ([]domain.Order, int, error)
	SetStatus(ctx context.Context, id int64, status string) error
	Count(ctx context.Context) (int, error)
}
