package book

import (
	"context"

	"github.com/shopspring/decimal"

	"bookstore/internal/domain"
)

// SearchInput carries catalog search filters. Page is 1-based.
type SearchInput struct {
	Query    string
	Page     int
	PageSize int
	GenreID  *int64
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// PriceSnapshot is the current title and price of a book, fetched at checkout
// to reprice the cart authoritatively.
type PriceSnapshot struct {
	Title string
	Price decimal.Decimal
}

type Repository interface {
	SearchPaged(ctx context.Context, in SearchInput) ([]domain.Book, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Book, error)
	PricesByIDs(ctx context.Context, ids []int64) (map[int64]PriceSnapshot, error)
	Create(ctx context.Context, b domain.Book) (*domain.Book, error)
	Update(ctx context.Context, b domain.Book) (*domain.Book, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}
