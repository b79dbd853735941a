package user

import (
	"context"

	"bookstore/internal/domain"
)

// Repository persists and fetches user accounts.
type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByUsernameOrEmail(ctx context.Context, term string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	SearchPaged(ctx context.Context, query string, page, pageSize int) ([]domain.User, int, error)
	SetAdmin(ctx context.Context, id int64, isAdmin bool) error
	IsAdmin(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}
