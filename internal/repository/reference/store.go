// Package reference persists the named lookup entities (authors, genres,
// publishers). The three differ only by table, so one store parameterized
// by kind replaces three copy-pasted repositories.
package reference

import (
	"context"

	"bookstore/internal/domain"
)

// Kind selects which lookup table a store operates on.
type Kind string

const (
	Authors    Kind = "authors"
	Genres     Kind = "genres"
	Publishers Kind = "publishers"
)

func (k Kind) valid() bool {
	switch k {
	case Authors, Genres, Publishers:
		return true
	}
	return false
}

type Store interface {
	List(ctx context.Context, kind Kind) ([]domain.Reference, error)
	GetByID(ctx context.Context, kind Kind, id int64) (*domain.Reference, error)
	Create(ctx context.Context, kind Kind, name string) (*domain.Reference, error)
	Rename(ctx context.Context, kind Kind, id int64, name string) (*domain.Reference, error)
	Delete(ctx context.Context, kind Kind, id int64) error
	Count(ctx context.Context, kind Kind) (int, error)
}
