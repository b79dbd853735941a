package favorite

import "context"

// Repository tracks which books a user pinned.
type Repository interface {
	Add(ctx context.Context, userID, bookID int64) error
	Remove(ctx context.Context, userID, bookID int64) error
	ListBookIDs(ctx context.Context, userID int64) ([]int64, error)
	Exists(ctx context.Context, userID, bookID int64) (bool, error)
}
