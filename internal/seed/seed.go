package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"bookstore/internal/credential"
)

type bookSeed struct {
	Title     string
	Price     string
	Desc      string
	Author    string
	Genre     string
	Publisher string
}

// Apply inserts basic seed data for manual testing. It is idempotent via
// ON CONFLICT where the schema allows it; books are matched by title.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ensureAdmin(ctx, pool, "admin", "admin@bookstore.local", "admin123"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	books := []bookSeed{
		{
			Title:     "Dune",
			Price:     "12.50",
			Desc:      "A desert planet, a fallen house, and the spice that moves the universe.",
			Author:    "Frank Herbert",
			Genre:     "Science Fiction",
			Publisher: "Ace",
		},
		{
			Title:     "The Hobbit",
			Price:     "9.99",
			Desc:      "There and back again.",
			Author:    "J. R. R. Tolkien",
			Genre:     "Fantasy",
			Publisher: "Houghton Mifflin",
		},
		{
			Title:     "Hyperion",
			Price:     "11.00",
			Desc:      "Seven pilgrims, seven tales, one Shrike.",
			Author:    "Dan Simmons",
			Genre:     "Science Fiction",
			Publisher: "Doubleday",
		},
	}

	for _, b := range books {
		if err := upsertBook(ctx, pool, b); err != nil {
			return fmt.Errorf("upsert book %s: %w", b.Title, err)
		}
	}
	return nil
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, username, email, password string) error {
	hash, err := credential.Hash(password)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (username, email, password_hash, is_admin)
VALUES ($1, $2, $3, TRUE)
ON CONFLICT (username) DO UPDATE SET is_admin = TRUE
`
	_, err = pool.Exec(ctx, q, username, email, hash)
	return err
}

func ensureReference(ctx context.Context, pool *pgxpool.Pool, table, name string) (int64, error) {
	// Table names come from a fixed list below, never from input.
	q := fmt.Sprintf(`
INSERT INTO %s (name)
VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id
`, table)
	var id int64
	if err := pool.QueryRow(ctx, q, name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func upsertBook(ctx context.Context, pool *pgxpool.Pool, b bookSeed) error {
	authorID, err := ensureReference(ctx, pool, "authors", b.Author)
	if err != nil {
		return err
	}
	genreID, err := ensureReference(ctx, pool, "genres", b.Genre)
	if err != nil {
		return err
	}
	publisherID, err := ensureReference(ctx, pool, "publishers", b.Publisher)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO books (title, price, description, author_id, genre_id, publisher_id)
SELECT $1, $2, $3, $4, $5, $6
WHERE NOT EXISTS (SELECT 1 FROM books WHERE title = $1)
`
	_, err = pool.Exec(ctx, q, b.Title, b.Price, b.Desc, authorID, genreID, publisherID)
	return err
}
