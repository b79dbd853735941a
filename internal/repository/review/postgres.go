package review

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"bookstore/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger zerolog.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger.With().Str("repo", "review").Logger()}
}

func (r *postgresRepo) Create(ctx context.Context, rev domain.Review) (*domain.Review, error) {
	const q = `
INSERT INTO reviews (book_id, user_id, rating, content)
VALUES ($1, $2, $3, $4)
RETURNING id
`
	err := r.pool.QueryRow(ctx, q, rev.BookID, rev.UserID, rev.Rating, rev.Content).Scan(&rev.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	r.logger.Info().Int64("id", rev.ID).Int64("book_id", rev.BookID).Msg("review created")
	return &rev, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	const q = `
SELECT r.id, r.book_id, r.user_id, u.username, r.rating, r.content
FROM reviews r
JOIN users u ON u.id = r.user_id
WHERE r.id = $1
`
	var rev domain.Review
	err := r.pool.QueryRow(ctx, q, id).Scan(&rev.ID, &rev.BookID, &rev.UserID, &rev.Username, &rev.Rating, &rev.Content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rev, nil
}

func (r *postgresRepo) ListByBook(ctx context.Context, bookID int64) ([]domain.Review, error) {
	const q = `
SELECT r.id, r.book_id, r.user_id, u.username, r.rating, r.content
FROM reviews r
JOIN users u ON u.id = r.user_id
WHERE r.book_id = $1
ORDER BY r.id DESC
`
	rows, err := r.pool.Query(ctx, q, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(&rev.ID, &rev.BookID, &rev.UserID, &rev.Username, &rev.Rating, &rev.Content); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
