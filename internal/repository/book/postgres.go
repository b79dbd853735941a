package book

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger zerolog.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger.With().Str("repo", "book").Logger()}
}

const bookColumns = `
b.id, b.title, b.price, COALESCE(b.description, ''),
b.author_id, b.genre_id, b.publisher_id,
a.name, g.name, p.name,
COALESCE(b.cover_image_path, '')`

const bookJoins = `
FROM books b
JOIN authors a ON a.id = b.author_id
JOIN genres g ON g.id = b.genre_id
JOIN publishers p ON p.id = b.publisher_id`

func (r *postgresRepo) SearchPaged(ctx context.Context, in SearchInput) ([]domain.Book, int, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize < 1 {
		in.PageSize = 10
	}

	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q := strings.TrimSpace(in.Query); q != "" {
		p := arg("%" + q + "%")
		conds = append(conds, fmt.Sprintf("(b.title ILIKE %s OR b.description ILIKE %s OR a.name ILIKE %s)", p, p, p))
	}
	if in.GenreID != nil {
		conds = append(conds, "b.genre_id = "+arg(*in.GenreID))
	}
	if in.MinPrice != nil {
		conds = append(conds, "b.price >= "+arg(*in.MinPrice))
	}
	if in.MaxPrice != nil {
		conds = append(conds, "b.price <= "+arg(*in.MaxPrice))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) " + bookJoins + " " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Str("query", in.Query).Msg("search count failed")
		return nil, 0, err
	}

	listQuery := "SELECT " + bookColumns + " " + bookJoins + " " + where +
		" ORDER BY b.title ASC, b.id ASC" +
		" LIMIT " + arg(in.PageSize) + " OFFSET " + arg((in.Page-1)*in.PageSize)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("query", in.Query).Msg("search failed")
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	q := "SELECT " + bookColumns + " " + bookJoins + " WHERE b.id = $1"
	b, err := scanBook(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error().Err(err).Int64("id", id).Msg("get failed")
		return nil, err
	}
	return b, nil
}

// PricesByIDs fetches the authoritative title and price for each id. Ids
// missing from the result were deleted and must fail checkout at the caller.
func (r *postgresRepo) PricesByIDs(ctx context.Context, ids []int64) (map[int64]PriceSnapshot, error) {
	out := make(map[int64]PriceSnapshot, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	const q = `SELECT id, title, price FROM books WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		r.logger.Error().Err(err).Ints64("ids", ids).Msg("price lookup failed")
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   int64
			snap PriceSnapshot
		)
		if err := rows.Scan(&id, &snap.Title, &snap.Price); err != nil {
			return nil, err
		}
		out[id] = snap
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Create(ctx context.Context, b domain.Book) (*domain.Book, error) {
	const q = `
INSERT INTO books (title, price, description, author_id, genre_id, publisher_id, cover_image_path)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, NULLIF($7, ''))
RETURNING id
`
	err := r.pool.QueryRow(ctx, q,
		b.Title, b.Price, b.Description, b.AuthorID, b.GenreID, b.PublisherID, b.CoverImagePath,
	).Scan(&b.ID)
	if err != nil {
		return nil, translateError(err)
	}
	r.logger.Info().Int64("id", b.ID).Str("title", b.Title).Msg("book created")
	return &b, nil
}

func (r *postgresRepo) Update(ctx context.Context, b domain.Book) (*domain.Book, error) {
	const q = `
UPDATE books
SET title = $1, price = $2, description = NULLIF($3, ''),
    author_id = $4, genre_id = $5, publisher_id = $6, cover_image_path = NULLIF($7, '')
WHERE id = $8
`
	cmd, err := r.pool.Exec(ctx, q,
		b.Title, b.Price, b.Description, b.AuthorID, b.GenreID, b.PublisherID, b.CoverImagePath, b.ID,
	)
	if err != nil {
		return nil, translateError(err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Info().Int64("id", id).Msg("book deleted")
	return nil
}

func (r *postgresRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanBook(row pgx.Row) (*domain.Book, error) {
	var b domain.Book
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Price,
		&b.Description,
		&b.AuthorID,
		&b.GenreID,
		&b.PublisherID,
		&b.AuthorName,
		&b.GenreName,
		&b.PublisherName,
		&b.CoverImagePath,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return domain.ErrAlreadyExists
		case "23503":
			return domain.ErrNotFound
		}
	}
	return err
}
