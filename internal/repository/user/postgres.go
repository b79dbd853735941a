package user

import (
	"context"
	"errors"
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
	return &postgresRepo{pool: pool, logger: logger.With().Str("repo", "user").Logger()}
}

const userColumns = `id, username, email, is_admin, password_hash, COALESCE(avatar_path, ''), created_at`

func (r *postgresRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	const q = `
INSERT INTO users (username, email, is_admin, password_hash)
VALUES ($1, $2, $3, $4)
RETURNING ` + userColumns
	created, err := r.scanUser(r.pool.QueryRow(ctx, q,
		strings.TrimSpace(u.Username),
		strings.TrimSpace(u.Email),
		u.IsAdmin,
		u.PasswordHash,
	))
	if err != nil {
		return nil, err
	}
	r.logger.Info().Int64("id", created.ID).Str("username", created.Username).Msg("user created")
	return created, nil
}

// GetByUsernameOrEmail is the login lookup: one term matched case-insensitively
// against both columns.
func (r *postgresRepo) GetByUsernameOrEmail(ctx context.Context, term string) (*domain.User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
WHERE lower(username) = lower($1) OR lower(email) = lower($1)
LIMIT 1
`
	return r.scanUser(r.pool.QueryRow(ctx, q, strings.TrimSpace(term)))
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, err := r.scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}

	const reviewsQ = `
SELECT r.id, r.book_id, r.user_id, b.title, r.rating, r.content
FROM reviews r
JOIN books b ON b.id = r.book_id
WHERE r.user_id = $1
ORDER BY r.id DESC
`
	rows, err := r.pool.Query(ctx, reviewsQ, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(&rev.ID, &rev.BookID, &rev.UserID, &rev.BookTitle, &rev.Rating, &rev.Content); err != nil {
			return nil, err
		}
		u.Reviews = append(u.Reviews, rev)
	}
	return u, rows.Err()
}

func (r *postgresRepo) SearchPaged(ctx context.Context, query string, page, pageSize int) ([]domain.User, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	term := "%" + strings.TrimSpace(query) + "%"

	var total int
	const countQ = `SELECT COUNT(*) FROM users WHERE username ILIKE $1 OR email ILIKE $1`
	if err := r.pool.QueryRow(ctx, countQ, term).Scan(&total); err != nil {
		return nil, 0, err
	}

	const listQ = `
SELECT ` + userColumns + `
FROM users
WHERE username ILIKE $1 OR email ILIKE $1
ORDER BY username ASC, id ASC
LIMIT $2 OFFSET $3
`
	rows, err := r.pool.Query(ctx, listQ, term, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *u)
	}
	return result, total, rows.Err()
}

func (r *postgresRepo) SetAdmin(ctx context.Context, id int64, isAdmin bool) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE users SET is_admin = $1 WHERE id = $2`, isAdmin, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Info().Int64("id", id).Bool("is_admin", isAdmin).Msg("admin flag updated")
	return nil
}

func (r *postgresRepo) IsAdmin(ctx context.Context, id int64) (bool, error) {
	var isAdmin bool
	err := r.pool.QueryRow(ctx, `SELECT is_admin FROM users WHERE id = $1`, id).Scan(&isAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domain.ErrNotFound
		}
		return false, err
	}
	return isAdmin, nil
}

// Delete hard-deletes a user. Orders restrict deletion at the schema level and
// surface here as ErrHasOrders.
func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return domain.ErrHasOrders
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *postgresRepo) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.IsAdmin, &u.PasswordHash, &u.AvatarPath, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &u, nil
}
