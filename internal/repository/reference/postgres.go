package reference

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"bookstore/internal/domain"
)

type postgresStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger zerolog.Logger) Store {
	return &postgresStore{pool: pool, logger: logger.With().Str("repo", "reference").Logger()}
}

// Kind values map onto table names directly; valid() guards against anything
// reaching string interpolation besides the three known tables.
func (s *postgresStore) table(kind Kind) (string, error) {
	if !kind.valid() {
		return "", fmt.Errorf("unknown reference kind %q", kind)
	}
	return string(kind), nil
}

func (s *postgresStore) List(ctx context.Context, kind Kind) ([]domain.Reference, error) {
	table, err := s.table(kind)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `SELECT id, name FROM `+table+` ORDER BY name ASC, id ASC`)
	if err != nil {
		s.logger.Error().Err(err).Str("kind", string(kind)).Msg("list failed")
		return nil, err
	}
	defer rows.Close()

	var out []domain.Reference
	for rows.Next() {
		var ref domain.Reference
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

func (s *postgresStore) GetByID(ctx context.Context, kind Kind, id int64) (*domain.Reference, error) {
	table, err := s.table(kind)
	if err != nil {
		return nil, err
	}

	var ref domain.Reference
	err = s.pool.QueryRow(ctx, `SELECT id, name FROM `+table+` WHERE id = $1`, id).Scan(&ref.ID, &ref.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &ref, nil
}

func (s *postgresStore) Create(ctx context.Context, kind Kind, name string) (*domain.Reference, error) {
	table, err := s.table(kind)
	if err != nil {
		return nil, err
	}

	ref := domain.Reference{Name: name}
	err = s.pool.QueryRow(ctx, `INSERT INTO `+table+` (name) VALUES ($1) RETURNING id`, name).Scan(&ref.ID)
	if err != nil {
		return nil, translate(err)
	}
	s.logger.Info().Str("kind", string(kind)).Int64("id", ref.ID).Str("name", name).Msg("reference created")
	return &ref, nil
}

func (s *postgresStore) Rename(ctx context.Context, kind Kind, id int64, name string) (*domain.Reference, error) {
	table, err := s.table(kind)
	if err != nil {
		return nil, err
	}

	cmd, err := s.pool.Exec(ctx, `UPDATE `+table+` SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return nil, translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return &domain.Reference{ID: id, Name: name}, nil
}

// Delete removes a row; books still referencing it surface as ErrInUse.
func (s *postgresStore) Delete(ctx context.Context, kind Kind, id int64) error {
	table, err := s.table(kind)
	if err != nil {
		return err
	}

	cmd, err := s.pool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *postgresStore) Count(ctx context.Context, kind Kind) (int, error) {
	table, err := s.table(kind)
	if err != nil {
		return 0, err
	}

	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return domain.ErrAlreadyExists
		case "23503":
			return domain.ErrInUse
		}
	}
	return err
}
