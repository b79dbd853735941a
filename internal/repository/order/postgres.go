package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
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
	return &postgresRepo{pool: pool, logger: logger.With().Str("repo", "order").Logger()}
}

// CreateAtomic inserts the order header and all items inside one transaction.
// Any failure rolls back the whole write.
func (r *postgresRepo) CreateAtomic(ctx context.Context, o domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const headerQ = `
INSERT INTO orders (user_id, created_at, payment_method, ship_to_name, address, city, postal_code, phone, total, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id
`
	if err := tx.QueryRow(ctx, headerQ,
		o.UserID,
		o.CreatedAt,
		o.PaymentMethod,
		o.ShipToName,
		o.Address,
		o.City,
		o.PostalCode,
		o.Phone,
		o.Total,
		o.Status,
	).Scan(&o.ID); err != nil {
		r.logger.Error().Err(err).Int64("user_id", o.UserID).Msg("insert order header failed")
		return nil, err
	}

	const itemQ = `
INSERT INTO order_items (order_id, book_id, book_title, quantity, unit_price)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
		if err := tx.QueryRow(ctx, itemQ,
			o.ID,
			o.Items[i].BookID,
			o.Items[i].BookTitle,
			o.Items[i].Quantity,
			o.Items[i].UnitPrice,
		).Scan(&o.Items[i].ID); err != nil {
			r.logger.Error().Err(err).Int64("order_id", o.ID).Int64("book_id", o.Items[i].BookID).Msg("insert order item failed")
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	r.logger.Info().Int64("id", o.ID).Int64("user_id", o.UserID).Int("items", len(o.Items)).Msg("order created")
	return &o, nil
}

const orderColumns = `
o.id, o.user_id, COALESCE(u.email, ''), o.created_at, o.payment_method,
o.ship_to_name, o.address, o.city, o.postal_code, o.phone, o.total, o.status`

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders o
LEFT JOIN users u ON u.id = o.user_id
WHERE o.id = $1
`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const itemsQ = `
SELECT id, order_id, book_id, book_title, quantity, unit_price
FROM order_items
WHERE order_id = $1
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, itemsQ, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.BookID, &it.BookTitle, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

func (r *postgresRepo) ListPaged(ctx context.Context, in ListInput) ([]domain.Order, int, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize < 1 {
		in.PageSize = 20
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
		like := arg("%" + q + "%")
		conds = append(conds, fmt.Sprintf(
			"(o.id::text = %s OR o.ship_to_name ILIKE %s OR o.address ILIKE %s OR o.city ILIKE %s OR o.postal_code ILIKE %s OR u.email ILIKE %s)",
			arg(q), like, like, like, like, like))
	}
	if in.Status != "" {
		conds = append(conds, "o.status = "+arg(in.Status))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	base := ` FROM orders o LEFT JOIN users u ON u.id = o.user_id ` + where

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*)"+base, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQ := "SELECT " + orderColumns + base +
		" ORDER BY o.created_at DESC, o.id DESC" +
		" LIMIT " + arg(in.PageSize) + " OFFSET " + arg((in.Page-1)*in.PageSize)

	rows, err := r.pool.Query(ctx, listQ, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *o)
	}
	return result, total, rows.Err()
}

func (r *postgresRepo) SetStatus(ctx context.Context, id int64, status string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Info().Int64("id", id).Str("status", status).Msg("order status updated")
	return nil
}

func (r *postgresRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.UserEmail,
		&o.CreatedAt,
		&o.PaymentMethod,
		&o.ShipToName,
		&o.Address,
		&o.City,
		&o.PostalCode,
		&o.Phone,
		&o.Total,
		&o.Status,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
