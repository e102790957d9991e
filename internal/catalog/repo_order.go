package catalog

import (
	"context"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type OrderRepo struct{ DB *pgxpool.Pool }

const orderCols = `id, user_id, status, total::text, created_at`

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	var status, total string
	if err := row.Scan(&o.ID, &o.UserID, &status, &total, &o.CreatedAt); err != nil {
		return Order{}, classify(err)
	}
	d, err := decimal.NewFromString(total)
	if err != nil {
		return Order{}, err
	}
	o.Status, o.Total = Status(status), d
	return o, nil
}

func (r *OrderRepo) List(ctx context.Context) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+orderCols+` FROM orders ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OrderRepo) Get(ctx context.Context, id int64) (Order, error) {
	return scanOrder(r.DB.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id=$1`, id))
}

// Create always starts an order in CREATED unless the caller asks for another
// status; it does not walk the transition table.
func (r *OrderRepo) Create(ctx context.Context, f OrderFields) (Order, error) {
	return scanOrder(r.DB.QueryRow(ctx, `
		INSERT INTO orders(user_id, status, total) VALUES ($1, $2, $3::numeric)
		RETURNING `+orderCols, f.UserID, string(f.Status), f.Total.StringFixed(2)))
}

// Update locks the row so the status check and the write see the same state.
func (r *OrderRepo) Update(ctx context.Context, id int64, f OrderFields) (Order, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var cur string
	if err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1 FOR UPDATE`, id).Scan(&cur); err != nil {
		return Order{}, classify(err)
	}
	if !CanTransition(Status(cur), f.Status) {
		return Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, cur, f.Status)
	}

	o, err := scanOrder(tx.QueryRow(ctx, `
		UPDATE orders SET user_id=$2, status=$3, total=$4::numeric
		WHERE id=$1
		RETURNING `+orderCols, id, f.UserID, string(f.Status), f.Total.StringFixed(2)))
	if err != nil {
		return Order{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *OrderRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, `DELETE FROM orders WHERE id=$1`, id)
}
