package catalog

import (
	"context"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type ProductRepo struct{ DB *pgxpool.Pool }

const productCols = `id, name, COALESCE(description, ''), price::text`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	var price string
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &price); err != nil {
		return Product{}, classify(err)
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return Product{}, err
	}
	p.Price = d
	return p, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productCols+` FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (Product, error) {
	return scanProduct(r.DB.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, id))
}

func (r *ProductRepo) Create(ctx context.Context, f ProductFields) (Product, error) {
	return scanProduct(r.DB.QueryRow(ctx, `
		INSERT INTO products(name, description, price)
		VALUES ($1, $2, $3::numeric)
		RETURNING `+productCols, f.Name, f.Description, f.Price.StringFixed(2)))
}

func (r *ProductRepo) Update(ctx context.Context, id int64, f ProductFields) (Product, error) {
	return scanProduct(r.DB.QueryRow(ctx, `
		UPDATE products SET name=$2, description=$3, price=$4::numeric
		WHERE id=$1
		RETURNING `+productCols, id, f.Name, f.Description, f.Price.StringFixed(2)))
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, `DELETE FROM products WHERE id=$1`, id)
}

type StoreRepo struct{ DB *pgxpool.Pool }

const storeCols = `id, store_id, store_location`

func scanStore(row pgx.Row) (Store, error) {
	var s Store
	if err := row.Scan(&s.ID, &s.StoreID, &s.StoreLocation); err != nil {
		return Store{}, classify(err)
	}
	return s, nil
}

func (r *StoreRepo) List(ctx context.Context) ([]Store, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+storeCols+` FROM stores ORDER BY store_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Store{}
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *StoreRepo) Get(ctx context.Context, id int64) (Store, error) {
	return scanStore(r.DB.QueryRow(ctx, `SELECT `+storeCols+` FROM stores WHERE id=$1`, id))
}

func (r *StoreRepo) Create(ctx context.Context, f StoreFields) (Store, error) {
	s, err := scanStore(r.DB.QueryRow(ctx, `
		INSERT INTO stores(store_id, store_location) VALUES ($1, $2)
		RETURNING `+storeCols, f.StoreID, f.StoreLocation))
	return s, classify(err)
}

func (r *StoreRepo) Update(ctx context.Context, id int64, f StoreFields) (Store, error) {
	s, err := scanStore(r.DB.QueryRow(ctx, `
		UPDATE stores SET store_id=$2, store_location=$3 WHERE id=$1
		RETURNING `+storeCols, id, f.StoreID, f.StoreLocation))
	return s, classify(err)
}

func (r *StoreRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, `DELETE FROM stores WHERE id=$1`, id)
}

type UserRepo struct{ DB *pgxpool.Pool }

func (r *UserRepo) List(ctx context.Context) ([]User, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, username, COALESCE(email, '') FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func deleteByID(ctx context.Context, db *pgxpool.Pool, sql string, id int64) error {
	ct, err := db.Exec(ctx, sql, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// classify maps driver errors onto the catalog's sentinel errors.
func classify(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return ErrConflict
		case "22003": // numeric_value_out_of_range
			return fmt.Errorf("%w: %s", ErrOutOfRange, pgErr.Message)
		}
	}
	return err
}
