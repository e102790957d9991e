package catalog

import (
	"github.com/shopspring/decimal"
	"time"
)

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// User is read-only from the console.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

type Store struct {
	ID            int64  `json:"id"`
	StoreID       int    `json:"store_id"`
	StoreLocation string `json:"store_location"`
}

type Order struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Status    Status          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

// Write payloads. Identity is always assigned by the server.

type ProductFields struct {
	Name        string           `json:"name" validate:"required,max=100"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
}

type StoreFields struct {
	StoreID       int    `json:"store_id" validate:"required,gt=0,lte=2147483647"`
	StoreLocation string `json:"store_location" validate:"required,max=100"`
}

type OrderFields struct {
	UserID int64            `json:"user_id" validate:"required,gt=0"`
	Status Status           `json:"status" validate:"required,oneof=CREATED PAID SHIPPED COMPLETED CANCELLED"`
	Total  *decimal.Decimal `json:"total" validate:"required"`
}

// UserFields exists so users fit the generic resource shape; users have no
// write endpoints.
type UserFields struct{}

func (p Product) Key() int64 { return p.ID }
func (u User) Key() int64    { return u.ID }
func (s Store) Key() int64   { return s.ID }
func (o Order) Key() int64   { return o.ID }

// Column limits: products.price NUMERIC(10,2), orders.total NUMERIC(12,2).
var (
	MaxPrice = decimal.RequireFromString("99999999.99")
	MaxTotal = decimal.RequireFromString("9999999999.99")
)

// Problems reports rule violations the struct tags cannot express.
func (f ProductFields) Problems() map[string]string {
	if msg := moneyProblem(f.Price, MaxPrice); msg != "" {
		return map[string]string{"price": msg}
	}
	return nil
}

func (f OrderFields) Problems() map[string]string {
	if msg := moneyProblem(f.Total, MaxTotal); msg != "" {
		return map[string]string{"total": msg}
	}
	return nil
}

func moneyProblem(d *decimal.Decimal, max decimal.Decimal) string {
	switch {
	case d == nil:
		return ""
	case d.IsNegative():
		return "must not be negative"
	case d.Round(2).GreaterThan(max):
		return "must be at most " + max.StringFixed(2)
	}
	return ""
}
