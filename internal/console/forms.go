package console

import (
	"fmt"
	"github.com/ariefcatur/nexus-admin/internal/catalog"
	"github.com/shopspring/decimal"
	"strconv"
	"strings"
)

type ProductForm struct {
	Name        string
	Description string
	Price       string
}

var ProductSchema = Schema[catalog.Product, ProductForm, catalog.ProductFields]{
	Noun: "Product",
	Inputs: []Input[ProductForm]{
		{
			Label: "Product Name", Placeholder: "e.g. Wireless Headphones", Required: true,
			Get: func(f ProductForm) string { return f.Name },
			Set: func(f *ProductForm, v string) { f.Name = v },
		},
		{
			Label: "Price", Placeholder: "0.00", Required: true,
			Get: func(f ProductForm) string { return f.Price },
			Set: func(f *ProductForm, v string) { f.Price = v },
		},
		{
			Label: "Description", Placeholder: "Product details...", Multiline: true,
			Get: func(f ProductForm) string { return f.Description },
			Set: func(f *ProductForm, v string) { f.Description = v },
		},
	},
	FromRecord: func(p catalog.Product) ProductForm {
		return ProductForm{Name: p.Name, Description: p.Description, Price: p.Price.StringFixed(2)}
	},
	Parse: func(f ProductForm) (catalog.ProductFields, error) {
		price, err := parseMoney("price", f.Price)
		if err != nil {
			return catalog.ProductFields{}, err
		}
		return catalog.ProductFields{Name: strings.TrimSpace(f.Name), Description: f.Description, Price: &price}, nil
	},
}

type StoreForm struct {
	StoreID       string
	StoreLocation string
}

var StoreSchema = Schema[catalog.Store, StoreForm, catalog.StoreFields]{
	Noun: "Store",
	Inputs: []Input[StoreForm]{
		{
			Label: "Store Number", Placeholder: "e.g. 101", Required: true,
			Get: func(f StoreForm) string { return f.StoreID },
			Set: func(f *StoreForm, v string) { f.StoreID = v },
		},
		{
			Label: "Location", Placeholder: "e.g. Downtown Seattle", Required: true,
			Get: func(f StoreForm) string { return f.StoreLocation },
			Set: func(f *StoreForm, v string) { f.StoreLocation = v },
		},
	},
	FromRecord: func(s catalog.Store) StoreForm {
		return StoreForm{StoreID: strconv.Itoa(s.StoreID), StoreLocation: s.StoreLocation}
	},
	Parse: func(f StoreForm) (catalog.StoreFields, error) {
		n, err := strconv.Atoi(strings.TrimSpace(f.StoreID))
		if err != nil {
			return catalog.StoreFields{}, fmt.Errorf("store number %q is not a number", f.StoreID)
		}
		return catalog.StoreFields{StoreID: n, StoreLocation: strings.TrimSpace(f.StoreLocation)}, nil
	},
}

type OrderForm struct {
	UserID string
	Status string
	Total  string
}

var OrderSchema = Schema[catalog.Order, OrderForm, catalog.OrderFields]{
	Noun: "Order",
	Inputs: []Input[OrderForm]{
		{
			Label: "User ID", Placeholder: "e.g. 42", Required: true,
			Get: func(f OrderForm) string { return f.UserID },
			Set: func(f *OrderForm, v string) { f.UserID = v },
		},
		{
			Label: "Status", Placeholder: statusHint, Required: true,
			Get: func(f OrderForm) string { return f.Status },
			Set: func(f *OrderForm, v string) { f.Status = v },
		},
		{
			Label: "Total", Placeholder: "0.00", Required: true,
			Get: func(f OrderForm) string { return f.Total },
			Set: func(f *OrderForm, v string) { f.Total = v },
		},
	},
	FromRecord: func(o catalog.Order) OrderForm {
		return OrderForm{
			UserID: strconv.FormatInt(o.UserID, 10),
			Status: string(o.Status),
			Total:  o.Total.StringFixed(2),
		}
	},
	Parse: func(f OrderForm) (catalog.OrderFields, error) {
		uid, err := strconv.ParseInt(strings.TrimSpace(f.UserID), 10, 64)
		if err != nil {
			return catalog.OrderFields{}, fmt.Errorf("user id %q is not a number", f.UserID)
		}
		total, err := parseMoney("total", f.Total)
		if err != nil {
			return catalog.OrderFields{}, err
		}
		status := catalog.Status(strings.ToUpper(strings.TrimSpace(f.Status)))
		if !status.Valid() {
			return catalog.OrderFields{}, fmt.Errorf("status must be one of %s", statusHint)
		}
		return catalog.OrderFields{UserID: uid, Status: status, Total: &total}, nil
	},
}

var statusHint = func() string {
	names := make([]string, len(catalog.Statuses))
	for i, s := range catalog.Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, " | ")
}()

func parseMoney(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s %q is not a number", field, s)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%s must not be negative", field)
	}
	return d.Round(2), nil
}

type (
	ProductsPage = Page[catalog.Product, ProductForm, catalog.ProductFields]
	StoresPage   = Page[catalog.Store, StoreForm, catalog.StoreFields]
	OrdersPage   = Page[catalog.Order, OrderForm, catalog.OrderFields]
)
