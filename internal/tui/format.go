package tui

import (
	"fmt"
	"github.com/ariefcatur/nexus-admin/internal/catalog"
	"github.com/shopspring/decimal"
	"strings"
)

// FormatPrice renders an amount with a dollar sign and two decimals. There is
// no currency handling.
func FormatPrice(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func Initial(name string) string {
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return "?"
}

func ProductCard(p catalog.Product) string {
	return fmt.Sprintf("%s  %s\n%s",
		titleStyle.Render(truncate(p.Name, 18)),
		priceStyle.Render(FormatPrice(p.Price)),
		subtleStyle.Render(truncate(p.Description, 56)))
}

func StoreCard(s catalog.Store) string {
	return fmt.Sprintf("%s\n%s",
		titleStyle.Render(fmt.Sprintf("Store #%d", s.StoreID)),
		subtleStyle.Render(truncate(s.StoreLocation, 28)))
}

func OrderCard(o catalog.Order) string {
	return fmt.Sprintf("%s  %s\n%s",
		titleStyle.Render(fmt.Sprintf("Order #%d", o.ID)),
		priceStyle.Render(FormatPrice(o.Total)),
		subtleStyle.Render(fmt.Sprintf("%s · user %d", o.Status, o.UserID)))
}

func UserCard(u catalog.User) string {
	email := u.Email
	if email == "" {
		email = "No email provided"
	}
	return fmt.Sprintf("%s %s\n%s\n%s",
		brandStyle.Render("("+Initial(u.Username)+")"),
		titleStyle.Render(u.Username),
		subtleStyle.Render("✉ "+email),
		subtleStyle.Render(fmt.Sprintf("User ID: %d", u.ID)))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
