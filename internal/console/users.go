package console

import (
	"github.com/ariefcatur/nexus-admin/internal/catalog"
	"log/slog"
	"strings"
)

// UsersPage is read-only: a list plus a client-side search box.
type UsersPage struct {
	*List[catalog.User]
	search string
}

func NewUsersPage(src Lister[catalog.User], log *slog.Logger) *UsersPage {
	return &UsersPage{List: NewList[catalog.User]("User", src, log)}
}

func (p *UsersPage) SetSearch(q string) {
	p.mu.Lock()
	p.search = q
	p.mu.Unlock()
}

func (p *UsersPage) Search() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.search
}

// Filtered returns users whose username or email contains the search text,
// ignoring case.
func (p *UsersPage) Filtered() []catalog.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	q := strings.ToLower(p.search)
	out := make([]catalog.User, 0, len(p.items))
	for _, u := range p.items {
		if strings.Contains(strings.ToLower(u.Username), q) ||
			(u.Email != "" && strings.Contains(strings.ToLower(u.Email), q)) {
			out = append(out, u)
		}
	}
	return out
}
