package tui

import (
	tea "charm.land/bubbletea/v2"
	"context"
	"fmt"
	"github.com/ariefcatur/nexus-admin/internal/console"
	"strings"
)

type usersScreen struct {
	page      *console.UsersPage
	searching bool
}

func (s *usersScreen) mount(ctx context.Context) tea.Cmd {
	s.searching = false
	return run(func() { _ = s.page.Mount(ctx) })
}

func (s *usersScreen) unmount() { s.page.Unmount() }

func (s *usersScreen) captured() bool { return s.searching }

func (s *usersScreen) handleKey(ctx context.Context, key, text string) tea.Cmd {
	if s.searching {
		switch key {
		case "esc", "enter":
			s.searching = false
		default:
			if q, changed := editText(s.page.Search(), key, text); changed {
				s.page.SetSearch(q)
			}
		}
		return nil
	}
	switch key {
	case "/":
		s.searching = true
	case "r":
		return run(func() { _ = s.page.Refresh(ctx) })
	}
	return nil
}

func (s *usersScreen) render(width int) string {
	var b strings.Builder
	b.WriteString(header("Users", "Manage platform users"))
	if s.page.Phase() == console.Loading {
		b.WriteString(subtleStyle.Render("Loading…"))
		return b.String()
	}

	q := s.page.Search()
	box := inputStyle
	if s.searching {
		box = inputFocused
	}
	shown := q
	if shown == "" {
		shown = subtleStyle.Render("Search users...")
	}
	b.WriteString(box.Render(shown) + "\n")

	users := s.page.Filtered()
	if len(users) == 0 {
		b.WriteString(emptyStyle.Render(fmt.Sprintf("No users found matching %q", q)))
	} else {
		cards := make([]string, 0, len(users))
		for _, u := range users {
			cards = append(cards, cardStyle.Render(UserCard(u)))
		}
		b.WriteString(grid(cards, width))
	}
	b.WriteString("\n" + helpStyle.Render("/ search · r refresh"))
	return b.String()
}
