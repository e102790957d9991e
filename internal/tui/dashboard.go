package tui

import (
	tea "charm.land/bubbletea/v2"
	"context"
	"github.com/ariefcatur/nexus-admin/internal/console"
	"strconv"
	"strings"
)

type dashboardScreen struct {
	dash *console.Dashboard
}

func (s *dashboardScreen) mount(ctx context.Context) tea.Cmd {
	return run(func() { s.dash.Load(ctx) })
}

func (s *dashboardScreen) unmount()       {}
func (s *dashboardScreen) captured() bool { return false }

func (s *dashboardScreen) handleKey(ctx context.Context, key, _ string) tea.Cmd {
	if key == "r" {
		return s.mount(ctx)
	}
	return nil
}

func (s *dashboardScreen) render(width int) string {
	var b strings.Builder
	b.WriteString(header("Dashboard", "Overview of your commerce backend"))
	if s.dash.Phase() == console.Loading {
		b.WriteString(subtleStyle.Render("Loading…"))
		return b.String()
	}
	stats := s.dash.Stats()
	cards := make([]string, 0, len(stats))
	for _, st := range stats {
		val := "—"
		if st.OK {
			val = strconv.Itoa(st.Count)
		}
		cards = append(cards, cardStyle.Render(subtleStyle.Render(st.Label)+"\n"+priceStyle.Render(val)))
	}
	if len(cards) > 0 {
		b.WriteString(grid(cards, width))
	}
	b.WriteString("\n" + helpStyle.Render("r refresh"))
	return b.String()
}
