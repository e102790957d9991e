package tui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"context"
	"fmt"
	"github.com/ariefcatur/nexus-admin/internal/console"
	"strings"
)

// doneMsg is sent when a background call finishes. Page state already holds
// the outcome; the message only triggers a redraw.
type doneMsg struct{}

type screen interface {
	mount(ctx context.Context) tea.Cmd
	unmount()
	// captured reports whether the screen is in a modal state that owns the
	// keyboard (form, confirm, alert, search).
	captured() bool
	handleKey(ctx context.Context, key, text string) tea.Cmd
	render(width int) string
}

func run(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return doneMsg{}
	}
}

// crudScreen drives a console.Page: a card grid plus the shared create/edit
// modal and a delete confirmation.
type crudScreen[T console.Keyed, Fm any, F any] struct {
	page     *console.Page[T, Fm, F]
	heading  string
	subtitle string
	empty    string
	card     func(T) string

	cursor     int
	field      int
	confirming bool
	pending    int64
}

func (s *crudScreen[T, Fm, F]) mount(ctx context.Context) tea.Cmd {
	s.cursor, s.field, s.confirming = 0, 0, false
	return run(func() { _ = s.page.Mount(ctx) })
}

func (s *crudScreen[T, Fm, F]) unmount() { s.page.Unmount() }

func (s *crudScreen[T, Fm, F]) captured() bool {
	v := s.page.View()
	return v.ModalOpen || v.Alert != "" || s.confirming
}

func (s *crudScreen[T, Fm, F]) handleKey(ctx context.Context, key, text string) tea.Cmd {
	v := s.page.View()

	switch {
	case v.Alert != "":
		if key == "enter" || key == "esc" {
			s.page.DismissAlert()
		}
		return nil

	case s.confirming:
		switch key {
		case "y", "Y":
			s.confirming = false
			id := s.pending
			return run(func() { _, _ = s.page.Delete(ctx, id, console.Confirmed) })
		case "n", "N", "esc":
			s.confirming = false
		}
		return nil

	case v.ModalOpen:
		return s.modalKey(ctx, key, text, v)
	}

	switch key {
	case "up", "k", "left", "h":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j", "right", "l":
		if s.cursor < len(v.Items)-1 {
			s.cursor++
		}
	case "n":
		s.field = 0
		s.page.OpenCreate()
	case "e":
		if s.cursor < len(v.Items) {
			s.field = 0
			s.page.OpenEdit(v.Items[s.cursor])
		}
	case "d":
		if s.cursor < len(v.Items) {
			s.pending = v.Items[s.cursor].Key()
			s.confirming = true
		}
	case "r":
		return run(func() { _ = s.page.Refresh(ctx) })
	}
	return nil
}

func (s *crudScreen[T, Fm, F]) modalKey(ctx context.Context, key, text string, v console.PageView[T, Fm]) tea.Cmd {
	inputs := s.page.Schema().Inputs
	switch key {
	case "esc", "enter":
		// the in-flight result closes and resets whatever modal is open
		if v.Submitting {
			return nil
		}
		if key == "esc" {
			s.page.Close()
			return nil
		}
		return run(func() { _ = s.page.Submit(ctx) })
	case "tab", "down":
		s.field = (s.field + 1) % len(inputs)
		return nil
	case "shift+tab", "up":
		s.field = (s.field + len(inputs) - 1) % len(inputs)
		return nil
	}
	in := inputs[s.field]
	s.page.EditForm(func(fm *Fm) {
		if next, changed := editText(in.Get(*fm), key, text); changed {
			in.Set(fm, next)
		}
	})
	return nil
}

// editText applies one key press to a single-line value: printable text is
// appended, backspace drops the last rune, ctrl+u clears.
func editText(cur, key, text string) (string, bool) {
	switch key {
	case "backspace":
		r := []rune(cur)
		if len(r) == 0 {
			return cur, false
		}
		return string(r[:len(r)-1]), true
	case "ctrl+u":
		return "", cur != ""
	}
	if text == "" {
		return cur, false
	}
	return cur + text, true
}

func (s *crudScreen[T, Fm, F]) render(width int) string {
	v := s.page.View()
	var b strings.Builder
	b.WriteString(header(s.heading, s.subtitle))

	if v.Phase == console.Loading {
		b.WriteString(subtleStyle.Render("Loading…"))
		return b.String()
	}

	if s.cursor >= len(v.Items) && len(v.Items) > 0 {
		s.cursor = len(v.Items) - 1
	}
	cards := make([]string, 0, len(v.Items))
	for i, it := range v.Items {
		st := cardStyle
		if i == s.cursor {
			st = selectedCard
		}
		cards = append(cards, st.Render(s.card(it)))
	}
	if len(cards) == 0 {
		b.WriteString(emptyStyle.Render(s.empty))
	} else {
		b.WriteString(grid(cards, width))
	}
	b.WriteString("\n")

	switch {
	case v.Alert != "":
		b.WriteString("\n" + alertStyle.Render(v.Alert+"\n\n"+helpStyle.Render("enter/esc: OK")))
	case s.confirming:
		b.WriteString("\n" + alertStyle.Render(s.page.DeletePrompt()+"\n\n"+helpStyle.Render("y: delete · n: cancel")))
	case v.ModalOpen:
		b.WriteString("\n" + s.renderModal(v))
	default:
		b.WriteString(helpStyle.Render("n new · e edit · d delete · r refresh · ←/→ select"))
	}
	return b.String()
}

func (s *crudScreen[T, Fm, F]) renderModal(v console.PageView[T, Fm]) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(v.Title) + "\n\n")
	for i, in := range s.page.Schema().Inputs {
		label := in.Label
		if in.Required {
			label += " *"
		}
		val := in.Get(v.Form)
		if val == "" {
			val = subtleStyle.Render(in.Placeholder)
		}
		st := inputStyle
		if i == s.field {
			st = inputFocused
		}
		b.WriteString(subtleStyle.Render(label) + "\n" + st.Render(val) + "\n")
	}
	submit := v.SubmitLabel
	if v.Submitting {
		submit = "Saving…"
	}
	b.WriteString("\n" + helpStyle.Render(fmt.Sprintf("esc: Cancel · enter: %s · tab: next field", submit)))
	return modalStyle.Render(b.String())
}

func header(title, subtitle string) string {
	return titleStyle.Render(title) + "\n" + subtleStyle.Render(subtitle) + "\n\n"
}

// grid lays cards out left to right, wrapping to the available width.
func grid(cards []string, width int) string {
	perRow := 1
	if w := lipgloss.Width(cards[0]); w > 0 && width > w {
		perRow = width / (w + 1)
	}
	if perRow < 1 {
		perRow = 1
	}
	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := min(i+perRow, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
