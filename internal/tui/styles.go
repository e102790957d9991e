package tui

import "charm.land/lipgloss/v2"

var (
	colorPrimary = lipgloss.Color("#38BDF8")
	colorAccent  = lipgloss.Color("#A78BFA")
	colorMuted   = lipgloss.Color("#94A3B8")
	colorBorder  = lipgloss.Color("#334155")
	colorDanger  = lipgloss.Color("#EF4444")
	colorLocal   = lipgloss.Color("#22C55E")
	colorRemote  = lipgloss.Color("#3B82F6")

	titleStyle    = lipgloss.NewStyle().Bold(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	priceStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	brandStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	navStyle      = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	navActive     = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Padding(0, 1)
	sidebarStyle  = lipgloss.NewStyle().Width(26).Padding(1, 2).Border(lipgloss.NormalBorder(), false, true, false, false).BorderForeground(colorBorder)
	mainStyle     = lipgloss.NewStyle().Padding(1, 3)
	cardStyle     = lipgloss.NewStyle().Width(30).Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder)
	selectedCard  = cardStyle.BorderForeground(colorPrimary)
	modalStyle    = lipgloss.NewStyle().Width(52).Padding(1, 2).Border(lipgloss.RoundedBorder()).BorderForeground(colorPrimary)
	alertStyle    = lipgloss.NewStyle().Width(52).Padding(1, 2).Border(lipgloss.ThickBorder()).BorderForeground(colorDanger)
	inputStyle    = lipgloss.NewStyle().Width(44).Padding(0, 1).Border(lipgloss.NormalBorder()).BorderForeground(colorBorder)
	inputFocused  = inputStyle.BorderForeground(colorPrimary)
	emptyStyle    = lipgloss.NewStyle().Foreground(colorMuted).Padding(1, 2).Border(lipgloss.NormalBorder()).BorderForeground(colorBorder)
	helpStyle     = lipgloss.NewStyle().Foreground(colorMuted).Faint(true)
)
