package tui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"context"
	"github.com/ariefcatur/nexus-admin/internal/apiclient"
	"github.com/ariefcatur/nexus-admin/internal/catalog"
	"github.com/ariefcatur/nexus-admin/internal/config"
	"github.com/ariefcatur/nexus-admin/internal/console"
	"log/slog"
	"strconv"
	"strings"
)

// Model is the console shell: a sidebar of routes and the active screen.
type Model struct {
	ctx     context.Context
	env     config.Environment
	screens []screen // parallel to console.Routes
	active  int
	width   int
	height  int
}

// New wires every page to its service on client.
func New(ctx context.Context, client *apiclient.Client, log *slog.Logger) *Model {
	products := client.Products()
	stores := client.Stores()
	orders := client.Orders()
	users := client.Users()

	screens := []screen{
		&dashboardScreen{dash: console.NewDashboard(log,
			console.CountOf[catalog.Store]("Stores", stores),
			console.CountOf[catalog.Product]("Products", products),
			console.CountOf[catalog.Order]("Orders", orders),
			console.CountOf[catalog.User]("Users", users),
		)},
		&crudScreen[catalog.Store, console.StoreForm, catalog.StoreFields]{
			page:     console.NewPage(stores, console.StoreSchema, log),
			heading:  "Stores",
			subtitle: "Manage your store locations",
			empty:    "No stores found. Add your first location!",
			card:     StoreCard,
		},
		&crudScreen[catalog.Product, console.ProductForm, catalog.ProductFields]{
			page:     console.NewPage(products, console.ProductSchema, log),
			heading:  "Products",
			subtitle: "Manage your product catalog",
			empty:    "No products found. Add some inventory!",
			card:     ProductCard,
		},
		&crudScreen[catalog.Order, console.OrderForm, catalog.OrderFields]{
			page:     console.NewPage(orders, console.OrderSchema, log),
			heading:  "Orders",
			subtitle: "Track and update customer orders",
			empty:    "No orders yet.",
			card:     OrderCard,
		},
		&usersScreen{page: console.NewUsersPage(users, log)},
	}
	return &Model{ctx: ctx, env: client.Environment(), screens: screens, width: 120}
}

func (m *Model) Init() tea.Cmd {
	return m.screens[m.active].mount(m.ctx)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyPressMsg:
		return m, m.handleKey(msg.String(), msg.Text)
	}
	return m, nil
}

func (m *Model) handleKey(key, text string) tea.Cmd {
	if key == "ctrl+c" {
		return tea.Quit
	}
	cur := m.screens[m.active]
	if cur.captured() {
		return cur.handleKey(m.ctx, key, text)
	}

	switch key {
	case "q":
		return tea.Quit
	case "tab":
		return m.navigate((m.active + 1) % len(m.screens))
	case "shift+tab":
		return m.navigate((m.active + len(m.screens) - 1) % len(m.screens))
	case "1", "2", "3", "4", "5":
		n, _ := strconv.Atoi(key)
		if n-1 < len(m.screens) {
			return m.navigate(n - 1)
		}
		return nil
	}
	return cur.handleKey(m.ctx, key, text)
}

// navigate tears the current page down and mounts the target, the way a
// route change would.
func (m *Model) navigate(to int) tea.Cmd {
	if to == m.active {
		return nil
	}
	m.screens[m.active].unmount()
	m.active = to
	return m.screens[to].mount(m.ctx)
}

// Navigate jumps to a route path such as "/products".
func (m *Model) Navigate(path string) tea.Cmd {
	i := console.RouteIndex(path)
	if i < 0 {
		return nil
	}
	return m.navigate(i)
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m *Model) render() string {
	main := mainStyle.Render(m.screens[m.active].render(max(m.width-sidebarStyle.GetWidth()-8, 32)))
	return lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), main)
}

func (m *Model) sidebar() string {
	var b strings.Builder
	b.WriteString(brandStyle.Render("⚡ Nexus Admin") + "\n\n")
	for i, r := range console.Routes {
		line := strconv.Itoa(i+1) + " " + r.Label
		if i == m.active {
			b.WriteString(navActive.Render("▌"+line) + "\n")
		} else {
			b.WriteString(navStyle.Render(" "+line) + "\n")
		}
	}
	b.WriteString("\n\n" + statusLine(m.env) + "\n\n")
	b.WriteString(titleStyle.Render("Admin User") + "\n" + subtleStyle.Render("admin@nexus.com") + "\n\n")
	b.WriteString(helpStyle.Render("tab/1-5 navigate · q quit"))
	return sidebarStyle.Render(b.String())
}

// statusLine shows which backend is active: green for local, blue otherwise.
func statusLine(env config.Environment) string {
	dot := lipgloss.NewStyle().Foreground(colorRemote)
	if env.IsLocal {
		dot = lipgloss.NewStyle().Foreground(colorLocal)
	}
	return dot.Render("●") + " " + subtleStyle.Render(env.Name)
}
