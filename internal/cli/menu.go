package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	descStyle         = lipgloss.NewStyle().Faint(true)
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
)

// Menu actions. Each one names the subcommand it runs.
const (
	ActionPartners   = "partners"
	ActionInventory  = "inventory"
	ActionSales      = "sales"
	ActionInvoices   = "invoices"
	ActionDeliveries = "deliveries"
	ActionStatus     = "status"
	ActionLogin      = "login"
	ActionLogout     = "logout"
	ActionDoctor     = "doctor"
	ActionExit       = "exit"
)

// MenuItem is one launcher entry.
type MenuItem struct {
	Title       string
	Description string
	Action      string
}

func (i MenuItem) FilterValue() string { return i.Title }

// TabItems returns the launcher entries. Logged-out sessions only get the
// session entries.
func TabItems(loggedIn bool) []MenuItem {
	if !loggedIn {
		return []MenuItem{
			{Title: "Login", Description: "Connect to an Odoo server", Action: ActionLogin},
			{Title: "Status", Description: "Show session and active profile", Action: ActionStatus},
			{Title: "Doctor", Description: "Check local state", Action: ActionDoctor},
			{Title: "Exit", Action: ActionExit},
		}
	}

	return []MenuItem{
		{Title: "Clientes", Description: "Partners and their accounts", Action: ActionPartners},
		{Title: "Inventario", Description: "Saleable products and stock", Action: ActionInventory},
		{Title: "Ventas", Description: "Latest sale orders", Action: ActionSales},
		{Title: "Cobranzas", Description: "Outstanding customer invoices", Action: ActionInvoices},
		{Title: "Distribucion", Description: "Moves ready to deliver", Action: ActionDeliveries},
		{Title: "Status", Description: "Show session and active profile", Action: ActionStatus},
		{Title: "Doctor", Description: "Check local state", Action: ActionDoctor},
		{Title: "Logout", Description: "Forget the stored session", Action: ActionLogout},
		{Title: "Exit", Action: ActionExit},
	}
}

type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(MenuItem)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s", index+1, i.Title)
	if i.Description != "" {
		str += "  " + descStyle.Render(i.Description)
	}

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + s[0])
		}
	}

	_, _ = fmt.Fprint(w, fn(str))
}

// MenuModel is the tab launcher. Choosing an entry quits the program; the
// caller reads the choice with GetChoice and runs it.
type MenuModel struct {
	list     list.Model
	choice   string
	quitting bool
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			m.choice = ActionExit

			return m, tea.Quit

		case "enter":
			if i, ok := m.list.SelectedItem().(MenuItem); ok {
				m.choice = i.Action
			}

			return m, tea.Quit
		}
	}

	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m MenuModel) View() string {
	if m.choice != "" && !m.quitting {
		return ""
	}

	if m.quitting {
		return "Hasta luego!\n"
	}

	return "\n" + m.list.View()
}

// GetChoice returns the selected action, or "" when nothing was chosen.
func (m MenuModel) GetChoice() string {
	return m.choice
}

// NewMenu builds the launcher. title is shown above the entries.
func NewMenu(title string, entries []MenuItem) MenuModel {
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, e)
	}

	const defaultWidth = 40

	l := list.New(items, itemDelegate{}, defaultWidth, len(entries)+6)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	return MenuModel{list: l}
}
