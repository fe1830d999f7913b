package cli

import "github.com/charmbracelet/lipgloss"

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

// OK renders a passing status marker followed by s.
func OK(s string) string { return okStyle.Render("ok") + "  " + s }

// Fail renders a failing status marker followed by s.
func Fail(s string) string { return failStyle.Render("FAIL") + "  " + s }

// Header renders a section title.
func Header(s string) string { return headerStyle.Render(s) }

// Muted renders secondary text such as hints.
func Muted(s string) string { return mutedStyle.Render(s) }
