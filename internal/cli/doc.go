// Package cli holds the terminal UI pieces of odoocli: the tab launcher menu
// (Bubbletea list) and the Lipgloss styles shared by command output.
package cli
