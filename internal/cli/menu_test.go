package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTabItems(t *testing.T) {
	for _, loggedIn := range []bool{false, true} {
		items := TabItems(loggedIn)
		if items[len(items)-1].Action != ActionExit {
			t.Errorf("TabItems(%v): last entry = %q, want exit", loggedIn, items[len(items)-1].Action)
		}

		hasTabs := false
		for _, i := range items {
			if i.Action == ActionPartners {
				hasTabs = true
			}
		}

		if hasTabs != loggedIn {
			t.Errorf("TabItems(%v): tabs present = %v", loggedIn, hasTabs)
		}
	}
}

func TestMenu_EnterSelectsCurrentItem(t *testing.T) {
	m := NewMenu("odoocli", TabItems(true))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("enter should quit the program")
	}

	if got := next.(MenuModel).GetChoice(); got != ActionInventory {
		t.Errorf("GetChoice() = %q, want %q", got, ActionInventory)
	}
}

func TestMenu_QuitChoosesExit(t *testing.T) {
	m := NewMenu("odoocli", TabItems(false))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	mm := next.(MenuModel)
	if mm.GetChoice() != ActionExit {
		t.Errorf("GetChoice() = %q, want exit", mm.GetChoice())
	}

	if !strings.Contains(mm.View(), "Hasta luego") {
		t.Errorf("View() = %q", mm.View())
	}
}
