package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/ui/theme"
)

// MenuItem represents a single row in a navigation menu.
type MenuItem struct {
	Label string
	// Marker is drawn before the label, e.g. a lock or a check mark.
	Marker string
	Style  lipgloss.Style
	Action func() tea.Cmd
	// Heading rows are never selectable.
	Heading  bool
	Disabled bool
}

func (it MenuItem) selectable() bool {
	return !it.Heading && !it.Disabled
}

// Menu is a vertical navigation menu.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the cursor on the first selectable item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	for i, item := range items {
		if item.selectable() {
			m.Selected = i
			break
		}
	}
	return m
}

// Select moves the cursor to i when that item is selectable.
func (m *Menu) Select(i int) {
	if i >= 0 && i < len(m.Items) && m.Items[i].selectable() {
		m.Selected = i
	}
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if m.Items[i].selectable() {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if m.Items[i].selectable() {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && item.selectable() {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// View renders the menu.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		if item.Heading {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(theme.Heading.Render(item.Label) + "\n")
			continue
		}
		marker := item.Marker
		if marker == "" {
			marker = " "
		}
		cursor := "    "
		style := item.Style
		if i == m.Selected {
			cursor = "  ▸ "
			style = style.Bold(true).Underline(true)
		}
		b.WriteString(cursor + style.Render(marker+" "+item.Label) + "\n")
	}
	return b.String()
}
