package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/ui/theme"
)

// Button is a call to action with the key that triggers it. The owning
// screen handles the key.
type Button struct {
	Label    string
	Key      string
	Disabled bool
}

// View renders the button, greyed out when disabled.
func (b Button) View() string {
	style := theme.ButtonActive
	if b.Disabled {
		style = theme.ButtonInactive
	}
	out := style.Render("▸ " + b.Label)
	if b.Key != "" {
		out = lipgloss.JoinHorizontal(lipgloss.Center, out, theme.Hint.Render("  "+b.Key))
	}
	return out
}
