// Package keys holds the key bindings shared by screens.
package keys

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/lingo/internal/ui/layout"
)

var (
	Up      = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "Move"))
	Down    = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↑/↓", "Move"))
	Left    = key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "Column"))
	Right   = key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("←/→", "Column"))
	Enter   = key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Select"))
	Back    = key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Back"))
	Exam    = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "Exam"))
	Admin   = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "Admin"))
	Stats   = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Stats"))
	History = key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "History"))
	Type    = key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "Type answer"))
	Yes     = key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "Yes"))
	No      = key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "No"))
)

// Hint builds a footer hint from a binding, optionally renaming its action.
func Hint(b key.Binding, desc ...string) layout.KeyHint {
	h := b.Help()
	d := h.Desc
	if len(desc) > 0 {
		d = desc[0]
	}
	return layout.KeyHint{Key: h.Key, Description: d}
}
