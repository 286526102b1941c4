package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingo/internal/ui/theme"
)

// OptionList is a numbered option selector. Keys 1..N pick an option
// directly; arrows move the cursor and enter picks the highlighted one.
type OptionList struct {
	Options  []string
	Selected int

	// Chosen is the picked option, empty until the learner picks one.
	Chosen string

	// Answer is revealed after submission to colour the list.
	Answer string
}

// NewOptionList creates an option list in display order.
func NewOptionList(options []string) OptionList {
	return OptionList{Options: options}
}

// Update handles keyboard selection. It returns the chosen option when
// this message picked one.
func (m OptionList) Update(msg tea.Msg) (OptionList, string) {
	if m.Chosen != "" {
		return m, ""
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, ""
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		if len(m.Options) > 0 {
			m.Chosen = m.Options[m.Selected]
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(m.Options) {
				m.Selected = i
				m.Chosen = m.Options[i]
			}
		}
	}
	return m, m.Chosen
}

// Reveal records the result so View can mark the right and wrong options.
func (m *OptionList) Reveal(chosen, answer string) {
	m.Chosen = chosen
	m.Answer = answer
}

// View renders the options.
func (m OptionList) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && m.Chosen == "" {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		switch {
		case m.Answer != "" && opt == m.Answer:
			line = theme.Correct.Render(line + "  ✓")
		case m.Answer != "" && opt == m.Chosen:
			line = theme.Incorrect.Render(line + "  ✗")
		case m.Answer != "":
			line = theme.Subtitle.Render(line)
		case i == m.Selected:
			line = theme.Selected.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
