package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestOptionList_NumberPicks(t *testing.T) {
	m := NewOptionList([]string{"куче", "мачка", "куќа"})

	m, chosen := m.Update(keyPress('2'))
	if chosen != "мачка" {
		t.Errorf("chosen = %q, want %q", chosen, "мачка")
	}
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected)
	}

	// Further keys are ignored once picked.
	_, chosen = m.Update(keyPress('1'))
	if chosen != "" {
		t.Errorf("chosen after pick = %q, want empty", chosen)
	}
}

func TestOptionList_OutOfRangeNumber(t *testing.T) {
	m := NewOptionList([]string{"a", "b"})
	m, chosen := m.Update(keyPress('4'))
	if chosen != "" || m.Chosen != "" {
		t.Errorf("chosen = %q, want nothing picked", chosen)
	}
}

func TestOptionList_ArrowsAndEnter(t *testing.T) {
	m := NewOptionList([]string{"a", "b", "c"})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Fatalf("Selected = %d, want 2", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	_, chosen := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if chosen != "b" {
		t.Errorf("chosen = %q, want %q", chosen, "b")
	}
}

func TestOptionList_RevealMarksAnswer(t *testing.T) {
	m := NewOptionList([]string{"a", "b"})
	m.Reveal("a", "b")
	view := m.View()
	if !strings.Contains(view, "✓") || !strings.Contains(view, "✗") {
		t.Errorf("expected both marks in revealed view, got %q", view)
	}
}

func TestMenu_SkipsHeadingsAndDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Module 1", Heading: true},
		{Label: "Lesson 1"},
		{Label: "Lesson 2", Disabled: true},
		{Label: "Module 2", Heading: true},
		{Label: "Lesson 3"},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 4 {
		t.Errorf("Selected after down = %d, want 4", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("Selected after up = %d, want 1", m.Selected)
	}

	m.Select(2)
	if m.Selected != 1 {
		t.Errorf("Select on disabled item moved cursor to %d", m.Selected)
	}
}

func TestMenu_EnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "Go", Action: func() tea.Cmd {
		ran = true
		return nil
	}}})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !ran {
		t.Error("expected action to run on enter")
	}
}

func TestProgressBar_Count(t *testing.T) {
	p := NewProgressBar("", 0.5, 40)
	p.Count = "3/6"
	if !strings.Contains(p.View(), "3/6") {
		t.Error("expected count in progress bar")
	}
}

func TestButtonView(t *testing.T) {
	out := Button{Label: "Start quiz", Key: "enter"}.View()
	if !strings.Contains(out, "Start quiz") || !strings.Contains(out, "enter") {
		t.Errorf("button = %q, want label and key", out)
	}
	if strings.Contains(Button{Label: "Go"}.View(), "enter") {
		t.Error("button without a key should not show one")
	}
}
