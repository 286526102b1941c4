package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestRenderHeader(t *testing.T) {
	out := RenderHeader("Greetings", HeaderStatus{XP: 45, Admin: true}, 80)
	for _, want := range []string{"Lingo", "Greetings", "45 XP", "ADMIN"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q", want)
		}
	}
	if strings.Contains(RenderHeader("x", HeaderStatus{}, 80), "ADMIN") {
		t.Error("admin badge shown without admin mode")
	}
}

func TestRenderFooterDropsOverflow(t *testing.T) {
	hints := []KeyHint{
		{Key: "Enter", Description: "Check"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit the whole application right now"},
	}
	out := RenderFooter(hints, 30)
	if !strings.Contains(out, "Enter") || !strings.Contains(out, "Esc") {
		t.Errorf("footer lost hints that fit: %q", out)
	}
	if strings.Contains(out, "Ctrl+C") {
		t.Error("footer kept a hint wider than the line")
	}
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := RenderHeader("t", HeaderStatus{}, 70)
	footer := RenderFooter(nil, 70)
	out := RenderFrame(header, "body", footer, 70, 24)
	if got := lipgloss.Height(out); got != 24 {
		t.Errorf("frame height = %d, want 24", got)
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) || !IsTooSmall(MinWidth, MinHeight-1) {
		t.Error("below minimum should be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size should fit")
	}
}
