// Package layout draws the frame around every screen: a header with the
// screen title and learner status, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/ui/theme"
)

// Smallest terminal the quiz board and tables fit in.
const (
	MinWidth  = 64
	MinHeight = 20
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// HeaderStatus is the learner state shown on the right of the header.
type HeaderStatus struct {
	XP    int
	Admin bool
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border).
	Padding(0, 1)

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Lingo needs at least %d×%d.\nThis terminal is %d×%d.",
			MinWidth, MinHeight, width, height))
}

// RenderHeader shows the app name, the screen title centered, and XP.
func RenderHeader(title string, st HeaderStatus, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Lingo")
	status := theme.XP.Render(fmt.Sprintf("%d XP", st.XP))
	if st.Admin {
		status = theme.Badge.Render("ADMIN") + " " + status
	}

	inner := max(width-bar.GetHorizontalFrameSize(), 0)
	side := max(lipgloss.Width(name), lipgloss.Width(status))
	middle := max(inner-2*side, 0)

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(side).Render(name),
		lipgloss.NewStyle().Width(middle).Align(lipgloss.Center).Foreground(theme.Text).Render(title),
		lipgloss.NewStyle().Width(side).Align(lipgloss.Right).Render(status),
	)
	return bar.Width(width).Render(row)
}

// RenderFooter lists hints left to right. Hints that no longer fit on the
// line are dropped.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	inner := max(width-bar.GetHorizontalFrameSize(), 0)
	var b strings.Builder
	used := 0
	for _, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		w := lipgloss.Width(part)
		if used > 0 {
			w += 3
		}
		if used+w > inner {
			break
		}
		if used > 0 {
			b.WriteString("   ")
		}
		b.WriteString(part)
		used += w
	}
	return bar.Width(width).Render(b.String())
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the height left between them.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rest).MaxHeight(rest).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
