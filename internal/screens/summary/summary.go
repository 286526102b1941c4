package summary

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/router"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/session"
	"github.com/abhisek/lingo/internal/ui/keys"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
)

// SummaryScreen shows the result of a finished lesson or exam.
type SummaryScreen struct {
	outcome   session.Outcome
	title     string
	recordErr error
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.EscHandler = (*SummaryScreen)(nil)

// New creates a SummaryScreen. recordErr is the failure, if any, to save
// the outcome; the result is still shown.
func New(o session.Outcome, title string, recordErr error) *SummaryScreen {
	return &SummaryScreen{outcome: o, title: title, recordErr: recordErr}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	if s.outcome.Mode == session.ModeExam {
		return "Exam Result"
	}
	return "Lesson Complete"
}

// HandlesEsc makes Esc return to the course map rather than the lesson.
func (s *SummaryScreen) HandlesEsc() bool { return true }

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		keys.Hint(keys.Enter, "Course map"),
		keys.Hint(keys.Back, "Course map"),
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && key.Matches(kmsg, keys.Enter, keys.Back) {
		// Back past the lesson screen to the course map.
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	o := s.outcome
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(headlineColor(o)).Bold(true).Render(headline(o)))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(s.title))
	b.WriteString("\n\n")

	if o.Mode == session.ModeExam {
		b.WriteString(center.Foreground(theme.Text).Render(
			fmt.Sprintf("Score: %d/%d  (%.0f%%)", o.Stats.Correct, o.Total, o.Percentage*100)))
		b.WriteString("\n")
	} else {
		b.WriteString(center.Foreground(theme.Text).Render(
			fmt.Sprintf("Questions: %d        Retries: %d", o.Total, o.Stats.Incorrect)))
		b.WriteString("\n")
	}

	b.WriteString(center.Foreground(theme.Text).Render(
		fmt.Sprintf("Correct: %d        Mistakes: %d        Accuracy: %.0f%%",
			o.Stats.Correct, o.Stats.Incorrect, o.Accuracy()*100)))
	b.WriteString("\n")

	mins, secs := o.Stats.Seconds/60, o.Stats.Seconds%60
	b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf("Time: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	if o.XPAwarded > 0 {
		b.WriteString(center.Render(theme.XP.Render(fmt.Sprintf("+%d XP", o.XPAwarded))))
		b.WriteString("\n")
	}
	if o.Mode == session.ModeExam && !o.Passed {
		b.WriteString(center.Foreground(theme.TextDim).Render("Review the lessons and try the exam again."))
		b.WriteString("\n")
	}

	if s.recordErr != nil {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Error).Render("Progress could not be saved: " + s.recordErr.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

func headline(o session.Outcome) string {
	switch {
	case o.Mode == session.ModeLesson:
		return "Lesson complete!"
	case o.Passed:
		return "Exam passed!"
	}
	return "Exam not passed"
}

func headlineColor(o session.Outcome) color.Color {
	if o.Passed {
		return theme.Success
	}
	return theme.Error
}
