package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/question"
	"github.com/abhisek/lingo/internal/session"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.quitConfirm:
		return renderQuitConfirm(width)
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	}

	var b strings.Builder
	b.WriteString(s.renderStatus(width))
	b.WriteString("\n")
	b.WriteString(theme.Locked.Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	if s.sess.Phase() == session.PhaseFeedback {
		b.WriteString(s.renderFeedback(width))
		return b.String()
	}

	q := s.sess.Current()
	if q == nil {
		return b.String()
	}
	b.WriteString(renderPrompt(q, width))
	b.WriteString("\n\n")

	switch {
	case s.board != nil:
		b.WriteString(s.renderBoard(width))
	case s.typing:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
	default:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.options.View()))
	}
	return b.String()
}

// renderStatus is the progress bar line with kind and retry badges.
func (s *QuizScreen) renderStatus(width int) string {
	var left []string
	if q := s.sess.Current(); q != nil {
		left = append(left, theme.Heading.Render(q.Kind().String()))
		if q.IsRecap() {
			left = append(left, theme.Subtitle.Render("recap"))
		}
		if q.IsRetry() {
			left = append(left, theme.Badge.Render("RETRY"))
		}
	}
	if n := s.sess.Mistakes(); n > 0 {
		left = append(left, theme.Incorrect.Render(fmt.Sprintf("%d to retry", n)))
	}
	info := "  " + strings.Join(left, "  ")

	bar := components.NewProgressBar("", s.sess.Progress(), min(40, width/2))
	bar.Count = fmt.Sprintf("%d/%d", s.done(), s.sess.Total())
	view := bar.View()

	pad := width - lipgloss.Width(info) - lipgloss.Width(view) - 4
	return info + strings.Repeat(" ", max(pad, 1)) + view
}

// done mirrors Progress: exams count answered questions, lessons count
// correct ones.
func (s *QuizScreen) done() int {
	if s.sess.Mode() == session.ModeExam {
		st := s.sess.Stats()
		return st.Correct + st.Incorrect
	}
	return s.sess.NetProgress()
}

func renderPrompt(q question.Question, width int) string {
	text := q.Prompt()
	if q.Kind() == question.KindFillGap {
		text = strings.ReplaceAll(text, question.GapMarker, theme.Current.Render(question.GapMarker))
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(text)
}

func (s *QuizScreen) renderBoard(width int) string {
	selL, selR := s.board.Selected()
	colWidth := 0
	for _, it := range s.board.Left {
		colWidth = max(colWidth, lipgloss.Width(it.Text))
	}
	colWidth += 6

	var rows []string
	for i := range s.board.Left {
		l := s.tile(question.SideLeft, i, s.board.Left[i], selL)
		r := s.tile(question.SideRight, i, s.board.Right[i], selR)
		rows = append(rows, lipgloss.NewStyle().Width(colWidth).Render(l)+"   "+r)
	}
	block := strings.Join(rows, "\n")
	if s.boardNote != "" {
		block += "\n\n" + theme.Hint.Render(s.boardNote)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

func (s *QuizScreen) tile(side question.Side, row int, it question.BoardItem, selected int) string {
	prefix := "  "
	if s.side == side && s.cursor[side] == row {
		prefix = "▸ "
	}
	switch {
	case it.Matched:
		return prefix + theme.Matched.Render(it.Text)
	case row == selected:
		return prefix + theme.Current.Render("["+it.Text+"]")
	case s.side == side && s.cursor[side] == row:
		return prefix + theme.Selected.Render(it.Text)
	}
	return prefix + theme.Unselected.Render(it.Text)
}

func (s *QuizScreen) renderFeedback(width int) string {
	fb := s.sess.LastFeedback()
	if fb == nil {
		return ""
	}
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(renderPrompt(fb.Question, width))
	b.WriteString("\n\n")
	if fb.Question.Kind() != question.KindConnect {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.options.View()))
		b.WriteString("\n")
	}

	if fb.Correct {
		b.WriteString(center.Foreground(theme.Success).Bold(true).Render("Correct!"))
		b.WriteString("\n\n")
		return b.String()
	}

	b.WriteString(center.Foreground(theme.Error).Bold(true).Render("Not quite"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Correct answer: " + fb.Answer))
	b.WriteString("\n")
	if s.sess.Mode() == session.ModeLesson {
		b.WriteString(center.Foreground(theme.TextDim).Render("This one comes back at the end."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.renderExplanation(fb.Question.ID(), width))
	return b.String()
}

func (s *QuizScreen) renderExplanation(id string, width int) string {
	if !s.env.Explain.Enabled() {
		return ""
	}
	box := lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text)
	exp, ok := s.env.Explain.Lookup(id)
	switch {
	case ok:
		text := exp.Text
		if exp.Tip != "" {
			text += "\n\n" + theme.Current.Render("Tip: ") + exp.Tip
		}
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, box.Render(text))
	case s.env.Explain.Err(id) != nil:
		return ""
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render("Thinking about why..."))
}

func renderQuitConfirm(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("Leave this quiz?"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Answers from this attempt will not be saved."))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Error).Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render("[N] No, keep going"))
	return b.String()
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
