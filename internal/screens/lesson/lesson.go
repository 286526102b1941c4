// Package lesson shows a lesson's theory, vocabulary and grammar tables
// before its quiz.
package lesson

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/lingo/internal/course"
	"github.com/abhisek/lingo/internal/router"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/screens/quiz"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/keys"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
)

// LessonScreen renders lesson content in a scrollable viewport.
type LessonScreen struct {
	env    *screen.Env
	module *course.Module
	li     int

	vp       viewport.Model
	rendered int // width the content was last rendered for
	errMsg   string
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)

// New creates the screen for lesson li of m.
func New(env *screen.Env, m *course.Module, li int) *LessonScreen {
	return &LessonScreen{env: env, module: m, li: li, vp: viewport.New()}
}

func (s *LessonScreen) lesson() *course.Lesson {
	return &s.module.Lessons[s.li]
}

func (s *LessonScreen) Init() tea.Cmd {
	return nil
}

func (s *LessonScreen) Title() string {
	return s.lesson().Title
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		keys.Hint(keys.Up, "Scroll"),
		keys.Hint(keys.Enter, "Start quiz"),
		keys.Hint(keys.Back),
	}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && key.Matches(kmsg, keys.Enter) {
		q, err := quiz.NewLesson(s.env, s.module, s.li)
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.errMsg = ""
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: q} }
	}

	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return s, cmd
}

func (s *LessonScreen) View(width, height int) string {
	button := components.Button{Label: "Start quiz", Key: "enter"}.View()
	footer := "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, button)
	if s.errMsg != "" {
		footer += "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Incorrect.Render(s.errMsg))
	}

	s.vp.SetWidth(width)
	s.vp.SetHeight(max(height-lipgloss.Height(footer), 1))
	if s.rendered != width {
		s.vp.SetContent(Render(s.lesson(), min(width-4, 90)))
		s.rendered = width
	}
	return s.vp.View() + footer
}

// Render formats lesson content for a terminal of the given width.
func Render(l *course.Lesson, width int) string {
	width = max(width, 20)
	pad := lipgloss.NewStyle().PaddingLeft(2)
	body := theme.Body.Width(width)

	var b strings.Builder
	b.WriteString(pad.Render(theme.Title.Render(l.Title)))
	b.WriteString("\n\n")

	for _, p := range l.Theory {
		b.WriteString(pad.Render(body.Render(p)))
		b.WriteString("\n\n")
	}

	if len(l.Vocabulary) > 0 {
		b.WriteString(pad.Render(theme.Heading.Render("Vocabulary")))
		b.WriteString("\n")
		b.WriteString(pad.Render(vocabularyTable(l.Vocabulary).Render()))
		b.WriteString("\n\n")
	}

	for _, g := range l.GrammarTables {
		if g.Title != "" {
			b.WriteString(pad.Render(theme.Heading.Render(g.Title)))
			b.WriteString("\n")
		}
		b.WriteString(pad.Render(newTable(g.Headers, g.Rows).Render()))
		b.WriteString("\n\n")
	}
	return b.String()
}

func vocabularyTable(vocab []course.Vocabulary) *table.Table {
	rows := make([][]string, 0, len(vocab))
	for _, v := range vocab {
		rows = append(rows, []string{v.Native, v.Translit, v.Translation, v.Gender.Label()})
	}
	return newTable([]string{"Word", "Pronunciation", "Meaning", "Gender"}, rows)
}

func newTable(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return s.Foreground(theme.Secondary).Bold(true)
			case col == 0:
				return s.Foreground(theme.Text).Bold(true)
			}
			return s.Foreground(theme.TextDim)
		})
}
