// Package home is the course map: modules, their lessons and exams with
// lock, done and current markers.
package home

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/course"
	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/router"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/screens/history"
	"github.com/abhisek/lingo/internal/screens/lesson"
	"github.com/abhisek/lingo/internal/screens/quiz"
	"github.com/abhisek/lingo/internal/screens/stats"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/keys"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
)

const (
	markerDone    = "✓"
	markerCurrent = "▶"
	markerOpen    = "○"
	markerLocked  = "⊘"
	markerExam    = "★"
)

type loadedMsg struct {
	Progress *progress.Progress
	Err      error
}

type adminToggledMsg struct {
	On  bool
	Err error
}

type rowKind int

const (
	rowModule rowKind = iota
	rowLesson
	rowExam
)

// row maps a menu item back to the course.
type row struct {
	kind   rowKind
	mi, li int
	locked bool
}

// HomeScreen is the course map.
type HomeScreen struct {
	env    *screen.Env
	prog   *progress.Progress
	rows   []row
	menu   components.Menu
	loaded bool
	status string
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env *screen.Env) *HomeScreen {
	return &HomeScreen{env: env}
}

func (s *HomeScreen) Init() tea.Cmd {
	return s.load()
}

func (s *HomeScreen) load() tea.Cmd {
	svc := s.env.Progress
	return func() tea.Msg {
		p, err := svc.Load(context.Background())
		return loadedMsg{Progress: p, Err: err}
	}
}

func (s *HomeScreen) Title() string {
	return "Course"
}

func (s *HomeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		keys.Hint(keys.Up),
		keys.Hint(keys.Enter, "Open"),
		keys.Hint(keys.Exam),
		keys.Hint(keys.Stats),
	}
	if s.env.History != nil {
		hints = append(hints, keys.Hint(keys.History))
	}
	hints = append(hints, keys.Hint(keys.Admin), layout.KeyHint{Key: "ctrl+c", Description: "Quit"})
	return hints
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.prog = msg.Progress
		s.rebuild()
		return s, nil

	case screen.ProgressChangedMsg:
		return s, s.load()

	case adminToggledMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.status = "Admin mode off"
		if msg.On {
			s.status = "Admin mode on: every lesson and exam is unlocked"
		}
		return s, func() tea.Msg { return screen.ProgressChangedMsg{} }

	case tea.KeyMsg:
		if !s.loaded {
			return s, nil
		}
		s.status = ""
		switch {
		case key.Matches(msg, keys.Exam):
			return s, s.startExam(s.rows[s.menu.Selected].mi)
		case key.Matches(msg, keys.Admin):
			return s, s.toggleAdmin()
		case key.Matches(msg, keys.Stats):
			return s, push(stats.New(s.env))
		case key.Matches(msg, keys.History) && s.env.History != nil:
			return s, push(history.New(s.env))
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func push(sc screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: sc} }
}

func (s *HomeScreen) toggleAdmin() tea.Cmd {
	svc := s.env.Progress
	return func() tea.Msg {
		on, err := svc.ToggleAdmin(context.Background())
		return adminToggledMsg{On: on, Err: err}
	}
}

func (s *HomeScreen) openLesson(mi, li int) tea.Cmd {
	m := &s.env.Catalog.Modules()[mi]
	return push(lesson.New(s.env, m, li))
}

func (s *HomeScreen) startExam(mi int) tea.Cmd {
	if s.env.Catalog.ExamLocked(s.prog, mi, s.env.Admin(s.prog)) {
		s.status = "Pass the previous module's exam to unlock this one."
		return nil
	}
	m := &s.env.Catalog.Modules()[mi]
	q, err := quiz.NewExam(s.env, m)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return push(q)
}

// rebuild regenerates the menu from progress, keeping the cursor on the
// same row when possible and otherwise moving it to the current lesson.
func (s *HomeScreen) rebuild() {
	cat := s.env.Catalog
	p := s.prog
	admin := s.env.Admin(p)
	current, hasCurrent := cat.CurrentLesson(p)

	s.rows = s.rows[:0]
	var items []components.MenuItem
	add := func(r row, it components.MenuItem) {
		s.rows = append(s.rows, r)
		items = append(items, it)
	}

	cursor := -1
	for mi, m := range cat.Modules() {
		heading := fmt.Sprintf("%d. %s", mi+1, m.Title)
		if cat.ModuleLocked(p, mi, admin) {
			heading += "  " + markerLocked
		} else if p.ModuleDone(m.ID) {
			heading += "  " + markerDone
		}
		add(row{kind: rowModule, mi: mi}, components.MenuItem{Label: heading, Heading: true})

		for li, l := range m.Lessons {
			r := row{kind: rowLesson, mi: mi, li: li, locked: cat.LessonLocked(p, mi, li, admin)}
			it := components.MenuItem{Label: l.Title, Disabled: r.locked}
			switch {
			case r.locked:
				it.Marker, it.Style = markerLocked, theme.Locked
			case hasCurrent && current == (course.Position{ModuleIndex: mi, LessonIndex: li}):
				it.Marker, it.Style = markerCurrent, theme.Current
				cursor = len(items)
			case p.LessonDone(l.ID):
				it.Marker, it.Style = markerDone, theme.Done
			default:
				it.Marker, it.Style = markerOpen, theme.Unselected
			}
			it.Action = func() tea.Cmd { return s.openLesson(mi, li) }
			add(r, it)
		}

		if len(m.Exam) == 0 {
			continue
		}
		r := row{kind: rowExam, mi: mi, locked: cat.ExamLocked(p, mi, admin)}
		it := components.MenuItem{Label: "Module exam", Disabled: r.locked, Marker: markerExam}
		switch {
		case r.locked:
			it.Marker, it.Style = markerLocked, theme.Locked
		case p.ModuleDone(m.ID):
			it.Style = theme.Done
		default:
			it.Style = theme.Current
		}
		it.Action = func() tea.Cmd { return s.startExam(mi) }
		add(r, it)
	}

	prev := s.menu.Selected
	s.menu = components.NewMenu(items)
	switch {
	case s.loaded:
		s.menu.Select(prev)
	case cursor >= 0:
		s.menu.Select(cursor)
	}
	s.loaded = true
}

func (s *HomeScreen) View(width, height int) string {
	if s.errMsg != "" && !s.loaded {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("\n\nError: " + s.errMsg)
	}
	if !s.loaded {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading course...")
	}

	c := s.env.Catalog.Course()
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + theme.Title.Render(c.Title))
	b.WriteString("  " + theme.Subtitle.Render(fmt.Sprintf("(%s, v%s)", c.Language, strings.TrimPrefix(c.Version, "v"))))
	b.WriteString("\n\n")

	done, total := len(s.prog.CompletedLessons), s.env.Catalog.LessonCount()
	bar := components.NewProgressBar("  Lessons", 0, min(width-4, 50))
	if total > 0 {
		bar.Percent = float64(min(done, total)) / float64(total)
	}
	bar.Count = fmt.Sprintf("%d/%d", done, total)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	b.WriteString(s.menu.View())

	if s.status != "" {
		b.WriteString("\n  " + theme.Hint.Render(s.status) + "\n")
	}
	if s.errMsg != "" {
		b.WriteString("\n  " + theme.Incorrect.Render(s.errMsg) + "\n")
	}
	return b.String()
}
