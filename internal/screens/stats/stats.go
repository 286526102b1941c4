package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/keys"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
)

type loadedMsg struct {
	Progress *progress.Progress
	Err      error
}

// StatsScreen shows cumulative progress.
type StatsScreen struct {
	env    *screen.Env
	prog   *progress.Progress
	errMsg string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(env *screen.Env) *StatsScreen {
	return &StatsScreen{env: env}
}

func (s *StatsScreen) Init() tea.Cmd {
	svc := s.env.Progress
	return func() tea.Msg {
		p, err := svc.Load(context.Background())
		return loadedMsg{Progress: p, Err: err}
	}
}

func (s *StatsScreen) Title() string {
	return "Stats"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{keys.Hint(keys.Back)}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.prog = msg.Progress
	case screen.ProgressChangedMsg:
		return s, s.Init()
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	}
	if s.prog == nil {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading...")
	}

	p := s.prog
	cat := s.env.Catalog
	lessons := len(p.CompletedLessons)
	total := cat.LessonCount()

	rows := [][2]string{
		{"XP", theme.XP.Render(fmt.Sprintf("%d", p.XP))},
		{"Lessons completed", fmt.Sprintf("%d / %d", lessons, total)},
		{"Modules passed", fmt.Sprintf("%d / %d", len(p.CompletedModules), len(cat.Modules()))},
		{"Correct answers", fmt.Sprintf("%d", p.Stats.Correct)},
		{"Mistakes", fmt.Sprintf("%d", p.Stats.Incorrect)},
		{"Accuracy", fmt.Sprintf("%.0f%%", p.Accuracy()*100)},
		{"Time spent", Duration(p.Stats.Seconds)},
	}
	if pos, ok := cat.CurrentLesson(p); ok {
		rows = append(rows, [2]string{"Up next", cat.Modules()[pos.ModuleIndex].Lessons[pos.LessonIndex].Title})
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(theme.Subtitle.Width(20).Render(r[0]))
		b.WriteString(theme.Body.Render(r[1]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	bar := components.NewProgressBar("Course", ratio(lessons, total), 44)
	b.WriteString(bar.View())

	card := theme.Card.Render(b.String())
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

func ratio(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}

// Duration formats seconds as "1h 05m" or "4m 10s".
func Duration(secs int64) string {
	h, m, s := secs/3600, secs/60%60, secs%60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm %02ds", m, s)
}
