package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/router"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/screens/home"
	"github.com/abhisek/lingo/internal/screens/welcome"
	"github.com/abhisek/lingo/internal/session"
	"github.com/abhisek/lingo/internal/ui/layout"
)

// DefaultTickInterval is how often time spent in the app is saved.
const DefaultTickInterval = 30 * time.Second

// Options configures the root model.
type Options struct {
	Env *screen.Env

	// TickInterval defaults to DefaultTickInterval.
	TickInterval time.Duration

	// SkipWelcome opens the course map directly.
	SkipWelcome bool

	// Now defaults to time.Now.
	Now func() time.Time
}

type tickMsg time.Time

type statusMsg layout.HeaderStatus

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	env     *screen.Env
	tracker *progress.TimeTracker
	tick    time.Duration
	now     func() time.Time
	status  layout.HeaderStatus
	width   int
	height  int
}

// newAppModel creates the root model with the welcome or home screen.
func newAppModel(opts Options) AppModel {
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	env := opts.Env

	newHome := func() screen.Screen { return home.New(env) }
	first := newHome()
	if !opts.SkipWelcome {
		first = welcome.New(env.Catalog.Course(), newHome)
	}
	return AppModel{
		router:  router.New(first),
		env:     env,
		tracker: progress.NewTimeTracker(opts.Now()),
		tick:    opts.TickInterval,
		now:     opts.Now,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.scheduleTick(), m.loadStatus())
}

func (m AppModel) scheduleTick() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m AppModel) loadStatus() tea.Cmd {
	env := m.env
	return func() tea.Msg {
		p, err := env.Progress.Load(context.Background())
		if err != nil {
			env.Log().Error("load progress for header", "err", err)
			return nil
		}
		return statusMsg{XP: p.XP, Admin: env.Admin(p)}
	}
}

// flush saves the time accumulated since the last flush.
func (m AppModel) flush() {
	if err := m.env.Progress.FlushTime(context.Background(), m.tracker, m.now()); err != nil {
		m.env.Log().Error("flush time", "err", err)
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.flush()
		return m, m.scheduleTick()

	case statusMsg:
		m.status = layout.HeaderStatus(msg)
		return m, nil

	case screen.SessionStartedMsg:
		// The session reports its own time from here on.
		secs := m.tracker.Pause(m.now())
		if err := m.env.Progress.StatsDelta(context.Background(), session.Stats{Seconds: secs}); err != nil {
			m.env.Log().Error("flush time", "err", err)
		}
		return m, nil

	case screen.SessionEndedMsg:
		m.tracker.Resume(m.now())
		return m, m.loadStatus()

	case screen.ProgressChangedMsg:
		return m, tea.Batch(m.router.Update(msg), m.loadStatus())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.flush()
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscHandler); ok && h.HandlesEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	title := ""
	if active := m.router.Active(); active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)
	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
