// Package quiz is the screen that runs a lesson quiz or a module exam.
package quiz

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingo/internal/course"
	"github.com/abhisek/lingo/internal/question"
	"github.com/abhisek/lingo/internal/router"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/screens/summary"
	"github.com/abhisek/lingo/internal/session"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/keys"
	"github.com/abhisek/lingo/internal/ui/layout"
)

// QuizScreen drives one session.Session.
type QuizScreen struct {
	env   *screen.Env
	sess  *session.Session
	title string

	options components.OptionList
	input   components.AnswerInput
	typing  bool

	board     *question.Board
	side      question.Side
	cursor    [2]int
	boardNote string

	quitConfirm bool
	errMsg      string
}

var (
	_ screen.Screen          = (*QuizScreen)(nil)
	_ screen.KeyHintProvider = (*QuizScreen)(nil)
	_ screen.EscHandler      = (*QuizScreen)(nil)
)

// NewLesson builds the pool for lesson li of m and starts its quiz.
func NewLesson(env *screen.Env, m *course.Module, li int) (*QuizScreen, error) {
	pool, err := env.Pools.LessonPool(m, li)
	if err != nil {
		return nil, err
	}
	l := &m.Lessons[li]
	s, err := session.NewLesson(l.ID, pool, env.Session)
	if err != nil {
		return nil, err
	}
	return newScreen(env, s, l.Title), nil
}

// NewExam starts the exam of m.
func NewExam(env *screen.Env, m *course.Module) (*QuizScreen, error) {
	pool, err := env.Pools.ExamPool(m)
	if err != nil {
		return nil, err
	}
	s, err := session.NewExam(m.ID, pool, env.Session)
	if err != nil {
		return nil, err
	}
	return newScreen(env, s, m.Title+" exam"), nil
}

func newScreen(env *screen.Env, s *session.Session, title string) *QuizScreen {
	q := &QuizScreen{env: env, sess: s, title: title}
	q.prepare()
	return q
}

func (s *QuizScreen) Init() tea.Cmd {
	return sessionStarted
}

func (s *QuizScreen) Title() string {
	return s.title
}

// HandlesEsc is always true: Esc asks before abandoning the session.
func (s *QuizScreen) HandlesEsc() bool { return true }

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.quitConfirm:
		return []layout.KeyHint{keys.Hint(keys.Yes, "Quit"), keys.Hint(keys.No, "Keep going")}
	case s.sess.Phase() == session.PhaseFeedback:
		return []layout.KeyHint{keys.Hint(keys.Enter, "Continue"), keys.Hint(keys.Back, "Quit")}
	case s.board != nil:
		return []layout.KeyHint{
			keys.Hint(keys.Up), keys.Hint(keys.Left), keys.Hint(keys.Enter, "Pick"), keys.Hint(keys.Back, "Quit"),
		}
	case s.typing:
		return []layout.KeyHint{keys.Hint(keys.Enter, "Check"), keys.Hint(keys.Type, "Options"), keys.Hint(keys.Back, "Options")}
	}
	hints := []layout.KeyHint{
		{Key: fmt.Sprintf("1-%d", len(s.options.Options)), Description: "Answer"},
		keys.Hint(keys.Up), keys.Hint(keys.Enter, "Check"),
	}
	if s.canType() {
		hints = append(hints, keys.Hint(keys.Type))
	}
	return append(hints, keys.Hint(keys.Back, "Quit"))
}

// prepare sets up the widgets for the question at the head of the queue.
func (s *QuizScreen) prepare() {
	s.board, s.boardNote, s.typing = nil, "", false
	s.options = components.OptionList{}

	q := s.sess.Current()
	if q == nil {
		return
	}
	if c, ok := q.(*question.Connect); ok {
		order := func(idx []int) []int { return screen.Shuffle(s.env, idx) }
		s.board = question.NewBoard(c, order, order)
		s.side, s.cursor = question.SideLeft, [2]int{}
		return
	}
	c, err := question.Choices(q)
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.options = components.NewOptionList(screen.Shuffle(s.env, c.Options))
	s.input = components.NewAnswerInput("type the missing word", 64)
}

// canType reports whether the current question accepts a typed answer.
func (s *QuizScreen) canType() bool {
	q := s.sess.Current()
	return q != nil && q.Kind() == question.KindFillGap
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case explainedMsg:
		// The view reads the explanation on the next render.
		return s, nil

	case tea.KeyMsg:
		if s.quitConfirm {
			switch {
			case key.Matches(msg, keys.Yes):
				return s, tea.Batch(sessionEnded, func() tea.Msg { return router.PopScreenMsg{} })
			case key.Matches(msg, keys.No):
				s.quitConfirm = false
			}
			return s, nil
		}

		if s.errMsg != "" {
			return s, tea.Batch(sessionEnded, func() tea.Msg { return router.PopScreenMsg{} })
		}

		if key.Matches(msg, keys.Back) {
			if s.typing {
				s.typing = false
				return s, nil
			}
			s.quitConfirm = true
			return s, nil
		}

		switch s.sess.Phase() {
		case session.PhaseFeedback:
			if key.Matches(msg, keys.Enter) {
				return s.advance()
			}
			return s, nil
		case session.PhaseActive:
			switch {
			case s.board != nil:
				return s.updateBoard(msg)
			case s.typing:
				return s.updateTyping(msg)
			}
			if key.Matches(msg, keys.Type) && s.canType() {
				s.typing = true
				return s, s.input.Init()
			}
			var chosen string
			s.options, chosen = s.options.Update(msg)
			if chosen != "" {
				return s.submit(chosen)
			}
		}
		return s, nil
	}

	if s.typing {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) updateTyping(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Type):
		s.typing = false
		return s, nil
	case key.Matches(msg, keys.Enter):
		typed := s.input.Value()
		if typed == "" {
			return s, nil
		}
		return s.submit(question.MatchOption(s.sess.Current(), typed))
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *QuizScreen) submit(choice string) (screen.Screen, tea.Cmd) {
	fb, err := s.sess.SubmitAnswer(choice)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.options.Reveal(fb.Chosen, fb.Answer)
	s.typing = false
	if fb.Correct {
		return s, nil
	}
	done := s.env.Explain.Request(context.Background(), fb.Question, fb.Chosen)
	if done == nil {
		return s, nil
	}
	return s, waitExplanation(done, fb.Question.ID())
}

func (s *QuizScreen) updateBoard(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	col := s.board.Left
	if s.side == question.SideRight {
		col = s.board.Right
	}
	switch {
	case key.Matches(msg, keys.Up):
		if s.cursor[s.side] > 0 {
			s.cursor[s.side]--
		}
	case key.Matches(msg, keys.Down):
		if s.cursor[s.side] < len(col)-1 {
			s.cursor[s.side]++
		}
	case key.Matches(msg, keys.Left):
		s.side = question.SideLeft
	case key.Matches(msg, keys.Right):
		s.side = question.SideRight
	case key.Matches(msg, keys.Enter):
		return s.pick(s.side, s.cursor[s.side])
	}
	return s, nil
}

func (s *QuizScreen) pick(side question.Side, row int) (screen.Screen, tea.Cmd) {
	switch s.board.Select(side, row) {
	case question.MatchNone:
		s.boardNote = ""
		if l, r := s.board.Selected(); l >= 0 && r < 0 {
			s.side = question.SideRight
		} else if r >= 0 && l < 0 {
			s.side = question.SideLeft
		}
	case question.MatchWrong:
		s.boardNote = "Not a pair, try again."
	case question.MatchCorrect:
		s.boardNote = "Matched!"
		s.side = question.SideLeft
	case question.MatchComplete:
		if _, err := s.sess.CompletePairing(true); err != nil {
			s.errMsg = err.Error()
		}
	}
	return s, nil
}

func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	out, err := s.sess.Advance(context.Background())
	if out == nil {
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.prepare()
		return s, nil
	}
	if err != nil {
		s.env.Log().Error("record session", "session", out.SessionID, "err", err)
	}
	next := summary.New(*out, s.title, err)
	return s, tea.Batch(sessionEnded, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} })
}
