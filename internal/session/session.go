package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lingo/internal/question"
)

// Session drives one lesson quiz or module exam. It owns its queue and
// stats exclusively and is not safe for concurrent use.
type Session struct {
	id       string
	mode     Mode
	targetID string
	opts     Options

	// queue holds the remaining work; the head is the current question.
	queue []question.Question

	// original is the queue length at start.
	original int

	// net counts questions resolved correctly; answered counts every
	// resolution. Lessons report progress from net, exams from answered.
	net      int
	answered int

	stats   Stats
	phase   Phase
	last    *Feedback
	start   time.Time
	outcome *Outcome
}

// NewLesson starts a lesson session over pool.
func NewLesson(lessonID string, pool []question.Question, opts Options) (*Session, error) {
	return newSession(ModeLesson, lessonID, pool, opts)
}

// NewExam starts a single-pass exam for a module.
func NewExam(moduleID string, pool []question.Question, opts Options) (*Session, error) {
	return newSession(ModeExam, moduleID, pool, opts)
}

func newSession(mode Mode, target string, pool []question.Question, opts Options) (*Session, error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("%s %s: %w", mode, target, ErrEmptyPool)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Session{
		id:       uuid.NewString(),
		mode:     mode,
		targetID: target,
		opts:     opts,
		queue:    append([]question.Question(nil), pool...),
		original: len(pool),
		phase:    PhaseActive,
		start:    opts.Clock(),
	}, nil
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// Mode returns lesson or exam.
func (s *Session) Mode() Mode { return s.mode }

// TargetID returns the lesson or module id the session is for.
func (s *Session) TargetID() string { return s.targetID }

// Phase returns the controller state.
func (s *Session) Phase() Phase { return s.phase }

// Current returns the question at the head of the queue, or nil once complete.
func (s *Session) Current() question.Question {
	if s.phase == PhaseComplete || len(s.queue) == 0 {
		return nil
	}
	return s.queue[0]
}

// LastFeedback returns the result of the most recent resolution.
func (s *Session) LastFeedback() *Feedback { return s.last }

// SubmitAnswer checks choice against the current selectable question.
// It is rejected without effect when no choice is given, the current
// question is a connect question, or the session is not waiting for an answer.
func (s *Session) SubmitAnswer(choice string) (Feedback, error) {
	if s.phase == PhaseComplete {
		return Feedback{}, ErrComplete
	}
	if s.phase != PhaseActive || choice == "" {
		return Feedback{}, ErrInvalidSubmission
	}
	q := s.queue[0]
	c, err := question.Choices(q)
	if err != nil {
		return Feedback{}, fmt.Errorf("%w: %v", ErrInvalidSubmission, err)
	}
	return s.resolve(Feedback{
		Question: q,
		Correct:  choice == c.Answer,
		Chosen:   choice,
		Answer:   c.Answer,
	}), nil
}

// CompletePairing resolves the current connect question. Wrong pairs on
// the board are never scored, so only success == true resolves it (as
// correct); false leaves the question open.
func (s *Session) CompletePairing(success bool) (Feedback, error) {
	if s.phase == PhaseComplete {
		return Feedback{}, ErrComplete
	}
	if s.phase != PhaseActive {
		return Feedback{}, ErrInvalidSubmission
	}
	q := s.queue[0]
	if q.Kind() != question.KindConnect {
		return Feedback{}, ErrInvalidSubmission
	}
	if !success {
		return Feedback{Question: q}, nil
	}
	return s.resolve(Feedback{Question: q, Correct: true}), nil
}

func (s *Session) resolve(fb Feedback) Feedback {
	if fb.Correct {
		s.stats.Correct++
	} else {
		s.stats.Incorrect++
	}
	s.last = &fb
	s.phase = PhaseFeedback
	return fb
}

// Advance moves past the resolved question. In a lesson a wrong answer
// sends a retry-marked copy to the tail of the queue; in an exam the
// question is simply consumed. When the queue drains the session completes,
// the outcome is passed to the recorder exactly once and returned.
//
// A recorder failure is returned alongside the outcome; the session is
// complete either way.
func (s *Session) Advance(ctx context.Context) (*Outcome, error) {
	switch s.phase {
	case PhaseComplete:
		return nil, ErrComplete
	case PhaseActive:
		return nil, ErrNotResolved
	}

	head := s.queue[0]
	s.queue = s.queue[1:]
	s.answered++
	if s.last.Correct {
		s.net++
	} else if s.mode == ModeLesson {
		s.queue = append(s.queue, question.AsRetry(head))
	}

	if len(s.queue) > 0 {
		s.phase = PhaseActive
		return nil, nil
	}

	s.phase = PhaseComplete
	s.outcome = s.buildOutcome()
	err := s.record(ctx, s.outcome)
	return s.outcome, err
}

func (s *Session) buildOutcome() *Outcome {
	st := s.stats
	st.Seconds = int64(s.opts.Clock().Sub(s.start) / time.Second)
	if st.Seconds < 0 {
		st.Seconds = 0
	}
	o := &Outcome{
		SessionID: s.id,
		Mode:      s.mode,
		TargetID:  s.targetID,
		Stats:     st,
		Total:     s.original,
		Passed:    true,
	}
	if s.mode == ModeExam {
		o.Percentage = Percentage(st.Correct, s.original)
		o.Passed = Passed(o.Percentage, s.opts.PassThreshold)
	}
	return o
}

func (s *Session) record(ctx context.Context, o *Outcome) error {
	r := s.opts.Recorder
	if r == nil {
		return nil
	}

	var errs []error
	switch {
	case o.Mode == ModeLesson:
		xp, err := r.LessonCompleted(ctx, o.TargetID, s.opts.LessonXP)
		o.XPAwarded = xp
		errs = append(errs, err)
	case o.Passed:
		xp, err := r.ModulePassed(ctx, o.TargetID, s.opts.ModuleXP)
		o.XPAwarded = xp
		errs = append(errs, err)
	}
	errs = append(errs, r.StatsDelta(ctx, o.Stats))
	if h, ok := r.(OutcomeRecorder); ok {
		errs = append(errs, h.RecordOutcome(ctx, *o))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("record %s %s: %w", o.Mode, o.TargetID, err)
	}
	return nil
}

// Outcome returns the completion result, or nil while the session runs.
func (s *Session) Outcome() *Outcome { return s.outcome }
