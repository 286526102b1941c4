package session

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/lingo/internal/question"
)

var (
	// ErrEmptyPool is returned when a session is started with no questions.
	ErrEmptyPool = errors.New("session has no questions")

	// ErrInvalidSubmission is returned for a submission that does not fit
	// the current question or phase. The session is left unchanged.
	ErrInvalidSubmission = errors.New("invalid submission")

	// ErrNotResolved is returned by Advance before the current question
	// has been answered.
	ErrNotResolved = errors.New("current question not resolved")

	// ErrComplete is returned by any operation after completion.
	ErrComplete = errors.New("session complete")
)

// Phase is the controller's state.
type Phase int

const (
	PhaseActive   Phase = iota // Waiting for an answer to the head question
	PhaseFeedback              // Answer recorded, waiting for Advance
	PhaseComplete              // Queue drained, outcome emitted
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseFeedback:
		return "feedback"
	case PhaseComplete:
		return "complete"
	}
	return "unknown"
}

// Mode selects lesson or exam rules.
type Mode int

const (
	// ModeLesson requeues wrong answers until every question is answered correctly.
	ModeLesson Mode = iota

	// ModeExam serves each question once and scores the result.
	ModeExam
)

func (m Mode) String() string {
	if m == ModeExam {
		return "exam"
	}
	return "lesson"
}

// Stats are the per-session answer counts and time.
type Stats struct {
	Correct   int
	Incorrect int
	Seconds   int64
}

// Add returns the field-wise sum of s and d.
func (s Stats) Add(d Stats) Stats {
	return Stats{
		Correct:   s.Correct + d.Correct,
		Incorrect: s.Incorrect + d.Incorrect,
		Seconds:   s.Seconds + d.Seconds,
	}
}

// IsZero reports whether s carries no change.
func (s Stats) IsZero() bool {
	return s == Stats{}
}

// Feedback is the result of resolving the current question.
type Feedback struct {
	Question question.Question
	Correct  bool

	// Chosen is the submitted option; empty for connect questions.
	Chosen string

	// Answer is the correct option; empty for connect questions.
	Answer string
}

// Recorder receives the deltas of a completed session. Implementations
// decide how much XP a completion is worth and return the amount awarded.
type Recorder interface {
	LessonCompleted(ctx context.Context, lessonID string, baseXP int) (awarded int, err error)
	ModulePassed(ctx context.Context, moduleID string, baseXP int) (awarded int, err error)
	StatsDelta(ctx context.Context, d Stats) error
}

// OutcomeRecorder is implemented by recorders that also keep session history.
type OutcomeRecorder interface {
	RecordOutcome(ctx context.Context, o Outcome) error
}

// Options configures a session.
type Options struct {
	// Recorder receives completion deltas. Nil disables recording.
	Recorder Recorder

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time

	// LessonXP is the base award for completing a lesson.
	LessonXP int

	// ModuleXP is the bonus for passing a module exam.
	ModuleXP int

	// PassThreshold is the exam score that must be strictly exceeded.
	PassThreshold float64
}

// DefaultOptions returns the standard rewards and threshold.
func DefaultOptions() Options {
	return Options{
		Clock:         time.Now,
		LessonXP:      20,
		ModuleXP:      100,
		PassThreshold: 0.51,
	}
}
