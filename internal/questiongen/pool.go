package questiongen

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/abhisek/lingo/internal/course"
	"github.com/abhisek/lingo/internal/question"
)

var (
	// ErrEmptyPool means a lesson or exam has no questions to serve.
	ErrEmptyPool = errors.New("question pool is empty")

	// ErrLessonNotFound means the lesson index is outside the module.
	ErrLessonNotFound = errors.New("lesson not found in module")
)

// Builder assembles the initial question queue of a session.
type Builder struct {
	cfg   Config
	rng   *rand.Rand
	newID func() string
}

// NewBuilder creates a Builder. A nil rng uses a clock-seeded one.
func NewBuilder(cfg Config, rng *rand.Rand) *Builder {
	if rng == nil {
		rng = NewRand()
	}
	return &Builder{cfg: cfg, rng: rng, newID: uuid.NewString}
}

// LessonPool returns recap questions from the two preceding lessons
// followed by clones of the lesson's own quiz in authored order:
// up to RecapPrevious from lesson i-1, then up to RecapTwoBack from i-2.
// Connect questions are never recapped.
func (b *Builder) LessonPool(m *course.Module, lessonIdx int) ([]question.Question, error) {
	if lessonIdx < 0 || lessonIdx >= len(m.Lessons) {
		return nil, fmt.Errorf("module %s index %d: %w", m.ID, lessonIdx, ErrLessonNotFound)
	}

	var pool []question.Question
	if lessonIdx >= 1 {
		pool = append(pool, b.recap(m.Lessons[lessonIdx-1].Quiz, b.cfg.RecapPrevious, "recap_1")...)
	}
	if lessonIdx >= 2 {
		pool = append(pool, b.recap(m.Lessons[lessonIdx-2].Quiz, b.cfg.RecapTwoBack, "recap_2")...)
	}
	for _, q := range m.Lessons[lessonIdx].Quiz {
		pool = append(pool, question.Clone(q))
	}

	if len(pool) == 0 {
		return nil, fmt.Errorf("lesson %s: %w", m.Lessons[lessonIdx].ID, ErrEmptyPool)
	}
	return pool, nil
}

// ExamPool returns clones of the module's exam in authored order.
func (b *Builder) ExamPool(m *course.Module) ([]question.Question, error) {
	if len(m.Exam) == 0 {
		return nil, fmt.Errorf("module %s exam: %w", m.ID, ErrEmptyPool)
	}
	pool := make([]question.Question, len(m.Exam))
	for i, q := range m.Exam {
		pool[i] = question.Clone(q)
	}
	return pool, nil
}

func (b *Builder) recap(quiz []question.Question, n int, prefix string) []question.Question {
	var candidates []question.Question
	for _, q := range quiz {
		if q.Kind() != question.KindConnect {
			candidates = append(candidates, q)
		}
	}
	picked := Sample(b.rng, candidates, n)
	out := make([]question.Question, len(picked))
	for i, q := range picked {
		out[i] = question.AsRecap(q, fmt.Sprintf("%s_%s_%s", prefix, q.ID(), b.newID()))
	}
	return out
}
