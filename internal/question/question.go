package question

import (
	"errors"
	"strings"
)

// ErrNotSelectable is returned when an operation that needs a single correct
// answer is applied to a question answered by structure (connect).
var ErrNotSelectable = errors.New("question has no selectable answer")

// GapMarker is the placeholder a fill-gap prompt carries.
const GapMarker = "___"

// Kind discriminates the four question variants.
type Kind int

const (
	KindMultipleChoice Kind = iota // Pick one option
	KindTranslate                  // Pick the translation of the prompt
	KindFillGap                    // Pick the filler for the gap marker
	KindConnect                    // Match left items to right items
)

var kindNames = [...]string{"multiple-choice", "translate", "fill-gap", "connect"}

// String returns the content-file name of the kind.
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind maps a content-file type name to a Kind.
func ParseKind(s string) (Kind, bool) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// Question is a closed sum type. The only implementations are
// *MultipleChoice, *Translate, *FillGap and *Connect.
type Question interface {
	ID() string
	Kind() Kind
	Prompt() string
	IsRecap() bool
	IsRetry() bool

	meta() *Meta
	clone() Question
}

// Meta holds the attributes shared by every variant.
type Meta struct {
	// QID is the stable identifier. Recap clones get a fresh one.
	QID string

	// Text is the prompt shown to the learner.
	Text string

	// Recap marks a question drawn from an earlier lesson.
	Recap bool

	// Retry marks a question re-queued after a wrong answer.
	Retry bool
}

func (m *Meta) ID() string     { return m.QID }
func (m *Meta) Prompt() string { return m.Text }
func (m *Meta) IsRecap() bool  { return m.Recap }
func (m *Meta) IsRetry() bool  { return m.Retry }
func (m *Meta) meta() *Meta    { return m }

// Choice holds the option set of a selectable question.
type Choice struct {
	// Options are the candidate answers. Display order is decided by the UI.
	Options []string

	// Answer is the correct option.
	Answer string
}

// MultipleChoice asks the learner to pick one option.
type MultipleChoice struct {
	Meta
	Choice
}

// Translate shows a phrase and asks for its translation.
type Translate struct {
	Meta
	Choice
}

// FillGap shows a prompt with one GapMarker and asks for the filler.
type FillGap struct {
	Meta
	Choice
}

// Pair is one left/right match in a connect question.
type Pair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Connect asks the learner to match every left item to its right item.
// Correctness is structural, so there is no answer field.
type Connect struct {
	Meta
	Pairs []Pair
}

func (*MultipleChoice) Kind() Kind { return KindMultipleChoice }
func (*Translate) Kind() Kind      { return KindTranslate }
func (*FillGap) Kind() Kind        { return KindFillGap }
func (*Connect) Kind() Kind        { return KindConnect }

func (q *MultipleChoice) clone() Question {
	c := *q
	c.Options = append([]string(nil), q.Options...)
	return &c
}

func (q *Translate) clone() Question {
	c := *q
	c.Options = append([]string(nil), q.Options...)
	return &c
}

func (q *FillGap) clone() Question {
	c := *q
	c.Options = append([]string(nil), q.Options...)
	return &c
}

func (q *Connect) clone() Question {
	c := *q
	c.Pairs = append([]Pair(nil), q.Pairs...)
	return &c
}

// Clone returns a deep copy of q.
func Clone(q Question) Question {
	return q.clone()
}

// WithID returns a copy of q carrying a new identifier.
func WithID(q Question, id string) Question {
	c := q.clone()
	c.meta().QID = id
	return c
}

// AsRecap returns a copy of q with a new identifier and the recap flag set.
func AsRecap(q Question, id string) Question {
	c := WithID(q, id)
	c.meta().Recap = true
	return c
}

// AsRetry returns a copy of q with the retry flag set. The id is kept so
// the learner's progress is attributed to the same question.
func AsRetry(q Question) Question {
	c := q.clone()
	c.meta().Retry = true
	return c
}

// Choices returns the option set of a selectable question.
func Choices(q Question) (Choice, error) {
	switch v := q.(type) {
	case *MultipleChoice:
		return v.Choice, nil
	case *Translate:
		return v.Choice, nil
	case *FillGap:
		return v.Choice, nil
	case *Connect:
		return Choice{}, ErrNotSelectable
	}
	return Choice{}, ErrNotSelectable
}

// Selectable reports whether q is answered by picking an option.
func Selectable(q Question) bool {
	_, err := Choices(q)
	return err == nil
}

// CheckChoice reports whether choice is the correct answer of q.
// Comparison is exact: options are picked, not typed.
func CheckChoice(q Question, choice string) (bool, error) {
	c, err := Choices(q)
	if err != nil {
		return false, err
	}
	return choice == c.Answer, nil
}

// MatchOption maps free-typed input onto one of the options of q,
// ignoring case and surrounding whitespace. It returns the input unchanged
// when no option matches.
func MatchOption(q Question, typed string) string {
	c, err := Choices(q)
	if err != nil {
		return typed
	}
	typed = strings.TrimSpace(typed)
	for _, o := range c.Options {
		if strings.EqualFold(o, typed) {
			return o
		}
	}
	return typed
}
