package course

import (
	"errors"
	"fmt"

	"github.com/abhisek/lingo/internal/question"
)

var (
	// ErrNotFound is returned for an unknown module or lesson id.
	ErrNotFound = errors.New("not found")

	// ErrInvalidContent wraps every content validation failure.
	ErrInvalidContent = errors.New("invalid course content")
)

// Gender is the grammatical gender tag of a vocabulary entry.
type Gender string

const (
	GenderMasculine Gender = "m"
	GenderFeminine  Gender = "f"
	GenderNeuter    Gender = "n"
)

// Label returns the canonical English name of the gender.
func (g Gender) Label() string {
	switch g {
	case GenderMasculine:
		return "Masculine"
	case GenderFeminine:
		return "Feminine"
	case GenderNeuter:
		return "Neuter"
	}
	return ""
}

// Vocabulary is one word of a lesson's word list.
type Vocabulary struct {
	// Native is the term in the course language's script.
	Native string `json:"mk" validate:"required"`

	// Translit is the Latin transliteration.
	Translit string `json:"tr"`

	// Translation is the learner-language meaning.
	Translation string `json:"en" validate:"required"`

	Gender Gender `json:"gender,omitempty" validate:"omitempty,oneof=m f n"`
}

// GrammarTable is a tabular grammar rule. Every row is as wide as Headers.
type GrammarTable struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers" validate:"min=1,dive,required"`
	Rows    [][]string `json:"rows"`
}

// QuestionSpec is the content-file form of an authored question.
type QuestionSpec struct {
	ID            string          `json:"id" validate:"required"`
	Type          string          `json:"type" validate:"required,oneof=multiple-choice translate fill-gap connect"`
	Question      string          `json:"question" validate:"required"`
	Options       []string        `json:"options,omitempty"`
	CorrectAnswer string          `json:"correctAnswer,omitempty"`
	Pairs         []question.Pair `json:"pairs,omitempty"`
}

// Lesson is one unit of a module.
type Lesson struct {
	ID            string         `json:"id" validate:"required"`
	Title         string         `json:"title" validate:"required"`
	Theory        []string       `json:"theory"`
	Vocabulary    []Vocabulary   `json:"vocabulary" validate:"dive"`
	GrammarTables []GrammarTable `json:"grammarTables" validate:"dive"`
	QuizSpecs     []QuestionSpec `json:"quiz" validate:"dive"`

	// Quiz is the lesson's question list, built from QuizSpecs at load time
	// and extended with synthesized drills before any session starts.
	Quiz []question.Question `json:"-"`
}

// Module groups lessons and ends in an exam.
type Module struct {
	ID          string         `json:"id" validate:"required"`
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description"`
	Lessons     []Lesson       `json:"lessons" validate:"min=1,dive"`
	ExamSpecs   []QuestionSpec `json:"exam" validate:"dive"`

	// Exam is built from ExamSpecs at load time.
	Exam []question.Question `json:"-"`
}

// Course is the whole content file.
type Course struct {
	// Version is the semver of the content format, e.g. "v1.2.0".
	Version  string   `json:"version" validate:"required"`
	Language string   `json:"language" validate:"required"`
	Title    string   `json:"title" validate:"required"`
	Modules  []Module `json:"modules" validate:"min=1,dive"`
}

// Build converts the spec into a question variant.
func (s QuestionSpec) Build() (question.Question, error) {
	kind, ok := question.ParseKind(s.Type)
	if !ok {
		return nil, fmt.Errorf("question %s: unknown type %q", s.ID, s.Type)
	}
	meta := question.Meta{QID: s.ID, Text: s.Question}
	choice := question.Choice{Options: append([]string(nil), s.Options...), Answer: s.CorrectAnswer}

	switch kind {
	case question.KindMultipleChoice:
		return &question.MultipleChoice{Meta: meta, Choice: choice}, nil
	case question.KindTranslate:
		return &question.Translate{Meta: meta, Choice: choice}, nil
	case question.KindFillGap:
		return &question.FillGap{Meta: meta, Choice: choice}, nil
	case question.KindConnect:
		return &question.Connect{Meta: meta, Pairs: append([]question.Pair(nil), s.Pairs...)}, nil
	}
	return nil, fmt.Errorf("question %s: unhandled type %q", s.ID, s.Type)
}

func buildAll(specs []QuestionSpec) ([]question.Question, error) {
	out := make([]question.Question, 0, len(specs))
	for _, s := range specs {
		q, err := s.Build()
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}
