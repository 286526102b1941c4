package questiongen

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/abhisek/lingo/internal/course"
	"github.com/abhisek/lingo/internal/question"
)

// Synthesizer derives drill questions from lesson content.
type Synthesizer struct {
	cfg    Config
	rng    *rand.Rand
	logger *slog.Logger
}

// NewSynthesizer creates a Synthesizer. A nil rng uses a clock-seeded one;
// a nil logger discards.
func NewSynthesizer(cfg Config, rng *rand.Rand, logger *slog.Logger) *Synthesizer {
	if rng == nil {
		rng = NewRand()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Synthesizer{cfg: cfg, rng: rng, logger: logger}
}

// tableShape is the recognized layout of a grammar table.
type tableShape int

const (
	shapeUnknown tableShape = iota
	shapeConjugation
	shapeComparative
	shapeGender
	shapePlural
	shapeTranslation
)

func (s tableShape) String() string {
	return [...]string{"unknown", "conjugation", "comparative", "gender", "plural", "translation"}[s]
}

// layout is a classified table: its shape plus the columns that matter.
type layout struct {
	shape tableShape
	a, b  int // shape-specific columns, see classify
}

// classify matches lower-cased headers against the five shapes in priority
// order. Column a/b hold:
//
//	conjugation:  person, verb
//	comparative:  person, -
//	gender:       gender, example
//	plural:       singular, plural
//	translation:  native, english
func classify(headers []string) layout {
	h := make([]string, len(headers))
	for i, s := range headers {
		h[i] = strings.ToLower(strings.TrimSpace(s))
	}
	find := func(match func(string) bool) int {
		for i, s := range h {
			if match(s) {
				return i
			}
		}
		return -1
	}
	contains := func(sub string) func(string) bool {
		return func(s string) bool { return strings.Contains(s, sub) }
	}
	exact := func(want string) func(string) bool {
		return func(s string) bool { return s == want }
	}

	person := find(contains("person"))
	verb := find(func(s string) bool {
		return strings.Contains(s, "full verb") || (strings.Contains(s, "verb") && !strings.Contains(s, "suffix"))
	})
	if person >= 0 && verb >= 0 {
		return layout{shapeConjugation, person, verb}
	}
	if person >= 0 && len(h) >= 3 {
		return layout{shapeComparative, person, -1}
	}

	gender := find(contains("gender"))
	example := find(func(s string) bool { return strings.Contains(s, "example") || strings.Contains(s, "word") })
	if gender >= 0 && example >= 0 {
		return layout{shapeGender, gender, example}
	}

	singular, plural := find(exact("singular")), find(exact("plural"))
	if singular >= 0 && plural >= 0 {
		return layout{shapePlural, singular, plural}
	}

	native := find(func(s string) bool { return strings.Contains(s, "macedonian") || strings.Contains(s, "question") })
	english := find(exact("english"))
	if native >= 0 && english >= 0 {
		return layout{shapeTranslation, native, english}
	}
	return layout{shape: shapeUnknown}
}

// cleanText drops a parenthetical aside and surrounding whitespace,
// e.g. "Како си? (informal)" becomes "Како си?".
func cleanText(s string) string {
	if i := strings.Index(s, "("); i >= 0 {
		if j := strings.LastIndex(s, ")"); j > i {
			s = s[:i] + s[j+1:]
		}
	}
	return strings.TrimSpace(s)
}

var genderLabels = []string{"Masculine", "Feminine", "Neuter"}

// FromTables synthesizes questions from a lesson's grammar tables. Tables
// of unknown shape yield nothing. The result is shuffled and capped at
// MaxTableQuestions.
func (s *Synthesizer) FromTables(lessonID string, tables []course.GrammarTable) []question.Question {
	var out []question.Question
	for ti, t := range tables {
		lay := classify(t.Headers)
		if lay.shape == shapeUnknown {
			s.logger.Debug("grammar table shape not recognized",
				"lesson", lessonID, "table", t.Title, "headers", t.Headers)
			continue
		}
		s.logger.Debug("grammar table classified", "lesson", lessonID, "table", t.Title, "shape", lay.shape.String())
		for ri, row := range t.Rows {
			if len(row) != len(t.Headers) {
				continue
			}
			id := fmt.Sprintf("%s_gram_%d_%d", lessonID, ti, ri)
			if q := s.fromRow(id, lay, t, ri); q != nil {
				out = append(out, q)
			}
		}
	}

	out = Shuffle(s.rng, out)
	if len(out) > s.cfg.MaxTableQuestions {
		out = out[:s.cfg.MaxTableQuestions]
	}
	return out
}

func (s *Synthesizer) fromRow(id string, lay layout, t course.GrammarTable, ri int) question.Question {
	row := t.Rows[ri]
	switch lay.shape {
	case shapeConjugation:
		answer := cleanText(row[lay.b])
		distractors := s.otherRows(t, ri, lay.b, answer)
		if len(distractors) == 0 {
			return nil
		}
		return fillGap(id, cleanText(row[lay.a])+" "+question.GapMarker, answer, distractors)

	case shapeComparative:
		cols := make([]int, 0, len(t.Headers)-1)
		for i := range t.Headers {
			if i != lay.a {
				cols = append(cols, i)
			}
		}
		col := cols[s.rng.IntN(len(cols))]
		answer := cleanText(row[col])
		prompt := fmt.Sprintf("%s %s (%s)", cleanText(row[lay.a]), question.GapMarker, cleanText(t.Headers[col]))
		return fillGap(id, prompt, answer, s.otherRows(t, ri, col, ""))

	case shapeGender:
		gender := cleanText(row[lay.a])
		example := strings.TrimSpace(strings.SplitN(cleanText(row[lay.b]), "(", 2)[0])
		prefix := []rune(strings.ToLower(gender))
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
		options := []string{gender}
		for _, g := range genderLabels {
			if !strings.Contains(strings.ToLower(g), string(prefix)) {
				options = append(options, g)
			}
		}
		return &question.MultipleChoice{
			Meta:   question.Meta{QID: id, Text: fmt.Sprintf("What gender is \"%s\"?", example)},
			Choice: question.Choice{Options: options, Answer: gender},
		}

	case shapePlural:
		prompt := fmt.Sprintf("Plural of \"%s\" is %s", cleanText(row[lay.a]), question.GapMarker)
		return fillGap(id, prompt, cleanText(row[lay.b]), s.otherRows(t, ri, lay.b, ""))

	case shapeTranslation:
		src, dst := lay.a, lay.b
		if s.rng.IntN(2) == 0 {
			src, dst = dst, src
		}
		distractors := s.otherRows(t, ri, dst, "")
		if len(distractors) == 0 {
			return nil
		}
		answer := cleanText(row[dst])
		return &question.Translate{
			Meta:   question.Meta{QID: id, Text: cleanText(row[src])},
			Choice: question.Choice{Options: append([]string{answer}, distractors...), Answer: answer},
		}
	}
	return nil
}

// otherRows returns cleaned column values from rows other than skip,
// shuffled and capped at MaxDistractors. Values equal to exclude are
// dropped when exclude is non-empty.
func (s *Synthesizer) otherRows(t course.GrammarTable, skip, col int, exclude string) []string {
	var vals []string
	for i, r := range t.Rows {
		if i == skip || len(r) != len(t.Headers) {
			continue
		}
		v := cleanText(r[col])
		if exclude != "" && v == exclude {
			continue
		}
		vals = append(vals, v)
	}
	return Sample(s.rng, vals, s.cfg.MaxDistractors)
}

func fillGap(id, prompt, answer string, distractors []string) *question.FillGap {
	return &question.FillGap{
		Meta:   question.Meta{QID: id, Text: prompt},
		Choice: question.Choice{Options: append([]string{answer}, distractors...), Answer: answer},
	}
}
