package questiongen

import (
	"github.com/abhisek/lingo/internal/course"
	"github.com/abhisek/lingo/internal/question"
)

// PairingPrompt is the instruction shown on generated connect questions.
const PairingPrompt = "Match the words"

// Pairing builds a connect question of PairCount random vocabulary entries.
// Entries are deduplicated by native term, first occurrence winning. When
// sampling, entries with a translation not already picked are preferred so
// the right column stays unambiguous where the vocabulary allows it. It
// returns false when fewer than PairCount distinct native terms exist.
func (s *Synthesizer) Pairing(lessonID string, vocab []course.Vocabulary) (*question.Connect, bool) {
	seen := make(map[string]bool, len(vocab))
	unique := make([]course.Vocabulary, 0, len(vocab))
	for _, v := range vocab {
		if seen[v.Native] {
			continue
		}
		seen[v.Native] = true
		unique = append(unique, v)
	}
	if len(unique) < PairCount {
		s.logger.Debug("not enough vocabulary for pairing", "lesson", lessonID, "unique", len(unique))
		return nil, false
	}

	picked := pickDistinctRight(Shuffle(s.rng, unique), PairCount)
	pairs := make([]question.Pair, len(picked))
	for i, v := range picked {
		pairs[i] = question.Pair{Left: cleanText(v.Native), Right: cleanText(v.Translation)}
	}
	return &question.Connect{
		Meta:  question.Meta{QID: lessonID + "_connect_auto", Text: PairingPrompt},
		Pairs: pairs,
	}, true
}

// Enrich returns a copy of l whose quiz is the authored quiz followed by
// the table-derived questions and the pairing question, when available.
func (s *Synthesizer) Enrich(l course.Lesson) course.Lesson {
	quiz := make([]question.Question, 0, len(l.Quiz)+s.cfg.MaxTableQuestions+1)
	quiz = append(quiz, l.Quiz...)
	quiz = append(quiz, s.FromTables(l.ID, l.GrammarTables)...)
	if c, ok := s.Pairing(l.ID, l.Vocabulary); ok {
		quiz = append(quiz, c)
	}
	l.Quiz = quiz
	return l
}

// EnrichCourse enriches every lesson of c in place. It runs once, before
// any session starts.
func (s *Synthesizer) EnrichCourse(c *course.Course) {
	for mi := range c.Modules {
		m := &c.Modules[mi]
		for li := range m.Lessons {
			m.Lessons[li] = s.Enrich(m.Lessons[li])
		}
	}
}

// pickDistinctRight takes n entries from in, in order, skipping entries
// whose translation repeats an earlier pick. Skipped entries fill the
// remainder when too few distinct translations exist.
func pickDistinctRight(in []course.Vocabulary, n int) []course.Vocabulary {
	rights := make(map[string]bool, n)
	out := make([]course.Vocabulary, 0, n)
	var rest []course.Vocabulary
	for _, v := range in {
		right := cleanText(v.Translation)
		if rights[right] || len(out) == n {
			rest = append(rest, v)
			continue
		}
		rights[right] = true
		out = append(out, v)
	}
	for _, v := range rest {
		if len(out) == n {
			break
		}
		out = append(out, v)
	}
	return out
}
