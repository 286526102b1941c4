package explain

import (
	"fmt"
	"strings"

	"github.com/abhisek/lingo/internal/question"
)

const systemPrompt = `You are a friendly language tutor inside a self-paced course. A learner just answered a quiz question wrong. Explain the mistake briefly and concretely, in English.`

func buildUserMessage(cfg Config, q question.Question, c question.Choice, chosen string) string {
	var b strings.Builder

	if cfg.Language != "" {
		fmt.Fprintf(&b, "Course language: %s\n", cfg.Language)
	}
	fmt.Fprintf(&b, "Question type: %s\n", q.Kind())
	fmt.Fprintf(&b, "Question: %s\n", q.Prompt())
	if q.Kind() == question.KindFillGap {
		fmt.Fprintf(&b, "(The gap is marked %s.)\n", question.GapMarker)
	}
	b.WriteString("Options:\n")
	for _, o := range c.Options {
		fmt.Fprintf(&b, "- %s\n", o)
	}
	fmt.Fprintf(&b, "Learner chose: %s\n", chosen)
	fmt.Fprintf(&b, "Correct answer: %s\n", c.Answer)

	b.WriteString(`
Instructions:
1. Say in one to three sentences why the chosen answer does not fit and why the correct answer does. Mention the grammar rule (gender, case, conjugation, plural) when one applies.
2. Give one short memory tip.
3. Quote words from the course language exactly as written above. Do not transliterate unless the question did.
4. No markdown.`)

	return b.String()
}
