package explain

import "github.com/abhisek/lingo/internal/llm"

// Schema is the structured output of an explanation request.
var Schema = &llm.Schema{
	Name:        "mistake-explanation",
	Description: "Why the learner's answer is wrong and how to remember the right one",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "One to three sentences on why the chosen answer is wrong and the correct one is right",
			},
			"tip": map[string]any{
				"type":        "string",
				"description": "A short memory aid, one sentence",
			},
		},
		"required":             []string{"explanation", "tip"},
		"additionalProperties": false,
	},
}
