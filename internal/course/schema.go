package course

// questionSchema describes one authored quiz or exam question.
var questionSchema = map[string]any{
	"type":     "object",
	"required": []any{"id", "type", "question"},
	"properties": map[string]any{
		"id":   map[string]any{"type": "string", "minLength": 1},
		"type": map[string]any{"enum": []any{"multiple-choice", "translate", "fill-gap", "connect"}},
		"question": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"options": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"correctAnswer": map[string]any{"type": "string"},
		"pairs": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"left", "right"},
				"properties": map[string]any{
					"left":  map[string]any{"type": "string"},
					"right": map[string]any{"type": "string"},
				},
			},
		},
	},
}

// courseSchema is the structural schema of a course content file.
var courseSchema = map[string]any{
	"$schema":  "https://json-schema.org/draft/2020-12/schema",
	"type":     "object",
	"required": []any{"version", "language", "title", "modules"},
	"properties": map[string]any{
		"version":  map[string]any{"type": "string"},
		"language": map[string]any{"type": "string"},
		"title":    map[string]any{"type": "string"},
		"modules": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "title", "lessons", "exam"},
				"properties": map[string]any{
					"id":          map[string]any{"type": "string"},
					"title":       map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
					"exam":        map[string]any{"type": "array", "items": questionSchema},
					"lessons": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type":     "object",
							"required": []any{"id", "title"},
							"properties": map[string]any{
								"id":     map[string]any{"type": "string"},
								"title":  map[string]any{"type": "string"},
								"theory": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
								"vocabulary": map[string]any{
									"type": "array",
									"items": map[string]any{
										"type":     "object",
										"required": []any{"mk", "en"},
										"properties": map[string]any{
											"mk":     map[string]any{"type": "string"},
											"tr":     map[string]any{"type": "string"},
											"en":     map[string]any{"type": "string"},
											"gender": map[string]any{"enum": []any{"m", "f", "n"}},
										},
									},
								},
								"grammarTables": map[string]any{
									"type": "array",
									"items": map[string]any{
										"type":     "object",
										"required": []any{"headers", "rows"},
										"properties": map[string]any{
											"title":   map[string]any{"type": "string"},
											"headers": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
											"rows": map[string]any{
												"type":  "array",
												"items": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
											},
										},
									},
								},
								"quiz": map[string]any{"type": "array", "items": questionSchema},
							},
						},
					},
				},
			},
		},
	},
}
