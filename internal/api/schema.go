package api

// Schema defines the JSON structure expected from the service.
type Schema struct {
	// Name identifies this schema in the compile cache. Kebab-case.
	Name string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

var healthSchema = &Schema{
	Name: "health-response",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status":      map[string]any{"type": "string"},
			"model_type":  map[string]any{"type": "string"},
			"model_ready": map[string]any{"type": "boolean"},
		},
		"required": []string{"status"},
	},
}

var uploadSchema = &Schema{
	Name: "upload-response",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"fileName":  map[string]any{"type": "string"},
			"content":   map[string]any{"type": "string"},
			"pageCount": map[string]any{"type": "integer", "minimum": 0},
		},
		"required": []string{"fileName", "content", "pageCount"},
	},
}

// quizSchema leaves "questions" optional; a missing or null list is an
// empty result, not a malformed one.
var quizSchema = &Schema{
	Name: "quiz-response",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": []string{"array", "null"},
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":       map[string]any{"type": "integer"},
						"question": map[string]any{"type": "string", "minLength": 1},
						"options": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": 2,
						},
						"correctIndex":      map[string]any{"type": "integer", "minimum": 0},
						"explanation":       map[string]any{"type": "string"},
						"explanationDarija": map[string]any{"type": "string"},
					},
					"required": []string{"question", "options", "correctIndex"},
				},
			},
		},
	},
}

var summarySchema = &Schema{
	Name: "summary-response",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sections": map[string]any{
				"type": []string{"array", "null"},
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":   map[string]any{"type": "string"},
						"content": map[string]any{"type": "string"},
						"keyTerms": map[string]any{
							"type": []string{"array", "null"},
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"term":             map[string]any{"type": "string"},
									"definition":       map[string]any{"type": "string"},
									"definitionDarija": map[string]any{"type": "string"},
								},
								"required": []string{"term"},
							},
						},
						"essentialPoints": map[string]any{
							"type":  []string{"array", "null"},
							"items": map[string]any{"type": "string"},
						},
					},
					"required": []string{"title", "content"},
				},
			},
		},
	},
}
