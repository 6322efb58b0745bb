package guidance

import "github.com/novapath/trident/internal/llm"

// guidanceSchema is the structured response requested from the model.
var guidanceSchema = &llm.Schema{
	Name:        "career-guidance",
	Description: "Career and study guidance for a student's assessment profile",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"types": map[string]any{
				"type":        "array",
				"description": "One entry per letter of the Holland code, in order",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"trait":       map[string]any{"type": "string"},
						"description": map[string]any{"type": "string", "description": "One sentence, second person"},
					},
					"required":             []any{"trait", "description"},
					"additionalProperties": false,
				},
			},
			"careers": map[string]any{
				"type":        "array",
				"description": "Exactly 5 career titles, best fit first",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
			},
			"learning_tips": map[string]any{
				"type":        "string",
				"description": "Two or three sentences of study advice for the learning styles",
			},
			"recommended_stream": map[string]any{
				"type":        "string",
				"description": "Subject stream for grades 11-12, e.g. \"Science + Technology\"",
			},
			"action_tips": map[string]any{
				"type":        "array",
				"description": "Exactly 3 short, concrete next steps",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
			},
		},
		"required":             []any{"types", "careers", "learning_tips", "recommended_stream", "action_tips"},
		"additionalProperties": false,
	},
}
