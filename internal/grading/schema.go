package grading

// batchSchema is the JSON schema every batch regression file must satisfy.
var batchSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"cases": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{
						"type":        "string",
						"description": "Optional label shown in reports",
					},
					"user": map[string]any{
						"type":        "string",
						"description": "The answer as a learner typed it",
					},
					"correct": map[string]any{
						"type":        "string",
						"minLength":   1,
						"description": "The canonical answer as authored",
					},
					"kind": map[string]any{
						"type": "string",
						"enum": []any{"expression", "number"},
					},
					"expect": map[string]any{
						"type":        "boolean",
						"description": "Expected verdict. Omit to only record the verdict.",
					},
				},
				"required":             []any{"user", "correct"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"cases"},
	"additionalProperties": false,
}
