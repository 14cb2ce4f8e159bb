package assessment

import "github.com/abhisek/socratiq/internal/llm"

// DescriptorSchema defines the JSON schema assessment generators must
// produce. Prompts only, never answers or rubric scores.
var DescriptorSchema = &llm.Schema{
	Name:        "assessment-descriptor",
	Description: "A formative assessment descriptor: prompts for the learner, no answers",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short title for the assessment (3-8 words)",
			},
			"prompts": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"maxItems":    5,
				"description": "Questions or tasks to put in front of the learner",
			},
		},
		"required":             []any{"title", "prompts"},
		"additionalProperties": false,
	},
}
