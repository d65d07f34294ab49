package bank

// catalogSchema defines the JSON schema for the catalog wire format: an
// object keyed by CEFR level code, each holding an array of item objects.
// The schema covers field presence and primitive types; cross-field
// invariants (id uniqueness, answer membership, word-count ordering, the
// skill/type pairing) are enforced after decoding, where the offending item
// id can be reported.
//
// Unknown extra fields on items are deliberately permitted and ignored.
var catalogSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]any{
		"A1": levelSchema,
		"A2": levelSchema,
		"B1": levelSchema,
		"B2": levelSchema,
		"C1": levelSchema,
		"C2": levelSchema,
	},
}

var levelSchema = map[string]any{
	"type":  "array",
	"items": itemSchema,
}

var itemSchema = map[string]any{
	"type":     "object",
	"required": []any{"id", "level", "skill", "type", "prompt"},
	"properties": map[string]any{
		"id": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"level": map[string]any{
			"type": "string",
			"enum": []any{"A1", "A2", "B1", "B2", "C1", "C2"},
		},
		"skill": map[string]any{
			"type": "string",
			"enum": []any{"grammar", "vocabulary", "reading", "use_of_english", "writing"},
		},
		"type": map[string]any{
			"type": "string",
			"enum": []any{
				"multiple_choice", "cloze_with_choices", "cloze_open",
				"word_formation", "key_transformation", "open_writing",
			},
		},
		"prompt": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"options": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"answer": map[string]any{
			"type": "string",
		},
		"gaps": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"number", "answer"},
				"properties": map[string]any{
					"number": map[string]any{"type": "integer", "minimum": 1},
					"answer": map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
				},
			},
		},
		"entries": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"number", "answer"},
				"properties": map[string]any{
					"number":    map[string]any{"type": "integer", "minimum": 1},
					"answer":    map[string]any{"type": "string", "minLength": 1},
					"base_word": map[string]any{"type": "string"},
					"sentence":  map[string]any{"type": "string"},
					"keyword":   map[string]any{"type": "string"},
					"alternatives": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
				},
			},
		},
		"task_type": map[string]any{"type": "string"},
		"min_words": map[string]any{"type": "integer", "minimum": 1},
		"max_words": map[string]any{"type": "integer", "minimum": 1},
		"rubric": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"explanation":    map[string]any{"type": "string"},
		"group_id":       map[string]any{"type": "string"},
		"passage":        map[string]any{"type": "string"},
		"part":           map[string]any{"type": "string"},
		"estimated_time": map[string]any{"type": "integer", "minimum": 1},
	},
}
