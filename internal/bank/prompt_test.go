package bank

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPrompt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "metadata-only first line dropped",
			raw: "Parte 3 – Notas tipo mini texto. Texto 8.\n" +
				"I get up at 7:00. I have breakfast at 7:30. I go to school at 8:00.\n" +
				"Question: When does the person get up?",
			want: "I get up at 7:00. I have breakfast at 7:30. I go to school at 8:00.\n" +
				"Question: When does the person get up?",
		},
		{
			name: "marker stripped, instruction kept",
			raw: "Parte A – Choose the correct word (be / have / do / can).\n" +
				"Sentence: I ___ 13 years old.",
			want: "Choose the correct word (be / have / do / can).\nSentence: I ___ 13 years old.",
		},
		{
			name: "ascii hyphen marker",
			raw:  "Parte 2 - Pick the best option.",
			want: "Pick the best option.",
		},
		{
			name: "plain prompt untouched",
			raw:  "She ___ to school every day.",
			want: "She ___ to school every day.",
		},
		{
			name: "parte mid-sentence untouched",
			raw:  "This is Parte 1 – of the story.",
			want: "This is Parte 1 – of the story.",
		},
		{
			name: "metadata with no content kept as-is",
			raw:  "Parte 3 – Texto 8.",
			want: "Parte 3 – Texto 8.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanPrompt(tt.raw); got != tt.want {
				t.Errorf("cleanPrompt(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestLoad_CleansPrompts(t *testing.T) {
	doc := `{"A1": [{"id": "x", "level": "A1", "skill": "grammar",
		"type": "multiple_choice",
		"prompt": "Parte A – Choose the correct word.\nSentence: I ___ 13 years old.",
		"options": ["am", "is"], "answer": "am"}]}`

	cat, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "Choose the correct word.\nSentence: I ___ 13 years old.",
		cat.Item("x").Meta().Prompt)
}
