package bank

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalBank = `{
  "B1": [
    {
      "id": "b1-mc-1",
      "level": "B1",
      "skill": "grammar",
      "type": "multiple_choice",
      "prompt": "She ___ to school every day.",
      "options": ["goes", "go", "going"],
      "answer": "goes",
      "explanation": "Third person singular takes -s."
    },
    {
      "id": "b1-cloze-1",
      "level": "B1",
      "skill": "use_of_english",
      "type": "cloze_with_choices",
      "prompt": "Fill each gap.",
      "gaps": [
        {"number": 1, "answer": "in", "options": ["in", "on", "at"]},
        {"number": 2, "answer": "since", "options": ["since", "for"]}
      ]
    },
    {
      "id": "b1-open-1",
      "level": "B1",
      "skill": "vocabulary",
      "type": "cloze_open",
      "prompt": "Write one word per gap.",
      "gaps": [{"number": 1, "answer": "been"}]
    },
    {
      "id": "b1-wf-1",
      "level": "B1",
      "skill": "vocabulary",
      "type": "word_formation",
      "prompt": "Form a word from the base.",
      "entries": [{"number": 1, "base_word": "decide", "answer": "decision"}]
    }
  ],
  "B2": [
    {
      "id": "b2-kt-1",
      "level": "B2",
      "skill": "use_of_english",
      "type": "key_transformation",
      "prompt": "Rewrite using the keyword.",
      "entries": [
        {
          "number": 1,
          "sentence": "It is years since I saw her.",
          "keyword": "seen",
          "answer": "I have not seen her for years",
          "alternatives": ["I haven't seen her for years"]
        }
      ]
    },
    {
      "id": "b2-wr-1",
      "level": "B2",
      "skill": "writing",
      "type": "open_writing",
      "prompt": "Write an email to a friend.",
      "task_type": "email",
      "min_words": 40,
      "max_words": 60,
      "rubric": ["covers the task", "appropriate register"]
    },
    {
      "id": "b2-rd-1",
      "level": "B2",
      "skill": "reading",
      "type": "multiple_choice",
      "prompt": "What does the author imply?",
      "options": ["regret", "relief"],
      "answer": "relief",
      "group_id": "b2-passage-1",
      "passage": "The storm had finally passed."
    },
    {
      "id": "b2-rd-2",
      "level": "B2",
      "skill": "reading",
      "type": "multiple_choice",
      "prompt": "Why had the town waited?",
      "options": ["fear", "curiosity"],
      "answer": "fear",
      "group_id": "b2-passage-1"
    }
  ]
}`

func TestLoad_ValidBank(t *testing.T) {
	cat, err := Load(strings.NewReader(minimalBank))
	require.NoError(t, err)

	assert.Equal(t, 8, cat.Len())
	assert.Equal(t, []Level{LevelB1, LevelB2}, cat.Levels())
	assert.Len(t, cat.Items(LevelB1), 4)
	assert.Len(t, cat.Items(LevelB2), 4)
	assert.Len(t, cat.Items(LevelA1), 0)

	mc, ok := cat.Item("b1-mc-1").(*MultipleChoice)
	require.True(t, ok, "b1-mc-1 should decode as *MultipleChoice")
	assert.Equal(t, "goes", mc.Answer)
	assert.Equal(t, SkillGrammar, mc.Meta().Skill)

	kt, ok := cat.Item("b2-kt-1").(*KeyTransformation)
	require.True(t, ok, "b2-kt-1 should decode as *KeyTransformation")
	require.Len(t, kt.Entries, 1)
	assert.Equal(t, []string{"I haven't seen her for years"}, kt.Entries[0].Alternatives)

	wr, ok := cat.Item("b2-wr-1").(*OpenWriting)
	require.True(t, ok, "b2-wr-1 should decode as *OpenWriting")
	assert.Equal(t, 40, wr.MinWords)
	assert.Equal(t, 60, wr.MaxWords)

	group := cat.Group("b2-passage-1")
	require.Len(t, group, 2)
	assert.Equal(t, "The storm had finally passed.", group[0].Meta().Passage)
}

func TestLoad_UnknownItem(t *testing.T) {
	cat, err := Load(strings.NewReader(minimalBank))
	require.NoError(t, err)
	assert.Nil(t, cat.Item("no-such-item"))
	assert.Nil(t, cat.Group("no-such-group"))
	assert.Nil(t, cat.Items(LevelC2))
}

func TestLoadWith_MinItemsPerLevel(t *testing.T) {
	_, err := LoadWith(strings.NewReader(minimalBank), Config{MinItemsPerLevel: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "need at least 5")

	_, err = LoadWith(strings.NewReader(minimalBank), Config{MinItemsPerLevel: 4})
	assert.NoError(t, err)
}

func TestLoad_RejectsInvalidBanks(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "not json",
			doc:     `{`,
			wantErr: "invalid JSON",
		},
		{
			name:    "unknown level key",
			doc:     `{"B3": []}`,
			wantErr: "catalog schema",
		},
		{
			name: "missing prompt",
			doc: `{"A1": [{"id": "x", "level": "A1", "skill": "grammar",
				"type": "multiple_choice", "options": ["a", "b"], "answer": "a"}]}`,
			wantErr: "catalog schema",
		},
		{
			name: "bad item type",
			doc: `{"A1": [{"id": "x", "level": "A1", "skill": "grammar",
				"type": "essay", "prompt": "p"}]}`,
			wantErr: "catalog schema",
		},
		{
			name: "duplicate id",
			doc: `{"A1": [
				{"id": "x", "level": "A1", "skill": "grammar", "type": "multiple_choice",
				 "prompt": "p", "options": ["a", "b"], "answer": "a"},
				{"id": "x", "level": "A1", "skill": "grammar", "type": "multiple_choice",
				 "prompt": "p", "options": ["a", "b"], "answer": "a"}]}`,
			wantErr: "duplicate item id",
		},
		{
			name: "level mismatch",
			doc: `{"A1": [{"id": "x", "level": "B2", "skill": "grammar",
				"type": "multiple_choice", "prompt": "p", "options": ["a", "b"], "answer": "a"}]}`,
			wantErr: "declared",
		},
		{
			name: "writing skill without open_writing type",
			doc: `{"A1": [{"id": "x", "level": "A1", "skill": "writing",
				"type": "multiple_choice", "prompt": "p", "options": ["a", "b"], "answer": "a"}]}`,
			wantErr: "writing items must use type",
		},
		{
			name: "open_writing type without writing skill",
			doc: `{"A1": [{"id": "x", "level": "A1", "skill": "grammar",
				"type": "open_writing", "prompt": "p", "task_type": "email",
				"min_words": 10, "max_words": 20, "rubric": ["r"]}]}`,
			wantErr: "must declare skill",
		},
		{
			name: "answer not in options",
			doc: `{"A1": [{"id": "x", "level": "A1", "skill": "grammar",
				"type": "multiple_choice", "prompt": "p", "options": ["a", "b"], "answer": "c"}]}`,
			wantErr: "not present in options",
		},
		{
			name: "single option",
			doc: `{"A1": [{"id": "x", "level": "A1", "skill": "grammar",
				"type": "multiple_choice", "prompt": "p", "options": ["a"], "answer": "a"}]}`,
			wantErr: "at least two options",
		},
		{
			name: "duplicate option",
			doc: `{"A1": [{"id": "x", "level": "A1", "skill": "grammar",
				"type": "multiple_choice", "prompt": "p", "options": ["a", "a"], "answer": "a"}]}`,
			wantErr: "duplicate option",
		},
		{
			name: "cloze gap answer not in its options",
			doc: `{"A1": [{"id": "x", "level": "A1", "skill": "grammar",
				"type": "cloze_with_choices", "prompt": "p",
				"gaps": [{"number": 1, "answer": "z", "options": ["a", "b"]}]}]}`,
			wantErr: "not present in its options",
		},
		{
			name: "cloze_open gap with options",
			doc: `{"A1": [{"id": "x", "level": "A1", "skill": "grammar",
				"type": "cloze_open", "prompt": "p",
				"gaps": [{"number": 1, "answer": "a", "options": ["a", "b"]}]}]}`,
			wantErr: "must not define options",
		},
		{
			name: "duplicate gap number",
			doc: `{"A1": [{"id": "x", "level": "A1", "skill": "grammar",
				"type": "cloze_open", "prompt": "p",
				"gaps": [{"number": 1, "answer": "a"}, {"number": 1, "answer": "b"}]}]}`,
			wantErr: "duplicate gap number",
		},
		{
			name: "word_formation without entries",
			doc: `{"A1": [{"id": "x", "level": "A1", "skill": "vocabulary",
				"type": "word_formation", "prompt": "p"}]}`,
			wantErr: "required for word_formation",
		},
		{
			name: "key_transformation entry missing keyword",
			doc: `{"A1": [{"id": "x", "level": "A1", "skill": "use_of_english",
				"type": "key_transformation", "prompt": "p",
				"entries": [{"number": 1, "sentence": "s", "answer": "a"}]}]}`,
			wantErr: "missing keyword",
		},
		{
			name: "open_writing with answer payload",
			doc: `{"A1": [{"id": "x", "level": "A1", "skill": "writing",
				"type": "open_writing", "prompt": "p", "answer": "a",
				"task_type": "email", "min_words": 10, "max_words": 20, "rubric": ["r"]}]}`,
			wantErr: "must not define",
		},
		{
			name: "open_writing max below min",
			doc: `{"A1": [{"id": "x", "level": "A1", "skill": "writing",
				"type": "open_writing", "prompt": "p",
				"task_type": "email", "min_words": 50, "max_words": 20, "rubric": ["r"]}]}`,
			wantErr: "min_words",
		},
		{
			name: "open_writing empty rubric",
			doc: `{"A1": [{"id": "x", "level": "A1", "skill": "writing",
				"type": "open_writing", "prompt": "p",
				"task_type": "email", "min_words": 10, "max_words": 20, "rubric": []}]}`,
			wantErr: "non-empty list",
		},
		{
			name: "group spanning levels",
			doc: `{"A1": [
				{"id": "x", "level": "A1", "skill": "grammar", "type": "multiple_choice",
				 "prompt": "p", "options": ["a", "b"], "answer": "a", "group_id": "g1"}],
			"A2": [
				{"id": "y", "level": "A2", "skill": "grammar", "type": "multiple_choice",
				 "prompt": "p", "options": ["a", "b"], "answer": "a", "group_id": "g1"}]}`,
			wantErr: "spans levels",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCatalog_ItemsReturnsCopy(t *testing.T) {
	cat, err := Load(strings.NewReader(minimalBank))
	require.NoError(t, err)

	items := cat.Items(LevelB1)
	items[0] = nil
	assert.NotNil(t, cat.Items(LevelB1)[0], "mutating the returned slice must not touch the catalog")
}

func TestItemError_Format(t *testing.T) {
	err := itemErr("b1-mc-1", "answer", "required for %s", "multiple_choice")
	var ie *ItemError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "b1-mc-1", ie.ItemID)
	assert.Equal(t, `item "b1-mc-1": field "answer": required for multiple_choice`, err.Error())
}
