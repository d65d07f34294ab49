package bank

// Level represents a CEFR proficiency band.
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
)

// AllLevels returns the six CEFR bands in ascending order.
func AllLevels() []Level {
	return []Level{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}
}

// LevelIndex returns the position of lvl in the CEFR ladder (0 = A1),
// or -1 if lvl is not a known band.
func LevelIndex(lvl Level) int {
	for i, l := range AllLevels() {
		if l == lvl {
			return i
		}
	}
	return -1
}

// LevelAt returns the band at the given ladder position, clamped to [A1, C2].
func LevelAt(index int) Level {
	levels := AllLevels()
	if index < 0 {
		return levels[0]
	}
	if index >= len(levels) {
		return levels[len(levels)-1]
	}
	return levels[index]
}

// Skill represents a tested language skill.
type Skill string

const (
	SkillGrammar      Skill = "grammar"
	SkillVocabulary   Skill = "vocabulary"
	SkillReading      Skill = "reading"
	SkillUseOfEnglish Skill = "use_of_english"
	SkillWriting      Skill = "writing"
)

// AllSkills returns all skills in rotation order (writing last).
func AllSkills() []Skill {
	return []Skill{SkillGrammar, SkillVocabulary, SkillReading, SkillUseOfEnglish, SkillWriting}
}

// ItemType identifies the shape of an item's payload and expected response.
type ItemType string

const (
	TypeMultipleChoice    ItemType = "multiple_choice"
	TypeClozeChoices      ItemType = "cloze_with_choices"
	TypeClozeOpen         ItemType = "cloze_open"
	TypeWordFormation     ItemType = "word_formation"
	TypeKeyTransformation ItemType = "key_transformation"
	TypeOpenWriting       ItemType = "open_writing"
)

// Core holds the fields shared by every item regardless of type.
type Core struct {
	// ID is the globally unique item identifier.
	ID string

	// Level is the CEFR band the item is calibrated for.
	Level Level

	// Skill is the language skill the item tests.
	Skill Skill

	// Prompt is the instruction or question text shown to the candidate.
	Prompt string

	// Explanation is an optional post-answer explanation. Empty if absent.
	Explanation string

	// GroupID links items that share a reading passage. Empty for
	// standalone items.
	GroupID string

	// Passage is the shared text for grouped comprehension items.
	Passage string

	// Part is an optional exam-part label (e.g. "Part 3").
	Part string

	// EstimatedSecs is an optional time estimate. Zero if absent.
	EstimatedSecs int
}

// Item is the common interface over the six item shapes. Concrete types are
// MultipleChoice, ClozeChoices, ClozeOpen, WordFormation, KeyTransformation
// and OpenWriting; callers dispatch with a type switch.
type Item interface {
	// Meta returns the shared item fields.
	Meta() Core

	// Type returns the item's wire-format type tag.
	Type() ItemType
}

// Gap is one numbered blank inside a cloze item.
type Gap struct {
	Number  int
	Answer  string
	Options []string // only for cloze_with_choices
}

// Formation is one numbered base-word transformation entry.
type Formation struct {
	Number   int
	BaseWord string
	Answer   string
}

// Transformation is one numbered sentence-rewrite entry. The rewrite must
// use Keyword; Answer is canonical and Alternatives are also accepted.
type Transformation struct {
	Number       int
	Sentence     string
	Keyword      string
	Answer       string
	Alternatives []string
}

// MultipleChoice is a single-answer option item.
type MultipleChoice struct {
	Core
	Options []string
	Answer  string
}

func (it *MultipleChoice) Meta() Core     { return it.Core }
func (it *MultipleChoice) Type() ItemType { return TypeMultipleChoice }

// ClozeChoices is a fill-in-the-blank item where each gap has its own
// option list.
type ClozeChoices struct {
	Core
	Gaps []Gap
}

func (it *ClozeChoices) Meta() Core     { return it.Core }
func (it *ClozeChoices) Type() ItemType { return TypeClozeChoices }

// ClozeOpen is a fill-in-the-blank item answered with free text per gap.
type ClozeOpen struct {
	Core
	Gaps []Gap
}

func (it *ClozeOpen) Meta() Core     { return it.Core }
func (it *ClozeOpen) Type() ItemType { return TypeClozeOpen }

// WordFormation asks the candidate to derive the correct form of a base word
// for each numbered entry.
type WordFormation struct {
	Core
	Entries []Formation
}

func (it *WordFormation) Meta() Core     { return it.Core }
func (it *WordFormation) Type() ItemType { return TypeWordFormation }

// KeyTransformation asks the candidate to rewrite sentences using a given
// keyword.
type KeyTransformation struct {
	Core
	Entries []Transformation
}

func (it *KeyTransformation) Meta() Core     { return it.Core }
func (it *KeyTransformation) Type() ItemType { return TypeKeyTransformation }

// OpenWriting is a free-text writing task scored by rubric rather than
// right/wrong.
type OpenWriting struct {
	Core
	TaskType string
	MinWords int
	MaxWords int
	Rubric   []string
}

func (it *OpenWriting) Meta() Core     { return it.Core }
func (it *OpenWriting) Type() ItemType { return TypeOpenWriting }
