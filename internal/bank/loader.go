package bank

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Config controls catalog loading.
type Config struct {
	// MinItemsPerLevel rejects any present level with fewer items.
	// Zero disables the check (useful for small fixtures); the validate
	// command applies the production minimum.
	MinItemsPerLevel int
}

// DefaultConfig returns the default loader configuration.
func DefaultConfig() Config {
	return Config{MinItemsPerLevel: 0}
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// compileSchema compiles the catalog schema once and caches it.
func compileSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value (any), not
		// raw bytes. Marshal then unmarshal to get a clean representation.
		defBytes, err := json.Marshal(catalogSchema)
		if err != nil {
			schemaErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			schemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://item-catalog.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// wire-format item as decoded from JSON, before invariant checks.
type wireItem struct {
	ID            string      `json:"id"`
	Level         string      `json:"level"`
	Skill         string      `json:"skill"`
	Type          string      `json:"type"`
	Prompt        string      `json:"prompt"`
	Options       []string    `json:"options"`
	Answer        string      `json:"answer"`
	Gaps          []wireGap   `json:"gaps"`
	Entries       []wireEntry `json:"entries"`
	TaskType      string      `json:"task_type"`
	MinWords      int         `json:"min_words"`
	MaxWords      int         `json:"max_words"`
	Rubric        []string    `json:"rubric"`
	Explanation   string      `json:"explanation"`
	GroupID       string      `json:"group_id"`
	Passage       string      `json:"passage"`
	Part          string      `json:"part"`
	EstimatedTime int         `json:"estimated_time"`
}

type wireGap struct {
	Number  int      `json:"number"`
	Answer  string   `json:"answer"`
	Options []string `json:"options"`
}

type wireEntry struct {
	Number       int      `json:"number"`
	Answer       string   `json:"answer"`
	BaseWord     string   `json:"base_word"`
	Sentence     string   `json:"sentence"`
	Keyword      string   `json:"keyword"`
	Alternatives []string `json:"alternatives"`
}

// Load reads, validates and freezes an item catalog from r using the
// default configuration.
func Load(r io.Reader) (*Catalog, error) {
	return LoadWith(r, DefaultConfig())
}

// LoadFile loads a catalog from a JSON file on disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open item bank: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// LoadWith reads the catalog document from r, prevalidates it against the
// catalog JSON schema, decodes it into typed items and enforces the
// cross-field invariants. The first violation anywhere aborts the load.
func LoadWith(r io.Reader, cfg Config) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read item bank: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON in item bank: %w", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("catalog schema: %w", err)
	}

	var doc map[string][]wireItem
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode item bank: %w", err)
	}

	cat := &Catalog{
		levels:  make(map[Level][]Item),
		byID:    make(map[string]Item),
		byGroup: make(map[string][]Item),
	}
	seen := make(map[string]bool)
	groupLevels := make(map[string]Level)

	for _, lvl := range AllLevels() {
		items, ok := doc[string(lvl)]
		if !ok {
			continue
		}
		if cfg.MinItemsPerLevel > 0 && len(items) < cfg.MinItemsPerLevel {
			return nil, fmt.Errorf("level %s has %d items, need at least %d",
				lvl, len(items), cfg.MinItemsPerLevel)
		}
		for i := range items {
			item, err := buildItem(&items[i], lvl, seen, groupLevels)
			if err != nil {
				return nil, err
			}
			cat.levels[lvl] = append(cat.levels[lvl], item)
			cat.byID[item.Meta().ID] = item
			if gid := item.Meta().GroupID; gid != "" {
				cat.byGroup[gid] = append(cat.byGroup[gid], item)
			}
		}
	}

	slog.Debug("item bank loaded", "items", cat.Len(), "levels", len(cat.Levels()))
	return cat, nil
}

// buildItem converts one wire item into its typed form, enforcing every
// per-item invariant along the way.
func buildItem(w *wireItem, lvl Level, seen map[string]bool, groupLevels map[string]Level) (Item, error) {
	if seen[w.ID] {
		return nil, itemErr(w.ID, "id", "duplicate item id")
	}
	seen[w.ID] = true

	if Level(w.Level) != lvl {
		return nil, itemErr(w.ID, "level", "declared %q but stored under %q", w.Level, lvl)
	}

	skill := Skill(w.Skill)
	typ := ItemType(w.Type)
	if skill == SkillWriting && typ != TypeOpenWriting {
		return nil, itemErr(w.ID, "type", "writing items must use type %q", TypeOpenWriting)
	}
	if typ == TypeOpenWriting && skill != SkillWriting {
		return nil, itemErr(w.ID, "skill", "open_writing items must declare skill %q", SkillWriting)
	}

	if w.GroupID != "" {
		if prev, ok := groupLevels[w.GroupID]; ok && prev != lvl {
			return nil, itemErr(w.ID, "group_id", "group %q spans levels %s and %s", w.GroupID, prev, lvl)
		}
		groupLevels[w.GroupID] = lvl
	}

	core := Core{
		ID:            w.ID,
		Level:         lvl,
		Skill:         skill,
		Prompt:        cleanPrompt(w.Prompt),
		Explanation:   w.Explanation,
		GroupID:       w.GroupID,
		Passage:       w.Passage,
		Part:          w.Part,
		EstimatedSecs: w.EstimatedTime,
	}

	switch typ {
	case TypeMultipleChoice:
		if err := checkOptions(w.ID, "options", w.Options); err != nil {
			return nil, err
		}
		if w.Answer == "" {
			return nil, itemErr(w.ID, "answer", "required for multiple_choice")
		}
		if !slices.Contains(w.Options, w.Answer) {
			return nil, itemErr(w.ID, "answer", "%q is not present in options", w.Answer)
		}
		return &MultipleChoice{Core: core, Options: cloneStrings(w.Options), Answer: w.Answer}, nil

	case TypeClozeChoices:
		gaps, err := buildGaps(w, true)
		if err != nil {
			return nil, err
		}
		return &ClozeChoices{Core: core, Gaps: gaps}, nil

	case TypeClozeOpen:
		gaps, err := buildGaps(w, false)
		if err != nil {
			return nil, err
		}
		return &ClozeOpen{Core: core, Gaps: gaps}, nil

	case TypeWordFormation:
		if len(w.Entries) == 0 {
			return nil, itemErr(w.ID, "entries", "required for word_formation")
		}
		entries := make([]Formation, 0, len(w.Entries))
		nums := make(map[int]bool)
		for i := range w.Entries {
			e := &w.Entries[i]
			if nums[e.Number] {
				return nil, itemErr(w.ID, "entries", "duplicate entry number %d", e.Number)
			}
			nums[e.Number] = true
			if e.BaseWord == "" {
				return nil, itemErr(w.ID, "entries", "entry %d is missing base_word", e.Number)
			}
			entries = append(entries, Formation{Number: e.Number, BaseWord: e.BaseWord, Answer: e.Answer})
		}
		return &WordFormation{Core: core, Entries: entries}, nil

	case TypeKeyTransformation:
		if len(w.Entries) == 0 {
			return nil, itemErr(w.ID, "entries", "required for key_transformation")
		}
		entries := make([]Transformation, 0, len(w.Entries))
		nums := make(map[int]bool)
		for i := range w.Entries {
			e := &w.Entries[i]
			if nums[e.Number] {
				return nil, itemErr(w.ID, "entries", "duplicate entry number %d", e.Number)
			}
			nums[e.Number] = true
			if e.Sentence == "" {
				return nil, itemErr(w.ID, "entries", "entry %d is missing sentence", e.Number)
			}
			if e.Keyword == "" {
				return nil, itemErr(w.ID, "entries", "entry %d is missing keyword", e.Number)
			}
			entries = append(entries, Transformation{
				Number:       e.Number,
				Sentence:     e.Sentence,
				Keyword:      e.Keyword,
				Answer:       e.Answer,
				Alternatives: cloneStrings(e.Alternatives),
			})
		}
		return &KeyTransformation{Core: core, Entries: entries}, nil

	case TypeOpenWriting:
		if len(w.Options) > 0 || w.Answer != "" || len(w.Gaps) > 0 || len(w.Entries) > 0 {
			return nil, itemErr(w.ID, "payload", "open_writing items must not define options, answer, gaps or entries")
		}
		if w.TaskType == "" {
			return nil, itemErr(w.ID, "task_type", "required for open_writing")
		}
		if w.MinWords <= 0 {
			return nil, itemErr(w.ID, "min_words", "must be a positive integer")
		}
		if w.MaxWords < w.MinWords {
			return nil, itemErr(w.ID, "max_words", "must be >= min_words (%d)", w.MinWords)
		}
		if len(w.Rubric) == 0 {
			return nil, itemErr(w.ID, "rubric", "must be a non-empty list")
		}
		for i, crit := range w.Rubric {
			if crit == "" {
				return nil, itemErr(w.ID, "rubric", "criterion #%d is empty", i+1)
			}
		}
		return &OpenWriting{
			Core:     core,
			TaskType: w.TaskType,
			MinWords: w.MinWords,
			MaxWords: w.MaxWords,
			Rubric:   cloneStrings(w.Rubric),
		}, nil

	default:
		// Unreachable after schema prevalidation; kept for direct callers.
		return nil, itemErr(w.ID, "type", "unsupported item type %q", w.Type)
	}
}

// buildGaps validates and converts cloze gaps. withChoices selects between
// the two cloze shapes: per-gap option lists are required for
// cloze_with_choices and rejected for cloze_open.
func buildGaps(w *wireItem, withChoices bool) ([]Gap, error) {
	if len(w.Gaps) == 0 {
		return nil, itemErr(w.ID, "gaps", "required for %s", w.Type)
	}
	gaps := make([]Gap, 0, len(w.Gaps))
	nums := make(map[int]bool)
	for i := range w.Gaps {
		g := &w.Gaps[i]
		if nums[g.Number] {
			return nil, itemErr(w.ID, "gaps", "duplicate gap number %d", g.Number)
		}
		nums[g.Number] = true

		if withChoices {
			if err := checkOptions(w.ID, fmt.Sprintf("gaps[%d].options", g.Number), g.Options); err != nil {
				return nil, err
			}
			if !slices.Contains(g.Options, g.Answer) {
				return nil, itemErr(w.ID, "gaps", "gap %d answer %q is not present in its options", g.Number, g.Answer)
			}
		} else if len(g.Options) > 0 {
			return nil, itemErr(w.ID, "gaps", "gap %d must not define options for cloze_open", g.Number)
		}

		gaps = append(gaps, Gap{Number: g.Number, Answer: g.Answer, Options: cloneStrings(g.Options)})
	}
	return gaps, nil
}

// checkOptions enforces the option-list rules shared by all choice payloads:
// at least two options, all non-empty, no duplicates.
func checkOptions(itemID, field string, options []string) error {
	if len(options) < 2 {
		return itemErr(itemID, field, "must include at least two options")
	}
	seen := make(map[string]bool, len(options))
	for _, opt := range options {
		if opt == "" {
			return itemErr(itemID, field, "options must be non-empty strings")
		}
		if seen[opt] {
			return itemErr(itemID, field, "duplicate option %q", opt)
		}
		seen[opt] = true
	}
	return nil
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	return slices.Clone(in)
}
