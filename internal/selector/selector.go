// Package selector draws item presentations from a validated catalog. All
// randomness flows through an injected source so a seeded session replays
// identically.
package selector

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/abhisek/engliz/internal/bank"
)

// PresentedItem is one catalog item prepared for display: option orders are
// freshly shuffled per presentation and the catalog entry is never mutated.
type PresentedItem struct {
	Item bank.Item

	// Options holds the shuffled option order for multiple_choice items.
	Options []string

	// GapOptions holds shuffled per-gap option orders for
	// cloze_with_choices items, keyed by gap number.
	GapOptions map[int][]string
}

// Presentation is what the host shows next: a single item, or a whole
// passage group presented together.
type Presentation struct {
	// GroupID is set when the presentation is a passage group.
	GroupID string

	// Passage is the shared text for grouped comprehension items.
	Passage string

	// Items holds the prepared items, one entry for standalone items.
	Items []PresentedItem
}

// Selector picks the next unused item (or group) at a level.
type Selector struct {
	catalog *bank.Catalog
	rng     *rand.Rand
	logger  *slog.Logger
}

// New creates a selector over a catalog. src drives all shuffling and
// sampling; logger may be nil for the default.
func New(catalog *bank.Catalog, src rand.Source, logger *slog.Logger) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{
		catalog: catalog,
		rng:     rand.New(src),
		logger:  logger,
	}
}

// Rotation returns the skill rotation sequence for a level. Writing joins
// the rotation for B2 and the two highest bands.
func Rotation(lvl bank.Level) []bank.Skill {
	base := []bank.Skill{bank.SkillGrammar, bank.SkillVocabulary, bank.SkillReading, bank.SkillUseOfEnglish}
	switch lvl {
	case bank.LevelB2, bank.LevelC1, bank.LevelC2:
		return append(base, bank.SkillWriting)
	}
	return base
}

// Next returns an unused presentation at the level, preferring the desired
// skill. Fallback order: unused item of the desired skill, any unused item,
// then, if the level's pool is exhausted within the block, the used set is
// cleared and the pool restarts. Items belonging to a passage group are
// returned together and marked used as a unit.
//
// Next records the returned item ids in used; callers share that set with
// the active block.
func (s *Selector) Next(level bank.Level, desired bank.Skill, used map[string]bool) (*Presentation, error) {
	pool := s.catalog.Items(level)
	if len(pool) == 0 {
		return nil, fmt.Errorf("no items available at level %s", level)
	}

	item := s.pick(pool, desired, used)
	if item == nil {
		// Not an error: a long block can outrun a small pool. Restart it
		// rather than dead-ending the session.
		s.logger.Info("item pool exhausted, restarting", "level", level)
		clear(used)
		item = s.pick(pool, desired, used)
	}
	if item == nil {
		return nil, fmt.Errorf("no selectable items at level %s", level)
	}

	pres := &Presentation{}
	members := []bank.Item{item}
	if gid := item.Meta().GroupID; gid != "" {
		members = s.catalog.Group(gid)
		pres.GroupID = gid
		for _, m := range members {
			if p := m.Meta().Passage; p != "" {
				pres.Passage = p
				break
			}
		}
	}

	for _, m := range members {
		used[m.Meta().ID] = true
		pres.Items = append(pres.Items, s.present(m))
	}
	return pres, nil
}

// pick chooses uniformly at random among unused items of the desired skill,
// falling back to any unused item. Returns nil when everything is used.
func (s *Selector) pick(pool []bank.Item, desired bank.Skill, used map[string]bool) bank.Item {
	var unused, matching []bank.Item
	for _, it := range pool {
		if used[it.Meta().ID] {
			continue
		}
		unused = append(unused, it)
		if it.Meta().Skill == desired {
			matching = append(matching, it)
		}
	}
	if len(matching) > 0 {
		return matching[s.rng.IntN(len(matching))]
	}
	if len(unused) > 0 {
		return unused[s.rng.IntN(len(unused))]
	}
	return nil
}

// present builds the per-presentation instance with shuffled option orders.
func (s *Selector) present(item bank.Item) PresentedItem {
	pi := PresentedItem{Item: item}
	switch it := item.(type) {
	case *bank.MultipleChoice:
		pi.Options = s.shuffled(it.Options)
	case *bank.ClozeChoices:
		pi.GapOptions = make(map[int][]string, len(it.Gaps))
		for _, g := range it.Gaps {
			pi.GapOptions[g.Number] = s.shuffled(g.Options)
		}
	}
	return pi
}

func (s *Selector) shuffled(options []string) []string {
	out := slices.Clone(options)
	s.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
