package selector

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"testing"

	"github.com/abhisek/engliz/internal/bank"
)

func newTestSelector(t *testing.T, doc string, seed uint64) *Selector {
	t.Helper()
	cat, err := bank.Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return New(cat, rand.NewPCG(seed, 0), nil)
}

const selectorBank = `{
  "B1": [
    {"id": "g-1", "level": "B1", "skill": "grammar", "type": "multiple_choice",
     "prompt": "p", "options": ["a", "b", "c", "d"], "answer": "a"},
    {"id": "g-2", "level": "B1", "skill": "grammar", "type": "multiple_choice",
     "prompt": "p", "options": ["a", "b"], "answer": "b"},
    {"id": "v-1", "level": "B1", "skill": "vocabulary", "type": "multiple_choice",
     "prompt": "p", "options": ["a", "b"], "answer": "a"},
    {"id": "r-1", "level": "B1", "skill": "reading", "type": "multiple_choice",
     "prompt": "p", "options": ["a", "b"], "answer": "a",
     "group_id": "pg-1", "passage": "A short text."},
    {"id": "r-2", "level": "B1", "skill": "reading", "type": "multiple_choice",
     "prompt": "p", "options": ["a", "b"], "answer": "b", "group_id": "pg-1"},
    {"id": "u-1", "level": "B1", "skill": "use_of_english", "type": "cloze_with_choices",
     "prompt": "p", "gaps": [{"number": 1, "answer": "in", "options": ["in", "on", "at"]}]}
  ]
}`

func TestRotation(t *testing.T) {
	for _, lvl := range []bank.Level{bank.LevelA1, bank.LevelA2, bank.LevelB1} {
		rot := Rotation(lvl)
		if len(rot) != 4 {
			t.Errorf("Rotation(%s) has %d skills, want 4", lvl, len(rot))
		}
		for _, sk := range rot {
			if sk == bank.SkillWriting {
				t.Errorf("Rotation(%s) includes writing", lvl)
			}
		}
	}

	for _, lvl := range []bank.Level{bank.LevelB2, bank.LevelC1, bank.LevelC2} {
		rot := Rotation(lvl)
		if len(rot) != 5 || rot[4] != bank.SkillWriting {
			t.Errorf("Rotation(%s) = %v, want writing appended last", lvl, rot)
		}
	}
}

func TestNext_PrefersDesiredSkill(t *testing.T) {
	s := newTestSelector(t, selectorBank, 1)
	used := make(map[string]bool)

	pres, err := s.Next(bank.LevelB1, bank.SkillVocabulary, used)
	if err != nil {
		t.Fatal(err)
	}
	if len(pres.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(pres.Items))
	}
	if got := pres.Items[0].Item.Meta().ID; got != "v-1" {
		t.Errorf("picked %q, want the only vocabulary item v-1", got)
	}
	if !used["v-1"] {
		t.Error("picked item should be marked used")
	}
}

func TestNext_FallsBackWhenSkillExhausted(t *testing.T) {
	s := newTestSelector(t, selectorBank, 1)
	used := map[string]bool{"v-1": true}

	pres, err := s.Next(bank.LevelB1, bank.SkillVocabulary, used)
	if err != nil {
		t.Fatal(err)
	}
	if got := pres.Items[0].Item.Meta().Skill; got == bank.SkillVocabulary {
		t.Errorf("picked another vocabulary item, want a fallback skill")
	}
}

func TestNext_ExpandsPassageGroup(t *testing.T) {
	s := newTestSelector(t, selectorBank, 1)
	used := make(map[string]bool)

	pres, err := s.Next(bank.LevelB1, bank.SkillReading, used)
	if err != nil {
		t.Fatal(err)
	}
	if pres.GroupID != "pg-1" {
		t.Fatalf("GroupID = %q, want pg-1", pres.GroupID)
	}
	if pres.Passage != "A short text." {
		t.Errorf("Passage = %q, want the group passage", pres.Passage)
	}
	if len(pres.Items) != 2 {
		t.Fatalf("got %d items, want the whole group of 2", len(pres.Items))
	}
	if !used["r-1"] || !used["r-2"] {
		t.Error("all group members should be marked used")
	}
}

func TestNext_RestartsExhaustedPool(t *testing.T) {
	s := newTestSelector(t, selectorBank, 1)
	used := map[string]bool{
		"g-1": true, "g-2": true, "v-1": true, "r-1": true, "r-2": true, "u-1": true,
	}

	pres, err := s.Next(bank.LevelB1, bank.SkillGrammar, used)
	if err != nil {
		t.Fatal(err)
	}
	if len(pres.Items) == 0 {
		t.Fatal("restarted pool should still serve items")
	}
	if got := pres.Items[0].Item.Meta().Skill; got != bank.SkillGrammar {
		t.Errorf("after restart picked skill %q, want grammar", got)
	}
}

func TestNext_EmptyLevel(t *testing.T) {
	s := newTestSelector(t, selectorBank, 1)
	if _, err := s.Next(bank.LevelC2, bank.SkillGrammar, map[string]bool{}); err == nil {
		t.Fatal("empty level should error")
	}
}

func TestNext_ShufflesWithoutMutatingCatalog(t *testing.T) {
	s := newTestSelector(t, selectorBank, 7)
	used := make(map[string]bool)

	pres, err := s.Next(bank.LevelB1, bank.SkillGrammar, used)
	if err != nil {
		t.Fatal(err)
	}
	pi := pres.Items[0]
	mc := pi.Item.(*bank.MultipleChoice)

	if len(pi.Options) != len(mc.Options) {
		t.Fatalf("presented %d options, want %d", len(pi.Options), len(mc.Options))
	}
	shuffled := append([]string(nil), pi.Options...)
	canonical := append([]string(nil), mc.Options...)
	sort.Strings(shuffled)
	sort.Strings(canonical)
	if fmt.Sprint(shuffled) != fmt.Sprint(canonical) {
		t.Errorf("presented options %v are not a permutation of %v", pi.Options, mc.Options)
	}
}

func TestNext_SeededReplay(t *testing.T) {
	var first []string
	for run := 0; run < 2; run++ {
		s := newTestSelector(t, selectorBank, 42)
		used := make(map[string]bool)
		var ids []string
		for i := 0; i < 4; i++ {
			pres, err := s.Next(bank.LevelB1, bank.SkillGrammar, used)
			if err != nil {
				t.Fatal(err)
			}
			for _, pi := range pres.Items {
				ids = append(ids, pi.Item.Meta().ID)
			}
		}
		if run == 0 {
			first = ids
			continue
		}
		if fmt.Sprint(ids) != fmt.Sprint(first) {
			t.Errorf("same seed produced different draws: %v vs %v", first, ids)
		}
	}
}
