// Package scorer grades raw candidate responses against validated bank
// items. Scoring is pure: no session state is read or written here.
package scorer

import (
	"fmt"
	"strings"

	"github.com/abhisek/engliz/internal/bank"
)

// Response carries a candidate's raw answer for one item. The field that
// matters depends on the item type: Option for multiple_choice, Fields
// (keyed by gap/entry number) for the composite types, Text for
// open_writing.
type Response struct {
	Option string
	Fields map[int]string
	Text   string
}

// ElementResult is the per-gap / per-entry breakdown of a scored response.
type ElementResult struct {
	Number  int
	Given   string
	Want    string
	Correct bool
}

// Result is the outcome of scoring one complete response.
type Result struct {
	// Correct is the overall verdict. Composite items require every
	// element correct; open_writing is always accepted here and carries
	// its rubric evaluation separately.
	Correct bool

	// Breakdown lists per-element results for composite items. Single
	// element for multiple_choice, nil for open_writing.
	Breakdown []ElementResult
}

// Score grades a complete response against an item. Callers must run
// CheckComplete first; Score assumes every required element is present.
func Score(item bank.Item, resp Response) (*Result, error) {
	switch it := item.(type) {
	case *bank.MultipleChoice:
		correct := resp.Option == it.Answer
		return &Result{
			Correct: correct,
			Breakdown: []ElementResult{
				{Number: 1, Given: resp.Option, Want: it.Answer, Correct: correct},
			},
		}, nil

	case *bank.ClozeChoices:
		return scoreGaps(it.Gaps, resp.Fields, false), nil

	case *bank.ClozeOpen:
		return scoreGaps(it.Gaps, resp.Fields, true), nil

	case *bank.WordFormation:
		res := &Result{Correct: true}
		for _, e := range it.Entries {
			given := resp.Fields[e.Number]
			ok := Normalize(given) == Normalize(e.Answer)
			if !ok {
				res.Correct = false
			}
			res.Breakdown = append(res.Breakdown, ElementResult{
				Number: e.Number, Given: given, Want: e.Answer, Correct: ok,
			})
		}
		return res, nil

	case *bank.KeyTransformation:
		res := &Result{Correct: true}
		for _, e := range it.Entries {
			given := resp.Fields[e.Number]
			ok := matchesAny(given, e.Answer, e.Alternatives)
			if !ok {
				res.Correct = false
			}
			res.Breakdown = append(res.Breakdown, ElementResult{
				Number: e.Number, Given: given, Want: e.Answer, Correct: ok,
			})
		}
		return res, nil

	case *bank.OpenWriting:
		// Writing is never right/wrong; it is accepted for block
		// progression and evaluated by the writing scorer.
		return &Result{Correct: true}, nil

	default:
		return nil, fmt.Errorf("unsupported item type %q", item.Type())
	}
}

// scoreGaps grades cloze gaps. Choice gaps compare exactly; open gaps
// compare after normalization.
func scoreGaps(gaps []bank.Gap, fields map[int]string, normalized bool) *Result {
	res := &Result{Correct: true}
	for _, g := range gaps {
		given := fields[g.Number]
		var ok bool
		if normalized {
			ok = Normalize(given) == Normalize(g.Answer)
		} else {
			ok = given == g.Answer
		}
		if !ok {
			res.Correct = false
		}
		res.Breakdown = append(res.Breakdown, ElementResult{
			Number: g.Number, Given: given, Want: g.Answer, Correct: ok,
		})
	}
	return res
}

// matchesAny reports whether the given text matches the canonical answer or
// any accepted alternative, after normalization.
func matchesAny(given, answer string, alternatives []string) bool {
	norm := Normalize(given)
	if norm == Normalize(answer) {
		return true
	}
	for _, alt := range alternatives {
		if norm == Normalize(alt) {
			return true
		}
	}
	return false
}

// Normalize prepares free-text answers for comparison: trim, collapse
// internal whitespace, lowercase.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
