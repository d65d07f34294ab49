package scorer

import (
	"fmt"
	"strings"

	"github.com/abhisek/engliz/internal/bank"
	"github.com/abhisek/engliz/internal/writing"
)

// Incomplete describes why a response cannot be scored yet. It is a
// recoverable warning: session state stays untouched and the host can
// re-prompt with the listed elements.
type Incomplete struct {
	ItemID string

	// Missing lists the unanswered element numbers (gap, entry, or 1 for
	// a missing multiple-choice selection / empty writing text).
	Missing []int

	// WordCount is set for open_writing responses whose length is out of
	// range, together with the allowed bounds.
	WordCount int
	MinWords  int
	MaxWords  int
}

func (e *Incomplete) Error() string {
	if e.WordCount > 0 || (e.MinWords > 0 && len(e.Missing) == 0) {
		return fmt.Sprintf("item %q: word count %d outside range [%d, %d]",
			e.ItemID, e.WordCount, e.MinWords, e.MaxWords)
	}
	parts := make([]string, len(e.Missing))
	for i, n := range e.Missing {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("item %q: unanswered elements: %s", e.ItemID, strings.Join(parts, ", "))
}

// CheckComplete reports whether a response is ready to be scored. Returns
// nil when every required element has a non-empty answer and, for writing,
// the word count falls within the item's bounds.
func CheckComplete(item bank.Item, resp Response) *Incomplete {
	id := item.Meta().ID

	switch it := item.(type) {
	case *bank.MultipleChoice:
		if strings.TrimSpace(resp.Option) == "" {
			return &Incomplete{ItemID: id, Missing: []int{1}}
		}
		return nil

	case *bank.ClozeChoices:
		return missingGaps(id, gapNumbers(it.Gaps), resp.Fields)

	case *bank.ClozeOpen:
		return missingGaps(id, gapNumbers(it.Gaps), resp.Fields)

	case *bank.WordFormation:
		nums := make([]int, len(it.Entries))
		for i, e := range it.Entries {
			nums[i] = e.Number
		}
		return missingGaps(id, nums, resp.Fields)

	case *bank.KeyTransformation:
		nums := make([]int, len(it.Entries))
		for i, e := range it.Entries {
			nums[i] = e.Number
		}
		return missingGaps(id, nums, resp.Fields)

	case *bank.OpenWriting:
		if strings.TrimSpace(resp.Text) == "" {
			return &Incomplete{ItemID: id, Missing: []int{1}, MinWords: it.MinWords, MaxWords: it.MaxWords}
		}
		wc := WordCount(resp.Text)
		if wc < it.MinWords || wc > it.MaxWords {
			return &Incomplete{ItemID: id, WordCount: wc, MinWords: it.MinWords, MaxWords: it.MaxWords}
		}
		return nil

	default:
		return nil
	}
}

// missingGaps collects the element numbers with no non-empty answer.
func missingGaps(itemID string, numbers []int, fields map[int]string) *Incomplete {
	var missing []int
	for _, n := range numbers {
		if strings.TrimSpace(fields[n]) == "" {
			missing = append(missing, n)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &Incomplete{ItemID: itemID, Missing: missing}
}

func gapNumbers(gaps []bank.Gap) []int {
	nums := make([]int, len(gaps))
	for i, g := range gaps {
		nums[i] = g.Number
	}
	return nums
}

// WordCount counts word tokens for writing-task bounds, with the same
// tokenization the writing evaluator reports.
func WordCount(text string) int {
	return writing.WordCount(text)
}
