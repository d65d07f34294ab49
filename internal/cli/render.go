// Package cli renders engine output for the line-oriented terminal host.
package cli

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/engliz/internal/bank"
	"github.com/abhisek/engliz/internal/selector"
	"github.com/abhisek/engliz/internal/session"
	"github.com/abhisek/engliz/internal/writing"
)

var (
	title   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6"))
	passage = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8")).Italic(true)
	prompt  = lipgloss.NewStyle().Bold(true)
	option  = lipgloss.NewStyle().Foreground(lipgloss.Color("#14B8A6"))
	good    = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	bad     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F43F5E"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	warn    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316"))
)

// Header renders the session banner.
func Header(lvl bank.Level, presented, size int) string {
	return title.Render(fmt.Sprintf("Level %s · question %d of %d", lvl, presented, size))
}

// Passage renders the shared text of a grouped presentation.
func Passage(p *selector.Presentation) string {
	var b strings.Builder
	if p.GroupID != "" {
		b.WriteString(dim.Render(fmt.Sprintf("Reading set %s", p.GroupID)))
		b.WriteString("\n")
	}
	b.WriteString(passage.Render(p.Passage))
	return b.String()
}

// Item renders one presented item with its shuffled options.
func Item(pi selector.PresentedItem) string {
	var b strings.Builder
	meta := pi.Item.Meta()
	b.WriteString(prompt.Render(meta.Prompt))
	b.WriteString("\n")

	switch it := pi.Item.(type) {
	case *bank.MultipleChoice:
		for i, opt := range pi.Options {
			b.WriteString(option.Render(fmt.Sprintf("  %d) %s", i+1, opt)))
			b.WriteString("\n")
		}
	case *bank.ClozeChoices:
		for _, n := range sortedGapNumbers(pi.GapOptions) {
			b.WriteString(fmt.Sprintf("  gap %d: %s\n", n, option.Render(strings.Join(pi.GapOptions[n], " / "))))
		}
	case *bank.ClozeOpen:
		b.WriteString(dim.Render(fmt.Sprintf("  %d gap(s); type each answer when asked", len(it.Gaps))))
		b.WriteString("\n")
	case *bank.WordFormation:
		for _, e := range it.Entries {
			b.WriteString(fmt.Sprintf("  %d. base word: %s\n", e.Number, option.Render(e.BaseWord)))
		}
	case *bank.KeyTransformation:
		for _, e := range it.Entries {
			b.WriteString(fmt.Sprintf("  %d. %s\n     keyword: %s\n", e.Number, e.Sentence, option.Render(e.Keyword)))
		}
	case *bank.OpenWriting:
		b.WriteString(dim.Render(fmt.Sprintf("  %s: write %d to %d words; finish with a single '.' line",
			it.TaskType, it.MinWords, it.MaxWords)))
		b.WriteString("\n")
	}
	return b.String()
}

// Result renders the verdict for a scored submission.
func Result(res *session.SubmitResult, item bank.Item) string {
	var b strings.Builder
	if res.Writing != nil {
		b.WriteString(Evaluation(res.Writing))
	} else if res.Score.Correct {
		b.WriteString(good.Render("Correct!"))
	} else {
		b.WriteString(bad.Render("Not quite."))
		for _, el := range res.Score.Breakdown {
			if !el.Correct {
				b.WriteString(dim.Render(fmt.Sprintf("  #%d: expected %q", el.Number, el.Want)))
				b.WriteString("\n")
			}
		}
		if exp := item.Meta().Explanation; exp != "" {
			b.WriteString(dim.Render("  " + exp))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Evaluation renders a writing rubric result.
func Evaluation(ev *writing.Evaluation) string {
	if ev.Pending {
		return warn.Render("Submission recorded; pending manual review.")
	}
	var b strings.Builder
	b.WriteString(good.Render(fmt.Sprintf("Writing score %.1f/5 (estimated band %s)", ev.Overall, ev.Band)))
	b.WriteString("\n")
	b.WriteString(dim.Render(fmt.Sprintf(
		"  task %.1f · vocabulary %.1f · complexity %.1f · cohesion %.1f · %d words",
		ev.TaskCoverage, ev.LexicalVariety, ev.Complexity, ev.Cohesion, ev.WordCount)))
	return b.String()
}

// Warn renders a recoverable submission warning.
func Warn(msg string) string {
	return warn.Render(msg)
}

// Summary renders the end-of-session report.
func Summary(sum session.Summary) string {
	var b strings.Builder
	if sum.Confirmed {
		b.WriteString(title.Render(fmt.Sprintf("Estimated level: %s (confirmed)", sum.FinalLevel)))
	} else {
		b.WriteString(title.Render(fmt.Sprintf("Estimated level: %s (best guess)", sum.FinalLevel)))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Answered %d of %d questions correctly.\n", sum.TotalCorrect, sum.TotalItems))

	for _, br := range sum.BlockResults {
		verdict := bad.Render("fail")
		if br.Passed {
			verdict = good.Render("pass")
		}
		b.WriteString(fmt.Sprintf("  %s: %d/%d correct (threshold %d): %s\n",
			br.Level, br.Correct, br.Presented, br.Threshold, verdict))
	}

	for _, skill := range bank.AllSkills() {
		if stat, ok := sum.SkillStats[skill]; ok {
			b.WriteString(dim.Render(fmt.Sprintf("  %-15s %d/%d", skill, stat.Correct, stat.Attempted)))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func sortedGapNumbers(m map[int][]string) []int {
	nums := make([]int, 0, len(m))
	for n := range m {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}
