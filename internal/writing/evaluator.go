// Package writing estimates a rubric score and CEFR band for open writing
// tasks from surface text statistics. It never produces a right/wrong
// verdict; block progression treats an in-range submission as accepted.
package writing

import (
	"math"

	"github.com/abhisek/engliz/internal/bank"
)

const (
	// PassThreshold is the overall score at which a submission counts as
	// passing the rubric.
	PassThreshold = 3.0

	// referenceSentenceLen is the average sentence length (in words) the
	// cohesion component treats as ideal.
	referenceSentenceLen = 18.0

	// maxGrade is the readability grade mapped to the top of the
	// complexity scale.
	maxGrade = 12.0
)

// Evaluation is the heuristic rubric result for one writing submission.
// All component scores are on a 0-5 scale.
type Evaluation struct {
	// Pending is true when no heuristic scorer is configured; the
	// submission awaits manual review and the numeric fields are zero.
	Pending bool

	TaskCoverage   float64
	LexicalVariety float64
	Complexity     float64
	Cohesion       float64

	// Overall is the mean of the four components.
	Overall float64

	// Band is the estimated CEFR band for this piece of writing.
	Band bank.Level

	// Pass reports Overall >= PassThreshold.
	Pass bool

	WordCount int
}

// Scorer evaluates free-text writing. The engine treats it as an optional
// capability: when absent, submissions degrade to a pending-review marker
// instead of a score.
type Scorer interface {
	Evaluate(item *bank.OpenWriting, text string) Evaluation
}

// Heuristic scores writing with deterministic text statistics. Safe for
// concurrent use; it holds no state.
type Heuristic struct{}

// NewHeuristic returns the default heuristic writing scorer.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// Evaluate computes the four component scores and the band estimate.
func (h *Heuristic) Evaluate(item *bank.OpenWriting, text string) Evaluation {
	st := Analyze(text)

	ev := Evaluation{
		TaskCoverage:   taskCoverage(st.Words, item.MinWords, item.MaxWords),
		LexicalVariety: lexicalVariety(st),
		Complexity:     complexity(st),
		Cohesion:       cohesion(st),
		WordCount:      st.Words,
	}
	ev.Overall = (ev.TaskCoverage + ev.LexicalVariety + ev.Complexity + ev.Cohesion) / 4
	ev.Band = bandFor(ev.Overall)
	ev.Pass = ev.Overall >= PassThreshold
	return ev
}

// Pending is the fallback scorer used when no heuristic is configured. Every
// submission is marked for manual review.
type Pending struct{}

func (Pending) Evaluate(item *bank.OpenWriting, text string) Evaluation {
	return Evaluation{Pending: true, WordCount: Analyze(text).Words}
}

// taskCoverage scores how well the length serves the task: the ratio of
// actual to minimum word count, penalized once the maximum is exceeded.
func taskCoverage(words, minWords, maxWords int) float64 {
	if minWords <= 0 {
		return 0
	}
	score := clamp(float64(words)/float64(minWords), 0, 1) * 5
	if maxWords > 0 && words > maxWords {
		over := float64(words-maxWords) / float64(maxWords)
		score -= over * 5
	}
	return clamp(score, 0, 5)
}

// lexicalVariety scores the ratio of distinct to total word tokens.
func lexicalVariety(st Stats) float64 {
	if st.Words == 0 {
		return 0
	}
	return clamp(float64(st.DistinctWords)/float64(st.Words), 0, 1) * 5
}

// complexity maps a Flesch-Kincaid grade estimate onto the 0-5 scale, with
// grade 12 and above pinned to the top.
func complexity(st Stats) float64 {
	if st.Words == 0 || st.Sentences == 0 {
		return 0
	}
	grade := 0.39*(float64(st.Words)/float64(st.Sentences)) +
		11.8*(float64(st.Syllables)/float64(st.Words)) - 15.59
	return clamp(grade, 0, maxGrade) / maxGrade * 5
}

// cohesion scores how close the average sentence length sits to the
// reference length, decaying exponentially with distance.
func cohesion(st Stats) float64 {
	if st.Sentences == 0 {
		return 0
	}
	avg := float64(st.Words) / float64(st.Sentences)
	return 5 * math.Exp(-math.Abs(avg-referenceSentenceLen)/(referenceSentenceLen/2))
}

// bandFor maps an overall rubric score to a CEFR band estimate.
func bandFor(overall float64) bank.Level {
	switch {
	case overall >= 4.3:
		return bank.LevelC1
	case overall >= 3.6:
		return bank.LevelB2
	case overall >= 2.8:
		return bank.LevelB1
	case overall >= 2.0:
		return bank.LevelA2
	default:
		return bank.LevelA1
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
