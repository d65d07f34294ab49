// Package session runs the adaptive test: it administers fixed-size blocks
// of items, folds scored answers into the block state machine, and applies
// the promotion rules across the CEFR ladder until a level is confirmed or
// the item cap is reached.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/abhisek/engliz/internal/bank"
	"github.com/abhisek/engliz/internal/scorer"
	"github.com/abhisek/engliz/internal/selector"
	"github.com/abhisek/engliz/internal/writing"
)

// ErrFinished is returned when an operation is attempted on a session that
// has already finalized.
var ErrFinished = errors.New("session already finished")

// Options configures an Engine.
type Options struct {
	// Rand seeds item selection and option shuffling. Nil uses an
	// arbitrary seed; inject a fixed source to replay a session.
	Rand rand.Source

	// WritingScorer evaluates open writing submissions. Nil degrades to
	// the pending-review marker.
	WritingScorer writing.Scorer

	// Logger receives engine events. Nil uses slog.Default().
	Logger *slog.Logger

	// Config overrides the session tuning. Nil uses DefaultConfig().
	Config *Config
}

// Engine administers sessions over one immutable catalog. It holds no
// per-session state; every operation takes the explicit *State.
type Engine struct {
	catalog *bank.Catalog
	sel     *selector.Selector
	writer  writing.Scorer
	cfg     Config
	logger  *slog.Logger
}

// New creates an engine over a validated catalog.
func New(catalog *bank.Catalog, opts Options) *Engine {
	src := opts.Rand
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	writer := opts.WritingScorer
	if writer == nil {
		writer = writing.Pending{}
	}
	cfg := DefaultConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	return &Engine{
		catalog: catalog,
		sel:     selector.New(catalog, src, logger),
		writer:  writer,
		cfg:     cfg,
		logger:  logger,
	}
}

// Start creates a new session state with an open block at the start level.
func (e *Engine) Start() *State {
	st := &State{
		ID:         uuid.NewString(),
		LevelIndex: bank.LevelIndex(e.cfg.StartLevel),
		PassCounts: make(map[bank.Level]int),
		FailCounts: make(map[bank.Level]int),
	}
	st.Block = NewBlock(st.Level(), e.cfg.EarlyStopWrong)
	return st
}

// NextPresentation picks the next item instance (or passage group) for the
// session's current block, following the level's skill rotation.
func (e *Engine) NextPresentation(st *State) (*selector.Presentation, error) {
	if st.Finished {
		return nil, ErrFinished
	}
	b := st.Block
	rotation := selector.Rotation(b.Level)
	desired := rotation[b.RotationPos%len(rotation)]
	pres, err := e.sel.Next(b.Level, desired, b.Used)
	if err != nil {
		return nil, err
	}
	b.RotationPos++
	return pres, nil
}

// SubmitResult reports what one submission did to the session.
type SubmitResult struct {
	// Incomplete is set when the response could not be scored; session
	// state is unchanged and the host should re-prompt.
	Incomplete *scorer.Incomplete

	// Score is the grading result for a complete response.
	Score *scorer.Result

	// Writing carries the rubric evaluation for open_writing items.
	Writing *writing.Evaluation

	// BlockClosed and BlockPassed report a block transition caused by
	// this submission.
	BlockClosed bool
	BlockPassed bool

	// Finished is true when this submission ended the session.
	Finished bool
}

// Submit grades a raw response and folds it into the session. Incomplete
// responses return a warning without touching state.
func (e *Engine) Submit(st *State, itemID string, resp scorer.Response) (*SubmitResult, error) {
	if st.Finished {
		return nil, ErrFinished
	}
	item := e.catalog.Item(itemID)
	if item == nil {
		return nil, fmt.Errorf("unknown item id %q", itemID)
	}
	if lvl := item.Meta().Level; lvl != st.Block.Level {
		// A passage group can straddle a block close; leftover members
		// belong to the old band and must not feed the new block.
		return nil, fmt.Errorf("item %q is calibrated for %s, current block tests %s",
			itemID, lvl, st.Block.Level)
	}

	if inc := scorer.CheckComplete(item, resp); inc != nil {
		return &SubmitResult{Incomplete: inc}, nil
	}

	score, err := scorer.Score(item, resp)
	if err != nil {
		return nil, err
	}
	res := &SubmitResult{Score: score}

	if ow, ok := item.(*bank.OpenWriting); ok {
		ev := e.writer.Evaluate(ow, resp.Text)
		res.Writing = &ev
		st.WritingResults = append(st.WritingResults, WritingRecord{ItemID: itemID, Evaluation: ev})
	}

	b := st.Block
	outcome := b.Record(score.Correct)
	st.TotalItems++
	st.History = append(st.History, AnswerRecord{
		Level:   b.Level,
		ItemID:  itemID,
		Skill:   item.Meta().Skill,
		Correct: score.Correct,
	})

	if outcome != BlockOpen {
		passed := outcome == BlockPassed
		st.BlockResults = append(st.BlockResults, b.Result(passed))
		res.BlockClosed = true
		res.BlockPassed = passed
		e.logger.Debug("block closed",
			"level", b.Level, "passed", passed,
			"correct", b.Correct, "wrong", b.Wrong, "presented", b.Presented)
		e.applyBlockResult(st, passed)
	}

	if !st.Finished && st.TotalItems >= e.cfg.MaxItems {
		e.finalizeAtCap(st)
	}

	res.Finished = st.Finished
	return res, nil
}

// applyBlockResult applies the promotion rules after a block closes. A level
// is confirmed by a second passed block at that level, or by a fail directly
// above a passed level.
func (e *Engine) applyBlockResult(st *State, passed bool) {
	lvl := st.Level()

	if passed {
		st.PassCounts[lvl]++
		if st.PassCounts[lvl] >= 2 {
			e.finalize(st, lvl, true)
			return
		}
		if lvl == bank.LevelC2 {
			e.finalize(st, lvl, true)
			return
		}
		st.LevelIndex++
		st.Block = NewBlock(st.Level(), e.cfg.EarlyStopWrong)
		return
	}

	st.FailCounts[lvl]++

	if st.LevelIndex == 0 {
		if st.FailCounts[lvl] >= e.cfg.MaxLevelFails {
			e.finalize(st, lvl, false)
			return
		}
		st.Block = NewBlock(lvl, e.cfg.EarlyStopWrong)
		return
	}

	prev := bank.LevelAt(st.LevelIndex - 1)
	if st.PassCounts[prev] > 0 {
		// The candidate proved prev and could not hold the level above
		// it: prev is the confirmed result.
		e.finalize(st, prev, true)
		return
	}

	// No pass recorded below (the session started here or higher):
	// demote and keep probing.
	st.LevelIndex--
	st.Block = NewBlock(st.Level(), e.cfg.EarlyStopWrong)
}

// finalizeAtCap ends the session at the item cap with the best-guess band:
// the highest level with a recorded pass, unconfirmed.
func (e *Engine) finalizeAtCap(st *State) {
	best := st.Level()
	for _, lvl := range bank.AllLevels() {
		if st.PassCounts[lvl] > 0 {
			best = lvl
		}
	}
	e.logger.Debug("item cap reached", "cap", e.cfg.MaxItems, "best_guess", best)
	e.finalize(st, best, false)
}

func (e *Engine) finalize(st *State, lvl bank.Level, confirmed bool) {
	if st.Finished {
		return
	}
	st.Finished = true
	st.FinalLevel = lvl
	st.Confirmed = confirmed
	st.LevelIndex = bank.LevelIndex(lvl)
	st.Block = nil
	e.logger.Debug("session finalized", "level", lvl, "confirmed", confirmed, "items", st.TotalItems)
}
