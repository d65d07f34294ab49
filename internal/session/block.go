package session

import "github.com/abhisek/engliz/internal/bank"

// BlockOutcome is the state of a block after the latest scored answer.
type BlockOutcome int

const (
	BlockOpen BlockOutcome = iota
	BlockPassed
	BlockFailed
)

// Block tracks one fixed-size batch of items administered at one level.
// A block is created when a level is (re-)entered and replaced once it
// closes; `Correct + Wrong <= Presented <= Size` holds throughout.
type Block struct {
	Level     bank.Level `json:"level"`
	Size      int        `json:"size"`
	Threshold int        `json:"threshold"`
	FailLimit int        `json:"fail_limit"`

	Presented int `json:"presented"`
	Correct   int `json:"correct"`
	Wrong     int `json:"wrong"`

	// Used is the set of item ids already administered in this block.
	// The selector shares it and may clear it on pool exhaustion.
	Used map[string]bool `json:"used"`

	// RotationPos indexes into the level's skill rotation.
	RotationPos int `json:"rotation_pos"`
}

// NewBlock creates a fresh open block for a level.
func NewBlock(lvl bank.Level, failLimit int) *Block {
	size := BlockSizeFor(lvl)
	return &Block{
		Level:     lvl,
		Size:      size,
		Threshold: ThresholdFor(size),
		FailLimit: failLimit,
		Used:      make(map[string]bool),
	}
}

// Record folds one scored answer into the block and returns the resulting
// outcome. The block passes as soon as the threshold is reached, fails
// early once FailLimit wrong answers arrive, and otherwise closes by
// threshold when full.
func (b *Block) Record(correct bool) BlockOutcome {
	b.Presented++
	if correct {
		b.Correct++
	} else {
		b.Wrong++
	}
	return b.outcome()
}

func (b *Block) outcome() BlockOutcome {
	if b.Correct >= b.Threshold {
		return BlockPassed
	}
	if b.Wrong >= b.FailLimit {
		// Early stop: passing is already out of reach in practice;
		// don't spend the remaining slots.
		return BlockFailed
	}
	if b.Presented >= b.Size {
		return BlockFailed
	}
	return BlockOpen
}

// Result snapshots the closed block for the session log.
func (b *Block) Result(passed bool) BlockResult {
	return BlockResult{
		Level:     b.Level,
		Size:      b.Size,
		Threshold: b.Threshold,
		Presented: b.Presented,
		Correct:   b.Correct,
		Wrong:     b.Wrong,
		Passed:    passed,
	}
}

// BlockResult is one closed block in the session log.
type BlockResult struct {
	Level     bank.Level `json:"level"`
	Size      int        `json:"size"`
	Threshold int        `json:"threshold"`
	Presented int        `json:"presented"`
	Correct   int        `json:"correct"`
	Wrong     int        `json:"wrong"`
	Passed    bool       `json:"passed"`
}
