package session

import (
	"github.com/abhisek/engliz/internal/bank"
	"github.com/abhisek/engliz/internal/writing"
)

// AnswerRecord is one scored answer in the chronological history.
type AnswerRecord struct {
	Level   bank.Level `json:"level"`
	ItemID  string     `json:"item_id"`
	Skill   bank.Skill `json:"skill"`
	Correct bool       `json:"correct"`
}

// WritingRecord pairs a writing submission with its rubric evaluation.
type WritingRecord struct {
	ItemID     string             `json:"item_id"`
	Evaluation writing.Evaluation `json:"evaluation"`
}

// State is the complete mutable state of one test session. It is plain
// data: the engine holds no other per-session state, so a host can
// serialize a State between turns and resume it later. All fields are
// managed by the engine; hosts should treat them as read-only.
type State struct {
	ID string `json:"id"`

	// LevelIndex is the current position in the CEFR ladder.
	LevelIndex int `json:"level_index"`

	// Block is the currently open block; nil once the session finished.
	Block *Block `json:"block,omitempty"`

	// PassCounts and FailCounts track closed blocks per band.
	PassCounts map[bank.Level]int `json:"pass_counts"`
	FailCounts map[bank.Level]int `json:"fail_counts"`

	History        []AnswerRecord  `json:"history"`
	BlockResults   []BlockResult   `json:"block_results"`
	WritingResults []WritingRecord `json:"writing_results,omitempty"`

	// TotalItems counts scored submissions toward the session cap.
	TotalItems int `json:"total_items"`

	Finished   bool       `json:"finished"`
	FinalLevel bank.Level `json:"final_level,omitempty"`
	Confirmed  bool       `json:"confirmed"`
}

// Level returns the band the session is currently testing at (or finished
// at).
func (st *State) Level() bank.Level {
	return bank.LevelAt(st.LevelIndex)
}
