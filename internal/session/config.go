package session

import (
	"math"

	"github.com/abhisek/engliz/internal/bank"
)

const (
	// DefaultMaxItems is the global cap on scored items per session.
	DefaultMaxItems = 50

	// DefaultMaxLevelFails ends the session after this many failed blocks
	// at the lowest level.
	DefaultMaxLevelFails = 2

	// DefaultEarlyStopWrong closes a block as failed once this many wrong
	// answers make the outcome clear.
	DefaultEarlyStopWrong = 3
)

// Config holds the session tuning knobs.
type Config struct {
	// StartLevel is the band the first block is administered at.
	StartLevel bank.Level

	// MaxItems is the global scored-item cap.
	MaxItems int

	// MaxLevelFails is the fail limit at the lowest level.
	MaxLevelFails int

	// EarlyStopWrong is the wrong-answer count that fails a block early.
	EarlyStopWrong int
}

// DefaultConfig returns the standard session configuration: start at B1,
// cap at 50 items.
func DefaultConfig() Config {
	return Config{
		StartLevel:     bank.LevelB1,
		MaxItems:       DefaultMaxItems,
		MaxLevelFails:  DefaultMaxLevelFails,
		EarlyStopWrong: DefaultEarlyStopWrong,
	}
}

// BlockSizeFor returns the block size for a band: 12 for the top two bands,
// 10 otherwise.
func BlockSizeFor(lvl bank.Level) int {
	switch lvl {
	case bank.LevelC1, bank.LevelC2:
		return 12
	}
	return 10
}

// ThresholdFor returns the promotion threshold for a block size, rounded
// up: 80% for standard blocks, 75% for the longer advanced blocks.
func ThresholdFor(size int) int {
	ratio := 0.8
	if size >= 12 {
		ratio = 0.75
	}
	return int(math.Ceil(float64(size) * ratio))
}
