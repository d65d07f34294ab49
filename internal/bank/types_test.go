package bank

import "testing"

func TestLevelIndex(t *testing.T) {
	tests := []struct {
		lvl  Level
		want int
	}{
		{LevelA1, 0},
		{LevelA2, 1},
		{LevelB1, 2},
		{LevelB2, 3},
		{LevelC1, 4},
		{LevelC2, 5},
		{Level("B3"), -1},
		{Level(""), -1},
	}

	for _, tt := range tests {
		got := LevelIndex(tt.lvl)
		if got != tt.want {
			t.Errorf("LevelIndex(%q) = %d, want %d", tt.lvl, got, tt.want)
		}
	}
}

func TestLevelAt_Clamps(t *testing.T) {
	tests := []struct {
		index int
		want  Level
	}{
		{-3, LevelA1},
		{-1, LevelA1},
		{0, LevelA1},
		{2, LevelB1},
		{5, LevelC2},
		{6, LevelC2},
		{99, LevelC2},
	}

	for _, tt := range tests {
		got := LevelAt(tt.index)
		if got != tt.want {
			t.Errorf("LevelAt(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestLevelRoundTrip(t *testing.T) {
	for i, lvl := range AllLevels() {
		if LevelAt(LevelIndex(lvl)) != lvl {
			t.Errorf("LevelAt(LevelIndex(%q)) != %q", lvl, lvl)
		}
		if LevelIndex(LevelAt(i)) != i {
			t.Errorf("LevelIndex(LevelAt(%d)) != %d", i, i)
		}
	}
}
