package mapgen

import "testing"

func TestBlockRuneRoundTrip(t *testing.T) {
	tests := []struct {
		block BlockType
		r     rune
	}{
		{BlockHookable, '#'},
		{BlockEmpty, '.'},
		{BlockFreeze, 'x'},
		{BlockSpawn, 'S'},
		{BlockStart, '>'},
		{BlockFinish, '<'},
	}

	for _, tc := range tests {
		if got := tc.block.Rune(); got != tc.r {
			t.Errorf("%s.Rune() = %q, want %q", tc.block, got, tc.r)
		}
		back, err := BlockFromRune(tc.r)
		if err != nil {
			t.Fatalf("BlockFromRune(%q) failed: %v", tc.r, err)
		}
		if back != tc.block {
			t.Errorf("BlockFromRune(%q) = %s, want %s", tc.r, back, tc.block)
		}
	}
}

func TestBlockFromRuneUnknown(t *testing.T) {
	if _, err := BlockFromRune('q'); err == nil {
		t.Error("BlockFromRune('q') should fail")
	}
}

func TestBlockStringTotal(t *testing.T) {
	blocks := []BlockType{BlockHookable, BlockEmpty, BlockFreeze, BlockSpawn, BlockStart, BlockFinish}
	seen := make(map[string]bool)

	for _, b := range blocks {
		s := b.String()
		if s == "" {
			t.Errorf("BlockType(%d) has an empty String()", b)
		}
		if seen[s] {
			t.Errorf("duplicate String() %q", s)
		}
		seen[s] = true
	}
}
