package uci

import "testing"

func TestPliesToMoves(t *testing.T) {
	tests := []struct {
		plies int
		want  int
	}{
		{1, 1},
		{2, 1},
		{3, 2},
		{4, 2},
		{-1, -1},
		{-2, -1},
		{-3, -2},
		{-4, -2},
		{0, 0},
	}
	for _, tt := range tests {
		if got := pliesToMoves(tt.plies); got != tt.want {
			t.Errorf("pliesToMoves(%v) = %v, want %v", tt.plies, got, tt.want)
		}
	}
}
