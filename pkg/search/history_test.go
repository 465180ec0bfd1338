package search_test

import (
	"testing"

	"github.com/corvid-chess/corvid/pkg/board"
	"github.com/corvid-chess/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestHistoryRecordIgnoresNonQuietMoves(t *testing.T) {
	h := search.NewHistory()
	capture := board.Move{Type: board.Capture, From: board.D4, To: board.E5}

	h.Record(board.White, capture, 4)
	assert.Equal(t, uint32(0), h.Value(board.White, capture))
}

func TestHistoryRecordAccumulatesAndTracksMax(t *testing.T) {
	h := search.NewHistory()
	m := board.Move{From: board.B1, To: board.C3}

	h.Record(board.White, m, 4)
	first := h.Value(board.White, m)
	assert.Equal(t, h.Bonus(4), first)

	h.Record(board.White, m, 4)
	assert.Equal(t, 2*first, h.Value(board.White, m))
	assert.Equal(t, 2*first, h.Max())
}

func TestHistoryResetClearsTable(t *testing.T) {
	h := search.NewHistory()
	m := board.Move{From: board.B1, To: board.C3}
	h.Record(board.White, m, 4)

	h.Reset()
	assert.Equal(t, uint32(0), h.Value(board.White, m))
	assert.Equal(t, uint32(1), h.Max())
}

func TestKillersRecordAndIsKiller(t *testing.T) {
	k := search.NewKillers()
	first := board.Move{From: board.B1, To: board.C3}
	second := board.Move{From: board.G1, To: board.F3}

	assert.False(t, k.IsKiller(4, first))

	k.Record(4, first)
	assert.True(t, k.IsKiller(4, first))

	k.Record(4, second)
	assert.True(t, k.IsKiller(4, first))
	assert.True(t, k.IsKiller(4, second))
}

func TestKillersRecordSeedsTwoPliesAhead(t *testing.T) {
	k := search.NewKillers()
	m := board.Move{From: board.B1, To: board.C3}

	k.Record(4, m)
	assert.True(t, k.IsKiller(2, m))
}

func TestKillersRecordIgnoresNonQuietMoves(t *testing.T) {
	k := search.NewKillers()
	capture := board.Move{Type: board.Capture, From: board.D4, To: board.E5}

	k.Record(4, capture)
	assert.False(t, k.IsKiller(4, capture))
}
