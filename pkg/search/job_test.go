package search_test

import (
	"testing"

	"github.com/corvid-chess/corvid/pkg/board"
	"github.com/corvid-chess/corvid/pkg/eval"
	"github.com/corvid-chess/corvid/pkg/search"
	"github.com/corvid-chess/corvid/pkg/ttable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobUpdateAlphaTracksBestMoveAndBound(t *testing.T) {
	j := search.NewJob(1, 4, 0, eval.Score(-100), eval.Score(100))

	m1 := board.Move{From: board.E2, To: board.E4}
	cut := j.UpdateAlpha(m1, eval.Score(10), nil)
	assert.False(t, cut)
	assert.True(t, j.HasLegalMove)
	assert.Equal(t, eval.Score(10), j.Alpha)
	assert.Equal(t, ttable.Exact, j.Bound)
}

func TestJobUpdateAlphaReportsBetaCut(t *testing.T) {
	j := search.NewJob(1, 4, 0, eval.Score(-100), eval.Score(50))

	m := board.Move{From: board.E2, To: board.E4}
	cut := j.UpdateAlpha(m, eval.Score(60), nil)
	assert.True(t, cut)
}

func TestJobBetaCutBelowRespectsPly(t *testing.T) {
	j := search.NewJob(1, 4, 0, eval.Score(-100), eval.Score(100))
	assert.False(t, j.BetaCutBelow(3))

	j.BroadcastCut(3)
	assert.True(t, j.BetaCutBelow(3))
	assert.True(t, j.BetaCutBelow(5))
	assert.False(t, j.BetaCutBelow(2))

	j.ClearCut()
	assert.False(t, j.BetaCutBelow(3))
}

func TestJobNextMoveDrainsPicker(t *testing.T) {
	moves := []board.Move{
		{From: board.E2, To: board.E4},
		{From: board.D2, To: board.D4},
	}
	list := board.NewMoveList(moves, func(board.Move) board.MovePriority { return 0 })

	j := search.NewJob(1, 4, 0, eval.Score(-100), eval.Score(100))
	j.Picker = list

	seen := 0
	for {
		_, n, ok := j.NextMove()
		if !ok {
			break
		}
		seen++
		require.Equal(t, seen, n)
	}
	require.Equal(t, len(moves), seen)
}

func TestJobBoundStartsAsUpperBound(t *testing.T) {
	j := search.NewJob(1, 4, 0, eval.Score(-100), eval.Score(100))
	assert.Equal(t, ttable.UpperBound, j.Bound)
}
