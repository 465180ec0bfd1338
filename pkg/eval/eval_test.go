package eval_test

import (
	"testing"

	"github.com/corvid-chess/corvid/pkg/board"
	"github.com/corvid-chess/corvid/pkg/board/fen"
	"github.com/corvid-chess/corvid/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoard(t *testing.T, s string) *board.Board {
	t.Helper()
	p := fen.Parse(s)
	return board.NewBoard(board.NewZobristTable(0), p.Board, p.Turn, p.FullMoves)
}

func TestMaterialBalanceIsZeroAtStartpos(t *testing.T) {
	p := fen.Parse(fen.Startpos)
	assert.Equal(t, eval.Draw, eval.Material(p.Board, board.White))
	assert.Equal(t, eval.Draw, eval.Material(p.Board, board.Black))
}

func TestMaterialFavorsTheSideUpMaterial(t *testing.T) {
	p := fen.Parse("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	assert.True(t, eval.Material(p.Board, board.White) > 0)
	assert.True(t, eval.Material(p.Board, board.Black) < 0)
}

func TestComputePhaseIsMaxAtStartposAndZeroWithBareKings(t *testing.T) {
	full := fen.Parse(fen.Startpos)
	bare := fen.Parse("4k3/8/8/8/8/8/8/4K3 w - - 0 1")

	assert.Equal(t, eval.Phase(24), eval.ComputePhase(full.Board))
	assert.Equal(t, eval.Phase(0), eval.ComputePhase(bare.Board))
}

// TestComputePhaseNeverExceedsTotal checks the clamp holds even with an implausible excess of
// officers on the board (promotions left uncapped by FEN parsing).
func TestComputePhaseNeverExceedsTotal(t *testing.T) {
	p := fen.Parse("QQQQQQQQ/QQQQQQQQ/QQQQQQQQ/QQQQQQQQ/8/4K3/8/4k3 w - - 0 1")
	phase := eval.ComputePhase(p.Board)
	assert.LessOrEqual(t, int(phase), 24)
}

func TestStandardEvaluateIsNonMateAroundStartpos(t *testing.T) {
	b := newBoard(t, fen.Startpos)
	s := eval.Standard{Cache: eval.NewCache(b.Position())}

	white := s.Evaluate(b)
	require.True(t, b.PushMove(mustMove(t, b, "e2e4")))
	black := s.Evaluate(b)

	// Material/PST/mobility terms are symmetric about the startpos; the only asymmetry after one
	// move is the tempo captured by whichever evaluation terms reward development, so we only
	// assert both sides return a well-formed (non-mate) centipawn score, not an exact relation.
	_, whiteMate := white.MateIn()
	_, blackMate := black.MateIn()
	assert.False(t, whiteMate)
	assert.False(t, blackMate)
}

func TestStandardEvaluateFavorsMaterialAdvantage(t *testing.T) {
	b := newBoard(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	s := eval.Standard{Cache: eval.NewCache(b.Position())}
	assert.True(t, s.Evaluate(b) > 0)
}

func mustMove(t *testing.T, b *board.Board, s string) board.Move {
	t.Helper()
	m, err := board.ParseMove(s)
	require.NoError(t, err)
	for _, cand := range b.Position().PseudoLegalMoves(b.Turn()) {
		if cand.Equals(m) {
			return cand
		}
	}
	t.Fatalf("move %v not legal", s)
	return board.Move{}
}

func TestScoreMateInReportsCorrectDistance(t *testing.T) {
	mateNow := eval.Mated(0)
	d, ok := mateNow.MateIn()
	require.True(t, ok)
	assert.Equal(t, -2, d)

	mateSoon := eval.Mated(2)
	d, ok = mateSoon.MateIn()
	require.True(t, ok)
	assert.Equal(t, -4, d)
}

func TestScoreCropClampsToBounds(t *testing.T) {
	assert.Equal(t, eval.MaxScore, eval.Crop(eval.MaxScore+500))
	assert.Equal(t, eval.MinScore, eval.Crop(eval.MinScore-500))
	assert.Equal(t, eval.Score(42), eval.Crop(42))
}

func TestUnitSignMatchesColor(t *testing.T) {
	assert.Equal(t, eval.Score(1), eval.Unit(board.White))
	assert.Equal(t, eval.Score(-1), eval.Unit(board.Black))
}
