package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/corvid-chess/corvid/pkg/board"
	"github.com/corvid-chess/corvid/pkg/board/fen"
	"github.com/corvid-chess/corvid/pkg/eval"
	"github.com/corvid-chess/corvid/pkg/params"
	"github.com/corvid-chess/corvid/pkg/search"
	"github.com/corvid-chess/corvid/pkg/ttable"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSerialWorker(t *testing.T, fenStr string) (*search.Worker, *board.Board) {
	t.Helper()
	p := fen.Parse(fenStr)
	b := board.NewBoard(board.NewZobristTable(0), p.Board, p.Turn, p.FullMoves)

	coord := search.NewCoordinator(ttable.New(1<<20), 0)
	coord.Stop = search.NewStopController(context.Background(), 0, 0, time.Time{}, false)
	coord.Reset(eval.NewCache(b.Position()))
	return search.NewWorker(coord, b), b
}

// TestNullWindowCorrectness checks that for beta = alpha+1, the returned score never lands
// strictly between them -- a null-window search can only fail low or fail high.
func TestNullWindowCorrectness(t *testing.T) {
	positions := []string{
		fen.Startpos,
		"r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 0 4",
	}
	for _, s := range positions {
		w, _ := newSerialWorker(t, s)
		alpha := eval.Score(0)
		beta := alpha + 1
		score, _ := w.Search(search.NonPVNode, 3, 0, alpha, beta)
		assert.True(t, score <= alpha || score >= beta, "null-window score %v landed inside (%v,%v) for %v", score, alpha, beta, s)
	}
}

// TestStartposDepth1 checks a depth-1 search from the starting position returns one of the 20
// legal opening moves.
func TestStartposDepth1(t *testing.T) {
	launcher := search.NewRootLauncher(1<<20, 1)
	p := fen.Parse(fen.Startpos)
	b := board.NewBoard(board.NewZobristTable(0), p.Board, p.Turn, p.FullMoves)

	_, out := launcher.Launch(context.Background(), b, search.Options{DepthLimit: lang.Some(1)})

	var last search.PV
	for pv := range out {
		last = pv
	}
	require.Equal(t, 1, last.Depth)
	require.NotEmpty(t, last.Moves)

	legal := board.NewBoard(board.NewZobristTable(0), p.Board, p.Turn, p.FullMoves)
	found := false
	for _, m := range legal.Position().PseudoLegalMoves(p.Turn) {
		if m.Equals(last.Moves[0]) {
			found = true
			break
		}
	}
	assert.True(t, found, "bestmove %v not a legal opening move", last.Moves[0])
}

// TestMateInOneIsReported checks that a forced mate-in-1 position is reported as a mate (nonzero
// MateIn) with the mating move as the PV's first move.
func TestMateInOneIsReported(t *testing.T) {
	launcher := search.NewRootLauncher(1<<20, 1)
	s := "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1" // Ra8# available
	p := fen.Parse(s)
	b := board.NewBoard(board.NewZobristTable(0), p.Board, p.Turn, p.FullMoves)

	_, out := launcher.Launch(context.Background(), b, search.Options{DepthLimit: lang.Some(3)})

	var last search.PV
	for pv := range out {
		last = pv
		if last.MateIn != 0 {
			break
		}
	}
	require.NotZero(t, last.MateIn)
	require.NotEmpty(t, last.Moves)

	want, err := board.ParseMove("a1a8")
	require.NoError(t, err)
	assert.True(t, last.Moves[0].Equals(want))
}

// TestParallelSearchExercisesHelperSharing forces a job to be published to a helper (two threads,
// depth above YBWCLimitDepth from a position with many legal moves) so playJobMoves/searchCandidate
// run on a helper goroutine rather than just the client loop, and checks the result is still a
// legal, complete PV.
func TestParallelSearchExercisesHelperSharing(t *testing.T) {
	launcher := search.NewRootLauncher(1<<20, 2)
	s := "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 0 4"
	p := fen.Parse(s)
	b := board.NewBoard(board.NewZobristTable(0), p.Board, p.Turn, p.FullMoves)

	_, out := launcher.Launch(context.Background(), b, search.Options{DepthLimit: lang.Some(params.YBWCLimitDepth + 2)})

	var last search.PV
	for pv := range out {
		last = pv
	}
	require.Equal(t, params.YBWCLimitDepth+2, last.Depth)
	require.NotEmpty(t, last.Moves)

	legal := board.NewBoard(board.NewZobristTable(0), p.Board, p.Turn, p.FullMoves)
	found := false
	for _, m := range legal.Position().PseudoLegalMoves(p.Turn) {
		if m.Equals(last.Moves[0]) {
			found = true
			break
		}
	}
	assert.True(t, found, "bestmove %v not a legal move", last.Moves[0])
}

func TestParamsFutilityMarginNeverFiresAboveBand(t *testing.T) {
	p := params.Default()
	assert.Greater(t, p.FutilityMarginAt(params.FutilityMaxDepth+5), 1<<20)
}
