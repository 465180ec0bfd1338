package board_test

import (
	"testing"

	"github.com/corvid-chess/corvid/pkg/board"
	"github.com/corvid-chess/corvid/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoard(t *testing.T, s string) *board.Board {
	t.Helper()
	p := fen.Parse(s)
	return board.NewBoard(board.NewZobristTable(0), p.Board, p.Turn, p.FullMoves)
}

// TestMakeUnmakeRoundTrip checks that PopMove restores the hash and side to move for every legal
// move from a handful of positions, including ones with castling and en passant rights in play.
func TestMakeUnmakeRoundTrip(t *testing.T) {
	positions := []string{
		fen.Startpos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}

	for _, s := range positions {
		b := newBoard(t, s)
		before := b.Hash()
		turn := b.Turn()

		for _, m := range b.Position().PseudoLegalMoves(turn) {
			if !b.PushMove(m) {
				continue
			}
			popped, ok := b.PopMove()
			require.True(t, ok)
			assert.Equal(t, m, popped)
			assert.Equal(t, before, b.Hash(), "hash not restored after %v on %v", m, s)
			assert.Equal(t, turn, b.Turn(), "turn not restored after %v on %v", m, s)
		}
	}
}

// TestZobristHashInvariance checks that a sequence of make/unmake pairs returning to the starting
// position reproduces the same hash as a board built from scratch at that position.
func TestZobristHashInvariance(t *testing.T) {
	b := newBoard(t, fen.Startpos)
	fresh := newBoard(t, fen.Startpos)
	require.Equal(t, fresh.Hash(), b.Hash())

	moves := []string{"e2e4", "e7e5", "g1f3", "b8c6"}
	for _, s := range moves {
		m, err := board.ParseMove(s)
		require.NoError(t, err)

		applied := false
		for _, cand := range b.Position().PseudoLegalMoves(b.Turn()) {
			if cand.Equals(m) && b.PushMove(cand) {
				applied = true
				break
			}
		}
		require.True(t, applied, "move %v not legal", s)
	}
	for range moves {
		_, ok := b.PopMove()
		require.True(t, ok)
	}

	assert.Equal(t, fresh.Hash(), b.Hash())
}

// TestRepetitionDetection checks that returning to a position via A-B-A-B move cycling is
// reported once it has recurred often enough to be a draw.
func TestRepetitionDetection(t *testing.T) {
	b := newBoard(t, fen.Startpos)

	cycle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	play := func() {
		for _, s := range cycle {
			m, err := board.ParseMove(s)
			require.NoError(t, err)
			for _, cand := range b.Position().PseudoLegalMoves(b.Turn()) {
				if cand.Equals(m) {
					require.True(t, b.PushMove(cand))
					break
				}
			}
		}
	}

	assert.False(t, b.IsRepetition(3))
	play()
	assert.False(t, b.IsRepetition(3))
	play()
	assert.True(t, b.IsRepetition(3))
}

func TestFENRoundTrip(t *testing.T) {
	s := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	p := fen.Parse(s)
	assert.Equal(t, s, fen.Format(p.Board, p.Turn, p.NoProgress, p.FullMoves))
}

func TestFENParseMalformedFallsBackToStartpos(t *testing.T) {
	p := fen.Parse("not a fen string")
	assert.Equal(t, fen.Parse(fen.Startpos), p)
}
