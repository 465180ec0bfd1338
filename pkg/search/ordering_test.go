package search_test

import (
	"testing"

	"github.com/corvid-chess/corvid/pkg/board"
	"github.com/corvid-chess/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestPriorityFnOrdersHashMoveFirst(t *testing.T) {
	hash := board.Move{From: board.E2, To: board.E4}
	quiet := board.Move{From: board.G1, To: board.F3}

	in := search.OrderingInputs{Hash: hash}
	fn := in.PriorityFn()

	assert.Greater(t, fn(hash), fn(quiet))
}

func TestPriorityFnOrdersGoodCapturesAboveQuiets(t *testing.T) {
	capture := board.Move{Type: board.Capture, From: board.D4, To: board.E5, Piece: board.Pawn, Capture: board.Pawn}
	quiet := board.Move{From: board.G1, To: board.F3, Piece: board.Knight}

	in := search.OrderingInputs{SEE: func(board.Move) int { return 100 }}
	fn := in.PriorityFn()

	assert.Greater(t, fn(capture), fn(quiet))
}

func TestPriorityFnOrdersLosingCapturesBelowQuiets(t *testing.T) {
	losingCapture := board.Move{Type: board.Capture, From: board.D4, To: board.E5, Piece: board.Queen, Capture: board.Pawn}
	quiet := board.Move{From: board.G1, To: board.F3, Piece: board.Knight}

	in := search.OrderingInputs{SEE: func(board.Move) int { return -800 }}
	fn := in.PriorityFn()

	assert.Less(t, fn(losingCapture), fn(quiet))
}

func TestPriorityFnOrdersKillersAboveOtherQuiets(t *testing.T) {
	killer := board.Move{From: board.B1, To: board.C3, Piece: board.Knight}
	other := board.Move{From: board.G1, To: board.F3, Piece: board.Knight}

	k := search.NewKillers()
	k.Record(4, killer)

	in := search.OrderingInputs{Killers: k, Ply: 4}
	fn := in.PriorityFn()

	assert.Greater(t, fn(killer), fn(other))
}

func TestPriorityFnBreaksQuietTiesByHistory(t *testing.T) {
	hot := board.Move{From: board.B1, To: board.C3, Piece: board.Knight}
	cold := board.Move{From: board.G1, To: board.F3, Piece: board.Knight}

	h := search.NewHistory()
	h.Record(board.White, hot, 6)

	in := search.OrderingInputs{History: h, Side: board.White}
	fn := in.PriorityFn()

	assert.Greater(t, fn(hot), fn(cold))
}
