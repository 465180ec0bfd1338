package eval

import (
	"github.com/corvid-chess/corvid/pkg/board"
	"github.com/seekerror/stdlib/pkg/util/mathx"
)

// Phase represents how far into the game we are, totalPhase (opening) down to 0 (deep ending),
// derived from remaining non-pawn material. Used to interpolate opening/ending weights.
type Phase int32

const totalPhase = 4*1 /*knight*/ + 4*1 /*bishop*/ + 4*2 /*rook*/ + 2*4 /*queen*/

var phaseWeight = [board.NumPieceTypes]Phase{
	board.Knight: 1,
	board.Bishop: 1,
	board.Rook:   2,
	board.Queen:  4,
}

// ComputePhase sums the phase weight of all remaining officers on the board, clamped to
// [0, totalPhase].
func ComputePhase(pos *board.Position) Phase {
	var phase Phase
	for _, c := range [2]board.Color{board.White, board.Black} {
		for _, p := range board.Officers {
			phase += Phase(pos.Piece(c, p).PopCount()) * phaseWeight[p]
		}
	}
	return mathx.Min(phase, totalPhase)
}

// interpolate blends an opening and an ending value by phase: phase == totalPhase is pure
// opening, phase == 0 is pure ending.
func interpolate(opening, ending int32, phase Phase) int32 {
	return (opening*int32(phase) + ending*int32(totalPhase-phase)) / int32(totalPhase)
}
