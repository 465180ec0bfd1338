package eval

import (
	"github.com/corvid-chess/corvid/pkg/board"
)

// pst holds opening/ending piece-square values from White's perspective, rank 1 first (as
// written), mirrored for Black at lookup time.
type pst struct {
	opening, ending [64]int32
}

// psqt is indexed by piece type (Pawn..King).
var psqt = [board.NumPieceTypes]pst{
	board.Pawn: {
		opening: [64]int32{
			0, 0, 0, 0, 0, 0, 0, 0,
			5, 10, 10, -20, -20, 10, 10, 5,
			5, -5, -10, 0, 0, -10, -5, 5,
			0, 0, 0, 20, 20, 0, 0, 0,
			5, 5, 10, 25, 25, 10, 5, 5,
			10, 10, 20, 30, 30, 20, 10, 10,
			50, 50, 50, 50, 50, 50, 50, 50,
			0, 0, 0, 0, 0, 0, 0, 0,
		},
		ending: [64]int32{
			0, 0, 0, 0, 0, 0, 0, 0,
			10, 10, 10, 10, 10, 10, 10, 10,
			10, 10, 10, 10, 10, 10, 10, 10,
			20, 20, 20, 20, 20, 20, 20, 20,
			30, 30, 30, 30, 30, 30, 30, 30,
			50, 50, 50, 50, 50, 50, 50, 50,
			80, 80, 80, 80, 80, 80, 80, 80,
			0, 0, 0, 0, 0, 0, 0, 0,
		},
	},
	board.Knight: {
		opening: [64]int32{
			-50, -40, -30, -30, -30, -30, -40, -50,
			-40, -20, 0, 5, 5, 0, -20, -40,
			-30, 5, 10, 15, 15, 10, 5, -30,
			-30, 0, 15, 20, 20, 15, 0, -30,
			-30, 5, 15, 20, 20, 15, 5, -30,
			-30, 0, 10, 15, 15, 10, 0, -30,
			-40, -20, 0, 0, 0, 0, -20, -40,
			-50, -40, -30, -30, -30, -30, -40, -50,
		},
	},
	board.Bishop: {
		opening: [64]int32{
			-20, -10, -10, -10, -10, -10, -10, -20,
			-10, 5, 0, 0, 0, 0, 5, -10,
			-10, 10, 10, 10, 10, 10, 10, -10,
			-10, 0, 10, 10, 10, 10, 0, -10,
			-10, 5, 5, 10, 10, 5, 5, -10,
			-10, 0, 5, 10, 10, 5, 0, -10,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-20, -10, -10, -10, -10, -10, -10, -20,
		},
	},
	board.Rook: {
		opening: [64]int32{
			0, 0, 0, 5, 5, 0, 0, 0,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			5, 10, 10, 10, 10, 10, 10, 5,
			0, 0, 0, 0, 0, 0, 0, 0,
		},
	},
	board.Queen: {
		opening: [64]int32{
			-20, -10, -10, -5, -5, -10, -10, -20,
			-10, 0, 5, 0, 0, 0, 0, -10,
			-10, 5, 5, 5, 5, 5, 0, -10,
			0, 0, 5, 5, 5, 5, 0, -5,
			-5, 0, 5, 5, 5, 5, 0, -5,
			-10, 0, 5, 5, 5, 5, 0, -10,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-20, -10, -10, -5, -5, -10, -10, -20,
		},
	},
	board.King: {
		opening: [64]int32{
			20, 30, 10, 0, 0, 10, 30, 20,
			20, 20, 0, 0, 0, 0, 20, 20,
			-10, -20, -20, -20, -20, -20, -20, -10,
			-20, -30, -30, -40, -40, -30, -30, -20,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
		},
		ending: [64]int32{
			-50, -30, -30, -30, -30, -30, -30, -50,
			-30, -30, 0, 0, 0, 0, -30, -30,
			-30, -10, 20, 30, 30, 20, -10, -30,
			-30, -10, 30, 40, 40, 30, -10, -30,
			-30, -10, 30, 40, 40, 30, -10, -30,
			-30, -10, 20, 30, 30, 20, -10, -30,
			-30, -20, -10, 0, 0, -10, -20, -30,
			-50, -40, -30, -20, -20, -30, -40, -50,
		},
	},
}

// pstIndex mirrors a White-oriented table index for Black: the tables above are written rank 1
// first (index 0 = a1), so Black looks up the vertically-flipped square.
func pstIndex(c board.Color, sq board.Square) int {
	if c == board.White {
		return int(sq)
	}
	return int(board.NewSquare(sq.File(), 7-sq.Rank()))
}

// pieceSquareValue returns the phase-interpolated piece-square value for a piece at sq, from its
// own color's perspective (positive is good for that color).
func pieceSquareValue(c board.Color, p board.PieceType, sq board.Square, phase Phase) int32 {
	t := psqt[p]
	idx := pstIndex(c, sq)
	ending := t.ending[idx]
	if ending == 0 && t.opening[idx] != 0 {
		ending = t.opening[idx] // tables with no distinct ending phase reuse the opening values
	}
	return interpolate(t.opening[idx], ending, phase)
}
