package eval

import "github.com/corvid-chess/corvid/pkg/board"

// material holds the base centipawn value of each piece type. The King's value is never summed
// (it is always present on both sides) but is defined for completeness and for SEE fallbacks.
var material = [board.NumPieceTypes]int32{
	board.Pawn:   100,
	board.Knight: 320,
	board.Bishop: 330,
	board.Rook:   500,
	board.Queen:  900,
	board.King:   20000,
}

// Material returns the material balance for the given color: positive favors it.
func Material(pos *board.Position, c board.Color) Score {
	var s int32
	for _, p := range board.AllPieceTypes {
		n := pos.Piece(c, p).PopCount() - pos.Piece(c.Opponent(), p).PopCount()
		s += int32(n) * material[p]
	}
	return Score(s)
}
