package eval

import (
	"github.com/corvid-chess/corvid/pkg/board"
)

// Evaluator is a static position evaluator: Evaluate returns the score from the side-to-move's
// perspective.
type Evaluator interface {
	Evaluate(b *board.Board) Score
}

// Cache holds the per-piece-count-derived phase and the phase-interpolated piece-square values
// for a single top-level search, computed once and reused by every node: pure table lookups
// during search, no floating-point (spec §4.9).
type Cache struct {
	phase       Phase
	pieceSquare [board.NumColors][board.NumPieceTypes][64]int32
}

// NewCache precomputes a Cache from the current position's total material, to be refreshed once
// per iterative-deepening search (not per node: phase barely moves within one search).
func NewCache(pos *board.Position) *Cache {
	c := &Cache{phase: ComputePhase(pos)}
	for _, color := range [2]board.Color{board.White, board.Black} {
		for _, p := range board.AllPieceTypes {
			for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
				c.pieceSquare[color][p][sq] = pieceSquareValue(color, p, sq, c.phase)
			}
		}
	}
	return c
}

func (c *Cache) pst(pos *board.Position, side board.Color) Score {
	var total int32
	for _, p := range board.AllPieceTypes {
		for bb := pos.Piece(side, p); bb != 0; bb &= bb - 1 {
			total += c.pieceSquare[side][p][bb.FirstSquare()]
		}
	}
	return Score(total)
}

// Standard is the full positional evaluator described by spec §4.3: material, piece-square
// tables, mobility, attacks/defenses, pins, pawn structure, king safety, coordination and
// castling, each computed relative to White then flipped to the side to move.
type Standard struct {
	Cache *Cache
}

func (s Standard) Evaluate(b *board.Board) Score {
	pos := b.Position()

	white := Material(pos, board.White) +
		s.Cache.pst(pos, board.White) - s.Cache.pst(pos, board.Black) +
		Mobility(pos, board.White) - Mobility(pos, board.Black) +
		AttacksAndDefenses(pos, board.White) - AttacksAndDefenses(pos, board.Black) +
		Pins(pos, board.White) - Pins(pos, board.Black) +
		PawnStructure(pos, board.White) - PawnStructure(pos, board.Black) +
		KingSafety(pos, board.White) - KingSafety(pos, board.Black) +
		Coordination(pos, board.White) - Coordination(pos, board.Black) +
		Castling(b.HasCastled(board.White), pos.Castling().Has(board.WhiteKingSide) || pos.Castling().Has(board.WhiteQueenSide)) -
		Castling(b.HasCastled(board.Black), pos.Castling().Has(board.BlackKingSide) || pos.Castling().Has(board.BlackQueenSide))

	return Crop(white * Unit(b.Turn()))
}
