package eval

import "github.com/corvid-chess/corvid/pkg/board"

// mobilityWeight scales the pseudo-legal-destination count per piece type into centipawns.
var mobilityWeight = [board.NumPieceTypes]int32{
	board.Knight: 4,
	board.Bishop: 5,
	board.Rook:   2,
	board.Queen:  1,
}

// Mobility counts pseudo-legal destinations per officer piece type, weighted, for the given color.
func Mobility(pos *board.Position, c board.Color) Score {
	own := pos.Color(c)
	occupied := pos.Occupied()

	var total int32
	for _, p := range board.Officers {
		for bb := pos.Piece(c, p); bb != 0; bb &= bb - 1 {
			sq := bb.FirstSquare()
			n := (board.Attackboard(occupied, sq, p) &^ own).PopCount()
			total += int32(n) * mobilityWeight[p]
		}
	}
	return Score(total)
}

// attackDefenseTable[attacker][target] is the bonus for a piece of type `attacker` attacking (or
// defending, applied symmetrically by the caller) a piece of type `target`, per spec §4.3's 7x7
// attack/defense table. Indexed NoPieceType..King; row/column 0 (NoPieceType) is unused.
var attackDefenseTable = [board.NumPieceTypes][board.NumPieceTypes]int32{
	board.Pawn:   {board.Knight: 5, board.Bishop: 5, board.Rook: 6, board.Queen: 8, board.King: 3},
	board.Knight: {board.Pawn: 1, board.Bishop: 2, board.Rook: 5, board.Queen: 7, board.King: 4},
	board.Bishop: {board.Pawn: 1, board.Knight: 2, board.Rook: 5, board.Queen: 7, board.King: 4},
	board.Rook:   {board.Pawn: 1, board.Knight: 2, board.Bishop: 2, board.Queen: 6, board.King: 5},
	board.Queen:  {board.Pawn: 1, board.Knight: 1, board.Bishop: 1, board.Rook: 2, board.King: 6},
	board.King:   {board.Pawn: 1, board.Knight: 2, board.Bishop: 2, board.Rook: 3, board.Queen: 4},
}

// AttacksAndDefenses scores attacks on enemy pieces and defenses of own pieces via the 7x7 table.
func AttacksAndDefenses(pos *board.Position, c board.Color) Score {
	occupied := pos.Occupied()
	var total int32

	for _, attacker := range board.AllPieceTypes {
		for bb := pos.Piece(c, attacker); bb != 0; bb &= bb - 1 {
			sq := bb.FirstSquare()
			var reach board.Bitboard
			if attacker == board.Pawn {
				reach = board.PawnAttackboard(c, board.BitMask(sq))
			} else {
				reach = board.Attackboard(occupied, sq, attacker)
			}

			for hits := reach & pos.Color(c.Opponent()); hits != 0; hits &= hits - 1 {
				_, target, ok := pos.At(hits.FirstSquare())
				if ok {
					total += attackDefenseTable[attacker][target]
				}
			}
			for hits := reach & pos.Color(c); hits != 0; hits &= hits - 1 {
				_, target, ok := pos.At(hits.FirstSquare())
				if ok {
					total += attackDefenseTable[attacker][target] / 4 // defense weighted lower than attack
				}
			}
		}
	}
	return Score(total)
}
