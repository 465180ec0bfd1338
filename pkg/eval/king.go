package eval

import "github.com/corvid-chess/corvid/pkg/board"

const (
	weakSquarePenalty  int32 = 6
	colorComplexWeak   int32 = 12
	enemyKingZoneBonus int32 = 4
)

// KingSafety penalizes weak squares around the king (not defended by a friendly pawn), a weak
// same-colored-square bishop complex, and rewards attacks on squares adjacent to the enemy king.
func KingSafety(pos *board.Position, c board.Color) Score {
	var total int32

	kingSq := pos.King(c)
	own := pos.Color(c)
	zone := board.KingAttackboard(kingSq)

	for bb := zone &^ own; bb != 0; bb &= bb - 1 {
		sq := bb.FirstSquare()
		if board.PawnAttackboard(c, pos.Piece(c, board.Pawn))&board.BitMask(sq) == 0 {
			total -= weakSquarePenalty
		}
	}

	bishops := pos.Piece(c, board.Bishop)
	if bishops.PopCount() == 1 {
		sq := bishops.FirstSquare()
		complex := (int(sq.File()) + int(sq.Rank())) & 1
		for bb := zone; bb != 0; bb &= bb - 1 {
			s := bb.FirstSquare()
			if (int(s.File())+int(s.Rank()))&1 != complex {
				total -= colorComplexWeak / 8
			}
		}
	}

	enemyZone := board.KingAttackboard(pos.King(c.Opponent()))
	for _, p := range board.Officers {
		for bb := pos.Piece(c, p); bb != 0; bb &= bb - 1 {
			sq := bb.FirstSquare()
			if board.Attackboard(pos.Occupied(), sq, p)&enemyZone != 0 {
				total += enemyKingZoneBonus
			}
		}
	}

	return Score(total)
}
