package board

// Attack tables for every piece type are precomputed once at package init, following the
// teacher's approach of raytracing each direction into a per-square table (see bitboard.go's
// rook/bishop table construction in the reference engine). Sliders use the classical
// first-blocker technique: a per-square, per-direction ray mask with the nearest blocker (if
// any) subtracted back out, rather than hand-transcribed 45-degree rotation index tables --
// the two are equivalent in the attack sets they produce, but the ray-mask form is safe to
// derive programmatically instead of copying 64-entry literal tables by hand.

type direction int

const (
	dirN direction = iota
	dirS
	dirE
	dirW
	dirNE
	dirNW
	dirSE
	dirSW
	numDirections
)

// positive directions increase the square index (bitscan-forward finds the nearest blocker).
func (d direction) isPositive() bool {
	switch d {
	case dirN, dirE, dirNE, dirNW:
		return true
	default:
		return false
	}
}

var (
	rayAttacks  [NumSquares][numDirections]Bitboard
	kingTable   [NumSquares]Bitboard
	knightTable [NumSquares]Bitboard
)

func step(f File, r Rank, d direction) (File, Rank, bool) {
	df, dr := 0, 0
	switch d {
	case dirN:
		dr = 1
	case dirS:
		dr = -1
	case dirE:
		df = 1
	case dirW:
		df = -1
	case dirNE:
		df, dr = 1, 1
	case dirNW:
		df, dr = -1, 1
	case dirSE:
		df, dr = 1, -1
	case dirSW:
		df, dr = -1, -1
	}
	nf, nr := int(f)+df, int(r)+dr
	if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
		return 0, 0, false
	}
	return File(nf), Rank(nr), true
}

func init() {
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		f, r := sq.File(), sq.Rank()

		for d := direction(0); d < numDirections; d++ {
			var ray Bitboard
			cf, cr := f, r
			for {
				nf, nr, ok := step(cf, cr, d)
				if !ok {
					break
				}
				ray |= BitMask(NewSquare(nf, nr))
				cf, cr = nf, nr
			}
			rayAttacks[sq][d] = ray
		}

		// King: one step in any of the 8 directions.
		var king Bitboard
		for d := direction(0); d < numDirections; d++ {
			if nf, nr, ok := step(f, r, d); ok {
				king |= BitMask(NewSquare(nf, nr))
			}
		}
		kingTable[sq] = king

		// Knight: the 8 L-shaped jumps.
		var knight Bitboard
		for _, delta := range [][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}} {
			nf, nr := int(f)+delta[0], int(r)+delta[1]
			if nf >= 0 && nf <= 7 && nr >= 0 && nr <= 7 {
				knight |= BitMask(NewSquare(File(nf), Rank(nr)))
			}
		}
		knightTable[sq] = knight
	}
}

// KingAttackboard returns the King's attack/move set from the given square.
func KingAttackboard(sq Square) Bitboard {
	return kingTable[sq]
}

// KnightAttackboard returns the Knight's attack/move set from the given square.
func KnightAttackboard(sq Square) Bitboard {
	return knightTable[sq]
}

func slide(sq Square, d direction, occupied Bitboard) Bitboard {
	ray := rayAttacks[sq][d]
	blockers := ray & occupied
	if blockers == 0 {
		return ray
	}
	var blocker Square
	if d.isPositive() {
		blocker = blockers.FirstSquare()
	} else {
		blocker = blockers.LastSquare()
	}
	return ray &^ rayAttacks[blocker][d]
}

// RookAttackboard returns a Rook's attack set from the given square given full board occupancy.
func RookAttackboard(occupied Bitboard, sq Square) Bitboard {
	return slide(sq, dirN, occupied) | slide(sq, dirS, occupied) | slide(sq, dirE, occupied) | slide(sq, dirW, occupied)
}

// BishopAttackboard returns a Bishop's attack set from the given square given full board occupancy.
func BishopAttackboard(occupied Bitboard, sq Square) Bitboard {
	return slide(sq, dirNE, occupied) | slide(sq, dirNW, occupied) | slide(sq, dirSE, occupied) | slide(sq, dirSW, occupied)
}

// QueenAttackboard returns a Queen's attack set from the given square given full board occupancy.
func QueenAttackboard(occupied Bitboard, sq Square) Bitboard {
	return RookAttackboard(occupied, sq) | BishopAttackboard(occupied, sq)
}

// Attackboard returns the attack/move set for a non-pawn piece at the given square.
func Attackboard(occupied Bitboard, sq Square, piece PieceType) Bitboard {
	switch piece {
	case King:
		return KingAttackboard(sq)
	case Queen:
		return QueenAttackboard(occupied, sq)
	case Rook:
		return RookAttackboard(occupied, sq)
	case Bishop:
		return BishopAttackboard(occupied, sq)
	case Knight:
		return KnightAttackboard(sq)
	default:
		panic("board: invalid piece type for Attackboard")
	}
}
