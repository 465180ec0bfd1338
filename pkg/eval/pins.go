package eval

import "github.com/corvid-chess/corvid/pkg/board"

// Pin describes a pinned piece: attacker threatens pinned, which shields target (a more valuable
// piece, usually the king) behind it.
type Pin struct {
	Attacker, Pinned, Target board.Square
}

// FindPins returns every pin of the given color's pieces against the target square, via rook/queen
// and bishop/queen rays from the target square with the candidate pinned square removed from
// occupancy: if a hostile slider appears on that ray only once the piece is removed, it was
// pinning it.
func FindPins(pos *board.Position, side board.Color, target board.Square) []Pin {
	occupied := pos.Occupied()
	own := pos.Color(side)
	opp := side.Opponent()

	var ret []Pin

	rookRay := board.RookAttackboard(occupied, target)
	for pins := rookRay & own; pins != 0; pins &= pins - 1 {
		pinned := pins.FirstSquare()
		attackers := pos.Piece(opp, board.Rook) | pos.Piece(opp, board.Queen)

		behind := board.RookAttackboard(occupied&^board.BitMask(pinned), target) &^ rookRay & attackers
		if behind != 0 {
			ret = append(ret, Pin{Attacker: behind.FirstSquare(), Pinned: pinned, Target: target})
		}
	}

	bishopRay := board.BishopAttackboard(occupied, target)
	for pins := bishopRay & own; pins != 0; pins &= pins - 1 {
		pinned := pins.FirstSquare()
		attackers := pos.Piece(opp, board.Bishop) | pos.Piece(opp, board.Queen)

		behind := board.BishopAttackboard(occupied&^board.BitMask(pinned), target) &^ bishopRay & attackers
		if behind != 0 {
			ret = append(ret, Pin{Attacker: behind.FirstSquare(), Pinned: pinned, Target: target})
		}
	}

	return ret
}

// pinPenalty scores a pin from the pinned side's perspective: more severe when the pinned piece
// is valuable and the piece it shields (usually the king, otherwise weighted as a generic backing
// piece) is even more valuable. Indexed conceptually by (pinner, pinned, backing) per spec §4.3's
// 7x7x7 table; computed directly here rather than as a literal cube since only the King ever
// occupies the `backing` role in this engine's pin detection.
func pinPenalty(pos *board.Position, pinned board.Color, p Pin) int32 {
	_, pinnerPiece, _ := pos.At(p.Attacker)
	_, pinnedPiece, _ := pos.At(p.Pinned)
	backing := board.King
	if _, bp, ok := pos.At(p.Target); ok {
		backing = bp
	}

	penalty := material[pinnedPiece] / 10
	if material[pinnerPiece] < material[pinnedPiece] {
		penalty += material[pinnedPiece] / 5 // pinned to something more valuable by a cheaper piece
	}
	if backing == board.King {
		penalty += 10
	}
	return penalty
}

// Pins returns the pin penalty for the given color (from that color's own perspective, i.e.
// always non-positive).
func Pins(pos *board.Position, c board.Color) Score {
	var total int32
	for _, p := range FindPins(pos, c, pos.King(c)) {
		total -= pinPenalty(pos, c, p)
	}
	return Score(total)
}
