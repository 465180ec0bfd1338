package board

// NominalValue is the coarse material value (in pawns) used for move ordering (MVV-LVA) and
// static exchange evaluation. The King is given an arbitrarily large value so that it is never
// profitably "captured" in an exchange sequence, per spec §4.2/§4.3.
func NominalValue(p PieceType) int {
	switch p {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	case King:
		return 1000
	default:
		return 0
	}
}

// NominalGain is the immediate nominal material gain of making the move, ignoring recapture.
func NominalGain(m Move) int {
	switch m.Type {
	case CapturePromotion:
		return NominalValue(m.Capture) + NominalValue(m.Promotion) - NominalValue(Pawn)
	case Promotion:
		return NominalValue(m.Promotion) - NominalValue(Pawn)
	case Capture, EnPassant:
		return NominalValue(m.Capture)
	default:
		return 0
	}
}

// attackersTo returns, for each side, the bitboard of pieces currently attacking sq given the
// (possibly reduced, mid-exchange) occupancy.
func attackersTo(p *Position, occupied Bitboard, sq Square) (white, black Bitboard) {
	for _, c := range [2]Color{White, Black} {
		var att Bitboard
		att |= KnightAttackboard(sq) & p.pieces[c][Knight]
		att |= KingAttackboard(sq) & p.pieces[c][King]
		att |= RookAttackboard(occupied, sq) & (p.pieces[c][Rook] | p.pieces[c][Queen])
		att |= BishopAttackboard(occupied, sq) & (p.pieces[c][Bishop] | p.pieces[c][Queen])
		att |= PawnAttackboard(c.Opponent(), BitMask(sq)) & p.pieces[c][Pawn]
		if c == White {
			white = att
		} else {
			black = att
		}
	}
	return white, black
}

func leastValuableAttacker(p *Position, attackers Bitboard, side Color) (Square, PieceType, bool) {
	best := Square(0)
	bestVal := 1 << 30
	found := false
	for bb := attackers; bb != 0; bb &= bb - 1 {
		sq := bb.FirstSquare()
		_, piece, _ := p.At(sq)
		if v := NominalValue(piece); v < bestVal {
			bestVal = v
			best = sq
			found = true
		}
	}
	if !found {
		return 0, 0, false
	}
	_, piece, _ := p.At(best)
	return best, piece, true
}

// StaticExchangeEval computes the net material outcome (in pawns, from the mover's perspective)
// of a capture sequence on `to`, initiated by `attacker` moving from `from`, assuming both sides
// always recapture with their least valuable remaining attacker. This is the classic swap-list
// algorithm; spec §4.2 describes the same recursive "capture_value - see(opponent, target)"
// relation, clamped at zero, which this is equivalent to.
func (p *Position) StaticExchangeEval(from, to Square, mover Color) int {
	var gain [32]int
	depth := 0

	occupied := p.occupied
	_, target, hasTarget := p.At(to)
	if hasTarget {
		gain[0] = NominalValue(target)
	}
	_, attackerPiece, _ := p.At(from)

	occupied &^= BitMask(from)
	side := mover.Opponent()
	lastVal := NominalValue(attackerPiece)

	for {
		white, black := attackersTo(p, occupied, to)
		var attackers Bitboard
		if side == White {
			attackers = white
		} else {
			attackers = black
		}
		attackers &= occupied // only remaining pieces

		sq, piece, ok := leastValuableAttacker(p, attackers, side)
		if !ok {
			break
		}

		depth++
		gain[depth] = lastVal - gain[depth-1]
		if max(-gain[depth-1], gain[depth]) < 0 {
			break // pruning: this recapture cannot improve the standing side's score
		}

		occupied &^= BitMask(sq)
		lastVal = NominalValue(piece)
		side = side.Opponent()
	}

	for depth > 0 {
		gain[depth-1] = -max(-gain[depth-1], gain[depth])
		depth--
	}
	return gain[0]
}

// MVVLVAPriority scores captures by most-valuable-victim, least-valuable-attacker, and promotions
// by the value of the piece promoted to. Quiet moves score zero.
func MVVLVAPriority(m Move) MovePriority {
	switch {
	case m.IsCapture():
		return MovePriority(10*NominalValue(m.Capture) - NominalValue(m.Piece))
	case m.IsPromotion():
		return MovePriority(NominalValue(m.Promotion))
	default:
		return 0
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
