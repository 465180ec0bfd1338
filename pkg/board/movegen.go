package board

// PseudoLegalMoves returns every pseudo-legal move for the side to move: it does not verify
// that the mover's own king ends up safe (Position.Move does that lazily, per spec §4.1).
// Castling moves additionally verify here that the king does not start, pass through, or land
// on an attacked square, since that cannot be recovered from the post-move king-safety check
// alone.
func (p *Position) PseudoLegalMoves(turn Color) []Move {
	moves := make([]Move, 0, 48)
	moves = p.genPawnMoves(turn, moves)
	for _, piece := range Officers {
		moves = p.genOfficerMoves(turn, piece, moves)
	}
	moves = p.genKingMoves(turn, moves)
	moves = p.genCastlingMoves(turn, moves)
	return moves
}

// PseudoLegalCaptures returns only captures and promotions for the side to move, used by
// quiescence search.
func (p *Position) PseudoLegalCaptures(turn Color) []Move {
	all := p.PseudoLegalMoves(turn)
	moves := all[:0]
	for _, m := range all {
		if m.IsCapture() || m.IsPromotion() {
			moves = append(moves, m)
		}
	}
	return moves
}

func (p *Position) genOfficerMoves(turn Color, piece PieceType, moves []Move) []Move {
	own := p.occupiedBy[turn]
	enemy := p.occupiedBy[turn.Opponent()]

	bb := p.pieces[turn][piece]
	for bb != 0 {
		from := bb.FirstSquare()
		bb &= bb - 1

		targets := Attackboard(p.occupied, from, piece) &^ own
		for targets != 0 {
			to := targets.FirstSquare()
			targets &= targets - 1

			m := Move{From: from, To: to, Piece: piece}
			if enemy.IsSet(to) {
				_, captured, _ := p.At(to)
				m.Type = Capture
				m.Capture = captured
			}
			moves = append(moves, m)
		}
	}
	return moves
}

func (p *Position) genKingMoves(turn Color, moves []Move) []Move {
	from := p.king[turn]
	own := p.occupiedBy[turn]
	enemy := p.occupiedBy[turn.Opponent()]

	targets := KingAttackboard(from) &^ own
	for targets != 0 {
		to := targets.FirstSquare()
		targets &= targets - 1

		m := Move{From: from, To: to, Piece: King}
		if enemy.IsSet(to) {
			_, captured, _ := p.At(to)
			m.Type = Capture
			m.Capture = captured
		}
		moves = append(moves, m)
	}
	return moves
}

func (p *Position) genCastlingMoves(turn Color, moves []Move) []Move {
	if p.IsChecked(turn) {
		return moves
	}

	rank := Rank1
	if turn == Black {
		rank = Rank8
	}
	kingFrom := NewSquare(FileE, rank)
	if p.king[turn] != kingFrom {
		return moves
	}

	if p.castling.Has(KingSideRight(turn)) {
		pass := NewSquare(FileF, rank)
		dest := NewSquare(FileG, rank)
		between := BitMask(pass) | BitMask(dest)
		if p.occupied&between == 0 && !p.IsAttacked(turn, pass) && !p.IsAttacked(turn, dest) {
			moves = append(moves, Move{Type: KingSideCastle, From: kingFrom, To: dest, Piece: King})
		}
	}
	if p.castling.Has(QueenSideRight(turn)) {
		pass := NewSquare(FileD, rank)
		dest := NewSquare(FileC, rank)
		knightSq := NewSquare(FileB, rank)
		between := BitMask(pass) | BitMask(dest) | BitMask(knightSq)
		if p.occupied&between == 0 && !p.IsAttacked(turn, pass) && !p.IsAttacked(turn, dest) {
			moves = append(moves, Move{Type: QueenSideCastle, From: kingFrom, To: dest, Piece: King})
		}
	}
	return moves
}

func (p *Position) genPawnMoves(turn Color, moves []Move) []Move {
	pawns := p.pieces[turn][Pawn]
	enemy := p.occupiedBy[turn.Opponent()]
	promoRank := PawnPromotionRank(turn)

	// Single and double pushes.
	single := PawnPushboard(turn, pawns, p.occupied)
	doubleSrc := single &^ promoRank
	double := PawnPushboard(turn, doubleSrc, p.occupied) & PawnJumpRank(turn)

	moves = appendPawnPushes(moves, turn, single, promoRank, 8, Push)
	moves = appendPawnPushes(moves, turn, double, promoRank, 16, Jump)

	// Captures (incl. promotions).
	left, right := pawnCaptureSplits(turn, pawns)
	moves = appendPawnCaptures(p, moves, turn, left&enemy, pawnCaptureDelta(turn, true), promoRank)
	moves = appendPawnCaptures(p, moves, turn, right&enemy, pawnCaptureDelta(turn, false), promoRank)

	// En passant.
	if ep, ok := p.EnPassant(); ok {
		target := BitMask(ep)
		if (left & target) != 0 {
			from := ep - Square(pawnCaptureDelta(turn, true))
			moves = append(moves, Move{Type: EnPassant, From: from, To: ep, Piece: Pawn, Capture: Pawn})
		}
		if (right & target) != 0 {
			from := ep - Square(pawnCaptureDelta(turn, false))
			moves = append(moves, Move{Type: EnPassant, From: from, To: ep, Piece: Pawn, Capture: Pawn})
		}
	}
	return moves
}

// pawnCaptureDelta returns the (to - from) square delta for a capture in the given direction
// (left = toward file A for both colors, matching pawnCaptureSplits).
func pawnCaptureDelta(c Color, left bool) int {
	if c == White {
		if left {
			return 7
		}
		return 9
	}
	if left {
		return -9
	}
	return -7
}

func pawnCaptureSplits(c Color, pawns Bitboard) (left, right Bitboard) {
	if c == White {
		return (pawns &^ BitFile(FileA)) << 7, (pawns &^ BitFile(FileH)) << 9
	}
	return (pawns &^ BitFile(FileA)) >> 9, (pawns &^ BitFile(FileH)) >> 7
}

func appendPawnPushes(moves []Move, turn Color, dests Bitboard, promoRank Bitboard, delta int, mt MoveType) []Move {
	for dests != 0 {
		to := dests.FirstSquare()
		dests &= dests - 1
		from := Square(int(to) - delta*turn.Sign())

		if promoRank.IsSet(to) {
			for _, promo := range [4]PieceType{Queen, Rook, Bishop, Knight} {
				moves = append(moves, Move{Type: Promotion, From: from, To: to, Piece: Pawn, Promotion: promo})
			}
			continue
		}
		moves = append(moves, Move{Type: mt, From: from, To: to, Piece: Pawn})
	}
	return moves
}

func appendPawnCaptures(p *Position, moves []Move, turn Color, dests Bitboard, delta int, promoRank Bitboard) []Move {
	for dests != 0 {
		to := dests.FirstSquare()
		dests &= dests - 1
		from := Square(int(to) - delta)
		_, captured, _ := p.At(to)

		if promoRank.IsSet(to) {
			for _, promo := range [4]PieceType{Queen, Rook, Bishop, Knight} {
				moves = append(moves, Move{Type: CapturePromotion, From: from, To: to, Piece: Pawn, Promotion: promo, Capture: captured})
			}
			continue
		}
		moves = append(moves, Move{Type: Capture, From: from, To: to, Piece: Pawn, Capture: captured})
	}
	return moves
}
