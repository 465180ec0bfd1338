package eval

import "github.com/corvid-chess/corvid/pkg/board"

const (
	bishopPairBonus    int32 = 30
	rookPairPenalty    int32 = 10
	rookOpenFileBonus  int32 = 15
	rookSemiOpenBonus  int32 = 8
	badBishopPenalty   int32 = 4
	earlyQueenPenalty  int32 = 15
	castledBonus       int32 = 40
	forfeitedCastleHit int32 = 20
)

// Coordination scores bishop/rook pairs, rooks on open or semi-open files, bad bishops (blocked
// by many own pawns on its own color complex), and early queen development.
func Coordination(pos *board.Position, c board.Color) Score {
	var total int32

	if pos.Piece(c, board.Bishop).PopCount() >= 2 {
		total += bishopPairBonus
	}
	if pos.Piece(c, board.Rook).PopCount() >= 2 {
		total -= rookPairPenalty // redundant doubled rooks absent an open file
	}

	ownPawns := pos.Piece(c, board.Pawn)
	oppPawns := pos.Piece(c.Opponent(), board.Pawn)
	for bb := pos.Piece(c, board.Rook); bb != 0; bb &= bb - 1 {
		file := board.BitFile(bb.FirstSquare().File())
		switch {
		case file&(ownPawns|oppPawns) == 0:
			total += rookOpenFileBonus
		case file&ownPawns == 0:
			total += rookSemiOpenBonus
		}
	}

	for bb := pos.Piece(c, board.Bishop); bb != 0; bb &= bb - 1 {
		sq := bb.FirstSquare()
		complex := (int(sq.File()) + int(sq.Rank())) & 1
		blocked := 0
		for pbb := ownPawns; pbb != 0; pbb &= pbb - 1 {
			psq := pbb.FirstSquare()
			if (int(psq.File())+int(psq.Rank()))&1 == complex {
				blocked++
			}
		}
		total -= int32(blocked) * badBishopPenalty
	}

	homeRank := board.Rank1
	if c == board.Black {
		homeRank = board.Rank8
	}
	if q := pos.Piece(c, board.Queen); q != 0 && q.FirstSquare().Rank() != homeRank {
		undeveloped := 0
		for _, p := range [2]board.PieceType{board.Knight, board.Bishop} {
			undeveloped += (pos.Piece(c, p) & board.BitRank(homeRank)).PopCount()
		}
		if undeveloped >= 2 {
			total -= earlyQueenPenalty
		}
	}

	return Score(total)
}

// Castling rewards a color that has castled and penalizes one that has forfeited both rights
// without ever castling.
func Castling(hasCastled bool, remainingRights bool) Score {
	if hasCastled {
		return Score(castledBonus)
	}
	if !remainingRights {
		return Score(-forfeitedCastleHit)
	}
	return 0
}
