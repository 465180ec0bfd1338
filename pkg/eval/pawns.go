package eval

import "github.com/corvid-chess/corvid/pkg/board"

const (
	passedPawnBonus    int32 = 20
	protectedPassedAdd int32 = 10
	doubledPenalty     int32 = 10
	isolatedPenalty    int32 = 15
	shieldBonus        int32 = 8
)

// fileMask returns the full-file bitboard for a file.
func fileMask(f board.File) board.Bitboard {
	return board.BitFile(f)
}

func adjacentFiles(f board.File) board.Bitboard {
	var bb board.Bitboard
	if f > board.FileA {
		bb |= fileMask(f - 1)
	}
	if f < board.FileH {
		bb |= fileMask(f + 1)
	}
	return bb
}

func aheadMask(c board.Color, sq board.Square) board.Bitboard {
	var bb board.Bitboard
	for r := int(sq.Rank()) + c.Sign(); r >= 0 && r < 8; r += c.Sign() {
		bb |= board.BitRank(board.Rank(r))
	}
	return bb
}

// PawnStructure scores passed, protected-passed, doubled and isolated pawns, plus the shield of
// pawns in front of the king, for the given color.
func PawnStructure(pos *board.Position, c board.Color) Score {
	own := pos.Piece(c, board.Pawn)
	opp := pos.Piece(c.Opponent(), board.Pawn)

	var total int32
	for bb := own; bb != 0; bb &= bb - 1 {
		sq := bb.FirstSquare()
		file := sq.File()

		frontSpan := aheadMask(c, sq) & (fileMask(file) | adjacentFiles(file))
		if frontSpan&opp == 0 {
			total += passedPawnBonus
			if board.PawnAttackboard(c.Opponent(), board.BitMask(sq))&own != 0 {
				total += protectedPassedAdd
			}
		}

		if (fileMask(file)&own).PopCount() > 1 {
			total -= doubledPenalty / 2 // halved since the pair double-counts across both pawns
		}
		if adjacentFiles(file)&own == 0 {
			total -= isolatedPenalty
		}
	}

	kingSq := pos.King(c)
	shield := board.KingAttackboard(kingSq) & aheadMask(c, kingSq) & own
	total += int32(shield.PopCount()) * shieldBonus

	return Score(total)
}
