package search

import (
	"github.com/corvid-chess/corvid/pkg/board"
	"github.com/corvid-chess/corvid/pkg/eval"
)

// quiescence resolves tactical sequences at leaf nodes: stand-pat, then captures/promotions only
// (all moves if in check), with per-move futility pruning against the static exchange gain, per
// spec §4.5's quiescence variant.
func (w *Worker) quiescence(alpha, beta eval.Score) eval.Score {
	coord := w.coord
	b := w.board
	pos := b.Position()
	turn := b.Turn()

	if pos.HasInsufficientMaterial() {
		return eval.Draw
	}

	coord.Stop.AddNodes(1)
	if coord.Stop.JudgeToStop() {
		return alpha
	}

	inCheck := pos.IsChecked(turn)
	standPat := eval.Standard{Cache: coord.Cache}.Evaluate(b)

	if !inCheck {
		if standPat > alpha {
			alpha = standPat
		}
		if alpha >= beta {
			return alpha
		}
	}

	var raw []board.Move
	if inCheck {
		raw = pos.PseudoLegalMoves(turn)
	} else {
		raw = pos.PseudoLegalCaptures(turn)
	}
	moves := board.NewMoveList(raw, board.MVVLVAPriority)

	hasLegalMove := false
	material := eval.Material(pos, turn)

	for {
		m, ok := moves.Next()
		if !ok {
			break
		}
		if !inCheck && m.IsCapture() {
			gain := eval.Score(pos.StaticExchangeEval(m.From, m.To, turn) * 100) // pawn-scale SEE to centipawns
			if material+gain+200 <= alpha {
				continue
			}
		}
		if !b.PushMove(m) {
			continue
		}
		score := -w.quiescence(-beta, -alpha)
		b.PopMove()
		hasLegalMove = true

		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}

	if inCheck && !hasLegalMove {
		return eval.Mated(0)
	}
	return alpha
}
