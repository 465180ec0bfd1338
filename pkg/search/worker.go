package search

import (
	"github.com/corvid-chess/corvid/pkg/board"
	"github.com/corvid-chess/corvid/pkg/eval"
	"github.com/corvid-chess/corvid/pkg/params"
	"github.com/corvid-chess/corvid/pkg/ttable"
)

// NodeType distinguishes principal-variation nodes, which get full-window search and IID, from
// the rest of the tree, which get null-move/probability-cut/history pruning (spec §4.5).
type NodeType uint8

const (
	PVNode NodeType = iota
	NonPVNode
)

func isMateRange(s eval.Score) bool {
	return s > eval.Mate-1000 || s < -eval.Mate+1000
}

func hasNonPawnMaterial(pos *board.Position, c board.Color) bool {
	return pos.Piece(c, board.Knight)|pos.Piece(c, board.Bishop)|pos.Piece(c, board.Rook)|pos.Piece(c, board.Queen) != 0
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Worker is one search thread: the root/client worker that owns the user's board, or a helper
// that forks a board from whatever Job it joins.
type Worker struct {
	id           int
	coord        *Coordinator
	board        *board.Board
	inNullSearch bool
}

// NewWorker builds a standalone root worker against coord and b, for searches driven directly
// rather than through a RootLauncher (e.g. a fixed-depth probe of a single position).
func NewWorker(coord *Coordinator, b *board.Board) *Worker {
	return &Worker{coord: coord, board: b}
}

// helperLoop is the body of a persistent helper goroutine: acquire a job, fork a board from it,
// work its move picker alongside the owning worker, then go idle again.
func (w *Worker) helperLoop() {
	for {
		job, ok := w.coord.Queue.Acquire(func(j *Job) {
			w.board = j.ForkBoard()
			j.wg.Add(1)
			j.attachHelper(w)
		})
		if !ok {
			return
		}
		w.playJobMoves(job)
		job.wg.Done()
	}
}

// playJobMoves repeatedly takes a move from job's shared picker, searches it, and merges the
// result into the job, until the picker is exhausted or a sibling signals a beta cut at this ply.
// It applies the same futility/LMR/history-pruning/PVS treatment as the owning worker's own loop
// in Search, via searchCandidate, since both draw moves from the same job (spec §4.5, mirroring
// the original engine's SearchParallel).
func (w *Worker) playJobMoves(job *Job) {
	for {
		if job.BetaCutBelow(job.Ply) || w.coord.Stop.JudgeToStop() {
			return
		}
		m, moveNumber, ok := job.NextMove()
		if !ok {
			return
		}
		if w.searchCandidate(job, m, moveNumber) {
			return
		}
	}
}

// searchCandidate searches one move drawn from job's shared picker and merges the result back
// into job, applying futility pruning, late move reduction, history pruning and the PVS
// null-window/research discipline uniformly regardless of whether the owning worker or a helper
// calls it. It reports whether the move produced a beta cut. Grounded on the per-move body of
// SearchParallel in the original engine (_examples/original_source/src/chess_engine_search.cpp).
func (w *Worker) searchCandidate(job *Job, m board.Move, moveNumber int) bool {
	coord := w.coord
	b := w.board
	turn := b.Turn()

	curAlpha, curBeta := job.window()

	if !b.PushMove(m) {
		return false
	}

	if !job.InCheck && !m.IsPromotion() && job.Depth <= params.FutilityMaxDepth && moveNumber > 1 {
		gain := eval.Score(board.NominalGain(m) * 100) // NominalGain is pawn-scale; eval.Score is centipawns
		if job.Material+gain+eval.Score(coord.Params.FutilityMarginAt(job.Depth)) <= curAlpha {
			b.PopMove()
			return false
		}
	}

	lmrThreshold := coord.Params.LMRInvalidMoves[job.NumAllMoves]
	historyThreshold := coord.Params.HistoryPruningInvalidMoves[job.NumAllMoves]

	reduction := 0
	if m.IsQuiet() && !coord.Killers.IsKiller(job.Ply, m) && moveNumber > lmrThreshold && job.Depth >= coord.Params.LMRMinDepth {
		reduction = 1
	}
	if job.NodeType == NonPVNode && m.IsQuiet() && job.Depth >= params.HistoryPruneMinDepth {
		hv := coord.History.Value(turn, m)
		if moveNumber > historyThreshold && uint64(hv)*4 < uint64(coord.History.Max()) {
			reduction++
		}
	}

	var score eval.Score
	var childPV *PVLine
	if moveNumber == 1 {
		score, childPV = w.Search(job.NodeType, job.Depth-1, job.Ply+1, -curBeta, -curAlpha)
		score = -score
	} else {
		score, childPV = w.Search(NonPVNode, job.Depth-1-reduction, job.Ply+1, -curAlpha-1, -curAlpha)
		score = -score
		if score > curAlpha && score < curBeta {
			score, childPV = w.Search(PVNode, job.Depth-1, job.Ply+1, -curBeta, -curAlpha)
			score = -score
		}
	}
	b.PopMove()

	if job.UpdateAlpha(m, score, childPV) {
		job.BroadcastCut(job.Ply)
		coord.History.Record(turn, m, job.Depth)
		coord.Killers.Record(job.Ply, m)
		return true
	}
	return false
}

// window reads the job's current alpha/beta under its lock, since helpers race the owner to
// tighten it as sibling results come in.
func (j *Job) window() (eval.Score, eval.Score) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.Alpha, j.Beta
}

// Search is the recursive principal-variation alpha-beta search described by spec §4.5.
// alpha/beta are from the perspective of the side to move (negamax convention); the returned
// score is likewise from that perspective.
func (w *Worker) Search(nodeType NodeType, depth, ply int, alpha, beta eval.Score) (eval.Score, *PVLine) {
	coord := w.coord
	b := w.board

	if coord.Stop.JudgeToStop() {
		return alpha, nil
	}
	coord.Stop.AddNodes(1)

	pos := b.Position()
	if pos.HasInsufficientMaterial() {
		return eval.Draw, nil
	}
	if ply > 0 && b.IsRepetition(2) {
		return eval.Draw, nil
	}

	turn := b.Turn()
	hash := b.Hash()

	var hashMove board.Move
	if entry, ok := coord.TT.Probe(hash); ok {
		hashMove = entry.Best
		if entry.Depth >= depth && ply >= 2 && !isMateRange(entry.Score) {
			switch entry.Bound {
			case ttable.Exact:
				pv := &PVLine{}
				pv.Set(entry.Best, nil)
				return entry.Score, pv
			case ttable.UpperBound:
				beta = eval.Min(beta, entry.Score)
			case ttable.LowerBound:
				alpha = eval.Max(alpha, entry.Score)
			}
			if alpha >= beta {
				return entry.Score, nil
			}
		}
		if entry.Best.IsQuiet() {
			coord.Killers.Record(ply, entry.Best)
		}
	}

	if depth <= 0 || ply >= params.MaxPlies {
		return w.quiescence(alpha, beta), nil
	}

	inCheck := pos.IsChecked(turn)

	// Internal iterative deepening: no hash move at a PV node deep enough to afford a reduced
	// self-probe for one.
	var iidMove board.Move
	if nodeType == PVNode && hashMove == (board.Move{}) && depth >= coord.Params.IIDMinDepth {
		if _, pv := w.Search(PVNode, depth-coord.Params.IIDReduction, ply, alpha, beta); pv != nil {
			m := pv.Moves()
			if len(m) > 0 {
				iidMove = m[0]
			}
		}
	}

	// Null-move reduction: pass the move and see if the opponent still can't beat beta even with
	// a free tempo. Skipped in check, already-null nodes, and endgames with bare kings and pawns
	// where zugzwang makes the heuristic unsound.
	nullReduced := false
	if nodeType == NonPVNode && !w.inNullSearch && !inCheck && depth >= coord.Params.NullMoveMinDepth && hasNonPawnMaterial(pos, turn) {
		b.PushNull()
		w.inNullSearch = true
		score, _ := w.Search(NonPVNode, depth-1-coord.Params.NullMoveReduction, ply+1, -beta, -beta+1)
		w.inNullSearch = false
		b.PopNull()
		if -score >= beta {
			depth -= coord.Params.NullMoveReduction
			nullReduced = true
			if depth <= 0 {
				return w.quiescence(alpha, beta), nil
			}
		}
	}

	// Probability cut: a shallow search of captures against a raised beta stands in for the
	// full-depth search when it would clearly also fail high.
	if nodeType == NonPVNode && !inCheck && depth >= coord.Params.ProbCutMinDepth {
		if w.probabilityCut(pos, turn, depth, beta) {
			return beta, nil
		}
	}

	if inCheck {
		depth += coord.Params.CheckExtension
	}

	in := OrderingInputs{
		Hash: hashMove, IID: iidMove, Killers: coord.Killers, History: coord.History,
		Side: turn, Ply: ply, SEE: func(m board.Move) int { return pos.StaticExchangeEval(m.From, m.To, turn) },
	}
	moves := board.NewMoveList(pos.PseudoLegalMoves(turn), in.PriorityFn())
	numAllMoves := minInt(moves.Size(), params.MaxCandidates)

	job := NewJob(hash, depth, ply, alpha, beta)
	job.Picker = moves
	job.NodeType = nodeType
	job.InCheck = inCheck
	job.Material = eval.Material(pos, turn)
	job.NumAllMoves = numAllMoves
	shared := false

	moveNumber := 0

	// Every move, whether searched by this worker or a helper, goes through searchCandidate and
	// is merged through job.UpdateAlpha, so alpha/beta/pv/bound stay a single source of truth and
	// every move gets identical treatment across the sharing transition below.
	for {
		var m board.Move
		var ok bool
		if shared {
			m, moveNumber, ok = job.NextMove()
		} else {
			m, ok = moves.Next()
			if ok {
				moveNumber++
			}
		}
		if !ok {
			break
		}

		if !shared && moveNumber > coord.Params.YBWCInvalidMoves && depth >= coord.Params.YBWCLimitDepth {
			job.ForkBoard = func() *board.Board { return b.Fork() }
			job.moveNumber = moveNumber // continue the shared counter from where the client left off
			coord.Queue.Publish(job)
			shared = true
		}

		if job.BetaCutBelow(ply) || coord.Stop.JudgeToStop() {
			break
		}

		if w.searchCandidate(job, m, moveNumber) {
			break
		}
	}

	if shared {
		job.wg.Wait()
	}
	job.ClearCut()

	job.mu.Lock()
	alpha, bound, hasLegalMove := job.Alpha, job.Bound, job.HasLegalMove
	pv := job.PV
	var bestMove board.Move
	if moves := pv.Moves(); len(moves) > 0 {
		bestMove = moves[0]
	}
	job.mu.Unlock()

	if !hasLegalMove {
		if inCheck {
			return eval.Mated(ply), nil
		}
		return eval.Draw, nil
	}

	if !w.inNullSearch && !nullReduced {
		coord.TT.Store(hash, depth, alpha, bound, bestMove)
	}
	return alpha, pv
}

// probabilityCut pre-scans captures with a shallow search against beta+margin; a single success
// is taken as evidence the full-depth search would also fail high.
func (w *Worker) probabilityCut(pos *board.Position, turn board.Color, depth int, beta eval.Score) bool {
	b := w.board
	margin := eval.Score(w.coord.Params.ProbCutMargin)
	raised := beta + margin

	captures := pos.PseudoLegalCaptures(turn)
	for _, m := range captures {
		if !b.PushMove(m) {
			continue
		}
		score, _ := w.Search(NonPVNode, depth-1-w.coord.Params.NullMoveReduction, 0, -raised, -raised+1)
		b.PopMove()
		if -score >= raised {
			return true
		}
	}
	return false
}

