package search

import (
	"sync"

	"github.com/corvid-chess/corvid/pkg/board"
	"github.com/corvid-chess/corvid/pkg/eval"
	"github.com/corvid-chess/corvid/pkg/ttable"
)

// Job is the shared frame for one search node that has been published for helpers to join, per
// the Young Brothers Wait Concept (spec §4.7/§3). Every field below alpha/beta/boundType/pv is
// read/written only under mu.
type Job struct {
	mu sync.Mutex

	Hash  board.ZobristHash
	Depth int
	Ply   int

	Alpha, Beta eval.Score
	Bound       ttable.Bound
	PV          *PVLine

	// NodeType, InCheck, Material and NumAllMoves describe the node this job was created for, not
	// any individual move: set once by the owning worker before the first move is drawn, then
	// read-only for the rest of the node's life so every worker that searches one of its moves
	// (owner or helper) applies identical futility/LMR/history-pruning/PVS treatment (spec §4.5).
	NodeType    NodeType
	InCheck     bool
	Material    eval.Score
	NumAllMoves int

	Picker       *board.MoveList
	Nodes        uint64
	HasLegalMove bool

	// ForkBoard builds an independent board for a helper to search this job's moves on. Set by
	// the owning worker before Publish; read once by a helper under the queue's lock in Acquire.
	ForkBoard func() *board.Board

	// wg tracks helpers still working this job: Add happens under the helper queue's lock inside
	// Acquire's onAcquire callback, so it happens-before the owning worker's Wait call below,
	// which only runs after Publish has returned (i.e. after some helper has acquired the slot).
	wg sync.WaitGroup

	helpers []*Worker
	cutAt   int // lowest ply at which a sibling of this job has produced a beta cut; 0 = none

	// moveNumber is the shared, 1-based count of moves drawn so far at this node, seeded from the
	// owning worker's own count at the moment it publishes the job so helpers continue the same
	// sequence (mirrors job.Count() in the original engine).
	moveNumber int
}

// NewJob creates a fresh shared frame ready to be searched and, optionally, published.
func NewJob(hash board.ZobristHash, depth, ply int, alpha, beta eval.Score) *Job {
	return &Job{
		Hash:  hash,
		Depth: depth,
		Ply:   ply,
		Alpha: alpha,
		Beta:  beta,
		Bound: ttable.UpperBound,
		PV:    &PVLine{},
	}
}

// NextMove takes the next move from the job's picker under the job's lock, since helpers and the
// owning worker share one picker. The returned int is the move's 1-based number at this node
// (job.Count() in the original engine), shared across every worker drawing from this job so
// futility/LMR/history-pruning gating stays consistent regardless of who searches the move.
func (j *Job) NextMove() (board.Move, int, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.Picker == nil {
		return board.Move{}, 0, false
	}
	m, ok := j.Picker.Next()
	if !ok {
		return board.Move{}, 0, false
	}
	j.moveNumber++
	return m, j.moveNumber, true
}

// UpdateAlpha merges a completed child's score into the job's running alpha/PV, under the job's
// lock. Returns true if this produced a beta cutoff.
func (j *Job) UpdateAlpha(move board.Move, score eval.Score, childPV *PVLine) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.HasLegalMove = true
	if score > j.Alpha {
		j.Alpha = score
		j.Bound = ttable.Exact
		j.PV.Set(move, childPV)
	}
	if j.Alpha >= j.Beta {
		j.Bound = ttable.LowerBound
		return true
	}
	return false
}

// BetaCutBelow reports whether a sibling has already produced a beta cut at or above the given
// ply, meaning this worker's contribution to the job is moot and it should return immediately.
func (j *Job) BetaCutBelow(ply int) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.cutAt != 0 && j.cutAt <= ply
}

// BroadcastCut records that a beta cut occurred at the given ply, visible to every helper
// attached to this job.
func (j *Job) BroadcastCut(ply int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cutAt == 0 || ply < j.cutAt {
		j.cutAt = ply
	}
}

// ClearCut resets the beta-cut broadcast once the owning worker finishes post-processing the
// node at this level.
func (j *Job) ClearCut() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.cutAt = 0
}

func (j *Job) attachHelper(w *Worker) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.helpers = append(j.helpers, w)
}
