package search

import (
	"github.com/corvid-chess/corvid/pkg/board"
	"github.com/corvid-chess/corvid/pkg/params"
)

// History is the [side][from][to] quiet-move-ordering table (spec §4.4). Updates and reads are
// intentionally unsynchronized: torn reads only misorder candidate moves, never corrupt search
// correctness, so the cost of locking isn't worth paying.
type History struct {
	table [board.NumColors][64][64]uint32
	max   uint32
}

func NewHistory() *History {
	return &History{}
}

// Bonus returns f(remaining depth): the increment applied when a quiet move produces a cut.
func (h *History) Bonus(depth int) uint32 {
	if depth < 0 {
		depth = 0
	}
	return uint32(depth * depth)
}

// Record credits a quiet move that produced a beta cutoff.
func (h *History) Record(side board.Color, m board.Move, depth int) {
	if !m.IsQuiet() {
		return
	}
	v := h.table[side][m.From][m.To] + h.Bonus(depth)
	h.table[side][m.From][m.To] = v
	if v > h.max {
		h.max = v
	}
}

// Value returns the current history score for a move.
func (h *History) Value(side board.Color, m board.Move) uint32 {
	return h.table[side][m.From][m.To]
}

// Max returns the largest history value recorded so far, used as the denominator for the
// history-pruning fraction test.
func (h *History) Max() uint32 {
	if h.max == 0 {
		return 1
	}
	return h.max
}

// Reset clears the table for a new top-level search.
func (h *History) Reset() {
	h.table = [board.NumColors][64][64]uint32{}
	h.max = 0
}

// Killers holds, per ply, the two most recent quiet moves that produced a beta cut. A cut at ply
// is also pushed into the pair at ply-2, so nodes two plies up see cuts found deeper in the tree
// (spec §4.4).
type Killers struct {
	slots [params.MaxPlies][2]board.Move
}

func NewKillers() *Killers {
	return &Killers{}
}

// Record stores m as the most recent killer at ply, shifting the previous one into the second
// slot, and seeds the two-plies-ahead slot at ply-2 so an ancestor node can reuse it too.
func (k *Killers) Record(ply int, m board.Move) {
	if !m.IsQuiet() || ply < 0 || ply >= params.MaxPlies {
		return
	}
	if k.slots[ply][0].Equals(m) {
		return
	}
	k.slots[ply][1] = k.slots[ply][0]
	k.slots[ply][0] = m

	if ply >= 2 {
		k.slots[ply-2][1] = k.slots[ply-2][0]
		k.slots[ply-2][0] = m
	}
}

// IsKiller reports whether m is one of the two killer moves recorded at ply.
func (k *Killers) IsKiller(ply int, m board.Move) bool {
	if ply < 0 || ply >= params.MaxPlies {
		return false
	}
	return k.slots[ply][0].Equals(m) || k.slots[ply][1].Equals(m)
}

func (k *Killers) Reset() {
	k.slots = [params.MaxPlies][2]board.Move{}
}
