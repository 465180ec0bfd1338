package search

import (
	"fmt"
	"time"

	"github.com/corvid-chess/corvid/pkg/board"
	"github.com/corvid-chess/corvid/pkg/eval"
)

// PV is the principal variation produced by one iterative-deepening depth.
type PV struct {
	Depth   int
	SelDepth int
	Moves   []board.Move
	Score   eval.Score
	MateIn  int // plies to mate from the root; 0 if not a mate score
	Nodes   uint64
	Time    time.Duration
	Hashfull int // permille
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v pv=%v", p.Depth, p.Score, p.Nodes, p.Time, board.FormatMoves(p.Moves))
}

// PVLine accumulates the best line found so far at a node: at most MaxPlies+1 moves with an
// attached score (spec §3). Not safe for concurrent use; owned by a single Job under its mutex.
type PVLine struct {
	moves []board.Move
}

func (l *PVLine) Set(m board.Move, child *PVLine) {
	l.moves = l.moves[:0]
	l.moves = append(l.moves, m)
	if child != nil {
		l.moves = append(l.moves, child.moves...)
	}
}

func (l *PVLine) Moves() []board.Move {
	return append([]board.Move{}, l.moves...)
}
