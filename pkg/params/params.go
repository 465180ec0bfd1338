// Package params holds the tunable search parameters and the derived tables computed from them
// once per top-level search, so that no floating-point arithmetic or parameter reads race with
// configuration changes inside the search hot path (spec §4.9).
package params

import "github.com/seekerror/stdlib/pkg/util/mathx"

const (
	MaxPlies      = 128
	MaxCandidates = 218 // generous upper bound on legal moves in any position

	NullMoveMinDepth    = 3
	NullMoveReduction   = 3
	IIDMinDepth         = 5
	IIDReduction        = 2
	ProbCutMinDepth     = 5
	ProbCutMargin       = 100
	CheckExtension      = 1
	FutilityMaxDepth    = 6
	LMRMinMoveNumber    = 4
	LMRMinDepth         = 3
	HistoryPruneMinDepth = 3

	YBWCInvalidMoves = 1
	YBWCLimitDepth   = 4

	HistoryPruneFraction = 0.25
	HistoryPruneMin      = 1
	LMRFraction          = 0.5
	LMRMin               = 1
)

// Params is a snapshot of every tunable value plus the tables derived from them, copied once at
// the start of a top-level search (spec §4.9).
type Params struct {
	HistoryPruningInvalidMoves [MaxCandidates + 1]int
	LMRInvalidMoves            [MaxCandidates + 1]int
	FutilityMargin             [FutilityMaxDepth + 1]int

	NullMoveMinDepth  int
	NullMoveReduction int
	IIDMinDepth       int
	IIDReduction      int
	ProbCutMinDepth   int
	ProbCutMargin     int
	CheckExtension    int
	LMRMinMoveNumber  int
	LMRMinDepth       int

	YBWCInvalidMoves int
	YBWCLimitDepth   int
}

// Default builds the parameter snapshot from the package's tunable constants, precomputing the
// per-move-count (indexed by a node's total number of moves) and per-depth tables.
func Default() *Params {
	p := &Params{
		NullMoveMinDepth:  NullMoveMinDepth,
		NullMoveReduction: NullMoveReduction,
		IIDMinDepth:       IIDMinDepth,
		IIDReduction:      IIDReduction,
		ProbCutMinDepth:   ProbCutMinDepth,
		ProbCutMargin:     ProbCutMargin,
		CheckExtension:    CheckExtension,
		LMRMinMoveNumber:  LMRMinMoveNumber,
		LMRMinDepth:       LMRMinDepth,
		YBWCInvalidMoves:  YBWCInvalidMoves,
		YBWCLimitDepth:    YBWCLimitDepth,
	}

	for k := 0; k <= MaxCandidates; k++ {
		p.HistoryPruningInvalidMoves[k] = mathx.Max(HistoryPruneMin, int(HistoryPruneFraction*float64(k)))
		p.LMRInvalidMoves[k] = mathx.Max(LMRMin, int(LMRFraction*float64(k)))
	}
	for d := 0; d <= FutilityMaxDepth; d++ {
		p.FutilityMargin[d] = 80 + 60*d
	}
	return p
}

// FutilityMarginAt returns the futility margin for a remaining depth, or an effective infinity
// above the pruning band so the caller's "margin <= alpha" check never fires there.
func (p *Params) FutilityMarginAt(depth int) int {
	depth = mathx.Max(0, depth)
	if depth > FutilityMaxDepth {
		return 1 << 30
	}
	return p.FutilityMargin[depth]
}
