package params_test

import (
	"testing"

	"github.com/corvid-chess/corvid/pkg/params"
	"github.com/stretchr/testify/assert"
)

func TestDefaultCopiesTunableConstants(t *testing.T) {
	p := params.Default()
	assert.Equal(t, params.NullMoveMinDepth, p.NullMoveMinDepth)
	assert.Equal(t, params.NullMoveReduction, p.NullMoveReduction)
	assert.Equal(t, params.IIDMinDepth, p.IIDMinDepth)
	assert.Equal(t, params.ProbCutMargin, p.ProbCutMargin)
	assert.Equal(t, params.YBWCLimitDepth, p.YBWCLimitDepth)
}

// TestHistoryAndLMRTablesAreMonotonic checks both per-move-count tables (indexed by a node's total
// number of moves) never decrease as that count increases.
func TestHistoryAndLMRTablesAreMonotonic(t *testing.T) {
	p := params.Default()
	for k := 1; k <= params.MaxCandidates; k++ {
		assert.GreaterOrEqual(t, p.HistoryPruningInvalidMoves[k], p.HistoryPruningInvalidMoves[k-1])
		assert.GreaterOrEqual(t, p.LMRInvalidMoves[k], p.LMRInvalidMoves[k-1])
	}
}

func TestHistoryAndLMRTablesRespectFloor(t *testing.T) {
	p := params.Default()
	assert.Equal(t, params.HistoryPruneMin, p.HistoryPruningInvalidMoves[0])
	assert.Equal(t, params.LMRMin, p.LMRInvalidMoves[0])
}

func TestFutilityMarginAtIsIncreasingWithinBand(t *testing.T) {
	p := params.Default()
	prev := p.FutilityMarginAt(0)
	for d := 1; d <= params.FutilityMaxDepth; d++ {
		cur := p.FutilityMarginAt(d)
		assert.Greater(t, cur, prev)
		prev = cur
	}
}

func TestFutilityMarginAtClampsNegativeDepthToZero(t *testing.T) {
	p := params.Default()
	assert.Equal(t, p.FutilityMarginAt(0), p.FutilityMarginAt(-5))
}

func TestFutilityMarginAtIsEffectivelyInfiniteAboveBand(t *testing.T) {
	p := params.Default()
	assert.Equal(t, 1<<30, p.FutilityMarginAt(params.FutilityMaxDepth+1))
}
