package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/corvid-chess/corvid/pkg/board/fen"
	"github.com/corvid-chess/corvid/pkg/engine"
	"github.com/corvid-chess/corvid/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return engine.New(context.Background(), "corvid-test", "test-author", engine.WithZobrist(1))
}

func TestNewResetsToStartpos(t *testing.T) {
	e := newEngine(t)
	assert.Equal(t, fen.Startpos, e.Position())
}

func TestMoveAppliesLegalMove(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, e.Move(context.Background(), "e2e4"))
	assert.NotEqual(t, fen.Startpos, e.Position())
}

func TestMoveRejectsIllegalMove(t *testing.T) {
	e := newEngine(t)
	err := e.Move(context.Background(), "e2e5")
	assert.Error(t, err)
}

func TestMoveRejectsMalformedNotation(t *testing.T) {
	e := newEngine(t)
	err := e.Move(context.Background(), "not-a-move")
	assert.Error(t, err)
}

func TestTakeBackUndoesLastMove(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, e.Move(context.Background(), "e2e4"))
	require.NoError(t, e.TakeBack(context.Background()))
	assert.Equal(t, fen.Startpos, e.Position())
}

func TestTakeBackWithNoHistoryIsAnError(t *testing.T) {
	e := newEngine(t)
	err := e.TakeBack(context.Background())
	assert.Error(t, err)
}

func TestResetFallsBackToStartposOnMalformedFEN(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, e.Move(context.Background(), "e2e4"))
	require.NoError(t, e.Reset(context.Background(), "garbage"))
	assert.Equal(t, fen.Startpos, e.Position())
}

func TestHaltWithNoActiveSearchIsAnError(t *testing.T) {
	e := newEngine(t)
	_, err := e.Halt(context.Background())
	assert.Error(t, err)
}

func TestAnalyzeRejectsOverlappingSearch(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	_, err := e.Analyze(ctx, search.Options{DepthLimit: lang.Some(1)})
	require.NoError(t, err)

	_, err = e.Analyze(ctx, search.Options{DepthLimit: lang.Some(1)})
	assert.Error(t, err)

	_, haltErr := e.Halt(ctx)
	require.NoError(t, haltErr)
}

func TestAnalyzeStreamsAtLeastOnePV(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	out, err := e.Analyze(ctx, search.Options{DepthLimit: lang.Some(2)})
	require.NoError(t, err)

	select {
	case pv, ok := <-out:
		require.True(t, ok)
		assert.NotEmpty(t, pv.Moves)
	case <-time.After(5 * time.Second):
		t.Fatal("no PV reported within timeout")
	}

	e.Halt(ctx)
}

func TestHaltAfterSearchCompletesReturnsLastPV(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	out, err := e.Analyze(ctx, search.Options{DepthLimit: lang.Some(1)})
	require.NoError(t, err)
	for range out {
	}

	pv, err := e.Halt(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, pv.Depth)
}
