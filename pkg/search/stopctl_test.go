package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/corvid-chess/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestStopControllerHaltIsImmediate(t *testing.T) {
	c := search.NewStopController(context.Background(), 0, 0, time.Time{}, true)
	assert.False(t, c.JudgeToStop())

	c.Halt()
	assert.True(t, c.JudgeToStop())
}

func TestStopControllerTimeLimit(t *testing.T) {
	c := search.NewStopController(context.Background(), 0, 0, time.Now().Add(20*time.Millisecond), false)
	c.StartTicker()
	defer c.Stop()

	assert.Eventually(t, c.JudgeToStop, time.Second, 5*time.Millisecond)
}

func TestStopControllerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := search.NewStopController(ctx, 0, 0, time.Time{}, true)
	assert.False(t, c.JudgeToStop())

	cancel()
	assert.True(t, c.JudgeToStop())
}

func TestStopControllerNodeLimit(t *testing.T) {
	c := search.NewStopController(context.Background(), 0, 100, time.Time{}, false)
	c.AddNodes(50)
	assert.False(t, c.JudgeToStop())
	c.AddNodes(60)
	assert.True(t, c.JudgeToStop())
}
