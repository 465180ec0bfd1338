package search

import (
	"context"
	"sync"
	"time"

	"github.com/seekerror/stdlib/pkg/util/contextx"
	"go.uber.org/atomic"
)

// StopController centralizes the depth/nodes/time/infinite stop criteria (spec §4.10). A
// background ticker periodically samples wall-clock time and, once a limit is crossed, flips
// StopNow so every worker observes it at the top of its next node. It also holds the launcher's
// working context, so a caller-driven cancellation (Halt, or the parent ctx being cancelled)
// is visible at every node via the same JudgeToStop check.
type StopController struct {
	ctx context.Context

	maxDepth int // 0 == unlimited
	maxNodes uint64

	start, end time.Time
	infinite   atomic.Bool

	stopNow  atomic.Bool
	timeOver atomic.Bool

	nodes             atomic.Uint64
	currentIteration  atomic.Int32

	tickerDone chan struct{}
	once       sync.Once
}

// NewStopController builds a controller; a zero end time means no time limit. ctx is sampled by
// JudgeToStop via contextx.IsCancelled, so cancelling it (or closing the quit signal it was built
// with, via contextx.WithQuitCancel) stops the search the same way Halt does.
func NewStopController(ctx context.Context, maxDepth int, maxNodes uint64, end time.Time, infinite bool) *StopController {
	c := &StopController{
		ctx:      ctx,
		maxDepth: maxDepth,
		maxNodes: maxNodes,
		start:    time.Now(),
		end:      end,
	}
	c.infinite.Store(infinite)
	return c
}

// StartTicker launches the periodic wall-clock sampling thread, every few milliseconds, per spec
// §4.10; node and depth limits are checked by JudgeToStop itself. Call Stop to join it.
func (c *StopController) StartTicker() {
	c.tickerDone = make(chan struct{})
	go func() {
		t := time.NewTicker(5 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-c.tickerDone:
				return
			case <-t.C:
				c.sample()
			}
		}
	}()
}

func (c *StopController) sample() {
	if c.infinite.Load() {
		return
	}
	if !c.end.IsZero() && time.Now().After(c.end) {
		c.timeOver.Store(true)
		c.stopNow.Store(true)
	}
}

// Stop joins the ticker thread, if started. Idempotent.
func (c *StopController) Stop() {
	c.once.Do(func() {
		if c.tickerDone != nil {
			close(c.tickerDone)
		}
	})
}

// Halt requests an immediate stop, as if the external `stop` command fired.
func (c *StopController) Halt() {
	c.stopNow.Store(true)
}

// PonderHit flips infinite thinking off so the configured time budget starts counting now.
func (c *StopController) PonderHit(end time.Time) {
	c.end = end
	c.infinite.Store(false)
}

// AddNodes accounts nodes expanded towards the node limit. Racy increments are fine; the limit
// only needs to be crossed eventually, not exactly.
func (c *StopController) AddNodes(n uint64) {
	c.nodes.Add(n)
}

// SetIteration records the iterative-deepening depth currently in progress.
func (c *StopController) SetIteration(d int) {
	c.currentIteration.Store(int32(d))
}

// JudgeToStop reports whether the search should stop now. Node and depth limits are checked
// directly (cheap atomic loads, safe to call at every node); the wall-clock limit is instead
// sampled periodically by the ticker into timeOver, since time.Now() is comparatively expensive
// to call at every node entry.
func (c *StopController) JudgeToStop() bool {
	if c.stopNow.Load() {
		return true
	}
	if c.ctx != nil && contextx.IsCancelled(c.ctx) {
		return true
	}
	if c.maxNodes > 0 && c.nodes.Load() >= c.maxNodes {
		return true
	}
	if c.maxDepth > 0 && int(c.currentIteration.Load()) > c.maxDepth {
		return true
	}
	if c.infinite.Load() {
		return false
	}
	return c.timeOver.Load()
}
