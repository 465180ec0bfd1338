package search

import (
	"github.com/corvid-chess/corvid/pkg/eval"
	"github.com/corvid-chess/corvid/pkg/params"
	"github.com/corvid-chess/corvid/pkg/ttable"
)

// Coordinator holds the state shared by every worker of one top-level search: the transposition
// table, parameter snapshot, history/killer tables, helper queue and stop controller (spec §3,
// §5). It outlives individual searches; Reset prepares it for a new one.
type Coordinator struct {
	TT      *ttable.Table
	Params  *params.Params
	History *History
	Killers *Killers
	Queue   *HelperQueue
	Cache   *eval.Cache
	Stop    *StopController

	NumHelpers int
}

// NewCoordinator builds a coordinator around a shared transposition table.
func NewCoordinator(tt *ttable.Table, numHelpers int) *Coordinator {
	return &Coordinator{
		TT:         tt,
		Params:     params.Default(),
		History:    NewHistory(),
		Killers:    NewKillers(),
		Queue:      NewHelperQueue(),
		NumHelpers: numHelpers,
	}
}

// Reset clears per-search state (history, killers) and bumps the transposition table's age, at
// the start of each root iterative-deepening search (spec §4.6).
func (c *Coordinator) Reset(cache *eval.Cache) {
	c.History.Reset()
	c.Killers.Reset()
	c.Cache = cache
	c.TT.GrowOld()
}

// StartHelpers launches NumHelpers persistent goroutines blocked on the helper queue, each
// running its own Worker against a board forked from whatever job it joins.
func (c *Coordinator) StartHelpers() {
	for i := 0; i < c.NumHelpers; i++ {
		w := &Worker{id: i + 1, coord: c}
		go w.helperLoop()
	}
}

// StopHelpers signals every helper goroutine to exit and blocks until they have.
func (c *Coordinator) StopHelpers() {
	c.Queue.ReleaseAll()
}
