package search

import (
	"context"
	"sync"
	"time"

	"github.com/corvid-chess/corvid/pkg/board"
	"github.com/corvid-chess/corvid/pkg/eval"
	"github.com/corvid-chess/corvid/pkg/ttable"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// aspirationWindow is the initial +/- band around the previous iteration's score that the next
// iteration's root search opens with, widened on fail-high/fail-low (spec §4.6).
const aspirationWindow = eval.Score(50)

// RootLauncher is the Launcher implementation wiring a Coordinator's shared table and helper
// pool into one iteratively-deepened search from a caller-owned board.
type RootLauncher struct {
	TT         *ttable.Table
	NumThreads int
}

// NewRootLauncher builds a launcher around a fresh transposition table of the given size.
func NewRootLauncher(ttBytes uint64, numThreads int) *RootLauncher {
	if numThreads < 1 {
		numThreads = 1
	}
	return &RootLauncher{TT: ttable.New(ttBytes), NumThreads: numThreads}
}

type rootHandle struct {
	stop  *StopController
	coord *Coordinator
	quit  iox.AsyncCloser // closed by Halt; cancels the working context every node observes
	mu    sync.Mutex
	last  PV
	done  chan struct{}
}

func (h *rootHandle) Halt() PV {
	h.quit.Close()
	h.stop.Halt()
	<-h.done
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

func (h *rootHandle) PonderHit() {
	h.stop.PonderHit(h.stop.end)
}

// Launch starts a new iteratively-deepened search. The caller must not touch b again until the
// returned Handle is Halted (or the PV channel closes): the root worker owns it exclusively,
// though Fork'd copies are handed to helpers.
func (l *RootLauncher) Launch(ctx context.Context, b *board.Board, opt Options) (Handle, <-chan PV) {
	end := time.Time{}
	if dl, ok := ctx.Deadline(); ok {
		end = dl
	}

	quit := iox.NewAsyncCloser()
	wctx, cancel := contextx.WithQuitCancel(ctx, quit.Closed())

	maxDepth, _ := opt.DepthLimit.V()
	nodesLimit, _ := opt.NodesLimit.V()
	stop := NewStopController(wctx, maxDepth, nodesLimit, end, opt.Infinite)

	coord := NewCoordinator(l.TT, l.NumThreads-1)
	coord.Stop = stop
	coord.Reset(eval.NewCache(b.Position()))
	coord.StartHelpers()

	out := make(chan PV, 1)
	h := &rootHandle{stop: stop, coord: coord, quit: quit, done: make(chan struct{})}

	go func() {
		defer cancel()
		defer close(out)
		defer close(h.done)
		defer coord.StopHelpers()
		defer stop.Stop()
		stop.StartTicker()

		root := &Worker{id: 0, coord: coord, board: b}
		start := time.Now()

		var lastPV []board.Move
		alpha, beta := eval.NegInf, eval.Inf

		for depth := 1; maxDepth == 0 || depth <= maxDepth; depth++ {
			if stop.JudgeToStop() {
				return
			}
			stop.SetIteration(depth)

			if depth >= 2 {
				alpha = clampScore(alpha - aspirationWindow)
				beta = clampScore(beta + aspirationWindow)
			}

			score, pv := searchWithAspiration(root, depth, alpha, beta)
			if stop.JudgeToStop() && depth > 1 {
				return
			}

			moves := pv.Moves()
			if len(moves) > 0 {
				lastPV = moves
			}
			alpha, beta = score, score // widened by aspirationWindow at the top of the next iteration

			result := PV{
				Depth: depth,
				Moves: lastPV,
				Score: score,
				Nodes: stop.nodes.Load(),
				Time:  time.Since(start),
				Hashfull: coord.TT.UtilizationPermille(),
			}
			if mateIn, ok := score.MateIn(); ok {
				result.MateIn = mateIn
			}

			h.mu.Lock()
			h.last = result
			h.mu.Unlock()

			select {
			case out <- result:
			case <-ctx.Done():
				return
			}

			if opt.MateLimit > 0 {
				if mateIn, ok := score.MateIn(); ok && mateIn > 0 && (mateIn+1)/2 <= opt.MateLimit {
					return
				}
			}
		}
	}()

	return h, out
}

// searchWithAspiration runs the root search, and on a fail-high/fail-low re-searches with the
// window widened by doubling the aspiration delta each time, escalating straight to an unbounded
// window once the score looks like a mate (spec §4.6, matching the original engine's widening
// loop in SearchRootParallel).
func searchWithAspiration(root *Worker, depth int, alpha, beta eval.Score) (eval.Score, *PVLine) {
	delta := aspirationWindow
	score, pv := root.Search(PVNode, depth, 0, alpha, beta)

	for (score <= alpha || score >= beta) && !root.coord.Stop.JudgeToStop() {
		if _, isMate := score.MateIn(); isMate {
			alpha, beta = eval.NegInf, eval.Inf
		} else {
			delta *= 2
			if score <= alpha {
				alpha = clampScore(alpha - delta)
			} else {
				beta = clampScore(beta + delta)
			}
		}
		score, pv = root.Search(PVNode, depth, 0, alpha, beta)
	}
	return score, pv
}

func clampScore(s eval.Score) eval.Score {
	if s > eval.Inf {
		return eval.Inf
	}
	if s < eval.NegInf {
		return eval.NegInf
	}
	return s
}
