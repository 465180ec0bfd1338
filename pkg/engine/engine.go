// Package engine encapsulates game-playing logic: the current board, the search launcher and
// the transposition table, behind the small synchronous API a UCI driver or embedding program
// drives (spec §6).
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/corvid-chess/corvid/pkg/board"
	"github.com/corvid-chess/corvid/pkg/board/fen"
	"github.com/corvid-chess/corvid/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// Options are engine creation/runtime options.
type Options struct {
	// Depth is the default search depth limit if the caller's search options don't set one.
	Depth int
	// Hash is the transposition table size in MB.
	Hash uint
	// Threads is the number of search worker goroutines, including the root worker.
	Threads int
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%vMB, threads=%v}", o.Depth, o.Hash, o.Threads)
}

// Engine wraps a board plus a search launcher behind a small synchronous API: Reset/Move/
// TakeBack mutate the board directly; Analyze/Halt manage a single active search.
type Engine struct {
	name, author string
	zt           *board.ZobristTable
	seed         int64
	opts         Options

	mu       sync.Mutex
	b        *board.Board
	launcher *search.RootLauncher
	active   search.Handle
}

// Option is an engine creation option.
type Option func(*Engine)

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) { e.opts = opts }
}

// WithZobrist seeds the Zobrist table deterministically, for reproducible tests.
func WithZobrist(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// New creates an engine, resetting it to the standard starting position.
func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{name: name, author: author, opts: Options{Hash: 64, Threads: 1}}
	for _, fn := range opts {
		fn(e)
	}
	e.zt = board.NewZobristTable(e.seed)
	e.launcher = search.NewRootLauncher(uint64(e.opts.Hash)<<20, e.opts.Threads)

	_ = e.Reset(ctx, fen.Startpos)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author string reported to the embedding protocol.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

func (e *Engine) SetDepth(depth int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.Depth = depth
}

// SetHash resizes the transposition table, discarding its contents.
func (e *Engine) SetHash(sizeMB uint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.Hash = sizeMB
	e.launcher = search.NewRootLauncher(uint64(sizeMB)<<20, e.opts.Threads)
}

func (e *Engine) SetThreads(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.Threads = n
	e.launcher = search.NewRootLauncher(uint64(e.opts.Hash)<<20, n)
}

// ClearHash discards the transposition table's contents without resizing it.
func (e *Engine) ClearHash() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.launcher = search.NewRootLauncher(uint64(e.opts.Hash)<<20, e.opts.Threads)
}

// Board returns a forked copy of the current board, safe for the caller to search or inspect
// without racing Move/Reset.
func (e *Engine) Board() *board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.b.Fork()
}

// Position returns the current position in notation text, for display or logging.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.b.Position()
	return fen.Format(p, e.b.Turn(), e.b.NoProgress(), e.b.FullMoves())
}

// Reset resets the engine to the given position, or the starting position if s is empty.
// Malformed notation text falls back to the starting position (spec §7).
func (e *Engine) Reset(ctx context.Context, s string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if s == "" {
		s = fen.Startpos
	}
	logw.Infof(ctx, "Reset %v, opt=%v", s, e.opts)

	e.haltSearchIfActive(ctx)

	parsed := fen.Parse(s)
	e.b = board.NewBoard(e.zt, parsed.Board, parsed.Turn, parsed.FullMoves)

	logw.Infof(ctx, "New board: %v", e.b.Position())
	return nil
}

// Move applies an externally supplied move, usually an opponent's, given in long algebraic
// coordinate notation. Per spec §7, an illegal move from an embedding call is reported as an
// error rather than silently ignored or applied.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	candidate, err := board.ParseMove(move)
	if err != nil {
		return fmt.Errorf("invalid move %q: %w", move, err)
	}

	e.haltSearchIfActive(ctx)

	for _, m := range e.b.Position().PseudoLegalMoves(e.b.Turn()) {
		if !candidate.Equals(m) {
			continue
		}
		if !e.b.PushMove(m) {
			return fmt.Errorf("illegal move: %v leaves own king in check", m)
		}
		logw.Infof(ctx, "Move %v: %v", m, e.b.Position())
		return nil
	}
	return fmt.Errorf("illegal move: %v", candidate)
}

// TakeBack undoes the latest move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchIfActive(ctx)

	m, ok := e.b.PopMove()
	if !ok {
		return fmt.Errorf("no move to take back")
	}
	logw.Infof(ctx, "Takeback %v", m)
	return nil
}

// Analyze starts a new search of the current position. Only one search may be active at a time.
func (e *Engine) Analyze(ctx context.Context, opt search.Options) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}
	if _, ok := opt.DepthLimit.V(); !ok && e.opts.Depth > 0 {
		opt.DepthLimit = lang.Some(e.opts.Depth)
	}
	if opt.Threads == 0 {
		opt.Threads = e.opts.Threads
	}

	logw.Infof(ctx, "Analyze %v, opt=%v", e.b.Position(), opt)

	ctx, _ = deadlineFor(ctx, opt, e.b.Turn()) // cancel func is a no-op cleanup; the timer self-fires at the deadline

	handle, out := e.launcher.Launch(ctx, e.b.Fork(), opt)
	e.active = handle
	return out, nil
}

// deadlineFor derives a context deadline from a movetime budget or a clock-based time control
// (spec §6's "go" sub-options), per the hard-limit formula of TimeControl.Limits. Neither set
// means an infinite/depth/node-bounded search with no time cutoff.
func deadlineFor(ctx context.Context, opt search.Options, turn board.Color) (context.Context, context.CancelFunc) {
	switch {
	case opt.MoveTime > 0:
		return context.WithTimeout(ctx, opt.MoveTime)
	default:
		if tc, ok := opt.TimeControl.V(); ok {
			_, hard := tc.Limits(turn)
			return context.WithTimeout(ctx, hard)
		}
		return ctx, nil
	}
}

// Halt halts the active search and returns the principal variation found so far, if any.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pv, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("no active search")
	}
	return pv, nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.PV, bool) {
	if e.active == nil {
		return search.PV{}, false
	}
	pv := e.active.Halt()
	logw.Infof(ctx, "Search halted: %v", pv)
	e.active = nil
	return pv, true
}
