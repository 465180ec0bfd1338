// Package search implements the parallel, iteratively-deepened principal-variation search:
// the recursive worker (§4.5), the YBWC job/helper-queue coordinator (§4.7), and the stop
// controller (§4.10).
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/corvid-chess/corvid/pkg/board"
	"github.com/seekerror/stdlib/pkg/lang"
)

// ErrHalted indicates the search was stopped before completing its current iteration.
var ErrHalted = errors.New("search: halted")

// Options hold dynamic, per-search parameters the caller may vary between searches. Limits the
// caller didn't set are absent rather than zero, so a launcher never has to guess whether 0 means
// "no limit" or "stop immediately".
type Options struct {
	DepthLimit lang.Optional[int]
	NodesLimit lang.Optional[uint64]
	MateLimit  int // stop once a mate in this many moves (or fewer) is confirmed; 0 == disabled
	Infinite   bool
	Threads    int
	SearchMoves []board.Move // moves given with "go searchmoves"; not read by the search, which considers every root move

	MoveTime    time.Duration             // exact per-move budget, if set ("go movetime")
	TimeControl lang.Optional[TimeControl] // clock-based budget, if set ("go wtime/btime[/movestogo]")
	Turn        board.Color               // side to move, needed to resolve TimeControl's per-side clock
}

func (o Options) String() string {
	var parts []string
	if v, ok := o.DepthLimit.V(); ok {
		parts = append(parts, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.NodesLimit.V(); ok {
		parts = append(parts, fmt.Sprintf("nodes=%v", v))
	}
	if o.Infinite {
		parts = append(parts, "infinite")
	}
	return fmt.Sprintf("[%v]", strings.Join(parts, ", "))
}

// Launcher starts a new iteratively-deepened search from a position the caller exclusively owns
// (a forked Board). It streams a PV on every completed iteration and closes the channel once the
// search is exhausted or stopped.
type Launcher interface {
	Launch(ctx context.Context, b *board.Board, opt Options) (Handle, <-chan PV)
}

// Handle lets the caller manage an in-flight search.
type Handle interface {
	// Halt stops the search, if running, and returns the last completed PV. Idempotent.
	Halt() PV
	// PonderHit flips "infinite" off; the time limit that then applies is the one fixed when the
	// search was launched, not a budget counted from the ponderhit.
	PonderHit()
}
