package search

import (
	"fmt"
	"time"

	"github.com/corvid-chess/corvid/pkg/board"
)

// TimeControl mirrors a UCI "go wtime/btime/movestogo" clock: remaining time per side and moves
// left to the next control (0 == rest of the game).
type TimeControl struct {
	White, Black time.Duration
	Moves        int
}

// Limits returns a soft and hard budget for the side to move. After the soft limit, no further
// iterative-deepening iteration should be started; the hard limit is an absolute cutoff enforced
// by StopController's ticker. Assumes 40 moves to the end of the game if movestogo is unknown.
func (t TimeControl) Limits(c board.Color) (soft, hard time.Duration) {
	remainder := t.White
	if c == board.Black {
		remainder = t.Black
	}

	moves := time.Duration(40)
	if t.Moves > 0 {
		moves = time.Duration(t.Moves) + 1
	}

	soft = remainder / (2 * moves)
	hard = 3 * soft
	return soft, hard
}

func (t TimeControl) String() string {
	if t.Moves == 0 {
		return fmt.Sprintf("%.1fs<>%.1fs", t.White.Seconds(), t.Black.Seconds())
	}
	return fmt.Sprintf("%.1fs<>%.1fs[moves=%v]", t.White.Seconds(), t.Black.Seconds(), t.Moves)
}
