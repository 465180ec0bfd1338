// Package eval computes a centipawn position score from the side-to-move's perspective, summing
// material, positional, and structural terms against a phase-interpolated per-piece-count cache
// so that no floating-point work occurs during search (spec §4.3/§4.9).
package eval

import (
	"fmt"

	"github.com/corvid-chess/corvid/pkg/board"
)

// Score is a signed centipawn score. Positive favors the side to move. Mate scores are encoded
// near +/-Mate, with the distance to mate subtracted per ply so that shorter mates sort higher.
type Score int32

const (
	Mate     Score = 1000000
	MaxScore Score = Mate
	MinScore Score = -Mate
	Inf            = MaxScore + 1
	NegInf         = MinScore - 1
	Draw     Score = 0
)

func (s Score) String() string {
	if d, ok := s.MateIn(); ok {
		return fmt.Sprintf("mate %v", d)
	}
	return fmt.Sprintf("cp %v", int(s))
}

// MateIn reports the signed number of plies to mate, if s is a mate score: positive if the side
// to move delivers it, negative if the side to move is being mated.
func (s Score) MateIn() (int, bool) {
	switch {
	case s > Mate-1000 && s <= Mate:
		return int(Mate - s + 1), true
	case s < -Mate+1000 && s >= -Mate:
		return -int(s+Mate+1) - 1, true
	default:
		return 0, false
	}
}

// Mated returns the score for being checkmated at the given ply from the root.
func Mated(ply int) Score {
	return -Mate + Score(ply)
}

// IncrementMateDistance nudges a mate score one ply further from the root as it propagates up
// the recursion, so that shorter mates are always preferred over longer ones.
func IncrementMateDistance(s Score) Score {
	switch {
	case s > Mate-1000:
		return s - 1
	case s < -Mate+1000:
		return s + 1
	default:
		return s
	}
}

// Unit returns +1 for White, -1 for Black: negamax sign convention.
func Unit(c board.Color) Score {
	return Score(c.Sign())
}

func Crop(s Score) Score {
	switch {
	case s > MaxScore:
		return MaxScore
	case s < MinScore:
		return MinScore
	default:
		return s
	}
}

func Max(a, b Score) Score {
	if a < b {
		return b
	}
	return a
}

func Min(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}
