package search

import "github.com/corvid-chess/corvid/pkg/board"

// Priority bands, highest first, implementing the six-stage generator of spec §4.1. Each band
// leaves headroom for an in-band refinement term (SEE value, history count) without overlapping
// neighboring bands.
const (
	bandHash     board.MovePriority = 100000
	bandIID      board.MovePriority = 90000
	bandCapture  board.MovePriority = 70000
	bandKiller1  board.MovePriority = 60000
	bandKiller2  board.MovePriority = 59000
	bandQuiet    board.MovePriority = 0
	bandBad      board.MovePriority = -70000
)

// staticExchange abstracts board.Position.StaticExchangeEval so ordering can be unit-tested
// without a live position, and so non-capturing promotions (which StaticExchangeEval doesn't
// model) can be special-cased by the caller.
type staticExchange func(m board.Move) int

// OrderingInputs bundles the context a move needs to be scored against.
type OrderingInputs struct {
	Hash    board.Move
	IID     board.Move
	Killers *Killers
	History *History
	Side    board.Color
	Ply     int
	SEE     staticExchange
}

// PriorityFn builds the six-stage move ordering function described by spec §4.1.
func (in OrderingInputs) PriorityFn() board.MovePriorityFn {
	hasHash := in.Hash != (board.Move{})
	hasIID := in.IID != (board.Move{})

	return func(m board.Move) board.MovePriority {
		switch {
		case hasHash && in.Hash.Equals(m):
			return bandHash
		case hasIID && in.IID.Equals(m):
			return bandIID
		case m.IsCapture() || m.IsPromotion():
			gain := board.NominalGain(m)
			see := gain
			if in.SEE != nil && m.IsCapture() {
				see = in.SEE(m)
			}
			if see < 0 {
				return bandBad + board.MovePriority(see)
			}
			return bandCapture + board.MovePriority(10*board.NominalValue(m.Capture)-board.NominalValue(m.Piece))
		case in.Killers != nil && in.Killers.IsKiller(in.Ply, m):
			if in.Killers.slots[in.Ply][0].Equals(m) {
				return bandKiller1
			}
			return bandKiller2
		default:
			var hv uint32
			if in.History != nil {
				hv = in.History.Value(in.Side, m)
			}
			return bandQuiet + board.MovePriority(hv)
		}
	}
}
