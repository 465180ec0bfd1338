package board

// node is one ply of game history, linked back to its parent. Kept as a singly-linked list (not
// a slice) so that Fork can share the tail of the history between a parent and its search
// children without copying it, per spec §4.5's parallel-search requirement.
type node struct {
	pos        *Position
	turn       Color
	hash       ZobristHash
	noprogress int // halfmove clock since the last pawn move or capture
	fullmoves  int
	lastMove   Move
	castled    [NumColors]bool
	prev       *node
}

// Board wraps a Position with game history: ply count, the no-progress (50-move) clock,
// repetition detection and result adjudication. It is the unit of mutation that Push/PopMove
// operate on; Position itself stays a pure value type.
type Board struct {
	zobrist *ZobristTable
	cur     *node
}

// NewBoard creates a board from a starting position and the side to move.
func NewBoard(zobrist *ZobristTable, pos *Position, turn Color, fullmoves int) *Board {
	n := &node{
		pos:       pos,
		turn:      turn,
		fullmoves: fullmoves,
	}
	n.hash = zobrist.Hash(pos, turn)
	return &Board{zobrist: zobrist, cur: n}
}

// Position returns the current position.
func (b *Board) Position() *Position {
	return b.cur.pos
}

// Turn returns the side to move.
func (b *Board) Turn() Color {
	return b.cur.turn
}

// Hash returns the zobrist hash of the current position, including side to move.
func (b *Board) Hash() ZobristHash {
	return b.cur.hash
}

// NoProgress returns the number of halfmoves since the last pawn move or capture.
func (b *Board) NoProgress() int {
	return b.cur.noprogress
}

// FullMoves returns the current full move number.
func (b *Board) FullMoves() int {
	return b.cur.fullmoves
}

// HasCastled reports whether the given color has castled at any point in this game.
func (b *Board) HasCastled(c Color) bool {
	return b.cur.castled[c]
}

// LastMove returns the move that produced the current position, and whether one exists.
func (b *Board) LastMove() (Move, bool) {
	if b.cur.prev == nil {
		return Move{}, false
	}
	return b.cur.lastMove, true
}

// Ply returns the number of halfmoves played so far.
func (b *Board) Ply() int {
	n := 0
	for p := b.cur; p.prev != nil; p = p.prev {
		n++
	}
	return n
}

// resetsClock reports whether a move of this type resets the no-progress clock: a pawn move or a
// capture, per spec §5's explicit wording. Castling does not reset it, even though it moves two
// pieces.
func resetsClock(m Move) bool {
	switch m.Type {
	case Push, Jump, EnPassant, Capture, Promotion, CapturePromotion:
		return true
	default:
		return false
	}
}

// PushMove applies a pseudo-legal move. ok is false (and the board is left unchanged) if the move
// leaves the mover's own king in check.
func (b *Board) PushMove(m Move) (ok bool) {
	turn := b.cur.turn
	next, legal := b.cur.pos.Move(m)
	if !legal {
		return false
	}

	n := &node{
		pos:       next,
		turn:      turn.Opponent(),
		fullmoves: b.cur.fullmoves,
		lastMove:  m,
		prev:      b.cur,
		castled:   b.cur.castled,
	}
	n.hash = b.zobrist.UpdateMove(b.cur.hash, b.cur.pos, turn, m, next)

	if resetsClock(m) {
		n.noprogress = 0
	} else {
		n.noprogress = b.cur.noprogress + 1
	}
	if m.Type.IsCastle() {
		n.castled[turn] = true
	}
	if turn == Black {
		n.fullmoves++
	}

	b.cur = n
	return true
}

// PushNull passes the move without changing the board: used by null-move reduction (spec §4.5).
// Forfeits any pending en passant target, since that opportunity does not survive a tempo loss.
func (b *Board) PushNull() {
	turn := b.cur.turn
	pos := b.cur.pos.WithoutEnPassant()

	hash := b.cur.hash ^ b.zobrist.turn
	if ep, ok := b.cur.pos.EnPassant(); ok {
		hash ^= b.zobrist.enpassant[ep]
	}

	b.cur = &node{
		pos:        pos,
		turn:       turn.Opponent(),
		hash:       hash,
		noprogress: b.cur.noprogress + 1,
		fullmoves:  b.cur.fullmoves,
		prev:       b.cur,
		castled:    b.cur.castled,
	}
}

// PopNull undoes PushNull.
func (b *Board) PopNull() {
	b.cur = b.cur.prev
}

// PopMove undoes the last move played. ok is false if there is no move to undo.
func (b *Board) PopMove() (Move, bool) {
	if b.cur.prev == nil {
		return Move{}, false
	}
	m := b.cur.lastMove
	b.cur = b.cur.prev
	return m, true
}

// Fork returns an independent copy of the board sharing history up to this point. Position is a
// pointer to an immutable value (Move never mutates in place), so sharing the node chain between
// a parent search thread and its forked helper is race-free as long as neither pushes through the
// other's node -- which PushMove never does, since it always allocates a fresh node.
func (b *Board) Fork() *Board {
	return &Board{zobrist: b.zobrist, cur: b.cur}
}

// identicalPositionCount counts how many prior positions in this game's history (including the
// current one) share the current hash and side to move, i.e. are repetitions of it.
func (b *Board) identicalPositionCount() int {
	count := 0
	for n := b.cur; n != nil; n = n.prev {
		if n.hash == b.cur.hash && n.turn == b.cur.turn {
			count++
		}
		if n.noprogress == 0 && n != b.cur {
			break // a pawn move or capture severed any possible repetition further back
		}
	}
	return count
}

// Result adjudicates the current position: checkmate/stalemate (given the legal move count for
// the side to move), insufficient material, 3-fold/5-fold repetition, and the 50-move
// no-progress rule (there is no separate 75-move check). moves is the legal move list for the side to move, computed by the caller since
// legality filtering belongs to the search/move-ordering layer, not Board.
func (b *Board) Result(moves []Move) Result {
	if len(moves) == 0 {
		if b.cur.pos.IsChecked(b.cur.turn) {
			return Result{Outcome: Loss(b.cur.turn), Reason: Checkmate}
		}
		return Result{Outcome: Draw, Reason: Stalemate}
	}
	if b.cur.pos.HasInsufficientMaterial() {
		return Result{Outcome: Draw, Reason: InsufficientMaterial}
	}
	if n := b.identicalPositionCount(); n >= 5 {
		return Result{Outcome: Draw, Reason: Repetition5}
	} else if n >= 3 {
		return Result{Outcome: Draw, Reason: Repetition3}
	}
	if b.cur.noprogress >= 100 { // 50 full moves without a pawn move or capture
		return Result{Outcome: Draw, Reason: NoProgress}
	}
	return Result{Outcome: Undecided}
}

// IsRepetition reports whether the current position has occurred at least `count` times before
// (inclusive of the current occurrence), for fast draw-by-repetition checks inside search without
// allocating a move list.
func (b *Board) IsRepetition(count int) bool {
	return b.identicalPositionCount() >= count
}
