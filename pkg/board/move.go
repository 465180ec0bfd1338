package board

import "fmt"

// MoveType indicates the kind of move, which in turn dictates how it updates castling rights,
// the en passant square and the no-progress clock. See spec §3/§4.1.
type MoveType uint8

const (
	Normal MoveType = iota
	Push            // single-square pawn advance
	Jump            // two-square pawn advance
	EnPassant
	KingSideCastle
	QueenSideCastle
	Capture
	Promotion
	CapturePromotion
)

func (t MoveType) IsCapture() bool {
	return t == Capture || t == EnPassant || t == CapturePromotion
}

func (t MoveType) IsCastle() bool {
	return t == KingSideCastle || t == QueenSideCastle
}

// Move is a packed move bundle with contextual metadata. Equality (for hash-move/killer/ponder
// matching) compares only From, To and Promotion, per spec §3.
type Move struct {
	Type      MoveType
	From, To  Square
	Piece     PieceType // piece being moved
	Promotion PieceType // desired promotion piece, if any
	Capture   PieceType // captured piece type, if any
}

// ParseMove parses a move in long algebraic coordinate notation, e.g. "e2e4" or "a7a8q". The
// result carries no contextual metadata (Type/Piece/Capture); match it against a generated
// move via Equals to recover that information before applying it.
func ParseMove(s string) (Move, error) {
	runes := []rune(s)
	if len(runes) < 4 || len(runes) > 5 {
		return Move{}, fmt.Errorf("invalid move %q", s)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: bad from-square: %w", s, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: bad to-square: %w", s, err)
	}

	m := Move{From: from, To: to}
	if len(runes) == 5 {
		promo, ok := ParsePieceType(runes[4])
		if !ok || promo == Pawn || promo == King {
			return Move{}, fmt.Errorf("invalid move %q: bad promotion", s)
		}
		m.Promotion = promo
	}
	return m, nil
}

func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

func (m Move) IsPromotion() bool {
	return m.Type == Promotion || m.Type == CapturePromotion
}

func (m Move) IsCapture() bool {
	return m.Type.IsCapture()
}

func (m Move) IsQuiet() bool {
	return !m.IsCapture() && !m.IsPromotion()
}

func (m Move) String() string {
	if m.Promotion.IsValid() {
		return fmt.Sprintf("%v%v%v", m.From, m.To, m.Promotion)
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}

// FormatMoves renders a move sequence space-separated, long algebraic notation.
func FormatMoves(moves []Move) string {
	s := ""
	for i, m := range moves {
		if i > 0 {
			s += " "
		}
		s += m.String()
	}
	return s
}
