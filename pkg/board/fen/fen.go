// Package fen parses and renders the standard six-field text position notation: piece placement,
// active colour, castling availability, en passant target, halfmove clock, fullmove number.
package fen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corvid-chess/corvid/pkg/board"
)

// Startpos is the standard initial position string.
const Startpos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Position is a fully parsed notation string: a board position plus the fields Position itself
// does not carry (side to move, clocks, move number).
type Position struct {
	Board      *board.Position
	Turn       board.Color
	NoProgress int
	FullMoves  int
}

// Parse parses a six-field position string. Per the external protocol's error policy, any
// malformed field causes Parse to fall back silently to the starting position rather than
// returning an error -- there is no recoverable partial state to hand back to a caller that
// can't retry.
func Parse(s string) Position {
	p, err := parseStrict(s)
	if err != nil {
		p, _ = parseStrict(Startpos)
	}
	return p
}

func parseStrict(s string) (Position, error) {
	fields := strings.Fields(s)
	if len(fields) != 6 {
		return Position{}, fmt.Errorf("fen: expected 6 fields, got %d", len(fields))
	}

	placements, err := parsePlacement(fields[0])
	if err != nil {
		return Position{}, err
	}

	turn, err := parseTurn(fields[1])
	if err != nil {
		return Position{}, err
	}

	castling, err := parseCastling(fields[2])
	if err != nil {
		return Position{}, err
	}

	ep, err := parseEnPassant(fields[3])
	if err != nil {
		return Position{}, err
	}

	noprogress, err := strconv.Atoi(fields[4])
	if err != nil || noprogress < 0 {
		return Position{}, fmt.Errorf("fen: bad halfmove clock %q", fields[4])
	}

	fullmoves, err := strconv.Atoi(fields[5])
	if err != nil || fullmoves < 1 {
		return Position{}, fmt.Errorf("fen: bad fullmove number %q", fields[5])
	}

	pos, err := board.NewPosition(placements, castling, ep)
	if err != nil {
		return Position{}, err
	}
	return Position{Board: pos, Turn: turn, NoProgress: noprogress, FullMoves: fullmoves}, nil
}

func parsePlacement(field string) ([]board.Placement, error) {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("fen: expected 8 ranks, got %d", len(ranks))
	}

	var placements []board.Placement
	for i, rankField := range ranks {
		rank := board.Rank(7 - i) // ranks run rank 8 down to rank 1
		file := board.ZeroFile

		for _, r := range rankField {
			switch {
			case r >= '1' && r <= '8':
				file += board.File(r - '0')
			default:
				c, piece, ok := parsePieceLetter(r)
				if !ok {
					return nil, fmt.Errorf("fen: bad piece letter %q", r)
				}
				if !file.IsValid() {
					return nil, fmt.Errorf("fen: rank %d overflows", 8-i)
				}
				placements = append(placements, board.Placement{
					Square: board.NewSquare(file, rank),
					Color:  c,
					Piece:  piece,
				})
				file++
			}
		}
		if file != board.NumFiles {
			return nil, fmt.Errorf("fen: rank %d does not sum to 8 files", 8-i)
		}
	}
	return placements, nil
}

func parsePieceLetter(r rune) (board.Color, board.PieceType, bool) {
	c := board.White
	lower := r
	if r >= 'a' && r <= 'z' {
		c = board.Black
	} else {
		lower = r + ('a' - 'A')
	}
	piece, ok := board.ParsePieceType(lower)
	if !ok || piece == board.NoPieceType {
		return 0, 0, false
	}
	return c, piece, true
}

func parseTurn(field string) (board.Color, error) {
	switch field {
	case "w":
		return board.White, nil
	case "b":
		return board.Black, nil
	default:
		return 0, fmt.Errorf("fen: bad active colour %q", field)
	}
}

func parseCastling(field string) (board.Castling, error) {
	if field == "-" {
		return board.ZeroCastling, nil
	}
	var c board.Castling
	for _, r := range field {
		switch r {
		case 'K':
			c |= board.WhiteKingSide
		case 'Q':
			c |= board.WhiteQueenSide
		case 'k':
			c |= board.BlackKingSide
		case 'q':
			c |= board.BlackQueenSide
		default:
			return 0, fmt.Errorf("fen: bad castling field %q", field)
		}
	}
	return c, nil
}

func parseEnPassant(field string) (board.Square, error) {
	if field == "-" {
		return board.ZeroSquare, nil
	}
	sq, err := board.ParseSquareStr(field)
	if err != nil {
		return 0, fmt.Errorf("fen: bad en passant square %q: %w", field, err)
	}
	if sq.Rank() != board.Rank3 && sq.Rank() != board.Rank6 {
		return 0, fmt.Errorf("fen: en passant square %q not on rank 3 or 6", field)
	}
	return sq, nil
}

// Format renders a position back to notation text.
func Format(pos *board.Position, turn board.Color, noprogress, fullmoves int) string {
	var sb strings.Builder

	for r := 7; r >= 0; r-- {
		empty := 0
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			sq := board.NewSquare(f, board.Rank(r))
			c, piece, ok := pos.At(sq)
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pieceLetter(c, piece))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r != 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if turn == board.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(pos.Castling().String())

	sb.WriteByte(' ')
	if ep, ok := pos.EnPassant(); ok {
		sb.WriteString(ep.String())
	} else {
		sb.WriteByte('-')
	}

	fmt.Fprintf(&sb, " %d %d", noprogress, fullmoves)
	return sb.String()
}

func pieceLetter(c board.Color, piece board.PieceType) string {
	s := piece.String()
	if c == board.White {
		return strings.ToUpper(s)
	}
	return s
}
