package engine

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lgbarn/silly-chess-go/internal/chess"
	"github.com/lgbarn/silly-chess-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Position is a board together with the FEN fields the board itself does
// not carry.
type Position struct {
	Board         *chess.Board
	ToMove        chess.Colour
	HalfmoveClock int
	MoveNumber    int
}

// ConvertFENCharToKind converts a FEN character to a piece kind.
func ConvertFENCharToKind(c byte) (chess.Kind, bool) {
	switch c {
	case 'K', 'k':
		return chess.King, true
	case 'Q', 'q':
		return chess.Queen, true
	case 'R', 'r':
		return chess.Rook, true
	case 'N', 'n':
		return chess.Knight, true
	case 'B', 'b':
		return chess.Bishop, true
	case 'P', 'p':
		return chess.Pawn, true
	default:
		return chess.Pawn, false
	}
}

// NewPositionFromFEN creates a position from a FEN string.
//
// Castling availability is expressed through HasMoved: a king or rook keeps
// HasMoved false only when a castling flag names it on its home square.
// A pawn counts as moved when it is off its starting row. The en passant
// field opens the board's en passant slot for the pawn that just
// double-stepped past the named square.
func NewPositionFromFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	pos := &Position{Board: chess.NewBoard(), ToMove: chess.White, MoveNumber: 1}

	if err := parsePiecePositions(pos.Board, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(pos, parts); err != nil {
		return nil, err
	}
	if err := parseCastlingRights(pos.Board, parts); err != nil {
		return nil, err
	}
	if err := parseEnPassant(pos, parts); err != nil {
		return nil, err
	}
	parseClocks(pos, parts)

	UpdateCheck(pos.Board)
	return pos, nil
}

// NewBoardFromFEN creates a board from a FEN string, discarding the side to move.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	pos, err := NewPositionFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return pos.Board, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
// FEN lists rank 8 first, which is row 0.
func parsePiecePositions(board *chess.Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return fmt.Errorf("expected %d ranks, got %d: %w", chess.BoardSize, len(ranks), errors.ErrInvalidFEN)
	}

	for row, rank := range ranks {
		col := 0
		for _, c := range rank {
			switch {
			case c >= '1' && c <= '8':
				col += int(c - '0')
			default:
				kind, ok := ConvertFENCharToKind(byte(c))
				if !ok {
					return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
				}
				if col >= chess.BoardSize {
					return fmt.Errorf("position out of bounds: %w", errors.ErrInvalidFEN)
				}

				colour := chess.White
				if unicode.IsLower(c) {
					colour = chess.Black
				}

				p := board.AddPiece(colour, kind, chess.Sq(row, col))
				switch kind {
				case chess.Pawn:
					p.HasMoved = row != pawnStartRow(colour)
				case chess.King, chess.Rook:
					// Cleared again by the castling field.
					p.HasMoved = true
				}
				col++
			}
		}
		if col != chess.BoardSize {
			return fmt.Errorf("rank %d has %d files: %w", chess.BoardSize-row, col, errors.ErrInvalidFEN)
		}
	}
	return nil
}

// pawnStartRow returns the row a colour's pawns start on.
func pawnStartRow(colour chess.Colour) int {
	if colour == chess.White {
		return 6
	}
	return 1
}

// homeRow returns a colour's back rank.
func homeRow(colour chess.Colour) int {
	if colour == chess.White {
		return chess.BoardSize - 1
	}
	return 0
}

// parseSideToMove parses the side to move field.
func parseSideToMove(pos *Position, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		pos.ToMove = chess.White
	case "b":
		pos.ToMove = chess.Black
	default:
		return fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
	}
	return nil
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(board *chess.Board, parts []string) error {
	if len(parts) < 3 || parts[2] == "-" {
		return nil
	}

	for _, c := range parts[2] {
		var colour chess.Colour
		var rookCol int
		switch c {
		case 'K':
			colour, rookCol = chess.White, 7
		case 'Q':
			colour, rookCol = chess.White, 0
		case 'k':
			colour, rookCol = chess.Black, 7
		case 'q':
			colour, rookCol = chess.Black, 0
		default:
			return fmt.Errorf("invalid castling flag: %c: %w", c, errors.ErrInvalidFEN)
		}
		row := homeRow(colour)
		king := board.At(chess.Sq(row, 4))
		rook := board.At(chess.Sq(row, rookCol))
		if king == nil || king.Kind != chess.King || king.Colour != colour ||
			rook == nil || rook.Kind != chess.Rook || rook.Colour != colour {
			continue
		}
		king.HasMoved = false
		rook.HasMoved = false
	}
	return nil
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(pos *Position, parts []string) error {
	board := pos.Board
	board.ClearEnPassant()
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}
	sq, ok := chess.ParseSquare(parts[3])
	if !ok {
		return fmt.Errorf("invalid en passant square: %s: %w", parts[3], errors.ErrInvalidFEN)
	}

	// The pawn that double-stepped belongs to the side that just moved.
	mover := pos.ToMove.Opposite()
	pawn := board.At(sq.Offset(chess.ForwardStep(mover), 0))
	if pawn == nil || pawn.Kind != chess.Pawn || pawn.Colour != mover {
		return fmt.Errorf("no pawn beyond en passant square %s: %w", parts[3], errors.ErrInvalidFEN)
	}
	board.SetEnPassant(sq, pawn.ID)
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(pos *Position, parts []string) {
	if len(parts) >= 5 {
		fmt.Sscanf(parts[4], "%d", &pos.HalfmoveClock)
	}
	if len(parts) >= 6 {
		fmt.Sscanf(parts[5], "%d", &pos.MoveNumber)
	}
}

// BoardToFEN converts a board to a FEN string with the given side to move.
func BoardToFEN(board *chess.Board, toMove chess.Colour) string {
	return PositionToFEN(&Position{Board: board, ToMove: toMove, MoveNumber: 1})
}

// PositionToFEN converts a position to a FEN string.
func PositionToFEN(pos *Position) string {
	var sb strings.Builder

	writePiecePositions(&sb, pos.Board)
	sb.WriteByte(' ')
	if pos.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	writeCastlingRights(&sb, pos.Board)
	sb.WriteByte(' ')
	if pos.Board.EnPassant {
		sb.WriteString(pos.Board.EPSquare.String())
	} else {
		sb.WriteByte('-')
	}
	sb.WriteByte(' ')
	fmt.Fprintf(&sb, "%d %d", pos.HalfmoveClock, pos.MoveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for row := 0; row < chess.BoardSize; row++ {
		emptyCount := 0
		for col := 0; col < chess.BoardSize; col++ {
			p := board.At(chess.Sq(row, col))
			if p == nil {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(p.Symbol())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if row < chess.BoardSize-1 {
			sb.WriteByte('/')
		}
	}
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, board *chess.Board) {
	hasCastling := false
	flags := []struct {
		colour  chess.Colour
		rookCol int
		letter  byte
	}{
		{chess.White, 7, 'K'},
		{chess.White, 0, 'Q'},
		{chess.Black, 7, 'k'},
		{chess.Black, 0, 'q'},
	}
	for _, f := range flags {
		row := homeRow(f.colour)
		king := board.At(chess.Sq(row, 4))
		rook := board.At(chess.Sq(row, f.rookCol))
		if king == nil || king.Kind != chess.King || king.Colour != f.colour || king.HasMoved {
			continue
		}
		if rook == nil || rook.Kind != chess.Rook || rook.Colour != f.colour || rook.HasMoved {
			continue
		}
		sb.WriteByte(f.letter)
		hasCastling = true
	}
	if !hasCastling {
		sb.WriteByte('-')
	}
}
