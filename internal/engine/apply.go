package engine

import "github.com/lgbarn/silly-chess-go/internal/chess"

// MoveOutcome describes what ApplyMove changed on the board.
type MoveOutcome struct {
	Piece *chess.Piece
	From  chess.Square
	To    chess.Square // where the moving piece ended up

	// Castling: the rook that moved with the king.
	Castle   bool
	Rook     *chess.Piece
	RookFrom chess.Square
	RookTo   chess.Square

	// The piece taken, if any. EnPassant marks a capture made en passant.
	Captured   *chess.Piece
	CapturedAt chess.Square
	EnPassant  bool

	// DoubleStep marks a pawn's two-square advance, which opens the en
	// passant window on the crossed square.
	DoubleStep bool
}

// ApplyMove moves p onto to and updates the board state. The move is not
// validated; callers check it with CheckLegality first.
//
// Side effects happen in a fixed order: a castle relocates king and rook
// together; otherwise the origin is cleared, an occupant of the destination
// is captured, or else an en passant victim is removed; the mover is placed;
// moved pieces are flagged; finally the en passant slot is reset, so it
// survives exactly one opposing move.
func ApplyMove(board *chess.Board, p *chess.Piece, to chess.Square) MoveOutcome {
	from := p.Square
	out := MoveOutcome{Piece: p, From: from, To: to}

	if IsCastle(board, p, to) {
		return applyCastle(board, p, to)
	}

	board.Vacate(from)
	if target := board.At(to); target != nil {
		out.Captured = target
		out.CapturedAt = to
		board.RemovePiece(target)
	} else if p.Kind == chess.Pawn && to.Col != from.Col {
		if victim := EnPassantVictim(board, from, to); victim != nil {
			out.Captured = victim
			out.CapturedAt = victim.Square
			out.EnPassant = true
			board.RemovePiece(victim)
		}
	}

	board.Place(p, to)
	p.HasMoved = true

	board.ClearEnPassant()
	if p.Kind == chess.Pawn && abs(to.Row-from.Row) == 2 {
		out.DoubleStep = true
		board.SetEnPassant(from.Offset(chess.ForwardStep(p.Colour), 0), p.ID)
	}
	return out
}

// applyCastle relocates the king and the rook standing on rookSquare.
func applyCastle(board *chess.Board, king *chess.Piece, rookSquare chess.Square) MoveOutcome {
	rook := board.At(rookSquare)
	kingFrom := king.Square
	kingTo, rookTo := CastleSquares(kingFrom, rookSquare)

	board.Vacate(kingFrom)
	board.Vacate(rookSquare)
	board.Place(king, kingTo)
	board.Place(rook, rookTo)
	king.HasMoved = true
	rook.HasMoved = true

	board.ClearEnPassant()
	return MoveOutcome{
		Piece:    king,
		From:     kingFrom,
		To:       kingTo,
		Castle:   true,
		Rook:     rook,
		RookFrom: rookSquare,
		RookTo:   rookTo,
	}
}

// simulate plays p to to on a copy of the board and returns the copy with
// the moved piece as it exists there. The original board is untouched.
func simulate(board *chess.Board, p *chess.Piece, to chess.Square) (*chess.Board, *chess.Piece) {
	sim := board.Clone()
	mover := sim.PieceByID(p.ID)
	if mover == nil {
		return sim, nil
	}
	ApplyMove(sim, mover, to)
	return sim, mover
}
