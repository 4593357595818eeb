package engine

import "github.com/lgbarn/silly-chess-go/internal/chess"

// pawnRule covers single and double steps, diagonal captures and the
// en passant capture.
func pawnRule(board *chess.Board, p *chess.Piece, from, to chess.Square) bool {
	dir := chess.ForwardStep(p.Colour)
	dRow, dCol := to.Row-from.Row, to.Col-from.Col

	switch {
	case dCol == 0 && dRow == dir:
		return board.At(to) == nil

	case dCol == 0 && dRow == 2*dir:
		if p.HasMoved {
			return false
		}
		return board.At(from.Offset(dir, 0)) == nil && board.At(to) == nil

	case abs(dCol) == 1 && dRow == dir:
		if target := board.At(to); target != nil {
			return target.Colour != p.Colour
		}
		return isEnPassantCapture(board, p, from, to)
	}
	return false
}

// isEnPassantCapture reports whether a diagonal pawn step onto an empty
// square takes the opposing pawn that has just double-stepped past it.
func isEnPassantCapture(board *chess.Board, p *chess.Piece, from, to chess.Square) bool {
	if p.Kind != chess.Pawn || !board.EnPassant || to != board.EPSquare {
		return false
	}
	victim := EnPassantVictim(board, from, to)
	return victim != nil && victim.Colour != p.Colour
}

// EnPassantVictim returns the pawn an en passant capture from one square to
// another removes: the pawn beside the destination, on the rank the
// capturing pawn came from. It returns nil when that square does not hold
// the pawn recorded in the board's en passant slot.
func EnPassantVictim(board *chess.Board, from, to chess.Square) *chess.Piece {
	if !board.EnPassant || to != board.EPSquare {
		return nil
	}
	victim := board.At(chess.Sq(from.Row, to.Col))
	if victim == nil || victim.ID != board.EPPawn || victim.Kind != chess.Pawn {
		return nil
	}
	return victim
}
