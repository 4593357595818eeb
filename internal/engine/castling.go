package engine

import "github.com/lgbarn/silly-chess-go/internal/chess"

// CanCastle reports whether king may castle with the rook standing on to.
// Castling is requested by choosing the rook's square. Both pieces must be
// unmoved and share a row, the king must not be in check, and every square
// between them must be empty. The squares the king crosses and lands on are
// not tested for attack.
func CanCastle(board *chess.Board, king *chess.Piece, to chess.Square) bool {
	if king == nil || king.Kind != chess.King || king.HasMoved {
		return false
	}
	rook := board.At(to)
	if rook == nil || rook.Kind != chess.Rook || rook.Colour != king.Colour || rook.HasMoved {
		return false
	}
	if to.Row != king.Square.Row {
		return false
	}

	// The king travels two squares, so the rook must be at least three away.
	between := Between(king.Square, to)
	if len(between) < 2 {
		return false
	}
	for _, sq := range between {
		if board.At(sq) != nil {
			return false
		}
	}

	return !IsAttacked(board, king.Square, king.Colour.Opposite())
}

// CastleSquares returns where the king and the rook end up when the king
// on kingFrom castles with the rook on rookFrom: the king moves two squares
// towards the rook and the rook lands on the square the king crossed.
func CastleSquares(kingFrom, rookFrom chess.Square) (kingTo, rookTo chess.Square) {
	dir := sign(rookFrom.Col - kingFrom.Col)
	return kingFrom.Offset(0, 2*dir), kingFrom.Offset(0, dir)
}

// IsCastle reports whether moving p onto to is a castling move, i.e. a king
// choosing a square held by its own rook.
func IsCastle(board *chess.Board, p *chess.Piece, to chess.Square) bool {
	if p == nil || p.Kind != chess.King {
		return false
	}
	target := board.At(to)
	return target != nil && target.Kind == chess.Rook && target.Colour == p.Colour
}
