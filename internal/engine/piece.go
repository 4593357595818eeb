// Package engine implements the rules of the game: per-piece move geometry,
// check and checkmate detection, the legality predicates applied to a
// selected move, and the board mutation that commits it.
package engine

import "github.com/lgbarn/silly-chess-go/internal/chess"

// ruleFunc decides whether a piece standing on from may move to to by its
// own geometry. The destination is already known to be on the board and
// distinct from the origin.
type ruleFunc func(board *chess.Board, p *chess.Piece, from, to chess.Square) bool

// pieceRules dispatches on the closed set of kinds. It is filled in init
// because kingRule reaches back into IsPseudoLegal through CanCastle.
var pieceRules [chess.NumKinds]ruleFunc

func init() {
	pieceRules = [chess.NumKinds]ruleFunc{
		chess.Pawn:   pawnRule,
		chess.Knight: knightRule,
		chess.Bishop: bishopRule,
		chess.Rook:   rookRule,
		chess.Queen:  queenRule,
		chess.King:   kingRule,
	}
}

// IsPseudoLegal reports whether p may move from one square to another by
// its movement rules alone, ignoring the safety of its own king.
func IsPseudoLegal(board *chess.Board, p *chess.Piece, from, to chess.Square) bool {
	if p == nil || !to.InBounds() || !from.InBounds() || from == to {
		return false
	}
	if p.Kind < 0 || p.Kind >= chess.NumKinds {
		return false
	}
	return pieceRules[p.Kind](board, p, from, to)
}

// Destinations returns every square p can reach pseudo-legally from where it stands.
func Destinations(board *chess.Board, p *chess.Piece) []chess.Square {
	var squares []chess.Square
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			to := chess.Sq(row, col)
			if IsPseudoLegal(board, p, p.Square, to) {
				squares = append(squares, to)
			}
		}
	}
	return squares
}

// attacks reports whether p, standing on its square, could move onto sq.
// Castling never attacks, so it is left out.
func attacks(board *chess.Board, p *chess.Piece, sq chess.Square) bool {
	if p.Kind == chess.King {
		return sq.InBounds() && sq != p.Square && kingStep(board, p, p.Square, sq)
	}
	return IsPseudoLegal(board, p, p.Square, sq)
}

// canCapture is the shared capture rule: the destination must be empty or
// hold a piece of the other colour.
func canCapture(board *chess.Board, p *chess.Piece, to chess.Square) bool {
	target := board.At(to)
	return target == nil || target.Colour != p.Colour
}

func knightRule(board *chess.Board, p *chess.Piece, from, to chess.Square) bool {
	dRow, dCol := abs(to.Row-from.Row), abs(to.Col-from.Col)
	if !((dRow == 1 && dCol == 2) || (dRow == 2 && dCol == 1)) {
		return false
	}
	return canCapture(board, p, to)
}

func bishopRule(board *chess.Board, p *chess.Piece, from, to chess.Square) bool {
	if !isDiagonal(to.Row-from.Row, to.Col-from.Col) {
		return false
	}
	return isPathClear(board, from, to) && canCapture(board, p, to)
}

func rookRule(board *chess.Board, p *chess.Piece, from, to chess.Square) bool {
	if !isStraight(to.Row-from.Row, to.Col-from.Col) {
		return false
	}
	return isPathClear(board, from, to) && canCapture(board, p, to)
}

func queenRule(board *chess.Board, p *chess.Piece, from, to chess.Square) bool {
	dRow, dCol := to.Row-from.Row, to.Col-from.Col
	if !isStraight(dRow, dCol) && !isDiagonal(dRow, dCol) {
		return false
	}
	return isPathClear(board, from, to) && canCapture(board, p, to)
}

func kingRule(board *chess.Board, p *chess.Piece, from, to chess.Square) bool {
	if kingStep(board, p, from, to) {
		return true
	}
	return from == p.Square && CanCastle(board, p, to)
}

// kingStep is the ordinary one-square king move.
func kingStep(board *chess.Board, p *chess.Piece, from, to chess.Square) bool {
	if abs(to.Row-from.Row) > 1 || abs(to.Col-from.Col) > 1 {
		return false
	}
	return canCapture(board, p, to)
}
