package engine

import "github.com/lgbarn/silly-chess-go/internal/chess"

// Between returns the squares strictly between a and b when they share a
// row, a column or a diagonal, walking from a towards b with a row/col step
// equal to the sign of the difference. It returns nil for squares that are
// not aligned, adjacent or identical.
func Between(a, b chess.Square) []chess.Square {
	dRow, dCol := b.Row-a.Row, b.Col-a.Col
	if !isStraight(dRow, dCol) && !isDiagonal(dRow, dCol) {
		return nil
	}
	stepRow, stepCol := sign(dRow), sign(dCol)

	var squares []chess.Square
	for sq := a.Offset(stepRow, stepCol); sq != b; sq = sq.Offset(stepRow, stepCol) {
		squares = append(squares, sq)
	}
	return squares
}

// OnAttackLine reports whether sq is the attacker's square or lies strictly
// between the attacker and the king along a straight line or diagonal.
func OnAttackLine(attacker, king, sq chess.Square) bool {
	if sq == attacker {
		return true
	}
	for _, between := range Between(attacker, king) {
		if between == sq {
			return true
		}
	}
	return false
}

// isPathClear checks that every square strictly between from and to is empty.
func isPathClear(board *chess.Board, from, to chess.Square) bool {
	for _, sq := range Between(from, to) {
		if board.At(sq) != nil {
			return false
		}
	}
	return true
}

// isStraight reports a non-zero orthogonal delta.
func isStraight(dRow, dCol int) bool {
	return (dRow == 0) != (dCol == 0)
}

// isDiagonal reports a non-zero diagonal delta.
func isDiagonal(dRow, dCol int) bool {
	return dRow != 0 && abs(dRow) == abs(dCol)
}
