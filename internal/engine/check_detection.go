package engine

import "github.com/lgbarn/silly-chess-go/internal/chess"

// IsInCheck returns true if the given colour's king is in check. Every
// opposing piece is tested against the king's square; the result, the last
// checking piece found and the number of checking pieces are recorded on
// the board. The scan runs from scratch on every call.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	state := chess.CheckState{}

	king := board.King(colour)
	if king == nil {
		// No king found
		board.SetCheckState(colour, state)
		return false
	}

	for _, p := range board.Pieces(colour.Opposite()) {
		if attacks(board, p, king.Square) {
			state.InCheck = true
			state.Checking = p
			state.Count++
		}
	}

	board.SetCheckState(colour, state)
	return state.InCheck
}

// UpdateCheck recomputes the check state of both colours.
func UpdateCheck(board *chess.Board) (whiteInCheck, blackInCheck bool) {
	return IsInCheck(board, chess.White), IsInCheck(board, chess.Black)
}

// IsAttacked returns true if any piece of byColour could move onto sq.
// Pawns only take diagonally, so sq should hold the piece being attacked;
// callers asking about an empty square place a piece there on a copy first.
// It does not touch the cached check state.
func IsAttacked(board *chess.Board, sq chess.Square, byColour chess.Colour) bool {
	for _, p := range board.Pieces(byColour) {
		if attacks(board, p, sq) {
			return true
		}
	}
	return false
}

// Attackers returns the pieces of byColour that could move onto sq.
func Attackers(board *chess.Board, sq chess.Square, byColour chess.Colour) []*chess.Piece {
	var found []*chess.Piece
	for _, p := range board.Pieces(byColour) {
		if attacks(board, p, sq) {
			found = append(found, p)
		}
	}
	return found
}
