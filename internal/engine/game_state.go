package engine

import "github.com/lgbarn/silly-chess-go/internal/chess"

// IsCheckmate returns true if the given colour is in check and cannot get
// out of it. A double check can only be met by a king move; a knight or
// pawn check can also be met by capturing the checker; a sliding check can
// additionally be blocked.
func IsCheckmate(board *chess.Board, colour chess.Colour) bool {
	king := board.King(colour)
	if king == nil || !IsInCheck(board, colour) {
		return false
	}
	state := board.CheckState(colour)
	checker := state.Checking

	if state.Count > 1 {
		return !KingCanEscape(board, colour)
	}
	if checker == nil {
		return false
	}
	escape := KingCanEscape(board, colour)
	capture := CanCaptureAttacker(board, colour, checker)

	switch checker.Kind {
	case chess.Knight, chess.Pawn:
		return !escape && !capture
	case chess.Bishop, chess.Rook, chess.Queen:
		return !escape && !capture && !CanBlockAttacker(board, colour, checker)
	}
	// A king checker only appears when a silly shift leaves the kings
	// adjacent. It cannot be captured or blocked, but stepping away still
	// answers it, so only a king with no escape is mated.
	return !escape
}

// IsStalemate returns true if the given colour is not in check but has no
// legal move.
func IsStalemate(board *chess.Board, colour chess.Colour) bool {
	if board.King(colour) == nil {
		return false
	}
	return !IsInCheck(board, colour) && !HasLegalMoves(board, colour)
}

// KingCanEscape reports whether the king of the given colour has a step to
// a square where it would not be attacked.
func KingCanEscape(board *chess.Board, colour chess.Colour) bool {
	king := board.King(colour)
	if king == nil {
		return false
	}
	for _, to := range Destinations(board, king) {
		if IsCastle(board, king, to) {
			continue
		}
		if target := board.At(to); target != nil && target.Kind == chess.King {
			continue
		}
		if KingDestinationSafe(board, king, to) {
			return true
		}
	}
	return false
}

// CanCaptureAttacker reports whether any piece of the given colour can
// legally take the checking piece, including by en passant.
func CanCaptureAttacker(board *chess.Board, colour chess.Colour, attacker *chess.Piece) bool {
	if attacker == nil {
		return false
	}
	pieces := append([]*chess.Piece(nil), board.Pieces(colour)...)
	for _, p := range pieces {
		if IsLegal(board, p, attacker.Square) {
			return true
		}
		if p.Kind == chess.Pawn && board.EnPassant && board.EPPawn == attacker.ID &&
			IsLegal(board, p, board.EPSquare) {
			return true
		}
	}
	return false
}

// CanBlockAttacker reports whether any non-king piece of the given colour
// can legally step between a sliding attacker and the king.
func CanBlockAttacker(board *chess.Board, colour chess.Colour, attacker *chess.Piece) bool {
	king := board.King(colour)
	if attacker == nil || king == nil || !attacker.Kind.IsSliding() {
		return false
	}
	for _, sq := range Between(attacker.Square, king.Square) {
		if CanIntersectPath(board, colour, sq) {
			return true
		}
	}
	return false
}

// CanIntersectPath reports whether a non-king piece of the given colour can
// legally move onto sq.
func CanIntersectPath(board *chess.Board, colour chess.Colour, sq chess.Square) bool {
	pieces := append([]*chess.Piece(nil), board.Pieces(colour)...)
	for _, p := range pieces {
		if p.Kind == chess.King {
			continue
		}
		if IsLegal(board, p, sq) {
			return true
		}
	}
	return false
}
