package engine

import (
	"github.com/lgbarn/silly-chess-go/internal/chess"
	"github.com/lgbarn/silly-chess-go/internal/errors"
)

// CheckLegality decides whether p may move onto to. It returns nil for a
// legal move, otherwise the sentinel naming the first rule that failed:
// bounds, king capture, move geometry, king safety, check resolution and
// pins, in that order. The check state of p's colour is refreshed first.
func CheckLegality(board *chess.Board, p *chess.Piece, to chess.Square) error {
	if p == nil || board.PieceByID(p.ID) != p {
		return errors.ErrUnknownPiece
	}
	IsInCheck(board, p.Colour)

	if !to.InBounds() {
		return errors.ErrOutOfBounds
	}
	if target := board.At(to); target != nil && target.Kind == chess.King && target.Colour != p.Colour {
		return errors.ErrKingCapture
	}
	if !IsPseudoLegal(board, p, p.Square, to) {
		return errors.ErrGeometry
	}
	if !KingDestinationSafe(board, p, to) {
		return errors.ErrKingUnsafe
	}
	if !ResolvesCheck(board, p, to) {
		return errors.ErrCheckUnresolved
	}
	if !PinSafe(board, p, to) {
		return errors.ErrPinned
	}
	return nil
}

// IsLegal reports whether p may move onto to.
func IsLegal(board *chess.Board, p *chess.Piece, to chess.Square) bool {
	return CheckLegality(board, p, to) == nil
}

// LegalMoves returns every square p may legally move onto, scanning the
// board row by row.
func LegalMoves(board *chess.Board, p *chess.Piece) []chess.Square {
	if p == nil {
		return nil
	}
	var moves []chess.Square
	for _, to := range Destinations(board, p) {
		if IsLegal(board, p, to) {
			moves = append(moves, to)
		}
	}
	return moves
}

// HasLegalMoves returns true if the given colour has at least one legal move.
func HasLegalMoves(board *chess.Board, colour chess.Colour) bool {
	// Snapshot: the registry is board-owned.
	pieces := append([]*chess.Piece(nil), board.Pieces(colour)...)
	for _, p := range pieces {
		for _, to := range Destinations(board, p) {
			if IsLegal(board, p, to) {
				return true
			}
		}
	}
	return false
}

// KingDestinationSafe reports whether a king moving onto to would stand on
// a square no enemy piece attacks. The move is played on a copy so that
// captures and pawn diagonals are judged against the resulting position.
// Non-king moves and castling always pass.
func KingDestinationSafe(board *chess.Board, p *chess.Piece, to chess.Square) bool {
	if p == nil || p.Kind != chess.King {
		return true
	}
	if IsCastle(board, p, to) {
		return true
	}
	sim, king := simulate(board, p, to)
	if king == nil {
		return false
	}
	return !IsAttacked(sim, king.Square, p.Colour.Opposite())
}

// ResolvesCheck reports whether moving p onto to leaves its king out of
// any check it is currently in. When not in check every move passes. A king
// must reach a safe square. Against a double check only the king can move.
// Otherwise the move must capture the checking piece, take a checking pawn
// en passant, or step onto the line between a sliding checker and the king.
func ResolvesCheck(board *chess.Board, p *chess.Piece, to chess.Square) bool {
	if p == nil {
		return false
	}
	if !IsInCheck(board, p.Colour) {
		return true
	}
	if p.Kind == chess.King {
		return !IsCastle(board, p, to) && KingDestinationSafe(board, p, to)
	}

	state := board.CheckState(p.Colour)
	if state.Count > 1 {
		return false
	}
	checker := state.Checking
	king := board.King(p.Colour)
	if checker == nil || king == nil {
		return true
	}

	if to == checker.Square {
		return true
	}
	if p.Kind == chess.Pawn && EnPassantVictim(board, p.Square, to) == checker {
		return true
	}
	if checker.Kind.IsSliding() {
		for _, sq := range Between(checker.Square, king.Square) {
			if sq == to {
				return true
			}
		}
	}
	return false
}

// PinSafe reports whether moving p off its square would expose its own king
// to an attacker that was blocked before. Each newly revealed attacker must
// be captured by the move or blocked again by the destination. Kings are
// never pinned.
func PinSafe(board *chess.Board, p *chess.Piece, to chess.Square) bool {
	if p == nil || p.Kind == chess.King {
		return true
	}
	king := board.King(p.Colour)
	if king == nil {
		return true
	}
	enemy := p.Colour.Opposite()

	before := make(map[chess.PieceID]bool)
	for _, a := range Attackers(board, king.Square, enemy) {
		before[a.ID] = true
	}

	sim := board.Clone()
	sim.Vacate(p.Square)
	if p.Kind == chess.Pawn {
		if victim := EnPassantVictim(sim, p.Square, to); victim != nil && victim.Colour != p.Colour {
			sim.RemovePiece(victim)
		}
	}

	for _, a := range Attackers(sim, king.Square, enemy) {
		if before[a.ID] {
			continue
		}
		if !OnAttackLine(a.Square, king.Square, to) {
			return false
		}
	}
	return true
}
