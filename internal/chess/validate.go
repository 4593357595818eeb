package chess

import (
	"fmt"

	"github.com/lgbarn/silly-chess-go/internal/errors"
)

// Validate checks the board's structural invariants: each registered piece
// sits on the cell that holds it, every occupied cell is registered under
// the occupant's colour, piece IDs are unique, each colour has exactly one
// king, and a live en passant slot names a pawn.
func (b *Board) Validate() error {
	seen := make(map[PieceID]bool)
	for c := range b.pieces {
		kings := 0
		for _, p := range b.pieces[c] {
			if p.Colour != Colour(c) {
				return fmt.Errorf("%v registered as %v: %w", p, Colour(c), errors.ErrInvariant)
			}
			if seen[p.ID] {
				return fmt.Errorf("duplicate piece ID %d: %w", p.ID, errors.ErrInvariant)
			}
			seen[p.ID] = true
			if b.At(p.Square) != p {
				return fmt.Errorf("%v is not on its recorded square: %w", p, errors.ErrInvariant)
			}
			if p.Kind == King {
				kings++
			}
		}
		if kings != 1 {
			return fmt.Errorf("%v has %d kings: %w", Colour(c), kings, errors.ErrInvariant)
		}
	}

	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			p := b.squares[row][col]
			if p == nil {
				continue
			}
			if !seen[p.ID] || b.PieceByID(p.ID) != p {
				return fmt.Errorf("unregistered piece on %v: %w", Sq(row, col), errors.ErrInvariant)
			}
			if p.Square != Sq(row, col) {
				return fmt.Errorf("%v also occupies %v: %w", p, Sq(row, col), errors.ErrInvariant)
			}
		}
	}

	if b.EnPassant {
		if p := b.PieceByID(b.EPPawn); p == nil || p.Kind != Pawn {
			return fmt.Errorf("en passant slot names no pawn: %w", errors.ErrInvariant)
		}
	}
	return nil
}
