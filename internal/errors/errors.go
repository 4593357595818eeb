// Package errors provides sentinel errors and error types for the rules engine.
// Rejected commands carry one of these sentinels so callers can tell why a
// move was refused with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrIllegalMove indicates a move that violates the rules. Every rejected
	// SelectSquare wraps it, usually together with a more specific reason.
	ErrIllegalMove = errors.New("illegal move")

	// ErrOutOfBounds indicates a coordinate outside 0..7.
	ErrOutOfBounds = errors.New("square out of bounds")

	// ErrGeometry indicates the piece cannot reach the square by its move shape.
	ErrGeometry = errors.New("not a valid move for the piece")

	// ErrKingUnsafe indicates the king would move onto an attacked square.
	ErrKingUnsafe = errors.New("king destination is attacked")

	// ErrCheckUnresolved indicates the move leaves an existing check in place.
	ErrCheckUnresolved = errors.New("move does not resolve check")

	// ErrPinned indicates the move would expose the mover's own king.
	ErrPinned = errors.New("piece is pinned")

	// ErrKingCapture indicates an attempt to take a king.
	ErrKingCapture = errors.New("kings cannot be captured")

	// ErrNoSelection indicates a square was chosen with no piece selected.
	ErrNoSelection = errors.New("no piece selected")

	// ErrAlreadySelected indicates a piece is already selected.
	ErrAlreadySelected = errors.New("a piece is already selected")

	// ErrWrongPlayer indicates the piece belongs to the side not on move.
	ErrWrongPlayer = errors.New("piece belongs to the other player")

	// ErrUnknownPiece indicates a piece ID that is not on the board.
	ErrUnknownPiece = errors.New("unknown piece")

	// ErrGameOver indicates a command issued after checkmate or stalemate.
	ErrGameOver = errors.New("game is over")

	// ErrGameClosed indicates a command issued after quit.
	ErrGameClosed = errors.New("game has been closed")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvariant indicates a board state that breaks a data model invariant.
	ErrInvariant = errors.New("board invariant violated")
)

// MoveError wraps a rejection with the move that caused it. It implements
// the error interface and supports unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Err    error  // The underlying reason
	Piece  string // Description of the moving piece (if known)
	From   string // Origin square (if known)
	To     string // Destination square (if known)
	PlyNum int    // Ply number at which the move was attempted (0 if not applicable)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}

	if e.Piece != "" {
		parts = append(parts, e.Piece)
	}

	if e.From != "" || e.To != "" {
		parts = append(parts, fmt.Sprintf("%s-%s", e.From, e.To))
	}

	context := strings.Join(parts, ", ")

	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	if context == "" {
		return "move error"
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// Illegal joins ErrIllegalMove with a specific reason so that errors.Is
// matches both.
func Illegal(reason error) error {
	if reason == nil || errors.Is(reason, ErrIllegalMove) {
		return reason
	}
	return fmt.Errorf("%w: %w", ErrIllegalMove, reason)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
