// Package silly implements the silly-mode board transformation: after a
// capture of anything but a pawn the whole board shifts one square in a
// random direction, wrapping at the edge, and one piece that wrapped is
// demoted and handed to the other side.
package silly

import (
	"github.com/lgbarn/silly-chess-go/internal/chess"
)

// Random is the source of randomness used for shifts and demotions.
// *math/rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
}

// Direction is the way every piece moves during a shift.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	numDirections
)

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// delta returns the row and column step of a direction.
func (d Direction) delta() (dRow, dCol int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	}
	return 0, 0
}

// boundary returns the square at index i of the line pieces wrap into.
func (d Direction) boundary(i int) chess.Square {
	last := chess.BoardSize - 1
	switch d {
	case Up:
		return chess.Sq(last, i)
	case Down:
		return chess.Sq(0, i)
	case Left:
		return chess.Sq(i, last)
	default:
		return chess.Sq(i, 0)
	}
}

// Move records one piece displaced by a shift.
type Move struct {
	Piece *chess.Piece
	From  chess.Square
	To    chess.Square
}

// Result describes a completed shift.
type Result struct {
	Direction Direction
	Moves     []Move

	// Selected is the piece picked for demotion, nil when the boundary
	// line held no candidates. A selected pawn is left as it is.
	Selected *chess.Piece

	// Replacement is the piece created in Selected's place, nil when
	// nothing was replaced.
	Replacement *chess.Piece
}

// Demoted reports whether a piece was replaced.
func (r Result) Demoted() bool {
	return r.Replacement != nil
}

// Engine applies shifts using its random source.
type Engine struct {
	rng Random
}

// New returns an Engine drawing from rng.
func New(rng Random) *Engine {
	return &Engine{rng: rng}
}

// Triggers reports whether capturing the given piece sets off a shift.
func Triggers(captured *chess.Piece) bool {
	return captured != nil && captured.Kind != chess.Pawn
}

// Shift picks a direction at random and shifts the board.
func (e *Engine) Shift(board *chess.Board) Result {
	return e.ShiftDirection(board, Direction(e.rng.Intn(int(numDirections))))
}

// ShiftDirection moves every piece one square in the given direction.
// Pieces pushed off an edge wrap to the opposite edge of their line.
// One non-king piece on the line they wrapped into is then chosen at random
// and demoted. The en passant slot is closed afterwards.
func (e *Engine) ShiftDirection(board *chess.Board, dir Direction) Result {
	res := Result{Direction: dir}
	dRow, dCol := dir.delta()

	pieces := board.AllPieces()
	for _, p := range pieces {
		to := chess.Sq(wrap(p.Square.Row+dRow), wrap(p.Square.Col+dCol))
		res.Moves = append(res.Moves, Move{Piece: p, From: p.Square, To: to})
	}
	for _, m := range res.Moves {
		board.Vacate(m.From)
	}
	for _, m := range res.Moves {
		board.Place(m.Piece, m.To)
	}

	res.Selected, res.Replacement = e.demote(board, dir)
	board.ClearEnPassant()
	return res
}

// demote picks a non-king piece on the boundary line and replaces it with a
// lower-ranked piece of the other colour.
func (e *Engine) demote(board *chess.Board, dir Direction) (selected, replacement *chess.Piece) {
	var candidates []*chess.Piece
	for i := 0; i < chess.BoardSize; i++ {
		if p := board.At(dir.boundary(i)); p != nil && p.Kind != chess.King {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	selected = candidates[e.rng.Intn(len(candidates))]
	rank := selected.Kind.Rank()
	if rank <= 0 {
		return selected, nil
	}
	kind, ok := chess.KindOfRank(e.rng.Intn(rank))
	if !ok {
		return selected, nil
	}

	sq := selected.Square
	board.RemovePiece(selected)
	replacement = board.AddPiece(selected.Colour.Opposite(), kind, sq)
	if replacement != nil {
		replacement.HasMoved = true
	}
	return selected, replacement
}

// wrap folds an index back onto the board.
func wrap(i int) int {
	return (i + chess.BoardSize) % chess.BoardSize
}
