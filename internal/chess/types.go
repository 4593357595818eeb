// Package chess provides the core data model of the rules engine: colours,
// piece kinds, squares, pieces and the board that owns them.
package chess

import "fmt"

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// NumColours is the number of sides, used to size per-colour tables.
const NumColours = 2

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// ForwardStep returns the row delta of a single pawn step for the colour.
// White starts on row 7 and advances towards row 0.
func ForwardStep(c Colour) int {
	if c == White {
		return -1
	}
	return 1
}

// Kind is the closed set of piece variants.
type Kind int

const (
	Pawn Kind = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NumKinds
)

// String returns the string representation of a piece kind.
func (k Kind) String() string {
	names := []string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a kind (uppercase).
func (k Kind) Letter() byte {
	letters := []byte{'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// Rank returns the position of the kind in the demotion hierarchy
// Queen(4) > Rook(3) > Bishop(2) > Knight(1) > Pawn(0).
// Kings sit outside the hierarchy and report -1.
func (k Kind) Rank() int {
	switch k {
	case Pawn:
		return 0
	case Knight:
		return 1
	case Bishop:
		return 2
	case Rook:
		return 3
	case Queen:
		return 4
	}
	return -1
}

// KindOfRank is the inverse of Kind.Rank.
func KindOfRank(rank int) (Kind, bool) {
	switch rank {
	case 0:
		return Pawn, true
	case 1:
		return Knight, true
	case 2:
		return Bishop, true
	case 3:
		return Rook, true
	case 4:
		return Queen, true
	}
	return Pawn, false
}

// IsSliding reports whether the kind moves along open lines.
func (k Kind) IsSliding() bool {
	return k == Bishop || k == Rook || k == Queen
}

// BoardSize is the number of rows and columns.
const BoardSize = 8

// Square is a board coordinate. Row 0 is Black's back rank, row 7 is
// White's back rank; column 0 is the a-file.
type Square struct {
	Row int
	Col int
}

// Sq is shorthand for Square{Row: row, Col: col}.
func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

// InBounds reports whether the square lies on the board.
func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

// Offset returns the square shifted by the given deltas.
func (s Square) Offset(dRow, dCol int) Square {
	return Square{Row: s.Row + dRow, Col: s.Col + dCol}
}

// String returns the algebraic name of the square, e.g. "e4".
func (s Square) String() string {
	if !s.InBounds() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return fmt.Sprintf("%c%c", 'a'+s.Col, '8'-s.Row)
}

// ParseSquare converts an algebraic name such as "e4" to a Square.
func ParseSquare(name string) (Square, bool) {
	if len(name) != 2 {
		return Square{}, false
	}
	col := int(name[0]) - 'a'
	row := '8' - int(name[1])
	sq := Square{Row: row, Col: col}
	return sq, sq.InBounds()
}

// MustSquare is ParseSquare for literals known to be valid.
func MustSquare(name string) Square {
	sq, ok := ParseSquare(name)
	if !ok {
		panic("chess: invalid square " + name)
	}
	return sq
}

// PieceID identifies a piece for the lifetime of a game.
type PieceID int

// NoPiece is the zero PieceID; real pieces start at 1.
const NoPiece PieceID = 0

// Piece is a single piece on the board.
type Piece struct {
	ID       PieceID
	Colour   Colour
	Kind     Kind
	Square   Square
	HasMoved bool
}

// String returns a short description such as "White Knight@g1".
func (p *Piece) String() string {
	if p == nil {
		return "<none>"
	}
	return fmt.Sprintf("%v %v@%v", p.Colour, p.Kind, p.Square)
}

// Symbol returns the kind letter, uppercase for White and lowercase for Black.
func (p *Piece) Symbol() byte {
	l := p.Kind.Letter()
	if p.Colour == Black {
		return l + ('a' - 'A')
	}
	return l
}

// CheckState is the cached result of the most recent check query for one colour.
type CheckState struct {
	InCheck  bool
	Checking *Piece // last piece found giving check
	Count    int    // number of checking pieces; >1 is double check
}
