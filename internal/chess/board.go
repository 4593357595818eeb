package chess

import "golang.org/x/exp/slices"

// Board represents the 8×8 grid together with the per-colour piece
// registries and the state legality checks depend on.
type Board struct {
	// squares[row][col] holds the occupant, or nil for an empty square.
	squares [BoardSize][BoardSize]*Piece

	// Registries of live pieces, indexed by Colour, in insertion order.
	pieces [NumColours][]*Piece

	nextID PieceID

	// Is an en passant capture possible? If so EPSquare is the square the
	// double-stepping pawn crossed and EPPawn is that pawn. The slot lives
	// for exactly one opposing move.
	EnPassant bool
	EPSquare  Square
	EPPawn    PieceID

	// Cached results of the last check query for each colour.
	check [NumColours]CheckState
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	return &Board{nextID: 1}
}

// NewInitialBoard creates a board set up in the standard starting position.
func NewInitialBoard() *Board {
	b := NewBoard()
	b.SetupInitialPosition()
	return b
}

// SetupInitialPosition clears the board and places both armies.
func (b *Board) SetupInitialPosition() {
	*b = Board{nextID: 1}

	backRank := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col := 0; col < BoardSize; col++ {
		b.AddPiece(Black, backRank[col], Sq(0, col))
		b.AddPiece(Black, Pawn, Sq(1, col))
	}
	for col := 0; col < BoardSize; col++ {
		b.AddPiece(White, Pawn, Sq(6, col))
		b.AddPiece(White, backRank[col], Sq(7, col))
	}
}

// At returns the occupant of sq, or nil if the square is empty or off the board.
func (b *Board) At(sq Square) *Piece {
	if !sq.InBounds() {
		return nil
	}
	return b.squares[sq.Row][sq.Col]
}

// IsEmpty reports whether sq is on the board and unoccupied.
func (b *Board) IsEmpty(sq Square) bool {
	return sq.InBounds() && b.squares[sq.Row][sq.Col] == nil
}

// AddPiece creates a piece, places it on sq and registers it.
// It returns nil if sq is off the board or already occupied.
func (b *Board) AddPiece(colour Colour, kind Kind, sq Square) *Piece {
	if !b.IsEmpty(sq) {
		return nil
	}
	if b.nextID == NoPiece {
		b.nextID = 1
	}
	p := &Piece{ID: b.nextID, Colour: colour, Kind: kind, Square: sq}
	b.nextID++
	b.squares[sq.Row][sq.Col] = p
	b.pieces[colour] = append(b.pieces[colour], p)
	return p
}

// RemovePiece clears the piece's square and removes it from its registry.
func (b *Board) RemovePiece(p *Piece) {
	if p == nil {
		return
	}
	if b.At(p.Square) == p {
		b.squares[p.Square.Row][p.Square.Col] = nil
	}
	reg := b.pieces[p.Colour]
	if i := slices.Index(reg, p); i >= 0 {
		b.pieces[p.Colour] = slices.Delete(reg, i, i+1)
	}
}

// Vacate empties sq without touching the registries.
func (b *Board) Vacate(sq Square) {
	if sq.InBounds() {
		b.squares[sq.Row][sq.Col] = nil
	}
}

// Place puts p on sq and updates its recorded position. Whatever occupied
// sq before is overwritten, so callers remove captured pieces first.
func (b *Board) Place(p *Piece, sq Square) {
	if !sq.InBounds() {
		return
	}
	b.squares[sq.Row][sq.Col] = p
	p.Square = sq
}

// Relocate moves p from its current square to sq.
func (b *Board) Relocate(p *Piece, sq Square) {
	if b.At(p.Square) == p {
		b.Vacate(p.Square)
	}
	b.Place(p, sq)
}

// Pieces returns the registry of live pieces for a colour. The slice is
// owned by the board; callers must not modify it.
func (b *Board) Pieces(colour Colour) []*Piece {
	return b.pieces[colour]
}

// AllPieces returns White's pieces followed by Black's.
func (b *Board) AllPieces() []*Piece {
	all := make([]*Piece, 0, len(b.pieces[White])+len(b.pieces[Black]))
	all = append(all, b.pieces[White]...)
	return append(all, b.pieces[Black]...)
}

// PieceByID finds a live piece by its identifier.
func (b *Board) PieceByID(id PieceID) *Piece {
	for _, reg := range b.pieces {
		if i := slices.IndexFunc(reg, func(p *Piece) bool { return p.ID == id }); i >= 0 {
			return reg[i]
		}
	}
	return nil
}

// King returns the king of the given colour, or nil if there is none.
func (b *Board) King(colour Colour) *Piece {
	for _, p := range b.pieces[colour] {
		if p.Kind == King {
			return p
		}
	}
	return nil
}

// CheckState returns the cached check state for a colour.
func (b *Board) CheckState(colour Colour) CheckState {
	return b.check[colour]
}

// SetCheckState records the result of a check query for a colour.
func (b *Board) SetCheckState(colour Colour, s CheckState) {
	b.check[colour] = s
}

// ClearEnPassant closes the en passant window.
func (b *Board) ClearEnPassant() {
	b.EnPassant = false
	b.EPSquare = Square{}
	b.EPPawn = NoPiece
}

// SetEnPassant opens the en passant window on sq for the given pawn.
func (b *Board) SetEnPassant(sq Square, pawn PieceID) {
	b.EnPassant = true
	b.EPSquare = sq
	b.EPPawn = pawn
}

// Clone creates a deep copy of the board. Pieces are copied and keep their
// IDs, so a piece in the copy is found with PieceByID.
func (b *Board) Clone() *Board {
	nb := &Board{
		nextID:    b.nextID,
		EnPassant: b.EnPassant,
		EPSquare:  b.EPSquare,
		EPPawn:    b.EPPawn,
	}
	copies := make(map[*Piece]*Piece, len(b.pieces[White])+len(b.pieces[Black]))
	for c := range b.pieces {
		nb.pieces[c] = make([]*Piece, len(b.pieces[c]))
		for i, p := range b.pieces[c] {
			cp := *p
			nb.pieces[c][i] = &cp
			copies[p] = &cp
		}
	}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if p := b.squares[row][col]; p != nil {
				nb.squares[row][col] = copies[p]
			}
		}
	}
	for c := range b.check {
		nb.check[c] = b.check[c]
		if chk := b.check[c].Checking; chk != nil {
			nb.check[c].Checking = copies[chk]
		}
	}
	return nb
}
