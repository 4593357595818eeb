package hashing

import (
	"github.com/lgbarn/silly-chess-go/internal/chess"
)

// DuplicateDetector records positions and reports the ones seen before.
type DuplicateDetector struct {
	// seen maps a Zobrist hash to the signatures stored under it
	seen map[uint64][]Signature
	// matchPly also requires the ply counts to agree
	matchPly bool
	// maxCapacity bounds the number of stored signatures; 0 is unlimited
	maxCapacity int

	stored     int
	duplicates int
	unique     int
}

// Signature identifies a position.
type Signature struct {
	Hash uint64
	Weak uint32
	Ply  int
}

// NewDuplicateDetector creates a detector. When matchPly is set two
// positions are duplicates only if they were reached at the same ply.
func NewDuplicateDetector(matchPly bool, maxCapacity int) *DuplicateDetector {
	return &DuplicateDetector{
		seen:        make(map[uint64][]Signature),
		matchPly:    matchPly,
		maxCapacity: maxCapacity,
	}
}

// SignatureOf computes the signature of a position.
func SignatureOf(board *chess.Board, toMove chess.Colour, ply int) Signature {
	return Signature{
		Hash: ZobristHash(board, toMove),
		Weak: WeakHash(board),
		Ply:  ply,
	}
}

// CheckAndAdd reports whether the position was seen before and records it
// if not. Once the detector is full new positions are counted but not stored.
func (d *DuplicateDetector) CheckAndAdd(board *chess.Board, toMove chess.Colour, ply int) bool {
	if board == nil {
		return false
	}
	sig := SignatureOf(board, toMove, ply)
	for _, s := range d.seen[sig.Hash] {
		if d.matches(sig, s) {
			d.duplicates++
			return true
		}
	}
	d.unique++
	if !d.IsFull() {
		d.seen[sig.Hash] = append(d.seen[sig.Hash], sig)
		d.stored++
	}
	return false
}

func (d *DuplicateDetector) matches(a, b Signature) bool {
	if a.Weak != b.Weak {
		return false
	}
	return !d.matchPly || a.Ply == b.Ply
}

// DuplicateCount returns the number of positions reported as seen before.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicates
}

// UniqueCount returns the number of distinct positions offered.
func (d *DuplicateDetector) UniqueCount() int {
	return d.unique
}

// IsFull reports whether the capacity limit has been reached.
// Always false for unlimited capacity.
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && d.stored >= d.maxCapacity
}

// Reset forgets every position.
func (d *DuplicateDetector) Reset() {
	d.seen = make(map[uint64][]Signature)
	d.stored = 0
	d.duplicates = 0
	d.unique = 0
}
