// Package hashing provides position hashing and repeated-position detection.
package hashing

import (
	"math/rand"

	"github.com/lgbarn/silly-chess-go/internal/chess"
)

// zobristSeed fixes the key table so hashes are stable across runs.
const zobristSeed = 0x5111c4e55

var (
	pieceKeys   [chess.NumColours][chess.NumKinds][chess.BoardSize * chess.BoardSize]uint64
	movedKeys   [chess.BoardSize * chess.BoardSize]uint64
	epKeys      [chess.BoardSize * chess.BoardSize]uint64
	blackToMove uint64
)

func init() {
	rng := rand.New(rand.NewSource(zobristSeed)) //nolint:gosec // hash keys, not cryptography
	for c := range pieceKeys {
		for k := range pieceKeys[c] {
			for sq := range pieceKeys[c][k] {
				pieceKeys[c][k][sq] = rng.Uint64()
			}
		}
	}
	for sq := range movedKeys {
		movedKeys[sq] = rng.Uint64()
		epKeys[sq] = rng.Uint64()
	}
	blackToMove = rng.Uint64()
}

func index(sq chess.Square) int {
	return sq.Row*chess.BoardSize + sq.Col
}

// ZobristHash hashes the placement, the moved flags of kings and rooks
// (which carry castling rights), the en passant square and the side to
// move. Piece IDs are not part of the hash.
func ZobristHash(board *chess.Board, toMove chess.Colour) uint64 {
	var h uint64
	for _, p := range board.AllPieces() {
		i := index(p.Square)
		h ^= pieceKeys[p.Colour][p.Kind][i]
		if p.HasMoved && (p.Kind == chess.King || p.Kind == chess.Rook) {
			h ^= movedKeys[i]
		}
	}
	if board.EnPassant {
		h ^= epKeys[index(board.EPSquare)]
	}
	if toMove == chess.Black {
		h ^= blackToMove
	}
	return h
}

// WeakHash is a cheap placement-only checksum used as a second opinion
// when two Zobrist hashes collide.
func WeakHash(board *chess.Board) uint32 {
	var h uint32
	for _, p := range board.AllPieces() {
		h += uint32(p.Symbol()) * uint32(index(p.Square)+1)
	}
	return h
}
