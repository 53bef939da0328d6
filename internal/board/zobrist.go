package board

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// zobristSeed fixes the key stream so that two processes (or two runs of
// the same process) always agree on the hash of a given position.
const zobristSeed uint64 = 18061995

var (
	zobristOnce sync.Once

	// zobristPiece is indexed [square][color][pieceType].
	zobristPiece      [NumSquares][2][7]uint64
	zobristSideToMove uint64
)

func init() {
	initZobrist()
}

// initZobrist derives the key table from zobristSeed via xxhash rather than
// a hand-rolled PRNG: each key is the hash of the seed concatenated with a
// monotonic counter, which is just as reproducible and avoids reimplementing
// a PRNG the module already depends on elsewhere.
func initZobrist() {
	zobristOnce.Do(func() {
		var counter uint64
		next := func() uint64 {
			var buf [16]byte
			binary.LittleEndian.PutUint64(buf[0:8], zobristSeed)
			binary.LittleEndian.PutUint64(buf[8:16], counter)
			counter++
			return xxhash.Sum64(buf[:])
		}

		for sq := 0; sq < NumSquares; sq++ {
			for c := Red; c <= Black; c++ {
				for pt := Pawn; pt <= Cannon; pt++ {
					zobristPiece[sq][c][pt] = next()
				}
			}
		}

		zobristSideToMove = next()
	})
}

// ZobristPiece returns the key contribution of a piece on a square.
func ZobristPiece(c Color, pt PieceType, sq Square) uint64 {
	return zobristPiece[sq][c][pt]
}

// ZobristSideToMove returns the key contribution toggled whenever the side
// to move changes.
func ZobristSideToMove() uint64 {
	return zobristSideToMove
}

// IsPawnKeyPiece reports whether a piece type contributes to the pawn key
// rather than to either color's non-pawn key.
func IsPawnKeyPiece(pt PieceType) bool {
	return pt == Pawn
}
