package board

import (
	"fmt"
	"math/bits"
)

// Bitboard represents the 90 squares of a Xiangqi board as two lanes: Lo
// holds squares 0-63, Hi holds squares 64-89 (in its low 26 bits). Squares
// 90-127 of Hi are always zero; every constructor and mutator preserves
// that invariant.
type Bitboard struct {
	Lo uint64
	Hi uint64
}

// Empty is the bitboard with no squares set.
var Empty = Bitboard{}

// hiMask covers exactly squares 64-89 within the Hi lane.
const hiMask uint64 = (1 << (NumSquares - 64)) - 1

// All is the bitboard with every board square set.
var All = Bitboard{Lo: ^uint64(0), Hi: hiMask}

// FileMask and RankMask give masks for each file (0-8) and rank (0-9).
var (
	FileMask [NumFiles]Bitboard
	RankMask [NumRanks]Bitboard
)

func init() {
	for f := 0; f < NumFiles; f++ {
		for r := 0; r < NumRanks; r++ {
			sq := NewSquare(f, r)
			FileMask[f] = FileMask[f].WithBitSet(sq)
			RankMask[r] = RankMask[r].WithBitSet(sq)
		}
	}
}

// SquareBB returns a bitboard with only sq set.
func SquareBB(sq Square) Bitboard {
	if sq >= NumSquares {
		return Empty
	}
	if sq < 64 {
		return Bitboard{Lo: 1 << uint(sq)}
	}
	return Bitboard{Hi: 1 << uint(sq-64)}
}

// WithBitSet returns a copy of b with sq set.
func (b Bitboard) WithBitSet(sq Square) Bitboard {
	return b.Union(SquareBB(sq))
}

// WithBitCleared returns a copy of b with sq cleared.
func (b Bitboard) WithBitCleared(sq Square) Bitboard {
	s := SquareBB(sq)
	return Bitboard{Lo: b.Lo &^ s.Lo, Hi: b.Hi &^ s.Hi}
}

// Contains reports whether sq is set in b.
func (b Bitboard) Contains(sq Square) bool {
	s := SquareBB(sq)
	return (b.Lo&s.Lo)|(b.Hi&s.Hi) != 0
}

// Toggle returns a copy of b with sq's bit flipped.
func (b Bitboard) Toggle(sq Square) Bitboard {
	s := SquareBB(sq)
	return Bitboard{Lo: b.Lo ^ s.Lo, Hi: b.Hi ^ s.Hi}
}

// Union returns the bitwise OR of b and o.
func (b Bitboard) Union(o Bitboard) Bitboard {
	return Bitboard{Lo: b.Lo | o.Lo, Hi: b.Hi | o.Hi}
}

// Intersect returns the bitwise AND of b and o.
func (b Bitboard) Intersect(o Bitboard) Bitboard {
	return Bitboard{Lo: b.Lo & o.Lo, Hi: b.Hi & o.Hi}
}

// Xor returns the bitwise XOR of b and o.
func (b Bitboard) Xor(o Bitboard) Bitboard {
	return Bitboard{Lo: b.Lo ^ o.Lo, Hi: b.Hi ^ o.Hi}
}

// Without returns b with every bit that is set in o cleared.
func (b Bitboard) Without(o Bitboard) Bitboard {
	return Bitboard{Lo: b.Lo &^ o.Lo, Hi: b.Hi &^ o.Hi}
}

// Complement returns every board square not in b.
func (b Bitboard) Complement() Bitboard {
	return All.Xor(b)
}

// IsEmpty reports whether no squares are set.
func (b Bitboard) IsEmpty() bool {
	return b.Lo == 0 && b.Hi == 0
}

// Any reports whether at least one square is set.
func (b Bitboard) Any() bool {
	return !b.IsEmpty()
}

// PopCount returns the number of set squares.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(b.Lo) + bits.OnesCount64(b.Hi)
}

// LSB returns the lowest-indexed set square, or NoSquare if b is empty.
func (b Bitboard) LSB() Square {
	if b.Lo != 0 {
		return Square(bits.TrailingZeros64(b.Lo))
	}
	if b.Hi != 0 {
		return Square(64 + bits.TrailingZeros64(b.Hi))
	}
	return NoSquare
}

// MSB returns the highest-indexed set square, or NoSquare if b is empty.
func (b Bitboard) MSB() Square {
	if b.Hi != 0 {
		return Square(64 + 63 - bits.LeadingZeros64(b.Hi))
	}
	if b.Lo != 0 {
		return Square(63 - bits.LeadingZeros64(b.Lo))
	}
	return NoSquare
}

// NextSetFrom returns the smallest set square >= start, or NoSquare if none
// qualifies. Useful for iterating a bitboard without destroying it, unlike
// PopLSB.
func (b Bitboard) NextSetFrom(start Square) Square {
	if start >= NumSquares {
		return NoSquare
	}
	if start < 64 {
		if masked := b.Lo &^ ((uint64(1) << uint(start)) - 1); masked != 0 {
			return Square(bits.TrailingZeros64(masked))
		}
		if b.Hi != 0 {
			return Square(64 + bits.TrailingZeros64(b.Hi))
		}
		return NoSquare
	}
	if masked := b.Hi &^ ((uint64(1) << uint(start-64)) - 1); masked != 0 {
		return Square(64 + bits.TrailingZeros64(masked))
	}
	return NoSquare
}

// PopLSB clears and returns the lowest-indexed set square.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	if sq != NoSquare {
		*b = b.WithBitCleared(sq)
	}
	return sq
}

// String renders the bitboard as a 10x9 grid, rank 9 (Black's back rank)
// printed first.
func (b Bitboard) String() string {
	s := ""
	for rank := NumRanks - 1; rank >= 0; rank-- {
		s += fmt.Sprintf("%2d ", rank+1)
		for file := 0; file < NumFiles; file++ {
			if b.Contains(NewSquare(file, rank)) {
				s += "1 "
			} else {
				s += ". "
			}
		}
		s += "\n"
	}
	s += "   a b c d e f g h i\n"
	return s
}

// ForEach calls f once for every set square, in ascending order.
func (b Bitboard) ForEach(f func(Square)) {
	for !b.IsEmpty() {
		f(b.PopLSB())
	}
}

// Squares returns every set square, in ascending order.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	b.ForEach(func(sq Square) { squares = append(squares, sq) })
	return squares
}
