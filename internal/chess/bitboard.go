package chess

import "math/bits"

// Bitboard is a set of squares, bit i standing for Square i.
type Bitboard uint64

// File and rank masks (bit 0 = A1, bit 63 = H8).
const (
	Empty Bitboard = 0

	FileA Bitboard = 0x0101010101010101
	FileB Bitboard = FileA << 1
	FileG Bitboard = FileA << 6
	FileH Bitboard = FileA << 7

	Rank1 Bitboard = 0x00000000000000ff
	Rank2 Bitboard = Rank1 << (8 * 1)
	Rank7 Bitboard = Rank1 << (8 * 6)
	Rank8 Bitboard = Rank1 << (8 * 7)
)

// Has reports whether sq is in the set.
func (b Bitboard) Has(sq Square) bool { return b&sq.Mask() != 0 }

// Set returns the set with sq added.
func (b Bitboard) Set(sq Square) Bitboard { return b | sq.Mask() }

// Clear returns the set with sq removed.
func (b Bitboard) Clear(sq Square) Bitboard { return b &^ sq.Mask() }

// Count returns the number of squares in the set.
func (b Bitboard) Count() int { return bits.OnesCount64(uint64(b)) }

// Empty reports whether the set has no squares.
func (b Bitboard) Empty() bool { return b == 0 }

// Single reports whether exactly one square is set.
func (b Bitboard) Single() bool { return b != 0 && b&(b-1) == 0 }

// LSB returns the lowest square in the set, or NoSquare if empty.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB returns the lowest square and the set without it.
func (b Bitboard) PopLSB() (Square, Bitboard) {
	if b == 0 {
		return NoSquare, 0
	}
	return b.LSB(), b & (b - 1)
}

// Squares returns the squares of the set in ascending order.
func (b Bitboard) Squares() []Square {
	out := make([]Square, 0, b.Count())
	for b != 0 {
		var sq Square
		sq, b = b.PopLSB()
		out = append(out, sq)
	}
	return out
}

// Labels returns the square labels of the set in ascending order.
func (b Bitboard) Labels() []string {
	sqs := b.Squares()
	out := make([]string, len(sqs))
	for i, sq := range sqs {
		out[i] = sq.String()
	}
	return out
}
