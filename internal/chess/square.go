package chess

import (
	"fmt"

	"github.com/lgbarn/chessvar-go/internal/errors"
)

// Square is a board index in [0,63]: rank*8 + file, A1 = 0, H8 = 63.
type Square int

// NoSquare marks the absence of a square.
const NoSquare Square = -1

// NewSquare builds a square from 0-based file and rank.
func NewSquare(file, rank int) Square {
	return Square(rank*BoardSize + file)
}

// File returns the 0-based file (A = 0).
func (sq Square) File() int { return int(sq) % BoardSize }

// Rank returns the 0-based rank (rank 1 = 0).
func (sq Square) Rank() int { return int(sq) / BoardSize }

// Valid reports whether sq is on the board.
func (sq Square) Valid() bool { return sq >= 0 && sq < NumSquares }

// Mask returns the single-bit bitboard for sq, or Empty if off-board.
func (sq Square) Mask() Bitboard {
	if !sq.Valid() {
		return Empty
	}
	return Bitboard(1) << uint(sq)
}

// String returns the upper-case label, e.g. "E4".
func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{byte(FileBase + sq.File()), byte(RankBase + sq.Rank())})
}

// ParseSquare converts a two-character label (file A-H in either case, rank
// 1-8) to a square.
func ParseSquare(label string) (Square, error) {
	if len(label) != 2 {
		return NoSquare, fmt.Errorf("%q: wrong length: %w", label, errors.ErrInvalidSquare)
	}

	f := label[0]
	if f >= 'a' && f <= 'z' {
		f -= 'a' - 'A'
	}
	r := label[1]

	if f < 'A' || f > 'H' {
		return NoSquare, fmt.Errorf("%q: file out of range: %w", label, errors.ErrInvalidSquare)
	}
	if r < '1' || r > '8' {
		return NoSquare, fmt.Errorf("%q: rank out of range: %w", label, errors.ErrInvalidSquare)
	}
	return NewSquare(int(f-'A'), int(r-'1')), nil
}

// SquareMask converts a label to its single-bit bitboard.
func SquareMask(label string) (Bitboard, error) {
	sq, err := ParseSquare(label)
	if err != nil {
		return Empty, err
	}
	return sq.Mask(), nil
}

// MustSquare is ParseSquare for compile-time constant labels; it panics on a
// malformed label.
func MustSquare(label string) Square {
	sq, err := ParseSquare(label)
	if err != nil {
		panic(err)
	}
	return sq
}
