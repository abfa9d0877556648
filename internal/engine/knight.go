package engine

import "github.com/lgbarn/chessvar-go/internal/chess"

// Landing-square masks that reject jumps which wrapped around a side edge.
const (
	notFileA  = ^chess.FileA
	notFileH  = ^chess.FileH
	notFileAB = ^(chess.FileA | chess.FileB)
	notFileGH = ^(chess.FileG | chess.FileH)
)

// KnightAttacks returns the eight L-shaped jumps from every square in bb.
// Jumps past rank 1 or rank 8 fall off the 64-bit word; jumps past a side
// edge would reappear on the far files and are masked out there.
func KnightAttacks(bb chess.Bitboard) chess.Bitboard {
	return (bb<<17)&notFileA |
		(bb<<15)&notFileH |
		(bb<<10)&notFileAB |
		(bb<<6)&notFileGH |
		(bb>>17)&notFileH |
		(bb>>15)&notFileA |
		(bb>>10)&notFileGH |
		(bb>>6)&notFileAB
}

// KnightDestinations returns the knight's jumps from origin.
func KnightDestinations(origin chess.Square) chess.Bitboard {
	return KnightAttacks(origin.Mask())
}
