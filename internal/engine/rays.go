// Package engine provides move generation, validation and execution on a
// bitboard board.
package engine

import "github.com/lgbarn/chessvar-go/internal/chess"

// Direction is one of the eight compass directions a ray can travel.
type Direction int

const (
	North Direction = iota
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
	NumDirections
)

// Direction sets used by the sliding pieces and the king.
var (
	RookDirections   = []Direction{North, South, East, West}
	BishopDirections = []Direction{NorthEast, NorthWest, SouthEast, SouthWest}
	QueenDirections  = []Direction{North, South, East, West, NorthEast, NorthWest, SouthEast, SouthWest}
)

// directionEdge holds, per direction, the squares from which one more step
// would leave the board.
var directionEdge = [NumDirections]chess.Bitboard{
	North:     chess.Rank8,
	South:     chess.Rank1,
	East:      chess.FileH,
	West:      chess.FileA,
	NorthEast: chess.Rank8 | chess.FileH,
	NorthWest: chess.Rank8 | chess.FileA,
	SouthEast: chess.Rank1 | chess.FileH,
	SouthWest: chess.Rank1 | chess.FileA,
}

// directionShift is the square-index delta of one step.
var directionShift = [NumDirections]int{
	North:     8,
	South:     -8,
	East:      1,
	West:      -1,
	NorthEast: 9,
	NorthWest: 7,
	SouthEast: -7,
	SouthWest: -9,
}

// String returns the compass abbreviation of a direction.
func (d Direction) String() string {
	names := []string{"N", "S", "E", "W", "NE", "NW", "SE", "SW"}
	if d >= 0 && int(d) < len(names) {
		return names[d]
	}
	return "?"
}

// Step moves every square in bb one step in direction d. Squares on the edge
// in that direction are dropped rather than wrapped.
func Step(bb chess.Bitboard, d Direction) chess.Bitboard {
	bb &^= directionEdge[d]
	if shift := directionShift[d]; shift > 0 {
		return bb << uint(shift)
	}
	return bb >> uint(-directionShift[d])
}

// Ray casts from origin in direction d. Each step is taken only if it stays
// on the board; the ray ends on the first occupied square, which is
// included. A limit <= 0 leaves the ray unbounded.
func Ray(origin chess.Square, d Direction, occupied chess.Bitboard, limit int) chess.Bitboard {
	var ray chess.Bitboard
	cur := origin.Mask()
	for n := 0; limit <= 0 || n < limit; n++ {
		next := Step(cur, d)
		if next == 0 {
			break
		}
		ray |= next
		if next&occupied != 0 {
			break
		}
		cur = next
	}
	return ray
}

// Rays is the union of Ray over several directions.
func Rays(origin chess.Square, dirs []Direction, occupied chess.Bitboard, limit int) chess.Bitboard {
	var out chess.Bitboard
	for _, d := range dirs {
		out |= Ray(origin, d, occupied, limit)
	}
	return out
}
