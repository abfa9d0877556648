package engine

import "github.com/lgbarn/chessvar-go/internal/chess"

// pawnStartRank is the rank from which a pawn may advance two squares.
var pawnStartRank = [chess.NumSides]chess.Bitboard{
	chess.White: chess.Rank2,
	chess.Black: chess.Rank7,
}

// pawnDirections returns the forward direction and the two forward diagonals.
func pawnDirections(side chess.Side) (Direction, []Direction) {
	if side == chess.White {
		return North, []Direction{NorthEast, NorthWest}
	}
	return South, []Direction{SouthEast, SouthWest}
}

// PawnDestinations returns where a pawn of side on origin may go.
// Forward steps never land on an occupied square and the two-step advance
// needs both squares empty; diagonal steps must land on an opponent.
func PawnDestinations(origin chess.Square, side chess.Side, occupied, opponent chess.Bitboard) chess.Bitboard {
	forward, diagonals := pawnDirections(side)

	limit := 1
	if pawnStartRank[side].Has(origin) {
		limit = 2
	}

	// The ray stops on (and includes) the first blocker, so removing the
	// occupied squares leaves only the empty run in front of the pawn.
	moves := Ray(origin, forward, occupied, limit) &^ occupied
	moves |= Rays(origin, diagonals, occupied, 1) & opponent
	return moves
}
