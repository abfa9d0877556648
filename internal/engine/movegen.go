package engine

import (
	"fmt"

	"github.com/lgbarn/chessvar-go/internal/chess"
	"github.com/lgbarn/chessvar-go/internal/errors"
)

// IdentifyPiece finds which of side's pieces stands on origin. The masks
// are searched in PieceKind order and the first match wins.
func IdentifyPiece(board *chess.Board, origin chess.Bitboard, side chess.Side) (chess.PieceKind, bool) {
	pieces := board.Pieces(side)
	for _, kind := range chess.AllPieceKinds {
		if pieces[kind]&origin != 0 {
			return kind, true
		}
	}
	return 0, false
}

// PieceDestinations returns the reachable squares of a piece of the given
// kind and side on origin before own-piece filtering. occupied must not
// contain origin.
func PieceDestinations(kind chess.PieceKind, origin chess.Square, side chess.Side, occupied, opponent chess.Bitboard) chess.Bitboard {
	switch kind {
	case chess.Pawn:
		return PawnDestinations(origin, side, occupied, opponent)
	case chess.Rook:
		return Rays(origin, RookDirections, occupied, 0)
	case chess.Knight:
		return KnightDestinations(origin)
	case chess.Bishop:
		return Rays(origin, BishopDirections, occupied, 0)
	case chess.Queen:
		return Rays(origin, QueenDirections, occupied, 0)
	case chess.King:
		return Rays(origin, QueenDirections, occupied, 1)
	}
	return chess.Empty
}

// LegalDestinations returns the legal destination squares of side's piece
// on origin, together with the piece's kind.
func LegalDestinations(board *chess.Board, origin chess.Bitboard, side chess.Side) (chess.Bitboard, chess.PieceKind, error) {
	if !origin.Single() {
		return chess.Empty, 0, fmt.Errorf("origin mask %#x: %w", uint64(origin), errors.ErrInvalidSquare)
	}

	kind, ok := IdentifyPiece(board, origin, side)
	if !ok {
		return chess.Empty, 0, fmt.Errorf("%s on %s: %w", side, origin.LSB(), errors.ErrNoPieceAtOrigin)
	}

	occupied := board.All() &^ origin
	own := board.Occupancy(side)
	opponent := board.Occupancy(side.Opposite())

	moves := PieceDestinations(kind, origin.LSB(), side, occupied, opponent)
	return moves &^ own, kind, nil
}

// LegalDestinationsFrom is LegalDestinations for a square label.
func LegalDestinationsFrom(board *chess.Board, label string, side chess.Side) (chess.Bitboard, chess.PieceKind, error) {
	origin, err := chess.SquareMask(label)
	if err != nil {
		return chess.Empty, 0, err
	}
	return LegalDestinations(board, origin, side)
}
