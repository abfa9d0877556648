package engine

import "github.com/lgbarn/chessvar-go/internal/chess"

// Winner reports the winning side, if any. A side loses as soon as any one
// of its six piece kinds has no pieces left; White is examined first.
func Winner(board *chess.Board) (chess.Side, bool) {
	for _, side := range []chess.Side{chess.White, chess.Black} {
		if LostPieceKind(board, side) {
			return side.Opposite(), true
		}
	}
	return chess.White, false
}

// LostPieceKind reports whether side has no pieces left of some kind.
func LostPieceKind(board *chess.Board, side chess.Side) bool {
	_, ok := ExtinctKind(board, side)
	return ok
}

// ExtinctKind returns the first kind of which side has no pieces left.
func ExtinctKind(board *chess.Board, side chess.Side) (chess.PieceKind, bool) {
	pieces := board.Pieces(side)
	for _, kind := range chess.AllPieceKinds {
		if pieces[kind] == 0 {
			return kind, true
		}
	}
	return 0, false
}
