package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessvar-go/internal/chess"
	"github.com/lgbarn/chessvar-go/internal/errors"
)

// MoveOutcome reports a committed move.
type MoveOutcome struct {
	Side       chess.Side
	Moved      chess.PieceKind
	Captured   chess.PieceKind // valid only when HasCapture is true
	HasCapture bool
	From       chess.Square
	To         chess.Square
}

// String describes the move, e.g. "White Rook from A1 to A8, captures Rook".
func (o MoveOutcome) String() string {
	s := fmt.Sprintf("%s %s from %s to %s", o.Side, o.Moved, o.From, o.To)
	if o.HasCapture {
		s += fmt.Sprintf(", captures %s", o.Captured)
	}
	return s
}

// ExecuteMove validates and commits a move for the side to move. The turn
// is not advanced; that is left to the caller. On error the board is left
// exactly as it was.
func ExecuteMove(board *chess.Board, from, to string) (MoveOutcome, error) {
	side := board.Turn()
	moveErr := func(err error, piece string) error {
		return &errors.MoveError{Err: err, From: from, To: to, Side: side.String(), Piece: piece}
	}

	if strings.EqualFold(from, to) {
		return MoveOutcome{}, moveErr(errors.ErrDegenerateMove, "")
	}

	fromSq, err := chess.ParseSquare(from)
	if err != nil {
		return MoveOutcome{}, moveErr(err, "")
	}
	toSq, err := chess.ParseSquare(to)
	if err != nil {
		return MoveOutcome{}, moveErr(err, "")
	}

	legal, kind, err := LegalDestinations(board, fromSq.Mask(), side)
	if err != nil {
		return MoveOutcome{}, moveErr(err, "")
	}
	if !legal.Has(toSq) {
		return MoveOutcome{}, moveErr(errors.ErrIllegalDestination, kind.String())
	}

	captured, hasCapture := board.ApplyRaw(side, kind, fromSq.Mask(), toSq.Mask())
	return MoveOutcome{
		Side:       side,
		Moved:      kind,
		Captured:   captured,
		HasCapture: hasCapture,
		From:       fromSq,
		To:         toSq,
	}, nil
}
