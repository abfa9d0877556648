package server

import (
	stderrors "errors"
	"net/http"

	"github.com/lgbarn/chessvar-go/internal/errors"
)

var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{errors.ErrGameNotFound, http.StatusNotFound, "game_not_found"},
	{errors.ErrInvalidSquare, http.StatusBadRequest, "invalid_square"},
	{errors.ErrDegenerateMove, http.StatusBadRequest, "degenerate_move"},
	{errors.ErrParseFailure, http.StatusBadRequest, "parse_failure"},
	{errors.ErrNoPieceAtOrigin, http.StatusUnprocessableEntity, "no_piece_at_origin"},
	{errors.ErrIllegalDestination, http.StatusUnprocessableEntity, "illegal_destination"},
	{errors.ErrGameAlreadyOver, http.StatusConflict, "game_already_over"},
}

// statusFor maps an error to its HTTP status and a stable code.
func statusFor(err error) (int, string) {
	for _, e := range errorStatus {
		if stderrors.Is(err, e.err) {
			return e.status, e.code
		}
	}
	return http.StatusInternalServerError, "internal"
}
