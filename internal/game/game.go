// Package game provides the game facade over the move engine: turn
// bookkeeping, the piece-kind extinction win rule and move history.
package game

import (
	"github.com/lgbarn/chessvar-go/internal/chess"
	"github.com/lgbarn/chessvar-go/internal/engine"
	"github.com/lgbarn/chessvar-go/internal/errors"
)

// Status is the state of a game.
type Status int

const (
	Unfinished Status = iota
	WhiteWon
	BlackWon
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case WhiteWon:
		return "WHITE_WON"
	case BlackWon:
		return "BLACK_WON"
	default:
		return "UNFINISHED"
	}
}

// Move is a requested move as a pair of square labels.
type Move struct {
	From string
	To   string
}

// String returns the move in coordinate form, e.g. "e2e4".
func (m Move) String() string {
	return m.From + m.To
}

// MoveRecord is one committed move in a game's history.
type MoveRecord struct {
	Ply     int // 1-based
	Outcome engine.MoveOutcome
}

// Game is a single game between two sides. It is not safe for concurrent
// use; Manager serialises access to the games it holds.
type Game struct {
	board   *chess.Board
	history []MoveRecord
}

// New starts a game from the standard starting position.
func New() *Game {
	return &Game{board: chess.NewStandardGame()}
}

// NewFromBoard starts a game from an arbitrary position.
func NewFromBoard(board *chess.Board) *Game {
	return &Game{board: board}
}

// MakeMove plays a move for the side to move and, on success, records it
// and passes the turn to the other side.
func (g *Game) MakeMove(from, to string) (engine.MoveOutcome, error) {
	if g.Status() != Unfinished {
		return engine.MoveOutcome{}, &errors.MoveError{
			Err:  errors.ErrGameAlreadyOver,
			From: from,
			To:   to,
			Side: g.board.Turn().String(),
		}
	}

	outcome, err := engine.ExecuteMove(g.board, from, to)
	if err != nil {
		return engine.MoveOutcome{}, err
	}

	g.history = append(g.history, MoveRecord{Ply: len(g.history) + 1, Outcome: outcome})
	g.board.AdvanceTurn()
	return outcome, nil
}

// Status reports whether the game is decided.
func (g *Game) Status() Status {
	side, ok := engine.Winner(g.board)
	switch {
	case !ok:
		return Unfinished
	case side == chess.White:
		return WhiteWon
	default:
		return BlackWon
	}
}

// Winner returns the winning side, if any.
func (g *Game) Winner() (chess.Side, bool) {
	return engine.Winner(g.board)
}

// Turn returns the side to move.
func (g *Game) Turn() chess.Side {
	return g.board.Turn()
}

// History returns a copy of the committed moves.
func (g *Game) History() []MoveRecord {
	out := make([]MoveRecord, len(g.history))
	copy(out, g.history)
	return out
}

// LastMove returns the most recent move, if any.
func (g *Game) LastMove() (MoveRecord, bool) {
	if len(g.history) == 0 {
		return MoveRecord{}, false
	}
	return g.history[len(g.history)-1], true
}

// Snapshot returns the piece masks for rendering.
func (g *Game) Snapshot() chess.Snapshot {
	return g.board.Snapshot()
}

// FEN returns the position as a FEN placement and side to move.
func (g *Game) FEN() string {
	return engine.BoardToFEN(g.board)
}

// Legal returns the legal destination labels of the side-to-move's piece on
// the given square.
func (g *Game) Legal(from string) ([]string, error) {
	legal, _, err := engine.LegalDestinationsFrom(g.board, from, g.board.Turn())
	if err != nil {
		return nil, err
	}
	return legal.Labels(), nil
}
