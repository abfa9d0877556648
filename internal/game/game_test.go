package game

import (
	"testing"

	"github.com/lgbarn/chessvar-go/internal/chess"
	"github.com/lgbarn/chessvar-go/internal/engine"
	"github.com/lgbarn/chessvar-go/internal/errors"
	"github.com/lgbarn/chessvar-go/internal/testutil"
)

// queenHangs is a position where White's rook on D2 can take Black's only
// queen.
const queenHangs = "1nb1k2r/p7/8/8/3q4/8/3R3P/1NB1K1Q1 w"

func newFromFEN(t *testing.T, fen string) *Game {
	t.Helper()
	b, err := engine.NewBoardFromFEN(fen)
	testutil.AssertNoError(t, err)
	return NewFromBoard(b)
}

func TestNewGame(t *testing.T) {
	g := New()
	testutil.AssertEqual(t, g.Turn(), chess.White)
	testutil.AssertEqual(t, g.Status(), Unfinished)
	testutil.AssertEqual(t, g.FEN(), engine.InitialFEN)
	if _, ok := g.LastMove(); ok {
		t.Error("new game should have no last move")
	}
	if _, ok := g.Winner(); ok {
		t.Error("new game should have no winner")
	}
}

func TestMakeMoveAdvancesTurn(t *testing.T) {
	g := New()

	out, err := g.MakeMove("e2", "e4")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, out.Moved, chess.Pawn)
	testutil.AssertEqual(t, g.Turn(), chess.Black)

	_, err = g.MakeMove("E7", "E5")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, g.Turn(), chess.White)

	history := g.History()
	testutil.AssertEqual(t, len(history), 2)
	testutil.AssertEqual(t, history[0].Ply, 1)
	testutil.AssertEqual(t, history[1].Outcome.Side, chess.Black)
	testutil.AssertEqual(t, history[1].Outcome.To.String(), "E5")

	last, ok := g.LastMove()
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, last, history[1])
}

func TestRejectedMoveKeepsTurn(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     error
	}{
		{"black piece on white turn", "e7", "e5", errors.ErrNoPieceAtOrigin},
		{"blocked rook", "a1", "a3", errors.ErrIllegalDestination},
		{"same square", "e2", "E2", errors.ErrDegenerateMove},
		{"off board", "e2", "e9", errors.ErrInvalidSquare},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			before := g.Snapshot()
			_, err := g.MakeMove(tt.from, tt.to)
			testutil.AssertErrorIs(t, err, tt.want)
			testutil.AssertEqual(t, g.Turn(), chess.White)
			testutil.AssertEqual(t, g.Snapshot(), before)
			testutil.AssertEqual(t, len(g.History()), 0)
		})
	}
}

func TestCaptureEndsGame(t *testing.T) {
	g := newFromFEN(t, queenHangs)

	out, err := g.MakeMove("d2", "d4")
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, out.HasCapture)
	testutil.AssertEqual(t, out.Captured, chess.Queen)

	testutil.AssertEqual(t, g.Status(), WhiteWon)
	side, ok := g.Winner()
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, side, chess.White)

	before := g.Snapshot()
	_, err = g.MakeMove("e8", "d8")
	testutil.AssertErrorIs(t, err, errors.ErrGameAlreadyOver)
	testutil.AssertEqual(t, g.Snapshot(), before)
	testutil.AssertEqual(t, len(g.History()), 1)
}

func TestBlackWins(t *testing.T) {
	// White has a single knight left, on B1.
	g := newFromFEN(t, "rnbqkbnr/pppppppp/8/8/8/2n5/P1PPPPPP/RNBQKB1R b")
	testutil.AssertEqual(t, g.Status(), Unfinished)

	out, err := g.MakeMove("c3", "b1")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, out.Captured, chess.Knight)
	testutil.AssertEqual(t, g.Status(), BlackWon)

	side, ok := g.Winner()
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, side, chess.Black)
}

func TestLegal(t *testing.T) {
	g := New()

	got, err := g.Legal("b1")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, []string{"A3", "C3"})

	_, err = g.Legal("b8")
	testutil.AssertErrorIs(t, err, errors.ErrNoPieceAtOrigin)

	_, err = g.Legal("z1")
	testutil.AssertErrorIs(t, err, errors.ErrInvalidSquare)
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{Unfinished, "UNFINISHED"},
		{WhiteWon, "WHITE_WON"},
		{BlackWon, "BLACK_WON"},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, tt.status.String(), tt.want)
	}
}

func TestHistoryIsCopy(t *testing.T) {
	g := New()
	_, err := g.MakeMove("e2", "e4")
	testutil.AssertNoError(t, err)

	h := g.History()
	h[0].Ply = 99
	testutil.AssertEqual(t, g.History()[0].Ply, 1)
}
