package testutil

import (
	"strings"
	"testing"

	"github.com/lgbarn/chessvar-go/internal/chess"
)

// PlacePieces builds a board from space-separated piece tokens such as
// "Ra1 ke8 Pe2": the letter gives the kind, upper case for White, and the
// rest is the square label.
func PlacePieces(t *testing.T, turn chess.Side, tokens string) *chess.Board {
	t.Helper()
	b := chess.NewEmptyBoard(turn)
	for _, tok := range strings.Fields(tokens) {
		if len(tok) != 3 {
			t.Fatalf("PlacePieces: bad token %q", tok)
		}
		kind, ok := chess.KindFromLetter(tok[0])
		if !ok {
			t.Fatalf("PlacePieces: bad piece letter in %q", tok)
		}
		sq, err := chess.ParseSquare(tok[1:])
		if err != nil {
			t.Fatalf("PlacePieces: %v", err)
		}
		side := chess.White
		if tok[0] >= 'a' && tok[0] <= 'z' {
			side = chess.Black
		}
		b.Place(side, kind, sq)
	}
	return b
}

// MustValidate fails the test if the board invariants do not hold.
func MustValidate(t *testing.T, b *chess.Board) {
	t.Helper()
	if err := b.Validate(); err != nil {
		t.Fatalf("board invariants broken: %v", err)
	}
}
