package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lgbarn/chessvar-go/internal/chess"
)

// These tests verify the assertion helpers work correctly.
// Since we can't mock *testing.T, we test success cases directly
// and test the formatMessage helper which is internally testable.

func TestAssertEqual_Success(t *testing.T) {
	AssertEqual(t, "hello", "hello")
	AssertEqual(t, 42, 42)
	AssertEqual(t, []int{1, 2, 3}, []int{1, 2, 3})
	AssertEqual(t, 42, 42, "value should be %d", 42)
}

func TestAssertSquares_Success(t *testing.T) {
	bb := chess.MustSquare("B3").Mask() | chess.MustSquare("C2").Mask()
	AssertSquares(t, bb, []string{"c2", "B3"})
	AssertSquares(t, chess.Empty, nil)
}

func TestAssertErrorIs_Success(t *testing.T) {
	sentinel := errors.New("sentinel")
	AssertErrorIs(t, fmt.Errorf("wrapped: %w", sentinel), sentinel)
	AssertNoError(t, nil)
}

func TestAssertBooleans_Success(t *testing.T) {
	AssertTrue(t, len("hello") == 5)
	AssertFalse(t, len("hello") == 0)
	AssertContains(t, "hello world", "world")
}

func TestPlacePieces(t *testing.T) {
	b := PlacePieces(t, chess.Black, "Ra1 ke8 Pe2")
	MustValidate(t, b)

	if b.Turn() != chess.Black {
		t.Errorf("Turn() = %v; want Black", b.Turn())
	}
	side, kind, ok := b.PieceAt(chess.MustSquare("E8"))
	if !ok || side != chess.Black || kind != chess.King {
		t.Errorf("PieceAt(E8) = %v %v %v; want Black King", side, kind, ok)
	}
	AssertSquares(t, b.Occupancy(chess.White), []string{"A1", "E2"})
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"no args", nil, ""},
		{"empty args", []interface{}{}, ""},
		{"single string", []interface{}{"hello"}, "hello"},
		{"format string", []interface{}{"value %d", 42}, "value 42"},
		{"non-string single", []interface{}{42}, "42"},
		{"non-string first", []interface{}{42, "ignored"}, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatMessage(tt.args...)
			if got != tt.want {
				t.Errorf("formatMessage(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}
