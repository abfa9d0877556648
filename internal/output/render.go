// Package output provides board rendering, game summaries and console
// input parsing.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chessvar-go/internal/chess"
	"github.com/lgbarn/chessvar-go/internal/engine"
	"github.com/lgbarn/chessvar-go/internal/game"
)

const (
	borderTop       = '`'
	borderBottom    = '.'
	borderTopEnd    = '.'
	borderBottomEnd = '`'
	borderSide      = '|'
	emptySquare     = '.'
	hSpacing        = 2
)

// BoardWriter renders a position and the move that led to it.
type BoardWriter struct {
	w      io.Writer
	labels bool
}

// NewBoardWriter creates a BoardWriter. With labels false the rank and
// file letters are left blank.
func NewBoardWriter(w io.Writer, labels bool) *BoardWriter {
	return &BoardWriter{w: w, labels: labels}
}

// RenderText writes the board, the last move and, once decided, the result.
// The board is drawn from the snapshot; nothing else is consulted.
func RenderText(w io.Writer, snap chess.Snapshot, last *game.MoveRecord, status game.Status) error {
	return NewBoardWriter(w, true).Render(snap, last, status)
}

// Render writes the board, the last move and, once decided, the result.
func (bw *BoardWriter) Render(snap chess.Snapshot, last *game.MoveRecord, status game.Status) error {
	var sb strings.Builder
	pad := strings.Repeat(" ", hSpacing)

	// Files
	sb.WriteString("\n ")
	sb.WriteString(strings.Repeat(pad, 2))
	for f := 0; f < chess.BoardSize; f++ {
		sb.WriteByte(bw.label(byte(chess.FileBase + f)))
		sb.WriteString(pad)
	}
	sb.WriteByte('\n')

	inner := chess.BoardSize*(hSpacing+1) + hSpacing

	sb.WriteString("  ")
	sb.WriteByte(borderTopEnd)
	sb.WriteString(strings.Repeat(string(borderTop), inner))
	sb.WriteByte(borderTopEnd)
	sb.WriteByte('\n')

	for r := chess.BoardSize - 1; r >= 0; r-- {
		sb.WriteByte(bw.label(byte(chess.RankBase + r)))
		sb.WriteByte(' ')
		sb.WriteByte(borderSide)
		sb.WriteString(pad)
		for f := 0; f < chess.BoardSize; f++ {
			sb.WriteByte(squareGlyph(snap, chess.NewSquare(f, r)))
			sb.WriteString(pad)
		}
		sb.WriteByte(borderSide)
		sb.WriteByte('\n')
	}

	sb.WriteString("  ")
	sb.WriteByte(borderBottomEnd)
	sb.WriteString(strings.Repeat(string(borderBottom), inner))
	sb.WriteByte(borderBottomEnd)
	sb.WriteByte('\n')

	indent := " " + pad
	if last != nil {
		sb.WriteString(indent + last.Outcome.Side.String() + " " + last.Outcome.Moved.String() +
			" from " + last.Outcome.From.String() + " to " + last.Outcome.To.String() + "\n")
		if last.Outcome.HasCapture {
			sb.WriteString(indent + fmt.Sprintf("%s %s captured!\n",
				last.Outcome.Side.Opposite(), last.Outcome.Captured))
		}
	} else {
		sb.WriteString(indent + "New game. GOOD luck.\n")
	}
	sb.WriteByte('\n')

	if banner := ResultBanner(status); banner != "" {
		sb.WriteString("\n     '.`-* " + banner + " *`.`'\n\n")
	}

	_, err := io.WriteString(bw.w, sb.String())
	return err
}

func (bw *BoardWriter) label(c byte) byte {
	if !bw.labels {
		return ' '
	}
	return c
}

// ResultBanner returns "WHITE WINS" or "BLACK WINS", or "" while the game
// is running.
func ResultBanner(status game.Status) string {
	switch status {
	case game.WhiteWon:
		return "WHITE WINS"
	case game.BlackWon:
		return "BLACK WINS"
	}
	return ""
}

// squareGlyph returns the FEN letter of the piece on sq, or '.'.
func squareGlyph(snap chess.Snapshot, sq chess.Square) byte {
	side, kind, ok := engine.SnapshotPieceAt(snap, sq)
	if !ok {
		return emptySquare
	}
	return engine.PieceLetter(side, kind)
}
