package engine

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lgbarn/chessvar-go/internal/chess"
	"github.com/lgbarn/chessvar-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position. This
// variant has no castling, en passant or clocks, so only the placement and
// side-to-move fields are meaningful.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w"

// PieceLetter returns the FEN letter of a piece: upper case for White.
func PieceLetter(side chess.Side, kind chess.PieceKind) byte {
	letter := kind.Letter()
	if side == chess.Black {
		letter = byte(unicode.ToLower(rune(letter)))
	}
	return letter
}

// NewBoardFromFEN creates a board from a FEN string. Fields after the side
// to move are accepted and ignored.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	board := chess.NewEmptyBoard(chess.White)

	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(board, parts); err != nil {
		return nil, err
	}
	return board, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return fmt.Errorf("%d ranks: %w", len(ranks), errors.ErrInvalidFEN)
	}

	for i, row := range ranks {
		rank := chess.BoardSize - 1 - i
		file := 0
		for _, c := range row {
			switch {
			case c >= '1' && c <= '8':
				file += int(c - '0')
			default:
				kind, ok := chess.KindFromLetter(byte(c))
				if !ok || c > unicode.MaxASCII {
					return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
				}
				if file >= chess.BoardSize {
					return fmt.Errorf("rank %d overflows: %w", rank+1, errors.ErrInvalidFEN)
				}
				side := chess.White
				if unicode.IsLower(c) {
					side = chess.Black
				}
				board.Place(side, kind, chess.NewSquare(file, rank))
				file++
			}
		}
		if file != chess.BoardSize {
			return fmt.Errorf("rank %d has %d files: %w", rank+1, file, errors.ErrInvalidFEN)
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(board *chess.Board, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		board.SetTurn(chess.White)
	case "b":
		board.SetTurn(chess.Black)
	default:
		return fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
	}
	return nil
}

// BoardToFEN converts a board to a FEN string (placement and side to move).
func BoardToFEN(board *chess.Board) string {
	var sb strings.Builder

	sb.WriteString(Placement(board.Snapshot()))
	sb.WriteByte(' ')
	if board.Turn() == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	return sb.String()
}

// Placement writes the FEN piece placement field of a snapshot.
func Placement(snap chess.Snapshot) string {
	var sb strings.Builder
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			side, kind, ok := SnapshotPieceAt(snap, chess.NewSquare(file, rank))
			if !ok {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(PieceLetter(side, kind))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// SnapshotPieceAt returns the piece on sq in a snapshot, if any.
func SnapshotPieceAt(snap chess.Snapshot, sq chess.Square) (chess.Side, chess.PieceKind, bool) {
	mask := sq.Mask()
	for _, side := range []chess.Side{chess.White, chess.Black} {
		for _, kind := range chess.AllPieceKinds {
			if snap.Pieces[side][kind]&mask != 0 {
				return side, kind, true
			}
		}
	}
	return chess.White, 0, false
}
